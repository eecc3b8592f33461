package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/jonathan/career-recommender/internal/engine"
	"github.com/jonathan/career-recommender/internal/export"
	"github.com/jonathan/career-recommender/internal/observability"
	"github.com/jonathan/career-recommender/internal/schemas"
	"github.com/jonathan/career-recommender/internal/types"
	rootschemas "github.com/jonathan/career-recommender/schemas"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// experienceChoices are offered by --interactive in this order; any other
// levels found in the catalog follow.
var experienceChoices = []string{"entry", "mid", "senior"}

type recommendOptions struct {
	skills      string
	interests   string
	experience  string
	out         string
	xlsx        string
	batch       string
	interactive bool
	pretty      bool
}

// BatchResult pairs one batch query with its recommendations.
type BatchResult struct {
	Query types.UserQuery `json:"query"`
	types.RecommendationsResponse
}

func newRecommendCmd(a *app) *cobra.Command {
	opts := &recommendOptions{}

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank careers for a set of skills and interests",
		Long: `Rank the catalog against the given skills, interests and experience level and
print the top recommendations as JSON. With --batch, a JSON array of queries is
scored concurrently.`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.batch != "" && (opts.xlsx != "" || opts.interactive || opts.pretty) {
				return errors.New("--batch cannot be combined with --xlsx, --interactive or --pretty")
			}
			return a.bindFlags(cmd.Flags(), map[string]string{
				"catalog.source": "catalog",
				"ranking.top_n":  "top",
			})
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runRecommend(cmd, opts)
		},
	}

	cmd.Flags().String("catalog", "", "Catalog source: CSV/XLSX path, postgres:// URL or s3://bucket/key")
	cmd.Flags().Int("top", 10, "Maximum number of recommendations")
	cmd.Flags().StringVar(&opts.skills, "skills", "", "Comma-separated skills")
	cmd.Flags().StringVar(&opts.interests, "interests", "", "Comma-separated interests")
	cmd.Flags().StringVar(&opts.experience, "experience", "", "Experience level (default entry)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write JSON to this file instead of stdout")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "Also write an Excel report to this path")
	cmd.Flags().StringVar(&opts.batch, "batch", "", "JSON file holding an array of queries")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Prompt for missing values")
	cmd.Flags().BoolVarP(&opts.pretty, "pretty", "p", false, "Print a human-readable summary instead of JSON")
	return cmd
}

func (a *app) runRecommend(cmd *cobra.Command, opts *recommendOptions) error {
	cfg, log, err := a.setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	snap, err := buildSnapshot(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}

	var result any
	if opts.batch != "" {
		queries, err := readBatch(opts.batch)
		if err != nil {
			return err
		}
		results, err := recommendBatch(cmd.Context(), snap, queries, runtime.GOMAXPROCS(0))
		if err != nil {
			return err
		}
		log.Info("batch scored", zap.Int("queries", len(queries)))
		result = results
	} else {
		query := types.UserQuery{
			Skills:     types.SplitList(opts.skills),
			Interests:  types.SplitList(opts.interests),
			Experience: strings.TrimSpace(opts.experience),
		}
		if opts.interactive {
			if err := promptQuery(&query, snap.ExperienceLevels()); err != nil {
				return err
			}
		}
		if err := query.Validate(); err != nil {
			return fmt.Errorf("invalid query: %w", err)
		}

		recs, err := snap.Recommend(&query)
		if err != nil {
			return err
		}
		if opts.xlsx != "" {
			path, err := export.WriteXLSX(recs, query, opts.xlsx)
			if err != nil {
				return err
			}
			log.Info("excel report written", zap.String("path", path))
		}
		result = newResponse(recs)

		if opts.pretty {
			printer := observability.NewPrinter(cmd.OutOrStdout())
			printer.PrintQuery(&query)
			printer.PrintRecommendations(recs)
			if opts.out == "" {
				return nil
			}
		}
	}

	return writeOutput(cmd.OutOrStdout(), opts.out, result)
}

func newResponse(recs []types.Recommendation) types.RecommendationsResponse {
	return types.RecommendationsResponse{
		Recommendations:      recs,
		TotalRecommendations: len(recs),
		Timestamp:            time.Now().UTC().Format(time.RFC3339),
	}
}

func writeOutput(stdout io.Writer, path string, v any) error {
	if path == "" {
		return writeJSON(stdout, v)
	}

	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(stdout, "Wrote %s\n", path)
	return nil
}

// readBatch reads a JSON array of queries. Each element must match the
// recommendation request schema.
func readBatch(path string) ([]types.UserQuery, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("batch file must be a JSON array: %w", err)
	}

	validator := schemas.MustCompile("recommendation_request", rootschemas.RecommendationRequest)

	queries := make([]types.UserQuery, len(raw))
	for i, doc := range raw {
		if err := validator.Validate(doc); err != nil {
			return nil, fmt.Errorf("batch query %d does not match %s: %w", i, validator.Name(), err)
		}
		if err := json.Unmarshal(doc, &queries[i]); err != nil {
			return nil, fmt.Errorf("batch query %d: %w", i, err)
		}
		if err := queries[i].Validate(); err != nil {
			return nil, fmt.Errorf("batch query %d: %w", i, err)
		}
	}
	return queries, nil
}

// recommendBatch scores queries concurrently against one snapshot. Results
// keep input order.
func recommendBatch(ctx context.Context, snap *engine.Snapshot, queries []types.UserQuery, workers int) ([]BatchResult, error) {
	results := make([]BatchResult, len(queries))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i := range queries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			recs, err := snap.Recommend(&queries[i])
			if err != nil {
				return fmt.Errorf("batch query %d: %w", i, err)
			}
			results[i] = BatchResult{Query: queries[i], RecommendationsResponse: newResponse(recs)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// promptQuery fills in whatever the flags left empty.
func promptQuery(query *types.UserQuery, catalogLevels []string) error {
	if len(query.Skills) == 0 {
		p := promptui.Prompt{Label: "Skills (comma separated)"}
		answer, err := p.Run()
		if err != nil {
			return err
		}
		query.Skills = types.SplitList(answer)
	}

	if len(query.Interests) == 0 {
		p := promptui.Prompt{Label: "Interests (comma separated)"}
		answer, err := p.Run()
		if err != nil {
			return err
		}
		query.Interests = types.SplitList(answer)
	}

	if query.Experience == "" {
		sel := promptui.Select{
			Label: "Experience level",
			Items: experienceItems(catalogLevels),
		}
		_, level, err := sel.Run()
		if err != nil {
			return err
		}
		query.Experience = level
	}
	return nil
}

func experienceItems(catalogLevels []string) []string {
	items := append([]string(nil), experienceChoices...)
	seen := make(map[string]bool, len(items))
	for _, l := range items {
		seen[l] = true
	}
	for _, l := range catalogLevels {
		if !seen[l] {
			items = append(items, l)
			seen[l] = true
		}
	}
	return items
}
