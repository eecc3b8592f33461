package main

import (
	"fmt"
	"strconv"

	"github.com/jonathan/career-recommender/internal/catalog"
	"github.com/jonathan/career-recommender/internal/observability"
	"github.com/spf13/cobra"
)

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the career catalog",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.bindFlags(cmd.Flags(), map[string]string{"catalog.source": "catalog"})
		},
	}
	cmd.PersistentFlags().String("catalog", "", "Catalog source: CSV/XLSX path, postgres:// URL or s3://bucket/key")

	var pretty bool
	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one career",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("career id must be an integer: %q", args[0])
			}

			cfg, log, err := a.setup()
			if err != nil {
				return err
			}
			store, err := catalog.LoadStore(cmd.Context(), cfg.Catalog.Source, loadOptions(cfg, log))
			if err != nil {
				return err
			}
			career, err := store.FindByID(id)
			if err != nil {
				return err
			}
			if pretty {
				observability.NewPrinter(cmd.OutOrStdout()).PrintCareer(&career)
				return nil
			}
			return writeJSON(cmd.OutOrStdout(), career)
		},
	}
	show.Flags().BoolVarP(&pretty, "pretty", "p", false, "Print a human-readable card instead of JSON")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "careers",
			Short: "List every career",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.withStore(cmd, func(store *catalog.Store) any {
					careers := store.All()
					return map[string]any{"careers": careers, "total_careers": len(careers)}
				})
			},
		},
		&cobra.Command{
			Use:   "skills",
			Short: "List the distinct skills",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.withStore(cmd, func(store *catalog.Store) any {
					skills := store.DistinctSkills()
					return map[string]any{"skills": skills, "total_skills": len(skills)}
				})
			},
		},
		&cobra.Command{
			Use:   "interests",
			Short: "List the distinct interests",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.withStore(cmd, func(store *catalog.Store) any {
					interests := store.DistinctInterests()
					return map[string]any{"interests": interests, "total_interests": len(interests)}
				})
			},
		},
		show,
	)
	return cmd
}

// withStore loads the configured catalog and prints render's result as JSON.
func (a *app) withStore(cmd *cobra.Command, render func(*catalog.Store) any) error {
	cfg, log, err := a.setup()
	if err != nil {
		return err
	}
	store, err := catalog.LoadStore(cmd.Context(), cfg.Catalog.Source, loadOptions(cfg, log))
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), render(store))
}
