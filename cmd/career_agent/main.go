// Package main provides the career_agent CLI and HTTP server entry point.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/career-recommender/internal/catalog"
	"github.com/jonathan/career-recommender/internal/config"
	"github.com/jonathan/career-recommender/internal/engine"
	"github.com/jonathan/career-recommender/internal/logger"
	"github.com/jonathan/career-recommender/internal/ranking"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app carries state shared by every subcommand of one root command.
type app struct {
	v       *viper.Viper
	cfgFile string
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	rootCmd := &cobra.Command{
		Use:           "career_agent",
		Short:         "Career recommender CLI and HTTP API server",
		Long:          "career_agent ranks careers from a catalog against a person's skills, interests and experience level.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "a YAML or JSON config file")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	_ = a.v.BindPFlag("log.debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = a.v.BindPFlag("log.json", rootCmd.PersistentFlags().Lookup("json"))

	rootCmd.AddCommand(
		newServeCmd(a),
		newRecommendCmd(a),
		newCatalogCmd(a),
		newClustersCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bindFlags binds config keys to the running command's flags. It runs in
// PreRunE so only the executing command's flags are bound.
func (a *app) bindFlags(flags *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		if err := a.v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("binding flag --%s: %w", name, err)
		}
	}
	return nil
}

// setup resolves the configuration and builds the logger.
func (a *app) setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("creating a logger: %w", err)
	}
	log.Debug("configuration loaded", zap.Any("config", cfg))
	return cfg, log, nil
}

func loadOptions(cfg *config.Config, log *zap.Logger) catalog.LoadOptions {
	return catalog.LoadOptions{
		Table:  cfg.Catalog.Table,
		S3:     catalog.S3Options{Region: cfg.S3.Region, Endpoint: cfg.S3.Endpoint},
		Logger: log,
	}
}

func catalogLoader(cfg *config.Config, log *zap.Logger) engine.LoadFunc {
	opts := loadOptions(cfg, log)
	return func(ctx context.Context) (*catalog.Store, error) {
		return catalog.LoadStore(ctx, cfg.Catalog.Source, opts)
	}
}

func engineOptions(cfg *config.Config, log *zap.Logger) engine.Options {
	return engine.Options{
		Ranking: ranking.Options{
			Weights:     cfg.Ranking.Weights,
			TopN:        cfg.Ranking.TopN,
			Personality: ranking.ConstantPersonality(cfg.Ranking.PersonalityDefault),
			Logger:      log,
		},
		Clusters: engine.ClusterOptions{
			Enabled: cfg.Clusters.Enabled,
			K:       cfg.Clusters.K,
			Seed:    cfg.Clusters.Seed,
		},
		Logger: log,
	}
}

// buildSnapshot loads the configured catalog and builds one snapshot.
func buildSnapshot(ctx context.Context, cfg *config.Config, log *zap.Logger) (*engine.Snapshot, error) {
	store, err := catalogLoader(cfg, log)(ctx)
	if err != nil {
		return nil, err
	}
	return engine.Build(ctx, store, engineOptions(cfg, log))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
