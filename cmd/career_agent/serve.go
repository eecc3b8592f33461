package main

import (
	"fmt"

	"github.com/jonathan/career-recommender/internal/engine"
	"github.com/jonathan/career-recommender/internal/server"
	"github.com/jonathan/career-recommender/internal/server/ratelimit"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  `Load the catalog, build the recommendation engine and serve the REST API. Startup fails if the catalog cannot be loaded.`,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.bindFlags(cmd.Flags(), map[string]string{
				"server.port":    "port",
				"catalog.source": "catalog",
			})
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := a.setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			holder, err := engine.NewHolder(cmd.Context(), catalogLoader(cfg, log), engineOptions(cfg, log))
			if err != nil {
				return fmt.Errorf("failed to build recommendation engine: %w", err)
			}

			srv, err := server.New(server.Config{
				Port:         cfg.Server.Port,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
				RateLimit:    ratelimit.FromSettings(cfg.RateLimit),
			}, holder, log)
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			log.Info("starting career_agent",
				zap.String("version", version),
				zap.Int("port", cfg.Server.Port),
				zap.Int("careers", holder.Current().CareerCount()),
			)
			return srv.Start()
		},
	}

	cmd.Flags().Int("port", 5000, "Port to listen on")
	cmd.Flags().String("catalog", "", "Catalog source: CSV/XLSX path, postgres:// URL or s3://bucket/key")
	return cmd
}
