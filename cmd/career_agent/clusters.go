package main

import (
	"errors"

	"github.com/spf13/cobra"
)

type clusterMember struct {
	CareerID int    `json:"career_id"`
	Title    string `json:"title"`
}

type clusterGroup struct {
	ID      int             `json:"cluster_id"`
	Careers []clusterMember `json:"careers"`
}

func newClustersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clusters",
		Short: "Group catalog careers by skill profile",
		Long:  `Run k-means over the careers' skill vectors and print each cluster with its career titles.`,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.bindFlags(cmd.Flags(), map[string]string{
				"catalog.source": "catalog",
				"clusters.k":     "k",
				"clusters.seed":  "seed",
			})
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.v.Set("clusters.enabled", true)
			cfg, log, err := a.setup()
			if err != nil {
				return err
			}

			snap, err := buildSnapshot(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			idx, ok := snap.Clusters()
			if !ok {
				return errors.New("catalog is empty, nothing to cluster")
			}

			careers := snap.AllCareers()
			groups := make([]clusterGroup, idx.K())
			for c := range groups {
				groups[c] = clusterGroup{ID: c, Careers: []clusterMember{}}
				for _, i := range idx.Members(c) {
					groups[c].Careers = append(groups[c].Careers, clusterMember{CareerID: careers[i].ID, Title: careers[i].Title})
				}
			}
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"clusters":       groups,
				"total_clusters": len(groups),
				"iterations":     idx.Iterations(),
			})
		},
	}

	cmd.Flags().String("catalog", "", "Catalog source: CSV/XLSX path, postgres:// URL or s3://bucket/key")
	cmd.Flags().Int("k", 10, "Number of clusters")
	cmd.Flags().Uint64("seed", 42, "Random seed")
	return cmd
}
