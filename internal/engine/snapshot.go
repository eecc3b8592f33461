// Package engine bundles the catalog, the fitted vectorizer, and the ranker
// into one immutable snapshot that request handlers share.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-recommender/internal/catalog"
	"github.com/jonathan/career-recommender/internal/cluster"
	"github.com/jonathan/career-recommender/internal/ranking"
	"github.com/jonathan/career-recommender/internal/similarity"
	"github.com/jonathan/career-recommender/internal/types"
	"github.com/jonathan/career-recommender/internal/vectorize"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ClusterOptions controls the optional cluster index.
type ClusterOptions struct {
	Enabled bool
	K       int
	Seed    uint64
}

// Options configures Build.
type Options struct {
	Ranking     ranking.Options
	Clusters    ClusterOptions
	MaxFeatures int
	Logger      *zap.Logger
}

// Snapshot is a consistent, read-only view of one loaded catalog. All methods
// are safe for concurrent use.
type Snapshot struct {
	id         uuid.UUID
	loadedAt   time.Time
	store      *catalog.Store
	vectorizer *vectorize.TFIDF
	ranker     *ranking.Ranker
	clusters   *cluster.Index
}

// Build fits the vectorizer over the catalog's skill texts and prepares the
// ranker and, when enabled, the cluster index. Any failure aborts the build.
func Build(ctx context.Context, store *catalog.Store, opts Options) (*Snapshot, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		return nil, fmt.Errorf("catalog store is required")
	}

	// 1. Fit the vectorizer once over every career's skills
	vectorizer := vectorize.NewTFIDF(vectorize.WithMaxFeatures(opts.MaxFeatures))
	if err := vectorizer.Fit(store.SkillTexts()); err != nil {
		return nil, fmt.Errorf("failed to fit vectorizer: %w", err)
	}

	snap := &Snapshot{
		id:         uuid.New(),
		loadedAt:   time.Now().UTC(),
		store:      store,
		vectorizer: vectorizer,
	}

	rankingOpts := opts.Ranking
	if rankingOpts.Logger == nil {
		rankingOpts.Logger = logger
	}

	// 2. Build the ranker and cluster index concurrently
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ranker, err := ranking.NewRanker(store.Records(), similarity.NewScorer(vectorizer), rankingOpts)
		if err != nil {
			return fmt.Errorf("failed to build ranker: %w", err)
		}
		snap.ranker = ranker
		return nil
	})
	if opts.Clusters.Enabled {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			idx, err := buildClusters(store, vectorizer, opts.Clusters)
			if err != nil {
				var insufficient *cluster.InsufficientDataError
				if errors.As(err, &insufficient) {
					logger.Warn("skipping cluster index", zap.Error(err))
					return nil
				}
				return fmt.Errorf("failed to build cluster index: %w", err)
			}
			snap.clusters = idx
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	fields := []zap.Field{
		zap.String("snapshot_id", snap.id.String()),
		zap.Int("careers", store.Len()),
		zap.Int("vocabulary", vectorizer.Dim()),
	}
	if snap.clusters != nil {
		fields = append(fields, zap.Int("clusters", snap.clusters.K()))
	}
	logger.Info("snapshot built", fields...)

	return snap, nil
}

func buildClusters(store *catalog.Store, vectorizer *vectorize.TFIDF, opts ClusterOptions) (*cluster.Index, error) {
	vecs, err := vectorizer.TransformAll(store.SkillTexts())
	if err != nil {
		return nil, err
	}
	points := make([][]float64, len(vecs))
	for i, v := range vecs {
		points[i] = v
	}
	return cluster.Build(points, cluster.Options{K: opts.K, Seed: opts.Seed})
}

// ID uniquely identifies this snapshot.
func (s *Snapshot) ID() uuid.UUID {
	return s.id
}

// LoadedAt is when the snapshot was built.
func (s *Snapshot) LoadedAt() time.Time {
	return s.loadedAt
}

// Recommend ranks the catalog against query.
func (s *Snapshot) Recommend(query *types.UserQuery) ([]types.Recommendation, error) {
	return s.ranker.Recommend(query)
}

// AllCareers returns every career in catalog order.
func (s *Snapshot) AllCareers() []types.CareerRecord {
	return s.store.All()
}

// CareerByID returns one career or a *catalog.NotFoundError.
func (s *Snapshot) CareerByID(id int) (types.CareerRecord, error) {
	return s.store.FindByID(id)
}

// DistinctSkills returns the sorted, deduplicated skill tokens.
func (s *Snapshot) DistinctSkills() []string {
	return s.store.DistinctSkills()
}

// DistinctInterests returns the sorted, deduplicated interest tokens.
func (s *Snapshot) DistinctInterests() []string {
	return s.store.DistinctInterests()
}

// ExperienceLevels returns the sorted experience labels in the catalog.
func (s *Snapshot) ExperienceLevels() []string {
	return s.store.ExperienceLevels()
}

// CareerCount returns the catalog size.
func (s *Snapshot) CareerCount() int {
	return s.store.Len()
}

// VocabularySize returns the fitted vector dimension.
func (s *Snapshot) VocabularySize() int {
	return s.vectorizer.Dim()
}

// Clusters returns the cluster index, or false when it is disabled or was skipped.
func (s *Snapshot) Clusters() (*cluster.Index, bool) {
	return s.clusters, s.clusters != nil
}
