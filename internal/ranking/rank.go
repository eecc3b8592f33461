package ranking

import (
	"fmt"
	"sort"

	"github.com/jonathan/career-recommender/internal/similarity"
	"github.com/jonathan/career-recommender/internal/types"
	"github.com/jonathan/career-recommender/internal/vectorize"
	"go.uber.org/zap"
)

// DefaultTopN is the maximum number of recommendations returned.
const DefaultTopN = 10

// Options configures a Ranker. Zero values fall back to defaults.
type Options struct {
	Weights     Weights
	TopN        int
	Personality PersonalityScorer
	Logger      *zap.Logger
}

// Ranker scores every career in a fixed catalog against user queries. Career
// skill vectors are computed once at construction; Recommend only allocates
// request-local state, so one Ranker may serve concurrent requests.
type Ranker struct {
	careers     []types.CareerRecord
	careerVecs  []vectorize.Vector
	scorer      *similarity.Scorer
	weights     Weights
	topN        int
	personality PersonalityScorer
	logger      *zap.Logger
}

// NewRanker precomputes career vectors and validates the options.
func NewRanker(careers []types.CareerRecord, scorer *similarity.Scorer, opts Options) (*Ranker, error) {
	if scorer == nil {
		return nil, fmt.Errorf("similarity scorer is required")
	}

	weights := opts.Weights
	if weights == (Weights{}) {
		weights = DefaultWeights()
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	personality := opts.Personality
	if personality == nil {
		personality = ConstantPersonality(DefaultPersonalityScore)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	careerVecs := make([]vectorize.Vector, len(careers))
	for i := range careers {
		vec, err := scorer.Query([]string{careers[i].Skills})
		if err != nil {
			return nil, &InvalidQueryError{Message: fmt.Sprintf("vectorize career %d", careers[i].ID), Cause: err}
		}
		careerVecs[i] = vec
	}

	return &Ranker{
		careers:     careers,
		careerVecs:  careerVecs,
		scorer:      scorer,
		weights:     weights,
		topN:        topN,
		personality: personality,
		logger:      logger,
	}, nil
}

// Weights returns the weights in use.
func (r *Ranker) Weights() Weights {
	return r.weights
}

// TopN returns the result cap.
func (r *Ranker) TopN() int {
	return r.topN
}

type scoredCareer struct {
	index   int
	scores  Scores
	overall float64
}

// Recommend returns at most TopN careers sorted by overall score, highest
// first. Ties keep catalog order. Scores are rounded only in the output.
func (r *Ranker) Recommend(query *types.UserQuery) ([]types.Recommendation, error) {
	if query == nil {
		query = &types.UserQuery{}
	}

	// 1. Vectorize the query skills once
	var queryVec vectorize.Vector
	if len(query.Skills) > 0 {
		vec, err := r.scorer.Query(query.Skills)
		if err != nil {
			return nil, &InvalidQueryError{Message: "failed to vectorize query skills", Cause: err}
		}
		queryVec = vec
	}

	// 2. Score every career
	experience := query.ExperienceOrDefault()
	scored := make([]scoredCareer, len(r.careers))
	for i := range r.careers {
		scores := r.scoreCareer(query, queryVec, i, experience)
		scored[i] = scoredCareer{
			index:   i,
			scores:  scores,
			overall: clamp01(r.weights.Combine(scores)),
		}
	}

	// 3. Sort by unrounded overall score (descending), stable for ties
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].overall > scored[j].overall
	})
	if len(scored) > r.topN {
		scored = scored[:r.topN]
	}

	// 4. Build output, rounding at the boundary
	recs := make([]types.Recommendation, 0, len(scored))
	for _, sc := range scored {
		recs = append(recs, r.buildRecommendation(&r.careers[sc.index], sc.scores, sc.overall))
	}

	r.logger.Debug("ranked careers",
		zap.Int("catalog_size", len(r.careers)),
		zap.Int("returned", len(recs)),
		zap.Int("query_skills", len(query.Skills)),
		zap.Int("query_interests", len(query.Interests)),
		zap.String("experience", experience),
	)

	return recs, nil
}

// scoreCareer computes the unrounded sub-scores of career i. A nil queryVec
// means the query has no skills.
func (r *Ranker) scoreCareer(query *types.UserQuery, queryVec vectorize.Vector, i int, experience string) Scores {
	career := &r.careers[i]

	skillScore := 0.0
	if queryVec != nil {
		skillScore = similarity.Cosine(queryVec, r.careerVecs[i])
	}

	return Scores{
		Skill:       skillScore,
		Interest:    computeInterestScore(query.Interests, career.Interests),
		Experience:  computeExperienceScore(career.ExperienceLevel, experience),
		Personality: r.personality.Score(query, career),
	}
}

func (r *Ranker) buildRecommendation(career *types.CareerRecord, s Scores, overall float64) types.Recommendation {
	return types.Recommendation{
		CareerID:         career.ID,
		Title:            career.Title,
		Description:      career.Description,
		SkillsRequired:   career.Skills,
		Interests:        career.Interests,
		ExperienceLevel:  career.ExperienceLevel,
		SalaryRange:      career.SalaryRange,
		GrowthPotential:  career.GrowthPotential,
		WorkEnvironment:  career.WorkEnvironment,
		SkillScore:       Round3(s.Skill),
		InterestScore:    Round3(s.Interest),
		ExperienceScore:  Round3(s.Experience),
		PersonalityScore: Round3(s.Personality),
		OverallScore:     Round3(overall),
		MatchReasons:     GenerateMatchReasons(s.Skill, s.Interest, s.Experience),
	}
}
