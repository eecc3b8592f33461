// Package types provides type definitions for structured data used throughout the career recommender.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultExperience is assumed when a query does not state an experience level.
const DefaultExperience = "entry"

// CareerRecord represents a single catalog entry.
// Skills and Interests are free text; Interests is comma separated.
type CareerRecord struct {
	ID              int    `json:"id" mapstructure:"id"`
	Title           string `json:"title" mapstructure:"title"`
	Description     string `json:"description" mapstructure:"description"`
	Skills          string `json:"skills" mapstructure:"skills"`
	Interests       string `json:"interests" mapstructure:"interests"`
	ExperienceLevel string `json:"experience_level" mapstructure:"experience_level"`
	SalaryRange     string `json:"salary_range" mapstructure:"salary_range"`
	GrowthPotential string `json:"growth_potential" mapstructure:"growth_potential"`
	WorkEnvironment string `json:"work_environment" mapstructure:"work_environment"`
}

// UserQuery represents a recommendation request.
type UserQuery struct {
	Skills      []string `json:"skills" validate:"omitempty,max=100,dive,max=200"`
	Interests   []string `json:"interests" validate:"omitempty,max=100,dive,max=200"`
	Experience  string   `json:"experience,omitempty" validate:"max=50"`
	Personality []string `json:"personality,omitempty" validate:"omitempty,max=50,dive,max=200"`
}

// Validate validates the UserQuery using the validator.
func (q *UserQuery) Validate() error {
	validate := validator.New()
	return validate.Struct(q)
}

// ExperienceOrDefault returns the query experience level, or DefaultExperience when unset.
func (q *UserQuery) ExperienceOrDefault() string {
	if q.Experience == "" {
		return DefaultExperience
	}
	return q.Experience
}

// Recommendation is a scored catalog entry returned to the caller. Never persisted.
type Recommendation struct {
	CareerID         int      `json:"career_id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	SkillsRequired   string   `json:"skills_required"`
	Interests        string   `json:"interests"`
	ExperienceLevel  string   `json:"experience_level"`
	SalaryRange      string   `json:"salary_range"`
	GrowthPotential  string   `json:"growth_potential"`
	WorkEnvironment  string   `json:"work_environment"`
	SkillScore       float64  `json:"skill_score"`
	InterestScore    float64  `json:"interest_score"`
	ExperienceScore  float64  `json:"experience_score"`
	PersonalityScore float64  `json:"personality_score"`
	OverallScore     float64  `json:"overall_score"`
	MatchReasons     []string `json:"match_reasons"`
}

// RecommendationsResponse wraps a ranked list for API and CLI output.
type RecommendationsResponse struct {
	Recommendations      []Recommendation `json:"recommendations"`
	TotalRecommendations int              `json:"total_recommendations"`
	Timestamp            string           `json:"timestamp"`
}

// FeedbackRequest carries a user's rating of a recommendation. It is logged, not stored.
type FeedbackRequest struct {
	CareerID int    `json:"career_id" validate:"gte=0"`
	Rating   int    `json:"rating" validate:"gte=1,lte=5"`
	Comment  string `json:"comment,omitempty" validate:"max=2000"`
}

// Validate validates the FeedbackRequest using the validator.
func (r *FeedbackRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// SplitList splits a comma separated field into trimmed, non-empty tokens in source order.
// Duplicates are kept; callers that need a set deduplicate themselves.
func SplitList(field string) []string {
	if field == "" {
		return nil
	}
	parts := strings.Split(field, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
