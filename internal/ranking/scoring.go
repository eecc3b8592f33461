// Package ranking scores catalog careers against a user query and orders them.
package ranking

import (
	"math"

	"github.com/jonathan/career-recommender/internal/types"
)

// Thresholds for match reasons
const (
	strongSkillThreshold       = 0.7
	moderateSkillThreshold     = 0.4
	highInterestThreshold      = 0.6
	someInterestThreshold      = 0.3
	perfectExperienceThreshold = 0.8
)

// Experience scores
const (
	experienceMatchScore    = 1.0
	experienceMismatchScore = 0.5
)

// Match reason texts
const (
	ReasonStrongSkill       = "Strong skill alignment"
	ReasonModerateSkill     = "Moderate skill match"
	ReasonHighInterest      = "High interest compatibility"
	ReasonSomeInterest      = "Some interest overlap"
	ReasonPerfectExperience = "Perfect experience level match"
)

// Scores holds the unrounded sub-scores of one career.
type Scores struct {
	Skill       float64
	Interest    float64
	Experience  float64
	Personality float64
}

// computeInterestScore returns the share of distinct query interests that also
// appear in the career's comma-separated interests. The denominator is the
// number of query interests as given, so repeated interests lower the score.
func computeInterestScore(queryInterests []string, careerInterests string) float64 {
	if len(queryInterests) == 0 {
		return 0.0
	}

	careerSet := make(map[string]bool)
	for _, interest := range types.SplitList(careerInterests) {
		careerSet[interest] = true
	}

	matched := make(map[string]bool)
	for _, interest := range queryInterests {
		if careerSet[interest] {
			matched[interest] = true
		}
	}

	return float64(len(matched)) / float64(len(queryInterests))
}

// computeExperienceScore compares experience labels exactly; "Entry" and
// "entry" do not match.
func computeExperienceScore(careerLevel, queryLevel string) float64 {
	if careerLevel == queryLevel {
		return experienceMatchScore
	}
	return experienceMismatchScore
}

// GenerateMatchReasons explains a score with up to three reasons, ordered
// skill, interest, experience. Each factor is judged on its own.
func GenerateMatchReasons(skillScore, interestScore, experienceScore float64) []string {
	reasons := make([]string, 0, 3)

	if skillScore > strongSkillThreshold {
		reasons = append(reasons, ReasonStrongSkill)
	} else if skillScore > moderateSkillThreshold {
		reasons = append(reasons, ReasonModerateSkill)
	}

	if interestScore > highInterestThreshold {
		reasons = append(reasons, ReasonHighInterest)
	} else if interestScore > someInterestThreshold {
		reasons = append(reasons, ReasonSomeInterest)
	}

	if experienceScore > perfectExperienceThreshold {
		reasons = append(reasons, ReasonPerfectExperience)
	}

	return reasons
}

// Round3 rounds x to three decimal places, halves away from zero.
func Round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
