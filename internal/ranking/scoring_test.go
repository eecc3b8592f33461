package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeInterestScore(t *testing.T) {
	tests := []struct {
		name            string
		queryInterests  []string
		careerInterests string
		want            float64
	}{
		{name: "full overlap with trimming", queryInterests: []string{"python", "design"}, careerInterests: "python, art, design", want: 1.0},
		{name: "empty query", queryInterests: nil, careerInterests: "python, art", want: 0.0},
		{name: "empty career interests", queryInterests: []string{"python"}, careerInterests: "", want: 0.0},
		{name: "half overlap", queryInterests: []string{"data", "art"}, careerInterests: "data,analysis", want: 0.5},
		{name: "case sensitive", queryInterests: []string{"Data"}, careerInterests: "data", want: 0.0},
		{name: "repeated query interest counts once in numerator", queryInterests: []string{"data", "data"}, careerInterests: "data", want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeInterestScore(tt.queryInterests, tt.careerInterests)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestComputeExperienceScore(t *testing.T) {
	assert.Equal(t, 1.0, computeExperienceScore("entry", "entry"))
	assert.Equal(t, 0.5, computeExperienceScore("mid", "entry"))
	assert.Equal(t, 0.5, computeExperienceScore("entry", "Entry"))
	assert.Equal(t, 0.5, computeExperienceScore("", "entry"))
}

func TestGenerateMatchReasons(t *testing.T) {
	tests := []struct {
		name                        string
		skill, interest, experience float64
		want                        []string
	}{
		{name: "strong skill excludes moderate", skill: 0.75, interest: 0, experience: 0.5, want: []string{ReasonStrongSkill}},
		{name: "moderate skill only", skill: 0.5, interest: 0, experience: 0.5, want: []string{ReasonModerateSkill}},
		{name: "boundaries are exclusive", skill: 0.7, interest: 0.6, experience: 0.8, want: []string{ReasonModerateSkill, ReasonSomeInterest}},
		{name: "lower boundaries are exclusive", skill: 0.4, interest: 0.3, experience: 0.5, want: []string{}},
		{name: "all three in order", skill: 0.9, interest: 1.0, experience: 1.0, want: []string{ReasonStrongSkill, ReasonHighInterest, ReasonPerfectExperience}},
		{name: "experience alone", skill: 0, interest: 0, experience: 1.0, want: []string{ReasonPerfectExperience}},
		{name: "some interest", skill: 0, interest: 0.5, experience: 0.5, want: []string{ReasonSomeInterest}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateMatchReasons(tt.skill, tt.interest, tt.experience)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRound3(t *testing.T) {
	assert.Equal(t, 0.792, Round3(0.79214))
	assert.Equal(t, 0.5, Round3(0.50049))
	assert.Equal(t, 0.0, Round3(0))
	assert.Equal(t, 1.0, Round3(1))
}

func TestWeights_Validate(t *testing.T) {
	tests := []struct {
		name    string
		weights Weights
		wantErr bool
	}{
		{name: "defaults", weights: DefaultWeights()},
		{name: "skill only", weights: Weights{Skill: 1}},
		{name: "float noise tolerated", weights: Weights{Skill: 0.1, Interest: 0.2, Experience: 0.3, Personality: 0.4}},
		{name: "sum too low", weights: Weights{Skill: 0.4, Interest: 0.3}, wantErr: true},
		{name: "sum too high", weights: Weights{Skill: 0.5, Interest: 0.5, Experience: 0.5}, wantErr: true},
		{name: "negative weight", weights: Weights{Skill: 1.2, Interest: -0.2}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.weights.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				var weightsErr *WeightsError
				assert.ErrorAs(t, err, &weightsErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultWeights_SumToOne(t *testing.T) {
	assert.InDelta(t, 1.0, DefaultWeights().Sum(), 1e-12)
}

func TestConstantPersonality(t *testing.T) {
	assert.Equal(t, 0.5, ConstantPersonality(DefaultPersonalityScore).Score(nil, nil))
	assert.Equal(t, 1.0, ConstantPersonality(3).Score(nil, nil))
	assert.Equal(t, 0.0, ConstantPersonality(-1).Score(nil, nil))
}
