package server

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/jonathan/career-recommender/internal/catalog"
	"github.com/jonathan/career-recommender/internal/engine"
	"github.com/jonathan/career-recommender/internal/ranking"
	"github.com/jonathan/career-recommender/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendations(t *testing.T) {
	s, logs := newTestServer(t, testHolder(t, false), nil)

	w := do(t, s.Handler(), http.MethodPost, "/recommendations",
		`{"skills":["python","sql"],"interests":["data"],"experience":"mid"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[types.RecommendationsResponse](t, w)
	require.Len(t, resp.Recommendations, 3)
	assert.Equal(t, 3, resp.TotalRecommendations)
	assert.Equal(t, "2024-05-01T12:00:00Z", resp.Timestamp)

	top := resp.Recommendations[0]
	assert.Equal(t, 1, top.CareerID)
	assert.Equal(t, "Data Scientist", top.Title)
	assert.Equal(t, "python,statistics,sql", top.SkillsRequired)
	assert.Equal(t, 1.0, top.InterestScore)
	assert.Equal(t, 1.0, top.ExperienceScore)
	assert.Contains(t, top.MatchReasons, ranking.ReasonHighInterest)
	assert.Contains(t, top.MatchReasons, ranking.ReasonPerfectExperience)

	for i := 1; i < len(resp.Recommendations); i++ {
		assert.GreaterOrEqual(t, resp.Recommendations[i-1].OverallScore, resp.Recommendations[i].OverallScore)
	}
	assert.Equal(t, 1, logs.FilterMessage("recommendations served").Len())
}

func TestRecommendations_EmptyQueryObject(t *testing.T) {
	s, _ := newTestServer(t, testHolder(t, false), nil)

	w := do(t, s.Handler(), http.MethodPost, "/recommendations", `{}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[types.RecommendationsResponse](t, w)
	require.Len(t, resp.Recommendations, 3)
	for _, rec := range resp.Recommendations {
		assert.Zero(t, rec.SkillScore)
		assert.Zero(t, rec.InterestScore)
		assert.NotNil(t, rec.MatchReasons)
	}
	// experience defaults to entry
	assert.Equal(t, 1.0, resp.Recommendations[0].ExperienceScore)
}

func TestRecommendations_EmptyExperienceMeansEntry(t *testing.T) {
	s, _ := newTestServer(t, testHolder(t, false), nil)

	for _, body := range []string{`{"experience":""}`, `{}`} {
		w := do(t, s.Handler(), http.MethodPost, "/recommendations", body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		scores := map[int]float64{}
		for _, rec := range decode[types.RecommendationsResponse](t, w).Recommendations {
			scores[rec.CareerID] = rec.ExperienceScore
		}
		assert.Equal(t, map[int]float64{1: 0.5, 2: 1.0, 3: 1.0}, scores, body)
	}
}

func TestRecommendations_BadRequests(t *testing.T) {
	s, _ := newTestServer(t, testHolder(t, false), nil)

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"empty body", "", "no data provided"},
		{"whitespace body", "   ", "no data provided"},
		{"invalid JSON", `{"skills": [`, "schema"},
		{"wrong type", `{"skills": "python"}`, "schema"},
		{"unknown field", `{"skill": ["python"]}`, "schema"},
		{"null", `null`, "schema"},
		{"too long experience", `{"experience": "` + strings.Repeat("x", 51) + `"}`, "schema"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s.Handler(), http.MethodPost, "/recommendations", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantMsg)
		})
	}
}

func TestListCareers(t *testing.T) {
	s, _ := newTestServer(t, testHolder(t, false), nil)

	w := do(t, s.Handler(), http.MethodGet, "/careers", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[CareersResponse](t, w)
	assert.Equal(t, 3, resp.TotalCareers)
	assert.Equal(t, testCareers(), resp.Careers)
}

func TestGetCareer(t *testing.T) {
	s, _ := newTestServer(t, testHolder(t, false), nil)
	h := s.Handler()

	w := do(t, h, http.MethodGet, "/careers/2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Web Developer", decode[types.CareerRecord](t, w).Title)

	w = do(t, h, http.MethodGet, "/careers/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "99")

	w = do(t, h, http.MethodGet, "/careers/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListSkillsAndInterests(t *testing.T) {
	s, _ := newTestServer(t, testHolder(t, false), nil)
	h := s.Handler()

	skills := decode[SkillsResponse](t, do(t, h, http.MethodGet, "/skills", ""))
	assert.Equal(t, []string{"communication", "css", "html", "javascript", "patient care", "python", "sql", "statistics"}, skills.Skills)
	assert.Equal(t, 8, skills.TotalSkills)

	interests := decode[InterestsResponse](t, do(t, h, http.MethodGet, "/interests", ""))
	assert.Equal(t, []string{"data", "design", "healthcare", "helping", "research", "web"}, interests.Interests)
	assert.Equal(t, 6, interests.TotalInterests)
}

func TestListClusters(t *testing.T) {
	s, _ := newTestServer(t, testHolder(t, true), nil)

	w := do(t, s.Handler(), http.MethodGet, "/clusters", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[ClustersResponse](t, w)
	assert.Equal(t, 2, resp.TotalClusters)
	assert.NotEmpty(t, resp.SnapshotID)

	seen := map[int]bool{}
	for _, c := range resp.Clusters {
		for _, m := range c.Careers {
			seen[m.CareerID] = true
		}
	}
	assert.Len(t, seen, 3)
}

func TestListClusters_Disabled(t *testing.T) {
	s, _ := newTestServer(t, testHolder(t, false), nil)

	w := do(t, s.Handler(), http.MethodGet, "/clusters", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFeedback(t *testing.T) {
	s, logs := newTestServer(t, testHolder(t, false), nil)
	h := s.Handler()

	w := do(t, h, http.MethodPost, "/feedback", `{"career_id": 1, "rating": 4, "comment": "useful"}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[FeedbackResponse](t, w)
	assert.Equal(t, "Feedback submitted successfully", resp.Message)
	assert.NotEmpty(t, resp.FeedbackID)

	entries := logs.FilterMessage("feedback received").All()
	require.Len(t, entries, 1)
	assert.Equal(t, resp.FeedbackID, entries[0].ContextMap()["feedback_id"])
	assert.Equal(t, int64(4), entries[0].ContextMap()["rating"])

	for _, body := range []string{"", `{"career_id": 1}`, `{"career_id": 1, "rating": 9}`} {
		assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/feedback", body).Code, body)
	}
}

type failingSource struct {
	*engine.Holder
}

func (f failingSource) Reload(context.Context) (*engine.Snapshot, error) {
	return nil, &catalog.DataLoadError{Source: "data/careers.csv", Message: "unreadable"}
}

func TestReload(t *testing.T) {
	holder := testHolder(t, true)
	s, _ := newTestServer(t, holder, nil)
	before := holder.Current()

	w := do(t, s.Handler(), http.MethodPost, "/admin/reload", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[ReloadResponse](t, w)
	assert.Equal(t, 3, resp.TotalCareers)
	assert.Equal(t, 2, resp.Clusters)
	assert.Greater(t, resp.VocabularySize, 0)
	assert.NotEqual(t, before.ID().String(), resp.SnapshotID)
	assert.Equal(t, holder.Current().ID().String(), resp.SnapshotID)
}

func TestReload_FailureKeepsServing(t *testing.T) {
	holder := testHolder(t, false)
	s, logs := newTestServer(t, failingSource{holder}, nil)
	h := s.Handler()

	w := do(t, h, http.MethodPost, "/admin/reload", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotContains(t, w.Body.String(), "unreadable")
	assert.Equal(t, 1, logs.FilterMessage("request failed").Len())

	w = do(t, h, http.MethodGet, "/careers", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
