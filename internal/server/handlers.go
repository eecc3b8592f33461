package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-recommender/internal/logger"
	"github.com/jonathan/career-recommender/internal/types"
	"go.uber.org/zap"
)

// CareersResponse is returned by GET /careers.
type CareersResponse struct {
	Careers      []types.CareerRecord `json:"careers"`
	TotalCareers int                  `json:"total_careers"`
}

// SkillsResponse is returned by GET /skills.
type SkillsResponse struct {
	Skills      []string `json:"skills"`
	TotalSkills int      `json:"total_skills"`
}

// InterestsResponse is returned by GET /interests.
type InterestsResponse struct {
	Interests      []string `json:"interests"`
	TotalInterests int      `json:"total_interests"`
}

// ClusterMember is one career in a cluster.
type ClusterMember struct {
	CareerID int    `json:"career_id"`
	Title    string `json:"title"`
}

// Cluster groups careers with similar skill profiles.
type Cluster struct {
	ID      int             `json:"cluster_id"`
	Careers []ClusterMember `json:"careers"`
}

// ClustersResponse is returned by GET /clusters.
type ClustersResponse struct {
	Clusters      []Cluster `json:"clusters"`
	TotalClusters int       `json:"total_clusters"`
	SnapshotID    string    `json:"snapshot_id"`
}

// FeedbackResponse acknowledges POST /feedback.
type FeedbackResponse struct {
	Message    string `json:"message"`
	FeedbackID string `json:"feedback_id"`
	Timestamp  string `json:"timestamp"`
}

// ReloadResponse is returned by POST /admin/reload.
type ReloadResponse struct {
	SnapshotID     string `json:"snapshot_id"`
	TotalCareers   int    `json:"total_careers"`
	VocabularySize int    `json:"vocabulary_size"`
	Clusters       int    `json:"clusters"`
	LoadedAt       string `json:"loaded_at"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": s.timestamp(),
	})
}

// readBody reads a bounded request body and rejects an empty one.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, &ErrValidation{Field: "body", Message: err.Error()}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &ErrValidation{Field: "body", Message: "no data provided"}
	}
	return body, nil
}

// handleRecommendations ranks the catalog for the posted UserQuery. The body
// passes the JSON Schema, then decoding, then struct validation.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.recommendV.Validate(body); err != nil {
		s.writeError(w, r, err)
		return
	}

	var query types.UserQuery
	if err := json.Unmarshal(body, &query); err != nil {
		s.writeError(w, r, &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()})
		return
	}
	if err := query.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	snap := s.source.Current()
	recs, err := snap.Recommend(&query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Debug("recommendations served",
		zap.String("request_id", RequestID(r.Context())),
		zap.String("snapshot_id", snap.ID().String()),
		logger.Strings("skills", query.Skills, 20),
		logger.Strings("interests", query.Interests, 20),
		zap.Int("returned", len(recs)),
	)

	s.jsonResponse(w, http.StatusOK, types.RecommendationsResponse{
		Recommendations:      recs,
		TotalRecommendations: len(recs),
		Timestamp:            s.timestamp(),
	})
}

// handleListCareers returns the full catalog
func (s *Server) handleListCareers(w http.ResponseWriter, _ *http.Request) {
	careers := s.source.Current().AllCareers()
	s.jsonResponse(w, http.StatusOK, CareersResponse{Careers: careers, TotalCareers: len(careers)})
}

// handleGetCareer returns one career by integer id
func (s *Server) handleGetCareer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, &ErrValidation{Field: "id", Message: "must be an integer"})
		return
	}

	career, err := s.source.Current().CareerByID(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, career)
}

func (s *Server) handleListSkills(w http.ResponseWriter, _ *http.Request) {
	skills := s.source.Current().DistinctSkills()
	s.jsonResponse(w, http.StatusOK, SkillsResponse{Skills: skills, TotalSkills: len(skills)})
}

func (s *Server) handleListInterests(w http.ResponseWriter, _ *http.Request) {
	interests := s.source.Current().DistinctInterests()
	s.jsonResponse(w, http.StatusOK, InterestsResponse{Interests: interests, TotalInterests: len(interests)})
}

// handleListClusters returns careers grouped by cluster, or 404 when the
// snapshot has no cluster index.
func (s *Server) handleListClusters(w http.ResponseWriter, r *http.Request) {
	snap := s.source.Current()
	idx, ok := snap.Clusters()
	if !ok {
		s.writeError(w, r, &ErrClustersUnavailable{})
		return
	}

	careers := snap.AllCareers()
	clusters := make([]Cluster, idx.K())
	for c := range clusters {
		members := idx.Members(c)
		clusters[c] = Cluster{ID: c, Careers: make([]ClusterMember, 0, len(members))}
		for _, i := range members {
			clusters[c].Careers = append(clusters[c].Careers, ClusterMember{
				CareerID: careers[i].ID,
				Title:    careers[i].Title,
			})
		}
	}

	s.jsonResponse(w, http.StatusOK, ClustersResponse{
		Clusters:      clusters,
		TotalClusters: len(clusters),
		SnapshotID:    snap.ID().String(),
	})
}

// handleFeedback logs a rating. Nothing is persisted.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.feedbackV.Validate(body); err != nil {
		s.writeError(w, r, err)
		return
	}

	var req types.FeedbackRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, r, &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	id := uuid.NewString()
	s.logger.Info("feedback received",
		zap.String("feedback_id", id),
		zap.String("request_id", RequestID(r.Context())),
		zap.Int("career_id", req.CareerID),
		zap.Int("rating", req.Rating),
		zap.String("comment", req.Comment),
	)

	s.jsonResponse(w, http.StatusOK, FeedbackResponse{
		Message:    "Feedback submitted successfully",
		FeedbackID: id,
		Timestamp:  s.timestamp(),
	})
}

// handleReload rebuilds the snapshot from the configured source. On failure
// the previous snapshot keeps serving.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	snap, err := s.source.Reload(r.Context())
	if err != nil {
		if ctxErr := r.Context().Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			s.errorResponse(w, http.StatusServiceUnavailable, "reload cancelled")
			return
		}
		s.writeError(w, r, err)
		return
	}

	clusters := 0
	if idx, ok := snap.Clusters(); ok {
		clusters = idx.K()
	}
	s.jsonResponse(w, http.StatusOK, ReloadResponse{
		SnapshotID:     snap.ID().String(),
		TotalCareers:   snap.CareerCount(),
		VocabularySize: snap.VocabularySize(),
		Clusters:       clusters,
		LoadedAt:       snap.LoadedAt().Format(time.RFC3339),
	})
}
