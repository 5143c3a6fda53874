package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-match/internal/analysis"
	"github.com/jonathan/resume-match/internal/db"
	"github.com/jonathan/resume-match/internal/types"
)

// createAnalysisRequest is the POST /analyses payload.
type createAnalysisRequest struct {
	ResumeText    string `json:"resume_text"`
	JobText       string `json:"job_text"`
	CandidateName string `json:"candidate_name"`
	JobTitle      string `json:"job_title"`
	Company       string `json:"company"`
}

// analysisResponse is the wire shape for one analysis.
type analysisResponse struct {
	ID              uuid.UUID             `json:"id"`
	CandidateName   string                `json:"candidate_name,omitempty"`
	JobTitle        string                `json:"job_title,omitempty"`
	Company         string                `json:"company,omitempty"`
	MatchScore      int                   `json:"match_score"`
	ScoreBreakdown  types.ScoreBreakdown  `json:"score_breakdown"`
	ResumeProfile   types.ResumeProfile   `json:"resume_data"`
	JobRequirements types.JobRequirements `json:"job_requirements"`
	Explanation     string                `json:"explanation"`
	CreatedAt       time.Time             `json:"created_at"`
}

func toResponse(result *types.AnalysisResult) analysisResponse {
	return analysisResponse{
		ID:              result.ID,
		CandidateName:   result.CandidateName,
		JobTitle:        result.JobTitle,
		Company:         result.Company,
		MatchScore:      result.ScoreBreakdown.FinalScore,
		ScoreBreakdown:  result.ScoreBreakdown,
		ResumeProfile:   result.ResumeProfile,
		JobRequirements: result.JobRequirements,
		Explanation:     result.Explanation,
		CreatedAt:       result.CreatedAt,
	}
}

func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	var req createAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := s.service.Run(r.Context(), analysis.Request{
		ResumeText:    req.ResumeText,
		JobText:       req.JobText,
		CandidateName: req.CandidateName,
		JobTitle:      req.JobTitle,
		Company:       req.Company,
	})
	if err != nil {
		s.writeError(w, HTTPStatus(err), err.Error())
		return
	}

	if s.store != nil {
		if err := s.store.SaveAnalysis(r.Context(), result); err != nil {
			// The analysis itself succeeded; log and return it anyway.
			s.logger.Error("failed to persist analysis",
				zap.String("analysis_id", result.ID.String()), zap.Error(err))
		}
	}

	s.writeJSON(w, http.StatusCreated, toResponse(result))
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusNotFound, "persistence is not configured")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid analysis ID")
		return
	}

	result, err := s.store.GetAnalysis(r.Context(), id)
	if err != nil {
		s.writeError(w, HTTPStatus(err), err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, toResponse(result))
}

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusNotFound, "persistence is not configured")
		return
	}

	opts := db.ListAnalysesOptions{
		CandidateName: r.URL.Query().Get("candidate"),
		Company:       r.URL.Query().Get("company"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		opts.Limit, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		opts.Offset, _ = strconv.Atoi(v)
	}

	results, total, err := s.store.ListAnalyses(r.Context(), opts)
	if err != nil {
		s.writeError(w, HTTPStatus(err), err.Error())
		return
	}

	responses := make([]analysisResponse, 0, len(results))
	for i := range results {
		responses = append(responses, toResponse(&results[i]))
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"analyses": responses,
		"total":    total,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
