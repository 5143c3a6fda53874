package types

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisResult is the immutable record of one completed analysis.
// Ownership transfers to the caller; the pipeline retains nothing.
type AnalysisResult struct {
	ID              uuid.UUID       `json:"id"`
	CandidateName   string          `json:"candidate_name"`
	JobTitle        string          `json:"job_title"`
	Company         string          `json:"company"`
	ResumeProfile   ResumeProfile   `json:"resume_profile"`
	JobRequirements JobRequirements `json:"job_requirements"`
	ScoreBreakdown  ScoreBreakdown  `json:"score_breakdown"`
	Explanation     string          `json:"explanation"`
	CreatedAt       time.Time       `json:"created_at"`
}
