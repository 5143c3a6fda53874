package db

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-match/internal/types"
)

// stubRows implements the slice of pgx.Rows that collectAnalyses touches.
type stubRows struct {
	pgx.Rows
	records []types.AnalysisResult
	idx     int
	err     error
	closed  bool
}

func (r *stubRows) Next() bool {
	if r.idx < len(r.records) {
		r.idx++
		return true
	}
	return false
}

func (r *stubRows) Scan(dest ...any) error {
	rec := r.records[r.idx-1]
	profileJSON, err := json.Marshal(rec.ResumeProfile)
	if err != nil {
		return err
	}
	jobJSON, err := json.Marshal(rec.JobRequirements)
	if err != nil {
		return err
	}
	breakdownJSON, err := json.Marshal(rec.ScoreBreakdown)
	if err != nil {
		return err
	}
	*dest[0].(*uuid.UUID) = rec.ID
	*dest[1].(*string) = rec.CandidateName
	*dest[2].(*string) = rec.JobTitle
	*dest[3].(*string) = rec.Company
	*dest[4].(*[]byte) = profileJSON
	*dest[5].(*[]byte) = jobJSON
	*dest[6].(*[]byte) = breakdownJSON
	*dest[7].(*string) = rec.Explanation
	*dest[8].(*time.Time) = rec.CreatedAt
	return nil
}

func (r *stubRows) Err() error { return r.err }
func (r *stubRows) Close()     { r.closed = true }

func sampleRecord(name string) types.AnalysisResult {
	return types.AnalysisResult{
		ID:            uuid.New(),
		CandidateName: name,
		JobTitle:      "Backend Engineer",
		Company:       "Acme",
		ResumeProfile: types.ResumeProfile{Skills: []string{"go"}},
		JobRequirements: types.JobRequirements{
			RequiredSkills: []string{"go"},
		},
		ScoreBreakdown: types.ScoreBreakdown{BaseScore: 100, RawScore: 90, FinalScore: 90},
		Explanation:    "Overall match: 90/100 (excellent fit).",
		CreatedAt:      time.Now().UTC(),
	}
}

func TestCollectAnalyses(t *testing.T) {
	rows := &stubRows{records: []types.AnalysisResult{
		sampleRecord("Jane Doe"),
		sampleRecord("John Smith"),
	}}

	results, err := collectAnalyses(rows)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Jane Doe", results[0].CandidateName)
	assert.Equal(t, []string{"go"}, results[0].ResumeProfile.Skills)
	assert.True(t, rows.closed)
}

func TestCollectAnalysesMidStreamFailure(t *testing.T) {
	rows := &stubRows{
		records: []types.AnalysisResult{sampleRecord("Jane Doe")},
		err:     errors.New("connection reset"),
	}

	results, err := collectAnalyses(rows)

	require.Error(t, err, "a mid-stream failure must not return a truncated set")
	assert.Nil(t, results)
	assert.True(t, rows.closed)
}
