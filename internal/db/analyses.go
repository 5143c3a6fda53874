package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-match/internal/types"
)

// SaveAnalysis stores a completed analysis, structured records as JSONB.
func (db *DB) SaveAnalysis(ctx context.Context, result *types.AnalysisResult) error {
	profileJSON, err := json.Marshal(result.ResumeProfile)
	if err != nil {
		return fmt.Errorf("failed to marshal resume profile: %w", err)
	}
	jobJSON, err := json.Marshal(result.JobRequirements)
	if err != nil {
		return fmt.Errorf("failed to marshal job requirements: %w", err)
	}
	breakdownJSON, err := json.Marshal(result.ScoreBreakdown)
	if err != nil {
		return fmt.Errorf("failed to marshal score breakdown: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO analyses (id, candidate_name, job_title, company, final_score,
		                       resume_profile, job_requirements, score_breakdown,
		                       explanation, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		result.ID, result.CandidateName, result.JobTitle, result.Company,
		result.ScoreBreakdown.FinalScore, profileJSON, jobJSON, breakdownJSON,
		result.Explanation, result.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// GetAnalysis retrieves a single analysis by ID.
func (db *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*types.AnalysisResult, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, candidate_name, job_title, company,
		        resume_profile, job_requirements, score_breakdown,
		        explanation, created_at
		 FROM analyses WHERE id = $1`,
		id,
	)

	result, err := scanAnalysis(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return result, nil
}

// ListAnalysesOptions filters and paginates ListAnalyses.
type ListAnalysesOptions struct {
	CandidateName string
	Company       string
	Limit         int
	Offset        int
}

// ListAnalyses returns stored analyses newest first, with the total count
// matching the filters.
func (db *DB) ListAnalyses(ctx context.Context, opts ListAnalysesOptions) ([]types.AnalysisResult, int, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	if opts.CandidateName != "" {
		conditions = append(conditions, fmt.Sprintf("candidate_name ILIKE $%d", argIndex))
		args = append(args, "%"+opts.CandidateName+"%")
		argIndex++
	}
	if opts.Company != "" {
		conditions = append(conditions, fmt.Sprintf("company ILIKE $%d", argIndex))
		args = append(args, "%"+opts.Company+"%")
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM analyses %s", whereClause)
	var total int
	if err := db.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count analyses: %w", err)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(
		`SELECT id, candidate_name, job_title, company,
		        resume_profile, job_requirements, score_breakdown,
		        explanation, created_at
		 FROM analyses %s
		 ORDER BY created_at DESC
		 LIMIT $%d OFFSET $%d`,
		whereClause, argIndex, argIndex+1,
	)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list analyses: %w", err)
	}
	results, err := collectAnalyses(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list analyses: %w", err)
	}
	return results, total, nil
}

// collectAnalyses drains the rows. A mid-stream query failure surfaces as an
// error instead of a silently truncated result set.
func collectAnalyses(rows pgx.Rows) ([]types.AnalysisResult, error) {
	defer rows.Close()

	var results []types.AnalysisResult
	for rows.Next() {
		result, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (*types.AnalysisResult, error) {
	var result types.AnalysisResult
	var profileJSON, jobJSON, breakdownJSON []byte

	err := row.Scan(
		&result.ID, &result.CandidateName, &result.JobTitle, &result.Company,
		&profileJSON, &jobJSON, &breakdownJSON,
		&result.Explanation, &result.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(profileJSON, &result.ResumeProfile); err != nil {
		return nil, fmt.Errorf("failed to decode resume profile: %w", err)
	}
	if err := json.Unmarshal(jobJSON, &result.JobRequirements); err != nil {
		return nil, fmt.Errorf("failed to decode job requirements: %w", err)
	}
	if err := json.Unmarshal(breakdownJSON, &result.ScoreBreakdown); err != nil {
		return nil, fmt.Errorf("failed to decode score breakdown: %w", err)
	}
	return &result, nil
}
