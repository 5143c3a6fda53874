// Package analysis orchestrates the full résumé-to-verdict pipeline:
// concurrent extraction with provider fallback, deterministic scoring, and
// explanation composition.
package analysis

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-match/internal/explain"
	"github.com/jonathan/resume-match/internal/extraction"
	"github.com/jonathan/resume-match/internal/scoring"
	"github.com/jonathan/resume-match/internal/types"
)

// Request carries the two input texts plus display metadata.
type Request struct {
	ResumeText    string `validate:"required"`
	JobText       string `validate:"required"`
	CandidateName string
	JobTitle      string
	Company       string
}

// Runner drives one analysis end to end. The fallback extractor is optional;
// when present it is tried once after the primary exhausts its repair budget
// on a transient failure.
type Runner struct {
	primary  *extraction.Extractor
	fallback *extraction.Extractor
	engine   *scoring.Engine
	validate *validator.Validate
	logger   *zap.Logger
}

// NewRunner wires a runner over the given extractors and scoring engine.
func NewRunner(primary, fallback *extraction.Extractor, engine *scoring.Engine, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		primary:  primary,
		fallback: fallback,
		engine:   engine,
		validate: validator.New(),
		logger:   logger,
	}
}

// Run executes the pipeline: input validation, concurrent extraction of both
// documents, scoring, and explanation. Extraction failures for either document
// abort the run; scoring and composition cannot fail.
func (r *Runner) Run(ctx context.Context, req Request) (*types.AnalysisResult, error) {
	if err := r.validate.Struct(req); err != nil {
		return nil, &extraction.InvalidInputError{Message: err.Error()}
	}

	var (
		profile *types.ResumeProfile
		job     *types.JobRequirements
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = r.extractResume(gctx, req.ResumeText)
		return err
	})
	g.Go(func() error {
		var err error
		job, err = r.extractJob(gctx, req.JobText)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	breakdown := r.engine.Score(*profile, *job)
	explanation := explain.Compose(breakdown, *profile, *job)

	result := &types.AnalysisResult{
		ID:              uuid.New(),
		CandidateName:   req.CandidateName,
		JobTitle:        req.JobTitle,
		Company:         req.Company,
		ResumeProfile:   *profile,
		JobRequirements: *job,
		ScoreBreakdown:  breakdown,
		Explanation:     explanation,
		CreatedAt:       time.Now().UTC(),
	}

	r.logger.Info("analysis complete",
		zap.String("analysis_id", result.ID.String()),
		zap.Int("final_score", breakdown.FinalScore),
		zap.Int("raw_score", breakdown.RawScore))

	return result, nil
}

func (r *Runner) extractResume(ctx context.Context, text string) (*types.ResumeProfile, error) {
	profile, trace, err := r.primary.ExtractResume(ctx, text)
	attempts := traceAttempts(trace)
	if err == nil {
		return profile, nil
	}
	if !extraction.IsTransient(err) || r.fallback == nil {
		return nil, wrapExhausted("resume", attempts, err)
	}

	r.logger.Warn("resume extraction falling back",
		zap.String("primary", r.primary.Provider()),
		zap.String("fallback", r.fallback.Provider()),
		zap.Error(err))

	profile, trace, ferr := r.fallback.ExtractResume(ctx, text)
	attempts += traceAttempts(trace)
	if ferr != nil {
		return nil, wrapExhausted("resume", attempts, ferr)
	}
	return profile, nil
}

func (r *Runner) extractJob(ctx context.Context, text string) (*types.JobRequirements, error) {
	job, trace, err := r.primary.ExtractJob(ctx, text)
	attempts := traceAttempts(trace)
	if err == nil {
		return job, nil
	}
	if !extraction.IsTransient(err) || r.fallback == nil {
		return nil, wrapExhausted("job", attempts, err)
	}

	r.logger.Warn("job extraction falling back",
		zap.String("primary", r.primary.Provider()),
		zap.String("fallback", r.fallback.Provider()),
		zap.Error(err))

	job, trace, ferr := r.fallback.ExtractJob(ctx, text)
	attempts += traceAttempts(trace)
	if ferr != nil {
		return nil, wrapExhausted("job", attempts, ferr)
	}
	return job, nil
}

// wrapExhausted converts the terminal extraction error for one document.
// Invalid input passes through untouched so callers can map it to a 400.
func wrapExhausted(document string, attempts int, err error) error {
	var invalid *extraction.InvalidInputError
	if errors.As(err, &invalid) {
		return err
	}
	return &extraction.ExtractionFailedError{Document: document, Attempts: attempts, Cause: err}
}

func traceAttempts(trace *extraction.Trace) int {
	if trace == nil {
		return 0
	}
	return trace.Attempts
}
