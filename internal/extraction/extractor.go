// Package extraction converts unstructured résumé and job description text
// into validated structured records via a language-model capability call.
package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jonathan/resume-match/internal/llm"
	"github.com/jonathan/resume-match/internal/prompts"
	"github.com/jonathan/resume-match/internal/schemas"
	"github.com/jonathan/resume-match/internal/types"
)

const (
	promptFile      = "extraction.json"
	resumePromptKey = "extract-resume-profile"
	jobPromptKey    = "extract-job-requirements"
	repairPromptKey = "repair-extraction"

	defaultCallTimeout = 60 * time.Second
)

// Options configures an Extractor for one provider.
type Options struct {
	// Provider is a human-readable name used in errors and logs.
	Provider string
	// Tier selects the model tier for extraction calls.
	Tier llm.ModelTier
	// CallTimeout is the deadline applied to each individual capability call.
	CallTimeout time.Duration
	// RepairRetries is the number of schema-repair retries against this
	// provider. The primary provider gets 1; a fallback provider gets 0 so
	// total attempts per document stay within budget.
	RepairRetries int
}

// Extractor performs schema-validated structured extraction against a single
// provider. It holds no state between calls and is safe for concurrent use.
type Extractor struct {
	client        llm.Client
	provider      string
	tier          llm.ModelTier
	callTimeout   time.Duration
	repairRetries int
}

// Trace records how a single extraction was obtained, for logging and tests.
type Trace struct {
	Provider      string
	Attempts      int
	RepairRetries int
}

// New creates an Extractor over the given capability client.
func New(client llm.Client, opts Options) *Extractor {
	if opts.Provider == "" {
		opts.Provider = "default"
	}
	if opts.Tier == "" {
		opts.Tier = llm.TierStandard
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = defaultCallTimeout
	}
	return &Extractor{
		client:        client,
		provider:      opts.Provider,
		tier:          opts.Tier,
		callTimeout:   opts.CallTimeout,
		repairRetries: opts.RepairRetries,
	}
}

// Provider returns the provider name this extractor is bound to.
func (e *Extractor) Provider() string {
	return e.provider
}

// ExtractResume extracts a normalized ResumeProfile from résumé text.
func (e *Extractor) ExtractResume(ctx context.Context, text string) (*types.ResumeProfile, *Trace, error) {
	doc, trace, err := e.run(ctx, resumePromptKey, "resume_text", text, schemas.ValidateResumeProfile)
	if err != nil {
		return nil, trace, err
	}

	profile, err := decodeResume(doc)
	if err != nil {
		return nil, trace, &SchemaValidationError{Provider: e.provider, Reason: err.Error(), Cause: err}
	}
	return profile, trace, nil
}

// ExtractJob extracts normalized JobRequirements from job description text.
func (e *Extractor) ExtractJob(ctx context.Context, text string) (*types.JobRequirements, *Trace, error) {
	doc, trace, err := e.run(ctx, jobPromptKey, "job_text", text, schemas.ValidateJobRequirements)
	if err != nil {
		return nil, trace, err
	}

	job, err := decodeJob(doc)
	if err != nil {
		return nil, trace, &SchemaValidationError{Provider: e.provider, Reason: err.Error(), Cause: err}
	}
	return job, trace, nil
}

// run drives the call/validate/repair loop and returns the first response
// document that passes schema validation.
func (e *Extractor) run(ctx context.Context, promptKey, field, text string, validateDoc func(string) error) (string, *Trace, error) {
	trace := &Trace{Provider: e.provider}

	trimmedText := strings.TrimSpace(text)
	if trimmedText == "" {
		return "", trace, &InvalidInputError{Field: field, Message: "text is empty"}
	}

	original := prompts.Format(prompts.MustGet(promptFile, promptKey), map[string]string{
		"Text": trimmedText,
	})
	prompt := original

	var lastErr error
	for attempt := 0; attempt <= e.repairRetries; attempt++ {
		trace.Attempts++

		doc, err := e.generate(ctx, prompt)
		if err != nil {
			// Timeouts and capability failures are not fixable by a repair
			// prompt; surface them for provider fallback.
			return "", trace, err
		}

		verr := validateDoc(doc)
		if verr == nil {
			return doc, trace, nil
		}
		lastErr = &SchemaValidationError{Provider: e.provider, Reason: verr.Error(), Cause: verr}

		if attempt < e.repairRetries {
			trace.RepairRetries++
			prompt = prompts.Format(prompts.MustGet(promptFile, repairPromptKey), map[string]string{
				"Failure":  verr.Error(),
				"Original": original,
			})
		}
	}
	return "", trace, lastErr
}

func (e *Extractor) generate(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, e.callTimeout)
	defer cancel()

	doc, err := e.client.GenerateJSON(callCtx, prompt, e.tier)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || callCtx.Err() == context.DeadlineExceeded {
			return "", &TimeoutError{Provider: e.provider, Cause: err}
		}
		return "", &CapabilityError{Provider: e.provider, Cause: err}
	}
	return llm.CleanJSONBlock(doc), nil
}

// --- Response decoding ---
//
// Raw DTOs mirror the schema exactly; coercion and normalization happen here,
// at the trust boundary, so the rest of the system only sees clean records.

type rawResume struct {
	Skills     []string `json:"skills"`
	Experience []struct {
		Role          string   `json:"role"`
		Company       string   `json:"company"`
		DurationText  *string  `json:"duration_text"`
		InferredYears *float64 `json:"inferred_years"`
	} `json:"experience"`
	Education []struct {
		Degree      string  `json:"degree"`
		Institution *string `json:"institution"`
		Year        any     `json:"year"`
	} `json:"education"`
	QualitySignals []string `json:"quality_signals"`
}

func decodeResume(doc string) (*types.ResumeProfile, error) {
	var raw rawResume
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		return nil, err
	}

	profile := &types.ResumeProfile{
		Skills:         NormalizeSkills(raw.Skills),
		Experience:     make([]types.Experience, 0, len(raw.Experience)),
		Education:      make([]types.Education, 0, len(raw.Education)),
		QualitySignals: make([]string, 0, len(raw.QualitySignals)),
	}

	for _, exp := range raw.Experience {
		profile.Experience = append(profile.Experience, types.Experience{
			Role:          strings.TrimSpace(exp.Role),
			Company:       strings.TrimSpace(exp.Company),
			DurationText:  trimmed(exp.DurationText),
			InferredYears: exp.InferredYears,
		})
	}

	for _, edu := range raw.Education {
		degree := strings.TrimSpace(edu.Degree)
		profile.Education = append(profile.Education, types.Education{
			Degree:      degree,
			Institution: trimmed(edu.Institution),
			Year:        coerceYear(edu.Year),
			Level:       MapDegreeLevel(degree),
		})
	}

	for _, signal := range raw.QualitySignals {
		if s := strings.TrimSpace(signal); s != "" {
			profile.QualitySignals = append(profile.QualitySignals, s)
		}
	}

	return profile, nil
}

type rawJob struct {
	RequiredSkills     []string `json:"required_skills"`
	PreferredSkills    []string `json:"preferred_skills"`
	ExperienceRequired struct {
		MinYears        any      `json:"min_years"`
		RelevantDomains []string `json:"relevant_domains"`
	} `json:"experience_required"`
	EducationRequired struct {
		MinLevel *string `json:"min_level"`
		Required bool    `json:"required"`
	} `json:"education_required"`
	Responsibilities []string `json:"responsibilities"`
}

func decodeJob(doc string) (*types.JobRequirements, error) {
	var raw rawJob
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		return nil, err
	}

	required := NormalizeSkills(raw.RequiredSkills)
	requiredSet := make(map[string]bool, len(required))
	for _, skill := range required {
		requiredSet[skill] = true
	}

	// A skill named in both lists is treated as required only.
	preferred := make([]string, 0, len(raw.PreferredSkills))
	for _, skill := range NormalizeSkills(raw.PreferredSkills) {
		if !requiredSet[skill] {
			preferred = append(preferred, skill)
		}
	}

	job := &types.JobRequirements{
		RequiredSkills:  required,
		PreferredSkills: preferred,
		ExperienceRequired: types.ExperienceRequired{
			MinYears:        coerceYears(raw.ExperienceRequired.MinYears),
			RelevantDomains: NormalizeSkills(raw.ExperienceRequired.RelevantDomains),
		},
		EducationRequired: types.EducationRequired{
			MinLevel: MapDegreeLevel(trimmed(raw.EducationRequired.MinLevel)),
			Required: raw.EducationRequired.Required,
		},
		Responsibilities: make([]string, 0, len(raw.Responsibilities)),
	}

	for _, resp := range raw.Responsibilities {
		if r := strings.TrimSpace(resp); r != "" {
			job.Responsibilities = append(job.Responsibilities, r)
		}
	}

	return job, nil
}
