package extraction

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-match/internal/llm"
)

const validResumeDoc = `{
	"skills": ["Go", "PostgreSQL", "go"],
	"experience": [
		{"role": " Backend Engineer ", "company": "Acme", "duration_text": "2019 - 2024", "inferred_years": 5}
	],
	"education": [
		{"degree": "B.S. Computer Science", "institution": "State University", "year": "May 2018"}
	],
	"quality_signals": ["clear, quantified bullet points", " "]
}`

const validJobDoc = `{
	"required_skills": ["Go", "Kubernetes"],
	"preferred_skills": ["go", "Terraform"],
	"experience_required": {"min_years": "3+ years", "relevant_domains": ["Fintech"]},
	"education_required": {"min_level": "bachelor", "required": true},
	"responsibilities": ["Build services", "  ", "Operate clusters"]
}`

// stubClient replays canned responses and errors in call order, repeating the
// last entry once exhausted.
type stubClient struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	prompts   []string
}

func (s *stubClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := len(s.prompts)
	s.prompts = append(s.prompts, prompt)

	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if len(s.responses) == 0 {
		return "", errors.New("no responses configured")
	}
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	return s.responses[i], nil
}

func (s *stubClient) Model(llm.ModelTier) string { return "stub-model" }
func (s *stubClient) Close() error               { return nil }

func (s *stubClient) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

func TestExtractResumeEmptyInput(t *testing.T) {
	client := &stubClient{}
	extractor := New(client, Options{Provider: "test"})

	_, _, err := extractor.ExtractResume(context.Background(), "   \n\t ")

	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "resume_text", invalid.Field)
	assert.Equal(t, 0, client.calls(), "no capability call for empty input")
}

func TestExtractResumeFirstAttempt(t *testing.T) {
	client := &stubClient{responses: []string{validResumeDoc}}
	extractor := New(client, Options{Provider: "test", RepairRetries: 1})

	profile, trace, err := extractor.ExtractResume(context.Background(), "some resume text")
	require.NoError(t, err)
	require.NotNil(t, profile)

	assert.Equal(t, 1, trace.Attempts)
	assert.Equal(t, 0, trace.RepairRetries)
	assert.Equal(t, []string{"go", "postgresql"}, profile.Skills)

	require.Len(t, profile.Experience, 1)
	assert.Equal(t, "Backend Engineer", profile.Experience[0].Role)
	require.NotNil(t, profile.Experience[0].InferredYears)
	assert.Equal(t, 5.0, *profile.Experience[0].InferredYears)

	require.Len(t, profile.Education, 1)
	assert.Equal(t, 2018, profile.Education[0].Year)

	assert.Equal(t, []string{"clear, quantified bullet points"}, profile.QualitySignals)
}

func TestExtractResumeRepairsInvalidResponse(t *testing.T) {
	client := &stubClient{responses: []string{`{"nonsense": true}`, validResumeDoc}}
	extractor := New(client, Options{Provider: "test", RepairRetries: 1})

	profile, trace, err := extractor.ExtractResume(context.Background(), "some resume text")
	require.NoError(t, err)
	require.NotNil(t, profile)

	assert.Equal(t, 2, trace.Attempts)
	assert.Equal(t, 1, trace.RepairRetries)
	require.Equal(t, 2, client.calls())
	assert.Contains(t, client.prompts[1], "did not match the required JSON structure")
}

func TestExtractResumeExhaustsRepairBudget(t *testing.T) {
	client := &stubClient{responses: []string{`{"nonsense": true}`}}
	extractor := New(client, Options{Provider: "test", RepairRetries: 1})

	_, trace, err := extractor.ExtractResume(context.Background(), "some resume text")

	var schemaErr *SchemaValidationError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "test", schemaErr.Provider)
	assert.Equal(t, 2, trace.Attempts)
}

func TestExtractResumeNoRepairWithoutBudget(t *testing.T) {
	client := &stubClient{responses: []string{`{"nonsense": true}`}}
	extractor := New(client, Options{Provider: "fallback", RepairRetries: 0})

	_, trace, err := extractor.ExtractResume(context.Background(), "some resume text")

	var schemaErr *SchemaValidationError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, 1, trace.Attempts)
	assert.Equal(t, 1, client.calls())
}

func TestExtractResumeTimeoutSkipsRepair(t *testing.T) {
	client := &stubClient{errs: []error{context.DeadlineExceeded}}
	extractor := New(client, Options{Provider: "test", RepairRetries: 1})

	_, trace, err := extractor.ExtractResume(context.Background(), "some resume text")

	var timeout *TimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, 1, trace.Attempts, "timeouts are not repairable")
}

func TestExtractResumeCapabilityError(t *testing.T) {
	client := &stubClient{errs: []error{errors.New("quota exceeded")}}
	extractor := New(client, Options{Provider: "test", RepairRetries: 1})

	_, _, err := extractor.ExtractResume(context.Background(), "some resume text")

	var capErr *CapabilityError
	require.ErrorAs(t, err, &capErr)
	assert.Contains(t, capErr.Error(), "quota exceeded")
}

func TestExtractResumeStripsMarkdownFences(t *testing.T) {
	fenced := "```json\n" + validResumeDoc + "\n```"
	client := &stubClient{responses: []string{fenced}}
	extractor := New(client, Options{Provider: "test"})

	profile, _, err := extractor.ExtractResume(context.Background(), "some resume text")
	require.NoError(t, err)
	assert.NotEmpty(t, profile.Skills)
}

func TestExtractJob(t *testing.T) {
	client := &stubClient{responses: []string{validJobDoc}}
	extractor := New(client, Options{Provider: "test"})

	job, _, err := extractor.ExtractJob(context.Background(), "some job text")
	require.NoError(t, err)
	require.NotNil(t, job)

	assert.Equal(t, []string{"go", "kubernetes"}, job.RequiredSkills)
	// "go" appears in both lists; required wins.
	assert.Equal(t, []string{"terraform"}, job.PreferredSkills)
	assert.Equal(t, 3.0, job.ExperienceRequired.MinYears)
	assert.Equal(t, []string{"fintech"}, job.ExperienceRequired.RelevantDomains)
	assert.True(t, job.EducationRequired.Required)
	assert.Equal(t, "bachelor", string(job.EducationRequired.MinLevel))
	assert.Equal(t, []string{"Build services", "Operate clusters"}, job.Responsibilities)
}

func TestExtractJobPromptContainsText(t *testing.T) {
	client := &stubClient{responses: []string{validJobDoc}}
	extractor := New(client, Options{Provider: "test"})

	_, _, err := extractor.ExtractJob(context.Background(), "unique marker text 42")
	require.NoError(t, err)
	require.Equal(t, 1, client.calls())
	assert.True(t, strings.Contains(client.prompts[0], "unique marker text 42"))
}
