package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-match/internal/types"
)

func TestPrintResumeProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	years := 5.0
	p.PrintResumeProfile(&types.ResumeProfile{
		Skills: []string{"go", "postgresql"},
		Experience: []types.Experience{
			{Role: "Backend Engineer", Company: "Acme", InferredYears: &years},
		},
		Education: []types.Education{
			{Degree: "BS Computer Science", Year: 2018, Level: types.DegreeBachelor},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "EXTRACTED RESUME PROFILE")
	assert.Contains(t, out, "go")
	assert.Contains(t, out, "Backend Engineer at Acme")
	assert.Contains(t, out, "BS Computer Science (2018)")
}

func TestPrintJobRequirements(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJobRequirements(&types.JobRequirements{
		RequiredSkills:  []string{"go", "kubernetes"},
		PreferredSkills: []string{"terraform"},
		ExperienceRequired: types.ExperienceRequired{
			MinYears: 3,
		},
		EducationRequired: types.EducationRequired{
			MinLevel: types.DegreeBachelor,
			Required: true,
		},
	})

	out := buf.String()
	assert.Contains(t, out, "PARSED JOB REQUIREMENTS")
	assert.Contains(t, out, "kubernetes")
	assert.Contains(t, out, "3.0+ years")
	assert.Contains(t, out, "bachelor minimum")
}

func TestPrintScoreBreakdown(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintScoreBreakdown(&types.ScoreBreakdown{
		BaseScore: 100,
		DimensionDeltas: map[string]int{
			types.DimensionSkills:     -10,
			types.DimensionExperience: 0,
		},
		RawScore:              110,
		FinalScore:            95,
		MissingRequiredSkills: []string{"kubernetes"},
	})

	out := buf.String()
	assert.Contains(t, out, "SCORE BREAKDOWN")
	assert.Contains(t, out, "skills")
	assert.Contains(t, out, "(clamped)")
	assert.Contains(t, out, "kubernetes")
}

func TestPrintersIgnoreNil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResumeProfile(nil)
	p.PrintJobRequirements(nil)
	p.PrintScoreBreakdown(nil)

	assert.Empty(t, buf.String())
}
