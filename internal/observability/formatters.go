// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/resume-match/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResumeProfile outputs a human-readable summary of the extracted résumé.
func (p *Printer) PrintResumeProfile(profile *types.ResumeProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	if len(profile.Skills) > 0 {
		sb.WriteString("Skills:\n")
		count := min(len(profile.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.Skills[i]))
		}
		if len(profile.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Skills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(profile.Experience) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(profile.Experience), 3)
		for i := 0; i < count; i++ {
			exp := profile.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s", exp.Role))
			if exp.Company != "" {
				sb.WriteString(fmt.Sprintf(" at %s", exp.Company))
			}
			if exp.InferredYears != nil {
				sb.WriteString(fmt.Sprintf(" (%.1fy)", *exp.InferredYears))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(profile.Education) > 0 {
		sb.WriteString("Education:\n")
		for _, edu := range profile.Education {
			sb.WriteString(fmt.Sprintf("  • %s", edu.Degree))
			if edu.Year > 0 {
				sb.WriteString(fmt.Sprintf(" (%d)", edu.Year))
			}
			sb.WriteString("\n")
		}
	}

	p.printBox("EXTRACTED RESUME PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobRequirements outputs a human-readable summary of the parsed job.
func (p *Printer) PrintJobRequirements(job *types.JobRequirements) {
	if job == nil {
		return
	}

	var sb strings.Builder

	if len(job.RequiredSkills) > 0 {
		sb.WriteString("Required Skills:\n")
		count := min(len(job.RequiredSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", job.RequiredSkills[i]))
		}
		if len(job.RequiredSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(job.RequiredSkills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(job.PreferredSkills) > 0 {
		sb.WriteString("Preferred Skills:\n")
		count := min(len(job.PreferredSkills), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", job.PreferredSkills[i]))
		}
		if len(job.PreferredSkills) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(job.PreferredSkills)-3))
		}
		sb.WriteString("\n")
	}

	if job.ExperienceRequired.MinYears > 0 {
		sb.WriteString(fmt.Sprintf("Experience: %.1f+ years\n", job.ExperienceRequired.MinYears))
	}
	if job.EducationRequired.Required {
		sb.WriteString(fmt.Sprintf("Education:  %s minimum\n", job.EducationRequired.MinLevel))
	}

	p.printBox("PARSED JOB REQUIREMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScoreBreakdown outputs the per-dimension deltas and the final score.
func (p *Printer) PrintScoreBreakdown(breakdown *types.ScoreBreakdown) {
	if breakdown == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base score:  %d\n\n", breakdown.BaseScore))

	dimensions := make([]string, 0, len(breakdown.DimensionDeltas))
	for name := range breakdown.DimensionDeltas {
		dimensions = append(dimensions, name)
	}
	sort.Strings(dimensions)
	for _, name := range dimensions {
		sb.WriteString(fmt.Sprintf("  %-12s %+d\n", name, breakdown.DimensionDeltas[name]))
	}

	sb.WriteString(fmt.Sprintf("\nRaw score:   %d\n", breakdown.RawScore))
	sb.WriteString(fmt.Sprintf("Final score: %d", breakdown.FinalScore))
	if breakdown.FinalScore != breakdown.RawScore {
		sb.WriteString(" (clamped)")
	}
	sb.WriteString("\n")

	if len(breakdown.MissingRequiredSkills) > 0 {
		missing := strings.Join(breakdown.MissingRequiredSkills, ", ")
		if len(missing) > 40 {
			missing = missing[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("\nMissing:     %s\n", missing))
	}

	p.printBox("SCORE BREAKDOWN", strings.TrimSuffix(sb.String(), "\n"))
}
