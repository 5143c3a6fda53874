// Package explain renders a ScoreBreakdown into a human-readable verdict.
// Composition is template-driven and deterministic: no model call is involved,
// so the narrative always agrees with the numbers it describes.
package explain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/resume-match/internal/types"
)

// Band labels for the final score.
const (
	BandExcellent = "excellent"
	BandGood      = "good"
	BandPoor      = "poor"
)

const recommendThreshold = 50

// Band maps a final score to its qualitative label.
func Band(finalScore int) string {
	switch {
	case finalScore >= 80:
		return BandExcellent
	case finalScore >= 60:
		return BandGood
	default:
		return BandPoor
	}
}

// Compose builds the explanation text for a scored analysis. Every claim in
// the output is derived from the breakdown, never restated from the raw text.
func Compose(breakdown types.ScoreBreakdown, resume types.ResumeProfile, job types.JobRequirements) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Overall match: %d/100 (%s fit).", breakdown.FinalScore, Band(breakdown.FinalScore))

	b.WriteString(skillsSentences(breakdown))
	b.WriteString(experienceSentence(breakdown, resume, job))
	b.WriteString(educationSentence(breakdown, job))
	b.WriteString(qualitySentence(breakdown, resume))

	if breakdown.FinalScore < recommendThreshold {
		b.WriteString(" Recommendation: this candidate is not a strong match for the role as described.")
	} else if keywords := RankedKeywords(breakdown, job); len(keywords) > 0 {
		fmt.Fprintf(&b, " To strengthen the application, emphasize or add: %s.", joinList(keywords))
	}

	return b.String()
}

// RankedKeywords lists the skills worth adding to the résumé, missing required
// skills first, then preferred skills the candidate lacks. Within each group
// keywords are ordered by first appearance in the responsibilities text;
// keywords not mentioned there keep their incoming order after the mentioned
// ones.
func RankedKeywords(breakdown types.ScoreBreakdown, job types.JobRequirements) []string {
	matchedPref := make(map[string]bool, len(breakdown.MatchedPreferredSkills))
	for _, skill := range breakdown.MatchedPreferredSkills {
		matchedPref[skill] = true
	}

	missingPref := make([]string, 0, len(job.PreferredSkills))
	for _, skill := range job.PreferredSkills {
		if !matchedPref[skill] {
			missingPref = append(missingPref, skill)
		}
	}

	responsibilities := strings.ToLower(strings.Join(job.Responsibilities, " "))
	keywords := make([]string, 0, len(breakdown.MissingRequiredSkills)+len(missingPref))
	keywords = append(keywords, sortByMention(breakdown.MissingRequiredSkills, responsibilities)...)
	keywords = append(keywords, sortByMention(missingPref, responsibilities)...)
	return keywords
}

// sortByMention orders skills by their first occurrence in the text. Skills
// absent from the text sort after all mentioned ones, preserving input order.
func sortByMention(skills []string, text string) []string {
	ordered := make([]string, len(skills))
	copy(ordered, skills)
	sort.SliceStable(ordered, func(i, j int) bool {
		pi := strings.Index(text, ordered[i])
		pj := strings.Index(text, ordered[j])
		if pi < 0 {
			return false
		}
		if pj < 0 {
			return true
		}
		return pi < pj
	})
	return ordered
}

func skillsSentences(breakdown types.ScoreBreakdown) string {
	var b strings.Builder
	delta := breakdown.DimensionDeltas[types.DimensionSkills]
	matched := len(breakdown.MatchedRequiredSkills)
	total := matched + len(breakdown.MissingRequiredSkills)

	if total > 0 {
		fmt.Fprintf(&b, " The candidate covers %d of %d required skills (%+d points)", matched, total, delta)
		if matched > 0 {
			fmt.Fprintf(&b, ": %s", joinList(breakdown.MatchedRequiredSkills))
		}
		b.WriteString(".")
	}
	if len(breakdown.MissingRequiredSkills) > 0 {
		fmt.Fprintf(&b, " Missing required skills: %s.", joinList(breakdown.MissingRequiredSkills))
	}
	if len(breakdown.MatchedPreferredSkills) > 0 {
		if total == 0 {
			// The whole skills delta comes from preferred bonuses.
			fmt.Fprintf(&b, " Preferred skills present (%+d points): %s.", delta, joinList(breakdown.MatchedPreferredSkills))
		} else {
			fmt.Fprintf(&b, " Preferred skills present: %s.", joinList(breakdown.MatchedPreferredSkills))
		}
	}
	return b.String()
}

func experienceSentence(breakdown types.ScoreBreakdown, resume types.ResumeProfile, job types.JobRequirements) string {
	delta := breakdown.DimensionDeltas[types.DimensionExperience]
	required := job.ExperienceRequired.MinYears
	if required <= 0 {
		return ""
	}

	have := resume.MaxInferredYears()
	if delta == 0 {
		return fmt.Sprintf(" Experience meets the bar: %s against %s required (no deduction).",
			formatYears(have), formatYears(required))
	}
	return fmt.Sprintf(" Experience falls short of the %s required (best evidence: %s), costing %d points.",
		formatYears(required), formatYears(have), -delta)
}

func educationSentence(breakdown types.ScoreBreakdown, job types.JobRequirements) string {
	if !job.EducationRequired.Required {
		return ""
	}
	delta := breakdown.DimensionDeltas[types.DimensionEducation]
	switch {
	case delta < 0:
		return fmt.Sprintf(" Education is below the required %s level (%d points).",
			job.EducationRequired.MinLevel, delta)
	case delta > 0:
		return fmt.Sprintf(" Education exceeds the required %s level (%+d points).",
			job.EducationRequired.MinLevel, delta)
	default:
		return fmt.Sprintf(" Education satisfies the required %s level (no deduction).", job.EducationRequired.MinLevel)
	}
}

func qualitySentence(breakdown types.ScoreBreakdown, resume types.ResumeProfile) string {
	delta := breakdown.DimensionDeltas[types.DimensionQuality]
	if delta == 0 && len(resume.QualitySignals) == 0 {
		return ""
	}
	if len(resume.QualitySignals) == 0 {
		return fmt.Sprintf(" Resume quality adjusts the score by %+d points.", delta)
	}
	return fmt.Sprintf(" Resume quality adjusts the score by %+d points (signals: %s).",
		delta, joinList(resume.QualitySignals))
}

func formatYears(years float64) string {
	if years == float64(int(years)) {
		return fmt.Sprintf("%d years", int(years))
	}
	return fmt.Sprintf("%.1f years", years)
}

func joinList(items []string) string {
	return strings.Join(items, ", ")
}
