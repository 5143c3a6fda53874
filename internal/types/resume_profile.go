// Package types provides type definitions for structured data used throughout the resume-match system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ResumeProfile represents the structured facts extracted from a candidate résumé.
// Skills is a normalized set: lowercased, deduplicated, sorted. Text fields are
// trimmed and present (empty string when absent, never null).
type ResumeProfile struct {
	Skills         []string     `json:"skills"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	QualitySignals []string     `json:"quality_signals"`
}

// Experience is a single position held by the candidate.
// InferredYears is nil when the duration could not be quantified from the text.
type Experience struct {
	Role          string   `json:"role"`
	Company       string   `json:"company"`
	DurationText  string   `json:"duration_text"`
	InferredYears *float64 `json:"inferred_years"`
}

// Education is a single qualification. Year is the graduation year, 0 when unknown.
type Education struct {
	Degree      string      `json:"degree"`
	Institution string      `json:"institution"`
	Year        int         `json:"year"`
	Level       DegreeLevel `json:"degree_level"`
}

// BestDegreeRank returns the highest degree rank across all education entries.
func (p ResumeProfile) BestDegreeRank() int {
	best := 0
	for _, edu := range p.Education {
		if r := edu.Level.Rank(); r > best {
			best = r
		}
	}
	return best
}

// MaxInferredYears returns the largest inferred experience duration,
// treating unknown durations as zero.
func (p ResumeProfile) MaxInferredYears() float64 {
	best := 0.0
	for _, exp := range p.Experience {
		if exp.InferredYears != nil && *exp.InferredYears > best {
			best = *exp.InferredYears
		}
	}
	return best
}
