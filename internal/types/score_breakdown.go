package types

// Dimension names contributing independent deltas to the score.
const (
	DimensionSkills     = "skills"
	DimensionExperience = "experience"
	DimensionEducation  = "education"
	DimensionQuality    = "quality"
)

// ScoreBreakdown is the artifact produced by the scoring engine.
// RawScore is the unclamped diagnostic value and is always retained;
// FinalScore is RawScore clamped to [15, 95]. Skill slices are sorted so
// identical inputs yield byte-identical breakdowns.
type ScoreBreakdown struct {
	BaseScore              int            `json:"base_score"`
	DimensionDeltas        map[string]int `json:"dimension_deltas"`
	RawScore               int            `json:"raw_score"`
	FinalScore             int            `json:"final_score"`
	MatchedRequiredSkills  []string       `json:"matched_required_skills"`
	MissingRequiredSkills  []string       `json:"missing_required_skills"`
	MatchedPreferredSkills []string       `json:"matched_preferred_skills"`
}
