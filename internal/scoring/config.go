// Package scoring implements the deterministic compatibility scoring engine.
package scoring

// Fixed clamp bounds. These are deliberately not configurable so scores stay
// comparable across analyses.
const (
	baseScore  = 100
	clampFloor = 15
	clampCeil  = 95
)

// Config holds the tunable scoring constants. The interpolation weights are
// heuristics, not load-bearing values; the defaults reproduce the documented
// reference scenarios.
type Config struct {
	// Missing required skill deduction: round(MissingSkillBase +
	// MissingSkillScale * missing/required) per missing skill, clamped to
	// [MissingSkillMin, MissingSkillMax].
	MissingSkillBase  float64
	MissingSkillScale float64
	MissingSkillMin   int
	MissingSkillMax   int

	// Preferred skill bonuses. A preferred skill that also appears in the
	// responsibilities text earns the strong bonus. Total capped.
	PreferredBonus       int
	PreferredStrongBonus int
	PreferredBonusCap    int

	// Experience gap penalties: SoftPenalty within SoftGapYears, then linear
	// by PerYear, capped at FloorPenalty.
	ExperienceSoftGapYears float64
	ExperienceSoftPenalty  int
	ExperiencePerYear      int
	ExperienceFloorPenalty int

	// Domain relevance relief, per matched domain and total cap. Relief never
	// turns a penalty positive.
	DomainReliefPerMatch int
	DomainReliefCap      int

	// Education penalties and the small overqualification nudge.
	EducationOneLevelPenalty  int
	EducationTwoLevelPenalty  int
	EducationOverqualifyBonus int

	// Graduation-recency weighting: degrees older than RecencyThresholdYears
	// relative to ReferenceYear cost an extra RecencyPenalty. ReferenceYear 0
	// disables the weighting, keeping the engine free of wall-clock reads.
	RecencyThresholdYears int
	RecencyPenalty        int
	ReferenceYear         int

	// Quality modifier bound: the quality dimension stays in [-Bound, +Bound]
	// so it can never decide the band on its own.
	QualityBound int

	// Signal keyword lists driving the quality modifier.
	PositiveSignalWords []string
	NegativeSignalWords []string
}

// DefaultConfig returns the documented default scoring constants.
func DefaultConfig() Config {
	return Config{
		MissingSkillBase:  7,
		MissingSkillScale: 8,
		MissingSkillMin:   7,
		MissingSkillMax:   15,

		PreferredBonus:       3,
		PreferredStrongBonus: 5,
		PreferredBonusCap:    15,

		ExperienceSoftGapYears: 2,
		ExperienceSoftPenalty:  10,
		ExperiencePerYear:      5,
		ExperienceFloorPenalty: 30,

		DomainReliefPerMatch: 2,
		DomainReliefCap:      5,

		EducationOneLevelPenalty:  10,
		EducationTwoLevelPenalty:  20,
		EducationOverqualifyBonus: 2,

		RecencyThresholdYears: 20,
		RecencyPenalty:        5,

		QualityBound: 5,

		PositiveSignalWords: []string{"clear", "concise", "quantified", "well-structured", "well organized", "strong"},
		NegativeSignalWords: []string{"typo", "vague", "unclear", "inconsistent", "cluttered", "sparse"},
	}
}
