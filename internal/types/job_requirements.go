package types

// JobRequirements represents the structured facts extracted from a job description.
// RequiredSkills and PreferredSkills are normalized sets kept disjoint: a skill
// named in both is treated as required only.
type JobRequirements struct {
	RequiredSkills     []string           `json:"required_skills"`
	PreferredSkills    []string           `json:"preferred_skills"`
	ExperienceRequired ExperienceRequired `json:"experience_required"`
	EducationRequired  EducationRequired  `json:"education_required"`
	Responsibilities   []string           `json:"responsibilities"`
}

// ExperienceRequired captures the experience bar set by the posting.
type ExperienceRequired struct {
	MinYears        float64  `json:"min_years"`
	RelevantDomains []string `json:"relevant_domains"`
}

// EducationRequired captures the education bar set by the posting.
// Required false means education never affects the score.
type EducationRequired struct {
	MinLevel DegreeLevel `json:"min_level"`
	Required bool        `json:"required"`
}
