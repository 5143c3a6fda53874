package scoring

import (
	"math"
	"sort"
	"strings"

	"github.com/jonathan/resume-match/internal/types"
)

// Engine computes a ScoreBreakdown from structured records. Score is a pure
// function: no external calls, no randomness, no wall clock; identical inputs
// yield bit-identical breakdowns.
type Engine struct {
	cfg     Config
	matcher SkillMatcher
}

// NewEngine creates an engine with the given constants and the default
// matching strategy chain.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg, matcher: DefaultMatchers()}
}

// NewEngineWithMatcher creates an engine with a custom matching strategy.
func NewEngineWithMatcher(cfg Config, matcher SkillMatcher) *Engine {
	return &Engine{cfg: cfg, matcher: matcher}
}

// Score combines the two records into additive per-dimension deltas on top of
// the base score. It is total: it never fails for well-typed input.
func (e *Engine) Score(resume types.ResumeProfile, job types.JobRequirements) types.ScoreBreakdown {
	skillsDelta, matchedReq, missingReq, matchedPref := e.scoreSkills(resume, job)

	deltas := map[string]int{
		types.DimensionSkills:     skillsDelta,
		types.DimensionExperience: e.scoreExperience(resume, job),
		types.DimensionEducation:  e.scoreEducation(resume, job),
		types.DimensionQuality:    e.scoreQuality(resume),
	}

	raw := baseScore
	for _, delta := range deltas {
		raw += delta
	}

	return types.ScoreBreakdown{
		BaseScore:              baseScore,
		DimensionDeltas:        deltas,
		RawScore:               raw,
		FinalScore:             clamp(raw),
		MatchedRequiredSkills:  matchedReq,
		MissingRequiredSkills:  missingReq,
		MatchedPreferredSkills: matchedPref,
	}
}

func clamp(score int) int {
	if score < clampFloor {
		return clampFloor
	}
	if score > clampCeil {
		return clampCeil
	}
	return score
}

// scoreSkills deducts for each unmatched required skill, scaled by the missing
// fraction so each gap weighs more in a small requirement set, and grants
// capped bonuses for matched preferred skills.
func (e *Engine) scoreSkills(resume types.ResumeProfile, job types.JobRequirements) (delta int, matchedReq, missingReq, matchedPref []string) {
	matchedReq = make([]string, 0, len(job.RequiredSkills))
	missingReq = make([]string, 0)
	matchedPref = make([]string, 0)

	for _, wanted := range job.RequiredSkills {
		if e.hasSkill(resume.Skills, wanted) {
			matchedReq = append(matchedReq, wanted)
		} else {
			missingReq = append(missingReq, wanted)
		}
	}

	if len(missingReq) > 0 {
		fraction := float64(len(missingReq)) / float64(len(job.RequiredSkills))
		perSkill := int(math.Round(e.cfg.MissingSkillBase + e.cfg.MissingSkillScale*fraction))
		if perSkill < e.cfg.MissingSkillMin {
			perSkill = e.cfg.MissingSkillMin
		}
		if perSkill > e.cfg.MissingSkillMax {
			perSkill = e.cfg.MissingSkillMax
		}
		delta -= perSkill * len(missingReq)
	}

	responsibilities := strings.ToLower(strings.Join(job.Responsibilities, " "))
	bonus := 0
	for _, wanted := range job.PreferredSkills {
		if !e.hasSkill(resume.Skills, wanted) {
			continue
		}
		matchedPref = append(matchedPref, wanted)
		b := e.cfg.PreferredBonus
		if strings.Contains(responsibilities, wanted) {
			b = e.cfg.PreferredStrongBonus
		}
		bonus += b
	}
	if bonus > e.cfg.PreferredBonusCap {
		bonus = e.cfg.PreferredBonusCap
	}
	delta += bonus

	sort.Strings(matchedReq)
	sort.Strings(missingReq)
	sort.Strings(matchedPref)
	return delta, matchedReq, missingReq, matchedPref
}

func (e *Engine) hasSkill(skills []string, wanted string) bool {
	for _, skill := range skills {
		if e.matcher.Matches(skill, wanted) {
			return true
		}
	}
	return false
}

// scoreExperience penalizes the gap between required and best inferred years,
// linearly down to the floor, with bounded relief for domain overlap.
func (e *Engine) scoreExperience(resume types.ResumeProfile, job types.JobRequirements) int {
	gap := job.ExperienceRequired.MinYears - resume.MaxInferredYears()
	if gap <= 0 {
		return 0
	}

	penalty := float64(e.cfg.ExperienceSoftPenalty)
	if gap > e.cfg.ExperienceSoftGapYears {
		penalty += (gap - e.cfg.ExperienceSoftGapYears) * float64(e.cfg.ExperiencePerYear)
	}
	if penalty > float64(e.cfg.ExperienceFloorPenalty) {
		penalty = float64(e.cfg.ExperienceFloorPenalty)
	}

	delta := -int(math.Round(penalty)) + e.domainRelief(resume, job)
	if delta > 0 {
		delta = 0
	}
	return delta
}

// domainRelief grants bounded credit when résumé roles or companies overlap
// the job's relevant domains.
func (e *Engine) domainRelief(resume types.ResumeProfile, job types.JobRequirements) int {
	if len(job.ExperienceRequired.RelevantDomains) == 0 {
		return 0
	}

	var sb strings.Builder
	for _, exp := range resume.Experience {
		sb.WriteString(strings.ToLower(exp.Role))
		sb.WriteString(" ")
		sb.WriteString(strings.ToLower(exp.Company))
		sb.WriteString(" ")
	}
	haystack := sb.String()

	relief := 0
	for _, domain := range job.ExperienceRequired.RelevantDomains {
		if domain != "" && strings.Contains(haystack, domain) {
			relief += e.cfg.DomainReliefPerMatch
		}
	}
	if relief > e.cfg.DomainReliefCap {
		relief = e.cfg.DomainReliefCap
	}
	return relief
}

// scoreEducation compares the candidate's best degree level against the
// required minimum on the enum's total order, with graduation-recency
// weighting for qualifying degrees.
func (e *Engine) scoreEducation(resume types.ResumeProfile, job types.JobRequirements) int {
	if !job.EducationRequired.Required {
		return 0
	}
	requiredRank := job.EducationRequired.MinLevel.Rank()
	if requiredRank == 0 {
		// An unranked minimum level (other/unknown) sets no comparable bar.
		return 0
	}

	bestRank := resume.BestDegreeRank()
	floor := -e.cfg.EducationTwoLevelPenalty

	if bestRank < requiredRank {
		if requiredRank-bestRank == 1 {
			return -e.cfg.EducationOneLevelPenalty
		}
		return floor
	}

	delta := 0
	if bestRank > requiredRank {
		delta = e.cfg.EducationOverqualifyBonus
	}

	if e.cfg.ReferenceYear > 0 {
		recentYear := 0
		for _, edu := range resume.Education {
			if edu.Level.Rank() >= requiredRank && edu.Year > recentYear {
				recentYear = edu.Year
			}
		}
		if recentYear > 0 && e.cfg.ReferenceYear-recentYear > e.cfg.RecencyThresholdYears {
			delta -= e.cfg.RecencyPenalty
		}
	}

	if delta < floor {
		delta = floor
	}
	return delta
}

// scoreQuality derives a small bounded modifier from the writing-quality
// signals. Its narrow range guarantees it can never decide the band alone.
func (e *Engine) scoreQuality(resume types.ResumeProfile) int {
	if len(resume.QualitySignals) == 0 {
		return 0
	}

	score := 0
	for _, signal := range resume.QualitySignals {
		s := strings.ToLower(signal)
		switch {
		case containsAny(s, e.cfg.NegativeSignalWords):
			score--
		case containsAny(s, e.cfg.PositiveSignalWords):
			score++
		}
	}

	if score > e.cfg.QualityBound {
		score = e.cfg.QualityBound
	}
	if score < -e.cfg.QualityBound {
		score = -e.cfg.QualityBound
	}
	return score
}

func containsAny(s string, words []string) bool {
	for _, word := range words {
		if strings.Contains(s, word) {
			return true
		}
	}
	return false
}
