package scoring

import "strings"

// SkillMatcher decides whether a normalized résumé skill satisfies a
// normalized required or preferred skill. Matching is kept pluggable so the
// score stays auditable independent of the language model.
type SkillMatcher interface {
	Matches(resumeSkill, wantedSkill string) bool
}

// ExactMatcher matches identical normalized strings.
type ExactMatcher struct{}

// Matches reports string equality.
func (ExactMatcher) Matches(resumeSkill, wantedSkill string) bool {
	return resumeSkill == wantedSkill
}

// SynonymMatcher matches skills through a table of known equivalents.
type SynonymMatcher struct {
	table map[string][]string
}

// defaultSynonyms maps a canonical skill to its accepted variants, both
// directions are checked.
var defaultSynonyms = map[string][]string{
	"go":         {"golang"},
	"javascript": {"js", "ecmascript"},
	"typescript": {"ts"},
	"kubernetes": {"k8s"},
	"postgresql": {"postgres"},
	"node.js":    {"nodejs", "node"},
	"react":      {"react.js", "reactjs"},
	"amazon web services": {"aws"},
	"machine learning":    {"ml"},
	"sql":                 {"mysql", "postgresql", "postgres"},
}

// NewSynonymMatcher builds a matcher over the default synonym table.
func NewSynonymMatcher() SynonymMatcher {
	return SynonymMatcher{table: defaultSynonyms}
}

// Matches reports whether the two skills are listed as equivalents.
func (m SynonymMatcher) Matches(resumeSkill, wantedSkill string) bool {
	return m.related(resumeSkill, wantedSkill) || m.related(wantedSkill, resumeSkill)
}

func (m SynonymMatcher) related(canonical, variant string) bool {
	for _, alt := range m.table[canonical] {
		if alt == variant {
			return true
		}
	}
	return false
}

// SubstringMatcher matches when one skill contains the other as a word-level
// substring, e.g. "java" satisfies "java 11" but a two-letter fragment never
// matches.
type SubstringMatcher struct {
	// MinLength guards against trivially short fragments.
	MinLength int
}

// Matches reports a containment match subject to the length guard.
func (m SubstringMatcher) Matches(resumeSkill, wantedSkill string) bool {
	minLen := m.MinLength
	if minLen <= 0 {
		minLen = 3
	}
	if len(resumeSkill) < minLen || len(wantedSkill) < minLen {
		return false
	}
	return strings.Contains(resumeSkill, wantedSkill) || strings.Contains(wantedSkill, resumeSkill)
}

// MatcherChain tries each strategy in order.
type MatcherChain []SkillMatcher

// Matches reports whether any strategy in the chain matches.
func (c MatcherChain) Matches(resumeSkill, wantedSkill string) bool {
	for _, m := range c {
		if m.Matches(resumeSkill, wantedSkill) {
			return true
		}
	}
	return false
}

// DefaultMatchers returns the standard strategy chain: exact, synonym table,
// then guarded substring containment.
func DefaultMatchers() MatcherChain {
	return MatcherChain{ExactMatcher{}, NewSynonymMatcher(), SubstringMatcher{MinLength: 3}}
}
