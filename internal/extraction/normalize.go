package extraction

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/resume-match/internal/types"
)

// NormalizeSkills lowercases, trims, deduplicates, and sorts a skill list.
// The operation is idempotent: normalizing an already-normalized set is a no-op.
func NormalizeSkills(skills []string) []string {
	normalized := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		s := strings.ToLower(strings.TrimSpace(skill))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		normalized = append(normalized, s)
	}
	sort.Strings(normalized)
	return normalized
}

// degreeKeywords maps keyword tokens to degree levels, checked highest first
// so "Master of Arts" resolves to master before the "ma" token could.
var degreeKeywords = []struct {
	level types.DegreeLevel
	words []string
}{
	{types.DegreeDoctorate, []string{"phd", "doctorate", "doctoral", "dphil", "edd"}},
	{types.DegreeMaster, []string{"master", "masters", "msc", "ms", "ma", "mba", "meng", "mtech"}},
	{types.DegreeBachelor, []string{"bachelor", "bachelors", "bsc", "bs", "ba", "beng", "btech", "bba"}},
	{types.DegreeAssociate, []string{"associate", "associates", "aa", "as", "aas"}},
	{types.DegreeHighSchool, []string{"high school", "highschool", "ged", "secondary school"}},
}

// MapDegreeLevel maps free degree text to the closed DegreeLevel enum via
// keyword matching ("bs", "b.s.", "bachelor's" all resolve to bachelor).
// Unmatched text maps to Other rather than failing.
func MapDegreeLevel(degree string) types.DegreeLevel {
	s := strings.ToLower(strings.TrimSpace(degree))
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, "'", "")
	if s == "" {
		return types.DegreeOther
	}

	for _, entry := range degreeKeywords {
		for _, word := range entry.words {
			if hasWord(s, word) {
				return entry.level
			}
		}
	}
	return types.DegreeOther
}

// hasWord reports whether phrase appears in s on word boundaries.
func hasWord(s, phrase string) bool {
	if !strings.Contains(s, phrase) {
		return false
	}
	idx := 0
	for {
		i := strings.Index(s[idx:], phrase)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(phrase)
		beforeOK := start == 0 || !isWordChar(s[start-1])
		afterOK := end == len(s) || !isWordChar(s[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9'
}

var (
	numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)
	yearPattern   = regexp.MustCompile(`\d{4}`)
)

// coerceYears extracts a non-negative year count from a loosely typed value.
// Models occasionally answer "3+ years" where a number was requested.
func coerceYears(v any) float64 {
	switch val := v.(type) {
	case float64:
		if val < 0 {
			return 0
		}
		return val
	case string:
		if m := numberPattern.FindString(val); m != "" {
			f, err := strconv.ParseFloat(m, 64)
			if err == nil {
				return f
			}
		}
		return 0
	default:
		return 0
	}
}

// coerceYear extracts a four-digit graduation year, returning 0 when unknown.
func coerceYear(v any) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case string:
		if m := yearPattern.FindString(val); m != "" {
			year, err := strconv.Atoi(m)
			if err == nil {
				return year
			}
		}
		return 0
	default:
		return 0
	}
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
