package technique

import (
	"strings"

	"github.com/meridian-group/intake-cli/internal/fieldlib"
)

// validityBonus is added to a candidate's vote score when it passes
// the field's strict validation pattern.
const validityBonus = 5

// patternEnsemble pools candidates from every regex pattern and from
// keyword matching into one pool and votes: occurrence count plus a
// bonus for strictly valid candidates. Highest score wins.
type patternEnsemble struct {
	lib *fieldlib.Library
}

func (patternEnsemble) Name() string { return "pattern_ensemble_method" }

func (t patternEnsemble) Extract(text string, fields []string) Result {
	extracted := emptyFields(fields)
	lines := strings.Split(text, "\n")

	for _, field := range fields {
		var pool []string
		for _, re := range t.lib.Patterns(field) {
			for _, m := range re.FindAllStringSubmatch(text, -1) {
				v := m[0]
				if len(m) > 1 && m[1] != "" {
					v = m[1]
				}
				pool = append(pool, strings.TrimSpace(v))
			}
		}
		pool = append(pool, keywordCandidates(t.lib, lines, field)...)
		extracted[field] = t.vote(field, pool)
	}

	return newResult(t.Name(), "Pattern ensemble method with voting mechanism", fields, extracted)
}

// vote scores each distinct candidate by occurrence count plus the
// validity bonus; ties keep the first-encountered candidate.
func (t patternEnsemble) vote(field string, pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	counts := make(map[string]int, len(pool))
	var order []string
	for _, c := range pool {
		if c == "" {
			continue
		}
		if counts[c] == 0 {
			order = append(order, c)
		}
		counts[c]++
	}

	best, bestScore := "", 0
	for _, c := range order {
		score := counts[c]
		if t.lib.Validate(field, c) {
			score += validityBonus
		}
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best
}

// keywordCandidates collects values following keyword aliases on any
// line, used by the pooled voting techniques.
func keywordCandidates(lib *fieldlib.Library, lines []string, field string) []string {
	var out []string
	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, kw := range lib.Keywords(field) {
			if strings.Contains(lower, strings.ToLower(kw)) {
				if v := valueAfterKeyword(line, kw); v != "" {
					out = append(out, v)
				}
			}
		}
	}
	return out
}
