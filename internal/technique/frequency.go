package technique

import "github.com/meridian-group/intake-cli/internal/fieldlib"

// frequencyAnalysis pools every shape-matching candidate in the whole
// document and picks the most frequent one that also passes strict
// validation, falling back to the most frequent overall.
type frequencyAnalysis struct {
	lib *fieldlib.Library
}

func (frequencyAnalysis) Name() string { return "statistical_frequency_analysis" }

func (t frequencyAnalysis) Extract(text string, fields []string) Result {
	extracted := emptyFields(fields)
	for _, field := range fields {
		candidates := fieldlib.ShapeCandidates(field, text)
		if len(candidates) == 0 {
			continue
		}
		extracted[field] = t.selectCandidate(field, candidates)
	}
	return newResult(t.Name(), "Statistical frequency analysis with pattern recognition", fields, extracted)
}

// selectCandidate returns the most frequent validating candidate, or
// the most frequent overall when none validate. Equal counts keep the
// first-encountered candidate.
func (t frequencyAnalysis) selectCandidate(field string, candidates []string) string {
	counts := make(map[string]int, len(candidates))
	var order []string
	for _, c := range candidates {
		if counts[c] == 0 {
			order = append(order, c)
		}
		counts[c]++
	}

	bestValid, bestValidCount := "", 0
	bestAny, bestAnyCount := "", 0
	for _, c := range order {
		n := counts[c]
		if n > bestAnyCount {
			bestAny, bestAnyCount = c, n
		}
		if n > bestValidCount && t.lib.Validate(field, c) {
			bestValid, bestValidCount = c, n
		}
	}
	if bestValid != "" {
		return bestValid
	}
	return bestAny
}
