package technique

import (
	"strings"

	"github.com/agext/levenshtein"

	"github.com/meridian-group/intake-cli/internal/fieldlib"
)

// fuzzyWordSimilarity is the minimum per-word similarity for a
// misspelled label to count as a keyword hit.
const fuzzyWordSimilarity = 0.8

// fuzzyMatching scans lines for keyword aliases, tolerating spelling
// variation in single-word labels, and extracts the value that
// follows the matched label.
type fuzzyMatching struct {
	lib *fieldlib.Library
}

func (fuzzyMatching) Name() string { return "fuzzy_keyword_matching" }

func (t fuzzyMatching) Extract(text string, fields []string) Result {
	extracted := emptyFields(fields)
	lines := strings.Split(text, "\n")

	for _, field := range fields {
		keywords := t.lib.Keywords(field)
		if len(keywords) == 0 {
			continue
		}

		best := ""
		bestScore := 0.0
		for _, line := range lines {
			lower := strings.ToLower(line)
			for _, kw := range keywords {
				kl := strings.ToLower(kw)

				// Exact substring hit beats any fuzzy hit.
				if idx := strings.Index(lower, kl); idx >= 0 {
					if v := valueAfterSpan(line, idx+len(kl)); v != "" && bestScore < 1.0 {
						best, bestScore = v, 1.0
					}
					continue
				}

				// Tolerate misspelled single-word labels.
				if strings.Contains(kl, " ") {
					continue
				}
				for _, sp := range wordSpans(line) {
					word := strings.ToLower(strings.Trim(line[sp.start:sp.end], ":-="))
					sim := levenshtein.Match(word, kl, nil)
					if sim >= fuzzyWordSimilarity && sim > bestScore {
						if v := valueAfterSpan(line, sp.end); v != "" {
							best, bestScore = v, sim
						}
					}
				}
			}
		}
		extracted[field] = best
	}

	return newResult(t.Name(), "Fuzzy keyword matching with spelling tolerance", fields, extracted)
}
