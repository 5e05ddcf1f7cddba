package technique

import (
	"strings"

	"github.com/meridian-group/intake-cli/internal/fieldlib"
)

// minOverlapRatio is the word-overlap threshold for a line to count
// as semantically matching a keyword phrase.
const minOverlapRatio = 0.5

// semanticOverlap matches lines against keyword phrases by word-set
// overlap rather than exact substrings, then extracts the value that
// follows the keyword in the best-overlapping line.
type semanticOverlap struct {
	lib *fieldlib.Library
}

func (semanticOverlap) Name() string { return "semantic_overlap_matching" }

func (t semanticOverlap) Extract(text string, fields []string) Result {
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
			lineWords := wordSet(line)
			for _, kw := range keywords {
				kwWords := wordSet(kw)
				if len(kwWords) == 0 {
					continue
				}
				overlap := 0
				for w := range kwWords {
					if lineWords[w] {
						overlap++
					}
				}
				score := float64(overlap) / float64(len(kwWords))
				if score > minOverlapRatio && score > bestScore {
					if v := valueAfterKeyword(line, kw); v != "" {
						best, bestScore = v, score
					}
				}
			}
		}
		extracted[field] = best
	}

	return newResult(t.Name(), "Semantic similarity matching with word overlap analysis", fields, extracted)
}

func wordSet(s string) map[string]bool {
	set := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[strings.Trim(w, ":-=.,")] = true
	}
	return set
}
