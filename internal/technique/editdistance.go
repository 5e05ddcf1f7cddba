package technique

import (
	"strings"

	"github.com/agext/levenshtein"

	"github.com/meridian-group/intake-cli/internal/fieldlib"
)

// maxEditDistance is the largest edit distance at which a substring
// still counts as a keyword occurrence.
const maxEditDistance = 2

// editDistanceMatching slides a keyword-length window across each
// line and accepts the occurrence with the smallest edit distance,
// extracting the value after the matched span.
type editDistanceMatching struct {
	lib *fieldlib.Library
}

func (editDistanceMatching) Name() string { return "levenshtein_distance_matching" }

func (t editDistanceMatching) Extract(text string, fields []string) Result {
	extracted := emptyFields(fields)
	lines := strings.Split(text, "\n")

	for _, field := range fields {
		keywords := t.lib.Keywords(field)
		if len(keywords) == 0 {
			continue
		}

		best := ""
		bestDistance := maxEditDistance + 1
		for _, line := range lines {
			lower := strings.ToLower(line)
			for _, kw := range keywords {
				kl := strings.ToLower(kw)
				for i := 0; i+len(kl) <= len(lower); i++ {
					d := levenshtein.Distance(lower[i:i+len(kl)], kl, nil)
					if d > maxEditDistance || d >= bestDistance {
						continue
					}
					if v := valueAfterSpan(line, i+len(kl)); v != "" {
						best, bestDistance = v, d
					}
				}
			}
		}
		extracted[field] = best
	}

	return newResult(t.Name(), "Levenshtein distance matching with edit distance optimization", fields, extracted)
}
