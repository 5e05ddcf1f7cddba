package technique

import (
	"strings"

	"github.com/agext/levenshtein"

	"github.com/meridian-group/intake-cli/internal/fieldlib"
)

// proximityWindow is how many words past a keyword are scanned for a
// structurally valid candidate.
const proximityWindow = 5

// proximityAnalysis tokenizes the document and looks for a token with
// the field's structural shape within a few words of a keyword
// occurrence. The closest candidate wins; ties go to the first found.
type proximityAnalysis struct {
	lib *fieldlib.Library
}

func (proximityAnalysis) Name() string { return "keyword_proximity_analysis" }

func (t proximityAnalysis) Extract(text string, fields []string) Result {
	extracted := emptyFields(fields)
	words := strings.Fields(text)

	for _, field := range fields {
		keywords := t.lib.Keywords(field)
		if len(keywords) == 0 {
			continue
		}

		best := ""
		bestProximity := proximityWindow + 1
		for _, kw := range keywords {
			kwWords := strings.Fields(strings.ToLower(kw))
			for i := 0; i+len(kwWords) <= len(words); i++ {
				if !windowMatches(words[i:i+len(kwWords)], kwWords) {
					continue
				}
				after := i + len(kwWords)
				for j := after; j < after+proximityWindow && j < len(words); j++ {
					if !fieldlib.MatchesShape(field, words[j]) {
						continue
					}
					if prox := j - after; prox < bestProximity {
						best = words[j]
						bestProximity = prox
					}
				}
			}
		}
		extracted[field] = best
	}

	return newResult(t.Name(), "Keyword proximity analysis with distance weighting", fields, extracted)
}

// windowMatches reports whether a word window matches the keyword
// words with an average edit distance of at most one per word.
func windowMatches(window, kwWords []string) bool {
	if len(window) != len(kwWords) {
		return false
	}
	total := 0
	for i, w := range window {
		total += levenshtein.Distance(strings.ToLower(strings.Trim(w, ":-=")), kwWords[i], nil)
	}
	return float64(total)/float64(len(window)) <= 1.0
}
