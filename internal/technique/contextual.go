package technique

import (
	"strings"

	"github.com/meridian-group/intake-cli/internal/fieldlib"
)

// contextAware scores sentences by how many of the field's context
// words they contain and extracts from the best-scoring sentence via
// the field's patterns. First-encountered sentence wins score ties.
type contextAware struct {
	lib *fieldlib.Library
}

func (contextAware) Name() string { return "context_aware_extraction" }

func (t contextAware) Extract(text string, fields []string) Result {
	extracted := emptyFields(fields)
	sents := sentences(text)

	for _, field := range fields {
		ctxWords := t.lib.ContextWords(field)
		if len(ctxWords) == 0 {
			continue
		}

		best := ""
		bestScore := 0
		for _, sentence := range sents {
			lower := strings.ToLower(sentence)
			score := 0
			for _, w := range ctxWords {
				if strings.Contains(lower, w) {
					score++
				}
			}
			if score == 0 || score <= bestScore {
				continue
			}
			if v := searchPatterns(t.lib, field, sentence); v != "" && len(v) <= maxValueLen {
				best, bestScore = v, score
			}
		}
		extracted[field] = best
	}

	return newResult(t.Name(), "Context-aware extraction using semantic context analysis", fields, extracted)
}
