package technique

import (
	"strings"

	"github.com/meridian-group/intake-cli/internal/fieldlib"
)

const (
	// keywordConfidence is the fixed confidence for keyword-derived
	// candidates.
	keywordConfidence = 0.7

	// minWeightedConfidence rejects candidates at or below this
	// confidence.
	minWeightedConfidence = 0.5
)

// confidenceWeighted collects (candidate, confidence) pairs from
// regex patterns, keyword matching and context scoring, then keeps
// the single highest-confidence candidate above the rejection
// threshold.
type confidenceWeighted struct {
	lib *fieldlib.Library
}

func (confidenceWeighted) Name() string { return "confidence_weighted_extraction" }

type scoredCandidate struct {
	value      string
	confidence float64
}

func (t confidenceWeighted) Extract(text string, fields []string) Result {
	extracted := emptyFields(fields)
	lines := strings.Split(text, "\n")
	sents := sentences(text)

	for _, field := range fields {
		var candidates []scoredCandidate
		candidates = append(candidates, t.regexCandidates(text, field)...)
		for _, v := range keywordCandidates(t.lib, lines, field) {
			candidates = append(candidates, scoredCandidate{v, keywordConfidence})
		}
		candidates = append(candidates, t.contextCandidates(sents, field)...)

		best := scoredCandidate{}
		for _, c := range candidates {
			if c.confidence > best.confidence {
				best = c
			}
		}
		if best.confidence > minWeightedConfidence {
			extracted[field] = best.value
		}
	}

	return newResult(t.Name(), "Confidence-weighted extraction with multi-method scoring", fields, extracted)
}

// regexCandidates weights pattern matches by specificity rank:
// 0.8 for the first pattern, +0.1 per later pattern, capped at 1.0.
func (t confidenceWeighted) regexCandidates(text, field string) []scoredCandidate {
	var out []scoredCandidate
	for i, re := range t.lib.Patterns(field) {
		conf := 0.8 + float64(i)*0.1
		if conf > 1.0 {
			conf = 1.0
		}
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			v := m[0]
			if len(m) > 1 && m[1] != "" {
				v = m[1]
			}
			out = append(out, scoredCandidate{strings.TrimSpace(v), conf})
		}
	}
	return out
}

// contextCandidates weights sentence extractions by the fraction of
// context words present.
func (t confidenceWeighted) contextCandidates(sents []string, field string) []scoredCandidate {
	ctxWords := t.lib.ContextWords(field)
	if len(ctxWords) == 0 {
		return nil
	}
	var out []scoredCandidate
	for _, sentence := range sents {
		lower := strings.ToLower(sentence)
		hits := 0
		for _, w := range ctxWords {
			if strings.Contains(lower, w) {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		if v := searchPatterns(t.lib, field, sentence); v != "" {
			conf := float64(hits) / float64(len(ctxWords))
			if conf > 1.0 {
				conf = 1.0
			}
			out = append(out, scoredCandidate{v, conf})
		}
	}
	return out
}
