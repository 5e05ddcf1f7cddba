package technique

import (
	"regexp"
	"strings"

	"github.com/meridian-group/intake-cli/internal/fieldlib"
)

// maxValueLen rejects runaway captures from contextual extraction as
// noise.
const maxValueLen = 200

func newResult(name, details string, requested []string, extracted map[string]string) Result {
	hits := 0
	for _, f := range requested {
		if strings.TrimSpace(extracted[f]) != "" {
			hits++
		}
	}
	conf := 0.0
	if len(requested) > 0 {
		conf = float64(hits) / float64(len(requested))
	}
	return Result{
		Technique:  name,
		Fields:     extracted,
		Confidence: conf,
		Details:    details,
	}
}

// emptyFields pre-seeds the output map so every requested field is
// present even when nothing is found.
func emptyFields(requested []string) map[string]string {
	m := make(map[string]string, len(requested))
	for _, f := range requested {
		m[f] = ""
	}
	return m
}

// firstMatch returns capture group 1 if the pattern defines one,
// otherwise the whole match. Empty string when there is no match.
func firstMatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	if len(m) > 1 && m[1] != "" {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(m[0])
}

// searchPatterns tries the field's ordered patterns against s; the
// first pattern that matches wins.
func searchPatterns(lib *fieldlib.Library, field, s string) string {
	for _, re := range lib.Patterns(field) {
		if v := firstMatch(re, s); v != "" {
			return v
		}
	}
	return ""
}

// valueAfterSpan extracts the value that follows position pos in a
// line: leading separators are stripped, the value runs to the next
// comma, and trailing punctuation is dropped. Overlong values are
// rejected as noise.
func valueAfterSpan(line string, pos int) string {
	if pos < 0 || pos >= len(line) {
		return ""
	}
	rest := strings.TrimLeft(line[pos:], ":-= \t")
	if i := strings.IndexAny(rest, ",\r"); i >= 0 {
		rest = rest[:i]
	}
	rest = strings.TrimRight(rest, " .;:")
	if len(rest) > maxValueLen {
		return ""
	}
	return rest
}

// valueAfterKeyword extracts the value following the first
// case-insensitive occurrence of keyword in line.
func valueAfterKeyword(line, keyword string) string {
	idx := strings.Index(strings.ToLower(line), strings.ToLower(keyword))
	if idx < 0 {
		return ""
	}
	return valueAfterSpan(line, idx+len(keyword))
}

// span marks a word's byte range within a line.
type span struct{ start, end int }

// wordSpans returns the byte ranges of whitespace-separated words.
func wordSpans(line string) []span {
	var spans []span
	start := -1
	for i, r := range line {
		switch {
		case r == ' ' || r == '\t':
			if start >= 0 {
				spans = append(spans, span{start, i})
				start = -1
			}
		case start < 0:
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, span{start, len(line)})
	}
	return spans
}

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// sentences splits text into sentence-ish chunks.
func sentences(text string) []string {
	return sentenceSplit.Split(text, -1)
}
