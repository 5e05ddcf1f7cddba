package technique

import (
	"strings"

	"github.com/meridian-group/intake-cli/internal/fieldlib"
)

// positionBased applies line-window heuristics by field category:
// identity fields cluster near the top of a document, temporal and
// identifier fields in the middle, monetary fields near the bottom.
type positionBased struct {
	lib *fieldlib.Library
}

func (positionBased) Name() string { return "position_based_extraction" }

func (t positionBased) Extract(text string, fields []string) Result {
	extracted := emptyFields(fields)
	lines := strings.Split(text, "\n")

	for _, field := range fields {
		extracted[field] = t.searchLines(windowFor(field, lines), field)
	}

	return newResult(t.Name(), "Position-based extraction using document layout analysis", fields, extracted)
}

// windowFor selects the line window searched for a field.
func windowFor(field string, lines []string) []string {
	switch fieldlib.KindOf(field) {
	case fieldlib.KindName, fieldlib.KindEmployeeID:
		if len(lines) > 5 {
			return lines[:5]
		}
		return lines
	case fieldlib.KindSSN, fieldlib.KindDate:
		return lines[len(lines)/4 : 3*len(lines)/4]
	case fieldlib.KindAmount:
		if len(lines) > 10 {
			return lines[len(lines)-10:]
		}
		return lines
	}
	return lines
}

func (t positionBased) searchLines(lines []string, field string) string {
	for _, line := range lines {
		if v := searchPatterns(t.lib, field, line); v != "" {
			return v
		}
	}
	return ""
}
