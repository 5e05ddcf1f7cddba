package technique

import (
	"regexp"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/meridian-group/intake-cli/internal/fieldlib"
)

// labelSimilarity is the minimum similarity between a form label and
// a keyword alias for a label match.
const labelSimilarity = 0.8

var (
	bulletLine   = regexp.MustCompile(`^\s*[-*•]\s+`)
	numberedLine = regexp.MustCompile(`^\s*\d+\.\s+`)
)

// docStructure classifies the document's dominant layout.
type docStructure struct {
	form  bool
	table bool
	list  bool
}

// analyzeStructure detects form-like (label: value lines), table-like
// (pipe/tab separated) and list-like (bulleted/numbered) layouts.
func analyzeStructure(lines []string) docStructure {
	var form, table, list int
	for _, line := range lines {
		if strings.Count(line, ":") == 1 {
			form++
		}
		if strings.Count(line, "|") > 2 || strings.Count(line, "\t") > 2 {
			table++
		}
		if bulletLine.MatchString(line) || numberedLine.MatchString(line) {
			list++
		}
	}
	return docStructure{
		form:  len(lines) > 0 && float64(form) > float64(len(lines))*0.3,
		table: table > 3,
		list:  list > 3,
	}
}

// templateBased classifies the document layout first and dispatches
// to a structure-specific routine, falling back to freeform regex
// extraction when no structure is detected.
type templateBased struct {
	lib *fieldlib.Library
}

func (templateBased) Name() string { return "template_based_extraction" }

func (t templateBased) Extract(text string, fields []string) Result {
	extracted := emptyFields(fields)
	lines := strings.Split(text, "\n")
	structure := analyzeStructure(lines)

	for _, field := range fields {
		var v string
		switch {
		case structure.form:
			v = t.fromForm(lines, field)
		case structure.table:
			v = t.fromTable(lines, field)
		case structure.list:
			v = t.fromList(lines, field)
		default:
			v = searchPatterns(t.lib, field, text)
		}
		extracted[field] = v
	}

	return newResult(t.Name(), "Template-based extraction with structure recognition", fields, extracted)
}

// fromForm matches the label before the colon against the field's
// keyword aliases with edit-distance tolerance.
func (t templateBased) fromForm(lines []string, field string) string {
	keywords := t.lib.Keywords(field)
	for _, line := range lines {
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		label = strings.ToLower(strings.TrimSpace(label))
		value = strings.TrimSpace(value)
		if label == "" || value == "" {
			continue
		}
		for _, kw := range keywords {
			if levenshtein.Match(label, strings.ToLower(kw), nil) >= labelSimilarity {
				return value
			}
		}
	}
	return ""
}

// fromTable strips cell separators and reuses the form-label routine
// on the normalized lines.
func (t templateBased) fromTable(lines []string, field string) string {
	normalized := make([]string, len(lines))
	for i, line := range lines {
		line = strings.ReplaceAll(line, "|", " ")
		normalized[i] = strings.Join(strings.Fields(line), " ")
	}
	return t.fromForm(normalized, field)
}

// fromList extracts from bulleted or numbered lines containing a
// keyword alias.
func (t templateBased) fromList(lines []string, field string) string {
	for _, line := range lines {
		if !bulletLine.MatchString(line) && !numberedLine.MatchString(line) {
			continue
		}
		lower := strings.ToLower(line)
		for _, kw := range t.lib.Keywords(field) {
			if strings.Contains(lower, strings.ToLower(kw)) {
				if v := valueAfterKeyword(line, kw); v != "" {
					return v
				}
			}
		}
	}
	return ""
}
