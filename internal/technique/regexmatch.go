package technique

import "github.com/meridian-group/intake-cli/internal/fieldlib"

// regexMatching tries each field's ordered pattern list against the
// whole document; the first pattern producing a match wins.
type regexMatching struct {
	lib *fieldlib.Library
}

func (regexMatching) Name() string { return "regex_pattern_matching" }

func (t regexMatching) Extract(text string, fields []string) Result {
	extracted := emptyFields(fields)
	for _, field := range fields {
		extracted[field] = searchPatterns(t.lib, field, text)
	}
	return newResult(t.Name(), "Regular expression pattern matching with predefined patterns", fields, extracted)
}
