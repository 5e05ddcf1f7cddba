package fieldlib

import (
	"regexp"
	"strings"
)

// Structural shape checks. These are deliberately prefix-anchored
// rather than fully anchored: a token like "$1,200." still counts as
// an amount-shaped word when scanning raw text.
var shapePrefixes = map[Kind]*regexp.Regexp{
	KindEmail:         regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`),
	KindPhone:         regexp.MustCompile(`^\(?\d{3}\)?[-. ]?\d{3}[-. ]?\d{4}`),
	KindSSN:           regexp.MustCompile(`^\d{3}-\d{2}-\d{4}`),
	KindDate:          regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{4}`),
	KindAmount:        regexp.MustCompile(`^\$?[\d,]+(?:\.\d{2})?$`),
	KindEmployeeID:    regexp.MustCompile(`^[A-Z]{2,4}\d{3,8}`),
	KindPolicyNumber:  regexp.MustCompile(`^[A-Z]{2,3}\d{6,10}`),
	KindAccountNumber: regexp.MustCompile(`^\d{8,15}`),
}

var capitalizedWord = regexp.MustCompile(`^[A-Z][a-z]+$`)

// MatchesShape reports whether a single token has the structural
// shape expected for the field (an email has an @, a phone matches a
// digit-group pattern, and so on). Used by proximity-style techniques
// that scan tokens near a keyword.
func MatchesShape(field, token string) bool {
	kind := KindOf(field)
	switch kind {
	case KindEmail:
		return strings.Contains(token, "@") && shapePrefixes[KindEmail].MatchString(token)
	case KindName:
		return capitalizedWord.MatchString(token) && len(token) > 2
	case KindGeneric:
		return false
	}
	if re, ok := shapePrefixes[kind]; ok {
		return re.MatchString(token)
	}
	return false
}

// Document-wide candidate scans per structural shape, used by the
// frequency technique. Names pool from capitalized words.
var shapeScans = map[Kind]*regexp.Regexp{
	KindName:          regexp.MustCompile(`\b[A-Z][a-z]{2,}\b`),
	KindEmail:         regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
	KindPhone:         regexp.MustCompile(`\(?\d{3}\)?[-. ]\d{3}[-. ]\d{4}\b`),
	KindSSN:           regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
	KindDate:          regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{4}\b`),
	KindAmount:        regexp.MustCompile(`\$[\d,]+(?:\.\d{2})?`),
	KindEmployeeID:    regexp.MustCompile(`\b[A-Z]{2,4}\d{3,8}\b`),
	KindPolicyNumber:  regexp.MustCompile(`\b[A-Z]{2,4}\d{3,8}\b`),
	KindAccountNumber: regexp.MustCompile(`\b\d{8,15}\b`),
}

// ShapeCandidates returns every substring of text whose shape matches
// the field's structural pattern, in document order. Unknown fields
// yield nil.
func ShapeCandidates(field, text string) []string {
	re, ok := shapeScans[KindOf(field)]
	if !ok {
		return nil
	}
	return re.FindAllString(text, -1)
}
