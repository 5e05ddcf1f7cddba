package confidence

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/meridian-group/intake-cli/internal/fieldlib"
)

// Ensemble weights for the five sub-scores.
const (
	weightCompletion  = 0.25
	weightValidation  = 0.25
	weightTemplate    = 0.20
	weightQuality     = 0.15
	weightConsistency = 0.15
)

// defaultFieldWeight applies to fields without an importance weight.
const defaultFieldWeight = 0.03

// fieldWeights holds per-field importance for the completion score.
var fieldWeights = map[string]float64{
	"name":                   0.15,
	"ssn":                    0.20,
	"social_security_number": 0.20,
	"date_of_birth":          0.15,
	"dob":                    0.15,
	"employee_id":            0.18,
	"policy_number":          0.18,
	"account_number":         0.18,
	"address":                0.10,
	"phone":                  0.08,
	"phone_number":           0.08,
	"email":                  0.08,
	"email_address":          0.08,
	"salary":                 0.12,
	"amount":                 0.10,
	"coverage_amount":        0.12,
	"department":             0.06,
	"company":                0.05,
	"organization":           0.05,
	"date":                   0.05,
	"title":                  0.04,
	"position":               0.04,
}

// TemplateClassification is the optional record produced by an
// upstream document classifier, consumed only by the template
// sub-score.
type TemplateClassification struct {
	PrimaryCategory          string           `json:"primary_category"`
	SubCategory              string           `json:"sub_category"`
	TemplateMatchScore       float64          `json:"template_match_score"`
	ClassificationConfidence float64          `json:"classification_confidence"`
	StateRegulations         StateRegulations `json:"state_regulations"`
}

// StateRegulations carries compliance info from the classifier.
type StateRegulations struct {
	State            string `json:"state"`
	ComplianceNeeded bool   `json:"compliance_needed"`
}

// Report is the full confidence assessment for one extracted payload.
type Report struct {
	OverallConfidence    float64            `json:"overall_confidence"`
	AlgorithmScores      map[string]float64 `json:"algorithm_scores"`
	RiskAssessment       Risk               `json:"risk_assessment"`
	ManualReviewRequired bool               `json:"manual_review_required"`
	QualityGrade         string             `json:"quality_grade"`
	Recommendations      []string           `json:"recommendations"`
}

// Scorer computes ensemble confidence reports. Stateless apart from
// the read-only library; safe for concurrent use.
type Scorer struct {
	lib *fieldlib.Library
}

// NewScorer returns a scorer bound to lib.
func NewScorer(lib *fieldlib.Library) *Scorer {
	return &Scorer{lib: lib}
}

// Score computes the ensemble confidence report. Any internal failure
// is replaced wholesale by the fixed fallback report; Score never
// panics.
func (s *Scorer) Score(data Payload, tmpl *TemplateClassification, metadata map[string]any) (report Report) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("confidence scoring failed", zap.Any("panic", r))
			report = Fallback()
		}
	}()

	fields := data.fields()

	completion := s.completionScore(fields)
	validation := s.validationScore(fields)
	template := s.templateScore(tmpl)
	quality := s.qualityScore(fields)
	consistency := s.consistencyScore(fields)

	overall := weightCompletion*completion +
		weightValidation*validation +
		weightTemplate*template +
		weightQuality*quality +
		weightConsistency*consistency

	risk := s.assessRisk(fields, overall)

	report = Report{
		OverallConfidence: round3(overall),
		AlgorithmScores: map[string]float64{
			"completion_confidence":  round3(completion),
			"validation_confidence":  round3(validation),
			"template_confidence":    round3(template),
			"quality_confidence":     round3(quality),
			"consistency_confidence": round3(consistency),
		},
		RiskAssessment:       risk,
		ManualReviewRequired: overall < 0.75 || risk.HighRisk,
		QualityGrade:         gradeFor(overall),
		Recommendations:      recommendations(overall, risk),
	}

	zap.L().Debug("ensemble confidence calculated", zap.Float64("overall", report.OverallConfidence))
	return report
}

// completionScore is the weighted fraction of fields carrying a real
// value, weighted by field importance.
func (s *Scorer) completionScore(fields map[string]string) float64 {
	if len(fields) == 0 {
		return 0.0
	}
	totalWeight, achieved := 0.0, 0.0
	for name, value := range fields {
		w, ok := fieldWeights[fieldlib.Normalize(name)]
		if !ok {
			w = defaultFieldWeight
		}
		totalWeight += w
		if hasValue(value) {
			achieved += w
		}
	}
	if totalWeight == 0 {
		return 0.0
	}
	return achieved / totalWeight
}

// validationScore averages strict pattern matches for fields that
// have validators and heuristic basic-validity checks for the rest.
func (s *Scorer) validationScore(fields map[string]string) float64 {
	var scores []float64
	for name, value := range fields {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if re := strictValidator(s.lib, name); re != nil {
			if re.MatchString(value) {
				scores = append(scores, 1.0)
			} else {
				scores = append(scores, 0.0)
			}
			continue
		}
		scores = append(scores, basicValidity(name, value))
	}
	if len(scores) == 0 {
		return 0.5
	}
	return mean(scores)
}

// strictValidator returns the field's anchored pattern for kinds with
// an unambiguous syntax. Name and address fields go through the
// heuristic check instead.
func strictValidator(lib *fieldlib.Library, field string) *regexp.Regexp {
	switch fieldlib.KindOf(field) {
	case fieldlib.KindSSN, fieldlib.KindPhone, fieldlib.KindEmail, fieldlib.KindDate,
		fieldlib.KindAmount, fieldlib.KindEmployeeID, fieldlib.KindPolicyNumber,
		fieldlib.KindAccountNumber:
		return lib.Validator(field)
	}
	return nil
}

var (
	lettersSpaces     = regexp.MustCompile(`^[A-Za-z ]{2,50}$`)
	lettersSpacesPunc = regexp.MustCompile(`^[A-Za-z .,]{2,}$`)
	orgCharset        = regexp.MustCompile(`^[A-Za-z &.,]{2,}$`)
	anyDigit          = regexp.MustCompile(`\d`)
	allDigits         = regexp.MustCompile(`^\d+$`)
)

// basicValidity grades fields without a strict pattern on charset and
// length plausibility.
func basicValidity(field, value string) float64 {
	name := strings.ToLower(field)

	switch {
	case strings.Contains(name, "name"):
		switch {
		case lettersSpaces.MatchString(value):
			return 1.0
		case lettersSpacesPunc.MatchString(value):
			return 0.7
		default:
			return 0.3
		}
	case strings.Contains(name, "address"):
		switch {
		case len(value) > 10 && anyDigit.MatchString(value):
			return 1.0
		case len(value) > 5:
			return 0.7
		default:
			return 0.3
		}
	case strings.Contains(name, "department"),
		strings.Contains(name, "company"),
		strings.Contains(name, "organization"):
		if orgCharset.MatchString(value) {
			return 1.0
		}
		return 0.5
	}

	if len(value) > 1 && !allDigits.MatchString(value) {
		return 0.8
	}
	return 0.5
}

// templateScore combines the upstream classifier's signals. Without a
// classification it stays neutral.
func (s *Scorer) templateScore(tmpl *TemplateClassification) float64 {
	if tmpl == nil {
		return 0.5
	}
	stateConfidence := 0.8
	if tmpl.StateRegulations.ComplianceNeeded {
		stateConfidence = 1.0
	}
	return tmpl.TemplateMatchScore*0.5 +
		tmpl.ClassificationConfidence*0.3 +
		stateConfidence*0.2
}

// suspiciousValues are placeholder substrings that zero a field's
// quality sub-score.
var suspiciousValues = []string{"n/a", "null", "none", "unknown", "---", "***"}

// qualityScore averages per-field quality: length appropriateness,
// character variety and absence of placeholder junk.
func (s *Scorer) qualityScore(fields map[string]string) float64 {
	var factors []float64
	for name, value := range fields {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		lower := strings.ToLower(name)
		var lengthScore float64
		switch {
		case strings.Contains(lower, "name"):
			lengthScore = 0.5
			if len(value) >= 5 && len(value) <= 50 {
				lengthScore = 1.0
			}
		case strings.Contains(lower, "address"):
			lengthScore = 0.7
			if len(value) >= 10 && len(value) <= 100 {
				lengthScore = 1.0
			}
		default:
			lengthScore = 0.6
			if len(value) >= 2 && len(value) <= 100 {
				lengthScore = 1.0
			}
		}

		varietyScore := charVariety(value) * 2
		if varietyScore > 1.0 {
			varietyScore = 1.0
		}

		suspiciousScore := 1.0
		lowerValue := strings.ToLower(value)
		for _, p := range suspiciousValues {
			if strings.Contains(lowerValue, p) {
				suspiciousScore = 0.0
				break
			}
		}

		factors = append(factors, (lengthScore+varietyScore+suspiciousScore)/3)
	}
	if len(factors) == 0 {
		return 0.5
	}
	return mean(factors)
}

var yearPattern = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)
var numberRun = regexp.MustCompile(`[\d,]+`)

// consistencyScore cross-checks related fields: name fields should
// share a first token, dates should carry a plausible year, amounts
// should sit in a sane range.
func (s *Scorer) consistencyScore(fields map[string]string) float64 {
	var scores []float64

	// Name fields agreeing on the first token.
	var firstTokens []string
	for name, value := range fields {
		if strings.Contains(strings.ToLower(name), "name") && hasValue(value) {
			if parts := strings.Fields(strings.TrimSpace(value)); len(parts) > 0 {
				firstTokens = append(firstTokens, parts[0])
			}
		}
	}
	if len(firstTokens) > 1 {
		agree := 1.0
		for _, tok := range firstTokens[1:] {
			if tok != firstTokens[0] {
				agree = 0.5
				break
			}
		}
		scores = append(scores, agree)
	}

	// Date fields within a plausible year range.
	currentYear := time.Now().Year()
	for name, value := range fields {
		if !strings.Contains(strings.ToLower(name), "date") || !hasValue(value) {
			continue
		}
		m := yearPattern.FindStringSubmatch(value)
		if m == nil {
			continue
		}
		year, _ := strconv.Atoi(m[1])
		if year >= 1900 && year <= currentYear {
			scores = append(scores, 1.0)
		} else {
			scores = append(scores, 0.0)
		}
	}

	// Amount fields in a sane monetary range.
	for name, value := range fields {
		lower := strings.ToLower(name)
		if !hasValue(value) {
			continue
		}
		if !strings.Contains(lower, "amount") && !strings.Contains(lower, "salary") && !strings.Contains(lower, "premium") {
			continue
		}
		raw := numberRun.FindString(strings.ReplaceAll(value, "$", ""))
		if raw == "" {
			continue
		}
		amount, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		switch {
		case err != nil:
			scores = append(scores, 0.5)
		case amount > 0 && amount < 10_000_000:
			scores = append(scores, 1.0)
		default:
			scores = append(scores, 0.3)
		}
	}

	if len(scores) == 0 {
		return 0.8
	}
	return mean(scores)
}

// hasValue reports whether a field carries a real value; the literal
// string "null" counts as absent.
func hasValue(value string) bool {
	v := strings.TrimSpace(value)
	return v != "" && strings.ToLower(v) != "null"
}

func charVariety(value string) float64 {
	seen := map[rune]bool{}
	for _, r := range strings.ToLower(value) {
		seen[r] = true
	}
	n := len(value)
	if n == 0 {
		return 0
	}
	return float64(len(seen)) / float64(n)
}

func mean(xs []float64) float64 {
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total / float64(len(xs))
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
