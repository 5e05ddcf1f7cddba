package confidence

import (
	"fmt"
	"sort"
	"strings"
)

// Risk carries the manual-review signals computed alongside the
// numeric confidence.
type Risk struct {
	HighRisk     bool     `json:"high_risk"`
	RiskReasons  []string `json:"risk_reasons"`
	WarningSigns []string `json:"warning_signs"`
}

// criticalFields are the identity fields whose absence forces a high
// risk flag when more than one is empty.
var criticalFields = []string{"name", "ssn", "social_security_number", "employee_id", "policy_number"}

// placeholderValues mark extractions that look like test data.
var placeholderValues = []string{"test", "sample", "example", "placeholder"}

// formattedFields are re-checked against their strict patterns for
// warning purposes.
var formattedFields = []string{"ssn", "phone", "email"}

// assessRisk computes the risk flags for an extracted payload given
// the already-computed overall confidence.
func (s *Scorer) assessRisk(fields map[string]string, overall float64) Risk {
	risk := Risk{RiskReasons: []string{}, WarningSigns: []string{}}

	var missing []string
	for _, critical := range criticalFields {
		if v, present := fields[critical]; present && strings.TrimSpace(v) == "" {
			missing = append(missing, critical)
		}
	}
	if len(missing) > 0 {
		risk.RiskReasons = append(risk.RiskReasons, fmt.Sprintf("missing critical fields: %s", strings.Join(missing, ", ")))
		if len(missing) > 1 {
			risk.HighRisk = true
		}
	}

	if overall < 0.6 {
		risk.RiskReasons = append(risk.RiskReasons, "overall confidence below threshold")
		risk.HighRisk = true
	}

	// Stable iteration keeps warning order deterministic.
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := strings.ToLower(strings.TrimSpace(fields[name]))
		if value == "" {
			continue
		}
		for _, p := range placeholderValues {
			if strings.Contains(value, p) {
				risk.WarningSigns = append(risk.WarningSigns, fmt.Sprintf("suspicious value in %s", name))
				break
			}
		}
	}

	for _, field := range formattedFields {
		v, present := fields[field]
		v = strings.TrimSpace(v)
		if !present || v == "" {
			continue
		}
		if re := s.lib.Validator(field); re != nil && !re.MatchString(v) {
			risk.WarningSigns = append(risk.WarningSigns, fmt.Sprintf("format issue in %s", field))
		}
	}

	return risk
}

// gradeFor maps overall confidence onto the A-F band table.
func gradeFor(confidence float64) string {
	switch {
	case confidence >= 0.9:
		return "A"
	case confidence >= 0.8:
		return "B"
	case confidence >= 0.7:
		return "C"
	case confidence >= 0.6:
		return "D"
	default:
		return "F"
	}
}

// recommendations maps the confidence band and risk flags onto review
// guidance; it always yields at least one entry.
func recommendations(confidence float64, risk Risk) []string {
	var recs []string

	if confidence < 0.75 {
		recs = append(recs, "Manual review recommended due to low confidence")
	}
	if risk.HighRisk {
		recs = append(recs, "High risk factors detected - immediate review required")
	}
	if len(risk.WarningSigns) > 0 {
		recs = append(recs, "Data quality issues detected - verify suspicious fields")
	}
	if confidence > 0.9 {
		recs = append(recs, "High confidence extraction - safe for automated processing")
	} else if confidence > 0.8 {
		recs = append(recs, "Good confidence - spot check recommended")
	}

	if len(recs) == 0 {
		recs = append(recs, "Standard processing acceptable")
	}
	return recs
}

// Fallback is the fixed report returned when scoring itself fails.
func Fallback() Report {
	return Report{
		OverallConfidence: 0.5,
		AlgorithmScores: map[string]float64{
			"completion_confidence":  0.5,
			"validation_confidence":  0.5,
			"template_confidence":    0.5,
			"quality_confidence":     0.5,
			"consistency_confidence": 0.5,
		},
		RiskAssessment: Risk{
			HighRisk:     true,
			RiskReasons:  []string{"error in confidence calculation"},
			WarningSigns: []string{},
		},
		ManualReviewRequired: true,
		QualityGrade:         "F",
		Recommendations:      []string{"Manual review required due to processing error"},
	}
}
