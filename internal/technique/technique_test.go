package technique

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-group/intake-cli/internal/fieldlib"
)

const sampleDoc = "Name: John Smith\nSSN: 123-45-6789\nEmail: john.smith@example.com"

func TestCatalog_StableOrder(t *testing.T) {
	catalog := Catalog()
	require.Len(t, catalog, 11)

	names := make([]string, len(catalog))
	for i, info := range catalog {
		names[i] = info.Name
	}
	assert.Equal(t, []string{
		"regex_pattern_matching",
		"fuzzy_keyword_matching",
		"keyword_proximity_analysis",
		"statistical_frequency_analysis",
		"context_aware_extraction",
		"template_based_extraction",
		"position_based_extraction",
		"pattern_ensemble_method",
		"confidence_weighted_extraction",
		"semantic_overlap_matching",
		"levenshtein_distance_matching",
	}, names)
}

func TestAll_MatchesCatalog(t *testing.T) {
	catalog := Catalog()
	techniques := All(fieldlib.Default())
	require.Len(t, techniques, len(catalog))
	for i, tech := range techniques {
		assert.Equal(t, catalog[i].Name, tech.Name())
	}
}

// Every technique must return exactly the requested field set, with
// empty strings for misses, and zero confidence for an empty request.
func TestAll_FieldSetInvariant(t *testing.T) {
	fields := []string{"name", "ssn", "favorite_color"}
	for _, tech := range All(fieldlib.Default()) {
		res := tech.Extract(sampleDoc, fields)
		require.Len(t, res.Fields, len(fields), tech.Name())
		for _, f := range fields {
			_, ok := res.Fields[f]
			assert.True(t, ok, "%s missing key %s", tech.Name(), f)
		}
		assert.Empty(t, res.Fields["favorite_color"], tech.Name())
		assert.GreaterOrEqual(t, res.Confidence, 0.0, tech.Name())
		assert.LessOrEqual(t, res.Confidence, 1.0, tech.Name())
	}
}

func TestAll_EmptyRequestZeroConfidence(t *testing.T) {
	for _, tech := range All(fieldlib.Default()) {
		res := tech.Extract(sampleDoc, nil)
		assert.Zero(t, res.Confidence, tech.Name())
		assert.Empty(t, res.Fields, tech.Name())
	}
}

func TestRegexMatching(t *testing.T) {
	tech := regexMatching{fieldlib.Default()}
	res := tech.Extract(sampleDoc, []string{"name", "ssn", "email"})

	assert.Equal(t, "John Smith", res.Fields["name"])
	assert.Equal(t, "123-45-6789", res.Fields["ssn"])
	assert.Equal(t, "john.smith@example.com", res.Fields["email"])
	// 3 of 3 requested fields extracted.
	assert.InDelta(t, 1.0, res.Confidence, 0.0001)
}

func TestRegexMatching_Miss(t *testing.T) {
	tech := regexMatching{fieldlib.Default()}
	res := tech.Extract("nothing relevant here", []string{"ssn", "email"})

	assert.Empty(t, res.Fields["ssn"])
	assert.Empty(t, res.Fields["email"])
	assert.Zero(t, res.Confidence)
}

func TestFuzzyMatching_ExactLabel(t *testing.T) {
	tech := fuzzyMatching{fieldlib.Default()}
	res := tech.Extract(sampleDoc, []string{"name", "ssn"})

	assert.Equal(t, "John Smith", res.Fields["name"])
	assert.Equal(t, "123-45-6789", res.Fields["ssn"])
}

func TestFuzzyMatching_MisspelledLabel(t *testing.T) {
	tech := fuzzyMatching{fieldlib.Default()}
	res := tech.Extract("Phon: 555-123-4567", []string{"phone"})

	assert.Equal(t, "555-123-4567", res.Fields["phone"])
}

func TestProximityAnalysis(t *testing.T) {
	tech := proximityAnalysis{fieldlib.Default()}
	res := tech.Extract("Contact phone 555-123-4567 today", []string{"phone"})

	assert.Equal(t, "555-123-4567", res.Fields["phone"])
}

func TestProximityAnalysis_EqualDistanceKeepsFirst(t *testing.T) {
	tech := proximityAnalysis{fieldlib.Default()}
	res := tech.Extract("phone 111-222-3333 or phone 444-555-6666", []string{"phone"})

	assert.Equal(t, "111-222-3333", res.Fields["phone"])
}

func TestFrequencyAnalysis_MostFrequentWins(t *testing.T) {
	tech := frequencyAnalysis{fieldlib.Default()}
	text := "Contact john@example.com or jane@example.com. Confirm john@example.com."
	res := tech.Extract(text, []string{"email"})

	assert.Equal(t, "john@example.com", res.Fields["email"])
}

func TestFrequencyAnalysis_FallbackWhenNoneValidate(t *testing.T) {
	tech := frequencyAnalysis{fieldlib.Default()}

	// Single capitalized words never pass the two-word name check,
	// so selection falls back to the most frequent candidate.
	res := tech.Extract("Johnson called Johnson and Smith", []string{"name"})
	assert.Equal(t, "Johnson", res.Fields["name"])
}

func TestContextAware(t *testing.T) {
	tech := contextAware{fieldlib.Default()}
	text := "Please call or dial 555-123-4567 to reach us. Nothing else here."
	res := tech.Extract(text, []string{"phone"})

	assert.Equal(t, "555-123-4567", res.Fields["phone"])
}

func TestContextAware_NoContextNoValue(t *testing.T) {
	tech := contextAware{fieldlib.Default()}
	res := tech.Extract("555-123-4567 appears without any hint", []string{"phone"})

	assert.Empty(t, res.Fields["phone"])
}

func TestTemplateBased_FormLayout(t *testing.T) {
	tech := templateBased{fieldlib.Default()}
	doc := "Name: John Smith\nAddres: 123 Main Street\nPhone: 555-123-4567\nEmail: john@example.com"
	res := tech.Extract(doc, []string{"name", "address", "phone"})

	assert.Equal(t, "John Smith", res.Fields["name"])
	// "Addres" is within edit distance tolerance of "address".
	assert.Equal(t, "123 Main Street", res.Fields["address"])
	assert.Equal(t, "555-123-4567", res.Fields["phone"])
}

func TestTemplateBased_ListLayout(t *testing.T) {
	tech := templateBased{fieldlib.Default()}
	doc := "- email john@example.com\n- phone 555-123-4567\n- date 01/15/1990\n- amount $500.00"
	res := tech.Extract(doc, []string{"email", "phone"})

	assert.Equal(t, "john@example.com", res.Fields["email"])
	assert.Equal(t, "555-123-4567", res.Fields["phone"])
}

func TestAnalyzeStructure(t *testing.T) {
	form := analyzeStructure([]string{"Name: John", "SSN: 123-45-6789", "free text"})
	assert.True(t, form.form)

	table := analyzeStructure([]string{
		"| Name | Value |",
		"| SSN | 123-45-6789 |",
		"| Phone | 555-123-4567 |",
		"| Email | a@b.com |",
	})
	assert.True(t, table.table)

	list := analyzeStructure([]string{"- one", "- two", "- three", "- four"})
	assert.True(t, list.list)

	none := analyzeStructure([]string{"plain prose with no layout at all"})
	assert.False(t, none.form)
	assert.False(t, none.table)
	assert.False(t, none.list)
}

func TestPositionBased(t *testing.T) {
	doc := "Employee Record\nName: John Smith\n\n\nDetails section\nSSN: 123-45-6789\nIssued 01/02/2020\n\n\nSummary\nName: Jane Doe\nPremium: $1,250.00"
	tech := positionBased{fieldlib.Default()}
	res := tech.Extract(doc, []string{"name", "ssn", "date", "amount"})

	// The header window stops before the "Jane Doe" decoy.
	assert.Equal(t, "John Smith", res.Fields["name"])
	assert.Equal(t, "123-45-6789", res.Fields["ssn"])
	assert.Equal(t, "01/02/2020", res.Fields["date"])
	assert.Equal(t, "$1,250.00", res.Fields["amount"])
}

func TestPatternEnsemble_ValidityBonus(t *testing.T) {
	tech := patternEnsemble{fieldlib.Default()}

	// "John" occurs more often, but "John Smith" is the only
	// candidate passing strict name validation.
	res := tech.Extract("Name: John\nName: John\nName: John Smith", []string{"name"})
	assert.Equal(t, "John Smith", res.Fields["name"])
}

func TestConfidenceWeighted(t *testing.T) {
	tech := confidenceWeighted{fieldlib.Default()}
	res := tech.Extract("Phone: 555-123-4567", []string{"phone"})
	assert.Equal(t, "555-123-4567", res.Fields["phone"])

	res = tech.Extract("no identifiers in this text", []string{"account_number"})
	assert.Empty(t, res.Fields["account_number"])
}

func TestSemanticOverlap(t *testing.T) {
	tech := semanticOverlap{fieldlib.Default()}
	res := tech.Extract("Send mail soon\nemail: john@example.com", []string{"email"})

	assert.Equal(t, "john@example.com", res.Fields["email"])
}

func TestSemanticOverlap_BelowThreshold(t *testing.T) {
	tech := semanticOverlap{fieldlib.Default()}

	// "security" alone covers only half of "social security", which
	// does not clear the overlap threshold.
	res := tech.Extract("security: 123-45-6789", []string{"ssn"})
	assert.Empty(t, res.Fields["ssn"])
}

func TestEditDistanceMatching(t *testing.T) {
	tech := editDistanceMatching{fieldlib.Default()}

	res := tech.Extract("SSN: 123-45-6789", []string{"ssn"})
	assert.Equal(t, "123-45-6789", res.Fields["ssn"])

	res = tech.Extract("Emall: john@example.com", []string{"email"})
	assert.Equal(t, "john@example.com", res.Fields["email"])
}
