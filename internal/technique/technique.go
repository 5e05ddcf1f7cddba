// Package technique implements the single-strategy field extractors.
// Every technique answers the same question, what value the document
// holds for each requested field, with a different algorithm, so the
// orchestrator can vote across their disagreements.
package technique

import "github.com/meridian-group/intake-cli/internal/fieldlib"

// Result is one technique's answer for a single document.
type Result struct {
	Technique  string            `json:"technique_name"`
	Fields     map[string]string `json:"extracted_fields"`
	Confidence float64           `json:"confidence_score"`
	Details    string            `json:"method_details"`
}

// Technique is a single extraction strategy. Extract must return a
// map keyed by exactly the requested fields (empty string for a miss)
// and must not panic on malformed input; a per-field failure degrades
// to an empty value for that field only.
type Technique interface {
	Name() string
	Extract(text string, fields []string) Result
}

// Info describes a catalog entry.
type Info struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}

// Catalog is the stable technique catalog. New techniques are
// appended; existing entries never change identity or order.
func Catalog() []Info {
	return []Info{
		{"regex_pattern_matching", "Regex Pattern Matching", "Uses regular expressions to find structured patterns in text"},
		{"fuzzy_keyword_matching", "Fuzzy Keyword Matching", "Matches keyword labels with tolerance for spelling variations"},
		{"keyword_proximity_analysis", "Keyword Proximity Analysis", "Finds values near relevant keywords based on distance"},
		{"statistical_frequency_analysis", "Statistical Frequency Analysis", "Analyzes text patterns and selects most frequent matches"},
		{"context_aware_extraction", "Context-Aware Extraction", "Uses semantic context to improve extraction accuracy"},
		{"template_based_extraction", "Template-Based Extraction", "Recognizes document structure and extracts accordingly"},
		{"position_based_extraction", "Position-Based Extraction", "Uses document layout and position patterns for extraction"},
		{"pattern_ensemble_method", "Pattern Ensemble Method", "Combines multiple pattern approaches with voting"},
		{"confidence_weighted_extraction", "Confidence-Weighted Extraction", "Weights results by confidence scores from multiple methods"},
		{"semantic_overlap_matching", "Semantic Overlap Matching", "Uses word overlap analysis for semantic field matching"},
		{"levenshtein_distance_matching", "Levenshtein Distance Matching", "Uses edit distance to find similar text patterns"},
	}
}

// All returns the registered techniques in catalog order, bound to
// the given pattern library.
func All(lib *fieldlib.Library) []Technique {
	return []Technique{
		regexMatching{lib},
		fuzzyMatching{lib},
		proximityAnalysis{lib},
		frequencyAnalysis{lib},
		contextAware{lib},
		templateBased{lib},
		positionBased{lib},
		patternEnsemble{lib},
		confidenceWeighted{lib},
		semanticOverlap{lib},
		editDistanceMatching{lib},
	}
}
