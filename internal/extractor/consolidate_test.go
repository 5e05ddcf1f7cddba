package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsolidate_MajorityVote(t *testing.T) {
	results := map[string]map[string]string{
		"a": {"name": "John Smith"},
		"b": {"name": "John Smith"},
		"c": {"name": "John"},
	}
	order := []string{"a", "b", "c"}

	consolidated := consolidate(results, order, []string{"name"})
	assert.Equal(t, "John Smith", consolidated["name"])
}

func TestConsolidate_EmptyVotesIgnored(t *testing.T) {
	results := map[string]map[string]string{
		"a": {"ssn": ""},
		"b": {"ssn": "  "},
		"c": {"ssn": "123-45-6789"},
	}
	order := []string{"a", "b", "c"}

	consolidated := consolidate(results, order, []string{"ssn"})
	assert.Equal(t, "123-45-6789", consolidated["ssn"])
}

func TestConsolidate_TieKeepsFirstContributed(t *testing.T) {
	results := map[string]map[string]string{
		"a": {"name": "John Smith"},
		"b": {"name": "Jane Doe"},
	}
	order := []string{"a", "b"}

	consolidated := consolidate(results, order, []string{"name"})
	assert.Equal(t, "John Smith", consolidated["name"])

	// Reversed contribution order flips the tie the other way.
	consolidated = consolidate(results, []string{"b", "a"}, []string{"name"})
	assert.Equal(t, "Jane Doe", consolidated["name"])
}

func TestConsolidate_NoVotesYieldsEmpty(t *testing.T) {
	results := map[string]map[string]string{
		"a": {"email": ""},
	}
	consolidated := consolidate(results, []string{"a"}, []string{"email"})

	v, ok := consolidated["email"]
	assert.True(t, ok)
	assert.Empty(t, v)
}

func TestBestTechniquePerField(t *testing.T) {
	results := map[string]map[string]string{
		"a": {"name": "John", "ssn": ""},
		"b": {"name": "John Smith", "ssn": "123-45-6789"},
		"c": {"name": "", "ssn": "123-45-6789"},
	}
	scores := map[string]float64{"a": 0.9, "b": 0.7, "c": 0.7}
	order := []string{"a", "b", "c"}

	best := bestTechniquePerField(results, scores, order, []string{"name", "ssn", "email"})

	assert.Equal(t, "a", best["name"])
	// "a" contributed nothing for ssn; "b" and "c" tie and the
	// earlier-registered one wins.
	assert.Equal(t, "b", best["ssn"])
	assert.Equal(t, noTechnique, best["email"])
}

func TestRankTechniques(t *testing.T) {
	scores := map[string]float64{"a": 0.5, "b": 0.9, "c": 0.5}
	ranking := rankTechniques(scores, []string{"a", "b", "c"})

	assert.Equal(t, 1, ranking["b"])
	// Ties keep registration order.
	assert.Equal(t, 2, ranking["a"])
	assert.Equal(t, 3, ranking["c"])
}
