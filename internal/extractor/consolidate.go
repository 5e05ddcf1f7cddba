package extractor

import (
	"sort"
	"strings"
)

// noTechnique is the sentinel recorded when no technique produced a
// value for a field.
const noTechnique = "none"

// consolidate merges per-technique field maps into one value per
// field by majority vote over non-empty candidates. Equal-frequency
// ties keep the candidate contributed first in technique order, so
// the merge is deterministic and idempotent.
func consolidate(results map[string]map[string]string, order []string, fields []string) map[string]string {
	consolidated := make(map[string]string, len(fields))

	for _, field := range fields {
		counts := map[string]int{}
		var firstSeen []string
		for _, name := range order {
			v := strings.TrimSpace(results[name][field])
			if v == "" {
				continue
			}
			if counts[v] == 0 {
				firstSeen = append(firstSeen, v)
			}
			counts[v]++
		}

		best, bestCount := "", 0
		for _, v := range firstSeen {
			if counts[v] > bestCount {
				best, bestCount = v, counts[v]
			}
		}
		consolidated[field] = best
	}

	return consolidated
}

// bestTechniquePerField attributes each field to the contributing
// technique with the highest overall confidence score.
func bestTechniquePerField(results map[string]map[string]string, scores map[string]float64, order []string, fields []string) map[string]string {
	best := make(map[string]string, len(fields))

	for _, field := range fields {
		winner := noTechnique
		bestScore := -1.0
		for _, name := range order {
			if strings.TrimSpace(results[name][field]) == "" {
				continue
			}
			if s := scores[name]; s > bestScore {
				winner, bestScore = name, s
			}
		}
		best[field] = winner
	}

	return best
}

// rankTechniques assigns ranks 1..N by overall confidence descending.
// Ties keep registration order.
func rankTechniques(scores map[string]float64, order []string) map[string]int {
	names := append([]string(nil), order...)
	sort.SliceStable(names, func(i, j int) bool {
		return scores[names[i]] > scores[names[j]]
	})

	ranking := make(map[string]int, len(names))
	for i, name := range names {
		ranking[name] = i + 1
	}
	return ranking
}
