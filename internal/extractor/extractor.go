// Package extractor orchestrates the registered techniques over one
// document and consolidates their disagreeing answers into a single
// value per field.
package extractor

import (
	"go.uber.org/zap"

	"github.com/meridian-group/intake-cli/internal/fieldlib"
	"github.com/meridian-group/intake-cli/internal/technique"
)

// Output is the full comparative result of one extraction call. All
// maps are keyed by technique name or requested field name; the field
// set always equals the requested set.
type Output struct {
	TechniqueResults  map[string]map[string]string `json:"technique_results"`
	Consolidated      map[string]string            `json:"consolidated_results"`
	ConfidenceScores  map[string]float64           `json:"technique_confidence_scores"`
	BestTechnique     map[string]string            `json:"best_technique_per_field"`
	Ranking           map[string]int               `json:"overall_technique_ranking"`
}

// Engine runs techniques and consolidates their results. Stateless
// apart from the read-only library; safe for concurrent use.
type Engine struct {
	techniques []technique.Technique
	byName     map[string]technique.Technique
}

// New builds an engine over the full technique catalog bound to lib.
func New(lib *fieldlib.Library) *Engine {
	ts := technique.All(lib)
	byName := make(map[string]technique.Technique, len(ts))
	for _, t := range ts {
		byName[t.Name()] = t
	}
	return &Engine{techniques: ts, byName: byName}
}

// Extract runs the selected techniques (all when none are named) over
// the text and consolidates the results. Unknown technique names are
// skipped with a warning. A technique that panics is recorded with an
// all-empty result and zero confidence; the run continues.
func (e *Engine) Extract(text string, requestedFields []string, selected ...string) *Output {
	fields := dedupe(requestedFields)

	run := e.techniques
	if len(selected) > 0 {
		run = run[:0:0]
		for _, name := range selected {
			t, ok := e.byName[name]
			if !ok {
				zap.L().Warn("unknown technique selected", zap.String("technique", name))
				continue
			}
			run = append(run, t)
		}
	}

	out := &Output{
		TechniqueResults: make(map[string]map[string]string, len(run)),
		ConfidenceScores: make(map[string]float64, len(run)),
	}

	order := make([]string, 0, len(run))
	for _, t := range run {
		res := safeExtract(t, text, fields)
		out.TechniqueResults[t.Name()] = res.Fields
		out.ConfidenceScores[t.Name()] = res.Confidence
		order = append(order, t.Name())

		zap.L().Debug("technique completed",
			zap.String("technique", t.Name()),
			zap.Float64("confidence", res.Confidence),
		)
	}

	out.Consolidated = consolidate(out.TechniqueResults, order, fields)
	out.BestTechnique = bestTechniquePerField(out.TechniqueResults, out.ConfidenceScores, order, fields)
	out.Ranking = rankTechniques(out.ConfidenceScores, order)

	return out
}

// safeExtract isolates a technique failure: a panic degrades to an
// empty zero-confidence result instead of aborting the run.
func safeExtract(t technique.Technique, text string, fields []string) (res technique.Result) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("technique failed",
				zap.String("technique", t.Name()),
				zap.Any("panic", r),
			)
			empty := make(map[string]string, len(fields))
			for _, f := range fields {
				empty[f] = ""
			}
			res = technique.Result{Technique: t.Name(), Fields: empty, Confidence: 0.0}
		}
	}()
	return t.Extract(text, fields)
}

// dedupe drops repeated field names, keeping the first occurrence.
func dedupe(fields []string) []string {
	seen := make(map[string]bool, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}
