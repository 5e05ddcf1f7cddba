package fieldlib

import (
	"regexp"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Definition declares a caller-supplied field: its discovery patterns,
// keyword aliases, context words and optional anchored validator.
type Definition struct {
	Patterns     []string `yaml:"patterns"`
	Keywords     []string `yaml:"keywords"`
	ContextWords []string `yaml:"context_words"`
	Validator    string   `yaml:"validator"`
}

// ParseDefinitions decodes a YAML document mapping field names to
// Definitions.
func ParseDefinitions(data []byte) (map[string]Definition, error) {
	defs := map[string]Definition{}
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, eris.Wrap(err, "fieldlib: parse definitions")
	}
	return defs, nil
}

// Extend returns a new Library that resolves the given custom fields
// before falling back to the built-in tables. The receiver is not
// modified. Returns an error on an uncompilable pattern.
func (l *Library) Extend(defs map[string]Definition) (*Library, error) {
	custom := make(map[string]entry, len(l.custom)+len(defs))
	for k, v := range l.custom {
		custom[k] = v
	}

	for field, def := range defs {
		var e entry
		for _, p := range def.Patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, eris.Wrapf(err, "fieldlib: field %q pattern %q", field, p)
			}
			e.patterns = append(e.patterns, re)
		}
		if def.Validator != "" {
			re, err := regexp.Compile(def.Validator)
			if err != nil {
				return nil, eris.Wrapf(err, "fieldlib: field %q validator", field)
			}
			e.validator = re
		}
		e.keywords = append([]string(nil), def.Keywords...)
		e.context = append([]string(nil), def.ContextWords...)
		custom[Normalize(field)] = e
	}

	return &Library{
		patterns:   l.patterns,
		keywords:   l.keywords,
		context:    l.context,
		validators: l.validators,
		custom:     custom,
	}, nil
}
