package mapping

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a YAML overrides file from the given path.
func LoadFile(path string) (*OverrideFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read overrides file %s: %w", path, err)
	}

	of, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	of.Path = path

	return of, nil
}

// Parse parses YAML data into an OverrideFile.
func Parse(data []byte) (*OverrideFile, error) {
	var of OverrideFile

	err := yaml.Unmarshal(data, &of)
	if err != nil {
		return nil, fmt.Errorf("failed to parse overrides YAML: %w", err)
	}

	// Apply defaults and normalize
	applyDefaults(&of)

	return &of, nil
}

// applyDefaults fills in the version, adds the parentheses an attribute list
// may omit and folds repeated entries for one type into the first.
func applyDefaults(of *OverrideFile) {
	if of.Version == "" {
		of.Version = "1"
	}

	merged := of.Types[:0]
	index := make(map[string]int, len(of.Types))

	for _, t := range of.Types {
		wrap(t.Attrs)

		for _, frags := range t.Fields {
			wrap(frags)
		}

		i, seen := index[t.Name]
		if !seen {
			index[t.Name] = len(merged)
			merged = append(merged, t)

			continue
		}

		first := &merged[i]
		first.Attrs = append(first.Attrs, t.Attrs...)

		for name, frags := range t.Fields {
			if first.Fields == nil {
				first.Fields = make(map[string]Fragments)
			}

			first.Fields[name] = append(first.Fields[name], frags...)
		}
	}

	of.Types = merged
}

func wrap(frags Fragments) {
	for i := range frags {
		f := &frags[i]
		if !strings.HasPrefix(strings.TrimSpace(f.Text), "(") {
			f.Text = "(" + f.Text + ")"
			f.Column--
		}
	}
}

// Marshal serializes an OverrideFile to YAML.
func Marshal(of *OverrideFile) ([]byte, error) {
	return yaml.Marshal(of)
}
