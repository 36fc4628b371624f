package mapping

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Fragments is a list of attribute lists that may be written in YAML as a
// single string or as a sequence of strings.
type Fragments []Fragment

// --- Fragments YAML methods ---

// UnmarshalYAML implements custom YAML unmarshaling for Fragments.
// Accepts either a single string or an array of strings.
func (s *Fragments) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		f, err := fragment(node)
		if err != nil {
			return err
		}

		if f.Text != "" {
			*s = Fragments{f}
		} else {
			*s = Fragments{}
		}

		return nil

	case yaml.SequenceNode:
		out := make(Fragments, 0, len(node.Content))

		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: expected attribute list, got %v", item.Line, item.Kind)
			}

			f, err := fragment(item)
			if err != nil {
				return err
			}

			if f.Text != "" {
				out = append(out, f)
			}
		}

		*s = out

		return nil

	default:
		return fmt.Errorf("line %d: expected string or array, got %v", node.Line, node.Kind)
	}
}

// fragment decodes a scalar. Quoted scalars start one column after the
// node's position.
func fragment(node *yaml.Node) (Fragment, error) {
	var text string
	if err := node.Decode(&text); err != nil {
		return Fragment{}, err
	}

	col := node.Column
	if node.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
		col++
	}

	return Fragment{Text: text, Line: node.Line, Column: col}, nil
}

// MarshalYAML implements custom YAML marshaling for Fragments.
// Outputs a single string if length is 1, otherwise an array.
func (s Fragments) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0].Text, nil
	}

	out := make([]string, 0, len(s))
	for _, f := range s {
		out = append(out, f.Text)
	}

	return out, nil
}

// First returns the first list or empty string if empty.
func (s Fragments) First() string {
	if len(s) == 0 {
		return ""
	}

	return s[0].Text
}

// UnmarshalYAML records the line of the entry.
func (t *TypeOverride) UnmarshalYAML(node *yaml.Node) error {
	type plain TypeOverride

	if err := node.Decode((*plain)(t)); err != nil {
		return err
	}

	t.Line = node.Line

	return nil
}
