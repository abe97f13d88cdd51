package options

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a YAML mapping into a Tree.
func ParseYAML(data []byte) (Tree, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding options: %w", err)
	}
	return normalize(raw).(Tree), nil
}

// LoadFile reads and decodes a YAML options file.
func LoadFile(path string) (Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading options: %w", err)
	}
	return ParseYAML(data)
}

// normalize turns the maps yaml produces into Trees and YAML integers into
// float64 so that every numeric option has a single representation.
func normalize(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(Tree, len(v))
		for k, e := range v {
			out[k] = normalize(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = normalize(e)
		}
		return out
	case nil:
		return nil
	}
	if f, ok := number(v); ok {
		return f
	}
	return v
}

// MarshalYAML lets a Tree be written back out with yaml.v3.
func (t Tree) MarshalYAML() (any, error) {
	return map[string]any(t), nil
}

// UnmarshalYAML lets a Tree be embedded in larger yaml.v3 documents.
func (t *Tree) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*t = normalize(raw).(Tree)
	return nil
}
