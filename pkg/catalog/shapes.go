package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tags is a list of free-text values that the source data may store as a
// single scalar, a list, or not at all. Decoding always yields a list.
type Tags []string

// UnmarshalJSON accepts null, a scalar, or an array of scalars.
func (t *Tags) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = tagsFrom(raw)
	return nil
}

// UnmarshalYAML accepts null, a scalar, or a sequence of scalars.
func (t *Tags) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || value.Value == "" {
			*t = nil
			return nil
		}
		*t = Tags{value.Value}
	case yaml.SequenceNode:
		out := make(Tags, 0, len(value.Content))
		for _, n := range value.Content {
			if n.Kind == yaml.ScalarNode && n.Tag != "!!null" && n.Value != "" {
				out = append(out, n.Value)
			}
		}
		*t = out
	default:
		*t = nil
	}
	return nil
}

func tagsFrom(raw any) Tags {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
		return Tags{v}
	case []any:
		out := make(Tags, 0, len(v))
		for _, item := range v {
			switch s := item.(type) {
			case nil:
			case string:
				if s != "" {
					out = append(out, s)
				}
			case float64, bool:
				out = append(out, fmt.Sprint(s))
			}
		}
		return out
	case float64, bool:
		return Tags{fmt.Sprint(v)}
	default:
		return nil
	}
}

// MBTI is a personality-type tag. Older data stores it as an object
// {type, notes}; newer data stores a bare string. Both decode into Type.
// Any other shape decodes to the zero value.
type MBTI struct {
	Type  string
	Notes string
}

// String returns the type tag.
func (m MBTI) String() string { return m.Type }

// Normalized returns the lowercased, trimmed type tag.
func (m MBTI) Normalized() string {
	return strings.ToLower(strings.TrimSpace(m.Type))
}

// UnmarshalJSON accepts "INFJ" or {"type":"INFJ","notes":"..."}.
func (m *MBTI) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = MBTI{}
	switch v := raw.(type) {
	case string:
		m.Type = v
	case map[string]any:
		if s, ok := v["type"].(string); ok {
			m.Type = s
		}
		if s, ok := v["notes"].(string); ok {
			m.Notes = s
		}
	}
	return nil
}

// MarshalJSON emits the type tag as a plain string.
func (m MBTI) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Type)
}

// UnmarshalYAML accepts a string or a mapping with type/notes keys. Other
// scalars (numbers, booleans) leave the tag empty, as UnmarshalJSON does.
func (m *MBTI) UnmarshalYAML(value *yaml.Node) error {
	*m = MBTI{}
	switch value.Kind {
	case yaml.ScalarNode:
		if isYAMLString(value) {
			m.Type = value.Value
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(value.Content); i += 2 {
			key, val := value.Content[i], value.Content[i+1]
			if !isYAMLString(val) {
				continue
			}
			switch key.Value {
			case "type":
				m.Type = val.Value
			case "notes":
				m.Notes = val.Value
			}
		}
	}
	return nil
}

func isYAMLString(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!str"
}

// MarshalYAML emits the type tag as a plain scalar.
func (m MBTI) MarshalYAML() (any, error) {
	return m.Type, nil
}

// IsZero reports whether no type tag is set.
func (m MBTI) IsZero() bool { return m.Type == "" }
