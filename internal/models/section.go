package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Section is a named or anonymous ordered group of ingredient or
// instruction lines.
type Section struct {
	Name  *string  `json:"name"`
	Items []string `json:"items"`
}

// Sections is the canonical list form for ingredients and instructions.
// It is never empty once normalized: an ungrouped list is exactly one
// section with a nil name.
type Sections []Section

// NewSection returns a section with the given name. An empty name yields an
// unnamed section.
func NewSection(name string, items ...string) Section {
	s := Section{Items: items}
	if name != "" {
		s.Name = &name
	}
	if s.Items == nil {
		s.Items = []string{}
	}
	return s
}

// Unsectioned wraps a flat list into a single unnamed section.
func Unsectioned(items []string) Sections {
	if items == nil {
		items = []string{}
	}
	return Sections{{Items: items}}
}

// Count returns the total number of items across all sections.
func (s Sections) Count() int {
	n := 0
	for _, sec := range s {
		n += len(sec.Items)
	}
	return n
}

// Flatten returns every item in section order.
func (s Sections) Flatten() []string {
	out := make([]string, 0, s.Count())
	for _, sec := range s {
		out = append(out, sec.Items...)
	}
	return out
}

// IsSingleUnnamed reports whether the list is one anonymous section.
func (s Sections) IsSingleUnnamed() bool {
	return len(s) == 1 && s[0].Name == nil
}

// Normalize returns a list satisfying the non-empty invariant.
func (s Sections) Normalize() Sections {
	if len(s) == 0 {
		return Unsectioned(nil)
	}
	out := make(Sections, len(s))
	for i, sec := range s {
		if sec.Items == nil {
			sec.Items = []string{}
		}
		out[i] = sec
	}
	return out
}

// UnmarshalJSON accepts both the section form and the legacy flat string
// array, so stored rows written before sections existed decode uniformly.
func (s *Sections) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = Unsectioned(nil)
		return nil
	}
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("sections must be an array: %w", err)
	}
	out, err := SectionsFromAny(raw)
	if err != nil {
		return err
	}
	*s = out
	return nil
}

// SectionsFromAny converts a decoded JSON array into Sections. Plain values
// are stringified and collected into anonymous sections; objects with an
// "items" array become sections of their own.
func SectionsFromAny(raw []any) (Sections, error) {
	var out Sections
	var loose []string
	flush := func() {
		if len(loose) > 0 {
			out = append(out, Section{Items: loose})
			loose = nil
		}
	}

	for i, el := range raw {
		obj, ok := el.(map[string]any)
		if !ok {
			if el == nil {
				continue
			}
			loose = append(loose, Stringify(el))
			continue
		}

		itemsRaw, ok := obj["items"].([]any)
		if !ok {
			return nil, fmt.Errorf("section %d: items must be an array", i)
		}
		flush()

		sec := Section{Items: make([]string, 0, len(itemsRaw))}
		if name, ok := obj["name"].(string); ok {
			sec.Name = &name
		}
		for _, it := range itemsRaw {
			if it == nil {
				continue
			}
			sec.Items = append(sec.Items, Stringify(it))
		}
		out = append(out, sec)
	}
	flush()

	return out.Normalize(), nil
}

// Stringify renders a decoded JSON scalar as text.
func Stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case nil:
		return ""
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
