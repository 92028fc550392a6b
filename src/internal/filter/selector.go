// FILE: loglens/src/internal/filter/selector.go
package filter

import (
	"encoding/json"
	"fmt"
	"os"
)

// Kind tags the variant held by a Selector.
type Kind string

const (
	KindEqual Kind = "equal" // field is set and equals Value
	KindLike  Kind = "like"  // field is set and matches the LIKE pattern in Value
	KindUnset Kind = "unset" // field is not set
	KindAnd   Kind = "and"   // all children match
	KindOr    Kind = "or"    // any child matches
	KindNot   Kind = "not"   // the single child does not match
)

// Selector is a composable predicate over record fields. Leaf kinds use
// Field and Value, group kinds use Children.
type Selector struct {
	Kind     Kind       `json:"kind"`
	Field    string     `json:"field,omitempty"`
	Value    string     `json:"value,omitempty"`
	Children []Selector `json:"children,omitempty"`
}

func Equal(field, value string) Selector {
	return Selector{Kind: KindEqual, Field: field, Value: value}
}

func Like(field, pattern string) Selector {
	return Selector{Kind: KindLike, Field: field, Value: pattern}
}

func Unset(field string) Selector {
	return Selector{Kind: KindUnset, Field: field}
}

func And(children ...Selector) Selector {
	return Selector{Kind: KindAnd, Children: children}
}

func Or(children ...Selector) Selector {
	return Selector{Kind: KindOr, Children: children}
}

func Not(child Selector) Selector {
	return Selector{Kind: KindNot, Children: []Selector{child}}
}

// Missing matches a field that is unset, empty, or holds the sentinel.
func Missing(field, sentinel string) Selector {
	return Or(
		Unset(field),
		Equal(field, ""),
		Equal(field, sentinel),
	)
}

// Clone returns a deep copy so callers can append it to their own lists.
func (s Selector) Clone() Selector {
	out := s
	if s.Children != nil {
		out.Children = make([]Selector, len(s.Children))
		for i, c := range s.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// Validate checks the selector tree for structural errors.
func (s Selector) Validate() error {
	switch s.Kind {
	case KindEqual, KindUnset:
		if s.Field == "" {
			return fmt.Errorf("%s selector requires a field", s.Kind)
		}
	case KindLike:
		if s.Field == "" {
			return fmt.Errorf("like selector requires a field")
		}
		if _, err := compileLike(s.Value); err != nil {
			return fmt.Errorf("like selector on '%s': %w", s.Field, err)
		}
	case KindAnd, KindOr:
		for i, c := range s.Children {
			if err := c.Validate(); err != nil {
				return fmt.Errorf("%s[%d]: %w", s.Kind, i, err)
			}
		}
	case KindNot:
		if len(s.Children) != 1 {
			return fmt.Errorf("not selector requires exactly one child, got %d", len(s.Children))
		}
		if err := s.Children[0].Validate(); err != nil {
			return fmt.Errorf("not: %w", err)
		}
	default:
		return fmt.Errorf("unknown selector kind '%s'", s.Kind)
	}
	return nil
}

// LoadSelectors reads a JSON array of selectors from a file.
func LoadSelectors(path string) ([]Selector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read selector file: %w", err)
	}

	var selectors []Selector
	if err := json.Unmarshal(data, &selectors); err != nil {
		return nil, fmt.Errorf("failed to parse selector file %s: %w", path, err)
	}

	for i, s := range selectors {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("selector[%d]: %w", i, err)
		}
	}
	return selectors, nil
}
