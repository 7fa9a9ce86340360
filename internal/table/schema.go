package table

import (
	"cmp"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrInvalidSchema is returned by New when a schema cannot drive a view.
var ErrInvalidSchema = errors.New("invalid table schema")

// Kind is the declared comparison kind of a field.
type Kind int

const (
	// KindString fields compare lexicographically.
	KindString Kind = iota
	// KindNumber fields compare numerically.
	KindNumber
)

func (k Kind) String() string {
	if k == KindNumber {
		return "number"
	}
	return "string"
}

// Field describes one column of an entity: how to label it, how to render
// it and how to compare two records by it.
type Field[T any] struct {
	Key      string
	Label    string
	Kind     Kind
	Sortable bool
	Width    int

	// Text renders the field. For string fields it is also the sort key.
	Text func(T) string
	// Number is the sort key of number fields.
	Number func(T) float64
}

// Schema binds a record type to its columns, its parent key and its page size.
type Schema[T any] struct {
	Name   string
	Fields []Field[T]

	// ParentKey names the field SetFilter matches against; empty when the
	// entity has no parent.
	ParentKey string
	Parent    func(T) string

	ID       func(T) string
	PageSize int
}

// FieldByKey returns the field with the given key.
func (s Schema[T]) FieldByKey(key string) (Field[T], bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field[T]{}, false
}

// Validate reports the first structural problem with the schema.
func (s Schema[T]) Validate() error {
	if s.PageSize < 1 {
		return fmt.Errorf("%w: %s: page size %d must be at least 1", ErrInvalidSchema, s.Name, s.PageSize)
	}
	if s.ID == nil {
		return fmt.Errorf("%w: %s: missing row identifier", ErrInvalidSchema, s.Name)
	}
	if s.ParentKey != "" && s.Parent == nil {
		return fmt.Errorf("%w: %s: parent key %q has no extractor", ErrInvalidSchema, s.Name, s.ParentKey)
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("%w: %s: no fields", ErrInvalidSchema, s.Name)
	}
	seen := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		if strings.TrimSpace(f.Key) == "" {
			return fmt.Errorf("%w: %s: field with empty key", ErrInvalidSchema, s.Name)
		}
		if seen[f.Key] {
			return fmt.Errorf("%w: %s: duplicate field %q", ErrInvalidSchema, s.Name, f.Key)
		}
		seen[f.Key] = true
		if f.Text == nil {
			return fmt.Errorf("%w: %s: field %q has no text extractor", ErrInvalidSchema, s.Name, f.Key)
		}
		if f.Kind == KindNumber && f.Number == nil {
			return fmt.Errorf("%w: %s: number field %q has no number extractor", ErrInvalidSchema, s.Name, f.Key)
		}
	}
	return nil
}

type comparator[T any] func(a, b T) int

// comparators resolves every sortable field to a typed comparator once, so
// sorting never looks fields up by name.
func comparators[T any](s Schema[T], strCmp func(a, b string) int) map[string]comparator[T] {
	out := make(map[string]comparator[T], len(s.Fields))
	for _, f := range s.Fields {
		if !f.Sortable {
			continue
		}
		switch f.Kind {
		case KindNumber:
			num := f.Number
			out[f.Key] = func(a, b T) int {
				return cmp.Compare(num(a), num(b))
			}
		default:
			text := f.Text
			out[f.Key] = func(a, b T) int {
				return strCmp(text(a), text(b))
			}
		}
	}
	return out
}

func localeCompare(tag language.Tag) func(a, b string) int {
	c := collate.New(tag)
	return c.CompareString
}
