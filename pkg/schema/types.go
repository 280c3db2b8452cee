package schema

import (
	"fmt"
	"net/url"
)

// Type defines the contract for field validation.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "int").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// IntType validates integer values within an inclusive range.
type IntType struct {
	min, max int
}

func (t *IntType) Name() string { return "int" }

func (t *IntType) Validate(value any) error {
	var n int64
	switch v := value.(type) {
	case int:
		n = int64(v)
	case int8:
		n = int64(v)
	case int16:
		n = int64(v)
	case int32:
		n = int64(v)
	case int64:
		n = v
	case float64:
		// Accept floats that are whole numbers (from JSON unmarshaling)
		if v != float64(int64(v)) {
			return fmt.Errorf("expected int, got float (not a whole number)")
		}
		n = int64(v)
	default:
		return fmt.Errorf("expected int, got %T", value)
	}
	if n < int64(t.min) || n > int64(t.max) {
		return fmt.Errorf("must be between %d and %d, got %d", t.min, t.max, n)
	}
	return nil
}

// OptionalType marks a field that may be absent.
type OptionalType struct {
	Type
}

func (t *OptionalType) Name() string { return t.Type.Name() + "?" }

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

// String creates a string type validator.
func String() Type { return &StringType{} }

// IntRange creates an integer validator bounded by lo and hi.
func IntRange(lo, hi int) Type { return &IntType{min: lo, max: hi} }

// Optional wraps t so a missing field is not an error.
func Optional(t Type) Type { return &OptionalType{Type: t} }

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}

// URL validates strings that parse as URL references.
func URL() Type {
	return Custom("url", func(v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", v)
		}
		if _, err := url.Parse(s); err != nil {
			return fmt.Errorf("not a valid URL: %v", err)
		}
		return nil
	})
}
