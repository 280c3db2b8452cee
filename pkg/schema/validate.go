package schema

import "github.com/collecty/richtext/pkg/domain"

// Schema is a map of field names to their expected types.
// Example: {"href": URL(), "title": Optional(String())}
type Schema map[string]Type

// NodeAttrs lists the attribute schema of each node type that has attributes.
var NodeAttrs = map[string]Schema{
	domain.NodeHeading: {"level": Optional(IntRange(1, 6))},
}

// MarkAttrs lists the attribute schema of each mark type that has attributes.
var MarkAttrs = map[string]Schema{
	domain.MarkLink: {"href": URL(), "title": Optional(String())},
}

// Validate checks if data conforms to the schema.
// Returns the failures found, each located at path.
func Validate(schema Schema, data map[string]any, path string) []error {
	if len(schema) == 0 {
		return nil
	}

	var errs []error
	for fieldName, fieldType := range schema {
		value, exists := data[fieldName]
		if !exists || value == nil {
			if _, optional := fieldType.(*OptionalType); optional {
				continue
			}
			errs = append(errs, &ValidationError{
				Path:   path,
				Key:    fieldName,
				Reason: "required",
				Kind:   domain.IssueMissingAttribute,
			})
			continue
		}

		if err := fieldType.Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Path:   path,
				Key:    fieldName,
				Reason: err.Error(),
				Value:  value,
				Kind:   domain.IssueMissingAttribute,
			})
		}
	}
	return errs
}
