package schema

import (
	"fmt"

	"github.com/collecty/richtext/pkg/domain"
)

// ValidationError represents a single validation failure.
type ValidationError struct {
	Path   string           // Node location, e.g. "$.content[0]"
	Key    string           // Attribute or field name, empty for node-level failures
	Reason string           // Human-readable reason for failure
	Value  any              // The value that failed validation
	Kind   domain.IssueKind // Issue category for reporting
}

func (e *ValidationError) Error() string {
	loc := e.Path
	if e.Key != "" {
		loc = fmt.Sprintf("%s field %q", e.Path, e.Key)
	}
	if e.Value == nil {
		return fmt.Sprintf("%s: %s", loc, e.Reason)
	}
	return fmt.Sprintf("%s: %s (got %T)", loc, e.Reason, e.Value)
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	if aggr, ok := err.(*AggregateError); ok {
		return aggr.Errors
	}
	return nil
}

// Issues converts validation errors into domain issues.
func Issues(err error) []domain.Issue {
	errs := ValidationErrors(err)
	if len(errs) == 0 {
		return nil
	}
	issues := make([]domain.Issue, 0, len(errs))
	for _, e := range errs {
		ve, ok := e.(*ValidationError)
		if !ok {
			issues = append(issues, domain.Issue{Path: "$", Kind: domain.IssueMalformedNode, Message: e.Error()})
			continue
		}
		msg := ve.Reason
		if ve.Key != "" {
			msg = ve.Key + ": " + ve.Reason
		}
		issues = append(issues, domain.Issue{Path: ve.Path, Kind: ve.Kind, Message: msg})
	}
	return issues
}
