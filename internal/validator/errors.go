package validator

import (
	"errors"
	"fmt"
	"strings"
)

// Issue is a single structural problem found in a graph.
type Issue struct {
	VertexID string // Offending vertex, or the graph itself
	Reason   string // Human-readable reason
}

func (e *Issue) Error() string {
	return fmt.Sprintf("vertex %q: %s", e.VertexID, e.Reason)
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, err.Error())
	}
	return b.String()
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// Issues returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func Issues(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
