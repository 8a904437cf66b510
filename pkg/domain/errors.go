package domain

import (
	"errors"
	"fmt"
)

// ErrUnbakedTrace is matched by every UnbakedTraceError.
var ErrUnbakedTrace = errors.New("unbaked trace")

// ErrUnsupportedOperator is matched by every UnsupportedOperatorError.
var ErrUnsupportedOperator = errors.New("unsupported trace operator")

// ErrDanglingSelection is matched by every DanglingSelectionError.
var ErrDanglingSelection = errors.New("dangling selection")

// ErrLifecycle is returned when a node's begin/seek/end order is violated.
var ErrLifecycle = errors.New("animation lifecycle violation")

// UnbakedTraceError is returned when trace extraction meets a node whose
// reads and writes were never recorded.
type UnbakedTraceError struct {
	NodeID string
}

func (e *UnbakedTraceError) Error() string {
	return fmt.Sprintf("node %q has no recorded reads/writes: graph must be baked before tracing", e.NodeID)
}

func (e *UnbakedTraceError) Is(target error) bool {
	return target == ErrUnbakedTrace
}

// UnsupportedOperatorError is returned for an operator outside the enumeration.
type UnsupportedOperatorError struct {
	Operator TraceOperator
	Name     string
}

func (e *UnsupportedOperatorError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("unsupported trace operator %q", e.Name)
	}
	return fmt.Sprintf("unsupported trace operator %s", e.Operator)
}

func (e *UnsupportedOperatorError) Is(target error) bool {
	return target == ErrUnsupportedOperator
}

// DanglingSelectionError is returned when a selection names a vertex the graph does not have.
type DanglingSelectionError struct {
	GraphID  string
	VertexID string
}

func (e *DanglingSelectionError) Error() string {
	return fmt.Sprintf("selection references vertex %q absent from graph %q", e.VertexID, e.GraphID)
}

func (e *DanglingSelectionError) Is(target error) bool {
	return target == ErrDanglingSelection
}

// ErrDataNotFound is returned by an Environment when a path resolves to nothing.
var ErrDataNotFound = errors.New("data not found")

// ErrGraphNotFound is returned by a GraphLoader whose backing store has no such graph.
var ErrGraphNotFound = errors.New("graph not found")
