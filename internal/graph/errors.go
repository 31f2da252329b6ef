package graph

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrInvalidAxis   = errors.New("invalid axis")
	ErrAxisConflict  = errors.New("axis redeclared with a different length")
	ErrUnknownAxis   = errors.New("axis not declared in this graph")
	ErrAxesMismatch  = errors.New("axes mismatch")
	ErrForeignNode   = errors.New("node belongs to another graph")
	ErrNotVariable   = errors.New("node is not a variable")
	ErrNotScalar     = errors.New("expression is not a scalar")
	ErrNotSideEffect = errors.New("node has no side effect")
	ErrValueMismatch = errors.New("value shape does not match axes")
)

// Error describes a contract violation detected while building a graph.
//
// Builder methods panic with *Error; use Build to turn the panic back into
// an ordinary error.
type Error struct {
	Op  string // Builder method that failed (e.g. "Dot", "Assign")
	Err error  // Underlying sentinel, usable with errors.Is
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("graph: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

func fail(op string, sentinel error, format string, args ...any) {
	panic(&Error{Op: op, Err: fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)})
}

// Build runs fn and returns the first graph construction error it raised.
// Panics that are not *Error propagate unchanged.
func Build(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			gerr, ok := r.(*Error)
			if !ok {
				panic(r)
			}
			err = gerr
		}
	}()
	fn()
	return nil
}
