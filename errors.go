package ohl

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"fmt"
)

// Error categories. Resolution and evaluation wrap one of these, so clients
// may test for a category with errors.Is.
var (
	// ErrUnresolvedSymbol: a name has no visible declaration.
	ErrUnresolvedSymbol = errors.New("unresolved symbol")
	// ErrArityMismatch: a node has an unexpected number of children, or a
	// function is called with the wrong number of arguments.
	ErrArityMismatch = errors.New("arity mismatch")
	// ErrTypeMismatch: an operator, cast, call or condition got a value of the
	// wrong kind.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrImmutableAssignment: store to a symbol declared without mutability.
	ErrImmutableAssignment = errors.New("assignment to immutable symbol")
	// ErrMissingFrameLink: a frame chain ran out of ancestors before reaching
	// the requested depth. Indicates an address computed by the resolver which
	// does not fit the frames at run time.
	ErrMissingFrameLink = errors.New("missing frame link")
	// ErrDivisionByZero: integer or float division with a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrMisplacedControl: break or continue outside of a loop.
	ErrMisplacedControl = errors.New("control statement outside of loop")
	// ErrCallDepthExceeded: too many nested function calls.
	ErrCallDepthExceeded = errors.New("call depth exceeded")
)

// SpanError attaches an input position to an error.
type SpanError struct {
	Span Span
	Err  error
}

func (e SpanError) Error() string {
	if e.Span.IsNull() {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Span, e.Err)
}

func (e SpanError) Unwrap() error {
	return e.Err
}

// WrapError decorates err with a span. Errors which already carry a span
// are returned unchanged, as the innermost position is the most precise one.
func WrapError(span Span, err error) error {
	if err == nil {
		return nil
	}
	var spanErr SpanError
	if errors.As(err, &spanErr) || span.IsNull() {
		return err
	}
	return SpanError{Span: span, Err: err}
}

// Errorf creates an error of a category, i.e. the result will match cat with
// errors.Is.
func Errorf(cat error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", cat, fmt.Sprintf(format, args...))
}
