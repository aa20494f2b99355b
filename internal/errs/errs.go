// Package errs defines the recoverable error taxonomy surfaced by the explorer.
// Every error here is safe to show to a user as a warning; none of them should
// terminate a long-running process.
package errs

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks.
var (
	ErrNotFound       = errors.New("not found")
	ErrNoData         = errors.New("no data")
	ErrDivisionByZero = errors.New("division by zero")
	ErrParse          = errors.New("parse error")
)

// NotFoundError reports that a display name did not resolve to an identifier.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NoDataError reports an empty aggregate or series.
type NoDataError struct {
	What string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no data for %s", e.What)
}

func (e *NoDataError) Is(target error) bool { return target == ErrNoData }

// DivisionByZeroError reports a percent change whose base value is zero.
type DivisionByZeroError struct {
	What string
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("cannot compute %s: base value is zero", e.What)
}

func (e *DivisionByZeroError) Is(target error) bool { return target == ErrDivisionByZero }

// ParseError reports a malformed hierarchical document.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse document: %v", e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// NotFound is shorthand for &NotFoundError{...}.
func NotFound(kind, name string) error {
	return &NotFoundError{Kind: kind, Name: name}
}

// NoData is shorthand for &NoDataError{...}.
func NoData(format string, args ...any) error {
	return &NoDataError{What: fmt.Sprintf(format, args...)}
}

// Recoverable reports whether err belongs to the user-facing taxonomy.
func Recoverable(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrNoData) ||
		errors.Is(err, ErrDivisionByZero) ||
		errors.Is(err, ErrParse)
}
