package resolver

import (
	"errors"
	"fmt"
	"reflect"
)

// ========================================
// Core Error Values (Sentinel Errors)
// ========================================

var (
	// ErrContainer is matched by every error the resolver returns for a
	// failed Get, Make or Call.
	ErrContainer = errors.New("container error")

	// ErrNotFound is matched by errors for ids with no Definition that the
	// autowirer cannot produce either.
	ErrNotFound = errors.New("entry not found")

	// ErrResolution is matched by errors for entries that exist but could not
	// be built.
	ErrResolution = errors.New("entry cannot be resolved")
)

var (
	_ error = NotFoundError{}
	_ error = ResolutionError{}
	_ error = TypeMismatchError{}
	_ error = ValidationError{}
	_ error = OptionsError{}
)

// ========================================
// Typed Errors
// ========================================

// NotFoundError indicates an id with no Definition that is not resolvable as
// a type name.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("entry %q not found: no definition and no constructor registered", e.ID)
}

func (e NotFoundError) Is(target error) bool {
	return target == ErrNotFound || target == ErrContainer
}

// ResolutionError wraps failures while building, intercepting or calling an
// entry.
type ResolutionError struct {
	ID    string // empty for Call
	Cause error
}

func (e ResolutionError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("call failed: %v", e.Cause)
	}
	return fmt.Sprintf("cannot resolve %q: %v", e.ID, e.Cause)
}

func (e ResolutionError) Is(target error) bool {
	return target == ErrResolution || target == ErrContainer
}

func (e ResolutionError) Unwrap() error {
	return e.Cause
}

// TypeMismatchError indicates a resolved value that is not of the requested type.
type TypeMismatchError struct {
	ID       string
	Expected string
	Actual   reflect.Type
}

func (e TypeMismatchError) Error() string {
	actual := "<nil>"
	if e.Actual != nil {
		actual = e.Actual.String()
	}
	return fmt.Sprintf("entry %q: expected %s, got %s", e.ID, e.Expected, actual)
}

func (e TypeMismatchError) Is(target error) bool {
	return target == ErrContainer
}

// ValidationError indicates a resolved value that failed struct validation.
type ValidationError struct {
	ID    string
	Type  reflect.Type
	Cause error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("entry %q (%v) is invalid: %v", e.ID, e.Type, e.Cause)
}

func (e ValidationError) Unwrap() error {
	return e.Cause
}

// OptionsError indicates an invalid resolver configuration.
type OptionsError struct {
	Cause error
}

func (e OptionsError) Error() string {
	return fmt.Sprintf("invalid resolver options: %v", e.Cause)
}

func (e OptionsError) Unwrap() error {
	return e.Cause
}

// IsNotFound reports whether err means the requested id itself is unknown.
// A not-found failure nested inside a resolution does not count.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) && !errors.Is(err, ErrResolution)
}

// IsResolutionError reports whether err is a failure to build, intercept or
// call a known entry.
func IsResolutionError(err error) bool {
	return errors.Is(err, ErrResolution)
}
