package autowire

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNotFound is matched by errors for targets the engine cannot produce.
	ErrNotFound = errors.New("target not found")

	// ErrNotCallable is matched by errors for callables that cannot be invoked.
	ErrNotCallable = errors.New("target is not callable")

	// ErrMethodNotFound is matched by errors for methods missing on a receiver.
	ErrMethodNotFound = errors.New("method not found")

	// ErrUnresolvable is matched by errors for parameters that cannot be satisfied.
	ErrUnresolvable = errors.New("parameter cannot be resolved")
)

var (
	_ error = NotFoundError{}
	_ error = CallError{}
	_ error = MethodError{}
	_ error = ParameterError{}
	_ error = InvocationError{}
	_ error = UnusedParametersError{}
)

// NotFoundError indicates a target name with no provider and no known type.
type NotFoundError struct {
	Target string
	Cause  error // set when a known type still could not be produced
}

func (e NotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cannot produce %q: %v", e.Target, e.Cause)
	}
	return fmt.Sprintf("no constructor or type registered for %q", e.Target)
}

func (e NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func (e NotFoundError) Unwrap() error {
	return e.Cause
}

// CallError indicates a callable that is not invocable.
type CallError struct {
	Callable string
	Reason   string
}

func (e CallError) Error() string {
	return fmt.Sprintf("cannot call %s: %s", e.Callable, e.Reason)
}

func (e CallError) Is(target error) bool {
	return target == ErrNotCallable
}

// MethodError indicates a method that does not exist, or is not exported, on
// its receiver.
type MethodError struct {
	Receiver reflect.Type
	Method   string
}

func (e MethodError) Error() string {
	return fmt.Sprintf("method %s not found on %s", e.Method, TypeName(e.Receiver))
}

func (e MethodError) Is(target error) bool {
	return target == ErrMethodNotFound || target == ErrNotCallable
}

// ParameterError indicates a required parameter that could not be supplied or
// resolved.
type ParameterError struct {
	Function reflect.Type
	Index    int
	Name     string
	Type     reflect.Type
	Cause    error
}

func (e ParameterError) Error() string {
	param := fmt.Sprintf("#%d", e.Index)
	if e.Name != "" {
		param = fmt.Sprintf("#%d (%s)", e.Index, e.Name)
	}

	msg := fmt.Sprintf("cannot resolve parameter %s of type %s for %v", param, TypeName(e.Type), e.Function)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e ParameterError) Is(target error) bool {
	return target == ErrUnresolvable
}

func (e ParameterError) Unwrap() error {
	return e.Cause
}

// InvocationError wraps an error returned by, or a panic raised in, a
// constructor or callable.
type InvocationError struct {
	Function reflect.Type
	Cause    error
}

func (e InvocationError) Error() string {
	return fmt.Sprintf("%v failed: %v", e.Function, e.Cause)
}

func (e InvocationError) Unwrap() error {
	return e.Cause
}

// UnusedParametersError indicates parameters supplied for a target that has no
// constructor to receive them.
type UnusedParametersError struct {
	Target string
	Keys   []any
}

func (e UnusedParametersError) Error() string {
	return fmt.Sprintf("parameters %v supplied for %q, which has no constructor", e.Keys, e.Target)
}

func (e UnusedParametersError) Is(target error) bool {
	return target == ErrUnresolvable
}
