package reflection

import (
	"fmt"
	"reflect"
	"runtime/debug"
)

// ArgumentResolver supplies the value for a single parameter.
// This is implemented by the autowiring engine.
type ArgumentResolver interface {
	ResolveArgument(param ParameterInfo) (reflect.Value, error)
}

// PanicError reports a function that panicked while being invoked.
type PanicError struct {
	Function reflect.Type
	Panic    any
	Stack    []byte
}

func (e PanicError) Error() string {
	return fmt.Sprintf("%v panicked: %v", e.Function, e.Panic)
}

// Invoker calls analyzed functions with resolved arguments.
type Invoker struct {
	analyzer *Analyzer
}

// NewInvoker creates a new invoker.
func NewInvoker(analyzer *Analyzer) *Invoker {
	if analyzer == nil {
		panic("analyzer cannot be nil")
	}

	return &Invoker{analyzer: analyzer}
}

// Invoke calls a function with arguments produced by the resolver and returns
// its non-error results. A non-nil trailing error is returned as the error.
func (iv *Invoker) Invoke(info *ConstructorInfo, resolver ArgumentResolver) (results []reflect.Value, err error) {
	args, err := iv.BuildArguments(info, resolver)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			results = nil
			err = PanicError{Function: info.Type, Panic: r, Stack: debug.Stack()}
		}
	}()

	var out []reflect.Value
	if info.IsVariadic {
		out = info.Value.CallSlice(args)
	} else {
		out = info.Value.Call(args)
	}

	if info.HasErrorReturn {
		last := out[len(out)-1]
		if !isNil(last) {
			return nil, last.Interface().(error)
		}
		out = out[:len(out)-1]
	}

	return out, nil
}

// BuildArguments builds the argument list for a function.
func (iv *Invoker) BuildArguments(info *ConstructorInfo, resolver ArgumentResolver) ([]reflect.Value, error) {
	if resolver == nil {
		return nil, fmt.Errorf("resolver cannot be nil")
	}

	if info.IsParamObject {
		paramValue, err := iv.buildParamObject(info, resolver)
		if err != nil {
			return nil, err
		}
		return []reflect.Value{paramValue}, nil
	}

	args := make([]reflect.Value, len(info.Parameters))
	for i, param := range info.Parameters {
		value, err := resolver.ResolveArgument(param)
		if err != nil {
			return nil, err
		}
		args[i] = value
	}

	return args, nil
}

// buildParamObject creates and populates an In struct.
func (iv *Invoker) buildParamObject(info *ConstructorInfo, resolver ArgumentResolver) (reflect.Value, error) {
	structType := info.Type.In(0)
	structValue := reflect.New(structType).Elem()

	for _, param := range info.Parameters {
		value, err := resolver.ResolveArgument(param)
		if err != nil {
			return reflect.Value{}, err
		}

		field := structValue.Field(param.Field)
		if field.CanSet() && value.IsValid() {
			field.Set(value)
		}
	}

	return structValue, nil
}

// Coerce converts v to a value assignable to t. Nil becomes the zero value of
// nillable types; basic kinds are converted when Go allows it.
func Coerce(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
			return reflect.Zero(t), nil
		default:
			return reflect.Value{}, fmt.Errorf("cannot use nil as %v", t)
		}
	}

	val := reflect.ValueOf(v)
	if val.Type().AssignableTo(t) {
		if val.Type() != t {
			return val.Convert(t), nil
		}
		return val, nil
	}

	if isBasic(val.Kind()) && isBasic(t.Kind()) && val.Type().ConvertibleTo(t) {
		// int -> string conversions produce runes, not digits.
		if t.Kind() == reflect.String && val.Kind() != reflect.String {
			return reflect.Value{}, fmt.Errorf("cannot use %v as %v", val.Type(), t)
		}
		return val.Convert(t), nil
	}

	return reflect.Value{}, fmt.Errorf("cannot use %v as %v", val.Type(), t)
}

func isBasic(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// isNil reports whether v holds a nil value. Kinds that cannot be nil, such as
// a struct implementing error, never are.
func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return v.IsNil()
	default:
		return false
	}
}
