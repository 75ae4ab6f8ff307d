package autowire

import (
	"fmt"
	"reflect"
	"strings"

	"go.uber.org/zap"
)

// Method names a method on a receiver. Receiver is either an instance or the
// name of a target the engine or container can produce.
type Method struct {
	Receiver any
	Name     string
}

func (m Method) String() string {
	if name, ok := m.Receiver.(string); ok {
		return name + "::" + m.Name
	}
	return fmt.Sprintf("%T::%s", m.Receiver, m.Name)
}

// Call invokes callable with arguments resolved the same way constructor
// arguments are. callable is one of:
//   - a function;
//   - a Method;
//   - a "Target::Method" string;
//   - the name of a target whose value is a function.
//
// The first non-error result is returned, or nil when there is none.
func (e *Engine) Call(c Container, callable any, params ...Parameters) (any, error) {
	fn, err := e.callableValue(c, callable)
	if err != nil {
		return nil, err
	}

	info, err := e.analyzer.Analyze(fn.Interface())
	if err != nil {
		return nil, CallError{Callable: describe(callable), Reason: err.Error()}
	}

	e.logger.Debug("calling", zap.String("callable", describe(callable)))

	results, err := e.invoke(c, info, params)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, nil
	}
	return results[0].Interface(), nil
}

// HasMethod reports whether receiver has an exported method called name.
func HasMethod(receiver any, name string) bool {
	if receiver == nil || name == "" {
		return false
	}
	return reflect.ValueOf(receiver).MethodByName(name).IsValid()
}

func (e *Engine) callableValue(c Container, callable any) (reflect.Value, error) {
	switch callable := callable.(type) {
	case nil:
		return reflect.Value{}, CallError{Callable: "<nil>", Reason: "callable is nil"}
	case Method:
		return e.methodValue(c, callable)
	case *Method:
		if callable == nil {
			return reflect.Value{}, CallError{Callable: "<nil>", Reason: "callable is nil"}
		}
		return e.methodValue(c, *callable)
	case string:
		if target, method, ok := strings.Cut(callable, "::"); ok {
			return e.methodValue(c, Method{Receiver: target, Name: method})
		}

		v, err := e.receiver(c, callable)
		if err != nil {
			return reflect.Value{}, err
		}
		fn := reflect.ValueOf(v)
		if fn.Kind() != reflect.Func || fn.IsNil() {
			return reflect.Value{}, CallError{Callable: callable, Reason: fmt.Sprintf("resolves to %T, not a function", v)}
		}
		return fn, nil
	}

	fn := reflect.ValueOf(callable)
	if fn.Kind() != reflect.Func {
		return reflect.Value{}, CallError{Callable: describe(callable), Reason: "not a function"}
	}
	if fn.IsNil() {
		return reflect.Value{}, CallError{Callable: describe(callable), Reason: "function is nil"}
	}
	return fn, nil
}

func (e *Engine) methodValue(c Container, m Method) (reflect.Value, error) {
	if m.Name == "" {
		return reflect.Value{}, CallError{Callable: m.String(), Reason: "method name is empty"}
	}

	recv := m.Receiver
	if name, ok := recv.(string); ok {
		v, err := e.receiver(c, name)
		if err != nil {
			return reflect.Value{}, err
		}
		recv = v
	}

	if recv == nil {
		return reflect.Value{}, CallError{Callable: m.String(), Reason: "receiver is nil"}
	}

	method := reflect.ValueOf(recv).MethodByName(m.Name)
	if !method.IsValid() {
		return reflect.Value{}, MethodError{Receiver: reflect.TypeOf(recv), Method: m.Name}
	}
	return method, nil
}

// receiver produces the value named by target, preferring instances the
// container already manages.
func (e *Engine) receiver(c Container, target string) (any, error) {
	if c != nil && c.Has(target) {
		return c.Get(target)
	}
	if e.Has(target) {
		return e.Resolve(c, target)
	}
	return nil, NotFoundError{Target: target}
}

func describe(callable any) string {
	switch callable := callable.(type) {
	case nil:
		return "<nil>"
	case string:
		return callable
	case Method:
		return callable.String()
	case fmt.Stringer:
		return callable.String()
	default:
		return fmt.Sprintf("%T", callable)
	}
}
