package resolver

import "github.com/junioryono/resolver/autowire"

// MethodCall is a method queued to run on a resolved object.
type MethodCall struct {
	Name       string
	Parameters []autowire.Parameters
}

// Definition describes how one id is built. Configure it right after Set; the
// setters mutate it and return it for chaining.
//
//	r.Set(autowire.NameOf[*Mailer]()).
//		With(autowire.Parameters{"host": "localhost"}).
//		CallMethod("SetRetries", autowire.Positional(3))
type Definition struct {
	id         string
	value      value
	parameters autowire.Parameters
	methods    []MethodCall
	prototype  bool
}

func newDefinition(id string, v any) *Definition {
	return &Definition{
		id:    id,
		value: definitionValue(v),
	}
}

// With replaces the constructor parameters.
func (d *Definition) With(params autowire.Parameters) *Definition {
	d.parameters = params.Clone()
	return d
}

// Construct replaces the constructor parameters with positional values.
func (d *Definition) Construct(values ...any) *Definition {
	d.parameters = autowire.Positional(values...)
	return d
}

// CallMethod queues a method to call on the built object. Calls run in the
// order they were queued; the same method may be queued more than once.
func (d *Definition) CallMethod(name string, params ...autowire.Parameters) *Definition {
	d.methods = append(d.methods, MethodCall{Name: name, Parameters: params})
	return d
}

// Prototype marks the definition as building a new value on every Get.
// Prototype() is Prototype(true).
func (d *Definition) Prototype(flag ...bool) *Definition {
	d.prototype = len(flag) == 0 || flag[0]
	return d
}

func (d *Definition) ID() string {
	return d.id
}

// Value returns the value given to Set: nil, a ClassName, a function or an
// instance.
func (d *Definition) Value() any {
	return d.value.raw
}

func (d *Definition) Parameters() autowire.Parameters {
	return d.parameters.Clone()
}

func (d *Definition) Methods() []MethodCall {
	methods := make([]MethodCall, len(d.methods))
	copy(methods, d.methods)
	return methods
}

func (d *Definition) IsPrototype() bool {
	return d.prototype
}
