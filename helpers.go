package resolver

import (
	"reflect"

	typetostring "github.com/samber/go-type-to-string"

	"github.com/junioryono/resolver/autowire"
)

// Class returns the ClassName of T.
//
//	r.Set(autowire.NameOf[Mailer](), resolver.Class[*SMTPMailer]())
func Class[T any]() ClassName {
	return ClassName(autowire.NameOf[T]())
}

// Get resolves id and asserts the result to T.
func Get[T any](r *Resolver, id string) (T, error) {
	v, err := r.Get(id)
	if err != nil {
		var zero T
		return zero, err
	}
	return assertType[T](id, v)
}

// Make builds a new value for id and asserts it to T.
func Make[T any](r *Resolver, id string, params ...autowire.Parameters) (T, error) {
	v, err := r.Make(id, params...)
	if err != nil {
		var zero T
		return zero, err
	}
	return assertType[T](id, v)
}

// MustGet is like Get but panics on error.
func MustGet[T any](r *Resolver, id string) T {
	v, err := Get[T](r, id)
	if err != nil {
		panic(err)
	}
	return v
}

// Resolve resolves the id named after T.
//
//	mailer, err := resolver.Resolve[*Mailer](r)
func Resolve[T any](r *Resolver) (T, error) {
	return Get[T](r, autowire.NameOf[T]())
}

// OnType registers a MatchRule targeting T and makes T known to the resolver,
// so InstanceOf and Trait can match against it without declaring it to the
// autowirer first.
func OnType[T any](r *Resolver, v ...any) *MatchRule {
	name := autowire.NameOf[T]()
	r.types[name] = reflect.TypeOf((*T)(nil)).Elem()
	return r.On(name, v...)
}

func assertType[T any](id string, v any) (T, error) {
	result, ok := v.(T)
	if !ok {
		var zero T
		return zero, TypeMismatchError{
			ID:       id,
			Expected: typetostring.GetType[T](),
			Actual:   reflect.TypeOf(v),
		}
	}
	return result, nil
}
