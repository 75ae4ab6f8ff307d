package autowire

import (
	"fmt"
	"reflect"
)

// NameOf returns the canonical name of T.
//
//	autowire.NameOf[*UserService]() // "*github.com/acme/app/users.UserService"
func NameOf[T any]() string {
	return TypeName(reflect.TypeOf((*T)(nil)).Elem())
}

// TypeName returns the canonical name of t: the full package path for named
// types, composed with "*", "[]" and "map[...]" for unnamed ones.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}

	switch t.Kind() {
	case reflect.Pointer:
		return "*" + TypeName(t.Elem())
	case reflect.Slice:
		return "[]" + TypeName(t.Elem())
	case reflect.Array:
		return fmt.Sprintf("[%d]%s", t.Len(), TypeName(t.Elem()))
	case reflect.Map:
		return "map[" + TypeName(t.Key()) + "]" + TypeName(t.Elem())
	default:
		return t.String()
	}
}

// classTyped reports whether a parameter of type t is resolved by type, the
// way objects are, rather than only from supplied values.
func classTyped(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Struct:
		return t.Name() != ""
	case reflect.Pointer:
		return t.Elem().Kind() == reflect.Struct && t.Elem().Name() != ""
	default:
		return false
	}
}

// constructible reports whether a zero value of t is a usable instance.
func constructible(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Struct:
		return true
	case reflect.Pointer:
		return t.Elem().Kind() == reflect.Struct
	default:
		return false
	}
}
