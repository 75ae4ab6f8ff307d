package resolver

import (
	"reflect"

	"github.com/junioryono/resolver/autowire"
)

// ClassName names a target to resolve, as opposed to a plain string value.
//
//	r.Set("mailer", resolver.ClassName(autowire.NameOf[*SMTPMailer]()))
type ClassName string

type valueKind int

const (
	valueNone valueKind = iota
	valueClassName
	valueInstance
	valueClosure
	valueParameters
)

func (k valueKind) String() string {
	switch k {
	case valueNone:
		return "none"
	case valueClassName:
		return "class"
	case valueInstance:
		return "instance"
	case valueClosure:
		return "closure"
	case valueParameters:
		return "parameters"
	default:
		return "unknown"
	}
}

// value is what a Definition builds from or what a MatchRule applies,
// classified once when it is configured.
type value struct {
	kind   valueKind
	raw    any
	class  ClassName
	params autowire.Parameters
}

// definitionValue classifies the value given to Set.
func definitionValue(v any) value {
	switch tv := v.(type) {
	case nil:
		return value{kind: valueNone}
	case ClassName:
		return value{kind: valueClassName, raw: tv, class: tv}
	}

	if isFunc(v) {
		return value{kind: valueClosure, raw: v}
	}
	return value{kind: valueInstance, raw: v}
}

// ruleValue classifies the value given to On.
func ruleValue(v any) value {
	switch tv := v.(type) {
	case autowire.Parameters:
		return value{kind: valueParameters, raw: tv, params: tv.Clone()}
	case map[string]any:
		params := make(autowire.Parameters, len(tv))
		for k, item := range tv {
			params[k] = item
		}
		return value{kind: valueParameters, raw: tv, params: params}
	}
	return definitionValue(v)
}

func isFunc(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Func && !rv.IsNil()
}
