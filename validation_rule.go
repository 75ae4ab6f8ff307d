package resolver

import (
	"reflect"

	"github.com/go-playground/validator/v10"
)

// ValidationRule validates resolved structs, and pointers to structs, against
// their `validate` tags. An invalid value fails the Get or Make that built it.
//
//	r.Rule(resolver.NewValidationRule(autowire.NameOf[*Config]()))
type ValidationRule struct {
	validate *validator.Validate
	ids      map[string]struct{}
	priority int
}

var _ Rule = (*ValidationRule)(nil)

// NewValidationRule creates a rule validating the given ids, or every id when
// none are given. It runs with priority 0, after rules with the default
// priority.
func NewValidationRule(ids ...string) *ValidationRule {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	return &ValidationRule{
		validate: validator.New(),
		ids:      set,
	}
}

// WithValidator replaces the validator, e.g. one with custom validations
// registered.
func (v *ValidationRule) WithValidator(validate *validator.Validate) *ValidationRule {
	if validate != nil {
		v.validate = validate
	}
	return v
}

func (v *ValidationRule) WithPriority(priority int) *ValidationRule {
	v.priority = priority
	return v
}

func (v *ValidationRule) Priority() int {
	return v.priority
}

// Done is always false; every resolution is validated.
func (v *ValidationRule) Done() bool {
	return false
}

func (v *ValidationRule) Handle(object any, id string, _ Container) (any, error) {
	if len(v.ids) > 0 {
		if _, ok := v.ids[id]; !ok {
			return object, nil
		}
	}

	rv := reflect.ValueOf(object)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return object, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return object, nil
	}

	if err := v.validate.Struct(object); err != nil {
		return nil, ValidationError{ID: id, Type: reflect.TypeOf(object), Cause: err}
	}

	return object, nil
}

func (v *ValidationRule) String() string {
	return "validate"
}
