package resolver

import (
	"fmt"
	"reflect"
	"slices"

	"go.uber.org/zap"

	"github.com/junioryono/resolver/autowire"
	"github.com/junioryono/resolver/internal/reflection"
)

// DefaultPriority is the priority of a MatchRule unless configured otherwise.
const DefaultPriority = 1000

type matchMode int

const (
	matchByID matchMode = iota
	matchByInstanceOf
	matchByCapability
)

func (m matchMode) String() string {
	switch m {
	case matchByID:
		return "id"
	case matchByInstanceOf:
		return "instanceof"
	case matchByCapability:
		return "trait"
	default:
		return "unknown"
	}
}

// identity is the address of an object together with its type. It never keeps
// the object alive.
type identity struct {
	typ  reflect.Type
	addr uintptr
}

func identityOf(object any) (identity, bool) {
	v := reflect.ValueOf(object)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		if v.IsNil() {
			return identity{}, false
		}
		return identity{typ: v.Type(), addr: v.Pointer()}, true
	default:
		return identity{}, false
	}
}

// MatchRule is the Rule built by Resolver.On. By default it matches the
// resolved id; InstanceOf and Trait switch it to matching by type.
//
// On match it applies its value, then calls its queued methods:
//   - a function is called with the object as its first argument; a returned
//     Parameters rebuilds the object's type with those parameters;
//   - a ClassName is resolved, and replaces the object;
//   - Parameters rebuild the object's type with those parameters;
//   - any other value replaces the object.
type MatchRule struct {
	target    string
	mode      matchMode
	value     value
	methods   []MethodCall
	priority  int
	once      bool
	done      bool
	prototype bool

	lastSeen identity
	logger   *zap.Logger
}

var _ Rule = (*MatchRule)(nil)

// NewMatchRule creates a rule matching id target, for use with Resolver.Rule.
func NewMatchRule(target string, v ...any) *MatchRule {
	var raw any
	if len(v) > 0 {
		raw = v[0]
	}

	return &MatchRule{
		target:   target,
		value:    ruleValue(raw),
		priority: DefaultPriority,
		once:     true,
		logger:   zap.NewNop(),
	}
}

// InstanceOf matches objects whose type implements the target interface, or
// is, or points to, the target type.
func (r *MatchRule) InstanceOf() *MatchRule {
	r.mode = matchByInstanceOf
	return r
}

// Trait matches objects whose type embeds the target type, or that list the
// target among their Capabilities. A trait rule never retires: it applies at
// most once to the same object instance, whatever Once is set to, and keeps
// applying to new instances.
func (r *MatchRule) Trait() *MatchRule {
	r.mode = matchByCapability
	return r
}

// Prototype makes a ClassName value resolve a fresh instance on every match
// instead of the resolver's shared one.
func (r *MatchRule) Prototype(flag ...bool) *MatchRule {
	r.prototype = len(flag) == 0 || flag[0]
	return r
}

// CallMethod queues a method to call on matched objects. Methods the object
// does not have are skipped.
func (r *MatchRule) CallMethod(name string, params ...autowire.Parameters) *MatchRule {
	r.methods = append(r.methods, MethodCall{Name: name, Parameters: params})
	return r
}

// WithPriority sets the priority; higher runs first.
func (r *MatchRule) WithPriority(priority int) *MatchRule {
	r.priority = priority
	return r
}

// Once controls whether the rule retires after its first match. Trait rules
// ignore it.
func (r *MatchRule) Once(once bool) *MatchRule {
	r.once = once
	return r
}

func (r *MatchRule) Target() string {
	return r.target
}

func (r *MatchRule) Priority() int {
	return r.priority
}

func (r *MatchRule) Done() bool {
	return r.done
}

func (r *MatchRule) String() string {
	return fmt.Sprintf("on(%s, %s, %s, priority=%d)", r.target, r.mode, r.value.kind, r.priority)
}

// Handle applies the rule to object if it matches.
func (r *MatchRule) Handle(object any, id string, c Container) (any, error) {
	if c == nil {
		return object, nil
	}

	var seen identity
	trackable := false

	switch r.mode {
	case matchByCapability:
		if !r.hasCapability(object, c) {
			return object, nil
		}
		seen, trackable = identityOf(object)
		if trackable && seen == r.lastSeen {
			return object, nil
		}
	case matchByInstanceOf:
		if !r.instanceOf(object, c) {
			return object, nil
		}
	default:
		if id != r.target {
			return object, nil
		}
	}

	object, err := r.apply(object, c)
	if err != nil {
		return nil, err
	}

	for _, m := range r.methods {
		if !autowire.HasMethod(object, m.Name) {
			r.logger.Debug("rule method skipped",
				zap.Stringer("rule", r),
				zap.String("method", m.Name),
			)
			continue
		}
		if _, err := c.Call(autowire.Method{Receiver: object, Name: m.Name}, m.Parameters...); err != nil {
			return nil, err
		}
	}

	switch {
	case r.mode == matchByCapability:
		if trackable {
			r.lastSeen = seen
		}
	case r.once:
		r.done = true
	}

	return object, nil
}

// checkpoint captures the rule's match state. The returned func puts it back.
func (r *MatchRule) checkpoint() (restore func()) {
	done, lastSeen := r.done, r.lastSeen
	return func() {
		r.done, r.lastSeen = done, lastSeen
	}
}

// apply runs the rule's value against object and returns the object to keep.
func (r *MatchRule) apply(object any, c Container) (any, error) {
	var (
		replacement any
		err         error
	)

	switch r.value.kind {
	case valueNone:
		return object, nil
	case valueInstance:
		replacement = r.value.raw
	case valueClosure:
		replacement, err = c.Call(r.value.raw, autowire.Positional(object))
		if err != nil {
			return nil, err
		}
		if params, ok := replacement.(autowire.Parameters); ok {
			replacement, err = c.Resolve(autowire.TypeName(reflect.TypeOf(object)), params)
		}
	case valueClassName:
		if r.prototype {
			replacement, err = c.Resolve(string(r.value.class))
		} else {
			replacement, err = c.Get(string(r.value.class))
		}
	case valueParameters:
		replacement, err = c.Resolve(autowire.TypeName(reflect.TypeOf(object)), r.resolveParameters(c))
	}

	if err != nil {
		return nil, err
	}

	if reflection.IsObject(replacement) {
		return replacement, nil
	}
	return object, nil
}

// resolveParameters returns a copy of the rule's parameters with class names
// replaced by resolved values. Entries that fail to resolve keep their name.
func (r *MatchRule) resolveParameters(c Container) autowire.Parameters {
	params := r.value.params.Clone()

	for _, key := range params.Keys() {
		var name string
		switch v := params[key].(type) {
		case ClassName:
			name = string(v)
		case string:
			if _, known := c.TypeOf(v); !known {
				continue
			}
			name = v
		default:
			continue
		}

		resolved, err := c.Resolve(name)
		if err != nil {
			r.logger.Debug("parameter left unresolved",
				zap.Stringer("rule", r),
				zap.Any("key", key),
				zap.String("target", name),
				zap.Error(err),
			)
			continue
		}
		params[key] = resolved
	}

	return params
}

func (r *MatchRule) instanceOf(object any, c Container) bool {
	target, ok := c.TypeOf(r.target)
	if !ok || object == nil {
		return false
	}

	t := reflect.TypeOf(object)
	if target.Kind() == reflect.Interface {
		return t.Implements(target)
	}
	return t == target || (t.Kind() == reflect.Pointer && t.Elem() == target)
}

func (r *MatchRule) hasCapability(object any, c Container) bool {
	if capable, ok := object.(Capable); ok && slices.Contains(capable.Capabilities(), r.target) {
		return true
	}

	target, ok := c.TypeOf(r.target)
	if !ok || object == nil {
		return false
	}
	return reflection.Embeds(reflect.TypeOf(object), target)
}
