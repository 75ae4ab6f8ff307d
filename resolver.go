package resolver

import (
	"reflect"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/junioryono/resolver/autowire"
	"github.com/junioryono/resolver/internal/reflection"
)

// Autowirer builds values by name and calls functions with autowired
// arguments. *autowire.Engine is the default implementation.
type Autowirer interface {
	Has(name string) bool
	TypeOf(name string) (reflect.Type, bool)
	Resolve(c autowire.Container, target string, params ...autowire.Parameters) (any, error)
	Call(c autowire.Container, callable any, params ...autowire.Parameters) (any, error)
}

var _ Autowirer = (*autowire.Engine)(nil)

// Resolver holds Definitions, shared instances and Rules, and resolves ids
// through them.
//
// A Resolver is not safe for concurrent use. Callers that share one must hold
// a single lock around every call.
type Resolver struct {
	id              string
	autowirer       Autowirer
	logger          *zap.Logger
	defaultPriority int

	definitions map[string]*Definition
	instances   map[string]any
	rules       []Rule
	types       map[string]reflect.Type

	handle *handle
}

// New creates a Resolver. It panics if the options are invalid; use NewE to
// get the error instead.
func New(opts ...Option) *Resolver {
	r, err := NewE(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// NewE creates a Resolver.
func NewE(opts ...Option) (*Resolver, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt.apply(o)
		}
	}

	if err := o.validate(); err != nil {
		return nil, OptionsError{Cause: err}
	}

	r := &Resolver{
		id:              uuid.NewString(),
		autowirer:       o.Autowirer,
		defaultPriority: o.DefaultPriority,
		definitions:     make(map[string]*Definition),
		instances:       make(map[string]any),
		types:           make(map[string]reflect.Type),
	}
	r.logger = o.Logger.With(zap.String("resolver", r.id))
	r.handle = &handle{r: r}

	return r, nil
}

// ID returns the resolver's unique id.
func (r *Resolver) ID() string {
	return r.id
}

// Set registers how id is built and returns the Definition for further
// configuration. Without a value, id itself is resolved as a type name. A
// ClassName resolves that name instead, a function is called, and any other
// value is returned as is.
//
// Setting an id again replaces its Definition and forgets its shared instance.
func (r *Resolver) Set(id string, v ...any) *Definition {
	var raw any
	if len(v) > 0 {
		raw = v[0]
	}

	def := newDefinition(id, raw)
	r.definitions[id] = def
	delete(r.instances, id)

	r.logger.Debug("definition set",
		zap.String("id", id),
		zap.Stringer("kind", def.value.kind),
	)

	return def
}

// On registers a MatchRule for target and returns it for further
// configuration.
//
//	r.On(autowire.NameOf[*Mailer]()).CallMethod("SetRetries", autowire.Positional(3))
func (r *Resolver) On(target string, v ...any) *MatchRule {
	rule := NewMatchRule(target, v...)
	rule.priority = r.defaultPriority
	rule.logger = r.logger

	r.Rule(rule)
	return rule
}

// Rule registers rule and returns it unchanged.
func (r *Resolver) Rule(rule Rule) Rule {
	if rule == nil {
		return nil
	}

	r.rules = append(r.rules, rule)
	r.logger.Debug("rule registered",
		zap.String("rule", describeRule(rule)),
		zap.Int("priority", rule.Priority()),
	)

	return rule
}

// Has reports whether id has a Definition or can be built by the autowirer.
func (r *Resolver) Has(id string) bool {
	if _, ok := r.self(id); ok {
		return true
	}
	if _, ok := r.definitions[id]; ok {
		return true
	}
	if _, ok := r.instances[id]; ok {
		return true
	}
	return r.autowirer.Has(id)
}

// Get returns the shared value for id, building it on first use. Values of
// prototype Definitions are built on every call and never shared.
func (r *Resolver) Get(id string) (any, error) {
	if v, ok := r.self(id); ok {
		return v, nil
	}

	if v, ok := r.instances[id]; ok {
		r.logger.Debug("cache hit", zap.String("id", id))
		return v, nil
	}

	def, err := r.definition(id)
	if err != nil {
		return nil, err
	}

	v, err := r.resolve(def, nil)
	if err != nil {
		return nil, err
	}

	if !def.prototype {
		r.instances[id] = v
	}

	return v, nil
}

// Make builds a new value for id. Supplied parameters take precedence over
// the Definition's. The shared value is neither read nor written.
func (r *Resolver) Make(id string, params ...autowire.Parameters) (any, error) {
	def, err := r.definition(id)
	if err != nil {
		return nil, err
	}

	return r.resolve(def, params)
}

// Call invokes callable with autowired arguments. See autowire.Engine.Call for
// the accepted forms.
func (r *Resolver) Call(callable any, params ...autowire.Parameters) (any, error) {
	v, err := r.autowirer.Call(r.handle, callable, params...)
	if err != nil {
		return nil, ResolutionError{Cause: err}
	}
	return v, nil
}

// Container returns a handle to this resolver for the autowirer and rules.
func (r *Resolver) Container() Container {
	return r.handle
}

// definition returns the registered Definition for id, or an implicit one
// when the autowirer can build id by itself.
func (r *Resolver) definition(id string) (*Definition, error) {
	if def, ok := r.definitions[id]; ok {
		return def, nil
	}

	if !r.autowirer.Has(id) {
		return nil, NotFoundError{ID: id}
	}

	return newDefinition(id, nil), nil
}

// resolve builds the value for def and passes it through the rules.
func (r *Resolver) resolve(def *Definition, params []autowire.Parameters) (any, error) {
	layers := make([]autowire.Parameters, 0, len(params)+1)
	layers = append(layers, params...)
	if def.parameters != nil {
		layers = append(layers, def.parameters)
	}

	var (
		object any
		err    error
	)

	switch def.value.kind {
	case valueInstance:
		object = def.value.raw
	case valueClassName:
		object, err = r.autowirer.Resolve(r.handle, string(def.value.class), layers...)
	case valueClosure:
		object, err = r.autowirer.Call(r.handle, def.value.raw, layers...)
	default:
		object, err = r.autowirer.Resolve(r.handle, def.id, layers...)
	}

	if err != nil {
		return nil, ResolutionError{ID: def.id, Cause: err}
	}

	for _, m := range def.methods {
		if _, err := r.autowirer.Call(r.handle, autowire.Method{Receiver: object, Name: m.Name}, m.Parameters...); err != nil {
			return nil, ResolutionError{ID: def.id, Cause: err}
		}
	}

	return r.intercept(object, def.id)
}

// intercept folds the active rules over object, highest priority first. If a
// rule fails, the rules already handed the object get their state back.
func (r *Resolver) intercept(object any, id string) (any, error) {
	if !reflection.IsObject(object) {
		return object, nil
	}

	active := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		if !rule.Done() {
			active = append(active, rule)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Priority() > active[j].Priority()
	})

	var restores []func()
	for _, rule := range active {
		// A nested resolution may have retired the rule since it was collected.
		if rule.Done() {
			continue
		}

		if cp, ok := rule.(checkpointer); ok {
			restores = append(restores, cp.checkpoint())
		}

		next, err := rule.Handle(object, id, r.handle)
		if err != nil {
			for i := len(restores) - 1; i >= 0; i-- {
				restores[i]()
			}
			r.logger.Debug("rule state restored after failed resolution",
				zap.String("id", id),
				zap.Int("rules", len(restores)),
			)
			return nil, ResolutionError{ID: id, Cause: err}
		}

		if next != nil && r.logger.Core().Enabled(zap.DebugLevel) && !same(next, object) {
			r.logger.Debug("rule replaced object",
				zap.String("id", id),
				zap.String("rule", describeRule(rule)),
			)
		}
		if next != nil {
			object = next
		}
	}

	return object, nil
}

// self answers lookups for the resolver's own handle types.
func (r *Resolver) self(id string) (any, bool) {
	switch id {
	case containerName:
		return r.handle, true
	case resolverName:
		return r, true
	default:
		return nil, false
	}
}

// typeOf returns the type known under name, locally or to the autowirer.
func (r *Resolver) typeOf(name string) (reflect.Type, bool) {
	if t, ok := r.types[name]; ok {
		return t, true
	}
	return r.autowirer.TypeOf(name)
}

var (
	containerName = autowire.NameOf[Container]()
	resolverName  = autowire.NameOf[*Resolver]()
)

func same(a, b any) bool {
	ia, okA := identityOf(a)
	ib, okB := identityOf(b)
	return okA && okB && ia == ib
}

func describeRule(rule Rule) string {
	if s, ok := rule.(interface{ String() string }); ok {
		return s.String()
	}
	return reflect.TypeOf(rule).String()
}

// handle is the Container a Resolver hands to rules and the autowirer.
type handle struct {
	r *Resolver
}

var _ Container = (*handle)(nil)

func (h *handle) Has(id string) bool {
	return h.r.Has(id)
}

func (h *handle) Get(id string) (any, error) {
	return h.r.Get(id)
}

func (h *handle) Resolve(target string, params ...autowire.Parameters) (any, error) {
	return h.r.autowirer.Resolve(h, target, params...)
}

func (h *handle) Call(callable any, params ...autowire.Parameters) (any, error) {
	return h.r.autowirer.Call(h, callable, params...)
}

func (h *handle) TypeOf(name string) (reflect.Type, bool) {
	return h.r.typeOf(name)
}
