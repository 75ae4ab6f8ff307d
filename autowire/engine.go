package autowire

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/junioryono/resolver/internal/reflection"
)

// Container is the read accessor the engine consults when a class-typed
// parameter needs a value. Registered instances come from here, so nested
// resolution reuses managed singletons instead of building duplicates.
type Container interface {
	Has(id string) bool
	Get(id string) (any, error)
}

// Engine is the default autowiring engine. It knows how to build values for
// registered names and how to call functions and methods with a mix of
// supplied and autowired arguments.
type Engine struct {
	mu        sync.RWMutex
	providers map[string]*provider
	types     map[string]reflect.Type

	analyzer *reflection.Analyzer
	invoker  *reflection.Invoker

	dig    *dig.Container
	logger *zap.Logger
}

// provider is a registered way to produce a named value.
type provider struct {
	name     string
	info     *reflection.ConstructorInfo
	value    any
	supplied bool
}

// New creates an empty engine.
func New(opts ...Option) *Engine {
	analyzer := reflection.New()
	e := &Engine{
		providers: make(map[string]*provider),
		types:     make(map[string]reflect.Type),
		analyzer:  analyzer,
		invoker:   reflection.NewInvoker(analyzer),
		logger:    zap.NewNop(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt.apply(e)
		}
	}

	return e
}

// Provide registers a constructor under the name of its first result type, or
// under the name given with As. Constructors may return a trailing error.
func (e *Engine) Provide(constructor any, opts ...ProvideOption) error {
	options := &provideOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(options)
		}
	}

	info, err := e.analyzer.Analyze(constructor)
	if err != nil {
		return fmt.Errorf("provide %T: %w", constructor, err)
	}

	if info.ResultType == nil {
		return fmt.Errorf("provide %T: constructor must return a value", constructor)
	}

	if len(options.paramNames) > 0 {
		if info.IsParamObject {
			return fmt.Errorf("provide %T: parameter names come from the In struct fields", constructor)
		}

		params := make([]reflection.ParameterInfo, len(info.Parameters))
		copy(params, info.Parameters)
		for i, name := range options.paramNames {
			if i < len(params) {
				params[i].Name = name
			}
		}
		info.Parameters = params
	}

	name := options.name
	if name == "" {
		name = TypeName(info.ResultType)
	}

	e.mu.Lock()
	e.providers[name] = &provider{name: name, info: info}
	e.types[name] = info.ResultType
	e.mu.Unlock()

	e.logger.Debug("constructor provided",
		zap.String("name", name),
		zap.Stringer("constructor", info.Type),
	)

	return nil
}

// MustProvide is like Provide but panics on error.
func (e *Engine) MustProvide(constructor any, opts ...ProvideOption) *Engine {
	if err := e.Provide(constructor, opts...); err != nil {
		panic(err)
	}
	return e
}

// Supply registers a fixed value under name.
func (e *Engine) Supply(name string, value any) *Engine {
	e.mu.Lock()
	e.providers[name] = &provider{name: name, value: value, supplied: true}
	if value != nil {
		e.types[name] = reflect.TypeOf(value)
	}
	e.mu.Unlock()

	return e
}

// Declare makes types known by name without registering a constructor. Struct
// types become buildable as zero values; interface and mixin types become
// usable as match targets.
func (e *Engine) Declare(types ...reflect.Type) *Engine {
	e.mu.Lock()
	for _, t := range types {
		if t != nil {
			e.types[TypeName(t)] = t
		}
	}
	e.mu.Unlock()

	return e
}

// Has reports whether name can be produced by Resolve.
func (e *Engine) Has(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if _, ok := e.providers[name]; ok {
		return true
	}

	t, ok := e.types[name]
	return ok && constructible(t)
}

// TypeOf returns the type registered or declared under name.
func (e *Engine) TypeOf(name string) (reflect.Type, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	t, ok := e.types[name]
	return t, ok
}

// Resolve produces a fresh value for target. Supplied parameter sets are
// consulted in order, so earlier sets override later ones. A target that is
// only declared has no constructor to take parameters, so supplying any
// returns an UnusedParametersError instead of building a zero value.
func (e *Engine) Resolve(c Container, target string, params ...Parameters) (any, error) {
	e.mu.RLock()
	p, hasProvider := e.providers[target]
	t, hasType := e.types[target]
	e.mu.RUnlock()

	switch {
	case hasProvider && p.supplied:
		return p.value, nil
	case hasProvider:
		return e.invokeForValue(c, p.info, params)
	case hasType:
		if keys := parameterKeys(params); len(keys) > 0 {
			return nil, UnusedParametersError{Target: target, Keys: keys}
		}
		v, err := e.build(t)
		if err != nil {
			return nil, NotFoundError{Target: target, Cause: err}
		}
		return v, nil
	default:
		return nil, NotFoundError{Target: target}
	}
}

// invokeForValue calls a constructor and returns its primary result.
func (e *Engine) invokeForValue(c Container, info *reflection.ConstructorInfo, params []Parameters) (any, error) {
	results, err := e.invoke(c, info, params)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, nil
	}
	return results[0].Interface(), nil
}

// invoke calls a function with arguments resolved against c and params.
func (e *Engine) invoke(c Container, info *reflection.ConstructorInfo, params []Parameters) ([]reflect.Value, error) {
	args := &argumentResolver{engine: e, container: c, params: params, function: info.Type}

	results, err := e.invoker.Invoke(info, args)
	if err != nil {
		if args.failed {
			return nil, err
		}
		return nil, InvocationError{Function: info.Type, Cause: err}
	}

	return results, nil
}

// build produces a value of a type with no registered constructor.
func (e *Engine) build(t reflect.Type) (any, error) {
	if e.dig != nil {
		v, err := e.fromDig(t)
		if err == nil {
			return v, nil
		}
		if !constructible(t) {
			return nil, err
		}
		e.logger.Debug("dig cannot provide type, building zero value",
			zap.String("type", TypeName(t)),
			zap.Error(err),
		)
	}

	switch {
	case t.Kind() == reflect.Struct:
		return reflect.New(t).Elem().Interface(), nil
	case t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct:
		return reflect.New(t.Elem()).Interface(), nil
	default:
		return nil, fmt.Errorf("%s has no constructor and cannot be built from its zero value", TypeName(t))
	}
}

// learn records a class-typed parameter type so later lookups by name succeed.
func (e *Engine) learn(t reflect.Type) string {
	name := TypeName(t)

	e.mu.Lock()
	if _, ok := e.types[name]; !ok {
		e.types[name] = t
	}
	e.mu.Unlock()

	return name
}

// argumentResolver resolves function arguments for one invocation.
type argumentResolver struct {
	engine    *Engine
	container Container
	params    []Parameters
	function  reflect.Type

	// failed is set when an argument could not be produced, so the error is
	// not mistaken for one returned by the function itself.
	failed bool
}

func (r *argumentResolver) ResolveArgument(param reflection.ParameterInfo) (reflect.Value, error) {
	v, err := r.resolve(param)
	if err != nil {
		r.failed = true
		return reflect.Value{}, ParameterError{
			Function: r.function,
			Index:    param.Index,
			Name:     param.Name,
			Type:     param.Type,
			Cause:    err,
		}
	}
	return v, nil
}

func (r *argumentResolver) resolve(param reflection.ParameterInfo) (reflect.Value, error) {
	if supplied, ok := lookup(r.params, param.Name, param.Index); ok {
		return reflection.Coerce(supplied, param.Type)
	}

	if !param.Variadic && classTyped(param.Type) {
		v, err := r.resolveClass(param.Type)
		if err == nil {
			return reflection.Coerce(v, param.Type)
		}
		if !param.Optional {
			return reflect.Value{}, err
		}
	}

	if param.Variadic {
		return reflect.MakeSlice(param.Type, 0, 0), nil
	}

	if param.Optional {
		return reflect.Zero(param.Type), nil
	}

	return reflect.Value{}, fmt.Errorf("no value supplied and %s cannot be autowired", TypeName(param.Type))
}

// resolveClass resolves a class-typed parameter through the container when it
// knows the type, and through the engine otherwise.
func (r *argumentResolver) resolveClass(t reflect.Type) (any, error) {
	name := r.engine.learn(t)

	if r.container != nil && r.container.Has(name) {
		return r.container.Get(name)
	}

	if r.engine.Has(name) {
		return r.engine.Resolve(r.container, name)
	}

	if r.engine.dig != nil {
		return r.engine.fromDig(t)
	}

	return nil, NotFoundError{Target: name}
}
