package autowire

import (
	"go.uber.org/dig"
	"go.uber.org/zap"
)

// Option configures an Engine.
type Option interface {
	apply(*Engine)
}

// optionFunc adapts a function to Option.
type optionFunc func(*Engine)

func (f optionFunc) apply(e *Engine) {
	f(e)
}

// WithLogger sets the logger used for debug events. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return optionFunc(func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	})
}

// WithDig lets the engine fall back to a dig container for types it has no
// constructor for.
func WithDig(container *dig.Container) Option {
	return optionFunc(func(e *Engine) {
		e.dig = container
	})
}

// ProvideOption configures constructor registration.
type ProvideOption interface {
	apply(*provideOptions)
}

// provideOptions holds provide configuration.
type provideOptions struct {
	name       string
	paramNames []string
}

// provideOptionFunc adapts a function to ProvideOption.
type provideOptionFunc func(*provideOptions)

func (f provideOptionFunc) apply(opts *provideOptions) {
	f(opts)
}

// As registers the constructor under name instead of its result type name.
func As(name string) ProvideOption {
	return provideOptionFunc(func(opts *provideOptions) {
		opts.name = name
	})
}

// ParamNames names the constructor's positional parameters, in order, so they
// can be supplied by name.
func ParamNames(names ...string) ProvideOption {
	return provideOptionFunc(func(opts *provideOptions) {
		opts.paramNames = names
	})
}
