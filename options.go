package resolver

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/junioryono/resolver/autowire"
)

var (
	optionsValidator = validator.New()
)

// Option configures a Resolver.
type Option interface {
	apply(*options)
}

// options holds resolver configuration.
type options struct {
	Logger          *zap.Logger `validate:"required"`
	Autowirer       Autowirer   `validate:"required"`
	DefaultPriority int         `validate:"gte=0"`
}

func defaultOptions() *options {
	return &options{
		Logger:          zap.NewNop(),
		Autowirer:       autowire.New(),
		DefaultPriority: DefaultPriority,
	}
}

func (o *options) validate() error {
	return optionsValidator.Struct(o)
}

// optionFunc adapts a function to Option.
type optionFunc func(*options)

func (f optionFunc) apply(o *options) {
	f(o)
}

// WithLogger sets the logger for debug events. The default discards them.
func WithLogger(logger *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.Logger = logger
	})
}

// WithAutowirer sets the engine that builds values and calls functions. The
// default is an empty autowire.Engine.
func WithAutowirer(autowirer Autowirer) Option {
	return optionFunc(func(o *options) {
		o.Autowirer = autowirer
	})
}

// WithDefaultPriority sets the priority of rules created by On.
func WithDefaultPriority(priority int) Option {
	return optionFunc(func(o *options) {
		o.DefaultPriority = priority
	})
}
