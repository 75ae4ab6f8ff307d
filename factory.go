package resolver

// Factory creates resolvers.
type Factory interface {
	CreateResolver() *Resolver
}

// factory creates resolvers sharing one set of options.
type factory struct {
	opts []Option
}

// NewFactory returns a Factory whose resolvers are built with opts. Pass
// WithAutowirer to have them share one engine.
func NewFactory(opts ...Option) Factory {
	return &factory{opts: opts}
}

func (f *factory) CreateResolver() *Resolver {
	return New(f.opts...)
}
