package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/junioryono/resolver/autowire"
)

// NewEngine returns an engine with every fixture registered.
func NewEngine(t testing.TB, opts ...autowire.Option) *autowire.Engine {
	t.Helper()

	e := autowire.New(opts...)
	for _, c := range Constructors {
		require.NoError(t, e.Provide(c.Func, c.Options...))
	}
	e.Declare(Declared...)

	return e
}

// Container is a map-backed autowire.Container.
type Container map[string]any

func (c Container) Has(id string) bool {
	_, ok := c[id]
	return ok
}

func (c Container) Get(id string) (any, error) {
	v, ok := c[id]
	if !ok {
		return nil, autowire.NotFoundError{Target: id}
	}
	return v, nil
}
