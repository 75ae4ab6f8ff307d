package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junioryono/resolver"
)

// Recorder is implemented by fixtures that record calls.
type Recorder interface {
	Called() []string
}

// NewResolver returns a resolver backed by NewEngine.
func NewResolver(t testing.TB, opts ...resolver.Option) *resolver.Resolver {
	t.Helper()

	opts = append([]resolver.Option{resolver.WithAutowirer(NewEngine(t))}, opts...)
	r, err := resolver.NewE(opts...)
	require.NoError(t, err)
	return r
}

// AssertResolvable resolves id as T and fails the test on error.
func AssertResolvable[T any](t testing.TB, r *resolver.Resolver, id string) T {
	t.Helper()
	v, err := resolver.Get[T](r, id)
	require.NoError(t, err, "failed to resolve %q", id)
	return v
}

// AssertCalled resolves id and checks the calls it recorded.
func AssertCalled(t testing.TB, r *resolver.Resolver, id string, want ...string) {
	t.Helper()
	rec := AssertResolvable[Recorder](t, r, id)
	if len(want) == 0 {
		assert.Empty(t, rec.Called())
		return
	}
	assert.Equal(t, want, rec.Called())
}

// AssertNotFound checks that resolving id fails because id is unknown.
func AssertNotFound(t testing.TB, r *resolver.Resolver, id string) {
	t.Helper()
	_, err := r.Get(id)
	require.Error(t, err)
	assert.True(t, resolver.IsNotFound(err), "expected not found error, got: %v", err)
	assert.ErrorIs(t, err, resolver.ErrContainer)
}

// AssertResolutionError checks that resolving id fails while building it.
func AssertResolutionError(t testing.TB, r *resolver.Resolver, id string) error {
	t.Helper()
	_, err := r.Get(id)
	require.Error(t, err)
	assert.True(t, resolver.IsResolutionError(err), "expected resolution error, got: %v", err)
	assert.ErrorIs(t, err, resolver.ErrContainer)
	return err
}
