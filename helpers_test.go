package resolver_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junioryono/resolver"
	"github.com/junioryono/resolver/autowire"
	"github.com/junioryono/resolver/internal/testutil"
)

func TestClass(t *testing.T) {
	assert.Equal(t, resolver.ClassName(testutil.FooName), resolver.Class[*testutil.Foo]())
	assert.Equal(t, resolver.ClassName(testutil.UserInterfaceName), resolver.Class[testutil.UserInterface]())
}

func TestGet(t *testing.T) {
	t.Run("matching type", func(t *testing.T) {
		foo, err := resolver.Get[*testutil.Foo](testutil.NewResolver(t), testutil.FooName)

		require.NoError(t, err)
		assert.Equal(t, "foo", foo.Label)
	})

	t.Run("interface type", func(t *testing.T) {
		r := testutil.NewResolver(t)
		r.Set(testutil.UserInterfaceName, resolver.Class[*testutil.AdminUser]())

		user, err := resolver.Get[testutil.UserInterface](r, testutil.UserInterfaceName)
		require.NoError(t, err)
		assert.Equal(t, "admin", user.Name())
	})

	t.Run("type mismatch", func(t *testing.T) {
		r := testutil.NewResolver(t)
		r.Set("port", "8080")

		port, err := resolver.Get[int](r, "port")
		require.Error(t, err)
		assert.Zero(t, port)
		assert.ErrorIs(t, err, resolver.ErrContainer)

		var mismatch resolver.TypeMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "port", mismatch.ID)
		assert.Equal(t, "int", mismatch.Expected)
		assert.Equal(t, reflect.TypeOf(""), mismatch.Actual)
	})

	t.Run("resolution error", func(t *testing.T) {
		_, err := resolver.Get[*testutil.Foo](testutil.NewResolver(t), "unknown")

		assert.True(t, resolver.IsNotFound(err))
	})
}

func TestMake(t *testing.T) {
	r := testutil.NewResolver(t)
	foo := &testutil.Foo{}

	v, err := resolver.Make[*testutil.WithParameter](r, testutil.WithParameterName, autowire.Positional(foo))
	require.NoError(t, err)
	assert.Same(t, foo, v.Foo)

	_, err = resolver.Make[*testutil.Foo](r, testutil.WithParameterName)
	var mismatch resolver.TypeMismatchError
	assert.ErrorAs(t, err, &mismatch)

	_, err = resolver.Make[*testutil.Foo](r, testutil.WithBuiltinParameterName)
	assert.True(t, resolver.IsResolutionError(err))
}

func TestMustGet(t *testing.T) {
	r := testutil.NewResolver(t)

	assert.NotPanics(t, func() {
		assert.NotNil(t, resolver.MustGet[*testutil.Foo](r, testutil.FooName))
	})
	assert.Panics(t, func() {
		resolver.MustGet[*testutil.Foo](r, "unknown")
	})
}

func TestResolve(t *testing.T) {
	r := testutil.NewResolver(t)

	foo, err := resolver.Resolve[*testutil.Foo](r)
	require.NoError(t, err)
	assert.Same(t, testutil.AssertResolvable[*testutil.Foo](t, r, testutil.FooName), foo)

	r.Set(testutil.UserInterfaceName, resolver.Class[*testutil.EditorUser]())
	user, err := resolver.Resolve[testutil.UserInterface](r)
	require.NoError(t, err)
	assert.Equal(t, "editor", user.Name())
}

func TestOnType(t *testing.T) {
	r := testutil.NewResolver(t)
	rule := resolver.OnType[*testutil.Foo](r, &testutil.Foo{Label: "replaced"})

	assert.Equal(t, testutil.FooName, rule.Target())

	foo, err := resolver.Resolve[*testutil.Foo](r)
	require.NoError(t, err)
	assert.Equal(t, "replaced", foo.Label)

	typ, ok := r.Container().TypeOf(autowire.NameOf[*testutil.Foo]())
	assert.True(t, ok)
	assert.Equal(t, reflect.TypeOf(&testutil.Foo{}), typ)
}
