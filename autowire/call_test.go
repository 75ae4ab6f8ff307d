package autowire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junioryono/resolver/autowire"
	"github.com/junioryono/resolver/internal/testutil"
)

func TestEngine_Call(t *testing.T) {
	methods := testutil.NewMethods(&testutil.Baz{})

	tests := []struct {
		name     string
		callable any
		params   []autowire.Parameters
		want     any
	}{
		{
			name:     "closure",
			callable: func() string { return "hello" },
			want:     "hello",
		},
		{
			name:     "closure without results",
			callable: func() {},
			want:     nil,
		},
		{
			name:     "closure with supplied parameter",
			callable: func(name string, n int) string { return name + string(rune('0'+n)) },
			params:   []autowire.Parameters{{0: "v", 1: 1}},
			want:     "v1",
		},
		{
			name:     "method on instance",
			callable: autowire.Method{Receiver: methods, Name: "WithoutParameters"},
			want:     "WithoutParameters",
		},
		{
			name:     "method on pointer to Method",
			callable: &autowire.Method{Receiver: methods, Name: "WithoutParameters"},
			want:     "WithoutParameters",
		},
		{
			name:     "method on type name",
			callable: autowire.Method{Receiver: testutil.MethodsName, Name: "WithBuiltinParameter"},
			params:   []autowire.Parameters{autowire.Positional("welcome")},
			want:     "welcome",
		},
		{
			name:     "type and method string",
			callable: testutil.MethodsName + "::WithoutParameters",
			want:     "WithoutParameters",
		},
		{
			name:     "type whose value is a function",
			callable: testutil.InvokableName,
			want:     "invoked",
		},
		{
			name:     "optional variadic omitted",
			callable: autowire.Method{Receiver: methods, Name: "WithOptionalParameter"},
			want:     "default",
		},
		{
			name:     "optional variadic supplied",
			callable: autowire.Method{Receiver: methods, Name: "WithOptionalParameter"},
			params:   []autowire.Parameters{autowire.Positional([]string{"welcome"})},
			want:     "welcome",
		},
		{
			name:     "builtin between classes",
			callable: autowire.Method{Receiver: methods, Name: "WithBuiltinParameterAndClasses"},
			params:   []autowire.Parameters{{1: "foo"}},
			want:     "foo",
		},
		{
			name:     "named fields of a param object",
			callable: autowire.Method{Receiver: methods, Name: "WithNamedParameters"},
			params:   []autowire.Parameters{{"name": "foo", "title": "bar"}},
			want:     "foobar",
		},
		{
			name:     "optional field of a param object",
			callable: autowire.Method{Receiver: methods, Name: "WithNamedParameters"},
			params:   []autowire.Parameters{{"name": "foo"}},
			want:     "foo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testutil.NewEngine(t)

			got, err := e.Call(nil, tt.callable, tt.params...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngine_CallAutowires(t *testing.T) {
	e := testutil.NewEngine(t)

	got, err := e.Call(nil, func(foo *testutil.Foo) *testutil.Foo { return foo })
	require.NoError(t, err)
	assert.IsType(t, &testutil.Foo{}, got)

	foo := &testutil.Foo{}
	got, err = e.Call(nil, func(foo *testutil.Foo) *testutil.Foo { return foo }, autowire.Positional(foo))
	require.NoError(t, err)
	assert.Same(t, foo, got)

	got, err = e.Call(nil, autowire.Method{Receiver: testutil.MethodsName, Name: "WithParameter"})
	require.NoError(t, err)
	assert.IsType(t, &testutil.Foo{}, got)
}

func TestEngine_CallErrors(t *testing.T) {
	tests := []struct {
		name     string
		callable any
		params   []autowire.Parameters
		target   error
	}{
		{
			name:     "nil",
			callable: nil,
			target:   autowire.ErrNotCallable,
		},
		{
			name:     "nil Method pointer",
			callable: (*autowire.Method)(nil),
			target:   autowire.ErrNotCallable,
		},
		{
			name:     "not a function",
			callable: 42,
			target:   autowire.ErrNotCallable,
		},
		{
			name:     "nil function",
			callable: (func())(nil),
			target:   autowire.ErrNotCallable,
		},
		{
			name:     "type whose value is not a function",
			callable: testutil.FooName,
			target:   autowire.ErrNotCallable,
		},
		{
			name:     "unknown name",
			callable: "unknown",
			target:   autowire.ErrNotFound,
		},
		{
			name:     "unknown receiver",
			callable: "unknown::Method",
			target:   autowire.ErrNotFound,
		},
		{
			name:     "missing method",
			callable: autowire.Method{Receiver: testutil.MethodsName, Name: "Missing"},
			target:   autowire.ErrMethodNotFound,
		},
		{
			name:     "unexported method",
			callable: testutil.MethodsName + "::called",
			target:   autowire.ErrMethodNotFound,
		},
		{
			name:     "empty method name",
			callable: autowire.Method{Receiver: testutil.MethodsName},
			target:   autowire.ErrNotCallable,
		},
		{
			name:     "nil receiver",
			callable: autowire.Method{Name: "WithoutParameters"},
			target:   autowire.ErrNotCallable,
		},
		{
			name:     "unresolvable parameter",
			callable: testutil.MethodsName + "::WithBuiltinParameter",
			target:   autowire.ErrUnresolvable,
		},
		{
			name:     "required field of a param object",
			callable: testutil.MethodsName + "::WithNamedParameters",
			target:   autowire.ErrUnresolvable,
		},
		{
			name:     "error result",
			callable: testutil.MethodsName + "::Failing",
			target:   testutil.ErrTest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testutil.NewEngine(t).Call(nil, tt.callable, tt.params...)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestHasMethod(t *testing.T) {
	methods := testutil.NewMethods(nil)

	assert.True(t, autowire.HasMethod(methods, "WithoutParameters"))
	assert.True(t, autowire.HasMethod(&testutil.AdminUser{}, "Set"), "promoted from an embedded struct")
	assert.False(t, autowire.HasMethod(methods, "called"))
	assert.False(t, autowire.HasMethod(methods, "Missing"))
	assert.False(t, autowire.HasMethod(nil, "WithoutParameters"))
	assert.False(t, autowire.HasMethod(testutil.AdminUser{}, "Set"), "pointer methods need a pointer")
}

func TestMethod_String(t *testing.T) {
	assert.Equal(t, "app.Service::Run", autowire.Method{Receiver: "app.Service", Name: "Run"}.String())
	assert.Equal(t, "*testutil.Foo::Run", autowire.Method{Receiver: &testutil.Foo{}, Name: "Run"}.String())
}
