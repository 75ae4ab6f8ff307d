package reflection

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapResolver supplies arguments by parameter name, then by type.
type mapResolver struct {
	byName map[string]any
	byType map[reflect.Type]any
	calls  int
}

func (r *mapResolver) ResolveArgument(param ParameterInfo) (reflect.Value, error) {
	r.calls++
	if v, ok := r.byName[param.Name]; ok {
		return Coerce(v, param.Type)
	}
	if v, ok := r.byType[param.Type]; ok {
		return Coerce(v, param.Type)
	}
	if param.Optional {
		return reflect.Zero(param.Type), nil
	}
	return reflect.Value{}, errors.New("missing " + param.Type.String())
}

func TestNewInvoker(t *testing.T) {
	assert.Panics(t, func() { NewInvoker(nil) })

	a := New()
	assert.Same(t, a, NewInvoker(a).analyzer)
}

func TestInvoker_Invoke(t *testing.T) {
	dep := &testDep{Name: "dep"}

	t.Run("positional", func(t *testing.T) {
		iv := NewInvoker(New())
		info, err := iv.analyzer.Analyze(func(d *testDep) string { return d.Name })
		require.NoError(t, err)

		out, err := iv.Invoke(info, &mapResolver{byType: map[reflect.Type]any{reflect.TypeFor[*testDep](): dep}})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "dep", out[0].String())
	})

	t.Run("param object", func(t *testing.T) {
		iv := NewInvoker(New())
		info, err := iv.analyzer.Analyze(func(p testParams) string { return p.Dep.Name + ":" + p.Label })
		require.NoError(t, err)

		r := &mapResolver{
			byName: map[string]any{"title": "t", "urlPath": "/", "database": "db"},
			byType: map[reflect.Type]any{reflect.TypeFor[*testDep](): dep},
		}
		out, err := iv.Invoke(info, r)
		require.NoError(t, err)
		assert.Equal(t, "dep:t", out[0].String())
		assert.Equal(t, 5, r.calls)
	})

	t.Run("variadic", func(t *testing.T) {
		iv := NewInvoker(New())
		info, err := iv.analyzer.Analyze(func(names ...string) int { return len(names) })
		require.NoError(t, err)

		out, err := iv.Invoke(info, &mapResolver{byType: map[reflect.Type]any{reflect.TypeFor[[]string](): []string{"a", "b"}}})
		require.NoError(t, err)
		assert.Equal(t, int64(2), out[0].Int())
	})

	t.Run("strips nil error", func(t *testing.T) {
		iv := NewInvoker(New())
		info, err := iv.analyzer.Analyze(func() (string, error) { return "ok", nil })
		require.NoError(t, err)

		out, err := iv.Invoke(info, &mapResolver{})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "ok", out[0].String())
	})

	t.Run("returns error result", func(t *testing.T) {
		iv := NewInvoker(New())
		boom := errors.New("boom")
		info, err := iv.analyzer.Analyze(func() (string, error) { return "", boom })
		require.NoError(t, err)

		_, err = iv.Invoke(info, &mapResolver{})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("recovers panics", func(t *testing.T) {
		iv := NewInvoker(New())
		info, err := iv.analyzer.Analyze(func() string { panic("boom") })
		require.NoError(t, err)

		_, err = iv.Invoke(info, &mapResolver{})
		var pe PanicError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "boom", pe.Panic)
		assert.NotEmpty(t, pe.Stack)
	})

	t.Run("argument errors stop the call", func(t *testing.T) {
		iv := NewInvoker(New())
		called := false
		info, err := iv.analyzer.Analyze(func(d *testDep) { called = true })
		require.NoError(t, err)

		_, err = iv.Invoke(info, &mapResolver{})
		assert.Error(t, err)
		assert.False(t, called)
	})

	t.Run("struct error result", func(t *testing.T) {
		iv := NewInvoker(New())
		info, err := iv.analyzer.Analyze(func() (string, structError) { return "", structError{msg: "boom"} })
		require.NoError(t, err)
		require.True(t, info.HasErrorReturn)

		_, err = iv.Invoke(info, &mapResolver{})
		assert.Equal(t, structError{msg: "boom"}, err)

		var pe PanicError
		assert.False(t, errors.As(err, &pe))
	})

	t.Run("nil resolver", func(t *testing.T) {
		iv := NewInvoker(New())
		info, err := iv.analyzer.Analyze(func() {})
		require.NoError(t, err)

		_, err = iv.Invoke(info, nil)
		assert.Error(t, err)
	})
}

type structError struct{ msg string }

func (e structError) Error() string { return e.msg }

type celsius float64

func TestCoerce(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		typ     reflect.Type
		want    any
		wantErr bool
	}{
		{"assignable", "x", reflect.TypeFor[string](), "x", false},
		{"to interface", &testDep{}, reflect.TypeFor[any](), &testDep{}, false},
		{"int to int64", 3, reflect.TypeFor[int64](), int64(3), false},
		{"float to named float", 21.5, reflect.TypeFor[celsius](), celsius(21.5), false},
		{"nil pointer", nil, reflect.TypeFor[*testDep](), (*testDep)(nil), false},
		{"nil slice", nil, reflect.TypeFor[[]string](), []string(nil), false},
		{"nil int", nil, reflect.TypeFor[int](), nil, true},
		{"int to string", 65, reflect.TypeFor[string](), nil, true},
		{"string to pointer", "x", reflect.TypeFor[*testDep](), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.value, tt.typ)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.typ, got.Type())
			assert.Equal(t, tt.want, got.Interface())
		})
	}
}
