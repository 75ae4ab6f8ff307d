package autowire

import "sort"

// Parameters holds supplied arguments keyed by position (int) or by name
// (string). Keys of any other type are ignored.
//
//	autowire.Parameters{0: db, "name": "primary"}
type Parameters map[any]any

// Positional builds Parameters from values keyed 0, 1, 2, ...
func Positional(values ...any) Parameters {
	p := make(Parameters, len(values))
	for i, v := range values {
		p[i] = v
	}
	return p
}

// Named returns the value supplied for name.
func (p Parameters) Named(name string) (any, bool) {
	if p == nil || name == "" {
		return nil, false
	}
	v, ok := p[name]
	return v, ok
}

// At returns the value supplied for position i.
func (p Parameters) At(i int) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p[i]
	return v, ok
}

// Clone returns a shallow copy.
func (p Parameters) Clone() Parameters {
	if p == nil {
		return nil
	}
	cp := make(Parameters, len(p))
	for k, v := range p {
		cp[k] = v
	}
	return cp
}

// Keys returns positional keys in ascending order followed by named keys in
// lexical order.
func (p Parameters) Keys() []any {
	var (
		positions []int
		names     []string
	)
	for k := range p {
		switch key := k.(type) {
		case int:
			positions = append(positions, key)
		case string:
			names = append(names, key)
		}
	}
	sort.Ints(positions)
	sort.Strings(names)

	keys := make([]any, 0, len(positions)+len(names))
	for _, i := range positions {
		keys = append(keys, i)
	}
	for _, n := range names {
		keys = append(keys, n)
	}
	return keys
}

// parameterKeys returns the keys of every set, in layer order.
func parameterKeys(layers []Parameters) []any {
	var keys []any
	for _, layer := range layers {
		keys = append(keys, layer.Keys()...)
	}
	return keys
}

// lookup finds a supplied value for a parameter across layered sets. Earlier
// sets win; within a set a name match wins over a position match.
func lookup(layers []Parameters, name string, index int) (any, bool) {
	for _, layer := range layers {
		if v, ok := layer.Named(name); ok {
			return v, true
		}
		if v, ok := layer.At(index); ok {
			return v, true
		}
	}
	return nil, false
}
