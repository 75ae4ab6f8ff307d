package resolver

import (
	"reflect"

	"github.com/junioryono/resolver/autowire"
)

// Rule intercepts resolved objects. Rules that are not Done run in descending
// Priority order; each one receives the object the previous one returned.
type Rule interface {
	Priority() int
	Done() bool
	Handle(object any, id string, c Container) (any, error)
}

// checkpointer is implemented by rules with match state. A resolution that
// fails puts back the state of every rule it handed the object to.
type checkpointer interface {
	checkpoint() (restore func())
}

// Capable is implemented by types that declare capabilities by name. A
// capability rule matches an object whose Capabilities include its target,
// as well as objects whose type embeds the target type.
type Capable interface {
	Capabilities() []string
}

// Container is the handle rules and the autowirer use to reach the resolver
// that is running them.
type Container interface {
	autowire.Container

	// Resolve builds a fresh value through the autowirer. Definitions and
	// rules are not consulted.
	Resolve(target string, params ...autowire.Parameters) (any, error)

	// Call invokes callable with autowired arguments.
	Call(callable any, params ...autowire.Parameters) (any, error)

	// TypeOf returns the type known under name.
	TypeOf(name string) (reflect.Type, bool)
}
