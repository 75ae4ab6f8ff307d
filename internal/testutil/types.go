package testutil

import (
	"errors"

	"go.uber.org/dig"
)

// Common test errors
var (
	ErrTest        = errors.New("test error")
	ErrConstructor = errors.New("constructor error")
)

// Foo is a dependency with no dependencies of its own.
type Foo struct {
	Label string
}

func NewFoo() *Foo {
	return &Foo{Label: "foo"}
}

// Bar is a dependency built from its zero value.
type Bar struct {
	Label string
}

// Baz is the dependency Methods is constructed with.
type Baz struct {
	Label string
}

// FooInterface is implemented by *Methods.
type FooInterface interface {
	Called() []string
}

// Methods records every method called on it.
type Methods struct {
	Baz    *Baz
	called []string
}

func NewMethods(baz *Baz) *Methods {
	return &Methods{Baz: baz}
}

func (m *Methods) Called() []string {
	return m.called
}

func (m *Methods) WithoutParameters() string {
	m.called = append(m.called, "WithoutParameters")
	return "WithoutParameters"
}

func (m *Methods) WithBuiltinParameter(name string) string {
	m.called = append(m.called, "WithBuiltinParameter")
	return name
}

// WithOptionalParameter takes its name as an optional variadic argument.
func (m *Methods) WithOptionalParameter(name ...string) string {
	m.called = append(m.called, "WithOptionalParameter")
	if len(name) == 0 {
		return "default"
	}
	return name[0]
}

func (m *Methods) WithParameter(foo *Foo) *Foo {
	m.called = append(m.called, "WithParameter")
	return foo
}

func (m *Methods) WithParameters(foo *Foo, bar *Bar) string {
	m.called = append(m.called, "WithParameters")
	return "called"
}

func (m *Methods) WithBuiltinParameterAndClasses(foo *Foo, name string, bar *Bar) string {
	m.called = append(m.called, "WithBuiltinParameterAndClasses")
	return name
}

func (m *Methods) WithInterface(user UserInterface) UserInterface {
	m.called = append(m.called, "WithInterface")
	return user
}

// NamedParams carries named method arguments.
type NamedParams struct {
	dig.In

	Name  string
	Foo   *Foo
	Title string `optional:"true"`
}

func (m *Methods) WithNamedParameters(p NamedParams) string {
	m.called = append(m.called, "WithNamedParameters")
	return p.Name + p.Title
}

func (m *Methods) Failing() error {
	m.called = append(m.called, "Failing")
	return ErrTest
}

// UserInterface is implemented by every user type.
type UserInterface interface {
	Name() string
}

// HasUserTrait is a mixin recording the values it is given.
type HasUserTrait struct {
	called []string
}

func (h *HasUserTrait) Set(value string) {
	h.called = append(h.called, value)
}

func (h *HasUserTrait) Called() []string {
	return h.called
}

// User is the base user. Every user other than GuestUser embeds it.
type User struct {
	HasUserTrait
}

func (u *User) Name() string { return "user" }

type AdminUser struct {
	User
}

func (u *AdminUser) Name() string { return "admin" }

type EditorUser struct {
	User
}

func (u *EditorUser) Name() string { return "editor" }

// GuestUser does not carry HasUserTrait.
type GuestUser struct {
	called []string
}

func (u *GuestUser) Name() string { return "guest" }

func (u *GuestUser) Set(value string) {
	u.called = append(u.called, value)
}

func (u *GuestUser) Called() []string {
	return u.called
}

// UserProvider is implemented by every user service.
type UserProvider interface {
	User() UserInterface
}

type UserService struct {
	user UserInterface
}

func NewUserService(user UserInterface) *UserService {
	return &UserService{user: user}
}

func (s *UserService) User() UserInterface { return s.user }

type UserServiceFoo struct {
	user UserInterface
}

func NewUserServiceFoo(user UserInterface) *UserServiceFoo {
	return &UserServiceFoo{user: user}
}

func (s *UserServiceFoo) User() UserInterface { return s.user }

type UserServiceBar struct {
	user UserInterface
}

func NewUserServiceBar(user UserInterface) *UserServiceBar {
	return &UserServiceBar{user: user}
}

func (s *UserServiceBar) User() UserInterface { return s.user }

// Tagged declares capabilities by name instead of by embedding.
type Tagged struct {
	Tags   []string
	called []string
}

func (t *Tagged) Capabilities() []string { return t.Tags }

func (t *Tagged) Set(value string) {
	t.called = append(t.called, value)
}

func (t *Tagged) Called() []string { return t.called }

// Account is validated by struct tags.
type Account struct {
	Email string `validate:"required,email"`
	Age   int    `validate:"gte=18"`
}

// WithParameter holds the Foo it was constructed with.
type WithParameter struct {
	Foo *Foo
}

func NewWithParameter(name *Foo) *WithParameter {
	return &WithParameter{Foo: name}
}

// WithParameters needs two class-typed dependencies.
type WithParameters struct {
	Foo *Foo
	Bar *Bar
}

func NewWithParameters(foo *Foo, bar *Bar) *WithParameters {
	return &WithParameters{Foo: foo, Bar: bar}
}

// WithBuiltinParameter needs a string nothing can autowire.
type WithBuiltinParameter struct {
	Name string
}

func NewWithBuiltinParameter(name string) *WithBuiltinParameter {
	return &WithBuiltinParameter{Name: name}
}

// WithOptionalInterface takes a UserInterface only when one is available.
type WithOptionalInterface struct {
	User UserInterface
}

// OptionalUserParams makes the user optional.
type OptionalUserParams struct {
	dig.In

	User UserInterface `optional:"true"`
}

func NewWithOptionalInterface(p OptionalUserParams) *WithOptionalInterface {
	return &WithOptionalInterface{User: p.User}
}

// Invokable is resolved as a function and then called.
type Invokable func() string

func NewInvokable() Invokable {
	return func() string { return "invoked" }
}

// FailingService cannot be constructed.
type FailingService struct{}

func NewFailingService() (*FailingService, error) {
	return nil, ErrConstructor
}
