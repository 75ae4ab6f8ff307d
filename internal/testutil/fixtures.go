package testutil

import (
	"reflect"

	"github.com/junioryono/resolver/autowire"
)

// Names of the fixture types, as the engine registers them.
var (
	FooName            = autowire.NameOf[*Foo]()
	BarName            = autowire.NameOf[*Bar]()
	BazName            = autowire.NameOf[*Baz]()
	MethodsName        = autowire.NameOf[*Methods]()
	FooInterfaceName   = autowire.NameOf[FooInterface]()
	UserInterfaceName  = autowire.NameOf[UserInterface]()
	UserProviderName   = autowire.NameOf[UserProvider]()
	HasUserTraitName   = autowire.NameOf[HasUserTrait]()
	AdminUserName      = autowire.NameOf[*AdminUser]()
	GuestUserName      = autowire.NameOf[*GuestUser]()
	EditorUserName     = autowire.NameOf[*EditorUser]()
	UserServiceName    = autowire.NameOf[*UserService]()
	UserServiceFooName = autowire.NameOf[*UserServiceFoo]()
	UserServiceBarName = autowire.NameOf[*UserServiceBar]()
	TaggedName         = autowire.NameOf[*Tagged]()
	AccountName        = autowire.NameOf[*Account]()
	FailingServiceName = autowire.NameOf[*FailingService]()

	WithParameterName         = autowire.NameOf[*WithParameter]()
	WithParametersName        = autowire.NameOf[*WithParameters]()
	WithBuiltinParameterName  = autowire.NameOf[*WithBuiltinParameter]()
	WithOptionalInterfaceName = autowire.NameOf[*WithOptionalInterface]()
	InvokableName             = autowire.NameOf[Invokable]()
)

// Constructor describes a fixture constructor and its registration options.
type Constructor struct {
	Func    any
	Options []autowire.ProvideOption
}

// Constructors lists every fixture constructor.
var Constructors = []Constructor{
	{Func: NewFoo},
	{Func: NewMethods},
	{Func: NewUserService, Options: []autowire.ProvideOption{autowire.ParamNames("user")}},
	{Func: NewUserServiceFoo, Options: []autowire.ProvideOption{autowire.ParamNames("user")}},
	{Func: NewUserServiceBar, Options: []autowire.ProvideOption{autowire.ParamNames("user")}},
	{Func: NewFailingService},
	{Func: NewWithParameter, Options: []autowire.ProvideOption{autowire.ParamNames("name")}},
	{Func: NewWithParameters},
	{Func: NewWithBuiltinParameter, Options: []autowire.ProvideOption{autowire.ParamNames("name")}},
	{Func: NewWithOptionalInterface},
	{Func: NewInvokable},
}

// Declared lists fixture types known by name only: zero-constructible structs
// and match targets.
var Declared = []reflect.Type{
	reflect.TypeFor[*Bar](),
	reflect.TypeFor[*Baz](),
	reflect.TypeFor[*AdminUser](),
	reflect.TypeFor[*GuestUser](),
	reflect.TypeFor[*EditorUser](),
	reflect.TypeFor[*Tagged](),
	reflect.TypeFor[*Account](),
	reflect.TypeFor[FooInterface](),
	reflect.TypeFor[UserInterface](),
	reflect.TypeFor[UserProvider](),
	reflect.TypeFor[HasUserTrait](),
}
