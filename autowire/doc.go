// Package autowire is a reflection-based autowiring engine.
//
// Go cannot build a value from a type name, so the engine keeps a registry of
// names to constructors. Names are canonical type names (see TypeName and
// NameOf) unless a constructor is registered with As.
//
//	e := autowire.New()
//	e.MustProvide(NewUserRepository)
//	e.MustProvide(NewMailer, autowire.ParamNames("host", "port"))
//
//	v, err := e.Resolve(nil, autowire.NameOf[*Mailer](), autowire.Parameters{"port": 2525})
//
// # Parameters
//
// Arguments come from, in order:
//
//  1. supplied Parameters, by name and then by position, earlier sets first;
//  2. the Container, for class-typed parameters (named interfaces and structs,
//     pointers to named structs) it knows by type name;
//  3. a registered constructor, or the zero value of a struct type;
//  4. a dig container configured with WithDig;
//  5. the zero value, for optional fields and variadic tails.
//
// Parameter names exist only where Go keeps them: names given with ParamNames,
// and the fields of a param object embedding dig.In. A field name is used with
// its first letter lowered, or as given by a `param:"..."` tag.
//
//	type MailerParams struct {
//		dig.In
//
//		Host   string
//		Port   int    `optional:"true"`
//		Logger Logger `param:"log"`
//	}
package autowire
