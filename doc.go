// Package resolver is a service registry that intercepts what it builds.
//
// Definitions describe how an id is built. Rules intercept built objects to
// replace them, rebuild them with other parameters, or call methods on them.
// Values are shared per id unless their Definition is a prototype.
//
// # Quick Start
//
//	engine := autowire.New()
//	engine.MustProvide(NewUserRepository)
//	engine.MustProvide(NewMailer, autowire.ParamNames("host", "port"))
//
//	r := resolver.New(resolver.WithAutowirer(engine))
//
//	r.Set(autowire.NameOf[*Mailer]()).
//		With(autowire.Parameters{"host": "smtp.local", "port": 25})
//
//	r.On(autowire.NameOf[*Mailer]()).
//		CallMethod("SetRetries", autowire.Positional(3))
//
//	mailer, err := resolver.Get[*Mailer](r, autowire.NameOf[*Mailer]())
//
// # Definitions
//
// Set takes an optional value:
//
//   - none: the id is resolved as a type name by the autowirer
//   - a ClassName: that name is resolved instead
//   - a function: it is called with autowired arguments
//   - anything else: it is returned as is
//
// Get shares the first value built for an id; Make always builds a new one
// and leaves the shared value alone.
//
// # Rules
//
// On registers a MatchRule. By default it matches the resolved id;
// InstanceOf matches objects implementing or being the target type, and
// Trait matches objects embedding the target type or listing it among their
// Capabilities. Rules run in descending priority, and each one receives the
// object the previous one returned, so the lowest priority has the last word.
//
//	r.On(autowire.NameOf[UserInterface](), &GuestUser{}).InstanceOf()
//
// Rule registers any other Rule implementation, such as a ValidationRule.
//
// # Errors
//
// Failures are NotFoundError for unknown ids and ResolutionError for
// everything else. Both match ErrContainer.
//
//	if resolver.IsNotFound(err) {
//		// id is neither defined nor buildable
//	}
//
// A Resolver is not safe for concurrent use.
package resolver
