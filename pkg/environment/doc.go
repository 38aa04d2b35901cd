// Package environment names the deployment environment an application runs
// in and carries it through context.Context and structured logs.
//
// Environment implements encoding.TextUnmarshaler, so it can be a field of
// any envir-loaded structure. Short aliases are expanded while loading:
// "dev" and "local" become Development, "prod" becomes Production and
// "stage" becomes Staging.
//
// # Usage
//
//	env, err := environment.FromEnv() // APP_ENV, development when unset
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := environment.WithContext(context.Background(), env)
//	if environment.IsProduction(ctx) {
//		// production-specific behaviour
//	}
//
// LoggerExtractor plugs into logger.WithContextExtractors to add an "env"
// attribute to every record logged with such a context.
package environment
