// Package logger builds *slog.Logger values with functional options and a
// handler decorator that injects attributes pulled from context.Context.
//
// New picks slog.NewTextHandler or slog.NewJSONHandler according to the
// configured Format and wraps it with LogHandlerDecorator, which runs every
// registered ContextExtractor before delegating to the real handler.
//
// FromEnv configures the logger from the process environment with envir:
//
//	APP_ENV       development | staging | production (aliases dev, stage, prod)
//	SERVICE_NAME  value of the "service" attribute, envir by default
//	LOG_LEVEL     optional slog level overriding the environment preset
//	LOG_FORMAT    optional json or text overriding the environment preset
//
// # Usage
//
//	log, err := logger.FromEnv(
//		logger.WithContextExtractors(environment.LoggerExtractor()),
//	)
//	if err != nil {
//		panic(err)
//	}
//	logger.SetAsDefault(log)
//
//	log.Info("copied variables",
//		logger.Store("redis://localhost:6379/0?hash=app"),
//		logger.Count(12),
//	)
//
// # Configuration
//
//   - WithDevelopment / WithStaging / WithProduction / WithEnvironment: presets per environment.
//   - WithFormat / WithTextFormatter / WithJSONFormatter: override output format.
//   - WithLevel: set a custom slog.Level.
//   - WithAttr: attach static attributes.
//   - WithContextExtractors / WithContextValue: inject attributes from context.
//
// Error and Errors return an empty attribute for nil errors, so
//
//	log.Info("operation finished", logger.Error(err))
//
// needs no nil check.
package logger
