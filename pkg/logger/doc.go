// Package logger builds *slog.Logger instances for the proxy with functional
// options, environment presets and transparent injection of request-scoped
// values such as the request id and client IP.
//
// New picks slog.NewTextHandler or slog.NewJSONHandler based on the configured
// Format and wraps it with LogHandlerDecorator, which runs every registered
// ContextExtractor before delegating to the underlying handler.
//
// # Usage
//
//	log := logger.NewFromConfig(cfg,
//		logger.WithContextExtractors(
//			requestid.LoggerExtractor(),
//			clientip.LoggerExtractor(),
//		),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(r.Context(), "proxied",
//		logger.Status(resp.StatusCode),
//		logger.Cookies(n),
//	)
//
// # Configuration
//
//   - WithDevelopment / WithStaging / WithProduction / WithEnvironment: presets.
//   - WithFormat / WithTextFormatter / WithJSONFormatter: output format.
//   - WithLevel / WithLevelName: minimum level.
//   - WithAttr: static attributes.
//   - WithContextExtractors / WithContextValue: attributes from context.
//
// Error and Errors return an empty attribute for nil errors, so
//
//	log.Warn("capture failed", logger.Error(err))
//
// needs no nil check.
package logger
