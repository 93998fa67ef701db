// Package logger builds the application *slog.Logger and provides the
// attribute helpers used across packages.
//
// NewFromConfig picks a preset from APP_ENV (text/debug for development,
// JSON/info otherwise) and honours LOG_LEVEL. Context extractors add
// request-scoped attributes such as the request id to every record.
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//	log := logger.NewFromConfig(cfg,
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	slog.SetDefault(log)
//
//	log.WarnContext(ctx, "failed to load subscription",
//		logger.Component("subscription_view"),
//		logger.Error(err),
//	)
package logger
