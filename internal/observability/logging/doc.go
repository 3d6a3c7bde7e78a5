// Package logging builds the service's slog loggers and carries them through contexts.
//
//	logger := logging.NewLogger() // LOG_LEVEL, LOG_FORMAT, VERSION
//	slog.SetDefault(logger)
//
//	func handle(ctx context.Context) {
//	    logging.WithRequestID(ctx, logging.FromContext(ctx)).Info("processing request")
//	}
package logging
