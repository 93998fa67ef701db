// Package httpserver runs the admin HTTP server with graceful shutdown.
//
// Run blocks until its context is cancelled or SIGINT/SIGTERM arrives, then
// drains in-flight requests and runs the registered cleanups in reverse order
// within ShutdownTimeout.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP,
//		httpserver.WithLogger(log),
//		httpserver.WithCleanup("subscription views", func(context.Context) error {
//			views.Close()
//			return nil
//		}),
//	)
//	r.Get("/health/live", httpserver.LivenessHandler())
//	r.Get("/health/ready", httpserver.ReadinessHandler(log,
//		httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)},
//	))
//	if err := srv.Run(ctx, r); err != nil {
//		return err
//	}
package httpserver
