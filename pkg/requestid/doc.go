// Package requestid correlates admin requests with the backend calls they
// trigger.
//
// Middleware assigns every incoming request an id (reusing a valid
// X-Request-ID header), Transport copies it onto outgoing requests and
// LoggerExtractor adds it to slog records.
//
//	r.Use(requestid.Middleware)
//	client := ocl.NewClient(cfg, ocl.WithHTTPClient(&http.Client{
//		Transport: requestid.Transport(nil),
//	}))
package requestid
