/*
Package tracing provides request-scoped tracing for the installer API.

Every request gets a ULID request id (X-Request-ID) and a span id
(X-Span-ID). Valid incoming ids are honored so a calling shell can
correlate its own logs. Finished spans are written to the zap logger
by a background collector.

	tracer := tracing.New(logger)
	defer tracer.Close()
	router.Use(tracing.HTTPMiddleware(tracer))
*/
package tracing
