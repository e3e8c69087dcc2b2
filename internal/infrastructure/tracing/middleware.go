package tracing

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bcssewl/optivise-installer/internal/shared/id"
)

// HTTPMiddleware traces each request and echoes its request id
func HTTPMiddleware(tracer *Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if incoming := c.GetHeader(HeaderRequestID); incoming != "" && id.IsValid(incoming) {
			ctx = context.WithValue(ctx, requestIDKey, id.RequestID(incoming))
		}
		if parent := c.GetHeader(HeaderSpanID); parent != "" && id.IsValid(parent) {
			ctx = context.WithValue(ctx, spanIDKey, id.SpanID(parent))
		}

		name := c.FullPath()
		if name == "" {
			name = c.Request.URL.Path
		}
		span, ctx := tracer.StartSpan(ctx, c.Request.Method+" "+name)
		if app := c.Param("app"); app != "" {
			span.SetTag("app", app)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Header(HeaderRequestID, span.RequestID.String())
		c.Header(HeaderSpanID, span.SpanID.String())

		c.Next()

		span.StatusCode = c.Writer.Status()
		span.SetTag("http.status", strconv.Itoa(c.Writer.Status()))
		if len(c.Errors) > 0 {
			span.SetError(c.Errors.Last())
		}

		span.Finish()
		tracer.Submit(span)
	}
}
