package tracing

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bcssewl/optivise-installer/internal/infrastructure/logging"
	"github.com/bcssewl/optivise-installer/internal/shared/id"
)

// Header names used for trace propagation
const (
	HeaderRequestID = "X-Request-ID"
	HeaderSpanID    = "X-Span-ID"
)

// Span represents a single traced operation
type Span struct {
	RequestID  id.RequestID
	SpanID     id.SpanID
	ParentID   id.SpanID
	Name       string
	StartTime  time.Time
	Duration   time.Duration
	Tags       map[string]string
	Error      error
	StatusCode int
}

// Tracer collects finished spans and writes them to the log
type Tracer struct {
	logger *logging.Logger
	spans  chan *Span
	done   chan struct{}
	once   sync.Once
}

// New creates a tracer and starts its collector
func New(logger *logging.Logger) *Tracer {
	if logger == nil {
		logger = logging.NewNop()
	}
	t := &Tracer{
		logger: logger.Named("trace"),
		spans:  make(chan *Span, 256),
		done:   make(chan struct{}),
	}
	go t.collect()
	return t
}

// StartSpan opens a span, inheriting the request id and parent span from ctx
func (t *Tracer) StartSpan(ctx context.Context, name string) (*Span, context.Context) {
	requestID := RequestIDFrom(ctx)
	if requestID == "" {
		requestID = id.NewRequestID()
	}

	span := &Span{
		RequestID: requestID,
		SpanID:    id.NewSpanID(),
		ParentID:  SpanIDFrom(ctx),
		Name:      name,
		StartTime: time.Now(),
		Tags:      make(map[string]string),
	}

	ctx = context.WithValue(ctx, requestIDKey, requestID)
	ctx = context.WithValue(ctx, spanIDKey, span.SpanID)
	return span, ctx
}

// Finish records the span duration
func (s *Span) Finish() {
	s.Duration = time.Since(s.StartTime)
}

// SetTag adds a tag to the span
func (s *Span) SetTag(key, value string) {
	s.Tags[key] = value
}

// SetError records an error on the span
func (s *Span) SetError(err error) {
	s.Error = err
}

// Submit hands a finished span to the collector, dropping it when the buffer is full
func (t *Tracer) Submit(span *Span) {
	select {
	case <-t.done:
		return
	default:
	}

	select {
	case t.spans <- span:
	default:
		t.logger.Warn("span buffer full, dropping span",
			zap.String("request_id", span.RequestID.String()),
			zap.String("span_id", span.SpanID.String()),
		)
	}
}

// Close stops the collector
func (t *Tracer) Close() {
	t.once.Do(func() { close(t.done) })
}

func (t *Tracer) collect() {
	for {
		select {
		case span := <-t.spans:
			t.write(span)
		case <-t.done:
			return
		}
	}
}

func (t *Tracer) write(span *Span) {
	fields := []zap.Field{
		zap.String("request_id", span.RequestID.String()),
		zap.String("span_id", span.SpanID.String()),
		zap.String("operation", span.Name),
		zap.Duration("duration", span.Duration),
		zap.Int("status", span.StatusCode),
	}
	if span.ParentID != "" {
		fields = append(fields, zap.String("parent_id", span.ParentID.String()))
	}
	for k, v := range span.Tags {
		fields = append(fields, zap.String(k, v))
	}

	if span.Error != nil {
		fields = append(fields, zap.Error(span.Error))
		t.logger.Warn("span completed with error", fields...)
		return
	}
	t.logger.Debug("span completed", fields...)
}

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	spanIDKey    contextKey = "span_id"
)

// RequestIDFrom returns the request id carried by ctx
func RequestIDFrom(ctx context.Context) id.RequestID {
	if v, ok := ctx.Value(requestIDKey).(id.RequestID); ok {
		return v
	}
	return ""
}

// SpanIDFrom returns the current span id carried by ctx
func SpanIDFrom(ctx context.Context) id.SpanID {
	if v, ok := ctx.Value(spanIDKey).(id.SpanID); ok {
		return v
	}
	return ""
}
