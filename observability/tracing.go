package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/webclient/engine"
)

const tracerName = "github.com/kbukum/webclient/observability"

// Options configures the tracing decorator.
type Options struct {
	provider trace.TracerProvider
}

// Option configures WrapEngine.
type Option func(*Options)

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *Options) { o.provider = tp }
}

// WrapEngine decorates an engine so every Execute runs inside a client
// span carrying method, URL and status attributes. Transport errors
// are recorded on the span; semantics of the wrapped engine are
// otherwise unchanged.
func WrapEngine(next engine.Engine, opts ...Option) engine.Engine {
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.provider == nil {
		o.provider = otel.GetTracerProvider()
	}
	return &tracingEngine{
		next:   next,
		tracer: o.provider.Tracer(tracerName),
	}
}

type tracingEngine struct {
	next   engine.Engine
	tracer trace.Tracer
}

func (e *tracingEngine) Execute(ctx context.Context, req engine.Request) (*engine.Response, error) {
	ctx, span := e.start(ctx, "http.client.execute", req)
	defer span.End()

	resp, err := e.next.Execute(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return resp, err
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	return resp, nil
}

func (e *tracingEngine) ExecuteStream(ctx context.Context, req engine.Request) (*engine.StreamResponse, error) {
	ctx, span := e.start(ctx, "http.client.execute_stream", req)
	defer span.End()

	resp, err := e.next.ExecuteStream(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return resp, err
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	return resp, nil
}

func (e *tracingEngine) start(ctx context.Context, name string, req engine.Request) (context.Context, trace.Span) {
	return e.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.full", req.URL),
		),
	)
}
