// Package observability provides OpenTelemetry tracing for the client
// wrapper.
//
// WrapEngine decorates any engine with a client span per round trip,
// using the OpenTelemetry API only: the host application owns the
// tracer provider and exporter wiring.
//
//	eng, _ := engine.NewNetHTTP(cfg)
//	traced := observability.WrapEngine(eng)
package observability
