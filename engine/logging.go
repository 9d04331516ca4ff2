package engine

import (
	"context"
	"time"

	"github.com/kbukum/webclient/logger"
)

// WithLogging wraps an engine so every round trip is logged at debug
// level. An opt-in decorator; the core never logs on its own behalf
// inside build paths.
func WithLogging(next Engine, log *logger.Logger) Engine {
	return &loggingEngine{next: next, log: log.WithComponent("engine")}
}

type loggingEngine struct {
	next Engine
	log  *logger.Logger
}

func (e *loggingEngine) Execute(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := e.next.Execute(ctx, req)
	fields := logger.Fields(
		logger.FieldMethod, req.Method,
		logger.FieldURL, req.URL,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	)
	if err != nil {
		e.log.WithError(err).Debug("request failed", fields)
		return resp, err
	}
	fields[logger.FieldStatus] = resp.StatusCode
	e.log.Debug("request completed", fields)
	return resp, nil
}

func (e *loggingEngine) ExecuteStream(ctx context.Context, req Request) (*StreamResponse, error) {
	resp, err := e.next.ExecuteStream(ctx, req)
	fields := logger.Fields(
		logger.FieldMethod, req.Method,
		logger.FieldURL, req.URL,
	)
	if err != nil {
		e.log.WithError(err).Debug("stream request failed", fields)
		return resp, err
	}
	fields[logger.FieldStatus] = resp.StatusCode
	e.log.Debug("stream opened", fields)
	return resp, nil
}
