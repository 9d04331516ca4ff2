// Package restyengine adapts a resty client to the engine contract.
// It covers the same pass-through configuration surface as the default
// net/http engine; pick it when resty's middleware ecosystem or its
// retry integration with retryablehttp is already in the picture.
package restyengine

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/kbukum/webclient/engine"
)

// Engine is a resty-backed implementation of engine.Engine.
type Engine struct {
	client *resty.Client
	cfg    engine.Config
}

// compile-time assertion
var _ engine.Engine = (*Engine)(nil)

// New creates a resty engine from pass-through configuration.
func New(cfg engine.Config) (*Engine, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rc := resty.New().SetTimeout(cfg.Timeout)

	for k, v := range cfg.Headers {
		rc.SetHeader(k, v)
	}
	if cfg.UserAgent != "" {
		rc.SetHeader("User-Agent", cfg.UserAgent)
	}
	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			rc.SetTLSClientConfig(tlsCfg)
		}
	}
	if cfg.Proxy != "" {
		rc.SetProxy(cfg.Proxy)
	}
	if cfg.CookieJar != nil {
		rc.SetCookieJar(cfg.CookieJar)
	}
	if cfg.FollowRedirects != nil && !*cfg.FollowRedirects {
		rc.SetRedirectPolicy(resty.RedirectPolicyFunc(func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}))
	}

	if cfg.Retry != nil {
		// retryablehttp supplies the transport, resty the retry loop.
		retryClient := retryablehttp.NewClient()
		retryClient.RetryMax = cfg.Retry.MaxAttempts - 1
		retryClient.RetryWaitMin = cfg.Retry.MinWait
		retryClient.RetryWaitMax = cfg.Retry.MaxWait
		retryClient.Logger = nil
		rc.SetTransport(retryClient.HTTPClient.Transport)
		rc.SetRetryCount(cfg.Retry.MaxAttempts - 1).
			SetRetryWaitTime(cfg.Retry.MinWait).
			SetRetryMaxWaitTime(cfg.Retry.MaxWait)
	}

	if cfg.WrapTransport != nil {
		rc.SetTransport(cfg.WrapTransport(rc.GetClient().Transport))
	}

	return &Engine{client: rc, cfg: cfg}, nil
}

// Unwrap returns the underlying resty client for advanced use cases.
func (e *Engine) Unwrap() *resty.Client {
	return e.client
}

// Execute performs one blocking round trip.
func (e *Engine) Execute(ctx context.Context, req engine.Request) (*engine.Response, error) {
	r := e.client.R().SetContext(ctx)
	applyHeaders(r, req.Header)
	if req.Body != nil {
		r.SetBody(req.Body)
	}

	resp, err := r.Execute(req.Method, req.URL)
	if err != nil {
		return nil, classify(ctx, err)
	}

	return &engine.Response{
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Headers:    flattenHeaders(resp.Header()),
		Body:       resp.Body(),
	}, nil
}

// ExecuteStream performs one round trip without consuming the body.
func (e *Engine) ExecuteStream(ctx context.Context, req engine.Request) (*engine.StreamResponse, error) {
	r := e.client.R().SetContext(ctx).SetDoNotParseResponse(true)
	applyHeaders(r, req.Header)
	if req.Body != nil {
		r.SetBody(req.Body)
	}

	resp, err := r.Execute(req.Method, req.URL)
	if err != nil {
		return nil, classify(ctx, err)
	}

	return &engine.StreamResponse{
		StatusCode: resp.StatusCode(),
		Headers:    flattenHeaders(resp.Header()),
		Body:       resp.RawBody(),
	}, nil
}

func applyHeaders(r *resty.Request, header http.Header) {
	for k, vs := range header {
		for _, v := range vs {
			r.SetHeader(k, v)
		}
	}
}

func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}

func classify(ctx context.Context, err error) *engine.Error {
	if ctx.Err() != nil {
		return engine.NewTimeoutError(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return engine.NewTimeoutError(err)
	}
	return engine.NewConnectionError(err)
}
