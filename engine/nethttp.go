package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"
	"golang.org/x/net/proxy"
	"golang.org/x/time/rate"
)

// NetHTTP is the default Engine built on net/http.
type NetHTTP struct {
	client       *http.Client
	streamClient *http.Client
	cfg          Config
	limiter      *rate.Limiter
}

// compile-time assertion
var _ Engine = (*NetHTTP)(nil)

// NewNetHTTP creates the default engine from configuration.
func NewNetHTTP(cfg Config) (*NetHTTP, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport, err := buildTransport(cfg)
	if err != nil {
		return nil, err
	}

	var rt http.RoundTripper = transport
	if cfg.WrapTransport != nil {
		rt = cfg.WrapTransport(rt)
	}

	client := &http.Client{
		Transport: rt,
		Timeout:   cfg.Timeout,
		Jar:       cfg.CookieJar,
	}
	// Streaming uses the same transport without the global timeout;
	// context handles cancellation.
	streamClient := &http.Client{
		Transport: rt,
		Jar:       cfg.CookieJar,
	}
	if !cfg.followRedirects() {
		noRedirect := func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
		client.CheckRedirect = noRedirect
		streamClient.CheckRedirect = noRedirect
	}

	e := &NetHTTP{
		client:       client,
		streamClient: streamClient,
		cfg:          cfg,
	}
	if cfg.RateLimit > 0 {
		e.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	return e, nil
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (e *NetHTTP) Unwrap() *http.Client {
	return e.client
}

// Execute performs one blocking round trip. Non-2xx statuses are
// returned as responses, not errors.
func (e *NetHTTP) Execute(ctx context.Context, req Request) (*Response, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, NewTimeoutError(err)
		}
	}
	if e.cfg.Retry != nil {
		return retry.DoWithData(
			func() (*Response, error) { return e.executeOnce(ctx, req) },
			retry.Context(ctx),
			retry.Attempts(uint(e.cfg.Retry.MaxAttempts)),
			retry.Delay(e.cfg.Retry.MinWait),
			retry.MaxDelay(e.cfg.Retry.MaxWait),
			retry.DelayType(retry.BackOffDelay),
			retry.RetryIf(IsRetryable),
			retry.LastErrorOnly(true),
		)
	}
	return e.executeOnce(ctx, req)
}

// ExecuteStream performs one round trip and hands the body back as a
// stream. The caller must close the returned StreamResponse.
func (e *NetHTTP) ExecuteStream(ctx context.Context, req Request) (*StreamResponse, error) {
	httpReq, err := e.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := e.streamClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}

	return &StreamResponse{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       resp.Body,
	}, nil
}

// executeOnce builds and sends a single HTTP request.
func (e *NetHTTP) executeOnce(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := e.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewConnectionError(fmt.Errorf("read response body: %w", err))
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Headers:    flattenHeaders(resp.Header),
		Body:       body,
	}, nil
}

// buildRequest constructs an *http.Request from the engine config and request.
func (e *NetHTTP) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("create request: %v", err))
	}

	// Apply default headers
	for k, v := range e.cfg.Headers {
		httpReq.Header.Set(k, v)
	}

	// Apply request headers (override defaults)
	for k, vs := range req.Header {
		httpReq.Header.Del(k)
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}

	if e.cfg.UserAgent != "" && httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", e.cfg.UserAgent)
	}

	return httpReq, nil
}

// classifyTransportError maps a net/http error into the engine taxonomy.
func classifyTransportError(ctx context.Context, err error) *Error {
	if ctx.Err() != nil {
		return NewTimeoutError(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewTimeoutError(err)
	}
	return NewConnectionError(err)
}

// buildTransport assembles the http.Transport from configuration.
func buildTransport(cfg Config) (*http.Transport, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	dialer := &net.Dialer{Timeout: cfg.ConnectTimeout}
	transport.DialContext = timeoutDialContext(dialer.DialContext, cfg.ReadTimeout, cfg.WriteTimeout)

	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			transport.TLSClientConfig = tlsCfg
		}
	}

	if cfg.Proxy != "" {
		if err := applyProxy(transport, cfg.Proxy, dialer, cfg); err != nil {
			return nil, err
		}
	}

	return transport, nil
}

// applyProxy configures http/https proxying via transport.Proxy and
// socks5 proxying via a replacement dialer.
func applyProxy(transport *http.Transport, proxyURL string, dialer *net.Dialer, cfg Config) error {
	u, err := url.Parse(proxyURL)
	if err != nil {
		return NewValidationError(fmt.Sprintf("parse proxy url: %v", err))
	}

	switch u.Scheme {
	case "socks5", "socks5h":
		var auth *proxy.Auth
		if u.User != nil {
			password, _ := u.User.Password()
			auth = &proxy.Auth{User: u.User.Username(), Password: password}
		}
		d, err := proxy.SOCKS5("tcp", u.Host, auth, dialer)
		if err != nil {
			return NewValidationError(fmt.Sprintf("socks5 proxy: %v", err))
		}
		dial := func(ctx context.Context, network, addr string) (net.Conn, error) {
			if cd, ok := d.(proxy.ContextDialer); ok {
				return cd.DialContext(ctx, network, addr)
			}
			return d.Dial(network, addr)
		}
		transport.DialContext = timeoutDialContext(dial, cfg.ReadTimeout, cfg.WriteTimeout)
		transport.Proxy = nil
	case "http", "https":
		transport.Proxy = http.ProxyURL(u)
	default:
		return NewValidationError(fmt.Sprintf("unsupported proxy scheme %q", u.Scheme))
	}
	return nil
}

type dialContextFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// timeoutDialContext wraps dialed connections so per-operation read and
// write deadlines are enforced. No-op when both timeouts are zero.
func timeoutDialContext(dial dialContextFunc, read, write time.Duration) dialContextFunc {
	if read <= 0 && write <= 0 {
		return dial
	}
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := dial(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		return &timeoutConn{Conn: conn, read: read, write: write}, nil
	}
}

// timeoutConn refreshes deadlines before each read and write.
type timeoutConn struct {
	net.Conn
	read  time.Duration
	write time.Duration
}

func (c *timeoutConn) Read(b []byte) (int, error) {
	if c.read > 0 {
		if err := c.Conn.SetReadDeadline(time.Now().Add(c.read)); err != nil {
			return 0, err
		}
	}
	return c.Conn.Read(b)
}

func (c *timeoutConn) Write(b []byte) (int, error) {
	if c.write > 0 {
		if err := c.Conn.SetWriteDeadline(time.Now().Add(c.write)); err != nil {
			return 0, err
		}
	}
	return c.Conn.Write(b)
}
