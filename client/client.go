package client

import (
	"context"
	"sync"

	"github.com/kbukum/webclient/engine"
	"github.com/kbukum/webclient/logger"
	"github.com/kbukum/webclient/params"
	"github.com/kbukum/webclient/processor"
	"github.com/kbukum/webclient/request"
)

// RequestProcessor is a pre-send hook mutating a descriptor before it
// is built. Hooks run in registration order.
type RequestProcessor func(d *request.Descriptor) error

// ResponseProcessor inspects a response after execution. Returning an
// error surfaces it to the caller in place of the response.
type ResponseProcessor func(resp *engine.Response) error

// Client is the facade binding method definitions and named params to
// the processing pipeline. Construct it once via Builder and pass the
// handle around; there is no process-wide default client.
type Client struct {
	mu                 sync.RWMutex
	baseURL            string
	eng                engine.Engine
	auth               *AuthConfig
	requestProcessors  []RequestProcessor
	responseProcessors []ResponseProcessor
	modifiers          *params.Modifiers
	log                *logger.Logger
}

// BaseURL returns the current base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL changes the base URL for subsequent requests. The base
// URL is the only mutable piece of client state.
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = baseURL
}

// Engine returns the shared engine handle.
func (c *Client) Engine() engine.Engine {
	return c.eng
}

// Request describes one plain (non-paginated) call through the facade.
type Request struct {
	// URL is relative to the client base URL unless Custom is set.
	URL string
	// Custom marks URL as absolute, overriding the base URL.
	Custom bool
	// Query are ordered query pairs.
	Query []request.Pair
	// Headers are request headers.
	Headers map[string]string
	// Body is the raw request body. Required for POST and PUT.
	Body []byte
}

// Get performs a single GET round trip and returns the raw response.
func (c *Client) Get(ctx context.Context, req Request) (*engine.Response, error) {
	return c.do(ctx, request.GET, req, false)
}

// Post performs a single POST round trip and returns the raw response.
func (c *Client) Post(ctx context.Context, req Request) (*engine.Response, error) {
	return c.do(ctx, request.POST, req, false)
}

// Put performs a single PUT round trip and returns the raw response.
func (c *Client) Put(ctx context.Context, req Request) (*engine.Response, error) {
	return c.do(ctx, request.PUT, req, false)
}

// Delete performs a single DELETE round trip and returns the raw response.
func (c *Client) Delete(ctx context.Context, req Request) (*engine.Response, error) {
	return c.do(ctx, request.DELETE, req, false)
}

// JSONPost performs a POST with the body treated as pre-serialized
// JSON; the application/json content type is attached.
func (c *Client) JSONPost(ctx context.Context, req Request) (*engine.Response, error) {
	return c.do(ctx, request.POST, req, true)
}

// JSONPut is the PUT counterpart of JSONPost.
func (c *Client) JSONPut(ctx context.Context, req Request) (*engine.Response, error) {
	return c.do(ctx, request.PUT, req, true)
}

// do assembles one descriptor from the facade request and sends it
// through the processor chain.
func (c *Client) do(ctx context.Context, verb request.Verb, req Request, json bool) (*engine.Response, error) {
	var d *request.Descriptor
	if req.Custom {
		d = request.NewAbsolute(verb, req.URL)
	} else {
		d = request.NewRelative(verb, c.BaseURL(), req.URL)
	}
	for _, p := range req.Query {
		d.AddQuery(p.Key, p.Value)
	}
	for k, v := range req.Headers {
		d.SetHeader(k, v)
	}
	if json {
		d.SetHeader("Content-Type", "application/json")
	}
	if req.Body != nil {
		d.SetBody(req.Body)
	}
	return c.ProcessAndSend(ctx, d)
}

// ProcessAndSend runs the configured request processors in order,
// applies auth, builds the descriptor, executes it and runs the
// response processors. The returned response is raw: no mapping, no
// pagination.
func (c *Client) ProcessAndSend(ctx context.Context, d *request.Descriptor) (*engine.Response, error) {
	for _, proc := range c.requestProcessors {
		if err := proc(d); err != nil {
			return nil, err
		}
	}
	if err := c.applyAuth(d); err != nil {
		return nil, err
	}
	req, err := d.Build()
	if err != nil {
		return nil, err
	}
	return c.SendRaw(ctx, req)
}

// SendRaw executes an already-built request, bypassing the request
// processors entirely: the explicit opt-out for raw control. Response
// processors still run.
func (c *Client) SendRaw(ctx context.Context, req engine.Request) (*engine.Response, error) {
	resp, err := c.eng.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	for _, proc := range c.responseProcessors {
		if err := proc(resp); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// NewProcessor builds a processor for the method, wired with the
// client's modifiers, auth, hooks and logger. Hold the processor to
// Interrupt a run; a processor drives one run.
func NewProcessor[T any](c *Client, method request.Method, mapper processor.Mapper[T]) *processor.Processor[T] {
	opts := []processor.Option[T]{
		processor.WithModifiers[T](c.modifiers),
		processor.WithLogger[T](c.log),
		processor.WithRequestHook[T](c.applyAuth),
	}
	for _, proc := range c.requestProcessors {
		opts = append(opts, processor.WithRequestHook[T](proc))
	}
	for _, proc := range c.responseProcessors {
		opts = append(opts, processor.WithResponseHook[T](proc))
	}
	return processor.New(c.eng, c.BaseURL(), method, mapper, opts...)
}

// Send engages the full processing pipeline: when the method or set
// carries a countable param the loop paginates, otherwise it behaves
// as a single build-execute-map. Results come back ordered.
func Send[T any](ctx context.Context, c *Client, method request.Method, set *params.Set, mapper processor.Mapper[T]) (*processor.Consumer[T], error) {
	return NewProcessor(c, method, mapper).Process(ctx, set)
}

// SendAsync is Send on its own goroutine. The returned future does not
// stop the run when abandoned; use NewProcessor and Interrupt for
// cooperative cancellation.
func SendAsync[T any](ctx context.Context, c *Client, method request.Method, set *params.Set, mapper processor.Mapper[T]) *processor.Future[T] {
	return NewProcessor(c, method, mapper).ProcessAsync(ctx, set)
}

// applyAuth applies the client-level auth config to a descriptor.
func (c *Client) applyAuth(d *request.Descriptor) error {
	return c.auth.apply(d)
}
