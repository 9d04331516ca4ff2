package client

import (
	"net/http"
	"time"

	"github.com/kbukum/webclient/engine"
	"github.com/kbukum/webclient/logger"
	"github.com/kbukum/webclient/params"
)

// Builder assembles a Client. Engine settings collected here are pure
// pass-through; supply a prebuilt engine with Engine to bypass them.
type Builder struct {
	baseURL            string
	eng                engine.Engine
	engineCfg          engine.Config
	auth               *AuthConfig
	requestProcessors  []RequestProcessor
	responseProcessors []ResponseProcessor
	modifiers          *params.Modifiers
	log                *logger.Logger
}

// NewBuilder creates a builder with defaults.
func NewBuilder() *Builder {
	return &Builder{
		modifiers: params.NewModifiers(),
		log:       logger.Nop(),
	}
}

// BaseURL sets the base URL resolved against relative request URLs.
func (b *Builder) BaseURL(baseURL string) *Builder {
	b.baseURL = baseURL
	return b
}

// Engine supplies a prebuilt engine, overriding all engine settings
// collected by the builder.
func (b *Builder) Engine(eng engine.Engine) *Builder {
	b.eng = eng
	return b
}

// EngineConfig replaces the collected engine configuration wholesale.
func (b *Builder) EngineConfig(cfg engine.Config) *Builder {
	b.engineCfg = cfg
	return b
}

// Timeout bounds one full round trip.
func (b *Builder) Timeout(d time.Duration) *Builder {
	b.engineCfg.Timeout = d
	return b
}

// ConnectTimeout bounds connection establishment.
func (b *Builder) ConnectTimeout(d time.Duration) *Builder {
	b.engineCfg.ConnectTimeout = d
	return b
}

// ReadTimeout bounds individual reads on the connection.
func (b *Builder) ReadTimeout(d time.Duration) *Builder {
	b.engineCfg.ReadTimeout = d
	return b
}

// WriteTimeout bounds individual writes on the connection.
func (b *Builder) WriteTimeout(d time.Duration) *Builder {
	b.engineCfg.WriteTimeout = d
	return b
}

// Proxy sets the proxy URL (http, https or socks5).
func (b *Builder) Proxy(proxyURL string) *Builder {
	b.engineCfg.Proxy = proxyURL
	return b
}

// TLS sets the TLS materials for the transport.
func (b *Builder) TLS(cfg *engine.TLSConfig) *Builder {
	b.engineCfg.TLS = cfg
	return b
}

// UserAgent sets the default User-Agent header.
func (b *Builder) UserAgent(ua string) *Builder {
	b.engineCfg.UserAgent = ua
	return b
}

// CookieJar attaches a cookie jar to the engine.
func (b *Builder) CookieJar(jar http.CookieJar) *Builder {
	b.engineCfg.CookieJar = jar
	return b
}

// Cache wraps the transport with a caller-supplied caching layer.
func (b *Builder) Cache(wrap func(http.RoundTripper) http.RoundTripper) *Builder {
	b.engineCfg.WrapTransport = wrap
	return b
}

// Auth sets the client-level auth, overridable per descriptor.
func (b *Builder) Auth(auth *AuthConfig) *Builder {
	b.auth = auth
	return b
}

// RequestProcessor appends a pre-send hook.
func (b *Builder) RequestProcessor(fn RequestProcessor) *Builder {
	b.requestProcessors = append(b.requestProcessors, fn)
	return b
}

// ResponseProcessor appends a post-receive hook.
func (b *Builder) ResponseProcessor(fn ResponseProcessor) *Builder {
	b.responseProcessors = append(b.responseProcessors, fn)
	return b
}

// Modifier binds a named-param modifier, overriding the kind default.
func (b *Builder) Modifier(name string, fn params.Modifier) *Builder {
	b.modifiers.Register(name, fn)
	return b
}

// Logger attaches a logger.
func (b *Builder) Logger(log *logger.Logger) *Builder {
	b.log = log
	return b
}

// Build assembles the client. When no engine was supplied, the default
// net/http engine is constructed from the collected configuration.
func (b *Builder) Build() (*Client, error) {
	eng := b.eng
	if eng == nil {
		built, err := engine.NewNetHTTP(b.engineCfg)
		if err != nil {
			return nil, err
		}
		eng = built
	}
	return &Client{
		baseURL:            b.baseURL,
		eng:                eng,
		auth:               b.auth,
		requestProcessors:  b.requestProcessors,
		responseProcessors: b.responseProcessors,
		modifiers:          b.modifiers,
		log:                b.log,
	}, nil
}
