// Package engine defines the narrow contract between the wrapper core
// and the HTTP implementation that actually moves bytes: build a
// request, execute it, get a response.
//
// The default implementation is NetHTTP, built on net/http with
// pass-through configuration for timeouts, proxying (http, https,
// socks5), TLS materials, cookie jars, redirects, rate limiting and
// optional transport-level retry. A resty-backed alternative lives in
// the restyengine subpackage.
//
// Engines report only transport failures as errors. HTTP status codes,
// including 4xx and 5xx, are carried on the Response: interpreting
// them belongs to the response mappers, limit predicates and session
// guards layered above.
//
//	eng, err := engine.NewNetHTTP(engine.Config{
//	    Timeout:   30 * time.Second,
//	    UserAgent: "my-app/1.0",
//	})
//
//	resp, err := eng.Execute(ctx, engine.Request{
//	    Method: http.MethodGet,
//	    URL:    "https://api.example.com/users?page=1",
//	})
package engine
