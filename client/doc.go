// Package client is the facade over the wrapper core: it binds method
// definitions and named params into the params-processing pipeline and
// exposes plain get/post/put/delete plus JSON variants for single
// round trips.
//
// A client is constructed once via Builder and passed explicitly to
// whoever needs it. Plain calls return the raw engine response; Send
// engages the full processor and returns ordered, mapped results.
// ProcessAndSend runs the configured request processors (pre-send
// hooks) before building; SendRaw bypasses them entirely.
//
//	c, err := client.NewBuilder().
//	    BaseURL("https://api.example.com").
//	    UserAgent("my-app/1.0").
//	    Auth(client.BearerAuth(token)).
//	    Build()
//
//	users, err := client.Send(ctx, c, listUsers, nil, mapUsers)
package client
