// Package proxy forwards HTTP traffic to a single origin server while keeping
// a cookie jar per client on the client's behalf.
//
// For every request the Forwarder resolves the client identity (the address
// stored by clientip middleware), replaces the outbound Cookie header with the
// jar stored for that identity, relays the request, and records any
// Set-Cookie values of the origin response into the jar. The response itself
// reaches the client unchanged, whatever its status code.
//
//	origin, err := proxy.ParseOrigin(os.Getenv("ORIGINAL_SERVER_URL"))
//	if err != nil {
//		return err
//	}
//	fwd, err := proxy.New(origin, cookiejar.NewMemoryStore(), proxy.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	handler := proxy.Router(proxy.RouterOptions{Forwarder: fwd, Logger: log})
//
// Origin failures are relayed as 502 Bad Gateway with an empty body. Requests
// are never retried. A failing cookie store is logged and the request is
// forwarded without affinity.
package proxy
