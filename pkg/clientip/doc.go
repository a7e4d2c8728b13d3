// Package clientip derives a client identity, the originating IP address, from
// an *http.Request when the proxy runs behind zero or more reverse proxies.
//
// A Resolver walks an ordered list of trusted headers and returns the first
// valid address it finds. Comma-separated list headers are read left to right,
// and RFC 7239 Forwarded elements (`for=...`) are understood. When no header
// carries a valid address the TCP peer address (RemoteAddr) is used, unless
// that fallback is disabled.
//
// The default header order is:
//
//  1. X-Client-IP
//  2. X-Forwarded-For
//  3. CF-Connecting-IP
//  4. Fastly-Client-Ip
//  5. True-Client-Ip
//  6. X-Real-IP
//  7. X-Cluster-Client-IP
//  8. X-Forwarded
//  9. Forwarded-For
//  10. Forwarded
//  11. RemoteAddr
//
// # Spoofing
//
// Every header above is client-controlled unless a hop in front of the
// service strips or overwrites it. With the default list a caller can send
// `X-Forwarded-For: <someone else>` and be resolved as that address. When the
// identity keys per-client state, such as the cookie jars of this module, the
// caller then receives state captured for the other address.
//
// Trust a header only when an edge proxy you control sets it. Directly
// exposed deployments should call WithHeaders() with no arguments, or set
// CLIENT_IP_TRUST_HEADERS=false, to use RemoteAddr alone.
//
// # Usage
//
//	res := clientip.New(clientip.WithHeaders("X-Forwarded-For"))
//
//	if ip, ok := res.Resolve(r); ok {
//		log.Printf("client ip: %s", ip)
//	}
//
//	// As middleware; handlers read the address back from the context.
//	http.ListenAndServe(":3000", res.Middleware(mux))
//	ip, ok := clientip.GetIPFromContext(r.Context())
//
// # Absent identities
//
// Resolve never returns an error. A false result means no usable address was
// found, and callers are expected to degrade gracefully.
package clientip
