package clientip

import (
	"net/http"
	"net/netip"
	"strings"
)

// DefaultHeaders lists the proxy headers consulted, in priority order, before
// falling back to the TCP peer address.
var DefaultHeaders = []string{
	"X-Client-IP",
	"X-Forwarded-For",
	"CF-Connecting-IP",
	"Fastly-Client-Ip",
	"True-Client-Ip",
	"X-Real-IP",
	"X-Cluster-Client-IP",
	"X-Forwarded",
	"Forwarded-For",
	"Forwarded",
}

// Resolver derives a client identity from an inbound request.
// The zero value is not usable; construct one with New.
type Resolver struct {
	headers       []string
	useRemoteAddr bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHeaders replaces the trusted header list. Headers are consulted in the
// given order. Passing no names restricts resolution to RemoteAddr.
func WithHeaders(names ...string) Option {
	return func(r *Resolver) {
		r.headers = r.headers[:0]
		for _, name := range names {
			if name = strings.TrimSpace(name); name != "" {
				r.headers = append(r.headers, http.CanonicalHeaderKey(name))
			}
		}
	}
}

// WithRemoteAddr toggles the RemoteAddr fallback. It is enabled by default.
func WithRemoteAddr(enabled bool) Option {
	return func(r *Resolver) { r.useRemoteAddr = enabled }
}

// New returns a Resolver using DefaultHeaders and the RemoteAddr fallback
// unless overridden by opts.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		headers:       make([]string, 0, len(DefaultHeaders)),
		useRemoteAddr: true,
	}
	for _, h := range DefaultHeaders {
		r.headers = append(r.headers, http.CanonicalHeaderKey(h))
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultResolver = New()

// GetIP returns the client's IP address using the default header order,
// or an empty string when none can be determined.
func GetIP(r *http.Request) string {
	ip, _ := defaultResolver.Resolve(r)
	return ip
}

// Resolve returns the normalized client IP and true, or "" and false when
// no usable address is present.
func (res *Resolver) Resolve(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}

	for _, name := range res.headers {
		for _, value := range r.Header.Values(name) {
			// List headers: the left-most valid entry is the original client.
			for element := range strings.SplitSeq(value, ",") {
				if ip, ok := parseElement(element); ok {
					return ip, true
				}
			}
		}
	}

	if !res.useRemoteAddr {
		return "", false
	}
	return parseIP(r.RemoteAddr)
}

// parseElement understands both bare addresses and RFC 7239 forwarded
// elements such as `for="[2001:db8::17]:4711";proto=https`.
func parseElement(element string) (string, bool) {
	element = strings.TrimSpace(element)
	if !strings.Contains(element, "=") {
		return parseIP(element)
	}
	for pair := range strings.SplitSeq(element, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if ok && strings.EqualFold(strings.TrimSpace(key), "for") {
			return parseIP(value)
		}
	}
	return "", false
}

// parseIP validates and normalizes an address that may carry a port,
// brackets or quotes. IPv4-mapped IPv6 addresses are unmapped so that a
// dual-stack listener yields the same identity as an IPv4 one.
func parseIP(s string) (string, bool) {
	s = strings.Trim(strings.TrimSpace(s), `"`)
	if s == "" {
		return "", false
	}

	addr, err := netip.ParseAddr(s)
	if err != nil {
		ap, perr := netip.ParseAddrPort(s)
		if perr != nil {
			inner, ok := strings.CutPrefix(s, "[")
			if !ok {
				return "", false
			}
			inner, ok = strings.CutSuffix(inner, "]")
			if !ok {
				return "", false
			}
			if addr, err = netip.ParseAddr(inner); err != nil {
				return "", false
			}
		} else {
			addr = ap.Addr()
		}
	}

	// Zones are meaningless outside the local link and never valid in headers.
	if addr.Zone() != "" || !addr.IsValid() {
		return "", false
	}
	return addr.Unmap().String(), true
}
