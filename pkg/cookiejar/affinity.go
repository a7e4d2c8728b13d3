package cookiejar

import (
	"context"
	"errors"
	"net/http"
)

// Capture records the Set-Cookie values of an origin response in the jar of
// identity. An empty identity disables storage. The returned header is h
// itself: capture only observes, the client still receives every Set-Cookie.
func Capture(ctx context.Context, store Store, identity string, h http.Header) (http.Header, error) {
	values := h.Values("Set-Cookie")
	if len(values) == 0 || identity == "" {
		return h, nil
	}

	pairs := ParseSetCookies(values)
	if len(pairs) == 0 {
		return h, nil
	}

	if err := store.Append(ctx, identity, pairs...); err != nil {
		return h, errors.Join(ErrStoreUnavailable, err)
	}
	return h, nil
}

// Inject sets the Cookie header of an outbound request to the jar stored for
// identity, replacing whatever the client sent. Requests with an empty
// identity or without a stored jar are left unchanged.
func Inject(ctx context.Context, store Store, identity string, h http.Header) (http.Header, error) {
	if identity == "" {
		return h, nil
	}

	jar, ok, err := store.Get(ctx, identity)
	if err != nil {
		return h, errors.Join(ErrStoreUnavailable, err)
	}
	if !ok || len(jar) == 0 {
		return h, nil
	}

	if h == nil {
		h = make(http.Header)
	}
	h.Set("Cookie", jar.String())
	return h, nil
}
