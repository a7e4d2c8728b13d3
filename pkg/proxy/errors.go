package proxy

import "errors"

var (
	// ErrInvalidOrigin is returned when the origin is not an absolute http(s) URL.
	ErrInvalidOrigin = errors.New("origin must be an absolute http or https URL")
	// ErrNilStore is returned when a Forwarder is built without a cookie store.
	ErrNilStore = errors.New("cookie store is required")
)
