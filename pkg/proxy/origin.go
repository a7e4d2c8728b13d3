package proxy

import (
	"errors"
	"net/url"
	"strings"
)

// ParseOrigin parses the base URL of the origin server. Surrounding
// whitespace is ignored; anything that is not an absolute http or https URL
// with a host yields ErrInvalidOrigin.
func ParseOrigin(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, errors.Join(ErrInvalidOrigin, err)
	}
	if err := validateOrigin(u); err != nil {
		return nil, err
	}
	return u, nil
}

func validateOrigin(u *url.URL) error {
	if u == nil || u.Host == "" {
		return ErrInvalidOrigin
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return nil
	default:
		return ErrInvalidOrigin
	}
}
