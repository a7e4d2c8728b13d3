package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// ClientIP records the client identity under the key "client_ip".
// An empty ip yields an empty Attr.
func ClientIP(ip string) slog.Attr {
	if ip == "" {
		return slog.Attr{}
	}
	return slog.String("client_ip", ip)
}

// Origin records the upstream base URL under the key "origin".
func Origin(url string) slog.Attr {
	return slog.String("origin", url)
}

// Method records the HTTP method under the key "method".
func Method(m string) slog.Attr {
	return slog.String("method", m)
}

// Path records the request path under the key "path".
func Path(p string) slog.Attr {
	return slog.String("path", p)
}

// Status records the HTTP status code under the key "status".
func Status(code int) slog.Attr {
	return slog.Int("status", code)
}

// Cookies records how many cookies were captured or injected.
func Cookies(n int) slog.Attr {
	return slog.Int("cookies", n)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Stack records a stack trace under the key "stack".
func Stack(stack []byte) slog.Attr {
	return slog.String("stack", string(stack))
}
