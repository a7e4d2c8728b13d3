package clientip

import "net/http"

// Middleware resolves the client IP once per request and stores it in the
// request context. Requests without a usable address pass through untouched.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ip, ok := res.Resolve(r); ok {
			r = r.WithContext(SetIPToContext(r.Context(), ip))
		}
		next.ServeHTTP(w, r)
	})
}
