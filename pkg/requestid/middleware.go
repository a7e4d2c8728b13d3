package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

const (
	Header      = "X-Request-ID"
	maxIDLength = 128
)

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Middleware attaches a request ID to every request. A well-formed client
// supplied X-Request-ID is kept, anything else is replaced by a UUIDv4.
//
// The chosen ID is stored in the context, echoed on the response and written
// back onto the inbound request headers, so a reverse proxy further down the
// chain forwards the same ID to its origin.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if !isValidRequestID(id) {
			id = uuid.NewString()
		}

		r.Header.Set(Header, id)
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
	})
}

func isValidRequestID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	return validID.MatchString(id)
}
