package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/dmitrymomot/cookieproxy/pkg/logger"
)

// Recoverer turns a panic anywhere below it into a generic 500 response with
// the body "Server error". The panic value and stack are logged, never sent.
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
func Recoverer(log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				log.ErrorContext(r.Context(), "panic while serving request",
					slog.Any("panic", rec),
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
					logger.Stack(debug.Stack()),
				)

				if r.Header.Get("Connection") != "Upgrade" {
					http.Error(w, "Server error", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
