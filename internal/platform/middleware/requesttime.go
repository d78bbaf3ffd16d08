package middleware

import (
	"net/http"
	"time"

	"foyer/pkg/requestcontext"
)

// RequestTime pins the request's wall-clock time in the context so every
// layer that stamps a timestamp during this request agrees on "now".
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
