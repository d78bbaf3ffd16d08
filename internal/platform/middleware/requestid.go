// Package middleware holds the HTTP middleware stack shared by every route:
// request identity, request time, client metadata, admin authentication,
// and instrumentation.
package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"foyer/pkg/requestcontext"
)

// requestIDHeader is honored from the client when present so upstream
// proxies can stitch traces together; otherwise a fresh ID is generated.
const requestIDHeader = "X-Request-ID"

// RequestID ensures every request carries a request ID in its context and
// echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
