package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	dErrors "foyer/pkg/domain-errors"
	"foyer/pkg/platform/httputil"
	"foyer/pkg/requestcontext"
)

// RequireAdminToken guards the admin API with a static bearer token.
// An empty configured token disables the admin surface entirely rather
// than leaving it open.
func RequireAdminToken(token string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if token == "" {
				httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "admin API is disabled"))
				return
			}

			presented, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				logger.WarnContext(ctx, "unauthorized admin request",
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid admin token"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
