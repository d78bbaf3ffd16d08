package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"foyer/pkg/requestcontext"
)

// kioskIDHeader identifies the lobby kiosk a check-in request came from.
const kioskIDHeader = "X-Kiosk-ID"

// ClientMetadata extracts the caller's IP, a normalized user-agent
// description, and the kiosk ID into the request context. Screening-log
// events record these so an admin can see where a check-in came from.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithClientMetadata(r.Context(), clientIP(r), describeUserAgent(r.UserAgent()))
		if kioskID := strings.TrimSpace(r.Header.Get(kioskIDHeader)); kioskID != "" {
			ctx = requestcontext.WithKioskID(ctx, kioskID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// clientIP prefers X-Forwarded-For (first hop) since the service usually
// sits behind a reverse proxy, then falls back to the socket address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.IndexByte(fwd, ','); idx >= 0 {
			fwd = fwd[:idx]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// describeUserAgent reduces a raw User-Agent string to "browser/version on
// OS" for log readability. Unparseable agents pass through as-is, capped so
// hostile clients cannot bloat log events.
func describeUserAgent(raw string) string {
	if raw == "" {
		return ""
	}
	ua := useragent.New(raw)
	name, version := ua.Browser()
	if name == "" {
		if len(raw) > 120 {
			return raw[:120]
		}
		return raw
	}
	desc := name
	if version != "" {
		desc += "/" + version
	}
	if os := ua.OS(); os != "" {
		desc += " on " + os
	}
	return desc
}
