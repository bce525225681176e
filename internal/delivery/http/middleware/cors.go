package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/rs/cors"

	"rsvpbackend/internal/delivery/http/helpers"
	"rsvpbackend/internal/domain"
)

const corsMaxAge = 86400

// NotAllowedMessage is returned to clients whose origin is rejected.
const NotAllowedMessage = "Not allowed by CORS"

var (
	corsAllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsAllowHeaders = []string{"Content-Type", "Accept", requestIDHeader}
)

// OriginAllowlist decides whether a browser origin may call the API.
// An entry of "*" allows every origin.
type OriginAllowlist struct {
	all     bool
	origins map[string]struct{}
}

// NewOriginAllowlist normalizes origins (trimmed, without trailing slash) into an allowlist.
func NewOriginAllowlist(origins []string) *OriginAllowlist {
	l := &OriginAllowlist{origins: make(map[string]struct{}, len(origins))}
	for _, o := range origins {
		o = strings.TrimSpace(o)
		o = strings.TrimSuffix(o, "/")
		switch o {
		case "":
		case "*":
			l.all = true
		default:
			l.origins[o] = struct{}{}
		}
	}
	return l
}

// Allowed reports whether origin is on the list.
func (l *OriginAllowlist) Allowed(origin string) bool {
	if l.all {
		return true
	}
	_, ok := l.origins[origin]
	return ok
}

// CORS returns a handler that rejects requests whose Origin is not allowlisted
// with 403 before they reach next. Requests without an Origin header pass through.
// Allowed origins get CORS headers, and preflight requests are answered with 200.
func CORS(allowedOrigins []string, logger *slog.Logger, next http.Handler) http.Handler {
	allowlist := NewOriginAllowlist(allowedOrigins)
	c := cors.New(cors.Options{
		AllowOriginFunc:      allowlist.Allowed,
		AllowedMethods:       corsAllowMethods,
		AllowedHeaders:       corsAllowHeaders,
		ExposedHeaders:       []string{requestIDHeader, "X-Cache", "Retry-After"},
		AllowCredentials:     true,
		MaxAge:               corsMaxAge,
		OptionsSuccessStatus: http.StatusOK,
	})
	withHeaders := c.Handler(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && !allowlist.Allowed(origin) {
			logger.WarnContext(r.Context(), "origin rejected", "origin", origin, "path", r.URL.Path, "err", domain.ErrNotAllowed)
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeNotAllowed, NotAllowedMessage)
			return
		}
		withHeaders.ServeHTTP(w, r)
	})
}
