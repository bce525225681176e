package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"rsvpbackend/internal/delivery/http/helpers"
)

// Recover turns a panic in next into a 500 with a generic body.
func Recover(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(r.Context(), "panic recovered", "path", r.URL.Path, "method", r.Method, "panic", rec, "stack", string(debug.Stack()))
				helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
