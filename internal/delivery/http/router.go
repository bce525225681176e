package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"rsvpbackend/internal/delivery/http/controllers"
	"rsvpbackend/internal/delivery/http/middleware"
)

// RouterConfig carries the gates applied in front of the API routes.
type RouterConfig struct {
	AllowedOrigins []string
	// GlobalLimiter applies to every request; SubmitLimiter additionally applies to POST /api/rsvp.
	GlobalLimiter *middleware.RateLimiter
	SubmitLimiter *middleware.RateLimiter
	// TrustedProxies may supply X-Forwarded-For; nil keys clients by RemoteAddr.
	TrustedProxies *middleware.TrustedProxies
}

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(rsvpController *controllers.RSVPController, cfg RouterConfig, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	limitSubmit := middleware.RateLimit(cfg.SubmitLimiter, cfg.TrustedProxies, logger)

	// API Routes
	mux.HandleFunc("POST /api/rsvp", limitSubmit(rsvpController.SubmitRSVP))
	mux.HandleFunc("GET /api/rsvp", rsvpController.ListRSVPs)
	mux.HandleFunc("GET /api/rsvp/{eventID}", rsvpController.ListEventRSVPs)
	mux.HandleFunc("GET /api/rsvp/{eventID}/count", rsvpController.CountEventRSVPs)

	mux.HandleFunc("GET /health", rsvpController.Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps the router with the request pipeline:
// recover → logging → CORS gate → global rate limit → routes.
func NewHandler(rsvpController *controllers.RSVPController, cfg RouterConfig, logger *slog.Logger) http.Handler {
	mux := NewRouter(rsvpController, cfg, logger)
	limited := middleware.RateLimit(cfg.GlobalLimiter, cfg.TrustedProxies, logger)(mux.ServeHTTP)
	var h http.Handler = middleware.CORS(cfg.AllowedOrigins, logger, limited)
	h = middleware.LoggingMiddleware(logger, h)
	return middleware.Recover(logger, h)
}
