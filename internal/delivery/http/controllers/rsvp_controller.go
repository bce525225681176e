package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"rsvpbackend/internal/cache"
	"rsvpbackend/internal/delivery/http/helpers"
	"rsvpbackend/internal/domain"
)

// Response messages returned to clients. Internal error details are logged, never returned.
const (
	msgSubmitted      = "RSVP submitted successfully"
	msgSubmitFailed   = "Error submitting RSVP"
	msgFetchFailed    = "Error fetching RSVPs"
	msgCountFailed    = "Error counting RSVPs"
	msgInvalidRequest = "Required fields are missing or invalid"
)

// cacheHeader reports whether GET /api/rsvp/{eventID} was served from the response cache.
const cacheHeader = "X-Cache"

type RSVPController struct {
	Logger  *slog.Logger
	Service domain.RSVPService
	Cache   *cache.ResponseCache
}

func NewRSVPController(logger *slog.Logger, svc domain.RSVPService, responseCache *cache.ResponseCache) *RSVPController {
	return &RSVPController{
		Logger:  logger,
		Service: svc,
		Cache:   responseCache,
	}
}

// SubmitRSVPRequest is the request body for POST /api/rsvp.
type SubmitRSVPRequest struct {
	EventID      string `json:"eventId" example:"wedding-2025"`
	Name         string `json:"name" example:"Ana"`
	Message      string `json:"message" example:"Congratulations!"`
	Confirmation string `json:"confirmation" enums:"attending,not_attending,undecided"`
}

// Validate implements helpers.Validator.
func (r *SubmitRSVPRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.EventID) == "" {
		errs = append(errs, "eventId is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(r.Message) == "" {
		errs = append(errs, "message is required")
	}
	if r.Confirmation == "" {
		errs = append(errs, "confirmation is required")
	} else if _, err := domain.ParseConfirmation(r.Confirmation); err != nil {
		errs = append(errs, "confirmation must be one of attending, not_attending, undecided")
	}
	return errs
}

// SubmitRSVPResponse is the success body for POST /api/rsvp (201).
type SubmitRSVPResponse struct {
	Payload *domain.RSVP `json:"payload"`
	Message string       `json:"message"`
}

// SubmitRSVP godoc
// @Summary Submit an RSVP
// @Description Stores a guest response for an event. The cached detail view for that event is invalidated.
// @Tags rsvp
// @Accept json
// @Produce json
// @Param body body controllers.SubmitRSVPRequest true "RSVP"
// @Success 201 {object} controllers.SubmitRSVPResponse
// @Failure 400 {object} helpers.APIError "code: bad_request or validation_error"
// @Failure 403 {object} helpers.APIError "code: not_allowed"
// @Failure 429 {object} helpers.APIError "code: rate_limited"
// @Router /api/rsvp [post]
func (c *RSVPController) SubmitRSVP(w http.ResponseWriter, r *http.Request) {
	var req SubmitRSVPRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	rsvp, err := c.Service.Submit(r.Context(), req.EventID, req.Name, req.Message, domain.Confirmation(req.Confirmation))
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			helpers.WriteJSONErrorDetails(w, http.StatusBadRequest, helpers.ErrCodeValidation, msgInvalidRequest, vErr.Details())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, msgSubmitFailed)
		return
	}

	c.Cache.Invalidate(cache.EventKey(rsvp.EventID))
	helpers.WriteJSON(w, http.StatusCreated, SubmitRSVPResponse{Payload: rsvp, Message: msgSubmitted})
}

// ListRSVPs godoc
// @Summary List every RSVP
// @Description Returns all RSVPs across events, newest first, with global total and per-status counts.
// @Tags rsvp
// @Produce json
// @Success 200 {object} domain.RSVPList
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /api/rsvp [get]
func (c *RSVPController) ListRSVPs(w http.ResponseWriter, r *http.Request) {
	list, err := c.Service.ListAll(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, msgFetchFailed)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, list)
}

// ListEventRSVPs godoc
// @Summary List RSVPs for an event
// @Description Returns an event's RSVPs, newest first, with total and per-status counts. Responses are cached per event until the TTL elapses or a new RSVP for the event arrives.
// @Tags rsvp
// @Produce json
// @Param eventID path string true "Event identifier"
// @Success 200 {object} domain.RSVPList
// @Header 200 {string} X-Cache "HIT or MISS"
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /api/rsvp/{eventID} [get]
func (c *RSVPController) ListEventRSVPs(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	key := cache.EventKey(eventID)

	if list, ok := c.Cache.Get(key); ok {
		w.Header().Set(cacheHeader, "HIT")
		helpers.WriteJSON(w, http.StatusOK, list)
		return
	}

	list, err := c.Service.ListByEvent(r.Context(), eventID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, msgFetchFailed)
		return
	}
	c.Cache.Set(key, list)
	w.Header().Set(cacheHeader, "MISS")
	helpers.WriteJSON(w, http.StatusOK, list)
}

// CountEventRSVPs godoc
// @Summary Count RSVPs for an event
// @Description Returns total and per-status counts for an event, without the records.
// @Tags rsvp
// @Produce json
// @Param eventID path string true "Event identifier"
// @Success 200 {object} domain.Aggregate
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /api/rsvp/{eventID}/count [get]
func (c *RSVPController) CountEventRSVPs(w http.ResponseWriter, r *http.Request) {
	agg, err := c.Service.CountByEvent(r.Context(), r.PathValue("eventID"))
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, msgCountFailed)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, agg)
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} controllers.HealthResponse
// @Failure 503 {object} helpers.APIError "code: unavailable"
// @Router /health [get]
func (c *RSVPController) Health(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.Health(r.Context()); err != nil {
		c.Logger.WarnContext(r.Context(), "health check failed", "err", err)
		helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeUnavailable, "store unavailable")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}
