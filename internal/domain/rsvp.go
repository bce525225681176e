package domain

import (
	"context"
	"strings"
	"time"
)

// Confirmation is a guest's attendance answer. Only the three constants below are valid.
type Confirmation string

const (
	ConfirmationAttending    Confirmation = "attending"
	ConfirmationNotAttending Confirmation = "not_attending"
	ConfirmationUndecided    Confirmation = "undecided"
)

// Confirmations lists every valid Confirmation in a stable order.
var Confirmations = []Confirmation{
	ConfirmationAttending,
	ConfirmationNotAttending,
	ConfirmationUndecided,
}

// ParseConfirmation returns the Confirmation named by s, or ErrValidation if s is not one of the three values.
func ParseConfirmation(s string) (Confirmation, error) {
	c := Confirmation(s)
	if c.Valid() {
		return c, nil
	}
	return "", NewValidationError("confirmation must be one of attending, not_attending, undecided")
}

// Valid reports whether c is one of the enumerated values.
func (c Confirmation) Valid() bool {
	switch c {
	case ConfirmationAttending, ConfirmationNotAttending, ConfirmationUndecided:
		return true
	}
	return false
}

func (c Confirmation) String() string { return string(c) }

// RSVP is one guest response for an event. Records are immutable once stored.
// swagger:model RSVP
type RSVP struct {
	ID           string       `json:"id"`
	EventID      string       `json:"eventId"`
	Name         string       `json:"name"`
	Message      string       `json:"message"`
	Confirmation Confirmation `json:"confirmation" swaggertype:"string" enums:"attending,not_attending,undecided"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// NewRSVP returns a new RSVP. ID is set by the repository on create.
func NewRSVP(eventID, name, message string, confirmation Confirmation, createdAt time.Time) *RSVP {
	return &RSVP{
		EventID:      eventID,
		Name:         name,
		Message:      message,
		Confirmation: confirmation,
		CreatedAt:    createdAt,
	}
}

// Validate checks required fields and the confirmation value.
// It returns a *ValidationError listing every failing field, or nil.
func (r *RSVP) Validate() error {
	var fields []string
	if strings.TrimSpace(r.EventID) == "" {
		fields = append(fields, "eventId is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		fields = append(fields, "name is required")
	}
	if strings.TrimSpace(r.Message) == "" {
		fields = append(fields, "message is required")
	}
	switch {
	case r.Confirmation == "":
		fields = append(fields, "confirmation is required")
	case !r.Confirmation.Valid():
		fields = append(fields, "confirmation must be one of attending, not_attending, undecided")
	}
	if len(fields) > 0 {
		return NewValidationError(fields...)
	}
	return nil
}

// StatusCounts holds the number of RSVPs per confirmation status.
// swagger:model StatusCounts
type StatusCounts struct {
	Attending    int `json:"attending"`
	NotAttending int `json:"not_attending"`
	Undecided    int `json:"undecided"`
}

// Set stores n as the count for c. Unknown statuses are ignored.
func (s *StatusCounts) Set(c Confirmation, n int) {
	switch c {
	case ConfirmationAttending:
		s.Attending = n
	case ConfirmationNotAttending:
		s.NotAttending = n
	case ConfirmationUndecided:
		s.Undecided = n
	}
}

// Sum returns the total across all statuses.
func (s StatusCounts) Sum() int {
	return s.Attending + s.NotAttending + s.Undecided
}

// Aggregate is the total and per-status count of RSVPs for one event or for all events.
// swagger:model Aggregate
type Aggregate struct {
	Total  int          `json:"totalRSVP"`
	Counts StatusCounts `json:"counts"`
}

// RSVPList is an aggregate plus the matching records, newest first.
// swagger:model RSVPList
type RSVPList struct {
	Total  int          `json:"totalRSVP"`
	Counts StatusCounts `json:"counts"`
	Data   []*RSVP      `json:"data"`
}

// NewRSVPList combines an aggregate with its records. A nil slice becomes empty.
func NewRSVPList(agg *Aggregate, data []*RSVP) *RSVPList {
	if data == nil {
		data = []*RSVP{}
	}
	return &RSVPList{Total: agg.Total, Counts: agg.Counts, Data: data}
}

// RSVPRepository defines append-only storage for RSVPs. There is no update or delete.
type RSVPRepository interface {
	// Create persists rsvp and sets its ID.
	Create(ctx context.Context, rsvp *RSVP) error
	// ListAll returns every RSVP across all events, ordered by created_at DESC.
	ListAll(ctx context.Context) ([]*RSVP, error)
	// ListByEvent returns the RSVPs of one event, ordered by created_at DESC.
	ListByEvent(ctx context.Context, eventID string) ([]*RSVP, error)
	CountByEvent(ctx context.Context, eventID string) (int, error)
	CountByEventAndStatus(ctx context.Context, eventID string, status Confirmation) (int, error)
	CountAll(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status Confirmation) (int, error)
	// Ping reports whether the underlying storage is reachable.
	Ping(ctx context.Context) error
}

// RSVPService defines the RSVP write path and read views.
type RSVPService interface {
	// Submit validates and stores a new RSVP. Returns ErrValidation or ErrPersistence on failure.
	Submit(ctx context.Context, eventID, name, message string, confirmation Confirmation) (*RSVP, error)
	ListAll(ctx context.Context) (*RSVPList, error)
	ListByEvent(ctx context.Context, eventID string) (*RSVPList, error)
	CountByEvent(ctx context.Context, eventID string) (*Aggregate, error)
	Health(ctx context.Context) error
}

// Aggregator computes RSVP counts.
type Aggregator interface {
	Aggregate(ctx context.Context, eventID string) (*Aggregate, error)
	AggregateAll(ctx context.Context) (*Aggregate, error)
}
