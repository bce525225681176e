package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"rsvpbackend/internal/domain"
)

// Postgres error codes mapped to validation failures.
const (
	pqNotNullViolation = "23502"
	pqCheckViolation   = "23514"
)

// Field-level messages for constraint violations. Raw pq messages name tables and
// constraints and are not returned to clients.
var (
	notNullFields = map[string]string{
		"event_id":     "eventId is required",
		"name":         "name is required",
		"message":      "message is required",
		"confirmation": "confirmation is required",
	}
	checkFields = map[string]string{
		"rsvps_event_id_check":     "eventId is required",
		"rsvps_name_check":         "name is required",
		"rsvps_message_check":      "message is required",
		"rsvps_confirmation_check": "confirmation must be one of attending, not_attending, undecided",
	}
)

func fieldMessage(fields map[string]string, key string) string {
	if msg, ok := fields[key]; ok {
		return msg
	}
	return "rsvp is invalid"
}

type rsvpRepository struct {
	DB *sql.DB
}

func NewRSVPRepository(db *sql.DB) domain.RSVPRepository {
	return &rsvpRepository{
		DB: db,
	}
}

func (r *rsvpRepository) Create(ctx context.Context, rsvp *domain.RSVP) error {
	query := `
		INSERT INTO rsvps (event_id, name, message, confirmation, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.DB.QueryRowContext(ctx, query, rsvp.EventID, rsvp.Name, rsvp.Message, string(rsvp.Confirmation), rsvp.CreatedAt).
		Scan(&rsvp.ID, &rsvp.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case pqNotNullViolation:
				return domain.NewValidationError(fieldMessage(notNullFields, string(pqErr.Column)))
			case pqCheckViolation:
				return domain.NewValidationError(fieldMessage(checkFields, pqErr.Constraint))
			}
		}
		return err
	}
	rsvp.CreatedAt = rsvp.CreatedAt.UTC()
	return nil
}

func (r *rsvpRepository) ListAll(ctx context.Context) ([]*domain.RSVP, error) {
	query := `
		SELECT id, event_id, name, message, confirmation, created_at
		FROM rsvps
		ORDER BY created_at DESC
	`
	return r.list(ctx, query)
}

func (r *rsvpRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.RSVP, error) {
	query := `
		SELECT id, event_id, name, message, confirmation, created_at
		FROM rsvps
		WHERE event_id = $1
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, eventID)
}

func (r *rsvpRepository) list(ctx context.Context, query string, args ...any) ([]*domain.RSVP, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rsvps []*domain.RSVP
	for rows.Next() {
		rsvp := &domain.RSVP{}
		var confirmation string
		if err := rows.Scan(&rsvp.ID, &rsvp.EventID, &rsvp.Name, &rsvp.Message, &confirmation, &rsvp.CreatedAt); err != nil {
			return nil, err
		}
		rsvp.Confirmation = domain.Confirmation(confirmation)
		rsvp.CreatedAt = rsvp.CreatedAt.UTC()
		rsvps = append(rsvps, rsvp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if rsvps == nil {
		rsvps = []*domain.RSVP{}
	}
	return rsvps, nil
}

func (r *rsvpRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM rsvps WHERE event_id = $1`, eventID)
}

func (r *rsvpRepository) CountByEventAndStatus(ctx context.Context, eventID string, status domain.Confirmation) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM rsvps WHERE event_id = $1 AND confirmation = $2`, eventID, string(status))
}

func (r *rsvpRepository) CountAll(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM rsvps`)
}

func (r *rsvpRepository) CountByStatus(ctx context.Context, status domain.Confirmation) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM rsvps WHERE confirmation = $1`, string(status))
}

func (r *rsvpRepository) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *rsvpRepository) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}
