// Package memory provides an in-process RSVPRepository for tests and local runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"rsvpbackend/internal/domain"
)

// RSVPRepository keeps RSVPs in a slice guarded by a RWMutex. The zero value is not usable; call NewRSVPRepository.
type RSVPRepository struct {
	mu    sync.RWMutex
	rsvps []domain.RSVP
}

func NewRSVPRepository() *RSVPRepository {
	return &RSVPRepository{}
}

var _ domain.RSVPRepository = (*RSVPRepository)(nil)

func (r *RSVPRepository) Create(ctx context.Context, rsvp *domain.RSVP) error {
	if err := rsvp.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rsvp.ID = uuid.NewString()
	r.rsvps = append(r.rsvps, *rsvp)
	return nil
}

func (r *RSVPRepository) ListAll(ctx context.Context) ([]*domain.RSVP, error) {
	return r.filter(func(*domain.RSVP) bool { return true }), nil
}

func (r *RSVPRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.RSVP, error) {
	return r.filter(func(v *domain.RSVP) bool { return v.EventID == eventID }), nil
}

func (r *RSVPRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	return r.count(func(v *domain.RSVP) bool { return v.EventID == eventID }), nil
}

func (r *RSVPRepository) CountByEventAndStatus(ctx context.Context, eventID string, status domain.Confirmation) (int, error) {
	return r.count(func(v *domain.RSVP) bool { return v.EventID == eventID && v.Confirmation == status }), nil
}

func (r *RSVPRepository) CountAll(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rsvps), nil
}

func (r *RSVPRepository) CountByStatus(ctx context.Context, status domain.Confirmation) (int, error) {
	return r.count(func(v *domain.RSVP) bool { return v.Confirmation == status }), nil
}

func (r *RSVPRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

// filter returns copies of matching records, newest first. Ties keep reverse insertion order.
func (r *RSVPRepository) filter(match func(*domain.RSVP) bool) []*domain.RSVP {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*domain.RSVP{}
	for i := len(r.rsvps) - 1; i >= 0; i-- {
		if match(&r.rsvps[i]) {
			c := r.rsvps[i]
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *RSVPRepository) count(match func(*domain.RSVP) bool) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for i := range r.rsvps {
		if match(&r.rsvps[i]) {
			n++
		}
	}
	return n
}
