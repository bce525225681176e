package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"rsvpbackend/internal/domain"
)

type rsvpService struct {
	rsvpRepo   domain.RSVPRepository
	aggregator domain.Aggregator
	notifier   domain.Notifier
	logger     *slog.Logger
	now        func() time.Time
}

// NewRSVPService creates an RSVPService. notifier may be nil, in which case no host notification is sent.
func NewRSVPService(
	rsvpRepo domain.RSVPRepository,
	aggregator domain.Aggregator,
	notifier domain.Notifier,
	logger *slog.Logger,
) domain.RSVPService {
	return &rsvpService{
		rsvpRepo:   rsvpRepo,
		aggregator: aggregator,
		notifier:   notifier,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *rsvpService) Submit(ctx context.Context, eventID, name, message string, confirmation domain.Confirmation) (*domain.RSVP, error) {
	// TIMESTAMPTZ holds microseconds.
	createdAt := s.now().UTC().Truncate(time.Microsecond)
	rsvp := domain.NewRSVP(eventID, name, message, confirmation, createdAt)
	if err := rsvp.Validate(); err != nil {
		return nil, err
	}
	if err := s.rsvpRepo.Create(ctx, rsvp); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: create rsvp: %w", domain.ErrPersistence, err)
	}

	if s.notifier != nil {
		if err := s.notifier.RSVPReceived(ctx, rsvp); err != nil {
			s.logger.WarnContext(ctx, "rsvp notification failed", "rsvp_id", rsvp.ID, "event_id", rsvp.EventID, "err", err)
		}
	}
	return rsvp, nil
}

func (s *rsvpService) ListAll(ctx context.Context) (*domain.RSVPList, error) {
	agg, err := s.aggregator.AggregateAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	rsvps, err := s.rsvpRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list rsvps: %w", domain.ErrPersistence, err)
	}
	return domain.NewRSVPList(agg, rsvps), nil
}

func (s *rsvpService) ListByEvent(ctx context.Context, eventID string) (*domain.RSVPList, error) {
	agg, err := s.aggregator.Aggregate(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	rsvps, err := s.rsvpRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%w: list rsvps for event: %w", domain.ErrPersistence, err)
	}
	return domain.NewRSVPList(agg, rsvps), nil
}

func (s *rsvpService) CountByEvent(ctx context.Context, eventID string) (*domain.Aggregate, error) {
	agg, err := s.aggregator.Aggregate(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return agg, nil
}

func (s *rsvpService) Health(ctx context.Context) error {
	if err := s.rsvpRepo.Ping(ctx); err != nil {
		return fmt.Errorf("%w: ping store: %w", domain.ErrPersistence, err)
	}
	return nil
}
