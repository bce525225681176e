package services

import (
	"context"
	"fmt"

	"rsvpbackend/internal/domain"
)

type aggregator struct {
	rsvpRepo domain.RSVPRepository
}

// NewAggregator returns an Aggregator that derives counts from the repository's count queries.
func NewAggregator(rsvpRepo domain.RSVPRepository) domain.Aggregator {
	return &aggregator{rsvpRepo: rsvpRepo}
}

// Aggregate issues one total count and one count per status for eventID.
// The queries are not run in a transaction, so a concurrent write may make
// the total and the per-status counts disagree briefly.
func (a *aggregator) Aggregate(ctx context.Context, eventID string) (*domain.Aggregate, error) {
	total, err := a.rsvpRepo.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("count rsvps for event: %w", err)
	}
	agg := &domain.Aggregate{Total: total}
	for _, status := range domain.Confirmations {
		n, err := a.rsvpRepo.CountByEventAndStatus(ctx, eventID, status)
		if err != nil {
			return nil, fmt.Errorf("count %s rsvps for event: %w", status, err)
		}
		agg.Counts.Set(status, n)
	}
	return agg, nil
}

// AggregateAll is Aggregate across every event.
func (a *aggregator) AggregateAll(ctx context.Context) (*domain.Aggregate, error) {
	total, err := a.rsvpRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count rsvps: %w", err)
	}
	agg := &domain.Aggregate{Total: total}
	for _, status := range domain.Confirmations {
		n, err := a.rsvpRepo.CountByStatus(ctx, status)
		if err != nil {
			return nil, fmt.Errorf("count %s rsvps: %w", status, err)
		}
		agg.Counts.Set(status, n)
	}
	return agg, nil
}
