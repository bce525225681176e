package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"rsvpbackend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRSVPs(t *testing.T, repo *fakeRSVPRepo, eventID string, statuses ...domain.Confirmation) {
	t.Helper()
	for i, s := range statuses {
		r := domain.NewRSVP(eventID, fmt.Sprintf("guest-%d", i), "m", s, time.Now())
		require.NoError(t, repo.Create(context.Background(), r))
	}
}

func TestAggregator_Aggregate(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRSVPRepo()
	seedRSVPs(t, repo, "e1",
		domain.ConfirmationAttending,
		domain.ConfirmationAttending,
		domain.ConfirmationNotAttending,
		domain.ConfirmationUndecided,
	)
	seedRSVPs(t, repo, "e2", domain.ConfirmationUndecided)

	agg, err := NewAggregator(repo).Aggregate(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, 4, agg.Total)
	assert.Equal(t, domain.StatusCounts{Attending: 2, NotAttending: 1, Undecided: 1}, agg.Counts)
	assert.Equal(t, agg.Total, agg.Counts.Sum())
	assert.Equal(t, 4, repo.countCalls, "one total plus one per status")
}

func TestAggregator_AggregateAll(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRSVPRepo()
	seedRSVPs(t, repo, "e1", domain.ConfirmationAttending, domain.ConfirmationNotAttending)
	seedRSVPs(t, repo, "e2", domain.ConfirmationUndecided)

	agg, err := NewAggregator(repo).AggregateAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, agg.Total)
	assert.Equal(t, domain.StatusCounts{Attending: 1, NotAttending: 1, Undecided: 1}, agg.Counts)
}

func TestAggregator_Error(t *testing.T) {
	repo := newFakeRSVPRepo()
	repo.countErr = errors.New("boom")

	_, err := NewAggregator(repo).Aggregate(context.Background(), "e1")
	require.Error(t, err)
	_, err = NewAggregator(repo).AggregateAll(context.Background())
	require.Error(t, err)
}
