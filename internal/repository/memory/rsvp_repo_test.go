package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"rsvpbackend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSVPRepository_CreateThenListByEvent(t *testing.T) {
	ctx := context.Background()
	repo := NewRSVPRepository()
	createdAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	rsvp := domain.NewRSVP("e1", "Ana", "hi", domain.ConfirmationAttending, createdAt)
	require.NoError(t, repo.Create(ctx, rsvp))
	require.NotEmpty(t, rsvp.ID)

	got, err := repo.ListByEvent(ctx, "e1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, *rsvp, *got[0])

	// Returned records are copies; mutating them must not change the store.
	got[0].Name = "changed"
	again, err := repo.ListByEvent(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", again[0].Name)
}

func TestRSVPRepository_CreateRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	repo := NewRSVPRepository()

	err := repo.Create(ctx, domain.NewRSVP("e1", "Ana", "hi", domain.Confirmation("maybe"), time.Now()))
	require.ErrorIs(t, err, domain.ErrValidation)

	n, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRSVPRepository_OrderingNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewRSVPRepository()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, domain.NewRSVP("e1", "A", "m", domain.ConfirmationAttending, base.Add(time.Hour))))
	require.NoError(t, repo.Create(ctx, domain.NewRSVP("e2", "B", "m", domain.ConfirmationUndecided, base)))
	require.NoError(t, repo.Create(ctx, domain.NewRSVP("e1", "C", "m", domain.ConfirmationNotAttending, base.Add(2*time.Hour))))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"C", "A", "B"}, []string{all[0].Name, all[1].Name, all[2].Name})

	e1, err := repo.ListByEvent(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A"}, []string{e1[0].Name, e1[1].Name})

	none, err := repo.ListByEvent(ctx, "unknown")
	require.NoError(t, err)
	require.NotNil(t, none)
	assert.Empty(t, none)
}

func TestRSVPRepository_CountsAddUp(t *testing.T) {
	ctx := context.Background()
	repo := NewRSVPRepository()
	statuses := []domain.Confirmation{
		domain.ConfirmationAttending,
		domain.ConfirmationAttending,
		domain.ConfirmationNotAttending,
		domain.ConfirmationUndecided,
	}
	for i, s := range statuses {
		require.NoError(t, repo.Create(ctx, domain.NewRSVP("e1", fmt.Sprintf("g%d", i), "m", s, time.Now())))
	}
	require.NoError(t, repo.Create(ctx, domain.NewRSVP("e2", "other", "m", domain.ConfirmationAttending, time.Now())))

	total, err := repo.CountByEvent(ctx, "e1")
	require.NoError(t, err)
	sum := 0
	for _, s := range domain.Confirmations {
		n, err := repo.CountByEventAndStatus(ctx, "e1", s)
		require.NoError(t, err)
		sum += n
	}
	assert.Equal(t, 4, total)
	assert.Equal(t, total, sum)

	all, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, all)

	attending, err := repo.CountByStatus(ctx, domain.ConfirmationAttending)
	require.NoError(t, err)
	assert.Equal(t, 3, attending)
}

func TestRSVPRepository_ConcurrentCreateAssignsUniqueIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewRSVPRepository()

	const n = 50
	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rsvp := domain.NewRSVP("e1", fmt.Sprintf("guest-%d", i), "m", domain.ConfirmationUndecided, time.Now())
			if err := repo.Create(ctx, rsvp); err == nil {
				ids[i] = rsvp.ID
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[string]struct{}, n)
	for _, id := range ids {
		require.NotEmpty(t, id)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
	count, err := repo.CountByEvent(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, n, count)
}
