package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"rsvpbackend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleList(total int) *domain.RSVPList {
	return &domain.RSVPList{
		Total:  total,
		Counts: domain.StatusCounts{Attending: total},
		Data:   []*domain.RSVP{},
	}
}

func TestEventKey(t *testing.T) {
	assert.Equal(t, "/api/rsvp/e1", EventKey("e1"))
}

func TestResponseCache_GetSetInvalidate(t *testing.T) {
	c := NewResponseCache(time.Minute)

	_, ok := c.Get(EventKey("e1"))
	require.False(t, ok, "never set")

	c.Set(EventKey("e1"), sampleList(1))
	got, ok := c.Get(EventKey("e1"))
	require.True(t, ok)
	assert.Equal(t, 1, got.Total)

	c.Set(EventKey("e1"), sampleList(2))
	got, ok = c.Get(EventKey("e1"))
	require.True(t, ok)
	assert.Equal(t, 2, got.Total, "set overwrites")

	_, ok = c.Get(EventKey("e2"))
	assert.False(t, ok, "keys are independent")

	c.Invalidate(EventKey("e1"))
	_, ok = c.Get(EventKey("e1"))
	assert.False(t, ok, "invalidated")

	c.Invalidate(EventKey("missing"))
}

func TestResponseCache_ExpiresAfterTTL(t *testing.T) {
	c := NewResponseCache(30 * time.Millisecond)
	c.Set("k", sampleList(1))

	_, ok := c.Get("k")
	require.True(t, ok)

	time.Sleep(60 * time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestResponseCache_HitDoesNotExtendTTL(t *testing.T) {
	c := NewResponseCache(50 * time.Millisecond)
	c.Set("k", sampleList(1))

	time.Sleep(30 * time.Millisecond)
	_, ok := c.Get("k")
	require.True(t, ok)

	time.Sleep(40 * time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok, "entry must expire at insertion time + TTL regardless of reads")
}

func TestResponseCache_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTTL, NewResponseCache(0).TTL())
	assert.Equal(t, time.Second, NewResponseCache(time.Second).TTL())
}

func TestResponseCache_JanitorStartStop(t *testing.T) {
	c := NewResponseCache(10 * time.Millisecond)
	done := make(chan struct{})
	go func() {
		c.Start()
		close(done)
	}()
	c.Set("k", sampleList(1))
	require.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
	c.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestResponseCache_Concurrent(t *testing.T) {
	c := NewResponseCache(time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := EventKey(fmt.Sprintf("e%d", i%4))
			for j := 0; j < 100; j++ {
				c.Set(key, sampleList(j))
				c.Get(key)
				if j%10 == 0 {
					c.Invalidate(key)
				}
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 4)
}
