// Package cache holds the read-path response cache for event RSVP lists.
package cache

import (
	"time"

	"github.com/jellydator/ttlcache/v3"

	"rsvpbackend/internal/domain"
)

// DefaultTTL is used when NewResponseCache is given a non-positive TTL.
const DefaultTTL = 600 * time.Second

// eventPathPrefix is the detail endpoint prefix; EventKey must match the route in the router.
const eventPathPrefix = "/api/rsvp/"

// EventKey returns the cache key for an event's detail endpoint.
// It equals the decoded request path of GET /api/rsvp/{eventID}.
func EventKey(eventID string) string {
	return eventPathPrefix + eventID
}

// ResponseCache is a fixed-TTL cache of aggregated RSVP lists keyed by request path.
// An entry leaves the cache on Invalidate or when its TTL elapses, whichever comes first.
// Reads do not extend an entry's lifetime.
type ResponseCache struct {
	items *ttlcache.Cache[string, *domain.RSVPList]
	ttl   time.Duration
}

func NewResponseCache(ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ResponseCache{
		items: ttlcache.New[string, *domain.RSVPList](
			ttlcache.WithTTL[string, *domain.RSVPList](ttl),
			ttlcache.WithDisableTouchOnHit[string, *domain.RSVPList](),
		),
		ttl: ttl,
	}
}

// Get returns the cached list for key. ok is false if the key was never set, was invalidated, or has expired.
func (c *ResponseCache) Get(key string) (*domain.RSVPList, bool) {
	item := c.items.Get(key)
	if item == nil || item.IsExpired() {
		return nil, false
	}
	return item.Value(), true
}

// Set stores value under key with a TTL starting now, replacing any prior entry.
func (c *ResponseCache) Set(key string, value *domain.RSVPList) {
	c.items.Set(key, value, ttlcache.DefaultTTL)
}

// Invalidate removes key immediately.
func (c *ResponseCache) Invalidate(key string) {
	c.items.Delete(key)
}

// Len returns the number of stored entries, including expired ones not yet collected.
func (c *ResponseCache) Len() int {
	return c.items.Len()
}

// TTL returns the fixed lifetime applied to every entry.
func (c *ResponseCache) TTL() time.Duration {
	return c.ttl
}

// Start runs the expired-entry janitor. It blocks until Stop is called.
func (c *ResponseCache) Start() {
	c.items.Start()
}

// Stop halts the janitor started by Start.
func (c *ResponseCache) Stop() {
	c.items.Stop()
}
