package middleware

import (
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/time/rate"

	"rsvpbackend/internal/delivery/http/helpers"
	"rsvpbackend/internal/domain"
)

// RateLimitMessage is returned to clients that exceed their quota.
const RateLimitMessage = "Too many requests, please try again later."

// RateLimiter admits up to max requests per client per window using one token bucket per client.
// Buckets of clients idle for a full window are dropped; they would have refilled by then.
type RateLimiter struct {
	limit    rate.Limit
	burst    int
	limiters *ttlcache.Cache[string, *rate.Limiter]
}

// NewRateLimiter returns a limiter allowing max requests per window per client.
// A non-positive max disables limiting.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	l := &RateLimiter{
		limit: rate.Inf,
		burst: max,
		limiters: ttlcache.New[string, *rate.Limiter](
			ttlcache.WithTTL[string, *rate.Limiter](window),
		),
	}
	if max > 0 && window > 0 {
		l.limit = rate.Limit(float64(max) / window.Seconds())
	}
	return l
}

// Reserve consumes one token for key. It returns 0 if the request is admitted,
// or how long the client should wait before retrying.
func (l *RateLimiter) Reserve(key string) time.Duration {
	if l.limit == rate.Inf {
		return 0
	}
	var lim *rate.Limiter
	if item := l.limiters.Get(key); item != nil {
		lim = item.Value()
	} else {
		item, _ := l.limiters.GetOrSet(key, rate.NewLimiter(l.limit, l.burst))
		lim = item.Value()
	}
	res := lim.Reserve()
	if d := res.Delay(); d > 0 {
		res.Cancel()
		return d
	}
	return 0
}

// Start runs the idle-client janitor. It blocks until Stop is called.
func (l *RateLimiter) Start() { l.limiters.Start() }

// Stop halts the janitor.
func (l *RateLimiter) Stop() { l.limiters.Stop() }

// RateLimit returns a wrapper that rejects requests over the limiter's quota with 429
// and a Retry-After header, without calling next. Clients are keyed by proxies.ClientIP.
func RateLimit(limiter *RateLimiter, proxies *TrustedProxies, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			client := proxies.ClientIP(r)
			if wait := limiter.Reserve(client); wait > 0 {
				logger.WarnContext(r.Context(), "rate limited", "client", client, "path", r.URL.Path, "retry_after", wait, "err", domain.ErrRateLimited)
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				helpers.WriteJSONError(w, http.StatusTooManyRequests, helpers.ErrCodeRateLimited, RateLimitMessage)
				return
			}
			next(w, r)
		}
	}
}

// TrustedProxies lists the reverse proxies whose X-Forwarded-For header is believed.
// A nil or empty list trusts nobody, so clients are keyed by RemoteAddr alone.
type TrustedProxies struct {
	prefixes []netip.Prefix
}

// NewTrustedProxies parses entries given as single IPs or CIDR ranges.
func NewTrustedProxies(entries []string) (*TrustedProxies, error) {
	p := &TrustedProxies{}
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if strings.Contains(e, "/") {
			prefix, err := netip.ParsePrefix(e)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", e, err)
			}
			p.prefixes = append(p.prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(e)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", e, err)
		}
		addr = addr.Unmap()
		p.prefixes = append(p.prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return p, nil
}

func (p *TrustedProxies) trusts(ip string) bool {
	if p == nil {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range p.prefixes {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// ClientIP returns the address a request is attributed to. X-Forwarded-For is only
// consulted when RemoteAddr is a trusted proxy; it is walked right to left and the
// first hop that is not itself a trusted proxy wins.
func (p *TrustedProxies) ClientIP(r *http.Request) string {
	remote := remoteHost(r)
	if !p.trusts(remote) {
		return remote
	}
	fwd := r.Header.Values("X-Forwarded-For")
	if len(fwd) == 0 {
		return remote
	}
	hops := strings.Split(strings.Join(fwd, ","), ",")
	client := remote
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		client = hop
		if !p.trusts(hop) {
			break
		}
	}
	return client
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
