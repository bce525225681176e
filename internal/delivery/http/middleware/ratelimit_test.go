package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rsvpbackend/internal/delivery/http/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimit(t *testing.T) {
	limiter := NewRateLimiter(2, time.Hour)
	calls := 0
	next := func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}
	h := RateLimit(limiter, nil, discardLogger())(next)

	send := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "http://test/api/rsvp", nil)
		req.RemoteAddr = remote
		rr := httptest.NewRecorder()
		h(rr, req)
		return rr
	}

	require.Equal(t, http.StatusOK, send("10.0.0.1:1234").Code)
	require.Equal(t, http.StatusOK, send("10.0.0.1:5678").Code)

	rr := send("10.0.0.1:9999")
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))
	var body helpers.APIError
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, helpers.ErrCodeRateLimited, body.Code)
	assert.Equal(t, RateLimitMessage, body.Error)
	assert.Equal(t, 2, calls, "rejected request never reaches the handler")

	require.Equal(t, http.StatusOK, send("10.0.0.2:1234").Code, "clients are limited independently")
}

func TestRateLimiter_Disabled(t *testing.T) {
	limiter := NewRateLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		require.Zero(t, limiter.Reserve("c"))
	}
}

func TestRateLimiter_Refills(t *testing.T) {
	limiter := NewRateLimiter(1, 50*time.Millisecond)
	require.Zero(t, limiter.Reserve("c"))
	require.Positive(t, limiter.Reserve("c"))
	time.Sleep(80 * time.Millisecond)
	require.Zero(t, limiter.Reserve("c"))
}

func TestRateLimit_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	limiter := NewRateLimiter(2, time.Hour)
	h := RateLimit(limiter, nil, discardLogger())(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	admitted := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodPost, "http://test/api/rsvp", nil)
		req.RemoteAddr = "198.51.100.7:4000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		rr := httptest.NewRecorder()
		h(rr, req)
		if rr.Code == http.StatusOK {
			admitted++
		}
	}
	assert.Equal(t, 2, admitted, "rotating X-Forwarded-For must not reset the quota")
}

func TestRateLimit_TrustedProxyForwardsClient(t *testing.T) {
	proxies, err := NewTrustedProxies([]string{"10.0.0.0/8"})
	require.NoError(t, err)
	limiter := NewRateLimiter(1, time.Hour)
	h := RateLimit(limiter, proxies, discardLogger())(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	send := func(client string) int {
		req := httptest.NewRequest(http.MethodPost, "http://test/api/rsvp", nil)
		req.RemoteAddr = "10.0.0.5:4000"
		req.Header.Set("X-Forwarded-For", client)
		rr := httptest.NewRecorder()
		h(rr, req)
		return rr.Code
	}

	require.Equal(t, http.StatusOK, send("203.0.113.1"))
	require.Equal(t, http.StatusTooManyRequests, send("203.0.113.1"))
	require.Equal(t, http.StatusOK, send("203.0.113.2"), "clients behind the proxy are limited independently")
}

func TestTrustedProxies_ClientIP(t *testing.T) {
	proxies, err := NewTrustedProxies([]string{"10.0.0.0/8", " 192.0.2.50 ", ""})
	require.NoError(t, err)

	tests := []struct {
		name    string
		proxies *TrustedProxies
		remote  string
		fwd     string
		want    string
	}{
		{name: "remote addr", proxies: proxies, remote: "192.0.2.1:4000", want: "192.0.2.1"},
		{name: "remote without port", proxies: proxies, remote: "192.0.2.9", want: "192.0.2.9"},
		{name: "untrusted peer ignores forwarded", proxies: proxies, remote: "198.51.100.7:1", fwd: "203.0.113.7", want: "198.51.100.7"},
		{name: "nil list ignores forwarded", proxies: nil, remote: "10.0.0.1:1", fwd: "203.0.113.7", want: "10.0.0.1"},
		{name: "trusted peer uses forwarded", proxies: proxies, remote: "10.0.0.1:1", fwd: "203.0.113.7", want: "203.0.113.7"},
		{name: "single trusted ip", proxies: proxies, remote: "192.0.2.50:1", fwd: "203.0.113.8", want: "203.0.113.8"},
		{name: "spoofed leftmost hop is skipped", proxies: proxies, remote: "10.0.0.1:1", fwd: "1.2.3.4, 203.0.113.7, 10.0.0.2", want: "203.0.113.7"},
		{name: "all hops trusted", proxies: proxies, remote: "10.0.0.1:1", fwd: "10.0.0.3, 10.0.0.2", want: "10.0.0.3"},
		{name: "trusted peer without header", proxies: proxies, remote: "10.0.0.1:1", want: "10.0.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "http://test/", nil)
			req.RemoteAddr = tt.remote
			if tt.fwd != "" {
				req.Header.Set("X-Forwarded-For", tt.fwd)
			}
			assert.Equal(t, tt.want, tt.proxies.ClientIP(req))
		})
	}
}

func TestNewTrustedProxies_Invalid(t *testing.T) {
	_, err := NewTrustedProxies([]string{"not-an-ip"})
	require.Error(t, err)
	_, err = NewTrustedProxies([]string{"10.0.0.0/99"})
	require.Error(t, err)
}
