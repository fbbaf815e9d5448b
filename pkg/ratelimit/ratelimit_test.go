package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestLoginLimiterWindow(t *testing.T) {
	c := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	l := newLoginLimiter(3, time.Minute, c.now)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("1.2.3.4"), "attempt %d", i+1)
	}
	assert.False(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("5.6.7.8"), "other keys are independent")

	c.t = c.t.Add(20 * time.Second)
	assert.Equal(t, 40, l.RetryAfter("1.2.3.4"))

	c.t = c.t.Add(40 * time.Second)
	assert.True(t, l.Allow("1.2.3.4"), "new window")
}

func TestLoginLimiterReset(t *testing.T) {
	c := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	l := newLoginLimiter(1, time.Minute, c.now)

	assert.True(t, l.Allow("ip"))
	assert.False(t, l.Allow("ip"))

	l.Reset("ip")
	assert.True(t, l.Allow("ip"))
	assert.Equal(t, 0, l.RetryAfter("unknown"))
}

func TestLoginLimiterEvict(t *testing.T) {
	c := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	l := newLoginLimiter(1, time.Minute, c.now)
	l.Allow("a")

	c.t = c.t.Add(2 * time.Minute)
	l.evictExpired()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Empty(t, l.windows)
}

func TestClientIPIgnoresHeadersFromUntrustedPeer(t *testing.T) {
	var p *ProxyResolver

	r := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	r.RemoteAddr = "203.0.113.7:5555"
	r.Header.Set("X-Forwarded-For", "10.0.0.9")
	r.Header.Set("X-Real-IP", "10.0.0.8")
	assert.Equal(t, "203.0.113.7", p.ClientIP(r))

	p, err := NewProxyResolver([]string{"10.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.7", p.ClientIP(r))
}

func TestClientIPBehindTrustedProxy(t *testing.T) {
	p, err := NewProxyResolver([]string{"10.0.0.1", "172.16.0.0/12"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		xff    string
		xri    string
		expect string
	}{
		{name: "rightmost untrusted hop", xff: "198.51.100.1, 203.0.113.7, 172.16.3.4", expect: "203.0.113.7"},
		{name: "single hop", xff: "203.0.113.7", expect: "203.0.113.7"},
		{name: "real ip fallback", xri: "203.0.113.9", expect: "203.0.113.9"},
		{name: "only trusted hops", xff: "172.16.0.2", expect: "10.0.0.1"},
		{name: "malformed hop", xff: "203.0.113.7, garbage", expect: "10.0.0.1"},
		{name: "no headers", expect: "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
			r.RemoteAddr = "10.0.0.1:443"
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				r.Header.Set("X-Real-IP", tt.xri)
			}
			assert.Equal(t, tt.expect, p.ClientIP(r))
		})
	}
}

func TestNewProxyResolverRejectsGarbage(t *testing.T) {
	_, err := NewProxyResolver([]string{"not-an-ip"})
	assert.Error(t, err)

	_, err = NewProxyResolver([]string{"10.0.0.0/99"})
	assert.Error(t, err)

	p, err := NewProxyResolver([]string{" ", ""})
	require.NoError(t, err)
	assert.Empty(t, p.trusted)
}

func TestFormatRetry(t *testing.T) {
	assert.Equal(t, "45 second(s)", FormatRetry(45))
	assert.Equal(t, "2 minute(s)", FormatRetry(120))
	assert.Equal(t, "2 minute(s)", FormatRetry(61))
}
