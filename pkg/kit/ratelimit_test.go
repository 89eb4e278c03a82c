package kit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestLimiter(limit int, window time.Duration) (*IPRateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	l := NewIPRateLimiter(limit, window)
	l.now = clock.now
	return l, clock
}

func TestIPRateLimiter_AllowWithinWindow(t *testing.T) {
	l, clock := newTestLimiter(2, time.Minute)

	assert.True(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("1.1.1.1"))
	assert.False(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("2.2.2.2"), "limits are per client")

	clock.t = clock.t.Add(time.Minute + time.Second)
	assert.True(t, l.Allow("1.1.1.1"))
}

func TestIPRateLimiter_Sweep(t *testing.T) {
	l, clock := newTestLimiter(1, time.Minute)

	l.Allow("1.1.1.1")
	l.Allow("2.2.2.2")
	assert.Equal(t, 2, l.tracked())

	clock.t = clock.t.Add(2 * time.Minute)
	l.Allow("3.3.3.3")
	l.Sweep()
	assert.Equal(t, 1, l.tracked())
}

func TestIPRateLimiter_Middleware(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/movie", nil)
	req.RemoteAddr = "10.0.0.1:5555"

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestIPRateLimiter_ForwardedFor(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)

	req := httptest.NewRequest(http.MethodPost, "/movie", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	assert.Equal(t, "10.0.0.1", l.clientIP(req), "header ignored unless trusted")

	l.TrustForwardedFor = true
	assert.Equal(t, "203.0.113.7", l.clientIP(req))
}
