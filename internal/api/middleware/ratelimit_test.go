package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(perMinute, perHour int) (*RateLimiter, *time.Time) {
	rl := NewRateLimiter(RateLimiterConfig{
		PerMinute:  perMinute,
		PerHour:    perHour,
		MaxClients: 100,
	})
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestEvaluate_MinuteLimit(t *testing.T) {
	rl, _ := newTestLimiter(2, 100)

	assert.True(t, rl.Evaluate("client-a").Allowed)
	assert.True(t, rl.Evaluate("client-a").Allowed)

	decision := rl.Evaluate("client-a")
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonMinuteLimit, decision.Reason)
	assert.Equal(t, time.Minute, decision.RetryAfter)
}

func TestEvaluate_HourLimit(t *testing.T) {
	rl, now := newTestLimiter(10, 12)

	// Spread 12 requests over several minutes so the minute window never
	// fills but the hour window does.
	for i := 0; i < 12; i++ {
		assert.True(t, rl.Evaluate("client-a").Allowed)
		*now = now.Add(2 * time.Minute)
	}

	decision := rl.Evaluate("client-a")
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonHourLimit, decision.Reason)
}

func TestEvaluate_WindowSlides(t *testing.T) {
	rl, now := newTestLimiter(2, 100)

	assert.True(t, rl.Evaluate("client-a").Allowed)
	assert.True(t, rl.Evaluate("client-a").Allowed)
	assert.False(t, rl.Evaluate("client-a").Allowed)

	*now = now.Add(61 * time.Second)

	assert.True(t, rl.Evaluate("client-a").Allowed)
}

func TestEvaluate_RejectionsNotRecorded(t *testing.T) {
	rl, now := newTestLimiter(2, 100)

	rl.Evaluate("client-a")
	rl.Evaluate("client-a")
	// Hammer the limiter while saturated; none of these may count.
	for i := 0; i < 50; i++ {
		assert.False(t, rl.Evaluate("client-a").Allowed)
	}

	*now = now.Add(61 * time.Second)

	// Full minute budget back, proving the rejected attempts left no trace.
	assert.True(t, rl.Evaluate("client-a").Allowed)
	assert.True(t, rl.Evaluate("client-a").Allowed)
	assert.False(t, rl.Evaluate("client-a").Allowed)
}

func TestEvaluate_ClientsIsolated(t *testing.T) {
	rl, _ := newTestLimiter(1, 100)

	assert.True(t, rl.Evaluate("client-a").Allowed)
	assert.False(t, rl.Evaluate("client-a").Allowed)
	assert.True(t, rl.Evaluate("client-b").Allowed)
}

func TestRemainingQuota_PureRead(t *testing.T) {
	rl, _ := newTestLimiter(5, 50)

	rl.Evaluate("client-a")
	rl.Evaluate("client-a")

	for i := 0; i < 20; i++ {
		quota := rl.RemainingQuota("client-a")
		assert.Equal(t, 3, quota.MinuteRemaining)
		assert.Equal(t, 48, quota.HourRemaining)
	}
}

func TestRemainingQuota_UnknownClient(t *testing.T) {
	rl, now := newTestLimiter(5, 50)

	quota := rl.RemainingQuota("never-seen")
	assert.Equal(t, 5, quota.MinuteRemaining)
	assert.Equal(t, 50, quota.HourRemaining)
	assert.Equal(t, *now, quota.MinuteResetAt)
	assert.Equal(t, *now, quota.HourResetAt)
}

func TestRemainingQuota_ResetTimes(t *testing.T) {
	rl, now := newTestLimiter(5, 50)

	first := *now
	rl.Evaluate("client-a")
	*now = now.Add(10 * time.Second)
	rl.Evaluate("client-a")

	quota := rl.RemainingQuota("client-a")
	assert.Equal(t, first.Add(time.Minute), quota.MinuteResetAt)
	assert.Equal(t, first.Add(time.Hour), quota.HourResetAt)

	// Once the first timestamp ages out, the reset tracks the second one.
	*now = first.Add(61 * time.Second)
	quota = rl.RemainingQuota("client-a")
	assert.Equal(t, first.Add(10*time.Second).Add(time.Minute), quota.MinuteResetAt)
}

func TestSweep_EvictsIdleClients(t *testing.T) {
	rl, now := newTestLimiter(5, 50)

	rl.Evaluate("idle-client")
	*now = now.Add(2 * time.Hour)
	rl.Evaluate("fresh-client")

	rl.sweep()

	rl.mu.Lock()
	_, idlePresent := rl.clients["idle-client"]
	_, freshPresent := rl.clients["fresh-client"]
	rl.mu.Unlock()

	assert.False(t, idlePresent)
	assert.True(t, freshPresent)
}

func TestEvaluate_MaxClientsEvictsOldest(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{PerMinute: 5, PerHour: 50, MaxClients: 2})
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Evaluate("oldest")
	now = now.Add(time.Second)
	rl.Evaluate("middle")
	now = now.Add(time.Second)
	rl.Evaluate("newest")

	rl.mu.Lock()
	_, oldestPresent := rl.clients["oldest"]
	rl.mu.Unlock()

	assert.False(t, oldestPresent)
	assert.Len(t, rl.clients, 2)
}

func performRequest(rl *RateLimiter, remoteAddr string, headers map[string]string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(rl.Handler())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_SetsHeadersAndRejects(t *testing.T) {
	rl, _ := newTestLimiter(1, 100)

	w := performRequest(rl, "10.0.0.1:4000", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = performRequest(rl, "10.0.0.1:4000", nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), ReasonMinuteLimit)
}

func TestClientKey_ForwardedForTrustedByDefault(t *testing.T) {
	rl, _ := newTestLimiter(1, 100)

	// Same forwarded client through two different proxies shares one bucket.
	w := performRequest(rl, "10.0.0.1:4000", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"})
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(rl, "10.0.0.2:4000", map[string]string{"X-Forwarded-For": "203.0.113.7"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestClientKey_UntrustedProxyIgnoresHeader(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		PerMinute:      1,
		PerHour:        100,
		MaxClients:     100,
		TrustedProxies: []string{"10.0.0.1"},
	})
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	// Trusted proxy: header honored.
	w := performRequest(rl, "10.0.0.1:4000", map[string]string{"X-Forwarded-For": "203.0.113.7"})
	require.Equal(t, http.StatusOK, w.Code)
	w = performRequest(rl, "10.0.0.1:4000", map[string]string{"X-Forwarded-For": "203.0.113.7"})
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	// Untrusted peer claiming the same client gets its own bucket.
	w = performRequest(rl, "192.0.2.9:4000", map[string]string{"X-Forwarded-For": "203.0.113.7"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestQuotaHandler_DoesNotConsume(t *testing.T) {
	rl, _ := newTestLimiter(3, 100)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/quota", rl.QuotaHandler())

	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/quota", nil)
		req.RemoteAddr = "10.0.0.1:4000"
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"minute_remaining":3`)
	}
}
