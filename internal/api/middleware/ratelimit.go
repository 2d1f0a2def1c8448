package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"buildhub/internal/api/dto"

	"github.com/gin-gonic/gin"
)

const (
	minuteWindow = time.Minute
	hourWindow   = time.Hour

	ReasonMinuteLimit = "minute limit exceeded"
	ReasonHourLimit   = "hour limit exceeded"
)

// Decision is the outcome of one admission check.
type Decision struct {
	Allowed    bool
	Reason     string
	RetryAfter time.Duration
}

// clientWindows tracks one client's request timestamps, oldest first.
type clientWindows struct {
	minute   []time.Time
	hour     []time.Time
	lastSeen time.Time
}

// RateLimiterConfig carries the two ceilings and the client bound.
type RateLimiterConfig struct {
	PerMinute  int
	PerHour    int
	MaxClients int
	// TrustedProxies, when non-empty, restricts X-Forwarded-For handling to
	// requests whose peer is on the list. Empty means the header is trusted
	// unconditionally.
	TrustedProxies []string
}

// RateLimiter is an in-memory two-window sliding limiter. Each client key
// holds independent minute and hour timestamp FIFOs; stale entries are
// purged lazily on evaluation, never by reshaping history. A background
// sweep evicts clients idle longer than the hour window so the map stays
// bounded in a long-lived process.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindows
	config  RateLimiterConfig

	// now is swapped in tests to drive the clock
	now func() time.Time

	stopSweep chan struct{}
	sweepOnce sync.Once
}

func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	return &RateLimiter{
		clients:   make(map[string]*clientWindows),
		config:    cfg,
		now:       time.Now,
		stopSweep: make(chan struct{}),
	}
}

// Evaluate admits or rejects one request for the client. Rejected attempts
// are not recorded; an allowed request lands in both windows.
func (rl *RateLimiter) Evaluate(clientID string) Decision {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cw, exists := rl.clients[clientID]
	if !exists {
		if len(rl.clients) >= rl.config.MaxClients {
			rl.evictOldestLocked()
		}
		cw = &clientWindows{}
		rl.clients[clientID] = cw
	}
	cw.lastSeen = now

	cw.minute = purge(cw.minute, now.Add(-minuteWindow))
	cw.hour = purge(cw.hour, now.Add(-hourWindow))

	if len(cw.minute) >= rl.config.PerMinute {
		return Decision{
			Allowed:    false,
			Reason:     ReasonMinuteLimit,
			RetryAfter: cw.minute[0].Add(minuteWindow).Sub(now),
		}
	}
	if len(cw.hour) >= rl.config.PerHour {
		return Decision{
			Allowed:    false,
			Reason:     ReasonHourLimit,
			RetryAfter: cw.hour[0].Add(hourWindow).Sub(now),
		}
	}

	cw.minute = append(cw.minute, now)
	cw.hour = append(cw.hour, now)
	return Decision{Allowed: true}
}

// RemainingQuota is a pure read: it counts surviving timestamps without
// touching the stored windows, so calling it never consumes quota.
func (rl *RateLimiter) RemainingQuota(clientID string) dto.QuotaResponse {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	quota := dto.QuotaResponse{
		MinuteRemaining: rl.config.PerMinute,
		HourRemaining:   rl.config.PerHour,
		MinuteResetAt:   now,
		HourResetAt:     now,
	}

	cw, exists := rl.clients[clientID]
	if !exists {
		return quota
	}

	minuteSurviving := countSince(cw.minute, now.Add(-minuteWindow))
	hourSurviving := countSince(cw.hour, now.Add(-hourWindow))

	quota.MinuteRemaining = max(rl.config.PerMinute-minuteSurviving, 0)
	quota.HourRemaining = max(rl.config.PerHour-hourSurviving, 0)

	if minuteSurviving > 0 {
		oldest := cw.minute[len(cw.minute)-minuteSurviving]
		quota.MinuteResetAt = oldest.Add(minuteWindow)
	}
	if hourSurviving > 0 {
		oldest := cw.hour[len(cw.hour)-hourSurviving]
		quota.HourResetAt = oldest.Add(hourWindow)
	}
	return quota
}

// StartSweeper launches the idle-client eviction loop. Clients silent for
// longer than the hour window carry no live state and are dropped.
func (rl *RateLimiter) StartSweeper(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.sweep()
			case <-rl.stopSweep:
				return
			}
		}
	}()
}

// StopSweeper terminates the eviction loop.
func (rl *RateLimiter) StopSweeper() {
	rl.sweepOnce.Do(func() { close(rl.stopSweep) })
}

func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-hourWindow)
	for key, cw := range rl.clients {
		if cw.lastSeen.Before(cutoff) {
			delete(rl.clients, key)
		}
	}
}

// evictOldestLocked drops the least recently seen client to make room.
func (rl *RateLimiter) evictOldestLocked() {
	var oldestKey string
	var oldestSeen time.Time
	for key, cw := range rl.clients {
		if oldestKey == "" || cw.lastSeen.Before(oldestSeen) {
			oldestKey = key
			oldestSeen = cw.lastSeen
		}
	}
	if oldestKey != "" {
		delete(rl.clients, oldestKey)
	}
}

// purge drops timestamps at or before the floor. Entries are appended in
// order, so the suffix after the first survivor is the whole window.
func purge(timestamps []time.Time, floor time.Time) []time.Time {
	idx := 0
	for idx < len(timestamps) && !timestamps[idx].After(floor) {
		idx++
	}
	return timestamps[idx:]
}

func countSince(timestamps []time.Time, floor time.Time) int {
	count := 0
	for i := len(timestamps) - 1; i >= 0; i-- {
		if !timestamps[i].After(floor) {
			break
		}
		count++
	}
	return count
}

// Handler enforces the limiter on every request and reports the minute
// budget through X-RateLimit headers.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.ClientKey(c)
		decision := rl.Evaluate(key)

		quota := rl.RemainingQuota(key)
		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", rl.config.PerMinute))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", quota.MinuteRemaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", quota.MinuteResetAt.Unix()))

		if !decision.Allowed {
			retryAfter := int(decision.RetryAfter.Seconds()) + 1
			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       decision.Reason,
				"retry_after": retryAfter,
			})
			return
		}

		c.Next()
	}
}

// QuotaHandler exposes the caller's remaining budget without consuming it.
func (rl *RateLimiter) QuotaHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, rl.RemainingQuota(rl.ClientKey(c)))
	}
}

// ClientKey resolves the client identity. The first X-Forwarded-For entry
// wins when present; with a trusted-proxy list configured the header is
// only honored for peers on the list. Otherwise the transport peer is the
// key.
func (rl *RateLimiter) ClientKey(c *gin.Context) string {
	peer := peerHost(c.Request.RemoteAddr)

	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		if len(rl.config.TrustedProxies) == 0 || containsHost(rl.config.TrustedProxies, peer) {
			first := strings.TrimSpace(strings.Split(fwd, ",")[0])
			if first != "" {
				return first
			}
		}
	}
	return peer
}

func peerHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

func containsHost(hosts []string, host string) bool {
	for _, h := range hosts {
		if h == host {
			return true
		}
	}
	return false
}
