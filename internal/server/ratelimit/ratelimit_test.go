package ratelimit

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonathan/career-recommender/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestTokenBucket_TakeAndRefill(t *testing.T) {
	clock := newFakeClock()
	bucket := newTokenBucket(10, 1.0, clock.Now())

	for i := 0; i < 10; i++ {
		assert.True(t, bucket.take(clock.Now()), "request %d", i+1)
	}
	assert.False(t, bucket.take(clock.Now()))
	assert.Equal(t, time.Second, bucket.retryAfter())

	clock.Advance(1100 * time.Millisecond)
	assert.True(t, bucket.take(clock.Now()))
	assert.False(t, bucket.take(clock.Now()))
}

func TestTokenBucket_Status(t *testing.T) {
	clock := newFakeClock()
	bucket := newTokenBucket(10, 1.0, clock.Now())
	for i := 0; i < 5; i++ {
		bucket.take(clock.Now())
	}

	remaining, reset := bucket.status(clock.Now())
	assert.Equal(t, 5, remaining)
	assert.Equal(t, clock.Now().Add(5*time.Second), reset)
}

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/careers", http.MethodGet)
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := limiter.Allow("127.0.0.1", "/careers", http.MethodGet)
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))

	// other clients and endpoints have their own buckets
	allowed, _ = limiter.Allow("127.0.0.2", "/careers", http.MethodGet)
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("127.0.0.1", "/skills", http.MethodGet)
	assert.True(t, allowed)
}

func TestLimiter_WhitelistAndDisabled(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"10.0.0.1": true},
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("10.0.0.1", "/careers", http.MethodGet)
		assert.True(t, allowed)
	}

	disabled := NewLimiter(&Config{Enabled: false, DefaultLimit: 1, DefaultWindow: time.Minute})
	defer disabled.Stop()
	for i := 0; i < 5; i++ {
		allowed, _ := disabled.Allow("10.0.0.2", "/careers", http.MethodGet)
		assert.True(t, allowed)
	}
	assert.Equal(t, 0, disabled.Len())
}

func TestLimiter_EndpointTiers(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})
	defer limiter.Stop()

	// strict: one burst token for reloads
	allowed, info := limiter.Allow("c", "/admin/reload", http.MethodPost)
	assert.True(t, allowed)
	assert.Equal(t, 5, info.Limit)
	allowed, _ = limiter.Allow("c", "/admin/reload", http.MethodPost)
	assert.False(t, allowed)

	// moderate
	_, info = limiter.Allow("c", "/recommendations", http.MethodPost)
	assert.Equal(t, 120, info.Limit)
	_, info = limiter.Allow("c", "/feedback", http.MethodPost)
	assert.Equal(t, 60, info.Limit)

	// health is never limited
	for i := 0; i < 2000; i++ {
		allowed, info = limiter.Allow("c", "/health", http.MethodGet)
		require.True(t, allowed)
	}
	assert.Equal(t, 0, info.Limit)

	// method matters
	_, info = limiter.Allow("c", "/recommendations", http.MethodGet)
	assert.Equal(t, 1000, info.Limit)
}

func TestLimiter_Burst(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/burst", Method: http.MethodPost, Limit: 10, Window: time.Minute, Burst: 5},
		},
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/burst", http.MethodPost)
		assert.True(t, allowed, "burst request %d", i+1)
	}
	allowed, _ := limiter.Allow("127.0.0.1", "/burst", http.MethodPost)
	assert.False(t, allowed)
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 100, DefaultWindow: time.Hour})
	defer limiter.Stop()

	var allowedCount atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := limiter.Allow("127.0.0.1", "/careers", http.MethodGet); ok {
				allowedCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(100), allowedCount.Load())
}

func TestLimiter_Sweep(t *testing.T) {
	clock := newFakeClock()
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		IdleTTL:       time.Hour,
	}, WithClock(clock.Now))
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/careers", http.MethodGet)
	}
	require.Equal(t, 10, limiter.Len())

	clock.Advance(30 * time.Minute)
	for i := 0; i < 5; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/careers", http.MethodGet)
	}

	clock.Advance(45 * time.Minute)
	limiter.Sweep()
	assert.Equal(t, 5, limiter.Len())
}

func TestLimiter_StopTwice(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute, CleanupInterval: time.Millisecond})
	limiter.Stop()
	assert.NotPanics(t, limiter.Stop)
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, info := limiter.Allow("127.0.0.1", "/careers", http.MethodGet)
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestFromSettings(t *testing.T) {
	cfg := FromSettings(config.RateLimitConfig{
		Enabled:         true,
		DefaultLimit:    50,
		DefaultWindow:   time.Minute,
		CleanupInterval: time.Minute,
		Whitelist:       []string{" 127.0.0.1 ", "", "::1"},
	})

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 50, cfg.DefaultLimit)
	assert.Equal(t, map[string]bool{"127.0.0.1": true, "::1": true}, cfg.Whitelist)
	assert.Equal(t, DefaultEndpointConfigs(), cfg.EndpointConfigs)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/admin/reload", Method: http.MethodPost, Limit: 1},
		{Path: "/careers/", Method: http.MethodGet, Limit: 2},
	}

	tests := []struct {
		name   string
		path   string
		method string
		limit  int
		found  bool
	}{
		{"exact", "/admin/reload", http.MethodPost, 1, true},
		{"wrong method", "/admin/reload", http.MethodGet, 0, false},
		{"prefix", "/careers/12", http.MethodGet, 2, true},
		{"health", "/health", http.MethodGet, 0, true},
		{"no match", "/skills", http.MethodGet, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ec := MatchEndpoint(tt.path, tt.method, configs)
			if !tt.found {
				assert.Nil(t, ec)
				return
			}
			require.NotNil(t, ec)
			assert.Equal(t, tt.limit, ec.Limit)
		})
	}
}
