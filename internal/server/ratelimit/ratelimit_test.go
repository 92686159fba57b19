package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(cfg *Config) (*Limiter, *time.Time) {
	cfg.CleanupInterval = 0
	l := NewLimiter(cfg)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiter_AllowsBurstThenDenies(t *testing.T) {
	l, now := newTestLimiter(NewConfig(1, 3))
	defer l.Stop()

	for i, want := range []int{2, 1, 0} {
		allowed, info := l.Allow("10.0.0.1", "/analyze", "POST")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 3, info.Limit)
		assert.Equal(t, want, info.Remaining)
	}

	allowed, info := l.Allow("10.0.0.1", "/analyze", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Equal(t, time.Second, info.RetryAfter)
	assert.Equal(t, now.Add(3*time.Second), info.ResetTime)

	*now = now.Add(time.Second)
	allowed, _ = l.Allow("10.0.0.1", "/analyze", "POST")
	assert.True(t, allowed, "one token refills per second")
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(1, 1))
	defer l.Stop()

	allowed, _ := l.Allow("a", "/analyze", "POST")
	assert.True(t, allowed)
	allowed, _ = l.Allow("a", "/analyze", "POST")
	assert.False(t, allowed)

	allowed, _ = l.Allow("b", "/analyze", "POST")
	assert.True(t, allowed)
}

func TestLimiter_HealthIsUnlimited(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(1, 1))
	defer l.Stop()

	for i := 0; i < 50; i++ {
		allowed, info := l.Allow("a", "/health", "GET")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_EndpointOverride(t *testing.T) {
	cfg := NewConfig(1, 1)
	cfg.EndpointConfigs = append(cfg.EndpointConfigs, EndpointConfig{Path: "/analyze", Method: "POST", Rate: 10, Burst: 20})
	l, _ := newTestLimiter(cfg)
	defer l.Stop()

	allowed, info := l.Allow("a", "/analyze", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 20, info.Limit)
	assert.Equal(t, 19, info.Remaining)

	// The override bucket does not drain the default one.
	allowed, info = l.Allow("a", "/other", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1, info.Limit)
}

func TestLimiter_DisabledAndWhitelist(t *testing.T) {
	disabled, _ := newTestLimiter(NewConfig(0, 10))
	defer disabled.Stop()
	assert.False(t, disabled.config.Enabled)
	for i := 0; i < 20; i++ {
		allowed, _ := disabled.Allow("a", "/analyze", "POST")
		require.True(t, allowed)
	}

	cfg := NewConfig(1, 1)
	cfg.Whitelist["127.0.0.1"] = true
	l, _ := newTestLimiter(cfg)
	defer l.Stop()
	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("127.0.0.1", "/analyze", "POST")
		require.True(t, allowed)
	}
	assert.Zero(t, l.bucketCount())
}

func TestLimiter_NilConfig(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()
	allowed, _ := l.Allow("a", "/analyze", "POST")
	assert.True(t, allowed)
}

func TestLimiter_CleanupDropsIdleBuckets(t *testing.T) {
	l, now := newTestLimiter(NewConfig(1, 1))
	defer l.Stop()

	l.Allow("old", "/analyze", "POST")
	*now = now.Add(2 * time.Hour)
	l.Allow("fresh", "/analyze", "POST")
	require.Equal(t, 2, l.bucketCount())

	l.cleanupBuckets()
	assert.Equal(t, 1, l.bucketCount())
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	l := NewLimiter(NewConfig(1, 1))
	l.Stop()
	assert.NotPanics(t, l.Stop)
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(1, 10))
	defer l.Stop()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("a", "/analyze", "POST"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 10, allowed)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/a/", Method: "GET", Rate: 1},
		{Path: "/a/b/", Method: "GET", Rate: 2},
		{Path: "/a/exact", Method: "GET", Rate: 3},
		{Path: "/any", Rate: 4},
	}

	tests := []struct {
		name   string
		path   string
		method string
		want   float64
	}{
		{name: "prefix", path: "/a/x", method: "GET", want: 1},
		{name: "longest prefix", path: "/a/b/c", method: "GET", want: 2},
		{name: "exact", path: "/a/exact", method: "GET", want: 3},
		{name: "any method", path: "/any", method: "DELETE", want: 4},
		{name: "method mismatch", path: "/a/x", method: "POST"},
		{name: "no match", path: "/zzz", method: "GET"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.want == 0 {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Rate)
		})
	}
}
