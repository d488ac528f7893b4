package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobboard/internal/auth"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

type fakeCounter struct {
	counts  map[string]int64
	expires map[string]time.Duration
	fail    bool
	// expireErr makes Expire fail without setting a TTL.
	expireErr error
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{counts: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (f *fakeCounter) Incr(_ context.Context, key string) *redis.IntCmd {
	if f.fail {
		return redis.NewIntResult(0, errors.New("connection refused"))
	}
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeCounter) Expire(_ context.Context, key string, d time.Duration) *redis.BoolCmd {
	if f.expireErr != nil {
		return redis.NewBoolResult(false, f.expireErr)
	}
	f.expires[key] = d
	return redis.NewBoolResult(true, nil)
}

// TTL follows redis: -1 for a key with no expiry, -2 for a missing key.
func (f *fakeCounter) TTL(_ context.Context, key string) *redis.DurationCmd {
	if _, ok := f.counts[key]; !ok {
		return redis.NewDurationResult(-2, nil)
	}
	d, ok := f.expires[key]
	if !ok {
		return redis.NewDurationResult(-1, nil)
	}
	return redis.NewDurationResult(d, nil)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitPerCaller(t *testing.T) {
	c := newFakeCounter()
	h := RateLimit(RateLimitConfig{Counter: c, Limit: 2, Window: time.Minute})(okHandler())

	do := func(user string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/jobs", nil)
		req = req.WithContext(auth.WithCaller(req.Context(), auth.Caller{ID: user}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do("u1").Code)
	rec := do("u1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = do("u1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	// other callers have their own window
	assert.Equal(t, http.StatusOK, do("u2").Code)
	assert.Equal(t, time.Minute, c.expires["jobboard:rl:user:u1"])
}

func TestRateLimitFailsOpen(t *testing.T) {
	c := newFakeCounter()
	c.fail = true
	h := RateLimit(RateLimitConfig{Counter: c, Limit: 1, Window: time.Minute})(okHandler())

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/jobs", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "ip:10.0.0.1:1234", clientKey(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "ip:203.0.113.9", clientKey(req))

	req = req.WithContext(auth.WithCaller(req.Context(), auth.Caller{ID: "u9"}))
	assert.Equal(t, "user:u9", clientKey(req))
}

func TestRateLimitRearmsWindowAfterExpireFailure(t *testing.T) {
	c := newFakeCounter()
	c.expireErr = errors.New("i/o timeout")
	h := RateLimit(RateLimitConfig{Counter: c, Limit: 2, Window: time.Minute})(okHandler())

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/jobs", nil)
		req = req.WithContext(auth.WithCaller(req.Context(), auth.Caller{ID: "u1"}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	// without a window the count is not trusted, so requests go through
	for i := 0; i < 50; i++ {
		assert.Equal(t, http.StatusOK, do().Code)
	}
	_, armed := c.expires["jobboard:rl:user:u1"]
	assert.False(t, armed)

	c.expireErr = nil
	rec := do()
	assert.Equal(t, time.Minute, c.expires["jobboard:rl:user:u1"])
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	// once the window lapses the caller is allowed again
	delete(c.counts, "jobboard:rl:user:u1")
	delete(c.expires, "jobboard:rl:user:u1")
	assert.Equal(t, http.StatusOK, do().Code)
}
