package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/deppfellow/leadboard/internal/server"
	"github.com/deppfellow/leadboard/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

func newRateLimitedEcho(t *testing.T, requests int) (*echo.Echo, *miniredis.Miniredis, *server.Server) {
	t.Helper()

	mr := miniredis.RunT(t)

	s := testutil.NewServer(t)
	s.Config.RateLimit.Enabled = true
	s.Config.RateLimit.Requests = requests
	s.Config.RateLimit.Window = time.Minute
	s.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = s.Redis.Close() })

	rl := NewRateLimitMiddleware(s)
	fixed := time.Date(2025, 3, 1, 12, 0, 30, 0, time.UTC)
	rl.now = func() time.Time { return fixed }

	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler

	asUser := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if user := c.Request().Header.Get("X-Test-User"); user != "" {
				c.Set(UserIDKey, user)
			}
			return next(c)
		}
	}

	e.GET("/leads", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, asUser, rl.Limit())

	return e, mr, s
}

func doGet(e *echo.Echo, user string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/leads", nil)
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_BlocksAfterLimit(t *testing.T) {
	e, _, _ := newRateLimitedEcho(t, 2)

	for i := range 2 {
		rec := doGet(e, "user_a")
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status %d, want 200", i+1, rec.Code)
		}
	}

	rec := doGet(e, "user_a")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status: got %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "31" {
		t.Errorf("Retry-After: got %q, want %q", got, "31")
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Errorf("X-RateLimit-Remaining: got %q, want %q", got, "0")
	}

	var body struct {
		Success bool   `json:"success"`
		Code    string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Success || body.Code != "TOO_MANY_REQUESTS" {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestRateLimit_PerUserBudget(t *testing.T) {
	e, _, _ := newRateLimitedEcho(t, 1)

	if rec := doGet(e, "user_a"); rec.Code != http.StatusOK {
		t.Fatalf("user_a: status %d", rec.Code)
	}
	if rec := doGet(e, "user_b"); rec.Code != http.StatusOK {
		t.Fatalf("user_b: status %d, want its own budget", rec.Code)
	}
	if rec := doGet(e, "user_a"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("user_a second request: status %d, want 429", rec.Code)
	}
}

func TestRateLimit_KeyExpiresWithWindow(t *testing.T) {
	e, mr, _ := newRateLimitedEcho(t, 5)

	doGet(e, "user_a")

	key := "ratelimit:user_a:" + "1740830400"
	if !mr.Exists(key) {
		t.Fatalf("expected key %q, have %v", key, mr.Keys())
	}
	if ttl := mr.TTL(key); ttl <= 0 {
		t.Errorf("key has no expiry: ttl %v", ttl)
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	e, mr, _ := newRateLimitedEcho(t, 1)
	mr.Close()

	for i := range 3 {
		if rec := doGet(e, "user_a"); rec.Code != http.StatusOK {
			t.Fatalf("request %d with Redis down: status %d, want 200", i+1, rec.Code)
		}
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	s := testutil.NewServer(t)
	s.Config.RateLimit.Enabled = false

	e := echo.New()
	e.GET("/leads", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, NewRateLimitMiddleware(s).Limit())

	rec := doGet(e, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if got := rec.Header().Get("X-RateLimit-Limit"); got != "" {
		t.Errorf("X-RateLimit-Limit set while disabled: %q", got)
	}
}
