package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/deppfellow/leadboard/internal/errs"
	"github.com/deppfellow/leadboard/internal/server"
	"github.com/labstack/echo/v4"
)

const rateLimitKeyPrefix = "ratelimit"

// RateLimitMiddleware enforces a fixed window request limit per user,
// counted in Redis so every instance shares the same budget.
type RateLimitMiddleware struct {
	server *server.Server
	now    func() time.Time
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
		now:    time.Now,
	}
}

// Limit counts the request against the caller's window. It must run after
// RequireAuth so the key is the user id; anonymous callers are keyed by IP.
//
// The limiter fails open: if Redis errors the request goes through.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	cfg := r.server.Config.RateLimit

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if !cfg.Enabled || r.server.Redis == nil {
			return next
		}

		return func(c echo.Context) error {
			subject := GetUserID(c)
			if subject == "" {
				subject = c.RealIP()
			}

			now := r.now()
			windowStart := now.Truncate(cfg.Window)
			resetAt := windowStart.Add(cfg.Window)
			key := fmt.Sprintf("%s:%s:%d", rateLimitKeyPrefix, subject, windowStart.Unix())

			ctx := c.Request().Context()
			pipe := r.server.Redis.TxPipeline()
			incr := pipe.Incr(ctx, key)
			pipe.Expire(ctx, key, cfg.Window)
			if _, err := pipe.Exec(ctx); err != nil {
				GetLogger(c).Error().
					Err(err).
					Str("function", "RateLimit").
					Msg("rate limit check failed, allowing request")
				return next(c)
			}

			count := int(incr.Val())
			remaining := max(cfg.Requests-count, 0)

			header := c.Response().Header()
			header.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Requests))
			header.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			header.Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

			if count > cfg.Requests {
				retryAfter := int(resetAt.Sub(now).Seconds()) + 1
				header.Set("Retry-After", strconv.Itoa(retryAfter))

				r.RecordRateLimitHit(c.Path())
				GetLogger(c).Warn().
					Int("count", count).
					Int("limit", cfg.Requests).
					Msg("rate limit exceeded")

				return errs.NewTooManyRequestsError("Too many requests, please retry later.")
			}

			return next(c)
		}
	}
}

// RecordRateLimitHit sends a RateLimitHit custom event to New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]any{
			"endpoint": endpoint,
		})
	}
}
