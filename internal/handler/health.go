package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/leadboard/internal/middleware"
	"github.com/deppfellow/leadboard/internal/server"
	"github.com/labstack/echo/v4"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// healthCheck probes one dependency.
type healthCheck struct {
	name  string
	probe func(ctx context.Context) error
}

// CheckResult is the outcome of one probe.
type CheckResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// HealthReport is the body of GET /status.
type HealthReport struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]CheckResult `json:"checks"`
}

type HealthHandler struct {
	Handler
	checks  []healthCheck
	timeout time.Duration
}

// NewHealthHandler builds the probes named in the health check config.
// A probe whose dependency was never set up is left out.
func NewHealthHandler(s *server.Server) *HealthHandler {
	cfg := s.Config.Observability.HealthChecks

	h := &HealthHandler{
		Handler: NewHandler(s),
		timeout: cfg.Timeout,
	}

	if !cfg.Enabled {
		return h
	}

	for _, name := range cfg.Checks {
		switch {
		case name == "database" && s.DB != nil:
			h.checks = append(h.checks, healthCheck{name: name, probe: s.DB.Ping})
		case name == "redis" && s.Redis != nil:
			h.checks = append(h.checks, healthCheck{name: name, probe: func(ctx context.Context) error {
				return s.Redis.Ping(ctx).Err()
			}})
		default:
			s.Logger.Warn().Str("check", name).Msg("health check dependency not configured, skipping")
		}
	}

	return h
}

// CheckHealth runs every probe with the configured timeout and answers 200
// when all pass, 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	report := HealthReport{
		Status:      statusHealthy,
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]CheckResult, len(h.checks)),
	}

	for _, check := range h.checks {
		result := h.run(c.Request().Context(), check)
		report.Checks[check.name] = result

		if result.Status == statusHealthy {
			logger.Debug().Str("check", check.name).Str("response_time", result.ResponseTime).Msg("health check passed")
			continue
		}

		report.Status = statusUnhealthy

		logger.Error().
			Str("check", check.name).
			Str("error", result.Error).
			Str("response_time", result.ResponseTime).
			Msg("health check failed")

		h.recordFailure(map[string]any{
			"check_type":    check.name,
			"operation":     "health_check",
			"error_type":    check.name + "_unhealthy",
			"error_message": result.Error,
		})
	}

	status := http.StatusOK
	if report.Status == statusUnhealthy {
		status = http.StatusServiceUnavailable

		h.recordFailure(map[string]any{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})
	}

	if err := c.JSON(status, report); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) run(parent context.Context, check healthCheck) CheckResult {
	ctx, cancel := context.WithTimeout(parent, h.timeout)
	defer cancel()

	start := time.Now()
	err := check.probe(ctx)

	result := CheckResult{
		Status:       statusHealthy,
		ResponseTime: time.Since(start).String(),
	}
	if err != nil {
		result.Status = statusUnhealthy
		result.Error = err.Error()
	}
	return result
}

func (h *HealthHandler) recordFailure(attrs map[string]any) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", attrs)
	}
}
