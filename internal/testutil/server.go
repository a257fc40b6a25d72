package testutil

import (
	"testing"
	"time"

	"github.com/deppfellow/leadboard/internal/config"
	"github.com/deppfellow/leadboard/internal/server"
	"github.com/rs/zerolog"
)

// Config returns a valid configuration that needs no external services.
// The rate limiter and health checks are off.
func Config() *config.Config {
	obs := config.DefaultObservabilityConfig()
	obs.Environment = "test"
	obs.Logging.Level = "debug"
	obs.HealthChecks.Enabled = false
	obs.HealthChecks.Checks = nil

	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "0",
			ReadTimeout:        5,
			WriteTimeout:       5,
			IdleTimeout:        5,
			CORSAllowedOrigins: []string{"http://localhost:3000"},
		},
		Redis: config.RedisConfig{Address: "localhost:6379"},
		Auth:  config.AuthConfig{SecretKey: "sk_test_leadboard"},
		RateLimit: config.RateLimitConfig{
			Enabled:  false,
			Requests: 100,
			Window:   time.Minute,
		},
		Observability: obs,
	}
}

// NewServer returns a container with no database, Redis or job worker.
// Logs go to the test output.
func NewServer(t testing.TB) *server.Server {
	t.Helper()

	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)

	return &server.Server{
		Config: Config(),
		Logger: &logger,
	}
}
