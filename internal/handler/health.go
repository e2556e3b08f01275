package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/locallibrary/internal/middleware"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const healthCheckTimeout = 5 * time.Second

// HealthHandler reports whether the process and its stores are reachable.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(h Handler) *HealthHandler {
	return &HealthHandler{Handler: h}
}

type dependencyCheck struct {
	name string
	ping func(ctx context.Context) error
	// required checks make the endpoint report 503 when they fail.
	required bool
}

func (h *HealthHandler) checks() []dependencyCheck {
	var checks []dependencyCheck

	if db := h.server.DB; db != nil {
		checks = append(checks, dependencyCheck{name: "database", ping: db.Pool.Ping, required: true})
	}
	if m := h.server.Mongo; m != nil {
		checks = append(checks, dependencyCheck{
			name:     "database",
			ping:     func(ctx context.Context) error { return m.Client.Ping(ctx, nil) },
			required: true,
		})
	}
	if r := h.server.Redis; r != nil {
		checks = append(checks, dependencyCheck{
			name: "redis",
			ping: func(ctx context.Context) error { return r.Ping(ctx).Err() },
		})
	}

	return checks
}

// CheckHealth returns 200 when every required dependency answers a ping
// and 503 otherwise. Redis failures are reported but not fatal.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{})
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"driver":      h.server.Config.Database.Driver,
		"checks":      checks,
	}

	isHealthy := true
	for _, check := range h.checks() {
		result, ok := h.ping(c.Request().Context(), logger, check)
		checks[check.name] = result
		if !ok && check.required {
			isHealthy = false
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordEvent(map[string]interface{}{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Info().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) ping(ctx context.Context, logger zerolog.Logger, check dependencyCheck) (map[string]interface{}, bool) {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	start := time.Now()
	err := check.ping(ctx)
	took := time.Since(start)

	if err != nil {
		logger.Error().
			Err(err).
			Str("check", check.name).
			Dur("response_time", took).
			Msg("health check failed")

		h.recordEvent(map[string]interface{}{
			"check_type":       check.name,
			"operation":        "health_check",
			"error_type":       check.name + "_unhealthy",
			"response_time_ms": took.Milliseconds(),
			"error_message":    err.Error(),
		})

		return map[string]interface{}{
			"status":        "unhealthy",
			"response_time": took.String(),
			"error":         err.Error(),
		}, false
	}

	logger.Debug().
		Str("check", check.name).
		Dur("response_time", took).
		Msg("health check passed")

	return map[string]interface{}{
		"status":        "healthy",
		"response_time": took.String(),
	}, true
}

func (h *HealthHandler) recordEvent(attrs map[string]interface{}) {
	if h.server.LoggerService != nil && h.server.LoggerService.GetApplication() != nil {
		h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", attrs)
	}
}
