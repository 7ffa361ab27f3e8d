package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/petcare-service/internal/observability"
)

// Checker is a dependency probed by the readiness endpoint.
type Checker interface {
	Name() string
	Ping(ctx context.Context) error
}

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	required    []Checker
	optional    []Checker
	metrics     *observability.Metrics
}

// NewHealthHandler returns a new handler instance. Failing optional checkers
// are reported but do not make the service unready.
func NewHealthHandler(serviceName, version string, metrics *observability.Metrics, required []Checker, optional ...Checker) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		required:    required,
		optional:    optional,
		metrics:     metrics,
	}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking dependencies.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true

	for _, dep := range h.required {
		if err := dep.Ping(ctx); err != nil {
			depStatus[dep.Name()] = err.Error()
			ready = false
		} else {
			depStatus[dep.Name()] = "ok"
		}
	}
	for _, dep := range h.optional {
		if err := dep.Ping(ctx); err != nil {
			depStatus[dep.Name()] = "degraded: " + err.Error()
		} else {
			depStatus[dep.Name()] = "ok"
		}
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": depStatus,
		},
	})
}

// Metrics returns the in-memory request counters.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.metrics.Snapshot()})
}
