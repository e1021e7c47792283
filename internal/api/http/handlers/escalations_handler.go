package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/observability"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/service"
)

// EscalationsHandler exposes the sweep to external schedulers.
type EscalationsHandler struct {
	service *service.EscalationService
	metrics *observability.Metrics
}

// NewEscalationsHandler constructs handler.
func NewEscalationsHandler(escalationService *service.EscalationService, metrics *observability.Metrics) *EscalationsHandler {
	return &EscalationsHandler{service: escalationService, metrics: metrics}
}

// RunSweep POST /internal/escalations/sweep. Intended for time-based
// invokers; the in-process cron calls the service directly.
func (h *EscalationsHandler) RunSweep(c *fiber.Ctx) error {
	report, err := h.service.RunSweep(c.Context())
	if err != nil {
		return err
	}
	runs, escalated, failed := h.metrics.SweepTotals()
	return c.JSON(fiber.Map{
		"data": report,
		"totals": fiber.Map{
			"runs":      runs,
			"escalated": escalated,
			"failed":    failed,
		},
	})
}
