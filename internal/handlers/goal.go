package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/weightlens/weightlens/internal/metrics"
)

// GetGoal handles GET /v1/goal
func (h *Handler) GetGoal(c *fiber.Ctx) error {
	goal, err := h.service.Goal(c.Context())
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return c.JSON(goal)
}

// PutGoal handles PUT /v1/goal
func (h *Handler) PutGoal(c *fiber.Ctx) error {
	var goal metrics.Goal
	if err := c.BodyParser(&goal); err != nil {
		return badRequest(c, "INVALID_BODY", "Request body must be a JSON goal")
	}

	if err := h.service.SetGoal(c.Context(), goal); err != nil {
		return h.respondServiceError(c, err)
	}

	h.logger.Info("Goal updated",
		"has_weight", goal.Weight != nil,
		"has_date", goal.Date != nil,
		"has_target_rate", goal.TargetRate != nil)
	return c.JSON(goal)
}
