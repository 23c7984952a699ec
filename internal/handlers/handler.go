// Package handlers contains the Fiber HTTP handlers for the dashboard
// API.
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/weightlens/weightlens/internal/logging"
	"github.com/weightlens/weightlens/internal/models"
	"github.com/weightlens/weightlens/internal/services"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// Handler contains all HTTP handlers
type Handler struct {
	logger  *logging.Logger
	service *services.AnalysisService
}

// New creates a new handler instance
func New(logger *logging.Logger, service *services.AnalysisService) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// respondServiceError maps service error codes onto HTTP statuses.
func (h *Handler) respondServiceError(c *fiber.Ctx, err error) error {
	svcErr, ok := err.(*services.ServiceError)
	if !ok {
		h.logger.Error("Unexpected handler error", "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL",
				Message: "Internal server error",
			},
		})
	}

	status := fiber.StatusInternalServerError
	switch svcErr.Code {
	case services.CodeNoData:
		status = fiber.StatusNotFound
	case services.CodeInvalidRange, services.CodeInvalidGoal, services.CodeEmptyImport:
		status = fiber.StatusBadRequest
	case services.CodeSourceFailed:
		status = fiber.StatusBadGateway
	}

	return c.Status(status).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    svcErr.Code,
			Message: svcErr.Message,
			Details: svcErr.Details,
		},
	})
}

// badRequest responds with a 400 and the given code/message.
func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
