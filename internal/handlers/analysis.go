package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/weightlens/weightlens/internal/analytics"
	"github.com/weightlens/weightlens/internal/services"
)

// snapshotOptions reads range plus regression overrides from query
// params: start, end, regression_start, override_start, override_end.
func snapshotOptions(c *fiber.Ctx) (services.SnapshotOptions, error) {
	rng, err := parseRange(c)
	if err != nil {
		return services.SnapshotOptions{}, err
	}
	opts := services.SnapshotOptions{Range: rng}

	if opts.RegressionStartDate, err = parseOptionalDay(c, "regression_start"); err != nil {
		return services.SnapshotOptions{}, err
	}

	overrideStart, err := parseOptionalDay(c, "override_start")
	if err != nil {
		return services.SnapshotOptions{}, err
	}
	overrideEnd, err := parseOptionalDay(c, "override_end")
	if err != nil {
		return services.SnapshotOptions{}, err
	}
	if overrideStart != nil && overrideEnd != nil {
		opts.RegressionOverride = &analytics.DateRange{Start: *overrideStart, End: *overrideEnd}
	}

	return opts, nil
}

// Snapshot handles GET /v1/analysis/snapshot
func (h *Handler) Snapshot(c *fiber.Ctx) error {
	opts, err := snapshotOptions(c)
	if err != nil {
		return badRequest(c, "INVALID_DATE", err.Error())
	}

	snap, svcErr := h.service.Snapshot(c.Context(), opts)
	if svcErr != nil {
		return h.respondServiceError(c, svcErr)
	}
	return c.JSON(snap)
}

// Regression handles GET /v1/analysis/regression
func (h *Handler) Regression(c *fiber.Ctx) error {
	opts, err := snapshotOptions(c)
	if err != nil {
		return badRequest(c, "INVALID_DATE", err.Error())
	}

	result, svcErr := h.service.Regression(opts)
	if svcErr != nil {
		return h.respondServiceError(c, svcErr)
	}
	return c.JSON(result)
}

// Plateaus handles GET /v1/analysis/plateaus
func (h *Handler) Plateaus(c *fiber.Ctx) error {
	rng, err := parseRange(c)
	if err != nil {
		return badRequest(c, "INVALID_DATE", err.Error())
	}

	plateaus, svcErr := h.service.Plateaus(rng)
	if svcErr != nil {
		return h.respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"plateaus": plateaus, "count": len(plateaus)})
}

// TrendChanges handles GET /v1/analysis/trend-changes
func (h *Handler) TrendChanges(c *fiber.Ctx) error {
	rng, err := parseRange(c)
	if err != nil {
		return badRequest(c, "INVALID_DATE", err.Error())
	}

	changes, svcErr := h.service.TrendChanges(rng)
	if svcErr != nil {
		return h.respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"trendChanges": changes, "count": len(changes)})
}

// Weekly handles GET /v1/analysis/weekly
func (h *Handler) Weekly(c *fiber.Ctx) error {
	rng, err := parseRange(c)
	if err != nil {
		return badRequest(c, "INVALID_DATE", err.Error())
	}

	result, svcErr := h.service.Weekly(rng)
	if svcErr != nil {
		return h.respondServiceError(c, svcErr)
	}
	return c.JSON(result)
}
