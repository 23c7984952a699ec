package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/weightlens/weightlens/internal/analytics"
	"github.com/weightlens/weightlens/internal/metrics"
	"github.com/weightlens/weightlens/internal/models"
)

// Import handles POST /v1/dataset/import: replaces the dataset with
// the posted observation maps.
func (h *Handler) Import(c *fiber.Ctx) error {
	var req models.ImportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "INVALID_BODY", "Request body must be JSON observation maps")
	}

	sources, skipped := req.ToSources()
	requestID := uuid.New().String()

	count, err := h.service.Import(sources)
	if err != nil {
		return h.respondServiceError(c, err)
	}

	h.logger.Info("Dataset import accepted",
		"request_id", requestID,
		"records", count,
		"skipped", skipped)

	return c.JSON(models.ImportResponse{
		Accepted:  true,
		Records:   count,
		Skipped:   skipped,
		RequestID: requestID,
	})
}

// Reload handles POST /v1/dataset/reload: re-fetches the configured
// source and replaces the dataset.
func (h *Handler) Reload(c *fiber.Ctx) error {
	count, err := h.service.LoadFromSource(c.Context())
	if err != nil {
		return h.respondServiceError(c, err)
	}

	return c.JSON(models.ImportResponse{
		Accepted:  true,
		Records:   count,
		RequestID: uuid.New().String(),
	})
}

// Records handles GET /v1/dataset/records?start=&end=
func (h *Handler) Records(c *fiber.Ctx) error {
	rng, err := parseRange(c)
	if err != nil {
		return badRequest(c, "INVALID_DATE", err.Error())
	}

	records, svcErr := h.service.Records(rng)
	if svcErr != nil {
		return h.respondServiceError(c, svcErr)
	}

	resp := models.RecordsResponse{
		Count:   len(records),
		Records: records,
	}
	if len(records) > 0 {
		resp.Start = metrics.FormatDay(records[0].Date)
		resp.End = metrics.FormatDay(records[len(records)-1].Date)
	}
	return c.JSON(resp)
}

// parseRange reads optional start/end query params as YYYY-MM-DD.
func parseRange(c *fiber.Ctx) (analytics.DateRange, error) {
	var rng analytics.DateRange
	var err error

	if s := c.Query("start"); s != "" {
		if rng.Start, err = metrics.ParseDay(s); err != nil {
			return analytics.DateRange{}, err
		}
	}
	if e := c.Query("end"); e != "" {
		if rng.End, err = metrics.ParseDay(e); err != nil {
			return analytics.DateRange{}, err
		}
	}
	return rng, nil
}

// parseOptionalDay reads one optional YYYY-MM-DD query param.
func parseOptionalDay(c *fiber.Ctx, name string) (*time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	day, err := metrics.ParseDay(v)
	if err != nil {
		return nil, err
	}
	return &day, nil
}
