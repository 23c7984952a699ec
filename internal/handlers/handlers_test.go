package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/weightlens/weightlens/internal/analytics/pipeline"
	"github.com/weightlens/weightlens/internal/analytics/snapshot"
	"github.com/weightlens/weightlens/internal/config"
	"github.com/weightlens/weightlens/internal/logging"
	"github.com/weightlens/weightlens/internal/metrics"
	"github.com/weightlens/weightlens/internal/models"
	"github.com/weightlens/weightlens/internal/services"
	"github.com/weightlens/weightlens/internal/stats"
	"github.com/weightlens/weightlens/internal/store"
)

var day0 = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) (*fiber.App, *services.AnalysisService) {
	t.Helper()
	logger := logging.NewWithWriter(io.Discard, zerolog.Disabled)
	goalStore, err := store.NewGoalStore(config.StoreConfig{Type: "memory"})
	if err != nil {
		t.Fatal(err)
	}
	svc := services.NewAnalysisService(logger, nil, goalStore, stats.NewProvider(),
		pipeline.DefaultConfig(), snapshot.DefaultParams())
	h := New(logger, svc)

	app := fiber.New()
	app.Get("/health", h.Health)
	app.Post("/v1/dataset/import", h.Import)
	app.Get("/v1/dataset/records", h.Records)
	app.Get("/v1/analysis/snapshot", h.Snapshot)
	app.Get("/v1/analysis/regression", h.Regression)
	app.Get("/v1/analysis/plateaus", h.Plateaus)
	app.Get("/v1/analysis/trend-changes", h.TrendChanges)
	app.Get("/v1/analysis/weekly", h.Weekly)
	app.Get("/v1/goal", h.GetGoal)
	app.Put("/v1/goal", h.PutGoal)
	app.Use(h.NotFound)
	return app, svc
}

func importPayload(days int) []byte {
	weights := map[string]interface{}{}
	intake := map[string]interface{}{}
	expenditure := map[string]interface{}{}
	for i := 0; i < days; i++ {
		day := metrics.FormatDay(day0.AddDate(0, 0, i))
		weights[day] = 85 - 0.05*float64(i)
		intake[day] = 2100
		expenditure[day] = 2450
	}
	body, _ := json.Marshal(map[string]interface{}{
		"weights":             weights,
		"calorieIntake":       intake,
		"measuredExpenditure": expenditure,
		"bodyFat":             map[string]interface{}{},
	})
	return body
}

func doImport(t *testing.T, app *fiber.App, days int) {
	t.Helper()
	req := httptest.NewRequest("POST", "/v1/dataset/import", bytes.NewReader(importPayload(days)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("import request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("import status = %d: %s", resp.StatusCode, body)
	}
}

func decodeBody(t *testing.T, r io.Reader, v interface{}) {
	t.Helper()
	body, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("failed to unmarshal: %v (%s)", err, body)
	}
}

func TestHandler_Health(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	var health models.HealthResponse
	decodeBody(t, resp.Body, &health)
	if health.Status != "healthy" {
		t.Errorf("status = %q, want healthy", health.Status)
	}
	if health.Records != 0 {
		t.Errorf("records = %d before any import", health.Records)
	}
}

func TestHandler_ImportAndRecords(t *testing.T) {
	app, _ := newTestApp(t)
	doImport(t, app, 30)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/dataset/records", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var records models.RecordsResponse
	decodeBody(t, resp.Body, &records)
	if records.Count != 30 {
		t.Errorf("count = %d, want 30", records.Count)
	}
	if records.Start != "2025-03-01" {
		t.Errorf("start = %q, want 2025-03-01", records.Start)
	}
	if records.Records[29].SMA == nil {
		// decoded via JSON tags; presence proves enrichment survived
		t.Error("last record should carry an SMA")
	}
}

func TestHandler_ImportCoercesAndSkips(t *testing.T) {
	app, _ := newTestApp(t)

	body := []byte(`{
		"weights": {"2025-03-01": "80.5", "2025-03-02": "not-a-number"},
		"calorieIntake": {"2025-03-01": 2100}
	}`)
	req := httptest.NewRequest("POST", "/v1/dataset/import", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var imported models.ImportResponse
	decodeBody(t, resp.Body, &imported)
	if imported.Records != 1 {
		t.Errorf("records = %d, want 1", imported.Records)
	}
	if imported.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", imported.Skipped)
	}
	if imported.RequestID == "" {
		t.Error("request_id must be set")
	}
}

func TestHandler_RecordsWithoutData(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/dataset/records", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404 for empty dataset", resp.StatusCode)
	}

	var errResp models.ErrorResponse
	decodeBody(t, resp.Body, &errResp)
	if errResp.Error.Code != services.CodeNoData {
		t.Errorf("code = %q, want %q", errResp.Error.Code, services.CodeNoData)
	}
}

func TestHandler_RecordsBadDate(t *testing.T) {
	app, _ := newTestApp(t)
	doImport(t, app, 10)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/dataset/records?start=03-01-2025", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400 for malformed date", resp.StatusCode)
	}
}

func TestHandler_SnapshotEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	doImport(t, app, 60)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/analysis/snapshot", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var snap map[string]interface{}
	decodeBody(t, resp.Body, &snap)
	for _, field := range []string{
		"startingWeight", "currentWeight", "currentSma", "currentWeeklyRate",
		"regressionSlopeWeekly", "weightDataConsistency", "targetRateFeedback",
	} {
		if _, ok := snap[field]; !ok {
			t.Errorf("snapshot missing field %q", field)
		}
	}
}

func TestHandler_RegressionRangeParams(t *testing.T) {
	app, _ := newTestApp(t)
	doImport(t, app, 60)

	url := fmt.Sprintf("/v1/analysis/regression?override_start=%s&override_end=%s",
		metrics.FormatDay(day0.AddDate(0, 0, 40)), metrics.FormatDay(day0.AddDate(0, 0, 59)))
	resp, err := app.Test(httptest.NewRequest("GET", url, nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var result struct {
		Slope  *float64 `json:"slope"`
		Points []struct {
			Date string `json:"date"`
		} `json:"points"`
	}
	decodeBody(t, resp.Body, &result)
	if result.Slope == nil {
		t.Fatal("slope should be defined")
	}
	if len(result.Points) != 20 {
		t.Errorf("points = %d, want 20 inside the override range", len(result.Points))
	}
}

func TestHandler_GoalRoundTrip(t *testing.T) {
	app, _ := newTestApp(t)

	body := []byte(`{"weight": 78, "date": "2025-12-31", "targetRate": -0.5}`)
	req := httptest.NewRequest("PUT", "/v1/goal", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/v1/goal", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var goal metrics.Goal
	decodeBody(t, resp.Body, &goal)
	if goal.Weight == nil || *goal.Weight != 78 {
		t.Errorf("weight = %v, want 78", goal.Weight)
	}
	if goal.Date == nil || *goal.Date != "2025-12-31" {
		t.Errorf("date = %v, want 2025-12-31", goal.Date)
	}
}

func TestHandler_GoalBadDate(t *testing.T) {
	app, _ := newTestApp(t)

	body := []byte(`{"date": "31/12/2025"}`)
	req := httptest.NewRequest("PUT", "/v1/goal", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400 for malformed goal date", resp.StatusCode)
	}
}

func TestHandler_NotFound(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/nonexistent", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}

	var errResp models.ErrorResponse
	decodeBody(t, resp.Body, &errResp)
	if errResp.Error.Path != "/nonexistent" {
		t.Errorf("path = %q, want /nonexistent", errResp.Error.Path)
	}
}
