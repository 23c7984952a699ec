package services

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/weightlens/weightlens/internal/analytics"
	"github.com/weightlens/weightlens/internal/analytics/pipeline"
	"github.com/weightlens/weightlens/internal/analytics/snapshot"
	"github.com/weightlens/weightlens/internal/config"
	"github.com/weightlens/weightlens/internal/logging"
	"github.com/weightlens/weightlens/internal/metrics"
	"github.com/weightlens/weightlens/internal/stats"
	"github.com/weightlens/weightlens/internal/store"
)

var day0 = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

func quietLogger() *logging.Logger {
	return logging.NewWithWriter(io.Discard, zerolog.Disabled)
}

func newTestService(t *testing.T) *AnalysisService {
	t.Helper()
	goalStore, err := store.NewGoalStore(config.StoreConfig{Type: "memory"})
	if err != nil {
		t.Fatal(err)
	}
	return NewAnalysisService(quietLogger(), nil, goalStore, stats.NewProvider(),
		pipeline.DefaultConfig(), snapshot.DefaultParams())
}

// sampleSources builds 30 days of declining weight with full calorie
// coverage.
func sampleSources(days int) metrics.Sources {
	src := metrics.Sources{
		Weights:             map[string]float64{},
		CalorieIntake:       map[string]float64{},
		MeasuredExpenditure: map[string]float64{},
		BodyFat:             map[string]float64{},
	}
	for i := 0; i < days; i++ {
		day := metrics.FormatDay(day0.AddDate(0, 0, i))
		src.Weights[day] = 85 - 0.05*float64(i)
		src.CalorieIntake[day] = 2100
		src.MeasuredExpenditure[day] = 2450
	}
	return src
}

func serviceErrorCode(t *testing.T, err error) string {
	t.Helper()
	svcErr, ok := err.(*ServiceError)
	if !ok {
		t.Fatalf("expected *ServiceError, got %T: %v", err, err)
	}
	return svcErr.Code
}

func TestImport_EnrichesAndCounts(t *testing.T) {
	s := newTestService(t)

	n, err := s.Import(sampleSources(30))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if n != 30 {
		t.Errorf("imported = %d, want 30", n)
	}
	if s.LoadedAt().IsZero() {
		t.Error("LoadedAt should be set after import")
	}

	records, err := s.Records(analytics.DateRange{})
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	if len(records) != 30 {
		t.Fatalf("records = %d, want 30", len(records))
	}
	last := records[len(records)-1]
	if last.SMA == nil || last.SmoothedWeeklyRate == nil || last.TrendTDEE == nil {
		t.Error("imported records must be enriched by the pipeline")
	}
}

func TestImport_Empty(t *testing.T) {
	s := newTestService(t)

	_, err := s.Import(metrics.Sources{})
	if code := serviceErrorCode(t, err); code != CodeEmptyImport {
		t.Errorf("code = %s, want %s", code, CodeEmptyImport)
	}
}

func TestRecords_NoDataAndBadRange(t *testing.T) {
	s := newTestService(t)

	_, err := s.Records(analytics.DateRange{})
	if code := serviceErrorCode(t, err); code != CodeNoData {
		t.Errorf("code = %s, want %s", code, CodeNoData)
	}

	if _, err := s.Import(sampleSources(10)); err != nil {
		t.Fatal(err)
	}

	_, err = s.Records(analytics.DateRange{Start: day0.AddDate(0, 0, 5), End: day0})
	if code := serviceErrorCode(t, err); code != CodeInvalidRange {
		t.Errorf("code = %s, want %s", code, CodeInvalidRange)
	}

	// Open-ended ranges fill from the dataset bounds.
	records, err := s.Records(analytics.DateRange{Start: day0.AddDate(0, 0, 5)})
	if err != nil {
		t.Fatalf("open-ended range failed: %v", err)
	}
	if len(records) != 5 {
		t.Errorf("records = %d, want 5", len(records))
	}
}

func TestSnapshot_JoinsGoal(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	if _, err := s.Import(sampleSources(60)); err != nil {
		t.Fatal(err)
	}

	weight := 78.0
	rate := -0.35
	if err := s.SetGoal(ctx, metrics.Goal{Weight: &weight, TargetRate: &rate}); err != nil {
		t.Fatalf("SetGoal failed: %v", err)
	}

	snap, err := s.Snapshot(ctx, SnapshotOptions{})
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if snap.TargetWeight == nil || *snap.TargetWeight != 78 {
		t.Errorf("targetWeight = %v, want 78", snap.TargetWeight)
	}
	if snap.CurrentWeight == nil || snap.CurrentSMA == nil {
		t.Error("snapshot must carry current weight statistics")
	}
	if snap.WeightToGoal == nil {
		t.Error("weightToGoal should be derived from the goal")
	}
	if snap.RegressionSlopeWeekly == nil {
		t.Error("regression should be defined over 60 clean days")
	}
}

func TestRegression_OverrideRange(t *testing.T) {
	s := newTestService(t)

	if _, err := s.Import(sampleSources(60)); err != nil {
		t.Fatal(err)
	}

	full, err := s.Regression(SnapshotOptions{})
	if err != nil {
		t.Fatalf("Regression failed: %v", err)
	}
	if full.Slope == nil || len(full.Points) != 60 {
		t.Fatalf("full fit: slope=%v points=%d", full.Slope, len(full.Points))
	}

	override := analytics.DateRange{Start: day0.AddDate(0, 0, 40), End: day0.AddDate(0, 0, 59)}
	clipped, err := s.Regression(SnapshotOptions{RegressionOverride: &override})
	if err != nil {
		t.Fatalf("Regression with override failed: %v", err)
	}
	if len(clipped.Points) != 20 {
		t.Errorf("override fit points = %d, want 20", len(clipped.Points))
	}
}

func TestWeekly_GatesApply(t *testing.T) {
	s := newTestService(t)

	if _, err := s.Import(sampleSources(56)); err != nil {
		t.Fatal(err)
	}

	result, err := s.Weekly(analytics.DateRange{})
	if err != nil {
		t.Fatalf("Weekly failed: %v", err)
	}
	if len(result.Weeks) == 0 {
		t.Fatal("expected qualifying weeks over 8 fully-covered weeks")
	}
	for i := 1; i < len(result.Weeks); i++ {
		if !result.Weeks[i-1].WeekStartDate.Before(result.Weeks[i].WeekStartDate) {
			t.Fatal("weeks must be sorted")
		}
	}
}

func TestGoal_RoundTripAndValidation(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	goal, err := s.Goal(ctx)
	if err != nil {
		t.Fatalf("Goal failed: %v", err)
	}
	if !goal.IsZero() {
		t.Errorf("fresh store should hold a zero goal, got %+v", goal)
	}

	bad := "31-12-2025"
	err = s.SetGoal(ctx, metrics.Goal{Date: &bad})
	if code := serviceErrorCode(t, err); code != CodeInvalidGoal {
		t.Errorf("code = %s, want %s", code, CodeInvalidGoal)
	}

	good := "2025-12-31"
	if err := s.SetGoal(ctx, metrics.Goal{Date: &good}); err != nil {
		t.Fatalf("SetGoal failed: %v", err)
	}
	goal, _ = s.Goal(ctx)
	if goal.Date == nil || *goal.Date != good {
		t.Errorf("goal date = %v, want %s", goal.Date, good)
	}
}

func TestLoadFromSource_Stub(t *testing.T) {
	goalStore, _ := store.NewGoalStore(config.StoreConfig{Type: "memory"})
	s := NewAnalysisService(quietLogger(), stubSource{sources: sampleSources(14)}, goalStore,
		stats.NewProvider(), pipeline.DefaultConfig(), snapshot.DefaultParams())

	n, err := s.LoadFromSource(context.Background())
	if err != nil {
		t.Fatalf("LoadFromSource failed: %v", err)
	}
	if n != 14 {
		t.Errorf("loaded = %d, want 14", n)
	}

	failing := NewAnalysisService(quietLogger(), stubSource{err: fmt.Errorf("boom")}, goalStore,
		stats.NewProvider(), pipeline.DefaultConfig(), snapshot.DefaultParams())
	_, err = failing.LoadFromSource(context.Background())
	if code := serviceErrorCode(t, err); code != CodeSourceFailed {
		t.Errorf("code = %s, want %s", code, CodeSourceFailed)
	}
}

type stubSource struct {
	sources metrics.Sources
	err     error
}

func (s stubSource) Load(ctx context.Context) (metrics.Sources, error) {
	return s.sources, s.err
}
