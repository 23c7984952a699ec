package regression

import (
	"math"
	"testing"
	"time"

	"github.com/weightlens/weightlens/internal/analytics"
	"github.com/weightlens/weightlens/internal/metrics"
	"github.com/weightlens/weightlens/internal/stats"
)

var day0 = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

func linearPoints(n int, slope, intercept float64, noise func(i int) float64) []analytics.Point {
	points := make([]analytics.Point, n)
	for i := range points {
		v := intercept + slope*float64(i)
		if noise != nil {
			v += noise(i)
		}
		points[i] = analytics.Point{Date: day0.AddDate(0, 0, i), Value: v}
	}
	return points
}

func TestFit_PerfectLineHasZeroWidthBand(t *testing.T) {
	points := linearPoints(10, -0.05, 80, nil)
	result := Fit(points, Options{}, stats.NewProvider())

	if result.Slope == nil || math.Abs(*result.Slope+0.05) > 1e-9 {
		t.Fatalf("slope = %v, want -0.05", result.Slope)
	}
	if result.Intercept == nil || math.Abs(*result.Intercept-80) > 1e-9 {
		t.Fatalf("intercept = %v, want 80", result.Intercept)
	}

	for i, p := range result.PointsWithCI {
		if p.LowerCI == nil || p.UpperCI == nil {
			t.Fatalf("point %d: expected CI bounds", i)
		}
		if math.Abs(*p.LowerCI-p.Value) > 1e-9 || math.Abs(*p.UpperCI-p.Value) > 1e-9 {
			t.Errorf("point %d: zero residual must give lower == upper == value (got %v, %v, %v)",
				i, *p.LowerCI, p.Value, *p.UpperCI)
		}
	}
}

func TestFit_NoiseWidensBand(t *testing.T) {
	provider := stats.NewProvider()
	mild := func(i int) float64 {
		if i%2 == 0 {
			return 0.1
		}
		return -0.1
	}
	loud := func(i int) float64 { return mild(i) * 5 }

	bandWidth := func(noise func(int) float64) float64 {
		result := Fit(linearPoints(20, -0.05, 80, noise), Options{}, provider)
		if result.Slope == nil {
			t.Fatal("fit should be defined")
		}
		total := 0.0
		for _, p := range result.PointsWithCI {
			total += *p.UpperCI - *p.LowerCI
		}
		return total
	}

	if bandWidth(loud) <= bandWidth(mild) {
		t.Error("louder noise must widen the confidence band")
	}
}

func TestFit_InsufficientPoints(t *testing.T) {
	result := Fit(linearPoints(6, -0.05, 80, nil), Options{}, stats.NewProvider())

	if result.Slope != nil || result.Intercept != nil {
		t.Error("fit below the minimum point count must be undefined")
	}
	if len(result.Points) != 0 || len(result.PointsWithCI) != 0 {
		t.Error("undefined fit must carry empty point slices")
	}
}

func TestFit_StartDateFloor(t *testing.T) {
	// 20 points; floor drops the first 15, leaving 5 < minimum.
	points := linearPoints(20, -0.05, 80, nil)
	floor := day0.AddDate(0, 0, 15)

	result := Fit(points, Options{StartDate: &floor}, stats.NewProvider())
	if result.Slope != nil {
		t.Error("floor leaving too few points must yield an undefined fit")
	}

	// A milder floor keeps the fit defined and unchanged in slope.
	floor = day0.AddDate(0, 0, 5)
	result = Fit(points, Options{StartDate: &floor}, stats.NewProvider())
	if result.Slope == nil || math.Abs(*result.Slope+0.05) > 1e-9 {
		t.Errorf("slope after floor = %v, want -0.05", result.Slope)
	}
	if len(result.Points) != 15 {
		t.Errorf("fitted points = %d, want 15", len(result.Points))
	}
}

func TestFit_UnavailableProviderDegrades(t *testing.T) {
	result := Fit(linearPoints(20, -0.05, 80, nil), Options{}, stats.Unavailable{})
	if result.Slope != nil {
		t.Error("missing statistics capability must yield an undefined fit, not a crash")
	}
}

func TestFit_AlphaControlsWidth(t *testing.T) {
	provider := stats.NewProvider()
	noise := func(i int) float64 {
		if i%2 == 0 {
			return 0.3
		}
		return -0.3
	}
	points := linearPoints(20, -0.05, 80, noise)

	width := func(alpha float64) float64 {
		result := Fit(points, Options{Alpha: alpha}, provider)
		p := result.PointsWithCI[0]
		return *p.UpperCI - *p.LowerCI
	}

	// 99% band (alpha 0.01) must be wider than the 90% band (alpha 0.1).
	if width(0.01) <= width(0.1) {
		t.Error("lower alpha must widen the confidence band")
	}
}

func TestCandidatePoints_ExcludesOutliersAndGaps(t *testing.T) {
	w := 80.0
	records := []metrics.DailyRecord{
		{Date: day0, Weight: &w},
		{Date: day0.AddDate(0, 0, 1)}, // no weight
		{Date: day0.AddDate(0, 0, 2), Weight: &w, IsOutlier: true},
		{Date: day0.AddDate(0, 0, 3), Weight: &w},
	}

	points := CandidatePoints(records)
	if len(points) != 2 {
		t.Fatalf("candidates = %d, want 2", len(points))
	}
	if !points[0].Date.Equal(day0) || !points[1].Date.Equal(day0.AddDate(0, 0, 3)) {
		t.Error("wrong candidate dates")
	}
}
