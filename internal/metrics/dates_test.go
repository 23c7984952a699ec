package metrics

import (
	"testing"
	"time"
)

func TestParseDay(t *testing.T) {
	day, err := ParseDay("2025-03-01")
	if err != nil {
		t.Fatalf("ParseDay failed: %v", err)
	}
	want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if !day.Equal(want) {
		t.Errorf("ParseDay = %v, want %v", day, want)
	}

	for _, bad := range []string{"01-03-2025", "2025/03/01", "2025-03-01T00:00:00Z", ""} {
		if _, err := ParseDay(bad); err == nil {
			t.Errorf("ParseDay(%q) should fail", bad)
		}
	}
}

func TestFormatDayRoundTrip(t *testing.T) {
	day := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	got, err := ParseDay(FormatDay(day))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(day) {
		t.Errorf("round trip = %v, want %v", got, day)
	}
}

func TestMidnight(t *testing.T) {
	noon := time.Date(2025, 3, 1, 12, 34, 56, 789, time.FixedZone("X", 3600))
	got := Midnight(noon)
	want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Midnight = %v, want %v", got, want)
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		b    time.Time
		want int
	}{
		{a, 0},
		{a.AddDate(0, 0, 1), 1},
		{a.AddDate(0, 0, 30), 30},
		{a.AddDate(0, 0, -3), -3},
		{time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), 365},
	}
	for _, tt := range tests {
		if got := DaysBetween(a, tt.b); got != tt.want {
			t.Errorf("DaysBetween(%s, %s) = %d, want %d",
				FormatDay(a), FormatDay(tt.b), got, tt.want)
		}
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		day  string
		want string
	}{
		{"2025-03-03", "2025-03-03"}, // Monday maps to itself
		{"2025-03-05", "2025-03-03"}, // midweek
		{"2025-03-09", "2025-03-03"}, // Sunday belongs to the preceding Monday
		{"2025-03-01", "2025-02-24"}, // month boundary
		{"2025-01-01", "2024-12-30"}, // year boundary
	}
	for _, tt := range tests {
		day, err := ParseDay(tt.day)
		if err != nil {
			t.Fatal(err)
		}
		if got := FormatDay(WeekStart(day)); got != tt.want {
			t.Errorf("WeekStart(%s) = %s, want %s", tt.day, got, tt.want)
		}
	}
}

func TestGoalValidate(t *testing.T) {
	if !(Goal{}).IsZero() {
		t.Error("empty goal should be zero")
	}

	date := "2025-12-31"
	weight := 78.0
	g := Goal{Weight: &weight, Date: &date}
	if g.IsZero() {
		t.Error("populated goal should not be zero")
	}
	if err := g.Validate(); err != nil {
		t.Errorf("valid goal rejected: %v", err)
	}

	bad := "31/12/2025"
	if err := (Goal{Date: &bad}).Validate(); err == nil {
		t.Error("malformed goal date should fail validation")
	}
}
