package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/weightlens/weightlens/internal/metrics"
)

// synthdata generates a synthetic observation file that the dashboard
// service can load through its file source. Weights follow a slow
// linear trend with gaussian noise plus a weekly ripple; intake and
// expenditure hover around configurable means. Random gaps mimic
// skipped weigh-ins.
func main() {
	var (
		days        = flag.Int("days", 180, "Number of days to generate")
		start       = flag.String("start", "", "Start date (YYYY-MM-DD, default: days ago from today)")
		startWeight = flag.Float64("weight", 85.0, "Starting weight in kg")
		weeklyRate  = flag.Float64("rate", -0.3, "Weekly weight change in kg")
		noise       = flag.Float64("noise", 0.4, "Weight noise stddev in kg")
		intake      = flag.Float64("intake", 2200, "Mean daily calorie intake")
		expenditure = flag.Float64("expenditure", 2550, "Mean daily expenditure")
		gapChance   = flag.Float64("gaps", 0.1, "Probability a day has no weigh-in")
		bodyFat     = flag.Float64("bodyfat", 24.0, "Starting body fat percentage (0 disables)")
		seed        = flag.Int64("seed", 0, "Random seed (0: time-based)")
		output      = flag.String("output", "observations.json", "Output file path")
	)
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	var day0 time.Time
	if *start != "" {
		var err error
		day0, err = metrics.ParseDay(*start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid start date: %v\n", err)
			os.Exit(1)
		}
	} else {
		day0 = metrics.Midnight(time.Now().UTC()).AddDate(0, 0, -*days)
	}

	sources := metrics.Sources{
		Weights:             make(map[string]float64),
		CalorieIntake:       make(map[string]float64),
		MeasuredExpenditure: make(map[string]float64),
		BodyFat:             make(map[string]float64),
	}

	dailyRate := *weeklyRate / 7
	for i := 0; i < *days; i++ {
		day := metrics.FormatDay(day0.AddDate(0, 0, i))

		// Weekend ripple: water weight creeps up then flushes out.
		ripple := 0.25 * math.Sin(2*math.Pi*float64(i)/7)
		trend := *startWeight + dailyRate*float64(i)

		if rng.Float64() >= *gapChance {
			sources.Weights[day] = round1(trend + ripple + rng.NormFloat64()**noise)
		}
		sources.CalorieIntake[day] = math.Round(*intake + rng.NormFloat64()*200)
		sources.MeasuredExpenditure[day] = math.Round(*expenditure + rng.NormFloat64()*120)

		if *bodyFat > 0 && i%3 == 0 {
			// Fat fraction tracks the weight trend loosely.
			drift := (trend - *startWeight) / *startWeight * 40
			sources.BodyFat[day] = round1(*bodyFat + drift + rng.NormFloat64()*0.5)
		}
	}

	data, err := json.MarshalIndent(sources, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*output, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", *output, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d days (%d weigh-ins) to %s (seed %d)\n",
		*days, len(sources.Weights), *output, *seed)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
