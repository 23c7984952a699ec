// Package weekly buckets enriched daily records into calendar weeks
// and correlates weekly energy balance with weekly weight-change rate.
package weekly

import (
	"sort"
	"time"

	"github.com/weightlens/weightlens/internal/metrics"
	"github.com/weightlens/weightlens/internal/stats"
)

// MinWeeksForCorrelation is the qualifying-week count below which the
// net-calories/rate correlation stays undefined.
const MinWeeksForCorrelation = 4

// Stat is one qualifying calendar week.
type Stat struct {
	WeekStartDate  time.Time `json:"weekStartDate"`
	AvgNetCal      float64   `json:"avgNetCal"`
	WeeklyRate     float64   `json:"weeklyRate"`
	AvgWeight      *float64  `json:"avgWeight"`
	AvgExpenditure *float64  `json:"avgExpenditure"`
	AvgIntake      *float64  `json:"avgIntake"`
	ValidDays      int       `json:"validDays"`
}

// Aggregate groups records by calendar week (weeks start Monday) and
// keeps weeks with at least minValidDays days carrying both a net
// balance and a smoothed rate. AvgNetCal and WeeklyRate average only
// those qualifying days; the remaining averages run over every record
// in the week, preferring SMA over raw weight. Output is sorted by
// week start.
func Aggregate(records []metrics.DailyRecord, minValidDays int) []Stat {
	weeks := make(map[time.Time][]metrics.DailyRecord)
	for _, r := range records {
		start := metrics.WeekStart(r.Date)
		weeks[start] = append(weeks[start], r)
	}

	out := make([]Stat, 0, len(weeks))
	for start, bucket := range weeks {
		var netSum, rateSum float64
		valid := 0
		for _, r := range bucket {
			if r.NetBalance == nil || r.SmoothedWeeklyRate == nil {
				continue
			}
			netSum += *r.NetBalance
			rateSum += *r.SmoothedWeeklyRate
			valid++
		}
		if valid < minValidDays {
			continue
		}

		out = append(out, Stat{
			WeekStartDate:  start,
			AvgNetCal:      netSum / float64(valid),
			WeeklyRate:     rateSum / float64(valid),
			AvgWeight:      averageOf(bucket, smoothedOrRawWeight),
			AvgExpenditure: averageOf(bucket, func(r metrics.DailyRecord) *float64 { return r.MeasuredExpenditure }),
			AvgIntake:      averageOf(bucket, func(r metrics.DailyRecord) *float64 { return r.CalorieIntake }),
			ValidDays:      valid,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].WeekStartDate.Before(out[j].WeekStartDate)
	})
	return out
}

func smoothedOrRawWeight(r metrics.DailyRecord) *float64 {
	if r.SMA != nil {
		return r.SMA
	}
	return r.Weight
}

func averageOf(bucket []metrics.DailyRecord, field func(metrics.DailyRecord) *float64) *float64 {
	sum := 0.0
	n := 0
	for _, r := range bucket {
		if v := field(r); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

// Correlation computes the sample Pearson correlation between weekly
// average net calories and weekly rate. A calorie surplus correlates
// positively with a gain-positive rate. Returns nil with fewer than
// MinWeeksForCorrelation weeks or when the provider cannot compute it.
func Correlation(weeks []Stat, provider stats.Provider) *float64 {
	if len(weeks) < MinWeeksForCorrelation || provider == nil {
		return nil
	}
	nets := make([]float64, len(weeks))
	rates := make([]float64, len(weeks))
	for i, w := range weeks {
		nets[i] = w.AvgNetCal
		rates[i] = w.WeeklyRate
	}
	r, ok := provider.Correlation(nets, rates)
	if !ok {
		return nil
	}
	return &r
}
