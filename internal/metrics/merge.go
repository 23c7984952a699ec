package metrics

import (
	"sort"
	"time"

	"github.com/weightlens/weightlens/internal/logging"
)

// Merge combines the four source maps into a single date-sorted slice
// of DailyRecords. A date missing from a given map leaves that field
// nil on the record. Unparseable date keys are skipped with a warning;
// a bad entry never aborts the merge.
func Merge(src Sources, logger *logging.Logger) []DailyRecord {
	byDate := make(map[time.Time]*DailyRecord)

	get := func(day time.Time) *DailyRecord {
		if rec, ok := byDate[day]; ok {
			return rec
		}
		rec := &DailyRecord{Date: day}
		byDate[day] = rec
		return rec
	}

	collect := func(name string, m map[string]float64, assign func(*DailyRecord, float64)) {
		for key, value := range m {
			day, err := ParseDay(key)
			if err != nil {
				if logger != nil {
					logger.Warn("Skipping entry with malformed date key",
						"source", name, "key", key, "error", err)
				}
				continue
			}
			v := value
			assign(get(day), v)
		}
	}

	collect("weights", src.Weights, func(r *DailyRecord, v float64) { r.Weight = &v })
	collect("calorieIntake", src.CalorieIntake, func(r *DailyRecord, v float64) { r.CalorieIntake = &v })
	collect("measuredExpenditure", src.MeasuredExpenditure, func(r *DailyRecord, v float64) { r.MeasuredExpenditure = &v })
	collect("bodyFat", src.BodyFat, func(r *DailyRecord, v float64) { r.BodyFatPercent = &v })

	records := make([]DailyRecord, 0, len(byDate))
	for _, rec := range byDate {
		if rec.CalorieIntake != nil && rec.MeasuredExpenditure != nil {
			net := *rec.CalorieIntake - *rec.MeasuredExpenditure
			rec.NetBalance = &net
		}
		records = append(records, *rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	return records
}

// SliceRange returns the contiguous subslice of records whose dates
// fall within [start, end] inclusive. Records must be date-sorted.
func SliceRange(records []DailyRecord, start, end time.Time) []DailyRecord {
	lo := sort.Search(len(records), func(i int) bool {
		return !records[i].Date.Before(start)
	})
	hi := sort.Search(len(records), func(i int) bool {
		return records[i].Date.After(end)
	})
	if lo >= hi {
		return nil
	}
	return records[lo:hi]
}
