package pipeline

import "github.com/weightlens/weightlens/internal/metrics"

// applyBodyComposition derives lean and fat mass for days that have
// both a weight and a plausible body-fat percentage. No cross-day
// dependency.
func applyBodyComposition(records []metrics.DailyRecord) []metrics.DailyRecord {
	out := cloneAll(records)
	for i := range out {
		r := &out[i]
		r.LeanMass = nil
		r.FatMass = nil

		if r.Weight == nil || r.BodyFatPercent == nil {
			continue
		}
		bf := *r.BodyFatPercent
		if bf < 0 || bf >= 100 {
			continue
		}

		lean := *r.Weight * (1 - bf/100)
		fat := *r.Weight * bf / 100
		r.LeanMass = &lean
		r.FatMass = &fat
	}
	return out
}
