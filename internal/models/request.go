package models

import (
	"github.com/weightlens/weightlens/internal/metrics"
	"github.com/weightlens/weightlens/internal/utils"
)

// ImportRequest carries the four date-keyed observation maps. Values
// are loosely typed so clients may send numbers or numeric strings.
type ImportRequest struct {
	Weights             map[string]interface{} `json:"weights"`
	CalorieIntake       map[string]interface{} `json:"calorieIntake"`
	MeasuredExpenditure map[string]interface{} `json:"measuredExpenditure"`
	BodyFat             map[string]interface{} `json:"bodyFat"`
}

// ToSources coerces the maps to float64, dropping entries whose value
// is not numeric. Returns the coerced sources and the drop count.
func (r ImportRequest) ToSources() (metrics.Sources, int) {
	skipped := 0
	coerce := func(in map[string]interface{}) map[string]float64 {
		out := make(map[string]float64, len(in))
		for k, v := range in {
			f, ok := utils.ToFloat64(v)
			if !ok {
				skipped++
				continue
			}
			out[k] = f
		}
		return out
	}

	return metrics.Sources{
		Weights:             coerce(r.Weights),
		CalorieIntake:       coerce(r.CalorieIntake),
		MeasuredExpenditure: coerce(r.MeasuredExpenditure),
		BodyFat:             coerce(r.BodyFat),
	}, skipped
}
