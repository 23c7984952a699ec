package utils

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ToFloat64 converts the value shapes a decoded JSON dataset can carry
// into a float64. Returns the converted value and true on success, or
// 0 and false when the value is absent, non-numeric, or non-finite.
func ToFloat64(v interface{}) (float64, bool) {
	if v == nil {
		return 0, false
	}

	switch val := v.(type) {
	case float64:
		return finite(val)
	case float32:
		return finite(float64(val))
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0, false
		}
		return finite(f)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		return finite(f)
	default:
		return 0, false
	}
}

// finite rejects NaN and infinities so they never enter the pipeline.
func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// FloatPtr returns a pointer to v. Convenience for optional fields.
func FloatPtr(v float64) *float64 {
	return &v
}

// FloatVal dereferences p, returning fallback when p is nil.
func FloatVal(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}
