// Package smoothing implements the null-tolerant rolling window
// average shared by the enrichment passes.
package smoothing

// Smooth computes a windowed average over series, returning a slice of
// the same length. Nil entries occupy a window slot but contribute
// nothing to the average, so gaps shrink the effective denominator
// instead of being interpolated. Positions whose window holds no valid
// value yield nil. A non-positive window or empty input yields an
// all-nil output of matching length.
func Smooth(series []*float64, windowSize int) []*float64 {
	result := make([]*float64, len(series))
	if windowSize <= 0 || len(series) == 0 {
		return result
	}

	var sum float64
	validCount := 0

	for i := range series {
		if v := series[i]; v != nil {
			sum += *v
			validCount++
		}

		// Evict the slot that slides out of the window.
		if i >= windowSize {
			if old := series[i-windowSize]; old != nil {
				sum -= *old
				validCount--
			}
		}

		if validCount > 0 {
			avg := sum / float64(validCount)
			result[i] = &avg
		}
	}

	return result
}

// Scale multiplies every non-nil entry by factor, producing a new slice.
func Scale(series []*float64, factor float64) []*float64 {
	result := make([]*float64, len(series))
	for i, v := range series {
		if v == nil {
			continue
		}
		scaled := *v * factor
		result[i] = &scaled
	}
	return result
}
