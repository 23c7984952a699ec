package utils

import (
	"encoding/json"
	"math"
	"testing"
)

func TestToFloat64_NumericTypes(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  float64
		ok    bool
	}{
		{"float64", 82.4, 82.4, true},
		{"float32", float32(2200), 2200, true},
		{"int", 75, 75, true},
		{"int64", int64(1800), 1800, true},
		{"json.Number", json.Number("79.25"), 79.25, true},
		{"numeric string", "80.1", 80.1, true},
		{"padded string", " 80.1 ", 80.1, true},
		{"empty string", "", 0, false},
		{"non-numeric string", "n/a", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
		{"NaN", math.NaN(), 0, false},
		{"Inf", math.Inf(1), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToFloat64(tt.input)
			if ok != tt.ok {
				t.Fatalf("ToFloat64(%v) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ToFloat64(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFloatVal(t *testing.T) {
	if got := FloatVal(nil, -1); got != -1 {
		t.Errorf("FloatVal(nil, -1) = %v, want -1", got)
	}
	if got := FloatVal(FloatPtr(3.5), -1); got != 3.5 {
		t.Errorf("FloatVal(3.5, -1) = %v, want 3.5", got)
	}
}
