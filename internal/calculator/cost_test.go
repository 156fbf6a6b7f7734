package calculator

import (
	"math"
	"testing"
)

func TestScaledCost(t *testing.T) {
	tests := []struct {
		base   float64
		owned  int
		factor float64
		want   float64
	}{
		{1000, 0, 1.15, 1000},
		{1000, 1, 1.15, 1150},
		{1000, 2, 1.5, 2250},
		{45, 1, 1.5, 68}, // 67.5 rounds half away from zero
		{50, 3, 1.15, 76},
		{5000, 1, 1.5, 7500},
		{3000, 2, 1.4, 5880},
		{10000, 1, 1.6, 16000},
		{20, -1, 1.15, 20},
	}
	for _, tt := range tests {
		got := ScaledCost(tt.base, tt.owned, tt.factor)
		if got != tt.want {
			t.Errorf("ScaledCost(%v, %d, %v) = %v, want %v", tt.base, tt.owned, tt.factor, got, tt.want)
		}
	}
}

func TestScaledComputeCost_ScaleThenMultiply(t *testing.T) {
	// round(45*1.5) = 68, then *0.8 = 54.4; fusing would give round(54) = 54
	got := ScaledComputeCost(45, 1, 1.5, 0.8)
	if math.Abs(got-54.4) > 1e-9 {
		t.Fatalf("expected 54.4, got %v", got)
	}
}
