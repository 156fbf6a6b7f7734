package calculator

import "testing"

func TestSMA(t *testing.T) {
	got, err := SMA([]float64{0, 0, 100, 200, 300}, 3)
	if err != nil {
		t.Fatalf("SMA: %v", err)
	}
	if got != 200 {
		t.Errorf("SMA = %v, want 200", got)
	}
	if _, err := SMA([]float64{1}, 2); err == nil {
		t.Error("expected error for short input")
	}
	if _, err := SMA([]float64{1}, 0); err == nil {
		t.Error("expected error for zero period")
	}
}

func TestWindowRange(t *testing.T) {
	high, low, err := WindowRange([]float64{900, 5, 100, 50, 250}, 3)
	if err != nil {
		t.Fatalf("WindowRange: %v", err)
	}
	if high != 250 || low != 50 {
		t.Errorf("got high=%v low=%v", high, low)
	}

	high, low, _ = WindowRange([]float64{3, 1}, 10)
	if high != 3 || low != 1 {
		t.Errorf("window larger than input: high=%v low=%v", high, low)
	}
	if _, _, err := WindowRange(nil, 3); err == nil {
		t.Error("expected error for empty input")
	}
}
