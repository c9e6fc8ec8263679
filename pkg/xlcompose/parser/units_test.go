package parser

import (
	"math"
	"testing"
)

func TestEMUToPixelsF(t *testing.T) {
	tests := []struct {
		emu      int64
		expected float64
	}{
		{0, 0},
		{9525, 1},
		{914400, 96},
		{19050, 2},
		{4762, 4762.0 / 9525.0},
	}

	for _, tt := range tests {
		result := EMUToPixelsF(tt.emu)
		if math.Abs(result-tt.expected) > 1e-9 {
			t.Errorf("EMUToPixelsF(%d) = %v, expected %v", tt.emu, result, tt.expected)
		}
	}
}

func TestPixelRoundTrip(t *testing.T) {
	pixels := []float64{0, 1, 8.43 * 7.0, 96, 250, 1024.5}

	for _, p := range pixels {
		got := EMUToPixelsF(PixelsToEMU(p))
		if math.Abs(got-p) > 1e-4 {
			t.Errorf("EMUToPixelsF(PixelsToEMU(%v)) = %v, want %v", p, got, p)
		}
	}
}

func TestEMUToPoints(t *testing.T) {
	tests := []struct {
		emu      int64
		expected float64
	}{
		{0, 0},
		{12700, 1},
		{25400, 2},
		{6350, 0.5},
	}

	for _, tt := range tests {
		result := EMUToPoints(tt.emu)
		if math.Abs(result-tt.expected) > 1e-9 {
			t.Errorf("EMUToPoints(%d) = %v, expected %v", tt.emu, result, tt.expected)
		}
	}
}

func TestEMUToPixels(t *testing.T) {
	if got := EMUToPixels(19050); got != 2 {
		t.Errorf("EMUToPixels(19050) = %d, expected 2", got)
	}
	if got := EMUToPixels(9524); got != 0 {
		t.Errorf("EMUToPixels(9524) = %d, expected 0", got)
	}
}
