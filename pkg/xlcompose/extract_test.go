package xlcompose

import (
	"testing"

	"github.com/ymgata/xlcompose-go/pkg/xlcompose/models"
)

func TestImageFileName(t *testing.T) {
	tests := []struct {
		name     string
		rng      models.CellRange
		idx      int
		expected string
	}{
		{
			name:     "resolved range",
			rng:      models.CellRange{TopLeft: "B2", BottomRight: "D5"},
			idx:      0,
			expected: "B2-D5.png",
		},
		{
			name:     "missing bottom right",
			rng:      models.CellRange{TopLeft: "B2"},
			idx:      0,
			expected: "Sheet1_image_1.png",
		},
		{
			name:     "unresolved",
			rng:      models.CellRange{},
			idx:      2,
			expected: "Sheet1_image_3.png",
		},
	}

	for _, tt := range tests {
		if got := imageFileName("Sheet1", tt.rng, tt.idx); got != tt.expected {
			t.Errorf("%s: imageFileName() = %q, expected %q", tt.name, got, tt.expected)
		}
	}
}

func TestObjectNameFallbacks(t *testing.T) {
	if got := shapeName("Rectangle 1", 0); got != "Rectangle 1" {
		t.Errorf("shapeName() = %q", got)
	}
	if got := shapeName("", 1); got != "shape_2" {
		t.Errorf("shapeName() = %q, expected %q", got, "shape_2")
	}
	if got := imageName("Picture 1", 0); got != "Picture 1" {
		t.Errorf("imageName() = %q", got)
	}
	if got := imageName("", 0); got != "image_1" {
		t.Errorf("imageName() = %q, expected %q", got, "image_1")
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if !opts.ShouldRenderComposites() {
		t.Error("composites must default to enabled")
	}
	if opts.logger() == nil {
		t.Error("logger() must never return nil")
	}

	off := false
	opts.Composites = &off
	if opts.ShouldRenderComposites() {
		t.Error("composites must honor an explicit false")
	}
}
