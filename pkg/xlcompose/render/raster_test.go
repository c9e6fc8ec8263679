package render

import (
	"image"
	"image/color"
	"testing"
)

func newLayer(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
)

func TestFillRect(t *testing.T) {
	img := newLayer(10, 10)
	fillRect(img, 2, 2, 4, 4, red)

	set := []image.Point{{2, 2}, {3, 3}, {5, 5}}
	for _, p := range set {
		if img.RGBAAt(p.X, p.Y) != red {
			t.Errorf("pixel %v not filled", p)
		}
	}

	unset := []image.Point{{0, 0}, {1, 1}, {7, 7}, {9, 9}}
	for _, p := range unset {
		if img.RGBAAt(p.X, p.Y).A != 0 {
			t.Errorf("pixel %v filled outside rect", p)
		}
	}
}

func TestFillEllipse(t *testing.T) {
	img := newLayer(10, 10)
	fillEllipse(img, 0, 0, 10, 10, green)

	if img.RGBAAt(5, 5) != green {
		t.Error("ellipse center not filled")
	}
	// Corners of the bounding box lie outside the inscribed ellipse.
	for _, p := range []image.Point{{0, 0}, {9, 0}, {0, 9}, {9, 9}} {
		if img.RGBAAt(p.X, p.Y).A != 0 {
			t.Errorf("corner %v filled", p)
		}
	}
}

func TestFillPolygonTriangle(t *testing.T) {
	img := newLayer(20, 20)
	points := []fpoint{{10, 0}, {0, 20}, {20, 20}}
	fillPolygon(img, points, red)

	if img.RGBAAt(10, 10) != red {
		t.Error("triangle interior not filled")
	}
	if img.RGBAAt(10, 18) != red {
		t.Error("triangle base not filled")
	}
	// Top corners are outside the triangle.
	if img.RGBAAt(0, 0).A != 0 || img.RGBAAt(19, 0).A != 0 {
		t.Error("pixels outside triangle filled")
	}
}

func TestStrokeRectLeavesInteriorEmpty(t *testing.T) {
	img := newLayer(20, 20)
	strokeRect(img, 4, 4, 12, 12, 2, red)

	if img.RGBAAt(10, 10).A != 0 {
		t.Error("stroke filled the rectangle interior")
	}
	if img.RGBAAt(4, 10).A == 0 {
		t.Error("stroke missing on left edge")
	}
	if img.RGBAAt(10, 4).A == 0 {
		t.Error("stroke missing on top edge")
	}
}

func TestBlendPixelAlpha(t *testing.T) {
	img := newLayer(1, 1)
	img.SetRGBA(0, 0, color.RGBA{255, 255, 255, 255})

	blendPixel(img, 0, 0, color.RGBA{R: 255, A: 127})

	got := img.RGBAAt(0, 0)
	if got.R != 255 || got.G != 128 || got.B != 128 || got.A != 255 {
		t.Errorf("blended pixel = %+v, expected {255 128 128 255}", got)
	}
}

func TestBlendPixelOpaqueReplaces(t *testing.T) {
	img := newLayer(1, 1)
	img.SetRGBA(0, 0, color.RGBA{255, 255, 255, 255})

	blendPixel(img, 0, 0, red)

	if img.RGBAAt(0, 0) != red {
		t.Error("opaque blend must replace the pixel")
	}
}

func TestBlendPixelOutOfBounds(t *testing.T) {
	img := newLayer(2, 2)
	// Must not panic.
	blendPixel(img, -1, 0, red)
	blendPixel(img, 5, 5, red)
}

func TestInsideRoundRect(t *testing.T) {
	tests := []struct {
		name     string
		px, py   float64
		expected bool
	}{
		{"center", 10, 10, true},
		{"edge midpoint", 0.5, 10, true},
		{"corner cut off", 0.2, 0.2, false},
		{"outside", 25, 10, false},
		{"near corner arc", 5, 5, true},
	}

	for _, tt := range tests {
		if got := insideRoundRect(tt.px, tt.py, 0, 0, 20, 20, 5); got != tt.expected {
			t.Errorf("%s: insideRoundRect(%v, %v) = %v, expected %v",
				tt.name, tt.px, tt.py, got, tt.expected)
		}
	}
}
