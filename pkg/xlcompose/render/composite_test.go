package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"io"
	"log/slog"
	"testing"

	"github.com/ymgata/xlcompose-go/pkg/xlcompose/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func solidImage(w, h int, col color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
	return img
}

// colorNear allows for JPEG quantization error.
func colorNear(t *testing.T, got color.Color, r, g, b uint8, what string) {
	t.Helper()
	gr, gg, gb, _ := got.RGBA()
	const tolerance = 12
	diff := func(have uint32, want uint8) int {
		d := int(have>>8) - int(want)
		if d < 0 {
			d = -d
		}
		return d
	}
	if diff(gr, r) > tolerance || diff(gg, g) > tolerance || diff(gb, b) > tolerance {
		t.Errorf("%s: got (%d, %d, %d), expected near (%d, %d, %d)",
			what, gr>>8, gg>>8, gb>>8, r, g, b)
	}
}

func TestCompositeImageOverlay(t *testing.T) {
	base := &models.VisualObject{
		Kind:  models.KindImage,
		Name:  "base.png",
		Box:   models.Box{X: 0, Y: 0, W: 100, H: 100},
		Image: solidImage(100, 100, color.RGBA{255, 0, 0, 255}),
	}
	overlay := &models.VisualObject{
		Kind:  models.KindImage,
		Name:  "overlay.png",
		Box:   models.Box{X: 10, Y: 10, W: 20, H: 20},
		Image: solidImage(20, 20, color.RGBA{0, 0, 255, 255}),
	}

	plan := &models.CompositePlan{Base: base, ImageOverlays: []*models.VisualObject{overlay}}

	data, err := Composite(plan, discardLogger())
	if err != nil {
		t.Fatalf("Composite() error: %v", err)
	}

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding composite: %v", err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 100 {
		t.Fatalf("composite size = %v, expected 100x100", img.Bounds())
	}

	colorNear(t, img.At(5, 5), 255, 0, 0, "base pixel")
	colorNear(t, img.At(20, 20), 0, 0, 255, "overlay pixel")
	colorNear(t, img.At(50, 50), 255, 0, 0, "base pixel past overlay")
}

func TestCompositeShapeOverlay(t *testing.T) {
	base := &models.VisualObject{
		Kind:  models.KindImage,
		Name:  "base.png",
		Box:   models.Box{X: 0, Y: 0, W: 100, H: 100},
		Image: solidImage(100, 100, color.RGBA{255, 255, 255, 255}),
	}
	shape := &models.VisualObject{
		Kind: models.KindShape,
		Name: "rect 1",
		Box:  models.Box{X: 50, Y: 50, W: 20, H: 20},
		Shape: &models.ShapeStyle{
			Geometry:       models.GeomRect,
			Fill:           &models.FillStyle{G: 200, Alpha: 255},
			FontSizePoints: 11,
		},
	}

	plan := &models.CompositePlan{Base: base, ShapeOverlays: []*models.VisualObject{shape}}

	data, err := Composite(plan, discardLogger())
	if err != nil {
		t.Fatalf("Composite() error: %v", err)
	}

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding composite: %v", err)
	}

	colorNear(t, img.At(60, 60), 0, 200, 0, "shape interior")
	colorNear(t, img.At(10, 10), 255, 255, 255, "base outside shape")
}

func TestCompositeScalesShapeToBitmap(t *testing.T) {
	// The bitmap is twice the logical box, so the shape doubles too.
	base := &models.VisualObject{
		Kind:  models.KindImage,
		Name:  "base.png",
		Box:   models.Box{X: 0, Y: 0, W: 50, H: 50},
		Image: solidImage(100, 100, color.RGBA{255, 255, 255, 255}),
	}
	shape := &models.VisualObject{
		Kind: models.KindShape,
		Name: "rect 1",
		Box:  models.Box{X: 10, Y: 10, W: 10, H: 10},
		Shape: &models.ShapeStyle{
			Geometry:       models.GeomRect,
			Fill:           &models.FillStyle{B: 200, Alpha: 255},
			FontSizePoints: 11,
		},
	}

	plan := &models.CompositePlan{Base: base, ShapeOverlays: []*models.VisualObject{shape}}

	data, err := Composite(plan, discardLogger())
	if err != nil {
		t.Fatalf("Composite() error: %v", err)
	}

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding composite: %v", err)
	}

	// Scaled shape covers (20, 20) to (40, 40).
	colorNear(t, img.At(30, 30), 0, 0, 200, "scaled shape interior")
	colorNear(t, img.At(15, 15), 255, 255, 255, "pixel before scaled shape")
	colorNear(t, img.At(45, 45), 255, 255, 255, "pixel past scaled shape")
}

func TestCompositeNilBaseImage(t *testing.T) {
	plan := &models.CompositePlan{
		Base: &models.VisualObject{Name: "broken.png", Box: models.Box{W: 10, H: 10}},
	}
	if _, err := Composite(plan, discardLogger()); err == nil {
		t.Error("expected error for base without decoded bitmap")
	}
}

func TestCompositeSkipsBadShape(t *testing.T) {
	base := &models.VisualObject{
		Kind:  models.KindImage,
		Name:  "base.png",
		Box:   models.Box{X: 0, Y: 0, W: 40, H: 40},
		Image: solidImage(40, 40, color.RGBA{255, 0, 0, 255}),
	}
	// Shape without a style must be skipped, not abort the composite.
	shape := &models.VisualObject{
		Kind: models.KindShape,
		Name: "broken shape",
		Box:  models.Box{X: 5, Y: 5, W: 10, H: 10},
	}

	plan := &models.CompositePlan{Base: base, ShapeOverlays: []*models.VisualObject{shape}}

	data, err := Composite(plan, discardLogger())
	if err != nil {
		t.Fatalf("Composite() error: %v", err)
	}

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding composite: %v", err)
	}
	colorNear(t, img.At(10, 10), 255, 0, 0, "base untouched by skipped shape")
}
