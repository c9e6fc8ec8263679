package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"log/slog"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ymgata/xlcompose-go/pkg/xlcompose/models"
	"github.com/ymgata/xlcompose-go/pkg/xlcompose/parser"
)

// Composite flattens a base image and its overlays into an opaque JPEG.
//
// Image overlays are pasted at their raw pixel offset relative to the base
// box, respecting their own alpha channel. Shape overlays are drawn into a
// transparent layer with position and size corrected by the ratio between
// the decoded bitmap and the anchor-derived logical box, then composited
// over the accumulating result. A failing overlay is logged and skipped; the
// composite is still produced from the rest.
func Composite(plan *models.CompositePlan, logger *slog.Logger) ([]byte, error) {
	base := plan.Base
	if base.Image == nil {
		return nil, fmt.Errorf("base image %q has no decoded bitmap", base.Name)
	}

	b := base.Image.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(canvas, canvas.Bounds(), base.Image, b.Min, draw.Over)

	// Anchor math and the decoded bitmap rarely agree on dimensions; shape
	// geometry is corrected by the drift ratio.
	scaleX, scaleY := 1.0, 1.0
	if base.Box.W > 0 {
		scaleX = float64(b.Dx()) / base.Box.W
	}
	if base.Box.H > 0 {
		scaleY = float64(b.Dy()) / base.Box.H
	}

	for _, ov := range plan.ImageOverlays {
		if ov.Image == nil {
			logger.Warn("image overlay has no decoded bitmap, skipping", "overlay", ov.Name)
			continue
		}
		offX := int(math.Round(ov.Box.X - base.Box.X))
		offY := int(math.Round(ov.Box.Y - base.Box.Y))
		r := ov.Image.Bounds()
		dst := image.Rect(offX, offY, offX+r.Dx(), offY+r.Dy())
		draw.Draw(canvas, dst, ov.Image, r.Min, draw.Over)
	}

	for _, ov := range plan.ShapeOverlays {
		if err := drawShapeOverlay(canvas, base, ov, scaleX, scaleY, logger); err != nil {
			logger.Warn("shape overlay failed, skipping", "overlay", ov.Name, "error", err)
		}
	}

	var buf bytes.Buffer
	opts := &jpeg.Options{Quality: parser.CompositeJPEGQuality}
	if err := jpeg.Encode(&buf, canvas, opts); err != nil {
		return nil, fmt.Errorf("encode composite for %q: %w", base.Name, err)
	}
	return buf.Bytes(), nil
}

// drawShapeOverlay rasterizes one shape into a transparent layer and
// composites it onto the canvas.
func drawShapeOverlay(canvas *image.RGBA, base, ov *models.VisualObject, scaleX, scaleY float64, logger *slog.Logger) error {
	style := ov.Shape
	if style == nil {
		return fmt.Errorf("shape %q has no style", ov.Name)
	}

	x := (ov.Box.X - base.Box.X) * scaleX
	y := (ov.Box.Y - base.Box.Y) * scaleY
	w := ov.Box.W * scaleX
	h := ov.Box.H * scaleY
	if w <= 0 || h <= 0 {
		return fmt.Errorf("shape %q has no drawable size after scaling", ov.Name)
	}

	layer := image.NewRGBA(canvas.Bounds())

	var fill color.RGBA
	hasFill := style.Fill != nil
	if hasFill {
		fill = color.RGBA{R: style.Fill.R, G: style.Fill.G, B: style.Fill.B, A: style.Fill.Alpha}
	}

	var stroke color.RGBA
	strokeWidth := 0.0
	hasStroke := style.Outline != nil
	if hasStroke {
		stroke = color.RGBA{R: style.Outline.R, G: style.Outline.G, B: style.Outline.B, A: 255}
		strokeWidth = math.Max(1, style.Outline.WidthPoints*scaleX)
	}

	switch style.Geometry {
	case "ellipse":
		if hasFill {
			fillEllipse(layer, x, y, w, h, fill)
		}
		if hasStroke {
			strokeEllipse(layer, x, y, w, h, strokeWidth, stroke)
		}
	case "roundRect":
		radius := parser.RoundRectCornerRadius * scaleX
		if hasFill {
			fillRoundRect(layer, x, y, w, h, radius, fill)
		}
		if hasStroke {
			strokeRoundRect(layer, x, y, w, h, radius, strokeWidth, stroke)
		}
	case "triangle", "rtTriangle":
		points := []fpoint{
			{X: x + w/2, Y: y},
			{X: x, Y: y + h},
			{X: x + w, Y: y + h},
		}
		if hasFill {
			fillPolygon(layer, points, fill)
		}
		if hasStroke {
			strokePolygon(layer, points, strokeWidth, stroke)
		}
	default:
		// rect, rectangle and any unrecognized preset.
		if hasFill {
			fillRect(layer, x, y, w, h, fill)
		}
		if hasStroke {
			strokeRect(layer, x, y, w, h, strokeWidth, stroke)
		}
	}

	if style.Text != "" {
		sizePx := style.FontSizePoints * (scaleX + scaleY) / 2
		if err := drawCenteredText(layer, x, y, w, h, style.Text, sizePx); err != nil {
			logger.Warn("text rendering failed, shape kept without text",
				"overlay", ov.Name, "error", err)
		}
	}

	draw.Draw(canvas, canvas.Bounds(), layer, image.Point{}, draw.Over)
	return nil
}

// drawCenteredText measures the text and draws it in solid black, centered
// in the given box.
func drawCenteredText(layer *image.RGBA, x, y, w, h float64, text string, sizePx float64) error {
	if sizePx <= 0 {
		return fmt.Errorf("non-positive text size %.2f", sizePx)
	}

	face := loadFace(sizePx)
	defer face.Close()

	advance := font.MeasureString(face, text)
	metrics := face.Metrics()
	textHeight := metrics.Ascent + metrics.Descent

	dotX := x + (w-fixedToFloat(advance))/2
	dotY := y + (h-fixedToFloat(textHeight))/2 + fixedToFloat(metrics.Ascent)

	d := &font.Drawer{
		Dst:  layer,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  fixed.Point26_6{X: floatToFixed(dotX), Y: floatToFixed(dotY)},
	}
	d.DrawString(text)
	return nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
