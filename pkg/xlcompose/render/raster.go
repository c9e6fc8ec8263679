package render

import (
	"image"
	"image/color"
	"math"
)

// fpoint is a point in fractional pixel coordinates.
type fpoint struct {
	X, Y float64
}

// blendPixel alpha-blends a color over the existing pixel.
func blendPixel(img *image.RGBA, x, y int, col color.RGBA) {
	if !(image.Pt(x, y).In(img.Bounds())) {
		return
	}
	if col.A == 255 {
		img.SetRGBA(x, y, col)
		return
	}

	existing := img.RGBAAt(x, y)
	alpha := float64(col.A) / 255
	invAlpha := 1 - alpha

	blended := color.RGBA{
		R: uint8(float64(col.R)*alpha + float64(existing.R)*invAlpha),
		G: uint8(float64(col.G)*alpha + float64(existing.G)*invAlpha),
		B: uint8(float64(col.B)*alpha + float64(existing.B)*invAlpha),
		A: uint8(math.Min(255, float64(col.A)+float64(existing.A)*invAlpha)),
	}
	img.SetRGBA(x, y, blended)
}

// fillRegion blends col into every pixel of the bounding box whose center
// satisfies the inside predicate.
func fillRegion(img *image.RGBA, x0, y0, x1, y1 float64, col color.RGBA, inside func(x, y float64) bool) {
	for y := int(math.Floor(y0)); y <= int(math.Ceil(y1)); y++ {
		for x := int(math.Floor(x0)); x <= int(math.Ceil(x1)); x++ {
			cx := float64(x) + 0.5
			cy := float64(y) + 0.5
			if inside(cx, cy) {
				blendPixel(img, x, y, col)
			}
		}
	}
}

// fillRect fills an axis-aligned rectangle.
func fillRect(img *image.RGBA, x, y, w, h float64, col color.RGBA) {
	fillRegion(img, x, y, x+w, y+h, col, func(px, py float64) bool {
		return px >= x && px <= x+w && py >= y && py <= y+h
	})
}

// strokeRect draws a rectangle outline of the given stroke width, centered
// on the rectangle edges.
func strokeRect(img *image.RGBA, x, y, w, h, stroke float64, col color.RGBA) {
	half := stroke / 2
	inRect := func(px, py, rx, ry, rw, rh float64) bool {
		return px >= rx && px <= rx+rw && py >= ry && py <= ry+rh
	}
	fillRegion(img, x-half, y-half, x+w+half, y+h+half, col, func(px, py float64) bool {
		outer := inRect(px, py, x-half, y-half, w+stroke, h+stroke)
		inner := inRect(px, py, x+half, y+half, w-stroke, h-stroke)
		return outer && !inner
	})
}

// insideEllipse reports whether a point lies in the ellipse inscribed in the
// box (x, y, w, h).
func insideEllipse(px, py, x, y, w, h float64) bool {
	rx := w / 2
	ry := h / 2
	if rx <= 0 || ry <= 0 {
		return false
	}
	dx := (px - (x + rx)) / rx
	dy := (py - (y + ry)) / ry
	return dx*dx+dy*dy <= 1
}

// fillEllipse fills the ellipse inscribed in the box.
func fillEllipse(img *image.RGBA, x, y, w, h float64, col color.RGBA) {
	fillRegion(img, x, y, x+w, y+h, col, func(px, py float64) bool {
		return insideEllipse(px, py, x, y, w, h)
	})
}

// strokeEllipse draws the ellipse outline as the band between the inscribed
// ellipse and the same ellipse shrunk by the stroke width.
func strokeEllipse(img *image.RGBA, x, y, w, h, stroke float64, col color.RGBA) {
	fillRegion(img, x, y, x+w, y+h, col, func(px, py float64) bool {
		if !insideEllipse(px, py, x, y, w, h) {
			return false
		}
		return !insideEllipse(px, py, x+stroke, y+stroke, w-2*stroke, h-2*stroke)
	})
}

// insideRoundRect reports whether a point lies in the rounded rectangle with
// the given corner radius.
func insideRoundRect(px, py, x, y, w, h, radius float64) bool {
	if px < x || px > x+w || py < y || py > y+h {
		return false
	}
	r := math.Min(radius, math.Min(w/2, h/2))
	cx := math.Max(x+r, math.Min(px, x+w-r))
	cy := math.Max(y+r, math.Min(py, y+h-r))
	dx := px - cx
	dy := py - cy
	return dx*dx+dy*dy <= r*r
}

// fillRoundRect fills a rounded rectangle.
func fillRoundRect(img *image.RGBA, x, y, w, h, radius float64, col color.RGBA) {
	fillRegion(img, x, y, x+w, y+h, col, func(px, py float64) bool {
		return insideRoundRect(px, py, x, y, w, h, radius)
	})
}

// strokeRoundRect draws a rounded rectangle outline.
func strokeRoundRect(img *image.RGBA, x, y, w, h, radius, stroke float64, col color.RGBA) {
	fillRegion(img, x, y, x+w, y+h, col, func(px, py float64) bool {
		if !insideRoundRect(px, py, x, y, w, h, radius) {
			return false
		}
		inner := math.Max(0, radius-stroke)
		return !insideRoundRect(px, py, x+stroke, y+stroke, w-2*stroke, h-2*stroke, inner)
	})
}

// fillPolygon scanline-fills a polygon.
func fillPolygon(img *image.RGBA, points []fpoint, col color.RGBA) {
	if len(points) < 3 {
		return
	}

	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scan := float64(y) + 0.5

		var xs []float64
		for i := 0; i < len(points); i++ {
			p1 := points[i]
			p2 := points[(i+1)%len(points)]
			if (p1.Y <= scan && p2.Y > scan) || (p2.Y <= scan && p1.Y > scan) {
				t := (scan - p1.Y) / (p2.Y - p1.Y)
				xs = append(xs, p1.X+t*(p2.X-p1.X))
			}
		}

		for i := 0; i < len(xs)-1; i++ {
			for j := i + 1; j < len(xs); j++ {
				if xs[j] < xs[i] {
					xs[i], xs[j] = xs[j], xs[i]
				}
			}
		}

		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(xs[i]); float64(x) <= xs[i+1]; x++ {
				blendPixel(img, x, y, col)
			}
		}
	}
}

// strokePolygon draws each polygon edge as a filled quad of the stroke width.
func strokePolygon(img *image.RGBA, points []fpoint, stroke float64, col color.RGBA) {
	for i := 0; i < len(points); i++ {
		drawLine(img, points[i], points[(i+1)%len(points)], stroke/2, col)
	}
}

// drawLine draws a line segment as a filled quad of the given half width.
func drawLine(img *image.RGBA, p1, p2 fpoint, halfWidth float64, col color.RGBA) {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return
	}

	dx /= length
	dy /= length

	px := -dy * halfWidth
	py := dx * halfWidth

	quad := []fpoint{
		{p1.X + px, p1.Y + py},
		{p1.X - px, p1.Y - py},
		{p2.X - px, p2.Y - py},
		{p2.X + px, p2.Y + py},
	}

	fillPolygon(img, quad, col)
}
