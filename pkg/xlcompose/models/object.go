package models

import "image"

// Box is an axis-aligned bounding box in absolute sheet pixels.
type Box struct {
	// X is the left edge in pixels.
	X float64
	// Y is the top edge in pixels.
	Y float64
	// W is the width in pixels. Zero or negative means unresolved.
	W float64
	// H is the height in pixels. Zero or negative means unresolved.
	H float64
}

// Positive reports whether the box has a usable (strictly positive) size.
func (b Box) Positive() bool {
	return b.W > 0 && b.H > 0
}

// Area returns W*H. Only meaningful for positive boxes.
func (b Box) Area() float64 {
	return b.W * b.H
}

// Overlaps reports whether b and o share interior area. Boxes that merely
// touch along an edge do not overlap.
func (b Box) Overlaps(o Box) bool {
	if b.X+b.W <= o.X || o.X+o.W <= b.X {
		return false
	}
	if b.Y+b.H <= o.Y || o.Y+o.H <= b.Y {
		return false
	}
	return true
}

// Contains reports whether o lies entirely within b, edges inclusive.
func (b Box) Contains(o Box) bool {
	return o.X >= b.X && o.Y >= b.Y &&
		o.X+o.W <= b.X+b.W && o.Y+o.H <= b.Y+b.H
}

// Object kinds.
const (
	KindImage = "image"
	KindShape = "shape"
)

// Preset geometry names handled by the renderer. Anything else falls back to
// a plain rectangle.
const (
	GeomRect      = "rect"
	GeomEllipse   = "ellipse"
	GeomRoundRect = "roundRect"
	GeomTriangle  = "triangle"
)

// FillStyle is a solid shape fill.
type FillStyle struct {
	// R, G, B are the fill color channels.
	R, G, B uint8
	// Alpha is the fill opacity, 0..255.
	Alpha uint8
}

// OutlineStyle is a shape outline.
type OutlineStyle struct {
	// R, G, B are the outline color channels.
	R, G, B uint8
	// WidthPoints is the stroke width in points.
	WidthPoints float64
}

// ShapeStyle carries the drawable styling of a shape object.
type ShapeStyle struct {
	// Geometry is the preset geometry name (rect, ellipse, roundRect,
	// triangle, ...). Defaults to rect when the drawing omits it.
	Geometry string
	// Fill is the solid fill, nil for no fill.
	Fill *FillStyle
	// Outline is the stroke, nil for no outline.
	Outline *OutlineStyle
	// Text is the space-joined content of all text runs, empty if none.
	Text string
	// FontSizePoints is the resolved text size in points.
	FontSizePoints float64
}

// VisualObject is the normalized unit consumed by the overlap classifier and
// the composite renderer. It is created once during extraction and read-only
// afterwards.
type VisualObject struct {
	// Kind is KindImage or KindShape.
	Kind string
	// Name is the object name from the drawing, or a generated one.
	Name string
	// Box is the resolved absolute pixel bounding box.
	Box Box
	// Range is the covered cell range, when resolvable.
	Range CellRange
	// Image is the decoded bitmap for images, nil for shapes or when the
	// bytes could not be decoded.
	Image image.Image
	// Data is the raw embedded bytes for images.
	Data []byte
	// Shape is the styling for shapes, nil for images.
	Shape *ShapeStyle
}
