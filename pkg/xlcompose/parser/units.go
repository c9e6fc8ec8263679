// Package parser reads workbook geometry and drawing parts from xlsx files.
package parser

import "math"

// EMUPerPixel is the number of EMUs (English Metric Units) per pixel at 96 DPI.
// 1 inch = 914400 EMU, 1 inch = 96 pixels at 96 DPI
// Therefore: 914400 / 96 = 9525 EMU per pixel
const EMUPerPixel = 9525

// EMUPerPoint is the number of EMUs per typographic point (914400 / 72).
// Line widths in DrawingML are stored in EMU and reported in points.
const EMUPerPoint = 12700

// Column widths are stored in character units, row heights in points.
// Excel renders them at a fixed ratio at 96 DPI.
const (
	// DefaultColWidthChars is the column width assumed when a sheet does not
	// configure one, in character units.
	DefaultColWidthChars = 8.43
	// PixelsPerChar converts character-unit column widths to pixels.
	PixelsPerChar = 7.0
	// DefaultRowHeightPoints is the row height assumed when a sheet does not
	// configure one, in points.
	DefaultRowHeightPoints = 15.0
	// PixelsPerPoint converts point row heights to pixels.
	PixelsPerPoint = 1.33
)

// Rendering tunables. These are fixed by the output contract, not
// configurable at runtime.
const (
	// DefaultFontSizePoints is the text size used when a shape resolves no
	// explicit run or paragraph size.
	DefaultFontSizePoints = 11.0
	// DefaultOutlineWidthPoints is the stroke width used when an outline
	// omits its width attribute.
	DefaultOutlineWidthPoints = 1.0
	// CompositeJPEGQuality is the encoder quality for flattened composites.
	CompositeJPEGQuality = 95
	// RoundRectCornerRadius is the corner radius of rounded rectangles in
	// logical pixels, before scale correction.
	RoundRectCornerRadius = 10.0
)

// EMUToPixels converts EMU to whole pixels at 96 DPI.
func EMUToPixels(emu int64) int {
	return int(emu / EMUPerPixel)
}

// EMUToPixelsF converts EMU to fractional pixels at 96 DPI. Zero EMU maps to
// zero pixels.
func EMUToPixelsF(emu int64) float64 {
	if emu == 0 {
		return 0
	}
	return float64(emu) / EMUPerPixel
}

// PixelsToEMU is the inverse of EMUToPixelsF.
func PixelsToEMU(px float64) int64 {
	return int64(math.Round(px * EMUPerPixel))
}

// EMUToPoints converts EMU line widths to points.
func EMUToPoints(emu int64) float64 {
	return float64(emu) / EMUPerPoint
}
