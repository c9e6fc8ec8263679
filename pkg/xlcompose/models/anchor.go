// Package models defines the data types shared across extraction,
// classification and rendering.
package models

// CellMark is one corner of a drawing anchor: a 0-indexed cell plus a
// sub-cell offset in EMU, exactly as stored in the drawing XML.
type CellMark struct {
	// Row is the 0-indexed row of the cell.
	Row int
	// Col is the 0-indexed column of the cell.
	Col int
	// ColOffEMU is the horizontal offset into the cell, in EMU.
	ColOffEMU int64
	// RowOffEMU is the vertical offset into the cell, in EMU.
	RowOffEMU int64
}

// CellAnchor is the positioning descriptor attaching a drawing object to
// sheet cells. Exactly three kinds exist: TwoCellAnchor, OneCellAnchor and
// LegacyCellAnchor. Resolution is an exhaustive type switch over these.
type CellAnchor interface {
	anchorKind() string
}

// TwoCellAnchor pins both the top-left and bottom-right corners to cells.
type TwoCellAnchor struct {
	From CellMark
	To   CellMark
}

// OneCellAnchor pins the top-left corner to a cell and carries an explicit
// extent in EMU.
type OneCellAnchor struct {
	From CellMark
	// ExtentCX is the object width in EMU.
	ExtentCX int64
	// ExtentCY is the object height in EMU.
	ExtentCY int64
}

// LegacyCellAnchor is a bare A1-style cell reference. No size information is
// recoverable from it.
type LegacyCellAnchor struct {
	Ref string
}

func (TwoCellAnchor) anchorKind() string    { return "twoCell" }
func (OneCellAnchor) anchorKind() string    { return "oneCell" }
func (LegacyCellAnchor) anchorKind() string { return "legacy" }

// CellRange is the resolved cell coverage of an anchor, 1-indexed.
type CellRange struct {
	// TopLeft is the A1-style reference of the top-left cell, empty if the
	// anchor could not be resolved.
	TopLeft string
	// BottomRight is the A1-style reference of the bottom-right cell, empty
	// if unknown.
	BottomRight string
}

// Resolved reports whether both corners of the range are known.
func (r CellRange) Resolved() bool {
	return r.TopLeft != "" && r.BottomRight != ""
}
