package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"github.com/ymgata/xlcompose-go/pkg/xlcompose/models"
)

// ResolveAnchor converts a raw cell anchor into an absolute pixel bounding
// box and the A1-style cell range it covers, using the sheet's column/row
// size tables.
//
// Two-cell anchors resolve both corners independently; the resulting width
// and height are the raw corner difference and may be negative for malformed
// anchors (downstream treats non-positive sizes as unresolved). One-cell
// anchors walk the size tables from the start cell until the extent is
// consumed. Legacy string anchors carry no size at all.
func ResolveAnchor(a models.CellAnchor, g *SheetGeometry) (models.Box, models.CellRange, error) {
	switch anchor := a.(type) {
	case models.TwoCellAnchor:
		return resolveTwoCell(anchor, g)
	case models.OneCellAnchor:
		return resolveOneCell(anchor, g)
	case models.LegacyCellAnchor:
		return resolveLegacy(anchor, g)
	case nil:
		return models.Box{}, models.CellRange{}, fmt.Errorf("nil anchor")
	default:
		return models.Box{}, models.CellRange{}, fmt.Errorf("unsupported anchor kind %T", a)
	}
}

// markOriginPixels returns the absolute pixel position of an anchor corner:
// the cell origin plus the sub-cell EMU offset.
func markOriginPixels(m models.CellMark, g *SheetGeometry) (x, y float64) {
	x, y = g.CellOriginPixels(m.Row+1, m.Col+1)
	x += EMUToPixelsF(m.ColOffEMU)
	y += EMUToPixelsF(m.RowOffEMU)
	return x, y
}

func resolveTwoCell(a models.TwoCellAnchor, g *SheetGeometry) (models.Box, models.CellRange, error) {
	fromX, fromY := markOriginPixels(a.From, g)
	toX, toY := markOriginPixels(a.To, g)

	topLeft, err := excelize.CoordinatesToCellName(a.From.Col+1, a.From.Row+1)
	if err != nil {
		return models.Box{}, models.CellRange{}, fmt.Errorf("from cell: %w", err)
	}
	bottomRight, err := excelize.CoordinatesToCellName(a.To.Col+1, a.To.Row+1)
	if err != nil {
		return models.Box{}, models.CellRange{}, fmt.Errorf("to cell: %w", err)
	}

	box := models.Box{X: fromX, Y: fromY, W: toX - fromX, H: toY - fromY}
	return box, models.CellRange{TopLeft: topLeft, BottomRight: bottomRight}, nil
}

func resolveOneCell(a models.OneCellAnchor, g *SheetGeometry) (models.Box, models.CellRange, error) {
	x, y := markOriginPixels(a.From, g)
	width := EMUToPixelsF(a.ExtentCX)
	height := EMUToPixelsF(a.ExtentCY)

	topLeft, err := excelize.CoordinatesToCellName(a.From.Col+1, a.From.Row+1)
	if err != nil {
		return models.Box{}, models.CellRange{}, fmt.Errorf("from cell: %w", err)
	}

	box := models.Box{X: x, Y: y, W: width, H: height}
	rng := models.CellRange{TopLeft: topLeft}

	if width > 0 && height > 0 {
		endCol, _ := consumeExtent(a.From.Col+1, EMUToPixelsF(a.From.ColOffEMU)+width, g.ColWidthPixels)
		endRow, _ := consumeExtent(a.From.Row+1, EMUToPixelsF(a.From.RowOffEMU)+height, g.RowHeightPixels)

		bottomRight, err := excelize.CoordinatesToCellName(endCol, endRow)
		if err != nil {
			return models.Box{}, models.CellRange{}, fmt.Errorf("bottom-right cell: %w", err)
		}
		rng.BottomRight = bottomRight
	}

	return box, rng, nil
}

// maxCellWalk bounds the grow-and-consume walk. Excel sheets cannot exceed
// 1048576 rows, so a longer walk means zero-sized cells are not absorbing
// the extent.
const maxCellWalk = 1048576

// consumeExtent walks the size table from a start index, consuming whole
// cells until the remaining span no longer covers the next one. An extent
// ending exactly on a cell boundary lands on the following cell with zero
// remainder.
func consumeExtent(start int, span float64, sizeOf func(int) float64) (end int, remainder float64) {
	end = start
	remainder = span
	for remainder > 0 && end-start < maxCellWalk {
		size := sizeOf(end)
		if remainder < size {
			break
		}
		remainder -= size
		end++
	}
	return end, remainder
}

func resolveLegacy(a models.LegacyCellAnchor, g *SheetGeometry) (models.Box, models.CellRange, error) {
	col, row, err := excelize.CellNameToCoordinates(a.Ref)
	if err != nil {
		return models.Box{}, models.CellRange{}, fmt.Errorf("legacy cell reference %q: %w", a.Ref, err)
	}

	x, y := g.CellOriginPixels(row, col)
	box := models.Box{X: x, Y: y}
	return box, models.CellRange{TopLeft: a.Ref, BottomRight: a.Ref}, nil
}
