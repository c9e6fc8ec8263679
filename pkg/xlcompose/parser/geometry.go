package parser

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// SheetGeometry is the per-sheet lookup of configured column widths and row
// heights. Widths are stored in character units, heights in points; both are
// sparse and fall back to the spreadsheet defaults when a cell index has no
// entry.
type SheetGeometry struct {
	colWidths  map[int]float64 // 1-indexed column -> width in character units
	rowHeights map[int]float64 // 1-indexed row -> height in points
}

// NewSheetGeometry returns an empty geometry where every lookup yields the
// default width/height.
func NewSheetGeometry() *SheetGeometry {
	return &SheetGeometry{
		colWidths:  make(map[int]float64),
		rowHeights: make(map[int]float64),
	}
}

// SetColWidth records a configured column width in character units.
func (g *SheetGeometry) SetColWidth(col int, chars float64) {
	g.colWidths[col] = chars
}

// SetRowHeight records a configured row height in points.
func (g *SheetGeometry) SetRowHeight(row int, points float64) {
	g.rowHeights[row] = points
}

// ColWidthPixels returns the rendered width of a column in pixels.
func (g *SheetGeometry) ColWidthPixels(col int) float64 {
	if w, ok := g.colWidths[col]; ok {
		return w * PixelsPerChar
	}
	return DefaultColWidthChars * PixelsPerChar
}

// RowHeightPixels returns the rendered height of a row in pixels.
func (g *SheetGeometry) RowHeightPixels(row int) float64 {
	if h, ok := g.rowHeights[row]; ok {
		return h * PixelsPerPoint
	}
	return DefaultRowHeightPoints * PixelsPerPoint
}

// CellOriginPixels returns the absolute pixel position of the top-left corner
// of a cell. Row and col are 1-indexed; the origin is the sum of all column
// widths strictly left of col and all row heights strictly above row.
func (g *SheetGeometry) CellOriginPixels(row, col int) (x, y float64) {
	for c := 1; c < col; c++ {
		x += g.ColWidthPixels(c)
	}
	for r := 1; r < row; r++ {
		y += g.RowHeightPixels(r)
	}
	return x, y
}

// SheetGeometry parses the worksheet part of the named sheet and returns its
// column/row size tables. Sheets without explicit dimensions yield an empty
// geometry, which resolves everything to defaults.
func (p *Package) SheetGeometry(sheetName string) (*SheetGeometry, error) {
	partPath, ok := p.sheetParts[sheetName]
	if !ok {
		return nil, fmt.Errorf("no worksheet part for sheet %q", sheetName)
	}

	data, err := readZipFile(&p.r.Reader, partPath)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("worksheet part %s missing", partPath)
	}

	return parseSheetGeometry(data)
}

// parseSheetGeometry scans a worksheet XML part for <col> and <row> size
// attributes, skipping cell content.
func parseSheetGeometry(data []byte) (*SheetGeometry, error) {
	g := NewSheetGeometry()
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}

		switch se.Name.Local {
		case "col":
			minCol, maxCol := 0, 0
			width := 0.0
			hasWidth := false
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "min":
					minCol, _ = strconv.Atoi(attr.Value)
				case "max":
					maxCol, _ = strconv.Atoi(attr.Value)
				case "width":
					if w, err := strconv.ParseFloat(attr.Value, 64); err == nil {
						width = w
						hasWidth = true
					}
				}
			}
			if hasWidth && minCol > 0 && maxCol >= minCol {
				for c := minCol; c <= maxCol; c++ {
					g.SetColWidth(c, width)
				}
			}
		case "row":
			rowNum := 0
			height := 0.0
			hasHeight := false
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "r":
					rowNum, _ = strconv.Atoi(attr.Value)
				case "ht":
					if h, err := strconv.ParseFloat(attr.Value, 64); err == nil {
						height = h
						hasHeight = true
					}
				}
			}
			if hasHeight && rowNum > 0 {
				g.SetRowHeight(rowNum, height)
			}
			// Cells inside the row carry no geometry.
			skipElement(decoder)
		}
	}

	return g, nil
}
