package parser

import (
	"math"
	"testing"
)

func TestColWidthPixelsDefaults(t *testing.T) {
	g := NewSheetGeometry()
	g.SetColWidth(2, 10)

	tests := []struct {
		col      int
		expected float64
	}{
		{1, 8.43 * 7.0},
		{2, 70},
		{3, 8.43 * 7.0},
	}

	for _, tt := range tests {
		if got := g.ColWidthPixels(tt.col); math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("ColWidthPixels(%d) = %v, expected %v", tt.col, got, tt.expected)
		}
	}
}

func TestRowHeightPixelsDefaults(t *testing.T) {
	g := NewSheetGeometry()
	g.SetRowHeight(3, 30)

	tests := []struct {
		row      int
		expected float64
	}{
		{1, 15 * 1.33},
		{3, 30 * 1.33},
		{100, 15 * 1.33},
	}

	for _, tt := range tests {
		if got := g.RowHeightPixels(tt.row); math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("RowHeightPixels(%d) = %v, expected %v", tt.row, got, tt.expected)
		}
	}
}

func TestCellOriginPixels(t *testing.T) {
	g := NewSheetGeometry()

	x, y := g.CellOriginPixels(1, 1)
	if x != 0 || y != 0 {
		t.Errorf("CellOriginPixels(1, 1) = (%v, %v), expected (0, 0)", x, y)
	}

	x, y = g.CellOriginPixels(3, 3)
	wantX := 2 * 8.43 * 7.0
	wantY := 2 * 15 * 1.33
	if math.Abs(x-wantX) > 1e-9 || math.Abs(y-wantY) > 1e-9 {
		t.Errorf("CellOriginPixels(3, 3) = (%v, %v), expected (%v, %v)", x, y, wantX, wantY)
	}
}

func TestCellOriginMonotonic(t *testing.T) {
	g := NewSheetGeometry()
	g.SetColWidth(3, 0.5)
	g.SetRowHeight(2, 1)

	prevX, prevY := 0.0, 0.0
	for i := 1; i <= 20; i++ {
		x, y := g.CellOriginPixels(i, i)
		if x < prevX {
			t.Errorf("column origin not monotonic at %d: %v < %v", i, x, prevX)
		}
		if y < prevY {
			t.Errorf("row origin not monotonic at %d: %v < %v", i, y, prevY)
		}
		prevX, prevY = x, y
	}
}

func TestParseSheetGeometry(t *testing.T) {
	data := []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <cols>
    <col min="1" max="2" width="10" customWidth="1"/>
    <col min="5" max="5" width="20.5" customWidth="1"/>
  </cols>
  <sheetData>
    <row r="1" ht="30" customHeight="1"><c r="A1"><v>1</v></c></row>
    <row r="2"><c r="A2"><v>2</v></c></row>
    <row r="4" ht="7.5" customHeight="1"/>
  </sheetData>
</worksheet>`)

	g, err := parseSheetGeometry(data)
	if err != nil {
		t.Fatalf("parseSheetGeometry returned error: %v", err)
	}

	colTests := []struct {
		col      int
		expected float64
	}{
		{1, 70},
		{2, 70},
		{3, 8.43 * 7.0},
		{5, 20.5 * 7.0},
	}
	for _, tt := range colTests {
		if got := g.ColWidthPixels(tt.col); math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("ColWidthPixels(%d) = %v, expected %v", tt.col, got, tt.expected)
		}
	}

	rowTests := []struct {
		row      int
		expected float64
	}{
		{1, 30 * 1.33},
		{2, 15 * 1.33},
		{4, 7.5 * 1.33},
	}
	for _, tt := range rowTests {
		if got := g.RowHeightPixels(tt.row); math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("RowHeightPixels(%d) = %v, expected %v", tt.row, got, tt.expected)
		}
	}
}
