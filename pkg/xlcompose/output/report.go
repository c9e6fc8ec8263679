// Package output serializes extraction results for reporting.
package output

import (
	"encoding/json"

	"github.com/ymgata/xlcompose-go/pkg/xlcompose/models"
)

// ObjectReport is the position record of one extracted object.
type ObjectReport struct {
	// Sheet is the sheet name.
	Sheet string `json:"sheet"`
	// Name is the object name.
	Name string `json:"name"`
	// Kind is "image" or "shape".
	Kind string `json:"kind"`
	// TopLeft is the A1-style top-left cell, empty if unresolved.
	TopLeft string `json:"top_left,omitempty"`
	// BottomRight is the A1-style bottom-right cell, empty if unresolved.
	BottomRight string `json:"bottom_right,omitempty"`
	// X, Y are the absolute position in pixels.
	X float64 `json:"x"`
	Y float64 `json:"y"`
	// W, H are the size in pixels, zero if unresolved.
	W float64 `json:"w"`
	H float64 `json:"h"`
	// Text is the shape text, if any.
	Text string `json:"text,omitempty"`
}

// Report is the workbook-level position report.
type Report struct {
	// BookName is the workbook file name.
	BookName string `json:"book_name"`
	// Objects lists every extracted object in processing order.
	Objects []ObjectReport `json:"objects"`
}

// BuildReport flattens a workbook result into a position report.
func BuildReport(wb *models.WorkbookResult) Report {
	report := Report{BookName: wb.BookName}

	for _, sheet := range wb.Sheets {
		for _, obj := range sheet.Shapes {
			report.Objects = append(report.Objects, objectReport(sheet.Name, obj))
		}
		for _, obj := range sheet.Images {
			report.Objects = append(report.Objects, objectReport(sheet.Name, obj))
		}
	}

	return report
}

func objectReport(sheetName string, obj *models.VisualObject) ObjectReport {
	r := ObjectReport{
		Sheet:       sheetName,
		Name:        obj.Name,
		Kind:        obj.Kind,
		TopLeft:     obj.Range.TopLeft,
		BottomRight: obj.Range.BottomRight,
		X:           obj.Box.X,
		Y:           obj.Box.Y,
		W:           obj.Box.W,
		H:           obj.Box.H,
	}
	if obj.Shape != nil {
		r.Text = obj.Shape.Text
	}
	return r
}

// ToJSON serializes a report, optionally indented.
func ToJSON(r Report, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(r, "", "  ")
	}
	return json.Marshal(r)
}
