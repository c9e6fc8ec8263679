package models

// CompositePlan pairs a base image with the overlays detected on top of it.
// Plans are produced per sheet by the classifier and consumed immediately by
// the renderer; they are not retained.
type CompositePlan struct {
	// Base is the image the overlays sit on.
	Base *VisualObject
	// ImageOverlays are overlaying images in insertion order.
	ImageOverlays []*VisualObject
	// ShapeOverlays are overlaying shapes in insertion order.
	ShapeOverlays []*VisualObject
}

// HasOverlays reports whether the plan carries at least one overlay.
func (p *CompositePlan) HasOverlays() bool {
	return len(p.ImageOverlays) > 0 || len(p.ShapeOverlays) > 0
}

// Artifact is a named output file produced by the pipeline.
type Artifact struct {
	// Name is the file name, without directory.
	Name string
	// Data is the encoded file content.
	Data []byte
}

// SheetResult holds everything extracted from a single sheet.
type SheetResult struct {
	// Name is the sheet name.
	Name string
	// Images are the extracted image objects in drawing order.
	Images []*VisualObject
	// Shapes are the extracted shape objects in drawing order.
	Shapes []*VisualObject
	// ImageFiles are the per-image output files.
	ImageFiles []Artifact
	// Composites are the flattened overlay renders, one per base image that
	// had overlays.
	Composites []Artifact
}

// WorkbookResult is the workbook-level container returned by Extract.
type WorkbookResult struct {
	// BookName is the workbook file name, without path.
	BookName string
	// Sheets are the per-sheet results in document order.
	Sheets []SheetResult
}
