package xlcompose

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/xuri/excelize/v2"

	"github.com/ymgata/xlcompose-go/pkg/xlcompose/models"
	"github.com/ymgata/xlcompose-go/pkg/xlcompose/overlay"
	"github.com/ymgata/xlcompose-go/pkg/xlcompose/parser"
	"github.com/ymgata/xlcompose-go/pkg/xlcompose/render"
)

// Extract pulls every embedded image and drawn shape out of an xlsx file,
// resolves their positions, and renders composites for images that have
// overlays. Only a workbook that cannot be opened at all is fatal; all
// per-object failures degrade locally and are logged.
func Extract(path string, opts Options) (*models.WorkbookResult, error) {
	log := opts.logger()

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	pkg, err := parser.OpenPackage(path)
	if err != nil {
		return nil, err
	}
	defer pkg.Close()

	result := &models.WorkbookResult{BookName: filepath.Base(path)}
	for _, sheetName := range f.GetSheetList() {
		result.Sheets = append(result.Sheets, extractSheet(pkg, sheetName, opts, log))
	}

	return result, nil
}

// extractSheet runs the full per-sheet pipeline: geometry, drawing parse,
// anchor resolution, image decode, overlap classification and composite
// rendering.
func extractSheet(pkg *parser.Package, sheetName string, opts Options, log *slog.Logger) models.SheetResult {
	sheet := models.SheetResult{Name: sheetName}

	geom, err := pkg.SheetGeometry(sheetName)
	if err != nil {
		log.Warn("sheet geometry unavailable, using defaults", "sheet", sheetName, "error", err)
		geom = parser.NewSheetGeometry()
	}

	drawing, err := pkg.SheetDrawing(sheetName)
	if err != nil {
		log.Warn("drawing parse failed, sheet treated as empty",
			"error", &DrawingError{SheetName: sheetName, Err: err})
		drawing = &parser.SheetDrawing{}
	}

	// All shapes and images are resolved before any classification; the
	// classifier needs the sheet's complete object set.
	for i, rec := range drawing.Shapes {
		style := rec.Style
		obj := &models.VisualObject{
			Kind:  models.KindShape,
			Name:  shapeName(rec.Name, i),
			Shape: &style,
		}
		obj.Box, obj.Range = resolveOrDegrade(rec.Anchor, geom, sheetName, obj.Name, log)
		sheet.Shapes = append(sheet.Shapes, obj)
	}

	for i, rec := range drawing.Pictures {
		obj := &models.VisualObject{
			Kind: models.KindImage,
			Name: imageName(rec.Name, i),
			Data: rec.Data,
		}
		obj.Box, obj.Range = resolveOrDegrade(rec.Anchor, geom, sheetName, obj.Name, log)

		if len(rec.Data) == 0 {
			log.Warn("embedded image has no media bytes, skipping",
				"sheet", sheetName, "image", obj.Name)
			continue
		}

		img, _, err := image.Decode(bytes.NewReader(rec.Data))
		if err != nil {
			log.Warn("keeping raw bytes only",
				"error", &DecodeError{SheetName: sheetName, Object: obj.Name, Err: err})
		} else {
			obj.Image = img
		}

		fileName := imageFileName(sheetName, obj.Range, i)
		sheet.Images = append(sheet.Images, obj)
		sheet.ImageFiles = append(sheet.ImageFiles, models.Artifact{Name: fileName, Data: rec.Data})
	}

	if opts.ShouldRenderComposites() {
		sheet.Composites = renderComposites(&sheet, log)
	}

	return sheet
}

// resolveOrDegrade resolves an anchor, substituting a degenerate zero-size
// box on failure so the rest of the sheet keeps processing.
func resolveOrDegrade(anchor models.CellAnchor, geom *parser.SheetGeometry, sheetName, objName string, log *slog.Logger) (models.Box, models.CellRange) {
	box, rng, err := parser.ResolveAnchor(anchor, geom)
	if err != nil {
		log.Warn("using degenerate box",
			"error", &AnchorError{SheetName: sheetName, Object: objName, Err: err})
		return models.Box{}, models.CellRange{}
	}
	return box, rng
}

// renderComposites classifies the sheet's objects and renders one flattened
// output per base image that has overlays.
func renderComposites(sheet *models.SheetResult, log *slog.Logger) []models.Artifact {
	fileNames := make(map[*models.VisualObject]string, len(sheet.Images))
	for i, obj := range sheet.Images {
		fileNames[obj] = sheet.ImageFiles[i].Name
	}

	var composites []models.Artifact
	for _, plan := range overlay.Classify(sheet.Images, sheet.Shapes) {
		data, err := render.Composite(plan, log)
		if err != nil {
			log.Warn("composite rendering failed",
				"sheet", sheet.Name, "base", plan.Base.Name, "error", err)
			continue
		}

		baseFile := fileNames[plan.Base]
		name := strings.TrimSuffix(baseFile, filepath.Ext(baseFile)) + "_with_overlays.jpg"
		composites = append(composites, models.Artifact{Name: name, Data: data})
	}

	return composites
}

// imageFileName names an image output after its resolved cell range, falling
// back to a sheet-indexed name when either corner is unknown.
func imageFileName(sheetName string, rng models.CellRange, idx int) string {
	if rng.Resolved() {
		return fmt.Sprintf("%s-%s.png", rng.TopLeft, rng.BottomRight)
	}
	return fmt.Sprintf("%s_image_%d.png", sheetName, idx+1)
}

func shapeName(name string, idx int) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("shape_%d", idx+1)
}

func imageName(name string, idx int) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("image_%d", idx+1)
}
