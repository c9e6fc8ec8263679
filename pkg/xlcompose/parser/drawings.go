package parser

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/ymgata/xlcompose-go/pkg/xlcompose/models"
)

// PictureRecord is an embedded picture as read from a drawing part: its
// anchor and the raw media bytes, before any geometry resolution or decoding.
type PictureRecord struct {
	// Name is the picture name from cNvPr, may be empty.
	Name string
	// Anchor is the raw positioning descriptor.
	Anchor models.CellAnchor
	// Data is the embedded media content. Nil when the relationship target
	// is missing from the package.
	Data []byte
}

// ShapeRecord is a drawn (non-picture) shape as read from a drawing part.
type ShapeRecord struct {
	// Name is the shape name from cNvPr, may be empty.
	Name string
	// Anchor is the raw positioning descriptor.
	Anchor models.CellAnchor
	// Style is the drawable styling: geometry preset, fill, outline, text.
	Style models.ShapeStyle
}

// SheetDrawing is the full drawing-layer content of one sheet.
type SheetDrawing struct {
	Pictures []PictureRecord
	Shapes   []ShapeRecord
}

// SheetDrawing parses the drawing part attached to the named sheet. Sheets
// without a drawing yield an empty result. Connectors and grouped shapes are
// not extracted.
func (p *Package) SheetDrawing(sheetName string) (*SheetDrawing, error) {
	drawingPath := p.drawingPartFor(sheetName)
	if drawingPath == "" {
		return &SheetDrawing{}, nil
	}

	drawingXML, err := readZipFile(&p.r.Reader, drawingPath)
	if err != nil {
		return nil, fmt.Errorf("read drawing part %s: %w", drawingPath, err)
	}
	if drawingXML == nil {
		return nil, fmt.Errorf("drawing part %s missing", drawingPath)
	}

	media := p.drawingMedia(drawingPath)

	drawing, embeds := parseDrawingXML(drawingXML)
	for i := range drawing.Pictures {
		if target, ok := media[embeds[i]]; ok {
			data, err := readZipFile(&p.r.Reader, target)
			if err == nil {
				drawing.Pictures[i].Data = data
			}
		}
	}

	return drawing, nil
}

// drawingMedia returns the rId -> media part path mapping of a drawing's
// relationships part.
func (p *Package) drawingMedia(drawingPath string) map[string]string {
	idx := strings.LastIndex(drawingPath, "/")
	if idx < 0 {
		return nil
	}
	relsPath := drawingPath[:idx] + "/_rels" + drawingPath[idx:] + ".rels"

	relsXML, err := readZipFile(&p.r.Reader, relsPath)
	if err != nil || relsXML == nil {
		return nil
	}
	return parseRelationships(relsXML, "xl/drawings")
}

// parseDrawingXML walks a drawing part and collects pictures and shapes from
// two-cell and one-cell anchor containers. The second return value carries
// the media relationship id of each picture, index-aligned with
// drawing.Pictures.
func parseDrawingXML(data []byte) (*SheetDrawing, []string) {
	drawing := &SheetDrawing{}
	var embeds []string

	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		if se, ok := token.(xml.StartElement); ok {
			switch se.Name.Local {
			case "twoCellAnchor":
				embeds = parseAnchorContainer(decoder, drawing, embeds, true)
			case "oneCellAnchor":
				embeds = parseAnchorContainer(decoder, drawing, embeds, false)
			case "absoluteAnchor":
				// Absolute anchors are not attached to cells.
				skipElement(decoder)
			}
		}
	}

	return drawing, embeds
}

// parseAnchorContainer parses one anchor element and every picture or shape
// it contains. All objects in the container share the anchor.
func parseAnchorContainer(decoder *xml.Decoder, drawing *SheetDrawing, embeds []string, twoCell bool) []string {
	var from, to models.CellMark
	var extCX, extCY int64
	var hasTo bool

	type pendingPic struct {
		name  string
		embed string
	}
	var pics []pendingPic
	var shapes []ShapeRecord

	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "from":
				from = parseCellMark(decoder)
				depth--
			case "to":
				to = parseCellMark(decoder)
				hasTo = true
				depth--
			case "ext":
				// Direct child of oneCellAnchor; ext inside pic/sp subtrees
				// is consumed by their own parsers.
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "cx":
						extCX, _ = strconv.ParseInt(attr.Value, 10, 64)
					case "cy":
						extCY, _ = strconv.ParseInt(attr.Value, 10, 64)
					}
				}
			case "pic":
				name, embed := parsePicture(decoder)
				pics = append(pics, pendingPic{name: name, embed: embed})
				depth--
			case "sp":
				if rec := parseStyledShape(decoder); rec != nil {
					shapes = append(shapes, *rec)
				}
				depth--
			case "cxnSp", "grpSp", "graphicFrame":
				// Connectors, groups and charts are out of scope.
				skipElement(decoder)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	var anchor models.CellAnchor
	if twoCell && hasTo {
		anchor = models.TwoCellAnchor{From: from, To: to}
	} else {
		anchor = models.OneCellAnchor{From: from, ExtentCX: extCX, ExtentCY: extCY}
	}

	for _, pic := range pics {
		drawing.Pictures = append(drawing.Pictures, PictureRecord{Name: pic.name, Anchor: anchor})
		embeds = append(embeds, pic.embed)
	}
	for _, rec := range shapes {
		rec.Anchor = anchor
		drawing.Shapes = append(drawing.Shapes, rec)
	}

	return embeds
}

// parseCellMark reads the col/colOff/row/rowOff children of a from/to element.
func parseCellMark(decoder *xml.Decoder) models.CellMark {
	var mark models.CellMark

	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			name := t.Name.Local
			text, err := readElementText(decoder)
			depth--
			if err != nil {
				continue
			}
			text = strings.TrimSpace(text)
			switch name {
			case "col":
				mark.Col, _ = strconv.Atoi(text)
			case "row":
				mark.Row, _ = strconv.Atoi(text)
			case "colOff":
				mark.ColOffEMU, _ = strconv.ParseInt(text, 10, 64)
			case "rowOff":
				mark.RowOffEMU, _ = strconv.ParseInt(text, 10, 64)
			}
		case xml.EndElement:
			depth--
		}
	}

	return mark
}

// parsePicture reads a pic element, returning the picture name and the
// relationship id of its embedded media.
func parsePicture(decoder *xml.Decoder) (name, embed string) {
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "cNvPr":
				for _, attr := range t.Attr {
					if attr.Name.Local == "name" {
						name = attr.Value
					}
				}
			case "blip":
				for _, attr := range t.Attr {
					if attr.Name.Local == "embed" {
						embed = attr.Value
					}
				}
			}
		case xml.EndElement:
			depth--
		}
	}

	return name, embed
}

// parseStyledShape reads an sp element into a ShapeRecord (anchor is filled
// in by the caller).
func parseStyledShape(decoder *xml.Decoder) *ShapeRecord {
	rec := &ShapeRecord{
		Style: models.ShapeStyle{
			Geometry:       models.GeomRect,
			FontSizePoints: DefaultFontSizePoints,
		},
	}

	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "cNvPr":
				for _, attr := range t.Attr {
					if attr.Name.Local == "name" {
						rec.Name = attr.Value
					}
				}
			case "spPr":
				parseShapeProperties(decoder, &rec.Style)
				depth--
			case "txBody":
				text, size := parseTextBody(decoder)
				rec.Style.Text = text
				if size > 0 {
					rec.Style.FontSizePoints = size
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return rec
}

// parseShapeProperties reads an spPr element: preset geometry, fill and
// outline. Fill elements nested inside ln belong to the outline and are
// consumed by parseOutline before this walk can see them.
func parseShapeProperties(decoder *xml.Decoder, style *models.ShapeStyle) {
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "xfrm":
				// Geometry comes from the anchor, not the shape transform.
				skipElement(decoder)
				depth--
			case "prstGeom":
				for _, attr := range t.Attr {
					if attr.Name.Local == "prst" && attr.Value != "" {
						style.Geometry = attr.Value
					}
				}
			case "noFill":
				if depth == 2 {
					style.Fill = nil
				}
			case "solidFill":
				if depth == 2 {
					r, g, b, a := parseSolidFill(decoder)
					style.Fill = &models.FillStyle{R: r, G: g, B: b, Alpha: a}
				} else {
					skipElement(decoder)
				}
				depth--
			case "ln":
				style.Outline = parseOutline(decoder, t)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
}

// parseSolidFill reads a solidFill element: srgbClr value plus an optional
// alpha child in thousandths of a percent (100000 = opaque).
func parseSolidFill(decoder *xml.Decoder) (r, g, b, a uint8) {
	a = 255

	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "srgbClr":
				for _, attr := range t.Attr {
					if attr.Name.Local == "val" {
						r, g, b = parseHexColor(attr.Value)
					}
				}
			case "alpha":
				for _, attr := range t.Attr {
					if attr.Name.Local == "val" {
						if v, err := strconv.Atoi(attr.Value); err == nil {
							a = uint8(clampInt(v*255/100000, 0, 255))
						}
					}
				}
			}
		case xml.EndElement:
			depth--
		}
	}

	return r, g, b, a
}

// parseOutline reads an ln element. Width defaults to one point when the
// attribute is absent; an ln without a solid fill produces no outline.
func parseOutline(decoder *xml.Decoder, start xml.StartElement) *models.OutlineStyle {
	widthPoints := DefaultOutlineWidthPoints
	for _, attr := range start.Attr {
		if attr.Name.Local == "w" {
			if w, err := strconv.ParseInt(attr.Value, 10, 64); err == nil {
				widthPoints = EMUToPoints(w)
			}
		}
	}

	var outline *models.OutlineStyle

	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "solidFill" {
				r, g, b, _ := parseSolidFill(decoder)
				outline = &models.OutlineStyle{R: r, G: g, B: b, WidthPoints: widthPoints}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return outline
}

// parseTextBody reads a txBody element. Text is the space-joined content of
// all runs. The font size is the first run-level size found, falling back to
// the first paragraph default; paragraphs are searched in order and the
// first resolved value wins. Returns 0 when nothing resolves.
func parseTextBody(decoder *xml.Decoder) (text string, sizePoints float64) {
	var runs []string

	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "p" {
				paraRuns, runSize, defSize := parseParagraph(decoder)
				runs = append(runs, paraRuns...)
				if sizePoints == 0 {
					if runSize > 0 {
						sizePoints = runSize
					} else if defSize > 0 {
						sizePoints = defSize
					}
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return strings.Join(runs, " "), sizePoints
}

// parseParagraph reads one a:p element, returning its non-empty run texts,
// the first explicit run-level size and the paragraph default size (each 0
// when absent). Sizes are converted from sz units (points x100).
func parseParagraph(decoder *xml.Decoder) (runs []string, runSize, defSize float64) {
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "pPr":
				if s := parseDefRunSize(decoder); s > 0 && defSize == 0 {
					defSize = s
				}
				depth--
			case "rPr":
				if s := attrSize(t); s > 0 && runSize == 0 {
					runSize = s
				}
			case "t":
				if txt, err := readElementText(decoder); err == nil {
					txt = strings.TrimSpace(txt)
					if txt != "" {
						runs = append(runs, txt)
					}
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return runs, runSize, defSize
}

// parseDefRunSize reads a pPr element looking for defRPr sz.
func parseDefRunSize(decoder *xml.Decoder) float64 {
	var size float64

	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "defRPr" && size == 0 {
				size = attrSize(t)
			}
		case xml.EndElement:
			depth--
		}
	}

	return size
}

// attrSize reads an sz attribute in points x100, returning 0 when absent.
func attrSize(se xml.StartElement) float64 {
	for _, attr := range se.Attr {
		if attr.Name.Local == "sz" {
			if v, err := strconv.Atoi(attr.Value); err == nil {
				return float64(v) / 100.0
			}
		}
	}
	return 0
}

// parseHexColor parses an RRGGBB hex string.
func parseHexColor(s string) (r, g, b uint8) {
	if len(s) != 6 {
		return 0, 0, 0
	}
	if v, err := strconv.ParseUint(s, 16, 32); err == nil {
		return uint8(v >> 16), uint8(v >> 8), uint8(v)
	}
	return 0, 0, 0
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
