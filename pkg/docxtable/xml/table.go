package xml

import (
	"encoding/xml"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Table represents a table in the document
type Table struct {
	Properties *TableProperties
	Grid       *TableGrid
	Rows       []TableRow
}

// isBlockElement implements the BlockElement interface
func (t Table) isBlockElement() {}

// UnmarshalXML implements custom XML unmarshaling for Table
func (t *Table) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch tt := token.(type) {
		case xml.StartElement:
			switch tt.Name.Local {
			case "tblPr":
				var props TableProperties
				if err := d.DecodeElement(&props, &tt); err != nil {
					return err
				}
				t.Properties = &props
			case "tblGrid":
				var grid TableGrid
				if err := d.DecodeElement(&grid, &tt); err != nil {
					return err
				}
				t.Grid = &grid
			case "tr":
				var row TableRow
				if err := d.DecodeElement(&row, &tt); err != nil {
					return err
				}
				t.Rows = append(t.Rows, row)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if tt.Name.Local == start.Name.Local {
				return nil
			}
		}
	}
	return nil
}

// MarshalXML implements custom XML marshaling for Table to ensure proper namespacing
func (t Table) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tbl"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	props := t.Properties
	if props == nil {
		props = &TableProperties{}
	}
	if err := e.EncodeElement(props, xml.StartElement{Name: xml.Name{Local: "w:tblPr"}}); err != nil {
		return err
	}

	grid := t.Grid
	if grid == nil {
		grid = &TableGrid{}
	}
	if err := e.EncodeElement(grid, xml.StartElement{Name: xml.Name{Local: "w:tblGrid"}}); err != nil {
		return err
	}

	for _, row := range t.Rows {
		if err := e.EncodeElement(&row, xml.StartElement{Name: xml.Name{Local: "w:tr"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// tblPrOrder is the schema sequence of tblPr children
var tblPrOrder = []string{
	"tblStyle", "tblpPr", "tblOverlap", "bidiVisual", "tblStyleRowBandSize",
	"tblStyleColBandSize", "tblW", "jc", "tblCellSpacing", "tblInd", "tblBorders",
	"shd", "tblLayout", "tblCellMar", "tblLook", "tblCaption", "tblDescription",
	"tblPrChange",
}

// tcPrOrder is the schema sequence of tcPr children
var tcPrOrder = []string{
	"cnfStyle", "tcW", "gridSpan", "hMerge", "vMerge", "tcBorders", "shd",
	"noWrap", "tcMar", "textDirection", "tcFitText", "vAlign", "hideMark",
	"headers", "cellIns", "cellDel", "cellMerge", "tcPrChange",
}

type orderedChild struct {
	name  string
	value interface{}
}

// encodeOrdered writes children sorted into schema order. Names missing from
// the order list go last, keeping their relative order.
func encodeOrdered(e *xml.Encoder, order []string, children []orderedChild) error {
	rank := func(name string) int {
		for i, n := range order {
			if n == name {
				return i
			}
		}
		return len(order)
	}
	sort.SliceStable(children, func(i, j int) bool {
		return rank(children[i].name) < rank(children[j].name)
	})
	for _, child := range children {
		if err := e.EncodeElement(child.value, xml.StartElement{Name: xml.Name{Local: "w:" + child.name}}); err != nil {
			return err
		}
	}
	return nil
}

// TableProperties represents table formatting properties
type TableProperties struct {
	Style  *Style
	Width  *Width
	Layout *TableLayout
	// Other keeps unparsed children (borders, look, indentation)
	Other []RawXMLElement
}

// UnmarshalXML implements custom XML unmarshaling for TableProperties
func (p *TableProperties) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tblStyle":
				var style Style
				if err := d.DecodeElement(&style, &t); err != nil {
					return err
				}
				p.Style = &style
			case "tblW":
				var width Width
				if err := d.DecodeElement(&width, &t); err != nil {
					return err
				}
				p.Width = &width
			case "tblLayout":
				var layout TableLayout
				if err := d.DecodeElement(&layout, &t); err != nil {
					return err
				}
				p.Layout = &layout
			default:
				raw, err := captureRaw(d, t, nil)
				if err != nil {
					return err
				}
				p.Other = append(p.Other, *raw)
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return nil
			}
		}
	}
	return nil
}

// MarshalXML implements custom XML marshaling for TableProperties
func (p TableProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tblPr"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	var children []orderedChild
	if p.Style != nil {
		children = append(children, orderedChild{"tblStyle", p.Style})
	}
	if p.Width != nil {
		children = append(children, orderedChild{"tblW", p.Width})
	}
	if p.Layout != nil {
		children = append(children, orderedChild{"tblLayout", p.Layout})
	}
	for i := range p.Other {
		children = append(children, orderedChild{p.Other[i].XMLName.Local, &p.Other[i]})
	}
	if err := encodeOrdered(e, tblPrOrder, children); err != nil {
		return err
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// TableLayout represents table layout mode
type TableLayout struct {
	Type string `xml:"type,attr"`
}

// Table layout types
const (
	LayoutAutofit = "autofit"
	LayoutFixed   = "fixed"
)

// MarshalXML implements custom XML marshaling for TableLayout
func (t TableLayout) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tblLayout"}
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "w:type"}, Value: t.Type},
	}
	return e.EncodeElement(struct{}{}, start)
}

// TableGrid represents table column definitions
type TableGrid struct {
	Columns []GridColumn `xml:"gridCol"`
}

// MarshalXML implements custom XML marshaling for TableGrid
func (g TableGrid) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tblGrid"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for _, col := range g.Columns {
		if err := e.EncodeElement(&col, xml.StartElement{Name: xml.Name{Local: "w:gridCol"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// GridColumn represents a table column. Width is in twentieths of a point
// and nil when the column carries no w attribute.
type GridColumn struct {
	Width *int
}

// UnmarshalXML implements custom XML unmarshaling for GridColumn
func (g *GridColumn) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		if attr.Name.Local == "w" {
			if v, ok := parseMeasure(attr.Value); ok {
				g.Width = &v
			}
		}
	}
	return d.Skip()
}

// MarshalXML implements custom XML marshaling for GridColumn
func (g GridColumn) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:gridCol"}
	start.Attr = nil
	if g.Width != nil {
		start.Attr = []xml.Attr{
			{Name: xml.Name{Local: "w:w"}, Value: itoa(*g.Width)},
		}
	}
	// Self-closing element
	return e.EncodeElement(struct{}{}, start)
}

// TableRow represents a row in a table
type TableRow struct {
	PropertyExceptions *RawXMLElement
	Properties         *RawXMLElement
	Cells              []TableCell
}

// UnmarshalXML implements custom XML unmarshaling for TableRow
func (r *TableRow) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tblPrEx":
				raw, err := captureRaw(d, t, nil)
				if err != nil {
					return err
				}
				r.PropertyExceptions = raw
			case "trPr":
				raw, err := captureRaw(d, t, nil)
				if err != nil {
					return err
				}
				r.Properties = raw
			case "tc":
				var cell TableCell
				if err := d.DecodeElement(&cell, &t); err != nil {
					return err
				}
				r.Cells = append(r.Cells, cell)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return nil
			}
		}
	}
	return nil
}

// MarshalXML implements custom XML marshaling for TableRow to ensure proper namespacing
func (r TableRow) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tr"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if r.PropertyExceptions != nil {
		if err := e.EncodeElement(r.PropertyExceptions, xml.StartElement{}); err != nil {
			return err
		}
	}
	if r.Properties != nil {
		if err := e.EncodeElement(r.Properties, xml.StartElement{}); err != nil {
			return err
		}
	}

	for _, cell := range r.Cells {
		if err := e.EncodeElement(&cell, xml.StartElement{Name: xml.Name{Local: "w:tc"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// TableCell represents a cell in a table
type TableCell struct {
	Properties *TableCellProperties
	// Content holds paragraphs and preserved block content such as nested tables
	Content []BlockElement
}

// UnmarshalXML implements custom XML unmarshaling for TableCell
func (c *TableCell) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tcPr":
				var props TableCellProperties
				if err := d.DecodeElement(&props, &t); err != nil {
					return err
				}
				c.Properties = &props
			case "p":
				var para Paragraph
				if err := d.DecodeElement(&para, &t); err != nil {
					return err
				}
				c.Content = append(c.Content, &para)
			default:
				raw, err := captureRaw(d, t, nil)
				if err != nil {
					return err
				}
				c.Content = append(c.Content, raw)
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return nil
			}
		}
	}
	return nil
}

// MarshalXML implements custom XML marshaling for TableCell to ensure proper namespacing.
// A cell must end with a paragraph, so one is added when missing.
func (c TableCell) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tc"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if c.Properties != nil {
		if err := e.EncodeElement(c.Properties, xml.StartElement{Name: xml.Name{Local: "w:tcPr"}}); err != nil {
			return err
		}
	}

	endsWithParagraph := false
	for _, block := range c.Content {
		var err error
		switch b := block.(type) {
		case *Paragraph:
			err = e.EncodeElement(b, xml.StartElement{Name: xml.Name{Local: "w:p"}})
			endsWithParagraph = true
		case *RawXMLElement:
			err = e.EncodeElement(b, xml.StartElement{})
			endsWithParagraph = false
		}
		if err != nil {
			return err
		}
	}
	if !endsWithParagraph {
		if err := e.EncodeElement(&Paragraph{}, xml.StartElement{Name: xml.Name{Local: "w:p"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Paragraphs returns the paragraphs of the cell in order
func (c *TableCell) Paragraphs() []*Paragraph {
	var paras []*Paragraph
	for _, block := range c.Content {
		if p, ok := block.(*Paragraph); ok {
			paras = append(paras, p)
		}
	}
	return paras
}

// GetText returns the text of all paragraphs in a cell joined by newlines
func (c *TableCell) GetText() string {
	var texts []string
	for _, para := range c.Paragraphs() {
		texts = append(texts, para.GetText())
	}
	return strings.Join(texts, "\n")
}

// TableCellProperties represents cell properties
type TableCellProperties struct {
	Width    *Width
	GridSpan *GridSpan
	VMerge   *VMerge
	// Other keeps unparsed children (shading, borders, alignment)
	Other []RawXMLElement
}

// UnmarshalXML implements custom XML unmarshaling for TableCellProperties
func (p *TableCellProperties) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tcW":
				var width Width
				if err := d.DecodeElement(&width, &t); err != nil {
					return err
				}
				p.Width = &width
			case "gridSpan":
				var span GridSpan
				if err := d.DecodeElement(&span, &t); err != nil {
					return err
				}
				p.GridSpan = &span
			case "vMerge":
				var merge VMerge
				if err := d.DecodeElement(&merge, &t); err != nil {
					return err
				}
				p.VMerge = &merge
			default:
				raw, err := captureRaw(d, t, nil)
				if err != nil {
					return err
				}
				p.Other = append(p.Other, *raw)
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return nil
			}
		}
	}
	return nil
}

// MarshalXML implements custom XML marshaling for TableCellProperties
func (p TableCellProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tcPr"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	var children []orderedChild
	if p.Width != nil {
		children = append(children, orderedChild{"tcW", p.Width})
	}
	if p.GridSpan != nil {
		children = append(children, orderedChild{"gridSpan", p.GridSpan})
	}
	if p.VMerge != nil {
		children = append(children, orderedChild{"vMerge", p.VMerge})
	}
	for i := range p.Other {
		children = append(children, orderedChild{p.Other[i].XMLName.Local, &p.Other[i]})
	}
	if err := encodeOrdered(e, tcPrOrder, children); err != nil {
		return err
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// UnmarshalXML reads tcW/tblW attributes, tolerating percentage and
// fractional values written by some producers
func (w *Width) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "type":
			w.Type = attr.Value
		case "w":
			if v, ok := parseMeasure(attr.Value); ok {
				w.Val = v
			}
		}
	}
	return d.Skip()
}

// GridSpan represents cell column span
type GridSpan struct {
	Val int `xml:"val,attr"`
}

// MarshalXML implements custom XML marshaling for GridSpan
func (g GridSpan) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "w:val"}, Value: itoa(g.Val)},
	}
	return e.EncodeElement(struct{}{}, start)
}

// VMerge represents vertical cell merging. Val is "restart" on the first
// cell of a vertical span; an empty Val continues the span above.
type VMerge struct {
	Val string `xml:"val,attr,omitempty"`
}

// VMergeRestart starts a vertically merged region
const VMergeRestart = "restart"

// Continues reports whether the cell continues a span from the row above
func (v *VMerge) Continues() bool {
	return v != nil && v.Val != VMergeRestart
}

// MarshalXML implements custom XML marshaling for VMerge
func (v VMerge) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = nil
	if v.Val != "" {
		start.Attr = []xml.Attr{
			{Name: xml.Name{Local: "w:val"}, Value: v.Val},
		}
	}
	return e.EncodeElement(struct{}{}, start)
}

// parseMeasure parses an integer measure, accepting "1440.0" and "50%"
// forms. Percentages are returned in fiftieths of a percent.
func parseMeasure(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, false
		}
		return int(f*50 + 0.5), true
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(f + 0.5), true
}
