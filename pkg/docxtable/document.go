package docxtable

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/benjaminschreck/go-docxtable/pkg/docxtable/xml"
)

// Document is an opened DOCX package whose body tables can be edited
type Document struct {
	reader     *DocxReader
	document   *xml.Document
	styles     *xml.Styles
	stylesPart string

	// tables maps body table elements to their models
	tables map[*xml.Table]*Table

	path   string
	config *Config
	logger *Logger
}

// Open reads a DOCX file from disk
func Open(path string) (*Document, error) {
	dr, err := DocxReaderFromFile(path)
	if err != nil {
		return nil, NewDocumentError("open", path, err)
	}
	return load(dr, path)
}

// OpenReader reads a DOCX package from r
func OpenReader(r io.ReaderAt, size int64) (*Document, error) {
	dr, err := NewDocxReader(r, size)
	if err != nil {
		return nil, NewDocumentError("open", "", err)
	}
	return load(dr, "")
}

// NewDocument creates an empty document from the built-in package
func NewDocument() (*Document, error) {
	content, err := blankPackage()
	if err != nil {
		return nil, NewDocumentError("create", "", err)
	}
	return OpenReader(bytes.NewReader(content), int64(len(content)))
}

func load(dr *DocxReader, path string) (*Document, error) {
	d := &Document{
		reader: dr,
		tables: make(map[*xml.Table]*Table),
		path:   path,
		config: GetGlobalConfig(),
	}
	d.logger = GetLogger().WithField("document", displayPath(path))

	content, err := dr.GetPart(mainDocumentPart)
	if err != nil {
		return nil, NewDocumentError("read", path, err)
	}
	d.document, err = xml.ParseDocument(bytes.NewReader(content))
	if err != nil {
		return nil, NewDocumentError("parse", path, err)
	}

	d.stylesPart, err = dr.StylesPart()
	if err != nil {
		return nil, NewDocumentError("read", path, err)
	}
	if d.stylesPart != "" {
		stylesXML, err := dr.GetPart(d.stylesPart)
		if err != nil {
			return nil, NewDocumentError("read", path, err)
		}
		d.styles, err = xml.ParseStyles(bytes.NewReader(stylesXML))
		if err != nil {
			return nil, NewDocumentError("parse", path, err)
		}
	}

	for _, x := range d.document.Body.Tables() {
		t, err := decodeTable(x)
		if err != nil {
			return nil, NewDocumentError("parse", path, err)
		}
		t.doc = d
		d.tables[x] = t
	}

	d.logger.WithField("tables", len(d.tables)).Debug("opened document")
	return d, nil
}

func displayPath(path string) string {
	if path == "" {
		return "<memory>"
	}
	return path
}

// Tables returns the top-level tables of the body in document order
func (d *Document) Tables() []*Table {
	var tables []*Table
	for _, x := range d.document.Body.Tables() {
		tables = append(tables, d.tables[x])
	}
	return tables
}

// Table returns the top-level table at index i
func (d *Document) Table(i int) (*Table, error) {
	tables := d.Tables()
	if err := checkIndex("table", i, len(tables)); err != nil {
		return nil, err
	}
	return tables[i], nil
}

// Paragraphs returns the text of the top-level body paragraphs
func (d *Document) Paragraphs() []string {
	var texts []string
	for _, elem := range d.document.Body.Elements {
		if p, ok := elem.(*xml.Paragraph); ok {
			texts = append(texts, p.GetText())
		}
	}
	return texts
}

// AddParagraph appends a paragraph of text to the body
func (d *Document) AddParagraph(text string) {
	d.document.Body.Elements = append(d.document.Body.Elements, xml.NewParagraph(text))
}

// AddTable appends a rows x cols table to the body. The text width of the
// document is divided evenly across the columns.
func (d *Document) AddTable(rows, cols int) (*Table, error) {
	t, err := New(rows, cols)
	if err != nil {
		return nil, err
	}
	t.doc = d

	if cols > 0 {
		colWidth := d.TextWidth() / Length(cols)
		for col := range t.Columns().All() {
			if err := col.SetWidth(colWidth); err != nil {
				return nil, err
			}
		}
	}

	placeholder := &xml.Table{}
	d.document.Body.Elements = append(d.document.Body.Elements, placeholder)
	d.tables[placeholder] = t

	d.logger.WithFields(Fields{"rows": rows, "cols": cols}).Debug("added table")
	return t, nil
}

// TextWidth returns the width between the page margins of the final
// section, or the configured default when the document has no page layout
func (d *Document) TextWidth() Length {
	layout, err := xml.ParsePageLayout(d.document.Body.SectionProperties)
	if err != nil || layout.TextWidth() <= 0 {
		return d.config.DefaultTextWidth
	}
	return Twips(layout.TextWidth())
}

// TableStyles returns the ids of the table styles the document defines
func (d *Document) TableStyles() []string {
	if d.styles == nil {
		return nil
	}
	var ids []string
	for _, s := range d.styles.Styles {
		if s.Type == xml.StyleTypeTable {
			ids = append(ids, s.StyleID)
		}
	}
	return ids
}

// LookupStyle resolves a table style by id or UI name and returns its id
func (d *Document) LookupStyle(name string) (string, error) {
	def := d.styles.Find(xml.StyleTypeTable, name)
	if def == nil {
		return "", NewLookupError("table style", name)
	}
	return def.StyleID, nil
}

func (d *Document) defaultTableStyle() string {
	if def := d.styles.Default(xml.StyleTypeTable); def != nil {
		return def.StyleID
	}
	return d.config.DefaultTableStyle
}

// Bytes serializes the document package
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the document package to w
func (d *Document) Save(w io.Writer) error {
	body := d.document.Body
	elements := make([]xml.BlockElement, len(body.Elements))
	rebuilt := make(map[*xml.Table]*Table, len(d.tables))
	for i, elem := range body.Elements {
		x, ok := elem.(*xml.Table)
		if !ok {
			elements[i] = elem
			continue
		}
		t := d.tables[x]
		encoded := encodeTable(t)
		elements[i] = encoded
		rebuilt[encoded] = t
	}

	out := &xml.Document{
		XMLName: d.document.XMLName,
		Attrs:   d.document.Attrs,
		Other:   d.document.Other,
		Body: &xml.Body{
			Elements:          elements,
			SectionProperties: body.SectionProperties,
		},
	}
	content, err := out.Bytes()
	if err != nil {
		return NewDocumentError("save", d.path, err)
	}

	if err := d.reader.writePackage(w, map[string][]byte{mainDocumentPart: content}); err != nil {
		return NewDocumentError("save", d.path, err)
	}

	// Later saves start from what was written.
	d.document = out
	d.tables = rebuilt
	d.logger.WithField("tables", len(rebuilt)).Debug("saved document")
	return nil
}

// SaveFile writes the document package to path. The file is only replaced
// once the package has been serialized completely.
func (d *Document) SaveFile(path string) error {
	content, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return NewDocumentError("save", path, fmt.Errorf("failed to write file: %w", err))
	}
	return nil
}
