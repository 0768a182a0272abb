package xml

import (
	"encoding/xml"
)

// BlockElement represents any element that can appear in a document body or
// inside a table cell
type BlockElement interface {
	isBlockElement()
}

// RawXMLElement represents a raw XML element that we preserve but don't parse.
// Content holds the inner XML with namespace prefixes restored.
type RawXMLElement struct {
	XMLName xml.Name
	Attrs   []xml.Attr
	Content []byte
}

// isBlockElement implements the BlockElement interface
func (r RawXMLElement) isBlockElement() {}

// innerXML writes a byte slice verbatim between a start and end element
type innerXML struct {
	Inner []byte `xml:",innerxml"`
}

// MarshalXML writes the element back with its original prefix and content
func (r RawXMLElement) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: prefixedName(r.XMLName)}
	start.Attr = prefixedAttrs(r.Attrs)
	return e.EncodeElement(innerXML{Inner: r.Content}, start)
}

// Style represents a style reference
type Style struct {
	Val string `xml:"val,attr"`
}

// MarshalXML implements custom XML marshaling for Style
func (s Style) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	// The element name depends on the context (pStyle, tblStyle, etc.)
	// so we keep the provided name
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "w:val"}, Value: s.Val},
	}
	return e.EncodeElement(struct{}{}, start)
}

// Width represents width settings (tcW, tblW)
type Width struct {
	Type string `xml:"type,attr"`
	Val  int    `xml:"w,attr"`
}

// MarshalXML implements custom XML marshaling for Width
func (w Width) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "w:w"}, Value: itoa(w.Val)},
		{Name: xml.Name{Local: "w:type"}, Value: w.Type},
	}
	return e.EncodeElement(struct{}{}, start)
}

// Width types
const (
	WidthDxa  = "dxa"
	WidthAuto = "auto"
	WidthPct  = "pct"
	WidthNil  = "nil"
)
