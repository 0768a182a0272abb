package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// Document represents a Word document structure
type Document struct {
	XMLName xml.Name
	Body    *Body
	// Attrs preserves root element attributes (namespaces)
	Attrs []xml.Attr
	// Other keeps document children other than the body, such as w:background
	Other []RawXMLElement
}

// UnmarshalXML implements custom XML unmarshaling to preserve root attributes
func (doc *Document) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	doc.XMLName = start.Name
	doc.Attrs = append([]xml.Attr(nil), start.Attr...)

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
			if t.Name.Local == "body" {
				var body Body
				if err := d.DecodeElement(&body, &t); err != nil {
					return err
				}
				doc.Body = &body
				continue
			}
			raw, err := captureRaw(d, t, nil)
			if err != nil {
				return err
			}
			doc.Other = append(doc.Other, *raw)
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return nil
			}
		}
	}

	return nil
}

// MarshalXML implements custom XML marshaling with the w: prefix
func (doc Document) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:document"}
	start.Attr = prefixedAttrs(doc.Attrs)
	if len(start.Attr) == 0 {
		start.Attr = []xml.Attr{
			{Name: xml.Name{Local: "xmlns:w"}, Value: NamespaceW},
			{Name: xml.Name{Local: "xmlns:r"}, Value: NamespaceR},
		}
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for i := range doc.Other {
		if err := e.EncodeElement(&doc.Other[i], xml.StartElement{}); err != nil {
			return err
		}
	}

	body := doc.Body
	if body == nil {
		body = &Body{}
	}
	if err := e.EncodeElement(body, xml.StartElement{Name: xml.Name{Local: "w:body"}}); err != nil {
		return err
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Bytes serializes the document including the XML declaration
func (doc *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	enc := xml.NewEncoder(&buf)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return buf.Bytes(), nil
}

// Body represents the document body
type Body struct {
	// Elements maintains the order of all body elements
	Elements []BlockElement
	// SectionProperties at the end of the body (critical for Word compatibility)
	SectionProperties *RawXMLElement
}

// UnmarshalXML implements custom XML unmarshaling to preserve element order
func (b *Body) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
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
			case "p":
				var para Paragraph
				if err := d.DecodeElement(&para, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, &para)
			case "tbl":
				var table Table
				if err := d.DecodeElement(&table, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, &table)
			case "sectPr":
				raw, err := captureRaw(d, t, nil)
				if err != nil {
					return err
				}
				b.SectionProperties = raw
			default:
				raw, err := captureRaw(d, t, nil)
				if err != nil {
					return err
				}
				b.Elements = append(b.Elements, raw)
			}
		case xml.EndElement:
			if t.Name.Local == "body" {
				return nil
			}
		}
	}

	return nil
}

// MarshalXML implements custom XML marshaling to preserve element order
func (b Body) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:body"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for _, elem := range b.Elements {
		var err error
		switch el := elem.(type) {
		case *Paragraph:
			err = e.EncodeElement(el, xml.StartElement{Name: xml.Name{Local: "w:p"}})
		case *Table:
			err = e.EncodeElement(el, xml.StartElement{Name: xml.Name{Local: "w:tbl"}})
		case *RawXMLElement:
			err = e.EncodeElement(el, xml.StartElement{})
		}
		if err != nil {
			return err
		}
	}

	if b.SectionProperties != nil {
		if err := e.EncodeElement(b.SectionProperties, xml.StartElement{}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Tables returns the top-level tables of the body in document order
func (b *Body) Tables() []*Table {
	var tables []*Table
	for _, elem := range b.Elements {
		if t, ok := elem.(*Table); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// ParseDocument parses a Word document XML
func ParseDocument(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)

	var doc Document
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if doc.Body == nil {
		doc.Body = &Body{}
	}

	return &doc, nil
}
