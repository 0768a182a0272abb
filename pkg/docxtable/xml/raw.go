package xml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	// NamespaceW is the main WordprocessingML namespace
	NamespaceW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	// NamespaceR is the officeDocument relationships namespace
	NamespaceR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

var prefixMap = map[string]string{
	// Core Word namespaces
	NamespaceW: "w",
	NamespaceR: "r",
	"http://schemas.openxmlformats.org/officeDocument/2006/math": "m",
	"http://www.w3.org/XML/1998/namespace":                       "xml",
	// Drawing namespaces
	"http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing": "wp",
	"http://schemas.openxmlformats.org/drawingml/2006/main":                  "a",
	"http://schemas.openxmlformats.org/drawingml/2006/picture":               "pic",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingDrawing":    "wp14",
	"http://schemas.microsoft.com/office/drawing/2010/main":                  "a14",
	// VML namespaces
	"urn:schemas-microsoft-com:vml":           "v",
	"urn:schemas-microsoft-com:office:office": "o",
	"urn:schemas-microsoft-com:office:word":   "w10",
	// Markup compatibility namespace
	"http://schemas.openxmlformats.org/markup-compatibility/2006": "mc",
	// Word processing shapes and canvas
	"http://schemas.microsoft.com/office/word/2010/wordprocessingShape":  "wps",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingCanvas": "wpc",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingGroup":  "wpg",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingInk":    "wpi",
	// Extended Word namespaces
	"http://schemas.microsoft.com/office/word/2010/wordml":            "w14",
	"http://schemas.microsoft.com/office/word/2012/wordml":            "w15",
	"http://schemas.microsoft.com/office/word/2015/wordml/symex":      "w16se",
	"http://schemas.microsoft.com/office/word/2016/wordml/cid":        "w16cid",
	"http://schemas.microsoft.com/office/word/2018/wordml":            "w16",
	"http://schemas.microsoft.com/office/word/2018/wordml/cex":        "w16cex",
	"http://schemas.microsoft.com/office/word/2023/wordml/word16du":   "w16du",
	"http://schemas.microsoft.com/office/word/2006/wordml":            "wne",
	"http://schemas.microsoft.com/office/word/2020/wordml/sdtdatahash": "w16sdtdh",
}

// namespaceToPrefix converts a namespace URI to its conventional prefix.
// Undeclared prefixes are reported by the decoder as the prefix itself, which
// passes through unchanged.
func namespaceToPrefix(uri string) string {
	if prefix, ok := prefixMap[uri]; ok {
		return prefix
	}
	return uri
}

func prefixedName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return namespaceToPrefix(name.Space) + ":" + name.Local
}

func prefixedAttrs(attrs []xml.Attr) []xml.Attr {
	out := make([]xml.Attr, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, xml.Attr{Name: xml.Name{Local: prefixedName(attr.Name)}, Value: attr.Value})
	}
	return out
}

func writeStartTag(buf *strings.Builder, t xml.StartElement) {
	buf.WriteString("<")
	buf.WriteString(prefixedName(t.Name))
	for _, attr := range t.Attr {
		buf.WriteString(" ")
		buf.WriteString(prefixedName(attr.Name))
		buf.WriteString("=\"")
		xml.EscapeText(stringWriter{buf}, []byte(attr.Value))
		buf.WriteString("\"")
	}
	buf.WriteString(">")
}

type stringWriter struct {
	b *strings.Builder
}

func (w stringWriter) Write(p []byte) (int, error) {
	return w.b.Write(p)
}

// textCollector observes tokens while an element is captured so paragraph
// text can be extracted in the same pass
type textCollector func(tok xml.Token, path []string)

// captureRaw reads the remainder of the element opened by start and returns
// it as a RawXMLElement. The decoder is left positioned after the end tag.
func captureRaw(d *xml.Decoder, start xml.StartElement, observe textCollector) (*RawXMLElement, error) {
	raw := &RawXMLElement{
		XMLName: start.Name,
		Attrs:   append([]xml.Attr(nil), start.Attr...),
	}

	var buf strings.Builder
	path := []string{start.Name.Local}
	for len(path) > 0 {
		tok, err := d.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("unexpected end of input inside <%s>", start.Name.Local)
		}
		if err != nil {
			return nil, err
		}

		switch tt := tok.(type) {
		case xml.StartElement:
			path = append(path, tt.Name.Local)
			writeStartTag(&buf, tt)
		case xml.EndElement:
			path = path[:len(path)-1]
			if len(path) > 0 {
				buf.WriteString("</")
				buf.WriteString(prefixedName(tt.Name))
				buf.WriteString(">")
			}
		case xml.CharData:
			xml.EscapeText(stringWriter{&buf}, tt)
		}
		if observe != nil {
			observe(tok, path)
		}
	}

	raw.Content = []byte(buf.String())
	return raw, nil
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
