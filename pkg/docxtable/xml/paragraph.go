package xml

import (
	"encoding/xml"
	"strings"
)

// Paragraph represents a paragraph in the document.
//
// Paragraphs decoded from a document keep their original markup in Raw and
// are written back unchanged. Paragraphs built in memory carry Runs instead.
type Paragraph struct {
	Raw  *RawXMLElement
	Runs []Run

	text string
}

// isBlockElement implements the BlockElement interface
func (p Paragraph) isBlockElement() {}

// NewParagraph builds a paragraph holding a single run of text. An empty
// string yields a paragraph without runs.
func NewParagraph(text string) *Paragraph {
	p := &Paragraph{}
	if text != "" {
		p.Runs = []Run{{Text: &Text{Content: text}}}
	}
	return p
}

// UnmarshalXML captures the paragraph markup and extracts its text
func (p *Paragraph) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var text strings.Builder
	observe := func(tok xml.Token, path []string) {
		switch t := tok.(type) {
		case xml.CharData:
			if len(path) > 0 && path[len(path)-1] == "t" {
				text.Write(t)
			}
		case xml.StartElement:
			if len(path) < 2 || path[len(path)-2] != "r" {
				return
			}
			switch t.Name.Local {
			case "tab":
				text.WriteString("\t")
			case "br", "cr":
				text.WriteString("\n")
			}
		}
	}

	raw, err := captureRaw(d, start, observe)
	if err != nil {
		return err
	}
	p.Raw = raw
	p.text = text.String()
	return nil
}

// MarshalXML implements custom XML marshaling for Paragraph to ensure proper namespacing
func (p Paragraph) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if p.Raw != nil {
		return p.Raw.MarshalXML(e, start)
	}

	start.Name = xml.Name{Local: "w:p"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, run := range p.Runs {
		if err := e.EncodeElement(&run, xml.StartElement{Name: xml.Name{Local: "w:r"}}); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// GetText returns the concatenated text of all runs in a paragraph
func (p *Paragraph) GetText() string {
	if p.Raw != nil {
		return p.text
	}
	var b strings.Builder
	for _, run := range p.Runs {
		b.WriteString(run.GetText())
	}
	return b.String()
}

// Run represents a run of text
type Run struct {
	Text *Text
}

// MarshalXML implements custom XML marshaling for Run
func (r Run) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:r"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if r.Text != nil {
		if err := e.EncodeElement(r.Text, xml.StartElement{Name: xml.Name{Local: "w:t"}}); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// GetText returns the text of a run
func (r *Run) GetText() string {
	if r.Text == nil {
		return ""
	}
	return r.Text.Content
}

// Text represents text content
type Text struct {
	Content string
}

// MarshalXML preserves leading and trailing whitespace
func (t Text) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:t"}
	if strings.TrimSpace(t.Content) != t.Content {
		start.Attr = []xml.Attr{{Name: xml.Name{Local: "xml:space"}, Value: "preserve"}}
	}
	return e.EncodeElement(t.Content, start)
}
