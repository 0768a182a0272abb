package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// PageLayout holds the page size and horizontal margins of a section, in
// twentieths of a point
type PageLayout struct {
	PageWidth   int
	LeftMargin  int
	RightMargin int
}

// TextWidth returns the width available between the margins
func (l PageLayout) TextWidth() int {
	return l.PageWidth - l.LeftMargin - l.RightMargin
}

type sectionProperties struct {
	PageSize *struct {
		W string `xml:"w,attr"`
	} `xml:"pgSz"`
	PageMargin *struct {
		Left  string `xml:"left,attr"`
		Right string `xml:"right,attr"`
	} `xml:"pgMar"`
}

// ParsePageLayout reads pgSz and pgMar from preserved section properties
func ParsePageLayout(sectPr *RawXMLElement) (*PageLayout, error) {
	if sectPr == nil {
		return nil, fmt.Errorf("no section properties")
	}

	var buf bytes.Buffer
	buf.WriteString("<sectPr>")
	buf.Write(sectPr.Content)
	buf.WriteString("</sectPr>")

	var props sectionProperties
	if err := xml.NewDecoder(&buf).Decode(&props); err != nil {
		return nil, fmt.Errorf("failed to parse section properties: %w", err)
	}
	if props.PageSize == nil {
		return nil, fmt.Errorf("section properties have no page size")
	}

	layout := &PageLayout{}
	var ok bool
	if layout.PageWidth, ok = parseMeasure(props.PageSize.W); !ok {
		return nil, fmt.Errorf("invalid page width %q", props.PageSize.W)
	}
	if props.PageMargin != nil {
		layout.LeftMargin, _ = parseMeasure(props.PageMargin.Left)
		layout.RightMargin, _ = parseMeasure(props.PageMargin.Right)
	}
	return layout, nil
}
