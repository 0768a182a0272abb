package docxtable

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// packageWithBody builds a DOCX package from the blank parts with body
// placed before the section properties of word/document.xml
func packageWithBody(t *testing.T, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, part := range blankParts {
		content := part.content
		if part.name == mainDocumentPart {
			content = strings.Replace(content, "<w:body>", "<w:body>"+body, 1)
		}
		fw, err := w.Create(part.name)
		require.NoError(t, err)
		_, err = io.WriteString(fw, content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func openBody(t *testing.T, body string) *Document {
	t.Helper()
	content := packageWithBody(t, body)
	doc, err := OpenReader(bytes.NewReader(content), int64(len(content)))
	require.NoError(t, err)
	return doc
}

// reopen saves doc and reads the result back
func reopen(t *testing.T, doc *Document) *Document {
	t.Helper()
	content, err := doc.Bytes()
	require.NoError(t, err)
	reread, err := OpenReader(bytes.NewReader(content), int64(len(content)))
	require.NoError(t, err)
	return reread
}

type fixtureCell struct {
	text    string
	width   int // twips, 0 for none
	span    int
	vMerge  string // "", "restart" or "continue"
	rawProp string
}

func (c fixtureCell) xml() string {
	var props strings.Builder
	if c.width > 0 {
		fmt.Fprintf(&props, `<w:tcW w:w="%d" w:type="dxa"/>`, c.width)
	}
	if c.span > 1 {
		fmt.Fprintf(&props, `<w:gridSpan w:val="%d"/>`, c.span)
	}
	switch c.vMerge {
	case "restart":
		props.WriteString(`<w:vMerge w:val="restart"/>`)
	case "continue":
		props.WriteString(`<w:vMerge/>`)
	}
	props.WriteString(c.rawProp)

	var out strings.Builder
	out.WriteString("<w:tc>")
	if props.Len() > 0 {
		out.WriteString("<w:tcPr>" + props.String() + "</w:tcPr>")
	}
	if c.text == "" {
		out.WriteString("<w:p/>")
	} else {
		for _, line := range strings.Split(c.text, "\n") {
			fmt.Fprintf(&out, "<w:p><w:r><w:t>%s</w:t></w:r></w:p>", line)
		}
	}
	out.WriteString("</w:tc>")
	return out.String()
}

// tableXML renders a w:tbl. tblPr is inserted verbatim and gridCols lists
// column widths in twips, 0 meaning no w attribute.
func tableXML(tblPr string, gridCols []int, rows ...[]fixtureCell) string {
	var b strings.Builder
	b.WriteString("<w:tbl><w:tblPr>" + tblPr + "</w:tblPr><w:tblGrid>")
	for _, w := range gridCols {
		if w == 0 {
			b.WriteString("<w:gridCol/>")
			continue
		}
		fmt.Fprintf(&b, `<w:gridCol w:w="%d"/>`, w)
	}
	b.WriteString("</w:tblGrid>")
	for _, row := range rows {
		b.WriteString("<w:tr>")
		for _, cell := range row {
			b.WriteString(cell.xml())
		}
		b.WriteString("</w:tr>")
	}
	b.WriteString("</w:tbl>")
	return b.String()
}

const inch = 1440

var threeInches = []int{inch, inch, inch}

func oneInch(text string) fixtureCell { return fixtureCell{text: text, width: inch} }

// cellAccessBody holds four 3x3 tables numbered 1-9 in row-major order:
// uniform cells, a horizontal span, a vertical span and a combined span
func cellAccessBody() string {
	uniform := tableXML("", threeInches,
		[]fixtureCell{oneInch("1"), oneInch("2"), oneInch("3")},
		[]fixtureCell{oneInch("4"), oneInch("5"), oneInch("6")},
		[]fixtureCell{oneInch("7"), oneInch("8"), oneInch("9")},
	)
	horizontal := tableXML("", threeInches,
		[]fixtureCell{{text: "1", width: 2 * inch, span: 2}, oneInch("3")},
		[]fixtureCell{oneInch("4"), oneInch("5"), oneInch("6")},
		[]fixtureCell{oneInch("7"), oneInch("8"), oneInch("9")},
	)
	vertical := tableXML("", threeInches,
		[]fixtureCell{{text: "1", width: inch, vMerge: "restart"}, oneInch("2"), oneInch("3")},
		[]fixtureCell{{width: inch, vMerge: "continue"}, oneInch("5"), oneInch("6")},
		[]fixtureCell{oneInch("7"), oneInch("8"), oneInch("9")},
	)
	combined := tableXML("", threeInches,
		[]fixtureCell{{text: "1", width: 2 * inch, span: 2, vMerge: "restart"}, oneInch("3")},
		[]fixtureCell{{width: 2 * inch, span: 2, vMerge: "continue"}, oneInch("6")},
		[]fixtureCell{oneInch("7"), oneInch("8"), oneInch("9")},
	)
	return uniform + "<w:p/>" + horizontal + "<w:p/>" + vertical + "<w:p/>" + combined
}

// blockContainingTableBody holds a 2x2 table after a paragraph
func blockContainingTableBody() string {
	return `<w:p><w:r><w:t>Paragraph before the table</w:t></w:r></w:p>` +
		tableXML(`<w:tblStyle w:val="TableGrid"/>`, []int{4320, 4320},
			[]fixtureCell{{text: "a"}, {text: "b"}},
			[]fixtureCell{{text: "c"}, {text: "d"}},
		)
}

// tablePropsBody holds three 1x1 tables: no layout and no cell width, autofit
// with a 1 inch cell, fixed with a 2 inch cell
func tablePropsBody() string {
	return tableXML("", []int{0}, []fixtureCell{{text: "none"}}) +
		tableXML(`<w:tblLayout w:type="autofit"/>`, []int{inch}, []fixtureCell{{text: "one", width: inch}}) +
		tableXML(`<w:tblLayout w:type="fixed"/>`, []int{2 * inch}, []fixtureCell{{text: "two", width: 2 * inch}})
}

// columnPropsBody holds a table whose first column has no width and whose
// second column is 1440 twips wide
func columnPropsBody() string {
	return tableXML("", []int{0, inch}, []fixtureCell{{}, {}}, []fixtureCell{{}, {}})
}

// appliedStyleBody holds a table with an applied style
func appliedStyleBody() string {
	return tableXML(`<w:tblStyle w:val="LightShading-Accent1"/><w:tblW w:w="0" w:type="auto"/><w:tblLook w:val="04A0"/>`,
		[]int{4320, 4320}, []fixtureCell{{}, {}})
}

// texts returns the text of every slot of t
func texts(t *testing.T, table *Table) [][]string {
	t.Helper()
	var out [][]string
	for row := range table.Rows().All() {
		var line []string
		for _, cell := range row.Cells() {
			line = append(line, cell.Text())
		}
		out = append(out, line)
	}
	return out
}
