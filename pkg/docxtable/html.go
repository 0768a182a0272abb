package docxtable

import (
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RenderHTML writes the table as an HTML table. Merged cells are written
// once with colspan and rowspan, and resolved widths become inline styles.
func RenderHTML(w io.Writer, t *Table) error {
	if err := html.Render(w, tableNode(t)); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

func tableNode(t *Table) *html.Node {
	table := element(atom.Table)
	if style := t.Style(); style != "" {
		table.Attr = append(table.Attr, html.Attribute{Key: "class", Val: style})
	}
	if t.Autofit() == AutofitDisabled {
		table.Attr = append(table.Attr, html.Attribute{Key: "style", Val: "table-layout:fixed"})
	}

	colgroup := element(atom.Colgroup)
	for col := range t.Columns().All() {
		c := element(atom.Col)
		if width, ok := col.Width(); ok {
			c.Attr = append(c.Attr, html.Attribute{Key: "style", Val: cssWidth(width)})
		}
		colgroup.AppendChild(c)
	}
	table.AppendChild(colgroup)

	tbody := element(atom.Tbody)
	spans := t.grid.spans()
	for r, row := range t.grid.rows {
		tr := element(atom.Tr)
		for c, rec := range row.slots {
			sp := spans[rec]
			if sp.Row != r || sp.Col != c {
				continue
			}
			tr.AppendChild(cellNode(t, rec, sp))
		}
		tbody.AppendChild(tr)
	}
	table.AppendChild(tbody)
	return table
}

func cellNode(t *Table, rec *cellRecord, sp Span) *html.Node {
	td := element(atom.Td)
	if sp.ColSpan > 1 {
		td.Attr = append(td.Attr, html.Attribute{Key: "colspan", Val: strconv.Itoa(sp.ColSpan)})
	}
	if sp.RowSpan > 1 {
		td.Attr = append(td.Attr, html.Attribute{Key: "rowspan", Val: strconv.Itoa(sp.RowSpan)})
	}
	if width, ok := resolveCellWidth(t, rec); ok {
		td.Attr = append(td.Attr, html.Attribute{Key: "style", Val: cssWidth(width)})
	}
	for _, para := range rec.paragraphs() {
		p := element(atom.P)
		if text := para.GetText(); text != "" {
			p.AppendChild(&html.Node{Type: html.TextNode, Data: text})
		}
		td.AppendChild(p)
	}
	return td
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func cssWidth(width Length) string {
	return "width:" + strconv.FormatFloat(width.Pt(), 'f', -1, 64) + "pt"
}
