package docxtable

import (
	"strings"

	"github.com/benjaminschreck/go-docxtable/pkg/docxtable/xml"
)

// Cell is a view of a table cell. Every slot of a merged cell yields a Cell
// that refers to the same underlying content.
type Cell struct {
	table *Table
	rec   *cellRecord
}

// Table returns the table the cell belongs to
func (c *Cell) Table() *Table {
	return c.table
}

// Same reports whether both views refer to the same cell
func (c *Cell) Same(other *Cell) bool {
	return other != nil && c.table == other.table && c.rec == other.rec
}

// Text returns the paragraph texts of the cell joined by newlines
func (c *Cell) Text() string {
	return c.rec.text()
}

// Paragraphs returns the text of each paragraph in the cell
func (c *Cell) Paragraphs() []string {
	paras := c.rec.paragraphs()
	texts := make([]string, len(paras))
	for i, p := range paras {
		texts[i] = p.GetText()
	}
	return texts
}

// SetText replaces the content of the cell with one paragraph per line
func (c *Cell) SetText(text string) {
	lines := strings.Split(text, "\n")
	content := make([]xml.BlockElement, len(lines))
	for i, line := range lines {
		content[i] = xml.NewParagraph(line)
	}
	c.rec.content = content
}

// AddParagraph appends a paragraph to the cell. An empty cell gives up its
// placeholder paragraph first.
func (c *Cell) AddParagraph(text string) {
	if c.rec.isEmpty() {
		c.rec.content = nil
	}
	c.rec.content = append(c.rec.content, xml.NewParagraph(text))
}

// Span returns the rectangle of grid slots the cell covers
func (c *Cell) Span() (Span, error) {
	sp, ok := c.table.grid.locate(c.rec)
	if !ok {
		return Span{}, NewOperationError("span", "cell is no longer part of the table")
	}
	return sp, nil
}

// Width resolves the cell width: the explicit cell width, else the width of
// the grid columns the cell covers. ok is false when neither is set.
func (c *Cell) Width() (width Length, ok bool) {
	return resolveCellWidth(c.table, c.rec)
}

func resolveCellWidth(t *Table, rec *cellRecord) (Length, bool) {
	if rec.width != nil {
		return *rec.width, true
	}
	sp, ok := t.grid.locate(rec)
	if !ok {
		return 0, false
	}
	return t.grid.columnWidth(sp.Col, sp.ColSpan)
}

// SetWidth sets an explicit width on this cell only
func (c *Cell) SetWidth(width Length) error {
	if width < 0 {
		return NewOperationError("cell width", "width cannot be negative")
	}
	c.rec.width = &width
	c.rec.rawWidth = nil
	return nil
}

// ClearWidth removes the explicit width so the cell inherits from its column
func (c *Cell) ClearWidth() {
	c.rec.width = nil
	c.rec.rawWidth = nil
}

// Merge merges this cell with other into a single cell covering the smallest
// rectangle that encloses both, and returns the merged cell. Content of the
// absorbed cells is appended in row-major order.
func (c *Cell) Merge(other *Cell) (*Cell, error) {
	if other == nil {
		return nil, NewOperationError("merge", "other cell is nil")
	}
	if other.table != c.table {
		return nil, NewOperationError("merge", "cells belong to different tables")
	}

	merged, err := c.table.grid.merge(c.rec, other.rec)
	if err != nil {
		return nil, err
	}
	cell := &Cell{table: c.table, rec: merged}
	if sp, err := cell.Span(); err == nil {
		c.table.log().WithFields(Fields{
			"row": sp.Row, "col": sp.Col, "rowSpan": sp.RowSpan, "colSpan": sp.ColSpan,
		}).Debug("merged cells")
	}
	return cell, nil
}
