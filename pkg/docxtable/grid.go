package docxtable

import (
	"strings"

	"github.com/benjaminschreck/go-docxtable/pkg/docxtable/xml"
)

// cellRecord is the content shared by every slot of a cell. Slots holding
// the same pointer belong to the same (possibly merged) cell.
type cellRecord struct {
	content []xml.BlockElement
	width   *Length
	// rawWidth keeps a tcW that is not expressed in twips (auto, pct)
	rawWidth *xml.Width
	// props keeps unparsed tcPr children (shading, borders, alignment)
	props []xml.RawXMLElement
}

func newCellRecord() *cellRecord {
	return &cellRecord{content: []xml.BlockElement{xml.NewParagraph("")}}
}

func (r *cellRecord) paragraphs() []*xml.Paragraph {
	var paras []*xml.Paragraph
	for _, block := range r.content {
		if p, ok := block.(*xml.Paragraph); ok {
			paras = append(paras, p)
		}
	}
	return paras
}

func (r *cellRecord) text() string {
	paras := r.paragraphs()
	texts := make([]string, len(paras))
	for i, p := range paras {
		texts[i] = p.GetText()
	}
	return strings.Join(texts, "\n")
}

// isEmpty reports whether the cell holds nothing but a single empty paragraph
func (r *cellRecord) isEmpty() bool {
	if len(r.content) != 1 {
		return len(r.content) == 0
	}
	p, ok := r.content[0].(*xml.Paragraph)
	return ok && p.GetText() == ""
}

// absorb moves the content of other into r. Empty cells contribute nothing,
// and an empty r gives up its placeholder paragraph.
func (r *cellRecord) absorb(other *cellRecord) {
	if other == r || other.isEmpty() {
		return
	}
	if r.isEmpty() {
		r.content = nil
	}
	r.content = append(r.content, other.content...)
	other.content = []xml.BlockElement{xml.NewParagraph("")}
}

type rowRecord struct {
	slots []*cellRecord
	// props and exceptions keep trPr and tblPrEx as read
	props      *xml.RawXMLElement
	exceptions *xml.RawXMLElement
}

// grid is the backing store of a table: rows of slots plus one optional
// width per column. Every row always has exactly len(colWidths) slots.
type grid struct {
	rows      []*rowRecord
	colWidths []*Length
}

func newGrid(rows, cols int) grid {
	g := grid{colWidths: make([]*Length, cols)}
	for i := 0; i < rows; i++ {
		g.appendRow()
	}
	return g
}

func (g *grid) rowCount() int {
	return len(g.rows)
}

func (g *grid) colCount() int {
	return len(g.colWidths)
}

func (g *grid) cellAt(row, col int) (*cellRecord, error) {
	if err := checkIndex("row", row, g.rowCount()); err != nil {
		return nil, err
	}
	if err := checkIndex("column", col, g.colCount()); err != nil {
		return nil, err
	}
	return g.rows[row].slots[col], nil
}

// appendRow adds a row of fresh cells and returns its index
func (g *grid) appendRow() int {
	row := &rowRecord{slots: make([]*cellRecord, g.colCount())}
	for i := range row.slots {
		row.slots[i] = newCellRecord()
	}
	g.rows = append(g.rows, row)
	return len(g.rows) - 1
}

// appendColumn adds a fresh cell to every row and returns the column index
func (g *grid) appendColumn(width *Length) int {
	g.colWidths = append(g.colWidths, width)
	for _, row := range g.rows {
		row.slots = append(row.slots, newCellRecord())
	}
	return len(g.colWidths) - 1
}

// spans maps every cell record to the rectangle of slots it owns
func (g *grid) spans() map[*cellRecord]Span {
	spans := make(map[*cellRecord]Span)
	for r, row := range g.rows {
		for c, rec := range row.slots {
			sp, ok := spans[rec]
			if !ok {
				spans[rec] = Span{Row: r, Col: c, RowSpan: 1, ColSpan: 1}
				continue
			}
			spans[rec] = sp.union(Span{Row: r, Col: c, RowSpan: 1, ColSpan: 1})
		}
	}
	return spans
}

// locate returns the span of a single record
func (g *grid) locate(rec *cellRecord) (Span, bool) {
	var sp Span
	found := false
	for r, row := range g.rows {
		for c, slot := range row.slots {
			if slot != rec {
				continue
			}
			one := Span{Row: r, Col: c, RowSpan: 1, ColSpan: 1}
			if !found {
				sp, found = one, true
				continue
			}
			sp = sp.union(one)
		}
	}
	return sp, found
}

// columnWidth resolves the combined width of a range of grid columns
func (g *grid) columnWidth(col, n int) (Length, bool) {
	var total Length
	for c := col; c < col+n; c++ {
		if c >= len(g.colWidths) || g.colWidths[c] == nil {
			return 0, false
		}
		total += *g.colWidths[c]
	}
	return total, true
}

// Span is the rectangle of slots covered by a cell
type Span struct {
	Row     int
	Col     int
	RowSpan int
	ColSpan int
}

// LastRow returns the index of the bottom row of the span
func (s Span) LastRow() int {
	return s.Row + s.RowSpan - 1
}

// LastCol returns the index of the rightmost column of the span
func (s Span) LastCol() int {
	return s.Col + s.ColSpan - 1
}

// Contains reports whether o lies entirely inside s
func (s Span) Contains(o Span) bool {
	return o.Row >= s.Row && o.LastRow() <= s.LastRow() &&
		o.Col >= s.Col && o.LastCol() <= s.LastCol()
}

// union returns the smallest span enclosing both s and o
func (s Span) union(o Span) Span {
	top := min(s.Row, o.Row)
	left := min(s.Col, o.Col)
	bottom := max(s.LastRow(), o.LastRow())
	right := max(s.LastCol(), o.LastCol())
	return Span{Row: top, Col: left, RowSpan: bottom - top + 1, ColSpan: right - left + 1}
}
