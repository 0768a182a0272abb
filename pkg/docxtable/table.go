package docxtable

import (
	"github.com/benjaminschreck/go-docxtable/pkg/docxtable/xml"
)

// Table is a grid of cells with optional column widths, a style reference
// and an autofit directive. A Table is not safe for concurrent mutation.
type Table struct {
	grid    grid
	style   string
	autofit Autofit

	// width and props keep tblW and the unparsed tblPr children as read
	width *xml.Width
	props []xml.RawXMLElement

	doc *Document
}

// New creates a free-standing table of rows x cols empty cells
func New(rows, cols int) (*Table, error) {
	if rows < 0 || cols < 0 {
		return nil, NewOperationError("new table", "row and column counts cannot be negative")
	}
	return &Table{grid: newGrid(rows, cols)}, nil
}

func (t *Table) log() *Logger {
	if t.doc != nil {
		return t.doc.logger
	}
	return GetLogger()
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return t.grid.rowCount()
}

// ColumnCount returns the number of grid columns
func (t *Table) ColumnCount() int {
	return t.grid.colCount()
}

// Cell returns the cell at the given slot
func (t *Table) Cell(row, col int) (*Cell, error) {
	rec, err := t.grid.cellAt(row, col)
	if err != nil {
		return nil, err
	}
	return &Cell{table: t, rec: rec}, nil
}

// Rows returns a live view of the table rows
func (t *Table) Rows() Rows {
	return Rows{table: t}
}

// Columns returns a live view of the table columns
func (t *Table) Columns() Columns {
	return Columns{table: t}
}

// AddRow appends a row of empty cells, one per column
func (t *Table) AddRow() *Row {
	idx := t.grid.appendRow()
	t.log().WithField("row", idx).Debug("added row")
	return &Row{table: t, index: idx}
}

// AddColumn appends an empty cell to every row. The new column inherits its
// width.
func (t *Table) AddColumn() *Column {
	idx := t.grid.appendColumn(nil)
	t.log().WithField("column", idx).Debug("added column")
	return &Column{table: t, index: idx}
}

// AddColumnWithWidth appends a column with an explicit width
func (t *Table) AddColumnWithWidth(width Length) (*Column, error) {
	if width < 0 {
		return nil, NewOperationError("add column", "width cannot be negative")
	}
	idx := t.grid.appendColumn(&width)
	t.log().WithFields(Fields{"column": idx, "width": width.EMU()}).Debug("added column")
	return &Column{table: t, index: idx}, nil
}

// Style returns the style id applied to the table. Without an explicit
// style it reports the default table style of the owning document, or the
// configured default for free-standing tables.
func (t *Table) Style() string {
	if t.style != "" {
		return t.style
	}
	if t.doc != nil {
		return t.doc.defaultTableStyle()
	}
	return GetGlobalConfig().DefaultTableStyle
}

// HasStyle reports whether a style is applied explicitly
func (t *Table) HasStyle() bool {
	return t.style != ""
}

// SetStyle applies a style by id. The name is not validated against the
// document styles; see Document.LookupStyle.
func (t *Table) SetStyle(style string) {
	t.style = style
}

// ClearStyle removes the explicit style
func (t *Table) ClearStyle() {
	t.style = ""
}

// Autofit returns the layout directive of the table
func (t *Table) Autofit() Autofit {
	return t.autofit
}

// SetAutofit sets the layout directive. Column and cell widths are left
// unchanged.
func (t *Table) SetAutofit(autofit Autofit) error {
	if !autofit.valid() {
		return NewOperationError("autofit", "unknown autofit value")
	}
	t.autofit = autofit
	return nil
}
