package docxtable

import "iter"

// Rows is a live view of the rows of a table
type Rows struct {
	table *Table
}

// Len returns the number of rows
func (rs Rows) Len() int {
	return rs.table.grid.rowCount()
}

// At returns the row at index i
func (rs Rows) At(i int) (*Row, error) {
	if err := checkIndex("row", i, rs.Len()); err != nil {
		return nil, err
	}
	return &Row{table: rs.table, index: i}, nil
}

// All iterates the rows in order. Rows added while iterating are visited.
func (rs Rows) All() iter.Seq[*Row] {
	return func(yield func(*Row) bool) {
		for i := 0; i < rs.Len(); i++ {
			if !yield(&Row{table: rs.table, index: i}) {
				return
			}
		}
	}
}

// Row is a view of one row of a table
type Row struct {
	table *Table
	index int
}

// Index returns the position of the row in its table
func (r *Row) Index() int {
	return r.index
}

// Table returns the table the row belongs to
func (r *Row) Table() *Table {
	return r.table
}

// Cells returns the cell at every slot of the row. A horizontally merged
// cell appears once per column it covers.
func (r *Row) Cells() []*Cell {
	slots := r.table.grid.rows[r.index].slots
	cells := make([]*Cell, len(slots))
	for i, rec := range slots {
		cells[i] = &Cell{table: r.table, rec: rec}
	}
	return cells
}

// Columns is a live view of the columns of a table
type Columns struct {
	table *Table
}

// Len returns the number of columns
func (cs Columns) Len() int {
	return cs.table.grid.colCount()
}

// At returns the column at index i
func (cs Columns) At(i int) (*Column, error) {
	if err := checkIndex("column", i, cs.Len()); err != nil {
		return nil, err
	}
	return &Column{table: cs.table, index: i}, nil
}

// All iterates the columns in order
func (cs Columns) All() iter.Seq[*Column] {
	return func(yield func(*Column) bool) {
		for i := 0; i < cs.Len(); i++ {
			if !yield(&Column{table: cs.table, index: i}) {
				return
			}
		}
	}
}

// Column is a view of one grid column of a table
type Column struct {
	table *Table
	index int
}

// Index returns the position of the column in its table
func (c *Column) Index() int {
	return c.index
}

// Table returns the table the column belongs to
func (c *Column) Table() *Table {
	return c.table
}

// Cells returns the cell at this column's slot in every row. A vertically
// merged cell appears once per row it covers.
func (c *Column) Cells() []*Cell {
	rows := c.table.grid.rows
	cells := make([]*Cell, len(rows))
	for i, row := range rows {
		cells[i] = &Cell{table: c.table, rec: row.slots[c.index]}
	}
	return cells
}

// Width returns the explicit column width; ok is false when the column
// inherits its width
func (c *Column) Width() (width Length, ok bool) {
	w := c.table.grid.colWidths[c.index]
	if w == nil {
		return 0, false
	}
	return *w, true
}

// SetWidth sets an explicit column width
func (c *Column) SetWidth(width Length) error {
	if width < 0 {
		return NewOperationError("column width", "width cannot be negative")
	}
	c.table.grid.colWidths[c.index] = &width
	return nil
}

// ClearWidth removes the explicit width so the column inherits again
func (c *Column) ClearWidth() {
	c.table.grid.colWidths[c.index] = nil
}
