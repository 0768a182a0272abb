package docxtable

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spanStates indexes the tables of cellAccessBody
var spanStates = map[string]int{
	"only uniform cells": 0,
	"a horizontal span":  1,
	"a vertical span":    2,
	"a combined span":    3,
}

func given3x3Table(t *testing.T, spanState string) *Table {
	t.Helper()
	idx, ok := spanStates[spanState]
	require.True(t, ok, "unknown span state %q", spanState)
	table, err := openBody(t, cellAccessBody()).Table(idx)
	require.NoError(t, err)
	return table
}

// rowCellsText joins the text of every row slot, encoding paragraph breaks
// as backslashes
func rowCellsText(table *Table) string {
	var texts []string
	for row := range table.Rows().All() {
		for _, cell := range row.Cells() {
			texts = append(texts, cell.Text())
		}
	}
	return strings.ReplaceAll(strings.Join(texts, " "), "\n", `\`)
}

func columnCellsText(table *Table) string {
	var texts []string
	for col := range table.Columns().All() {
		for _, cell := range col.Cells() {
			texts = append(texts, cell.Text())
		}
	}
	return strings.Join(texts, " ")
}

func mergeFromCellToCell(t *testing.T, table *Table, origin, other int) error {
	t.Helper()
	a := cellN(t, table, origin)
	b := cellN(t, table, other)
	_, err := a.Merge(b)
	return err
}

func TestAccessCellsOfSpannedTables(t *testing.T) {
	tests := []struct {
		spanState   string
		columnCells string
		cellText    [3][3]string
	}{
		{"only uniform cells", "1 4 7 2 5 8 3 6 9", [3][3]string{{"1", "2", "3"}, {"4", "5", "6"}, {"7", "8", "9"}}},
		{"a horizontal span", "1 4 7 1 5 8 3 6 9", [3][3]string{{"1", "1", "3"}, {"4", "5", "6"}, {"7", "8", "9"}}},
		{"a vertical span", "1 1 7 2 5 8 3 6 9", [3][3]string{{"1", "2", "3"}, {"1", "5", "6"}, {"7", "8", "9"}}},
		{"a combined span", "1 1 7 1 1 8 3 6 9", [3][3]string{{"1", "1", "3"}, {"1", "1", "6"}, {"7", "8", "9"}}},
	}

	for _, tt := range tests {
		t.Run(tt.spanState, func(t *testing.T) {
			table := given3x3Table(t, tt.spanState)

			assert.Equal(t, tt.columnCells, columnCellsText(table), "the column cells text")
			for row := 0; row < 3; row++ {
				for col := 0; col < 3; col++ {
					cell, err := table.Cell(row, col)
					require.NoError(t, err)
					assert.Equal(t, tt.cellText[row][col], cell.Text(), "table.cell(%d, %d).text", row, col)
				}
			}
		})
	}
}

func TestMergeCellsOfSpannedTables(t *testing.T) {
	tests := []struct {
		spanState string
		origin    int
		other     int
		rowCells  string
		widthCell int
		inches    float64
	}{
		{"only uniform cells", 1, 2, `1\2 1\2 3 4 5 6 7 8 9`, 1, 2},
		{"only uniform cells", 1, 5, `1\2\4\5 1\2\4\5 3 1\2\4\5 1\2\4\5 6 7 8 9`, 1, 2},
		{"only uniform cells", 2, 8, `1 2\5\8 3 4 2\5\8 6 7 2\5\8 9`, 2, 1},
		{"only uniform cells", 4, 9, `1 2 3 4\5\6\7\8\9 4\5\6\7\8\9 4\5\6\7\8\9 4\5\6\7\8\9 4\5\6\7\8\9 4\5\6\7\8\9`, 4, 3},
		{"a horizontal span", 1, 6, `1\3\4\5\6 1\3\4\5\6 1\3\4\5\6 1\3\4\5\6 1\3\4\5\6 1\3\4\5\6 7 8 9`, 1, 3},
		{"a horizontal span", 2, 5, `1\4\5 1\4\5 3 1\4\5 1\4\5 6 7 8 9`, 1, 2},
		{"a vertical span", 4, 5, `1\2\5 1\2\5 3 1\2\5 1\2\5 6 7 8 9`, 1, 2},
		{"a vertical span", 2, 3, `1 2\3 2\3 1 5 6 7 8 9`, 2, 2},
		{"a combined span", 5, 9, `1\3\6\7\8\9 1\3\6\7\8\9 1\3\6\7\8\9 1\3\6\7\8\9 1\3\6\7\8\9 1\3\6\7\8\9 1\3\6\7\8\9 1\3\6\7\8\9 1\3\6\7\8\9`, 1, 3},
		{"a combined span", 3, 6, `1 1 3\6 1 1 3\6 7 8 9`, 3, 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %d to %d", tt.spanState, tt.origin, tt.other), func(t *testing.T) {
			table := given3x3Table(t, tt.spanState)
			require.NoError(t, mergeFromCellToCell(t, table, tt.origin, tt.other))

			assert.Equal(t, tt.rowCells, rowCellsText(table), "the row cells text")
			width, ok := cellN(t, table, tt.widthCell).Width()
			require.True(t, ok)
			assert.Equal(t, Inches(tt.inches), width, "the width of cell %d", tt.widthCell)

			// the merged layout survives a save
			reread := reopen(t, table.doc)
			saved, err := reread.Table(spanStates[tt.spanState])
			require.NoError(t, err)
			assert.Equal(t, tt.rowCells, rowCellsText(saved))
		})
	}
}

func TestMergeCellsOfSpannedTablesRejectsPartialSpans(t *testing.T) {
	tests := []struct {
		spanState string
		origin    int
		other     int
	}{
		{"a horizontal span", 3, 5},
		{"a vertical span", 7, 5},
		{"a combined span", 6, 8},
	}

	for _, tt := range tests {
		t.Run(tt.spanState, func(t *testing.T) {
			table := given3x3Table(t, tt.spanState)
			before := rowCellsText(table)

			err := mergeFromCellToCell(t, table, tt.origin, tt.other)
			require.Error(t, err)
			assert.True(t, IsOperationError(err))
			assert.Equal(t, before, rowCellsText(table), "a rejected merge leaves the table unchanged")
		})
	}
}

func TestAddColumnToTable(t *testing.T) {
	doc, err := NewDocument()
	require.NoError(t, err)
	table, err := doc.AddTable(2, 2)
	require.NoError(t, err)

	column := table.AddColumn()

	assert.Len(t, column.Cells(), 2, "the new column has 2 cells")
	assert.Equal(t, 3, table.Columns().Len(), "the table has 3 columns")
	assert.Equal(t, 2, table.Rows().Len())
}

func TestAddRowToTable(t *testing.T) {
	doc, err := NewDocument()
	require.NoError(t, err)
	table, err := doc.AddTable(2, 2)
	require.NoError(t, err)

	row := table.AddRow()

	assert.Len(t, row.Cells(), 2, "the new row has 2 cells")
	assert.Equal(t, 3, table.Rows().Len(), "the table has 3 rows")
}

func TestTableCollections(t *testing.T) {
	table, err := openBody(t, blockContainingTableBody()).Table(0)
	require.NoError(t, err)

	t.Run("column collection", func(t *testing.T) {
		columns := table.Columns()
		assert.Equal(t, 2, columns.Len())
		for idx := 0; idx < 2; idx++ {
			column, err := columns.At(idx)
			require.NoError(t, err)
			assert.Equal(t, idx, column.Index())
		}
		count := 0
		for column := range columns.All() {
			assert.Equal(t, count, column.Index())
			count++
		}
		assert.Equal(t, 2, count)
	})

	t.Run("row collection", func(t *testing.T) {
		rows := table.Rows()
		assert.Equal(t, 2, rows.Len())
		for idx := 0; idx < 2; idx++ {
			row, err := rows.At(idx)
			require.NoError(t, err)
			assert.Equal(t, idx, row.Index())
		}
		count := 0
		for row := range rows.All() {
			assert.Equal(t, count, row.Index())
			count++
		}
		assert.Equal(t, 2, count)
	})
}

func TestTableStyleScenarios(t *testing.T) {
	t.Run("get applied style", func(t *testing.T) {
		table, err := openBody(t, appliedStyleBody()).Table(0)
		require.NoError(t, err)
		assert.Equal(t, "LightShading-Accent1", table.Style())
	})

	t.Run("apply style", func(t *testing.T) {
		doc, err := NewDocument()
		require.NoError(t, err)
		table, err := doc.AddTable(2, 2)
		require.NoError(t, err)

		table.SetStyle("LightShading-Accent1")
		assert.Equal(t, "LightShading-Accent1", table.Style())

		reread := reopen(t, doc)
		assert.Equal(t, "LightShading-Accent1", reread.Tables()[0].Style())
	})
}

func TestTableAutofitScenarios(t *testing.T) {
	layouts := map[string]int{"no explicit setting": 0, "autofit": 1, "fixed": 2}

	t.Run("get", func(t *testing.T) {
		doc := openBody(t, tablePropsBody())
		for desc, want := range map[string]Autofit{
			"no explicit setting": AutofitUnset,
			"autofit":             AutofitEnabled,
			"fixed":               AutofitDisabled,
		} {
			table, err := doc.Table(layouts[desc])
			require.NoError(t, err)
			assert.Equal(t, want, table.Autofit(), desc)
		}
	})

	for from := range layouts {
		for _, setting := range []string{"autofit", "fixed"} {
			t.Run(from+" set to "+setting, func(t *testing.T) {
				doc := openBody(t, tablePropsBody())
				table, err := doc.Table(layouts[from])
				require.NoError(t, err)

				autofit, err := ParseAutofit(setting)
				require.NoError(t, err)
				require.NoError(t, table.SetAutofit(autofit))

				want := AutofitFromBool(setting == "autofit")
				assert.Equal(t, want, table.Autofit())

				saved, err := reopen(t, doc).Table(layouts[from])
				require.NoError(t, err)
				assert.Equal(t, want, saved.Autofit())
			})
		}
	}
}

func TestTableCellWidthScenarios(t *testing.T) {
	widths := map[string]int{"no explicit setting": 0, "1 inch": 1, "2 inches": 2}

	givenCell := func(t *testing.T, desc string) (*Document, *Cell) {
		doc := openBody(t, tablePropsBody())
		table, err := doc.Table(widths[desc])
		require.NoError(t, err)
		cell, err := table.Cell(0, 0)
		require.NoError(t, err)
		return doc, cell
	}

	t.Run("no explicit setting is reported as none", func(t *testing.T) {
		_, cell := givenCell(t, "no explicit setting")
		_, ok := cell.Width()
		assert.False(t, ok)
	})

	t.Run("1 inch", func(t *testing.T) {
		_, cell := givenCell(t, "1 inch")
		width, ok := cell.Width()
		require.True(t, ok)
		assert.Equal(t, Inches(1), width)
	})

	for _, from := range []string{"no explicit setting", "2 inches"} {
		t.Run(from+" set to 1 inch", func(t *testing.T) {
			doc, cell := givenCell(t, from)
			require.NoError(t, cell.SetWidth(Inches(1)))

			width, ok := cell.Width()
			require.True(t, ok)
			assert.Equal(t, Length(914400), width)

			table, err := reopen(t, doc).Table(widths[from])
			require.NoError(t, err)
			saved, err := table.Cell(0, 0)
			require.NoError(t, err)
			width, _ = saved.Width()
			assert.Equal(t, Inches(1), width)
		})
	}
}

func TestTableColumnWidthScenarios(t *testing.T) {
	columns := map[string]int{"no explicit setting": 0, "1440": 1}

	givenColumn := func(t *testing.T, desc string) (*Document, *Column) {
		doc := openBody(t, columnPropsBody())
		table, err := doc.Table(0)
		require.NoError(t, err)
		column, err := table.Columns().At(columns[desc])
		require.NoError(t, err)
		return doc, column
	}

	t.Run("get", func(t *testing.T) {
		_, column := givenColumn(t, "no explicit setting")
		_, ok := column.Width()
		assert.False(t, ok)

		_, column = givenColumn(t, "1440")
		width, ok := column.Width()
		require.True(t, ok)
		assert.Equal(t, Length(914400), width)
	})

	tests := []struct {
		from string
		set  *Length
	}{
		{"no explicit setting", ptr(Length(914400))},
		{"no explicit setting", nil},
		{"1440", ptr(Length(457200))},
		{"1440", nil},
	}
	for _, tt := range tests {
		name := tt.from + " set to None"
		if tt.set != nil {
			name = tt.from + " set to " + tt.set.String()
		}
		t.Run(name, func(t *testing.T) {
			doc, column := givenColumn(t, tt.from)
			if tt.set == nil {
				column.ClearWidth()
			} else {
				require.NoError(t, column.SetWidth(*tt.set))
			}

			check := func(c *Column) {
				width, ok := c.Width()
				if tt.set == nil {
					assert.False(t, ok)
					return
				}
				require.True(t, ok)
				assert.Equal(t, *tt.set, width)
			}
			check(column)

			table, err := reopen(t, doc).Table(0)
			require.NoError(t, err)
			saved, err := table.Columns().At(column.Index())
			require.NoError(t, err)
			check(saved)
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
