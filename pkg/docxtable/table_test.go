package docxtable

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	table, err := New(2, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, table.RowCount())
	assert.Equal(t, 3, table.ColumnCount())
	assert.Equal(t, 2, table.Rows().Len())
	assert.Equal(t, 3, table.Columns().Len())

	_, err = New(-1, 2)
	assert.True(t, errors.Is(err, ErrInvalidOperation))

	empty, err := New(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Rows().Len())
}

func TestFreshCellsAreDistinctAndEmpty(t *testing.T) {
	table, err := New(2, 2)
	require.NoError(t, err)

	var cells []*Cell
	for row := range table.Rows().All() {
		cells = append(cells, row.Cells()...)
	}
	require.Len(t, cells, 4)
	for i, a := range cells {
		assert.Equal(t, "", a.Text())
		assert.Equal(t, []string{""}, a.Paragraphs())
		for _, b := range cells[i+1:] {
			assert.False(t, a.Same(b))
		}
	}
}

func TestCellOutOfRange(t *testing.T) {
	table, err := New(2, 2)
	require.NoError(t, err)

	for _, idx := range [][2]int{{2, 0}, {0, 2}, {-1, 0}, {0, -1}} {
		_, err := table.Cell(idx[0], idx[1])
		assert.True(t, errors.Is(err, ErrIndexOutOfRange), "Cell(%d, %d)", idx[0], idx[1])
	}

	_, err = table.Rows().At(2)
	assert.True(t, IsIndexError(err))
	_, err = table.Columns().At(-1)
	assert.True(t, IsIndexError(err))
}

func TestAddRow(t *testing.T) {
	table, err := New(2, 3)
	require.NoError(t, err)

	row := table.AddRow()
	assert.Equal(t, 2, row.Index())
	assert.Same(t, table, row.Table())
	assert.Equal(t, 3, table.Rows().Len())

	cells := row.Cells()
	require.Len(t, cells, 3)
	for _, cell := range cells {
		assert.Equal(t, "", cell.Text())
		sp, err := cell.Span()
		require.NoError(t, err)
		assert.Equal(t, 1, sp.RowSpan)
		assert.Equal(t, 1, sp.ColSpan)
	}
}

func TestAddColumn(t *testing.T) {
	table, err := New(2, 2)
	require.NoError(t, err)

	col := table.AddColumn()
	assert.Equal(t, 2, col.Index())
	assert.Equal(t, 3, table.Columns().Len())
	assert.Equal(t, 2, table.Rows().Len())
	assert.Len(t, col.Cells(), 2)
	for _, cell := range col.Cells() {
		assert.Equal(t, "", cell.Text())
	}
	for row := range table.Rows().All() {
		assert.Len(t, row.Cells(), 3)
	}
	_, ok := col.Width()
	assert.False(t, ok)

	wide, err := table.AddColumnWithWidth(Inches(1.25))
	require.NoError(t, err)
	width, ok := wide.Width()
	require.True(t, ok)
	assert.Equal(t, Inches(1.25), width)

	_, err = table.AddColumnWithWidth(-1)
	assert.True(t, errors.Is(err, ErrInvalidOperation))
	assert.Equal(t, 4, table.ColumnCount())
}

func TestAddColumnAfterMerge(t *testing.T) {
	table := numbered(t, 2, 2)
	_, err := cellN(t, table, 1).Merge(cellN(t, table, 3))
	require.NoError(t, err)

	table.AddColumn()
	a, _ := table.Cell(0, 2)
	b, _ := table.Cell(1, 2)
	assert.False(t, a.Same(b), "new column cells are never part of an existing span")
}

func TestIterationOrder(t *testing.T) {
	table, err := New(2, 2)
	require.NoError(t, err)

	var rows []int
	for row := range table.Rows().All() {
		rows = append(rows, row.Index())
	}
	assert.Equal(t, []int{0, 1}, rows)

	var cols []int
	for col := range table.Columns().All() {
		cols = append(cols, col.Index())
	}
	assert.Equal(t, []int{0, 1}, cols)

	// the sequences are restartable and stop early
	count := 0
	for range table.Rows().All() {
		count++
		break
	}
	assert.Equal(t, 1, count)
	count = 0
	for range table.Rows().All() {
		count++
	}
	assert.Equal(t, 2, count)
}

func TestCollectionsAreLive(t *testing.T) {
	table, err := New(1, 1)
	require.NoError(t, err)

	rows := table.Rows()
	cols := table.Columns()
	table.AddRow()
	table.AddColumn()

	assert.Equal(t, 2, rows.Len())
	assert.Equal(t, 2, cols.Len())
}

func TestColumnWidth(t *testing.T) {
	table, err := New(1, 2)
	require.NoError(t, err)
	col, err := table.Columns().At(0)
	require.NoError(t, err)

	_, ok := col.Width()
	assert.False(t, ok)

	require.NoError(t, col.SetWidth(Twips(1440)))
	width, ok := col.Width()
	require.True(t, ok)
	assert.Equal(t, Length(914400), width)

	col.ClearWidth()
	_, ok = col.Width()
	assert.False(t, ok)

	assert.True(t, errors.Is(col.SetWidth(-5), ErrInvalidOperation))
}

func TestColumnWidthExactValue(t *testing.T) {
	doc, err := NewDocument()
	require.NoError(t, err)
	_, err = doc.AddTable(1, 2)
	require.NoError(t, err)

	col, err := doc.Tables()[0].Columns().At(1)
	require.NoError(t, err)
	require.NoError(t, col.SetWidth(Length(1440)))
	width, ok := col.Width()
	require.True(t, ok)
	assert.Equal(t, Length(1440), width)

	// 1440 EMU is stored as 2 twips on disk
	reread := reopen(t, doc)
	col, err = reread.Tables()[0].Columns().At(1)
	require.NoError(t, err)
	width, ok = col.Width()
	require.True(t, ok)
	assert.Equal(t, Twips(2), width)
	assert.Equal(t, Length(1270), width)
}

func TestCellWidthInheritance(t *testing.T) {
	table, err := New(1, 2)
	require.NoError(t, err)
	cell, err := table.Cell(0, 0)
	require.NoError(t, err)

	_, ok := cell.Width()
	assert.False(t, ok, "no cell or column width set")

	col, _ := table.Columns().At(0)
	require.NoError(t, col.SetWidth(Inches(1)))
	width, ok := cell.Width()
	require.True(t, ok)
	assert.Equal(t, Length(914400), width)

	require.NoError(t, cell.SetWidth(Inches(2)))
	width, _ = cell.Width()
	assert.Equal(t, Inches(2), width)

	other, _ := table.Cell(0, 1)
	_, ok = other.Width()
	assert.False(t, ok, "setting one cell width leaves other cells alone")

	cell.ClearWidth()
	width, _ = cell.Width()
	assert.Equal(t, Inches(1), width)

	assert.True(t, errors.Is(cell.SetWidth(-1), ErrInvalidOperation))
}

func TestCellText(t *testing.T) {
	table, err := New(1, 1)
	require.NoError(t, err)
	cell, _ := table.Cell(0, 0)

	cell.AddParagraph("first")
	assert.Equal(t, []string{"first"}, cell.Paragraphs())
	cell.AddParagraph("second")
	assert.Equal(t, "first\nsecond", cell.Text())

	cell.SetText("a\nb\nc")
	assert.Equal(t, []string{"a", "b", "c"}, cell.Paragraphs())
	cell.SetText("")
	assert.Equal(t, []string{""}, cell.Paragraphs())
}

func TestTableStyle(t *testing.T) {
	table, err := New(1, 1)
	require.NoError(t, err)

	assert.False(t, table.HasStyle())
	assert.Equal(t, GetGlobalConfig().DefaultTableStyle, table.Style())

	table.SetStyle("LightShading-Accent1")
	assert.True(t, table.HasStyle())
	assert.Equal(t, "LightShading-Accent1", table.Style())

	table.ClearStyle()
	assert.False(t, table.HasStyle())
}

func TestTableAutofit(t *testing.T) {
	table, err := New(1, 1)
	require.NoError(t, err)
	col, _ := table.Columns().At(0)
	require.NoError(t, col.SetWidth(Inches(3)))

	assert.Equal(t, AutofitUnset, table.Autofit())
	for _, a := range []Autofit{AutofitEnabled, AutofitDisabled, AutofitUnset} {
		require.NoError(t, table.SetAutofit(a))
		assert.Equal(t, a, table.Autofit())
	}

	width, _ := col.Width()
	assert.Equal(t, Inches(3), width, "autofit has no side effect on widths")

	assert.True(t, errors.Is(table.SetAutofit(Autofit(7)), ErrInvalidOperation))
}

func TestParseAutofit(t *testing.T) {
	tests := []struct {
		token    string
		expected Autofit
	}{
		{"autofit", AutofitEnabled},
		{"True", AutofitEnabled},
		{" fixed ", AutofitDisabled},
		{"false", AutofitDisabled},
		{"unset", AutofitUnset},
		{"inherit", AutofitUnset},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseAutofit(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := ParseAutofit("sometimes")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, IsLookupError(err))
}

func TestAutofitBool(t *testing.T) {
	v, ok := AutofitEnabled.Bool()
	assert.True(t, v)
	assert.True(t, ok)
	v, ok = AutofitDisabled.Bool()
	assert.False(t, v)
	assert.True(t, ok)
	_, ok = AutofitUnset.Bool()
	assert.False(t, ok)

	assert.Equal(t, AutofitEnabled, AutofitFromBool(true))
	assert.Equal(t, AutofitDisabled, AutofitFromBool(false))
	assert.Equal(t, "fixed", AutofitDisabled.String())
}
