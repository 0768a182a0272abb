package docxtable

import (
	"fmt"

	"github.com/benjaminschreck/go-docxtable/pkg/docxtable/xml"
)

// maxTableColumns is the widest table Word will create
const maxTableColumns = 63

// decodeTable builds the slot grid of a w:tbl. gridSpan widens a cell across
// columns and a continuing vMerge joins it to the cell above when both cover
// the same columns. Short rows are padded with empty cells. A row may not be
// wider than the declared grid or maxTableColumns, whichever is larger.
func decodeTable(x *xml.Table) (*Table, error) {
	t := &Table{}

	if x.Grid != nil {
		for _, col := range x.Grid.Columns {
			if col.Width == nil {
				t.grid.colWidths = append(t.grid.colWidths, nil)
				continue
			}
			w := Twips(*col.Width)
			t.grid.colWidths = append(t.grid.colWidths, &w)
		}
	}

	if p := x.Properties; p != nil {
		if p.Style != nil {
			t.style = p.Style.Val
		}
		if p.Layout != nil {
			if p.Layout.Type == xml.LayoutFixed {
				t.autofit = AutofitDisabled
			} else {
				t.autofit = AutofitEnabled
			}
		}
		t.width = p.Width
		t.props = p.Other
	}

	width := len(t.grid.colWidths)
	limit := max(width, maxTableColumns)
	for ri := range x.Rows {
		xr := &x.Rows[ri]
		row := &rowRecord{props: xr.Properties, exceptions: xr.PropertyExceptions}

		var above *rowRecord
		if ri > 0 {
			above = t.grid.rows[ri-1]
		}

		for ci := range xr.Cells {
			tc := &xr.Cells[ci]
			span := 1
			if tc.Properties != nil && tc.Properties.GridSpan != nil && tc.Properties.GridSpan.Val > 1 {
				span = tc.Properties.GridSpan.Val
			}

			col := len(row.slots)
			if span > limit-col {
				return nil, NewOperationError("decode table",
					fmt.Sprintf("row %d spans more than %d columns", ri, limit))
			}
			var rec *cellRecord
			if tc.Properties != nil && tc.Properties.VMerge.Continues() && above != nil {
				rec = continuedRecord(above, col, span)
				if rec != nil {
					rec.absorb(recordFromXML(tc))
				}
			}
			if rec == nil {
				rec = recordFromXML(tc)
			}
			for k := 0; k < span; k++ {
				row.slots = append(row.slots, rec)
			}
		}

		width = max(width, len(row.slots))
		t.grid.rows = append(t.grid.rows, row)
	}

	for len(t.grid.colWidths) < width {
		t.grid.colWidths = append(t.grid.colWidths, nil)
	}
	for _, row := range t.grid.rows {
		for len(row.slots) < width {
			row.slots = append(row.slots, newCellRecord())
		}
	}
	return t, nil
}

// continuedRecord returns the record of the row above when it covers exactly
// columns [col, col+span)
func continuedRecord(above *rowRecord, col, span int) *cellRecord {
	if col+span > len(above.slots) {
		return nil
	}
	rec := above.slots[col]
	for k := 1; k < span; k++ {
		if above.slots[col+k] != rec {
			return nil
		}
	}
	if col > 0 && above.slots[col-1] == rec {
		return nil
	}
	if col+span < len(above.slots) && above.slots[col+span] == rec {
		return nil
	}
	return rec
}

func recordFromXML(tc *xml.TableCell) *cellRecord {
	rec := &cellRecord{content: tc.Content}
	if len(rec.content) == 0 {
		rec.content = []xml.BlockElement{xml.NewParagraph("")}
	}
	if p := tc.Properties; p != nil {
		if p.Width != nil {
			if p.Width.Type == xml.WidthDxa || p.Width.Type == "" {
				w := Twips(p.Width.Val)
				rec.width = &w
			} else {
				rec.rawWidth = p.Width
			}
		}
		rec.props = p.Other
	}
	return rec
}

// encodeTable writes the grid back as a w:tbl, emitting one w:tc per cell
// per row with gridSpan and vMerge describing merged spans
func encodeTable(t *Table) *xml.Table {
	x := &xml.Table{
		Properties: &xml.TableProperties{
			Width: t.width,
			Other: t.props,
		},
		Grid: &xml.TableGrid{},
	}
	if t.style != "" {
		x.Properties.Style = &xml.Style{Val: t.style}
	}
	switch t.autofit {
	case AutofitEnabled:
		x.Properties.Layout = &xml.TableLayout{Type: xml.LayoutAutofit}
	case AutofitDisabled:
		x.Properties.Layout = &xml.TableLayout{Type: xml.LayoutFixed}
	}

	for _, w := range t.grid.colWidths {
		col := xml.GridColumn{}
		if w != nil {
			twips := w.Twips()
			col.Width = &twips
		}
		x.Grid.Columns = append(x.Grid.Columns, col)
	}

	spans := t.grid.spans()
	for r, row := range t.grid.rows {
		xr := xml.TableRow{Properties: row.props, PropertyExceptions: row.exceptions}
		for c := 0; c < len(row.slots); {
			rec := row.slots[c]
			sp := spans[rec]
			xr.Cells = append(xr.Cells, encodeCell(rec, sp, r))
			c += sp.ColSpan
		}
		x.Rows = append(x.Rows, xr)
	}
	return x
}

func encodeCell(rec *cellRecord, sp Span, row int) xml.TableCell {
	props := &xml.TableCellProperties{
		Other: append([]xml.RawXMLElement(nil), rec.props...),
	}
	switch {
	case rec.width != nil:
		props.Width = &xml.Width{Type: xml.WidthDxa, Val: rec.width.Twips()}
	case rec.rawWidth != nil:
		props.Width = rec.rawWidth
	}
	if sp.ColSpan > 1 {
		props.GridSpan = &xml.GridSpan{Val: sp.ColSpan}
	}
	if sp.RowSpan > 1 {
		if row == sp.Row {
			props.VMerge = &xml.VMerge{Val: xml.VMergeRestart}
		} else {
			props.VMerge = &xml.VMerge{}
		}
	}

	tc := xml.TableCell{Properties: props}
	if props.Width == nil && props.GridSpan == nil && props.VMerge == nil && len(props.Other) == 0 {
		tc.Properties = nil
	}
	if row == sp.Row {
		tc.Content = rec.content
	} else {
		tc.Content = []xml.BlockElement{xml.NewParagraph("")}
	}
	return tc
}
