package docxtable

import "fmt"

// merge unifies the rectangle enclosing the spans of a and b under a single
// record. The grid is validated before anything is changed, so an error
// leaves it untouched.
func (g *grid) merge(a, b *cellRecord) (*cellRecord, error) {
	spans := g.spans()
	sa, ok := spans[a]
	if !ok {
		return nil, NewOperationError("merge", "cell is no longer part of the table")
	}
	sb, ok := spans[b]
	if !ok {
		return nil, NewOperationError("merge", "other cell is no longer part of the table")
	}

	rect := sa.union(sb)
	var members []*cellRecord
	seen := make(map[*cellRecord]bool)
	for r := rect.Row; r <= rect.LastRow(); r++ {
		for c := rect.Col; c <= rect.LastCol(); c++ {
			rec := g.rows[r].slots[c]
			if seen[rec] {
				continue
			}
			if !rect.Contains(spans[rec]) {
				return nil, NewOperationError("merge", fmt.Sprintf(
					"requested span not rectangular: cell at (%d, %d) extends outside rows %d-%d, columns %d-%d",
					spans[rec].Row, spans[rec].Col, rect.Row, rect.LastRow(), rect.Col, rect.LastCol()))
			}
			seen[rec] = true
			members = append(members, rec)
		}
	}

	top := members[0]
	width := g.mergedWidth(rect, spans)
	for _, rec := range members[1:] {
		top.absorb(rec)
	}
	top.width = width
	if width != nil {
		top.rawWidth = nil
	}
	for r := rect.Row; r <= rect.LastRow(); r++ {
		for c := rect.Col; c <= rect.LastCol(); c++ {
			g.rows[r].slots[c] = top
		}
	}
	return top, nil
}

// mergedWidth sums the widths of the distinct cells along the top row of
// rect. A cell without an explicit width contributes the width of the grid
// columns it covers. The result is nil if any part cannot be resolved.
func (g *grid) mergedWidth(rect Span, spans map[*cellRecord]Span) *Length {
	var total Length
	for c := rect.Col; c <= rect.LastCol(); {
		rec := g.rows[rect.Row].slots[c]
		sp := spans[rec]
		w, ok := g.recordWidth(rec, sp)
		if !ok {
			return nil
		}
		total += w
		c = sp.LastCol() + 1
	}
	return &total
}

// recordWidth resolves the width of a record: explicit, else its columns
func (g *grid) recordWidth(rec *cellRecord, sp Span) (Length, bool) {
	if rec.width != nil {
		return *rec.width, true
	}
	return g.columnWidth(sp.Col, sp.ColSpan)
}
