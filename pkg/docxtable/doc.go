// Package docxtable provides an object model for the tables of Microsoft Word
// documents (DOCX).
//
// A table is a grid of slots. Each slot refers to a cell, and a merged cell is
// one cell referenced by every slot of a rectangular span. Rows and columns are
// live views over the grid, so mutations are visible through every view at
// once.
//
// # Quick Start
//
//	doc, err := docxtable.Open("report.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	table, _ := doc.Table(0)
//	a, _ := table.Cell(0, 0)
//	b, _ := table.Cell(1, 1)
//	merged, err := a.Merge(b) // one cell spanning rows 0-1, columns 0-1
//	if err != nil {
//	    log.Fatal(err)
//	}
//	merged.SetText("Totals")
//
//	col, _ := table.Columns().At(2)
//	col.SetWidth(docxtable.Inches(1.5))
//	table.SetAutofit(docxtable.AutofitDisabled)
//
//	if err := doc.SaveFile("report-edited.docx"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Widths
//
// Widths are Length values in English Metric Units (914400 per inch). A cell
// without an explicit width reports the width of the grid columns it covers;
// a column without an explicit width reports none, leaving layout to the
// table style. On disk widths are stored in twips, so values that are not a
// multiple of 635 EMU are rounded when saved.
//
// # Errors
//
// Index violations match ErrIndexOutOfRange, contract violations such as
// merging cells of different tables match ErrInvalidOperation, and unknown
// style names or autofit tokens match ErrNotFound. A failed call leaves the
// table unchanged.
//
// # Configuration
//
// Defaults are read from DOCXTABLE_* environment variables (see
// ConfigFromEnvironment) or a config file (see LoadConfigFile).
package docxtable
