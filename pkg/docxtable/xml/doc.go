// Package xml provides XML structure definitions for the WordprocessingML parts
// that go-docxtable reads and rewrites.
//
// # Structure Organization
//
//   - types.go: BlockElement, RawXMLElement and shared property types
//   - raw.go: namespace prefix handling and raw element capture
//   - document.go: top-level Document and Body structures
//   - paragraph.go: paragraphs, runs and text
//   - table.go: Table, TableRow, TableCell and their properties
//   - styles.go: style identities from word/styles.xml
//   - section.go: page layout from section properties
//
// # Preservation
//
// Only the parts of a table the object model edits are decoded into fields:
// the style reference, layout, grid column widths, and the tcW, gridSpan and
// vMerge cell properties. Everything else (borders, shading, row properties,
// paragraph formatting) is captured as RawXMLElement and written back with the
// conventional namespace prefixes, so a document survives a read/write cycle.
//
// # XML Namespaces
//
// Elements are written with literal prefixes (w:tbl, w:tc) in the way Word
// expects. The root w:document element keeps the namespace declarations it was
// read with.
package xml
