package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-docxtable/pkg/docxtable"
)

// Version is the version reported by the version command
var Version = "0.1.0"

// tableParams selects a table and where an edited document is written
type tableParams struct {
	table  int
	output string
}

func addTableFlags(cmd *cobra.Command, params *tableParams, editable bool) {
	cmd.Flags().IntVarP(&params.table, "table", "t", 0, "index of the table in the document body")
	if editable {
		cmd.Flags().StringVarP(&params.output, "output", "o", "", "write the edited document here instead of replacing the input")
	}
}

func openTable(path string, index int) (*docxtable.Document, *docxtable.Table, error) {
	doc, err := docxtable.Open(path)
	if err != nil {
		return nil, nil, err
	}
	table, err := doc.Table(index)
	if err != nil {
		return nil, nil, docxtable.WithContext(err, "select table", map[string]interface{}{"file": path})
	}
	return doc, table, nil
}

func saveDocument(doc *docxtable.Document, input string, params tableParams) error {
	target := input
	if params.output != "" {
		target = params.output
	}
	if err := doc.SaveFile(target); err != nil {
		return err
	}
	docxtable.WithField("file", target).Info("saved document")
	return nil
}

func parseIndex(name, value string) (int, error) {
	idx, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s index %q", name, value)
	}
	return idx, nil
}

func parseSlot(rowArg, colArg string) (int, int, error) {
	row, err := parseIndex("row", rowArg)
	if err != nil {
		return 0, 0, err
	}
	col, err := parseIndex("column", colArg)
	if err != nil {
		return 0, 0, err
	}
	return row, col, nil
}

func newInspectCommand() *cobra.Command {
	var only int
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print the tables of a document",
		Long: `Print every table of a document as a grid. Slots covered by a merged cell
show "<" when the cell starts further left and "^" when it starts further up.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := docxtable.Open(args[0])
			if err != nil {
				return err
			}
			return doInspect(cmd.OutOrStdout(), doc, only)
		},
	}
	cmd.Flags().IntVarP(&only, "table", "t", -1, "index of the table to print (default all)")
	return cmd
}

func doInspect(out io.Writer, doc *docxtable.Document, only int) error {
	tables := doc.Tables()
	first := 0
	if only >= 0 {
		table, err := doc.Table(only)
		if err != nil {
			return err
		}
		tables = []*docxtable.Table{table}
		first = only
	}

	for i, table := range tables {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "Table %d: %d rows x %d columns, style %s, layout %s\n",
			first+i, table.RowCount(), table.ColumnCount(), table.Style(), table.Autofit())
		renderGrid(out, table)
	}
	return nil
}

func renderGrid(out io.Writer, table *docxtable.Table) {
	w := tablewriter.NewWriter(out)
	header := []string{""}
	for col := range table.Columns().All() {
		label := strconv.Itoa(col.Index())
		if width, ok := col.Width(); ok {
			label += " (" + width.String() + ")"
		}
		header = append(header, label)
	}
	w.SetHeader(header)
	w.SetAutoFormatHeaders(false)
	w.SetAutoWrapText(false)
	w.SetAlignment(tablewriter.ALIGN_LEFT)

	for row := range table.Rows().All() {
		line := []string{strconv.Itoa(row.Index())}
		for col, cell := range row.Cells() {
			sp, err := cell.Span()
			switch {
			case err != nil:
				line = append(line, "?")
			case sp.Row != row.Index():
				line = append(line, "^")
			case sp.Col != col:
				line = append(line, "<")
			default:
				line = append(line, strings.ReplaceAll(cell.Text(), "\n", " / "))
			}
		}
		w.Append(line)
	}
	w.Render()
}

func newCellCommand() *cobra.Command {
	var params tableParams
	var appendText bool
	cmd := &cobra.Command{
		Use:   "cell <file> <row> <col> [text]",
		Short: "Print or replace the text of a cell",
		Long: `Print the text of a cell. When text is given it replaces the cell content,
one paragraph per line, or is added as a new paragraph with --append.`,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, col, err := parseSlot(args[1], args[2])
			if err != nil {
				return err
			}
			doc, table, err := openTable(args[0], params.table)
			if err != nil {
				return err
			}
			cell, err := table.Cell(row, col)
			if err != nil {
				return err
			}
			if len(args) == 3 {
				fmt.Fprintln(cmd.OutOrStdout(), cell.Text())
				return nil
			}
			text := strings.ReplaceAll(args[3], `\n`, "\n")
			if appendText {
				cell.AddParagraph(text)
			} else {
				cell.SetText(text)
			}
			return saveDocument(doc, args[0], params)
		},
	}
	addTableFlags(cmd, &params, true)
	cmd.Flags().BoolVar(&appendText, "append", false, "add the text as a new paragraph")
	return cmd
}

func newAddRowCommand() *cobra.Command {
	var params tableParams
	cmd := &cobra.Command{
		Use:   "add-row <file> [text...]",
		Short: "Append a row to a table",
		Long:  `Append a row of empty cells to a table. Optional arguments fill its cells from the left.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, table, err := openTable(args[0], params.table)
			if err != nil {
				return err
			}
			texts := args[1:]
			if len(texts) > table.ColumnCount() {
				return fmt.Errorf("%d values given for a table of %d columns", len(texts), table.ColumnCount())
			}
			row := table.AddRow()
			cells := row.Cells()
			for i, text := range texts {
				cells[i].SetText(text)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added row %d\n", row.Index())
			return saveDocument(doc, args[0], params)
		},
	}
	addTableFlags(cmd, &params, true)
	return cmd
}

func newAddColumnCommand() *cobra.Command {
	var params tableParams
	var width string
	cmd := &cobra.Command{
		Use:   "add-column <file>",
		Short: "Append a column to a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, table, err := openTable(args[0], params.table)
			if err != nil {
				return err
			}
			var col *docxtable.Column
			if width == "" {
				col = table.AddColumn()
			} else {
				length, err := docxtable.ParseLength(width)
				if err != nil {
					return err
				}
				if col, err = table.AddColumnWithWidth(length); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added column %d\n", col.Index())
			return saveDocument(doc, args[0], params)
		},
	}
	addTableFlags(cmd, &params, true)
	cmd.Flags().StringVar(&width, "width", "", "width of the new column, e.g. 1.5in or 3cm")
	return cmd
}

func newMergeCommand() *cobra.Command {
	var params tableParams
	cmd := &cobra.Command{
		Use:   "merge <file> <row> <col> <other-row> <other-col>",
		Short: "Merge two cells and everything between them",
		Long: `Merge the cell at <row> <col> with the cell at <other-row> <other-col>. The
result covers the smallest rectangle enclosing both cells; the merge is
rejected when that rectangle would cut through another merged cell.`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, col, err := parseSlot(args[1], args[2])
			if err != nil {
				return err
			}
			otherRow, otherCol, err := parseSlot(args[3], args[4])
			if err != nil {
				return err
			}
			doc, table, err := openTable(args[0], params.table)
			if err != nil {
				return err
			}
			a, err := table.Cell(row, col)
			if err != nil {
				return err
			}
			b, err := table.Cell(otherRow, otherCol)
			if err != nil {
				return err
			}
			merged, err := a.Merge(b)
			if err != nil {
				return err
			}
			sp, err := merged.Span()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "merged rows %d-%d, columns %d-%d\n", sp.Row, sp.LastRow(), sp.Col, sp.LastCol())
			return saveDocument(doc, args[0], params)
		},
	}
	addTableFlags(cmd, &params, true)
	return cmd
}

func newWidthCommand() *cobra.Command {
	var params tableParams
	var row, col int
	cmd := &cobra.Command{
		Use:   "width <file> [length|none]",
		Short: "Print or set a column or cell width",
		Long: `Print or set the width of the column given by --col, or of a single cell
when --row is given as well. "none" removes the explicit width.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, table, err := openTable(args[0], params.table)
			if err != nil {
				return err
			}

			var width widthSetting
			if row < 0 {
				column, err := table.Columns().At(col)
				if err != nil {
					return err
				}
				width = column
			} else {
				cell, err := table.Cell(row, col)
				if err != nil {
					return err
				}
				width = cell
			}

			if len(args) == 1 {
				if w, ok := width.Width(); ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%s (%d EMU)\n", w, w.EMU())
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "none")
				}
				return nil
			}

			if strings.EqualFold(args[1], "none") {
				width.ClearWidth()
			} else {
				length, err := docxtable.ParseLength(args[1])
				if err != nil {
					return err
				}
				if err := width.SetWidth(length); err != nil {
					return err
				}
			}
			return saveDocument(doc, args[0], params)
		},
	}
	addTableFlags(cmd, &params, true)
	cmd.Flags().IntVar(&col, "col", 0, "column index")
	cmd.Flags().IntVar(&row, "row", -1, "row index; selects a cell instead of the whole column")
	return cmd
}

// widthSetting is implemented by columns and cells
type widthSetting interface {
	Width() (docxtable.Length, bool)
	SetWidth(docxtable.Length) error
	ClearWidth()
}

func newStyleCommand() *cobra.Command {
	var params tableParams
	var clearStyle bool
	cmd := &cobra.Command{
		Use:   "style <file> [name]",
		Short: "Print or apply a table style",
		Long: `Print the style of a table, or apply the table style with the given id or UI
name, e.g. "Light Shading Accent 1".`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, table, err := openTable(args[0], params.table)
			if err != nil {
				return err
			}
			switch {
			case clearStyle:
				table.ClearStyle()
			case len(args) == 2:
				id, err := doc.LookupStyle(args[1])
				if err != nil {
					return fmt.Errorf("%w (available: %s)", err, strings.Join(doc.TableStyles(), ", "))
				}
				table.SetStyle(id)
			default:
				fmt.Fprintln(cmd.OutOrStdout(), table.Style())
				return nil
			}
			return saveDocument(doc, args[0], params)
		},
	}
	addTableFlags(cmd, &params, true)
	cmd.Flags().BoolVar(&clearStyle, "clear", false, "remove the explicit style")
	return cmd
}

func newAutofitCommand() *cobra.Command {
	var params tableParams
	cmd := &cobra.Command{
		Use:   "autofit <file> [autofit|fixed|unset]",
		Short: "Print or set the layout of a table",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, table, err := openTable(args[0], params.table)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				fmt.Fprintln(cmd.OutOrStdout(), table.Autofit())
				return nil
			}
			autofit, err := docxtable.ParseAutofit(args[1])
			if err != nil {
				return err
			}
			if err := table.SetAutofit(autofit); err != nil {
				return err
			}
			return saveDocument(doc, args[0], params)
		},
	}
	addTableFlags(cmd, &params, true)
	return cmd
}

func newExportHTMLCommand() *cobra.Command {
	var params tableParams
	cmd := &cobra.Command{
		Use:   "export-html <file>",
		Short: "Write a table as HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			_, table, err := openTable(args[0], params.table)
			if err != nil {
				return err
			}
			if params.output == "" {
				return docxtable.RenderHTML(cmd.OutOrStdout(), table)
			}
			f, err := os.Create(params.output)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := f.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()
			return docxtable.RenderHTML(f, table)
		},
	}
	addTableFlags(cmd, &params, false)
	cmd.Flags().StringVarP(&params.output, "output", "o", "", "write the HTML to this file instead of stdout")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of docxtable",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			generateVersionOutput(cmd.OutOrStdout())
		},
	}
}

func generateVersionOutput(out io.Writer) {
	fmt.Fprintln(out, "Version: "+Version)
	fmt.Fprintln(out, "Go Version: "+runtime.Version())
	fmt.Fprintln(out, "Platform: "+runtime.GOOS+"/"+runtime.GOARCH)
}

// exitCode maps an error to the process exit status
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, docxtable.ErrIndexOutOfRange), errors.Is(err, docxtable.ErrNotFound):
		return 2
	case errors.Is(err, docxtable.ErrInvalidOperation):
		return 3
	default:
		return 1
	}
}
