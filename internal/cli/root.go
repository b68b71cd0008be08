// Package cli implements the termtable command.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bjaus/termtable"
	"github.com/bjaus/termtable/internal/input"
)

type options struct {
	format        string
	query         string
	columns       string
	index         bool
	indexLabel    string
	noHeader      bool
	style         string
	align         string
	headerAlign   string
	color         string
	rowBorders    bool
	columnBorders bool
	outline       bool
	tabWidth      int
	raw           bool
	eastAsian     bool
	cellTemplate  string
	verbose       bool
}

// NewCommand returns the root command. Flags left unset on the command line
// are read from TERMTABLE_* environment variables.
func NewCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "termtable [file]",
		Short: "Render JSON, YAML, CSV or TSV data as a terminal table",
		Long: `termtable reads a document from a file or standard input and prints it
as an aligned table. Arrays of objects become one row per object with a
column per key; arrays of arrays become plain rows.

Every flag may also be set through the environment, for example
TERMTABLE_STYLE=rounded or TERMTABLE_ROW_BORDERS=true.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return checkEnvironmentVariables(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return run(cmd, opts, path)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.format, "format", "f", "", "input format: json, jsonl, yaml, csv or tsv (default: from file extension, else json)")
	f.StringVarP(&opts.query, "query", "q", "", "jq expression applied to the input before rendering")
	f.StringVarP(&opts.columns, "columns", "c", "", "comma separated columns to show, each key or key:label")
	f.BoolVar(&opts.index, "index", false, "prepend a column with the row position")
	f.StringVar(&opts.indexLabel, "index-label", "#", "header of the index column")
	f.BoolVar(&opts.noHeader, "no-header", false, "treat the first CSV/TSV line as data")
	f.StringVarP(&opts.style, "style", "s", termtable.StyleDefault.String(), "border style")
	f.StringVar(&opts.align, "align", "", "body alignment, one of '><-. ' per column")
	f.StringVar(&opts.headerAlign, "header-align", "", "header alignment, one of '><-. ' per column")
	f.StringVar(&opts.color, "color", termtable.ColorAuto.String(), "color output: auto, always or never")
	f.BoolVar(&opts.rowBorders, "row-borders", false, "draw separators between rows")
	f.BoolVar(&opts.columnBorders, "column-borders", false, "draw separators between columns")
	f.BoolVar(&opts.outline, "outline", true, "draw the outer border")
	f.IntVar(&opts.tabWidth, "tab-width", 4, "tab stop distance")
	f.BoolVar(&opts.raw, "raw", false, "print control characters in text cells unescaped")
	f.BoolVar(&opts.eastAsian, "east-asian", false, "measure ambiguous-width characters as wide")
	f.StringVar(&opts.cellTemplate, "cell-template", "", "Go template used to render non-text cells, with the cell as dot")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log diagnostics to stderr")

	return cmd
}

// Execute runs the root command with the process arguments.
func Execute() error {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "termtable: %s\n", err)
		return err
	}
	return nil
}

func run(cmd *cobra.Command, opts *options, path string) error {
	log := newLogger(cmd.ErrOrStderr(), opts.verbose)

	format, err := resolveFormat(opts.format, path)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"path": path, "format": format}).Debug("decoding input")

	r, closeInput, err := openInput(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}
	defer closeInput()

	tbl, err := input.Decode(r, format, opts.noHeader)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"keyed": tbl.Keyed(), "count": tbl.Len()}).Debug("decoded input")

	if opts.query != "" {
		tbl, err = input.Query(tbl, opts.query)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"query": opts.query, "count": tbl.Len()}).Debug("applied query")
	}

	tableOpts, err := opts.tableOptions(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if tbl.Keyed() {
		cols, err := parseColumns(opts.columns)
		if err != nil {
			return err
		}
		if len(cols) == 0 {
			for _, k := range tbl.Keys {
				cols = append(cols, termtable.Column{Key: k})
			}
		}
		if len(cols) > 0 {
			tableOpts = append(tableOpts, termtable.WithColumns(cols...))
		}
		if opts.index {
			tableOpts = append(tableOpts, termtable.WithIndexColumn(opts.indexLabel))
		}
		return termtable.FprintRecords(out, tbl.Records, tableOpts...)
	}

	if opts.columns != "" {
		log.Warn("--columns ignored: input has no keys")
	}
	rows := tbl.Rows
	if opts.index {
		// header cells past the index column render blank
		rows = withIndex(rows)
		tableOpts = append(tableOpts, termtable.WithHeader(opts.indexLabel))
	}
	return termtable.Fprint(out, rows, tableOpts...)
}

func (o *options) tableOptions(out io.Writer) ([]termtable.Option, error) {
	style, err := termtable.ParseStyle(o.style)
	if err != nil {
		return nil, err
	}
	mode, err := termtable.ParseColorMode(o.color)
	if err != nil {
		return nil, err
	}
	tableOpts := []termtable.Option{
		termtable.WithStyle(style),
		termtable.WithAlignment(o.align),
		termtable.WithHeaderAlignment(o.headerAlign),
		termtable.WithColors(mode),
		termtable.WithColorProbe(func() bool { return isTerminal(out) && termtable.DetectColor() }),
		termtable.WithRowBorders(o.rowBorders),
		termtable.WithColumnBorders(o.columnBorders),
		termtable.WithOutline(o.outline),
		termtable.WithTabWidth(o.tabWidth),
		termtable.WithRaw(o.raw),
	}
	if o.eastAsian {
		tableOpts = append(tableOpts, termtable.WithWidthFunc(termtable.EastAsianRuneWidth))
	}
	if o.cellTemplate != "" {
		fn, err := templateFormatter(o.cellTemplate)
		if err != nil {
			return nil, err
		}
		tableOpts = append(tableOpts, termtable.WithCellFormatter(fn))
	}
	return tableOpts, nil
}

func resolveFormat(name, path string) (input.Format, error) {
	if name != "" {
		return input.ParseFormat(name)
	}
	if f, ok := input.FormatFromPath(path); ok {
		return f, nil
	}
	return input.JSON, nil
}

func openInput(stdin io.Reader, path string) (io.Reader, func(), error) {
	if path == "-" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// withIndex prepends each row's position.
func withIndex(rows [][]any) [][]any {
	out := make([][]any, len(rows))
	for i, row := range rows {
		out[i] = append([]any{i}, row...)
	}
	return out
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
