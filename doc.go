// Package termtable renders tabular data as aligned, optionally bordered and
// colorized text for terminals.
//
// The central entry points are [Format], which returns the rendered lines,
// and [Print] / [Fprint], which write them. Rows are slices of arbitrary
// values; each cell is classified by its Go type and rendered accordingly:
//
//	lines, err := termtable.Format([][]any{
//		{"foo", 0},
//		{"bar", 12.5},
//	}, termtable.WithHeader("Name", "Value"))
//
// # Cell Kinds
//
// [Classify] maps every value to a [Kind]. The kind decides the default
// alignment and color role:
//
//   - numbers, big integers and times are aligned on the decimal point
//   - booleans are right aligned
//   - text, nil, [Symbol], funcs and structured values follow the row default
//     (left for body rows, centered for the header)
//
// Structured values (maps, slices, arrays, structs and [Record]s) render as
// indented JSON-like text with syntax highlighting. A value that refers to
// itself fails with [ErrCyclicValue] unless a [CellFormatter] is installed
// with [WithCellFormatter].
//
// # Alignment
//
// [WithAlignment] takes one character per column:
//
//   - '>' left
//   - '<' right
//   - '-' center
//   - '.' decimal point
//   - ' ' cell default
//
// Any other character fails with [ErrInvalidConfig] before anything renders.
//
// # Borders and Styles
//
// The outline is drawn by default. [WithRowBorders] and [WithColumnBorders]
// add inner separators. A header is always followed by a separator line; it
// uses the style's header glyphs when row borders are on. Glyphs come from a
// [StylePreset] selected with [WithStyle], or from a custom [Style]:
//
//	style := termtable.StyleRounded.Style().Merge(termtable.Style{Column: "┆"})
//	termtable.Print(rows, termtable.WithCustomStyle(style))
//
// # Widths
//
// Display widths come from a heuristic [WidthFunc]. [RuneWidth] is the
// default; [EastAsianRuneWidth] uses the East Asian Width tables instead.
// Neither is guaranteed to match every terminal and font. Tabs expand to the
// next stop set by [WithTabWidth].
//
// # Colors
//
// Colors default to [ColorAuto], which asks [DetectColor] (or the probe given
// to [WithColorProbe]). [WithColors] and [WithPalette] override it.
//
// # Records
//
// [FormatRecords] and [PrintRecords] turn a slice of [Record] into a table
// with one column per key. [WithColumns] picks and labels columns and
// [WithIndexColumn] prepends the record position.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrInvalidConfig]: bad alignment string, tab width or style
//   - [ErrCyclicValue]: a structured value contains a cycle
//
// # Command
//
// The termtable command in cmd/termtable renders JSON, JSONL, YAML, CSV and
// TSV documents with these options, optionally filtered by a jq expression.
package termtable
