package termtable

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrCyclicValue   = errors.New("cyclic value")
)

// Alignment is one character of the alignment mini-language. An alignment
// string holds one character per column.
type Alignment byte

const (
	AlignInherit Alignment = ' ' // use the cell's default
	AlignLeft    Alignment = '>' // content flush left, padding after
	AlignRight   Alignment = '<' // content flush right, padding before
	AlignCenter  Alignment = '-'
	AlignDecimal Alignment = '.' // decimal points line up across rows
)

// String returns the alignment character.
func (a Alignment) String() string { return string(rune(a)) }

func (a Alignment) valid() bool {
	switch a {
	case AlignInherit, AlignLeft, AlignRight, AlignCenter, AlignDecimal:
		return true
	default:
		return false
	}
}

// CellFormatter converts a non-text cell into display text. It takes
// precedence over the built-in conversion and may return an error to signal
// that a value cannot be rendered (for example a cyclic structure).
type CellFormatter func(cell any) (string, error)

// Option configures a single formatting call.
type Option func(*config)

type config struct {
	header          []any
	hasHeader       bool
	alignment       string
	headerAlignment string
	colors          ColorMode
	palette         *Palette
	probe           func() bool
	rowBorders      bool
	columnBorders   bool
	outline         bool
	preset          StylePreset
	style           *Style
	raw             bool
	tabWidth        int
	formatCell      CellFormatter
	width           WidthFunc

	// record adapter
	columns    []Column
	index      bool
	indexLabel string
}

// WithHeader renders cells as a header row above the body.
func WithHeader(cells ...any) Option {
	return func(c *config) {
		c.header = cells
		c.hasHeader = true
	}
}

// WithAlignment sets per-column body alignment, one character per column.
// A space keeps the cell's default alignment.
func WithAlignment(s string) Option {
	return func(c *config) { c.alignment = s }
}

// WithHeaderAlignment sets per-column header alignment. Header cells without
// an explicit character are centered.
func WithHeaderAlignment(s string) Option {
	return func(c *config) { c.headerAlignment = s }
}

// WithColors forces color output on or off. The default, [ColorAuto], asks
// the color probe.
func WithColors(mode ColorMode) Option {
	return func(c *config) { c.colors = mode }
}

// WithPalette sets the escape code used for each color role. Supplying a
// palette enables color output unless [ColorNever] is also given.
func WithPalette(p Palette) Option {
	return func(c *config) { c.palette = &p }
}

// WithColorProbe replaces [DetectColor] as the capability probe consulted
// under [ColorAuto]. [DetectColor] looks at standard output, so callers that
// [Fprint] to another writer should pass a probe for that writer.
func WithColorProbe(probe func() bool) Option {
	return func(c *config) { c.probe = probe }
}

// WithRowBorders draws separators between body rows.
func WithRowBorders(on bool) Option {
	return func(c *config) { c.rowBorders = on }
}

// WithColumnBorders draws vertical separators between columns.
func WithColumnBorders(on bool) Option {
	return func(c *config) { c.columnBorders = on }
}

// WithOutline toggles the border around the whole table. Default: on.
func WithOutline(on bool) Option {
	return func(c *config) { c.outline = on }
}

// WithStyle selects a named border style.
func WithStyle(p StylePreset) Option {
	return func(c *config) {
		c.preset = p
		c.style = nil
	}
}

// WithCustomStyle uses s as the border style. Start from a preset and
// [Style.Merge] overrides to change only some glyphs.
func WithCustomStyle(s Style) Option {
	return func(c *config) { c.style = &s }
}

// WithRaw skips control-character escaping of text and symbol cells. Color
// escape sequences in raw cells are ignored when measuring widths.
func WithRaw(on bool) Option {
	return func(c *config) { c.raw = on }
}

// WithTabWidth sets the tab stop distance. Default: 4.
func WithTabWidth(n int) Option {
	return func(c *config) { c.tabWidth = n }
}

// WithCellFormatter installs a hook used to convert every non-text cell.
func WithCellFormatter(fn CellFormatter) Option {
	return func(c *config) { c.formatCell = fn }
}

// WithWidthFunc replaces the display width policy. See [RuneWidth] and
// [EastAsianRuneWidth].
func WithWidthFunc(fn WidthFunc) Option {
	return func(c *config) { c.width = fn }
}

func newConfig(opts []Option) (*config, error) {
	c := &config{
		outline:  true,
		tabWidth: 4,
		probe:    DetectColor,
		width:    RuneWidth,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *config) validate() error {
	if err := validateAlignment("alignment", c.alignment); err != nil {
		return err
	}
	if err := validateAlignment("header alignment", c.headerAlignment); err != nil {
		return err
	}
	if c.tabWidth <= 0 {
		return fmt.Errorf("%w: tab width must be a positive integer, got %d", ErrInvalidConfig, c.tabWidth)
	}
	if c.style == nil {
		if _, ok := presets[c.preset]; !ok {
			return fmt.Errorf("%w: unknown style %d", ErrInvalidConfig, int(c.preset))
		}
	}
	return nil
}

func validateAlignment(name, s string) error {
	for i := 0; i < len(s); i++ {
		if !Alignment(s[i]).valid() {
			return fmt.Errorf("%w: illegal %s %q: character %q at column %d", ErrInvalidConfig, name, s, s[i], i)
		}
	}
	return nil
}

func (c *config) resolveStyle() Style {
	if c.style != nil {
		return *c.style
	}
	return presets[c.preset]
}

// resolvePalette returns nil when color output is disabled.
func (c *config) resolvePalette() *Palette {
	switch c.colors {
	case ColorNever:
		return nil
	case ColorAlways:
	default:
		if c.palette == nil && (c.probe == nil || !c.probe()) {
			return nil
		}
	}
	if c.palette != nil {
		return c.palette
	}
	p := defaultPalette
	return &p
}

// Format renders rows as a table and returns its lines without trailing
// newlines. Rows may have different lengths; missing cells render blank.
func Format(rows [][]any, opts ...Option) ([]string, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	f := newFormatter(cfg)

	var header []processedCell
	if cfg.hasHeader {
		header, err = f.processRow(-1, cfg.header)
		if err != nil {
			return nil, err
		}
	}
	body := make([][]processedCell, len(rows))
	for i, row := range rows {
		body[i], err = f.processRow(i, row)
		if err != nil {
			return nil, err
		}
	}
	return f.render(header, body, f.tracker.finalize()), nil
}

// Measure returns the width of every column of the table that [Format] would
// render with the same options.
func Measure(rows [][]any, opts ...Option) ([]ColumnWidth, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	f := newFormatter(cfg)
	if cfg.hasHeader {
		if _, err := f.processRow(-1, cfg.header); err != nil {
			return nil, err
		}
	}
	for i, row := range rows {
		if _, err := f.processRow(i, row); err != nil {
			return nil, err
		}
	}
	return f.tracker.finalize(), nil
}

// Fprint formats rows and writes the table to w, one line per row of text.
func Fprint(w io.Writer, rows [][]any, opts ...Option) error {
	lines, err := Format(rows, opts...)
	if err != nil {
		return err
	}
	return writeLines(w, lines)
}

// Print formats rows and writes the table to standard output.
func Print(rows [][]any, opts ...Option) error {
	return Fprint(os.Stdout, rows, opts...)
}

func writeLines(w io.Writer, lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}
