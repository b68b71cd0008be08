package termtable

import (
	"fmt"
	"strconv"
	"strings"
)

// Style is a table of border glyphs. Each horizontal line is described by
// its left end, fill, column crossing and right end.
type Style struct {
	TopLeft, Top, TopColumn, TopRight string
	Left, Column, Right               string

	// separator between body rows, and between header and body when row
	// borders are off
	RowLeft, Row, RowCross, RowRight string

	// separator between header and body when row borders are on
	HeaderLeft, Header, HeaderCross, HeaderRight string

	BottomLeft, Bottom, BottomColumn, BottomRight string

	// Padding separates cell content from borders and neighbouring cells.
	Padding string
}

func (s *Style) fields() []*string {
	return []*string{
		&s.TopLeft, &s.Top, &s.TopColumn, &s.TopRight,
		&s.Left, &s.Column, &s.Right,
		&s.RowLeft, &s.Row, &s.RowCross, &s.RowRight,
		&s.HeaderLeft, &s.Header, &s.HeaderCross, &s.HeaderRight,
		&s.BottomLeft, &s.Bottom, &s.BottomColumn, &s.BottomRight,
		&s.Padding,
	}
}

// Merge returns a copy of s with every non-empty glyph of override applied.
func (s Style) Merge(override Style) Style {
	dst := s.fields()
	for i, src := range override.fields() {
		if *src != "" {
			*dst[i] = *src
		}
	}
	return s
}

// StylePreset names a built-in style.
type StylePreset int

const (
	StyleDefault         StylePreset = iota // ┌─┬┐ single line box drawing
	StyleSpace                              // invisible borders
	StyleASCII                              // +-|=
	StyleRounded                            // ╭─┬╮
	StyleFatHeaderBorder                    // ┝━┿┥ header separator
	StyleDoubleOutline                      // ╔═╤╗ outline
	StyleFatOutline                         // ┏━┯┓ outline
)

var defaultStyle = Style{
	TopLeft: "┌", Top: "─", TopColumn: "┬", TopRight: "┐",
	Left: "│", Column: "│", Right: "│",
	RowLeft: "├", Row: "─", RowCross: "┼", RowRight: "┤",
	HeaderLeft: "╞", Header: "═", HeaderCross: "╪", HeaderRight: "╡",
	BottomLeft: "└", Bottom: "─", BottomColumn: "┴", BottomRight: "┘",
	Padding: " ",
}

var presets = map[StylePreset]Style{
	StyleDefault: defaultStyle,
	StyleSpace: {
		TopLeft: " ", Top: " ", TopColumn: " ", TopRight: " ",
		Left: " ", Column: " ", Right: " ",
		RowLeft: " ", Row: " ", RowCross: " ", RowRight: " ",
		HeaderLeft: " ", Header: " ", HeaderCross: " ", HeaderRight: " ",
		BottomLeft: " ", Bottom: " ", BottomColumn: " ", BottomRight: " ",
		Padding: " ",
	},
	StyleASCII: {
		TopLeft: "+", Top: "-", TopColumn: "+", TopRight: "+",
		Left: "|", Column: "|", Right: "|",
		RowLeft: "+", Row: "-", RowCross: "+", RowRight: "+",
		HeaderLeft: "+", Header: "=", HeaderCross: "+", HeaderRight: "+",
		BottomLeft: "+", Bottom: "-", BottomColumn: "+", BottomRight: "+",
		Padding: " ",
	},
	StyleRounded: defaultStyle.Merge(Style{
		TopLeft: "╭", TopRight: "╮", BottomLeft: "╰", BottomRight: "╯",
	}),
	StyleFatHeaderBorder: defaultStyle.Merge(Style{
		HeaderLeft: "┝", Header: "━", HeaderCross: "┿", HeaderRight: "┥",
	}),
	StyleDoubleOutline: defaultStyle.Merge(Style{
		TopLeft: "╔", Top: "═", TopColumn: "╤", TopRight: "╗",
		Left: "║", Right: "║",
		RowLeft: "╟", RowRight: "╢",
		HeaderLeft: "╠", HeaderRight: "╣",
		BottomLeft: "╚", Bottom: "═", BottomColumn: "╧", BottomRight: "╝",
	}),
	StyleFatOutline: defaultStyle.Merge(Style{
		TopLeft: "┏", Top: "━", TopColumn: "┯", TopRight: "┓",
		Left: "┃", Right: "┃",
		RowLeft: "┠", RowRight: "┨",
		HeaderLeft: "┣", Header: "━", HeaderCross: "┿", HeaderRight: "┫",
		BottomLeft: "┗", Bottom: "━", BottomColumn: "┷", BottomRight: "┛",
	}),
}

var presetNames = []struct {
	preset StylePreset
	name   string
}{
	{StyleDefault, "default"},
	{StyleSpace, "space"},
	{StyleASCII, "ascii"},
	{StyleRounded, "rounded"},
	{StyleFatHeaderBorder, "fat-header-border"},
	{StyleDoubleOutline, "double-outline"},
	{StyleFatOutline, "fat-outline"},
}

// String returns the preset name.
func (p StylePreset) String() string {
	for _, pn := range presetNames {
		if pn.preset == p {
			return pn.name
		}
	}
	return "StylePreset(" + strconv.Itoa(int(p)) + ")"
}

// Style returns a copy of the preset's glyph table.
func (p StylePreset) Style() Style { return presets[p] }

// StylePresets returns all built-in presets in declaration order.
func StylePresets() []StylePreset {
	out := make([]StylePreset, len(presetNames))
	for i, pn := range presetNames {
		out[i] = pn.preset
	}
	return out
}

// ParseStyle parses a preset name such as "rounded" or "double-outline".
func ParseStyle(s string) (StylePreset, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for _, pn := range presetNames {
		if pn.name == name {
			return pn.preset, nil
		}
	}
	return StyleDefault, fmt.Errorf("%w: unknown style %q", ErrInvalidConfig, s)
}

// frame assembles border lines for a fixed set of column widths.
type frame struct {
	style         Style
	widths        []ColumnWidth
	outline       bool
	columnBorders bool
	padWidth      int
}

func newFrame(style Style, widths []ColumnWidth, outline, columnBorders bool) frame {
	return frame{
		style:         style,
		widths:        widths,
		outline:       outline,
		columnBorders: columnBorders,
		padWidth:      StringWidth(style.Padding),
	}
}

func (fr frame) top() string {
	s := fr.style
	return fr.hline(s.TopLeft, s.Top, s.TopColumn, s.TopRight)
}

func (fr frame) bottom() string {
	s := fr.style
	return fr.hline(s.BottomLeft, s.Bottom, s.BottomColumn, s.BottomRight)
}

func (fr frame) rowSeparator() string {
	s := fr.style
	return fr.hline(s.RowLeft, s.Row, s.RowCross, s.RowRight)
}

func (fr frame) headerSeparator() string {
	s := fr.style
	return fr.hline(s.HeaderLeft, s.Header, s.HeaderCross, s.HeaderRight)
}

// hline draws a horizontal line. Without column borders the crossing glyph
// is replaced by fill so the line runs unbroken over the gap.
func (fr frame) hline(left, fill, cross, right string) string {
	pad := strings.Repeat(fill, fr.padWidth)
	var sb strings.Builder
	if fr.outline {
		sb.WriteString(left)
		sb.WriteString(pad)
	}
	for i, w := range fr.widths {
		if i > 0 {
			sb.WriteString(pad)
			if fr.columnBorders {
				sb.WriteString(cross)
			}
			sb.WriteString(pad)
		}
		sb.WriteString(strings.Repeat(fill, w.Total()))
	}
	if fr.outline {
		sb.WriteString(pad)
		sb.WriteString(right)
	}
	return sb.String()
}

// join concatenates rendered cells of one output line.
func (fr frame) join(cells []string) string {
	s := fr.style
	gap := s.Padding + s.Padding
	if fr.columnBorders {
		gap = s.Padding + s.Column + s.Padding
	}
	line := strings.Join(cells, gap)
	if fr.outline {
		line = s.Left + s.Padding + line + s.Padding + s.Right
	}
	return line
}
