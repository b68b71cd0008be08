package termtable

import "strings"

// render lays out the measured header and body rows and stitches them
// together with border lines.
func (f *formatter) render(header []processedCell, body [][]processedCell, widths []ColumnWidth) []string {
	fr := newFrame(f.style, widths, f.cfg.outline, f.cfg.columnBorders)

	var lines []string
	if fr.outline {
		lines = append(lines, fr.top())
	}
	if f.cfg.hasHeader {
		lines = append(lines, layoutRow(fr, header)...)
		if len(body) > 0 {
			if f.cfg.rowBorders {
				lines = append(lines, fr.headerSeparator())
			} else {
				lines = append(lines, fr.rowSeparator())
			}
		}
	}
	for i, row := range body {
		if i > 0 && f.cfg.rowBorders {
			lines = append(lines, fr.rowSeparator())
		}
		lines = append(lines, layoutRow(fr, row)...)
	}
	if fr.outline {
		lines = append(lines, fr.bottom())
	}
	return lines
}

// layoutRow turns one table row into as many output lines as its tallest
// cell. Missing cells and short cells are filled with blank lines.
func layoutRow(fr frame, row []processedCell) []string {
	height := 1
	for _, c := range row {
		height = max(height, len(c.lines))
	}

	out := make([]string, height)
	parts := make([]string, len(fr.widths))
	for i := range height {
		for col, w := range fr.widths {
			if col < len(row) && i < len(row[col].lines) {
				parts[col] = alignLine(row[col], row[col].lines[i], w)
			} else {
				parts[col] = strings.Repeat(" ", w.Total())
			}
		}
		out[i] = fr.join(parts)
	}
	return out
}

// alignLine pads one line of a cell to the column width. Color codes wrap
// the content only, so padding stays uncolored.
func alignLine(c processedCell, ln processedLine, w ColumnWidth) string {
	var left, right int
	switch c.align {
	case AlignCenter:
		pad := w.Total() - ln.width()
		left = pad / 2
		right = pad - left
	case AlignLeft:
		right = w.Total() - ln.width()
	default:
		left = w.Prefix - ln.prefix
		right = w.Suffix - ln.suffix
	}

	text := ln.text
	if c.color != "" {
		text = c.color + text + colorReset
	}
	return strings.Repeat(" ", max(left, 0)) + text + strings.Repeat(" ", max(right, 0))
}
