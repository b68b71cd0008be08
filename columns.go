package termtable

// ColumnWidth is the measured width of a column. Prefix is the widest
// integer part of decimal-aligned lines or the widest line otherwise; Suffix
// is the widest fractional part, dot included.
type ColumnWidth struct {
	Prefix int
	Suffix int
}

// Total returns the number of cells the column occupies.
func (w ColumnWidth) Total() int { return w.Prefix + w.Suffix }

// columnTracker keeps running maxima per column index. The column count is
// the longest row observed.
type columnTracker struct {
	cols []ColumnWidth
}

func (t *columnTracker) observe(col, prefix, suffix int) {
	for len(t.cols) <= col {
		t.cols = append(t.cols, ColumnWidth{})
	}
	c := &t.cols[col]
	c.Prefix = max(c.Prefix, prefix)
	c.Suffix = max(c.Suffix, suffix)
}

func (t *columnTracker) finalize() []ColumnWidth {
	out := make([]ColumnWidth, len(t.cols))
	copy(out, t.cols)
	return out
}
