package termtable

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"sort"
)

// Field is one key-value pair of a [Record].
type Field struct {
	Key   string
	Value any
}

// Record is an ordered set of fields. Key order decides column order when
// columns are discovered from the records.
type Record []Field

// Get returns the value stored under key.
func (r Record) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// RecordFromMap converts a map into a record with keys in sorted order.
func RecordFromMap(m map[string]any) Record {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	r := make(Record, len(keys))
	for i, k := range keys {
		r[i] = Field{Key: k, Value: m[k]}
	}
	return r
}

// Column selects a record key for [FromRecords]. Label defaults to Key.
type Column struct {
	Key   string
	Label string
}

func (c Column) label() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Key
}

// WithColumns fixes the columns, and their order, used by the record
// functions. Without it every key found in the records becomes a column, in
// first-seen order.
func WithColumns(cols ...Column) Option {
	return func(c *config) { c.columns = cols }
}

// WithIndexColumn prepends a column holding each record's position.
func WithIndexColumn(label string) Option {
	return func(c *config) {
		c.index = true
		c.indexLabel = label
	}
}

// FromRecords converts records into a header and body rows. Keys missing
// from a record render as empty text.
func FromRecords(records []Record, opts ...Option) (header []any, rows [][]any) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return tabulate(records, cfg)
}

func tabulate(records []Record, cfg *config) ([]any, [][]any) {
	cols := cfg.columns
	if len(cols) == 0 {
		cols = discoverColumns(records)
	}

	header := make([]any, 0, len(cols)+1)
	if cfg.index {
		header = append(header, cfg.indexLabel)
	}
	for _, c := range cols {
		header = append(header, c.label())
	}

	rows := make([][]any, len(records))
	for i, rec := range records {
		row := make([]any, 0, len(header))
		if cfg.index {
			row = append(row, i)
		}
		for _, c := range cols {
			if v, ok := rec.Get(c.Key); ok {
				row = append(row, v)
			} else {
				row = append(row, "")
			}
		}
		rows[i] = row
	}
	return header, rows
}

func discoverColumns(records []Record) []Column {
	seen := make(map[string]bool)
	var cols []Column
	for _, rec := range records {
		for _, f := range rec {
			if !seen[f.Key] {
				seen[f.Key] = true
				cols = append(cols, Column{Key: f.Key})
			}
		}
	}
	return cols
}

// FormatRecords renders records as a table whose header row is made of the
// column labels. A header given with [WithHeader] is replaced.
func FormatRecords(records []Record, opts ...Option) ([]string, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	header, rows := tabulate(records, cfg)
	return Format(rows, append(opts[:len(opts):len(opts)], WithHeader(header...))...)
}

// FprintRecords formats records and writes the table to w.
func FprintRecords(w io.Writer, records []Record, opts ...Option) error {
	lines, err := FormatRecords(records, opts...)
	if err != nil {
		return err
	}
	return writeLines(w, lines)
}

// PrintRecords formats records and writes the table to standard output.
func PrintRecords(records []Record, opts ...Option) error {
	return FprintRecords(os.Stdout, records, opts...)
}

// MarshalJSON encodes the record as a JSON object with keys in record order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
