// Package input decodes tabular documents for the termtable command. Objects
// keep their key order so discovered columns follow the document.
package input

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bjaus/termtable"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrMalformedInput    = errors.New("malformed input")
	ErrInvalidQuery      = errors.New("invalid query")
)

// Format names an input document format.
type Format string

const (
	JSON  Format = "json"
	JSONL Format = "jsonl"
	YAML  Format = "yaml"
	CSV   Format = "csv"
	TSV   Format = "tsv"
)

var formats = []Format{JSON, JSONL, YAML, CSV, TSV}

var extensions = map[string]Format{
	".json":   JSON,
	".jsonl":  JSONL,
	".ndjson": JSONL,
	".yaml":   YAML,
	".yml":    YAML,
	".csv":    CSV,
	".tsv":    TSV,
	".tab":    TSV,
}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported input formats.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format name. "ndjson" and "yml" are accepted as
// aliases.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "ndjson":
		return JSONL, nil
	case "yml":
		return YAML, nil
	}
	for _, f := range formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	f, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// Table is a decoded document. Keyed input (objects, delimited files with a
// header line) fills Records; everything else fills Rows.
type Table struct {
	Records []termtable.Record
	Rows    [][]any

	// Keys lists the declared column names of a delimited file, including
	// columns no record has a value for.
	Keys []string
}

// Len returns the number of records or rows.
func (t *Table) Len() int {
	if t.Records != nil {
		return len(t.Records)
	}
	return len(t.Rows)
}

// Keyed reports whether the table holds records.
func (t *Table) Keyed() bool { return t.Records != nil }

// Decode reads a whole document from r. noHeader only affects CSV and TSV,
// whose first line is otherwise taken as column names.
func Decode(r io.Reader, f Format, noHeader bool) (*Table, error) {
	switch f {
	case JSON:
		items, err := collect(Items(r))
		if err != nil {
			return nil, malformed(f, err)
		}
		if len(items) == 1 {
			if arr, ok := items[0].([]any); ok {
				items = arr
			}
		}
		return fromItems(items), nil
	case JSONL:
		items, err := collect(Items(r))
		if err != nil {
			return nil, malformed(f, err)
		}
		return fromItems(items), nil
	case YAML:
		items, err := decodeYAML(r)
		if err != nil {
			return nil, malformed(f, err)
		}
		return fromItems(items), nil
	case CSV:
		t, err := decodeDelimited(r, ',', noHeader)
		if err != nil {
			return nil, malformed(f, err)
		}
		return t, nil
	case TSV:
		t, err := decodeDelimited(r, '\t', noHeader)
		if err != nil {
			return nil, malformed(f, err)
		}
		return t, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

func malformed(f Format, err error) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformedInput, f, err)
}

// fromItems builds a table from decoded top-level values. When every item is
// an object the table is keyed; otherwise arrays become rows and any other
// value a single-cell row.
func fromItems(items []any) *Table {
	records := make([]termtable.Record, 0, len(items))
	for _, item := range items {
		rec, ok := item.(termtable.Record)
		if !ok {
			records = nil
			break
		}
		records = append(records, rec)
	}
	if records != nil && len(items) > 0 {
		return &Table{Records: records}
	}

	rows := make([][]any, len(items))
	for i, item := range items {
		if arr, ok := item.([]any); ok {
			rows[i] = arr
		} else {
			rows[i] = []any{item}
		}
	}
	return &Table{Rows: rows}
}

// setField stores v under key, replacing an earlier field of the same name.
func setField(rec termtable.Record, key string, v any) termtable.Record {
	for i := range rec {
		if rec[i].Key == key {
			rec[i].Value = v
			return rec
		}
	}
	return append(rec, termtable.Field{Key: key, Value: v})
}
