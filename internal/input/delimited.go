package input

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"github.com/bjaus/termtable"
)

// decodeDelimited reads CSV-style input. Without noHeader the first line
// names the columns and the table is keyed. Fields that parse as numbers are
// kept as [json.Number] so they line up on the decimal point.
func decodeDelimited(r io.Reader, comma rune, noHeader bool) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	if comma == '\t' {
		cr.LazyQuotes = true
	}

	var header []string
	if !noHeader {
		h, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return &Table{Records: []termtable.Record{}}, nil
		}
		if err != nil {
			return nil, err
		}
		header = h
	}

	t := &Table{}
	if !noHeader {
		t.Records = []termtable.Record{}
		t.Keys = header
	}
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return t, nil
		}
		if err != nil {
			return nil, err
		}
		if noHeader {
			row := make([]any, len(fields))
			for i, s := range fields {
				row[i] = fieldValue(s)
			}
			t.Rows = append(t.Rows, row)
			continue
		}
		rec := make(termtable.Record, 0, len(header))
		for i, s := range fields {
			if i >= len(header) {
				break
			}
			rec = setField(rec, header[i], fieldValue(s))
		}
		t.Records = append(t.Records, rec)
	}
}

func fieldValue(s string) any {
	if _, err := strconv.ParseFloat(s, 64); err == nil && isDecimal(s) {
		return json.Number(s)
	}
	return s
}

// isDecimal rejects the spellings ParseFloat accepts that are not plain
// decimal numbers, such as "Inf", "0x1p3" or "1_000".
func isDecimal(s string) bool {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9', c == '.', c == '-', c == '+', c == 'e', c == 'E':
		default:
			return false
		}
	}
	return true
}
