package input

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/bjaus/termtable"
)

// Items decodes successive JSON values from r as they arrive. Objects become
// [termtable.Record]s in document key order, arrays []any and numbers
// [json.Number]. Iteration stops after the first error.
func Items(r io.Reader) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		dec := json.NewDecoder(r)
		dec.UseNumber()
		for {
			v, err := decodeJSON(dec)
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}

func collect(seq iter.Seq2[any, error]) ([]any, error) {
	var items []any
	for v, err := range seq {
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

func decodeJSON(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		rec := termtable.Record{}
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, unexpectedEOF(err)
			}
			key, ok := kt.(string)
			if !ok {
				return nil, fmt.Errorf("object key %v is not a string", kt)
			}
			v, err := decodeJSON(dec)
			if err != nil {
				return nil, unexpectedEOF(err)
			}
			rec = setField(rec, key, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, unexpectedEOF(err)
		}
		return rec, nil
	case '[':
		arr := []any{}
		for dec.More() {
			v, err := decodeJSON(dec)
			if err != nil {
				return nil, unexpectedEOF(err)
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, unexpectedEOF(err)
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected %q", rune(delim))
	}
}

// unexpectedEOF keeps a truncated document from reading as a clean end of
// input.
func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
