package input

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"time"

	"github.com/itchyny/gojq"

	"github.com/bjaus/termtable"
)

// Query runs a jq expression against the table and returns its results as a
// new table. The expression sees the table as an array of objects (or of
// arrays for unkeyed tables). A single array result is spread into rows.
func Query(t *Table, expr string) (*Table, error) {
	parsed, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidQuery, err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidQuery, err)
	}

	order := keyOrder(t)
	iter := code.Run(t.jq())
	var out []any
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			var halt *gojq.HaltError
			if errors.As(err, &halt) && halt.Value() == nil {
				break
			}
			return nil, fmt.Errorf("%w: %s", ErrInvalidQuery, err)
		}
		out = append(out, fromJQ(v, order))
	}
	if len(out) == 1 {
		if arr, ok := out[0].([]any); ok {
			out = arr
		}
	}
	return fromItems(out), nil
}

// keyOrder ranks the keys of the input so query results keep the input's
// column order.
func keyOrder(t *Table) map[string]int {
	order := make(map[string]int)
	for _, k := range t.Keys {
		if _, ok := order[k]; !ok {
			order[k] = len(order)
		}
	}
	for _, rec := range t.Records {
		for _, f := range rec {
			if _, ok := order[f.Key]; !ok {
				order[f.Key] = len(order)
			}
		}
	}
	return order
}

func (t *Table) jq() []any {
	if t.Keyed() {
		out := make([]any, len(t.Records))
		for i, rec := range t.Records {
			out[i] = toJQ(rec)
		}
		return out
	}
	out := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = toJQ(row)
	}
	return out
}

// toJQ converts decoded values into the types gojq accepts.
func toJQ(v any) any {
	switch x := v.(type) {
	case termtable.Record:
		m := make(map[string]any, len(x))
		for _, f := range x {
			m[f.Key] = toJQ(f.Value)
		}
		return m
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = toJQ(e)
		}
		return out
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return int(n)
		}
		if n, ok := new(big.Int).SetString(string(x), 10); ok {
			return n
		}
		f, _ := x.Float64()
		return f
	case int64:
		return int(x)
	case uint64:
		return new(big.Int).SetUint64(x)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	default:
		return v
	}
}

// fromJQ converts a query result back into records. Object keys follow
// order where it ranks them; the rest are sorted.
func fromJQ(v any, order map[string]int) any {
	switch x := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			ri, iok := order[keys[i]]
			rj, jok := order[keys[j]]
			switch {
			case iok && jok:
				return ri < rj
			case iok != jok:
				return iok
			default:
				return keys[i] < keys[j]
			}
		})
		rec := make(termtable.Record, len(keys))
		for i, k := range keys {
			rec[i] = termtable.Field{Key: k, Value: fromJQ(x[k], nil)}
		}
		return rec
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = fromJQ(e, order)
		}
		return out
	default:
		return v
	}
}
