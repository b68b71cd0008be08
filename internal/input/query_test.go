package input_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/termtable"
	"github.com/bjaus/termtable/internal/input"
)

func decode(t *testing.T, doc string) *input.Table {
	t.Helper()
	tbl, err := input.Decode(strings.NewReader(doc), input.JSON, false)
	require.NoError(t, err)
	return tbl
}

func TestQuerySelect(t *testing.T) {
	t.Parallel()
	tbl := decode(t, `[{"name": "a", "size": 3}, {"name": "b", "size": 30}]`)
	got, err := input.Query(tbl, `map(select(.size > 10))`)
	require.NoError(t, err)
	require.Len(t, got.Records, 1)
	assert.Equal(t, termtable.Record{{Key: "name", Value: "b"}, {Key: "size", Value: 30}}, got.Records[0])
}

func TestQueryKeepsInputKeyOrder(t *testing.T) {
	t.Parallel()
	tbl := decode(t, `[{"zeta": 1, "alpha": 2}]`)
	got, err := input.Query(tbl, `.[] | . + {"beta": 3}`)
	require.NoError(t, err)
	require.Len(t, got.Records, 1)
	assert.Equal(t, []string{"zeta", "alpha", "beta"}, keys(got.Records[0]))
}

func TestQueryScalarResults(t *testing.T) {
	t.Parallel()
	tbl := decode(t, `[{"name": "a"}, {"name": "b"}]`)
	got, err := input.Query(tbl, `.[].name`)
	require.NoError(t, err)
	assert.False(t, got.Keyed())
	assert.Equal(t, [][]any{{"a"}, {"b"}}, got.Rows)
}

func TestQueryNumbers(t *testing.T) {
	t.Parallel()
	tbl := decode(t, `[{"n": 1.5}, {"n": 123456789012345678901234567890}]`)
	got, err := input.Query(tbl, `map(.n)`)
	require.NoError(t, err)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, 1.5, got.Rows[0][0])
	assert.Equal(t, termtable.KindBigInteger, termtable.Classify(got.Rows[1][0]))
}

func TestQueryRows(t *testing.T) {
	t.Parallel()
	tbl, err := input.Decode(strings.NewReader("a,1\nb,2\n"), input.CSV, true)
	require.NoError(t, err)
	got, err := input.Query(tbl, `map(reverse)`)
	require.NoError(t, err)
	assert.Equal(t, [][]any{{1, "a"}, {2, "b"}}, got.Rows)
}

func TestQueryEmptyInput(t *testing.T) {
	t.Parallel()
	got, err := input.Query(decode(t, `[]`), `.[]`)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}

func TestQueryHalt(t *testing.T) {
	t.Parallel()
	got, err := input.Query(decode(t, `[{"a": 1}]`), `.[], halt`)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Len())
}

func TestQueryErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"parse":   `map(`,
		"compile": `$undefined`,
		"runtime": `.[] | error("boom")`,
	}
	for name, expr := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := input.Query(decode(t, `[{"a": 1}]`), expr)
			require.ErrorIs(t, err, input.ErrInvalidQuery)
		})
	}
}
