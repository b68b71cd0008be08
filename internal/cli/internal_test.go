package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/termtable"
	"github.com/bjaus/termtable/internal/input"
)

func TestParseColumns(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input string
		want  []termtable.Column
	}{
		"empty":      {input: "  "},
		"keys":       {input: "a,b", want: []termtable.Column{{Key: "a"}, {Key: "b"}}},
		"labels":     {input: "a:Alpha, b : Beta", want: []termtable.Column{{Key: "a", Label: "Alpha"}, {Key: "b", Label: "Beta"}}},
		"colon kept": {input: "t:a:b", want: []termtable.Column{{Key: "t", Label: "a:b"}}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := parseColumns(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveFormat(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		name, path string
		want       input.Format
	}{
		"flag wins":   {name: "yaml", path: "x.csv", want: input.YAML},
		"extension":   {path: "x.tsv", want: input.TSV},
		"stdin":       {path: "-", want: input.JSON},
		"unknown ext": {path: "x.txt", want: input.JSON},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := resolveFormat(tt.name, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTemplateFormatter(t *testing.T) {
	t.Parallel()
	fn, err := templateFormatter(`{{kind .}}:{{json .}}`)
	require.NoError(t, err)

	got, err := fn(termtable.Record{{Key: "b", Value: 1}, {Key: "a", Value: true}})
	require.NoError(t, err)
	assert.Equal(t, `structured:{"b":1,"a":true}`, got)

	got, err = fn(3)
	require.NoError(t, err)
	assert.Equal(t, "number:3", got)
}

func TestTemplateFormatterExecError(t *testing.T) {
	t.Parallel()
	fn, err := templateFormatter(`{{.Missing.Field}}`)
	require.NoError(t, err)
	_, err = fn(42)
	require.Error(t, err)
}

func TestWithIndex(t *testing.T) {
	t.Parallel()
	rows := [][]any{{"a"}, {}}
	got := withIndex(rows)
	assert.Equal(t, [][]any{{0, "a"}, {1}}, got)
	assert.Equal(t, [][]any{{"a"}, {}}, rows)
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()
	assert.False(t, isTerminal(&bytes.Buffer{}))
	assert.False(t, isTerminal(nil))

	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, isTerminal(f))
}
