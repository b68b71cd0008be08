package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/termtable"
	"github.com/bjaus/termtable/internal/cli"
	"github.com/bjaus/termtable/internal/input"
)

const records = `[{"name": "foo", "size": 1}, {"name": "bar", "size": 12}]`

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := cli.NewCommand()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRecordsTable(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, records, "--style", "ascii", "--color", "never")
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"+------------+",
		"| name  size |",
		"+------------+",
		"| foo      1 |",
		"| bar     12 |",
		"+------------+",
	}, "\n")+"\n", out)
}

func TestFormatFromExtension(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\nx,1\n"), 0o600))

	out, _, err := execute(t, "", path, "--style", "ascii", "--outline=false", "--color", "never")
	require.NoError(t, err)
	assert.Equal(t, "a  b\n----\nx  1\n", out)
}

func TestNoHeader(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, "a,b\nx,1\n", "--format", "csv", "--no-header", "--outline=false", "--color", "never")
	require.NoError(t, err)
	assert.Equal(t, "a  b\nx  1\n", out)
}

func TestQuery(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, records, "--query", "map(.name)", "--outline=false", "--color", "never")
	require.NoError(t, err)
	assert.Equal(t, "foo\nbar\n", out)
}

func TestColumnsAndIndex(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, records,
		"--columns", "size:Bytes",
		"--index",
		"--style", "ascii",
		"--outline=false",
		"--color", "never",
	)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"#  Bytes",
		"--------",
		"0      1",
		"1     12",
	}, "\n")+"\n", out)
}

func TestIndexWithoutKeys(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, `[["a"], ["b"]]`, "--index", "--index-label", "n", "--style", "ascii", "--outline=false", "--color", "never")
	require.NoError(t, err)
	assert.Equal(t, "n   \n----\n0  a\n1  b\n", out)
}

func TestCellTemplate(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, `[{"n": 1.5, "s": "x"}]`, "--cell-template", "<{{.}}>", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "<1.5>")
	assert.NotContains(t, out, "<x>")
}

func TestColorAlways(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, records, "--color", "always")
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[")
}

func TestColorAutoOffForBuffers(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, records)
	require.NoError(t, err)
	assert.NotContains(t, out, "\x1b[")
}

func TestVerboseLogsToStderr(t *testing.T) {
	t.Parallel()
	out, errOut, err := execute(t, records, "--verbose", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, errOut, "decoded input")
	assert.NotContains(t, out, "decoded input")
}

func TestErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		stdin string
		args  []string
		want  error
	}{
		"bad alignment": {stdin: records, args: []string{"--align", "x"}, want: termtable.ErrInvalidConfig},
		"bad style":     {stdin: records, args: []string{"--style", "wavy"}, want: termtable.ErrInvalidConfig},
		"bad color":     {stdin: records, args: []string{"--color", "sometimes"}, want: termtable.ErrInvalidConfig},
		"bad tab width": {stdin: records, args: []string{"--tab-width", "0"}, want: termtable.ErrInvalidConfig},
		"bad columns":   {stdin: records, args: []string{"--columns", "a,,b"}, want: termtable.ErrInvalidConfig},
		"bad format":    {stdin: records, args: []string{"--format", "xml"}, want: input.ErrUnsupportedFormat},
		"bad input":     {stdin: `[{`, want: input.ErrMalformedInput},
		"bad query":     {stdin: records, args: []string{"--query", "map("}, want: input.ErrInvalidQuery},
		"bad template":  {stdin: records, args: []string{"--cell-template", "{{"}, want: cli.ErrInvalidTemplate},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, _, err := execute(t, tt.stdin, tt.args...)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMissingFile(t *testing.T) {
	t.Parallel()
	_, _, err := execute(t, "", filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnvironmentSetsFlags(t *testing.T) {
	t.Setenv("TERMTABLE_STYLE", "ascii")
	t.Setenv("TERMTABLE_COLUMN_BORDERS", "true")
	t.Setenv("TERMTABLE_OUTLINE", "false")
	t.Setenv("TERMTABLE_COLOR", "never")

	out, _, err := execute(t, `[["a", "b"]]`)
	require.NoError(t, err)
	assert.Equal(t, "a | b\n", out)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("TERMTABLE_OUTLINE", "false")
	t.Setenv("TERMTABLE_COLOR", "never")

	out, _, err := execute(t, `[["a"]]`, "--outline=true", "--style", "ascii")
	require.NoError(t, err)
	assert.Equal(t, "+---+\n| a |\n+---+\n", out)
}

func TestEnvironmentInvalidValue(t *testing.T) {
	t.Setenv("TERMTABLE_TAB_WIDTH", "wide")

	_, _, err := execute(t, records)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TERMTABLE_TAB_WIDTH")
}
