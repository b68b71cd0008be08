package termtable

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeIndentsAndSortsKeys(t *testing.T) {
	t.Parallel()
	got, err := serialize(map[string]any{"b": 1, "a": []any{true, nil}}, 2)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		`{`,
		`  "a": [`,
		`    true,`,
		`    null`,
		`  ],`,
		`  "b": 1`,
		`}`,
	}, "\n"), got)
}

func TestSerializeRecordKeepsOrder(t *testing.T) {
	t.Parallel()
	got, err := serialize(Record{{Key: "z", Value: "x"}, {Key: "a", Value: Symbol("s")}}, 1)
	require.NoError(t, err)
	assert.Equal(t, "{\n \"z\": \"x\",\n \"a\": Symbol(s)\n}", got)
}

func TestSerializeSharedValueIsNotACycle(t *testing.T) {
	t.Parallel()
	shared := []any{1}
	_, err := serialize([]any{shared, shared}, 2)
	require.NoError(t, err)
}

func TestSerializeCycles(t *testing.T) {
	t.Parallel()
	m := map[string]any{}
	m["self"] = m
	s := []any{nil}
	s[0] = s
	type loop struct{ Next *loop }
	l := &loop{}
	l.Next = l

	tests := map[string]any{
		"map":     m,
		"slice":   s,
		"pointer": l,
	}
	for name, v := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := serialize(v, 2)
			require.ErrorIs(t, err, ErrCyclicValue)
		})
	}
}

func TestSerializePlaceholders(t *testing.T) {
	t.Parallel()
	var nilFn func()
	got, err := serialize([]any{strings.ToUpper, nilFn, make(chan int)}, 0)
	require.NoError(t, err)
	assert.Equal(t, "[\n[func(string) string],\nnull,\n[chan int]\n]", got)
}

func TestHighlight(t *testing.T) {
	t.Parallel()
	p := Palette{Number: "<n>", Boolean: "<b>", String: "<s>", Null: "<z>", Symbol: "<y>", Function: "<f>"}
	tests := map[string]struct {
		line string
		want string
	}{
		"member": {
			line: `  "k": 1.5,`,
			want: `  <s>"k"` + colorReset + `: <n>1.5` + colorReset + `,`,
		},
		"literals": {
			line: `true, false, null`,
			want: `<b>true` + colorReset + `, <b>false` + colorReset + `, <z>null` + colorReset,
		},
		"escaped quote": {
			line: `"a\"1"`,
			want: `<s>"a\"1"` + colorReset,
		},
		"placeholder": {
			line: `[func(int) string]`,
			want: `<f>[func(int) string]` + colorReset,
		},
		"symbol": {
			line: `Symbol(x),`,
			want: `<y>Symbol(x)` + colorReset + `,`,
		},
		"punctuation": {
			line: `{`,
			want: `{`,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, p.highlight(tt.line))
		})
	}
}

func TestHighlightEmptyRoleLeavesToken(t *testing.T) {
	t.Parallel()
	assert.Equal(t, `"k": 1`, Palette{}.highlight(`"k": 1`))
}

func TestEscapeControl(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input string
		want  string
	}{
		"plain":     {input: "abc", want: "abc"},
		"newline":   {input: "a\nb", want: "a\nb"},
		"nul":       {input: "a\x00", want: `a\0`},
		"escape":    {input: "\x1b[0m", want: `\u001b[0m`},
		"c1":        {input: "\u0085", want: `\u0085`},
		"bom":       {input: "\ufeffx", want: `\ufeffx`},
		"astral":    {input: "\U000e0001", want: `\U000e0001`},
		"printable": {input: "\u00e9\u4e2d", want: "\u00e9\u4e2d"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, escapeControl(tt.input))
		})
	}
}

func TestRuneWidthControls(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		r    rune
		want int
	}{
		"nul":          {r: 0x00, want: 0},
		"escape":       {r: 0x1b, want: 0},
		"tilde":        {r: 0x7e, want: 1},
		"delete":       {r: 0x7f, want: 0},
		"c1 next line": {r: 0x85, want: 0},
		"c1 csi":       {r: 0x9b, want: 0},
		"nbsp":         {r: 0xa0, want: 1},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, RuneWidth(tt.r))
		})
	}
}

func TestColumnTracker(t *testing.T) {
	t.Parallel()
	var tr columnTracker
	tr.observe(0, 3, 0)
	tr.observe(2, 1, 2)
	tr.observe(0, 1, 4)

	got := tr.finalize()
	assert.Equal(t, []ColumnWidth{{Prefix: 3, Suffix: 4}, {}, {Prefix: 1, Suffix: 2}}, got)

	got[0].Prefix = 99
	assert.Equal(t, 3, tr.finalize()[0].Prefix)
}

func TestInRanges(t *testing.T) {
	t.Parallel()
	table := []runeRange{{0x10, 0x1f}, {0x40, 0x40}}
	for r, want := range map[rune]bool{0x0f: false, 0x10: true, 0x1f: true, 0x20: false, 0x40: true, 0x41: false} {
		assert.Equal(t, want, inRanges(table, r), "%#x", r)
	}
}

type ptrStringer struct{ n int }

func (p *ptrStringer) String() string { return "ptr" }

func TestIndirect(t *testing.T) {
	t.Parallel()
	n := 5
	pn := &n
	assert.Equal(t, 5, indirect(&pn))

	var nilPtr *int
	assert.Equal(t, nilPtr, indirect(nilPtr))

	ps := &ptrStringer{n: 1}
	assert.Same(t, ps, indirect(ps))
}

func TestResolvePalette(t *testing.T) {
	t.Parallel()
	custom := Palette{Number: "N"}
	tests := map[string]struct {
		opts []Option
		want *Palette
	}{
		"never":           {opts: []Option{WithColors(ColorNever), WithPalette(custom)}},
		"always":          {opts: []Option{WithColors(ColorAlways)}, want: &defaultPalette},
		"auto no tty":     {opts: []Option{WithColorProbe(func() bool { return false })}},
		"auto tty":        {opts: []Option{WithColorProbe(func() bool { return true })}, want: &defaultPalette},
		"palette enables": {opts: []Option{WithColorProbe(func() bool { return false }), WithPalette(custom)}, want: &custom},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg, err := newConfig(tt.opts)
			require.NoError(t, err)
			got := cfg.resolvePalette()
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}
