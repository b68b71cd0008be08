package termtable

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// Symbol is an opaque named token. It renders as Symbol(name).
type Symbol string

// String implements fmt.Stringer.
func (s Symbol) String() string { return "Symbol(" + string(s) + ")" }

// Kind is the semantic type of a cell.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindBigInteger
	KindBoolean
	KindSymbol
	KindCallable
	KindTemporal
	KindNull
	KindStructured
	KindOther
)

var kindNames = [...]string{
	KindText:       "text",
	KindNumber:     "number",
	KindBigInteger: "big integer",
	KindBoolean:    "boolean",
	KindSymbol:     "symbol",
	KindCallable:   "callable",
	KindTemporal:   "temporal",
	KindNull:       "null",
	KindStructured: "structured",
	KindOther:      "other",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// defaultAlign returns the alignment used when the configuration leaves the
// column blank. ctx is the default of the surrounding row.
func (k Kind) defaultAlign(ctx Alignment) Alignment {
	switch k {
	case KindNumber, KindBigInteger, KindTemporal:
		return AlignDecimal
	case KindBoolean:
		return AlignRight
	default:
		return ctx
	}
}

func (k Kind) role() Role {
	switch k {
	case KindNumber, KindBigInteger:
		return RoleNumber
	case KindBoolean:
		return RoleBoolean
	case KindSymbol:
		return RoleSymbol
	case KindCallable:
		return RoleFunction
	case KindTemporal:
		return RoleDate
	case KindNull:
		return RoleNull
	default:
		return RoleNone
	}
}

const maxIndirections = 64

// indirect follows non-nil pointers down to the value they hold. Pointers
// that render themselves through pointer-receiver methods are kept.
func indirect(cell any) any {
	for range maxIndirections {
		v := reflect.ValueOf(cell)
		if v.Kind() != reflect.Pointer || v.IsNil() {
			return cell
		}
		elem := v.Elem().Interface()
		if rendersItself(cell) && !rendersItself(elem) {
			return cell
		}
		cell = elem
	}
	return cell
}

func rendersItself(v any) bool {
	switch v.(type) {
	case fmt.Stringer, error:
		return true
	default:
		return false
	}
}

// Classify returns the kind of cell. Pointers are classified by the value
// they point to.
func Classify(cell any) Kind {
	return classify(indirect(cell))
}

func classify(cell any) Kind {
	switch c := cell.(type) {
	case nil:
		return KindNull
	case string:
		return KindText
	case Symbol:
		return KindSymbol
	case bool:
		return KindBoolean
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, uintptr, float32, float64, json.Number:
		return KindNumber
	case *big.Int:
		if c == nil {
			return KindNull
		}
		return KindBigInteger
	case *big.Float:
		if c == nil {
			return KindNull
		}
		return KindNumber
	case *big.Rat:
		if c == nil {
			return KindNull
		}
		return KindNumber
	case time.Time, time.Duration:
		return KindTemporal
	}

	v := reflect.ValueOf(cell)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		if v.IsNil() {
			return KindNull
		}
	}
	if rendersItself(cell) {
		return KindOther
	}
	switch v.Kind() {
	case reflect.String:
		return KindText
	case reflect.Bool:
		return KindBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return KindNumber
	case reflect.Func:
		return KindCallable
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return KindStructured
	default:
		return KindOther
	}
}

// cellText is the built-in conversion of a cell to display text.
func cellText(cell any, kind Kind, indent int) (string, error) {
	cell = indirect(cell)
	switch kind {
	case KindText:
		return reflect.ValueOf(cell).String(), nil
	case KindNumber:
		return numberText(cell), nil
	case KindBigInteger:
		return cell.(*big.Int).String(), nil
	case KindBoolean:
		return strconv.FormatBool(reflect.ValueOf(cell).Bool()), nil
	case KindSymbol:
		return cell.(Symbol).String(), nil
	case KindCallable:
		return "[" + reflect.TypeOf(cell).String() + "]", nil
	case KindTemporal:
		return temporalText(cell), nil
	case KindNull:
		return "null", nil
	case KindStructured:
		return serialize(cell, indent)
	default:
		return fmt.Sprint(cell), nil
	}
}

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

func temporalText(cell any) string {
	switch t := cell.(type) {
	case time.Time:
		return t.UTC().Format(timeLayout)
	case time.Duration:
		return t.String()
	default:
		return fmt.Sprint(cell)
	}
}

func numberText(cell any) string {
	switch n := cell.(type) {
	case json.Number:
		return n.String()
	case *big.Float:
		return n.Text('g', -1)
	case *big.Rat:
		return n.RatString()
	}
	v := reflect.ValueOf(cell)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return formatFloat(v.Float(), 32)
	case reflect.Float64:
		return formatFloat(v.Float(), 64)
	default:
		return fmt.Sprint(cell)
	}
}

// formatFloat uses plain decimal notation between 1e-6 and 1e21 and
// exponent notation outside, with the shortest exact digits.
func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	if abs := math.Abs(f); abs == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(f, 'f', -1, bits)
	}
	return strconv.FormatFloat(f, 'g', -1, bits)
}

// escapeControl replaces control and format characters with printable
// escapes. Newlines are kept; they split the cell into lines.
func escapeControl(s string) string {
	if !needsEscape(s) {
		return s
	}
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '\n':
			sb.WriteRune(r)
		case 0:
			sb.WriteString(`\0`)
		case '\r':
			sb.WriteString(`\r`)
		case '\v':
			sb.WriteString(`\v`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			switch {
			case !isControl(r):
				sb.WriteRune(r)
			case r > 0xFFFF:
				fmt.Fprintf(&sb, `\U%08x`, r)
			default:
				fmt.Fprintf(&sb, `\u%04x`, r)
			}
		}
	}
	return sb.String()
}

func isControl(r rune) bool {
	return r != '\n' && (unicode.Is(unicode.Cc, r) || unicode.Is(unicode.Cf, r))
}

func needsEscape(s string) bool {
	for _, r := range s {
		if isControl(r) {
			return true
		}
	}
	return false
}

type processedLine struct {
	text   string
	prefix int
	suffix int
}

func (l processedLine) width() int { return l.prefix + l.suffix }

type processedCell struct {
	align Alignment
	lines []processedLine
	color string
}

type formatter struct {
	cfg     *config
	palette *Palette
	style   Style
	tracker columnTracker
}

func newFormatter(cfg *config) *formatter {
	return &formatter{
		cfg:     cfg,
		palette: cfg.resolvePalette(),
		style:   cfg.resolveStyle(),
	}
}

// processRow classifies, converts and measures every cell of a row and
// records the widths in the column tracker. Row -1 is the header.
func (f *formatter) processRow(row int, cells []any) ([]processedCell, error) {
	out := make([]processedCell, len(cells))
	for col, cell := range cells {
		pc, err := f.processCell(row, col, cell)
		if err != nil {
			if row < 0 {
				return nil, fmt.Errorf("header column %d: %w", col, err)
			}
			return nil, fmt.Errorf("row %d column %d: %w", row, col, err)
		}
		out[col] = pc
	}
	return out, nil
}

func (f *formatter) processCell(row, col int, cell any) (processedCell, error) {
	header := row < 0
	kind := Classify(cell)

	align := AlignLeft
	spec := f.cfg.alignment
	if header {
		align = AlignCenter
		spec = f.cfg.headerAlignment
	}
	if col < len(spec) && Alignment(spec[col]) != AlignInherit {
		align = Alignment(spec[col])
	} else if !header {
		align = kind.defaultAlign(align)
	}

	var (
		text string
		err  error
	)
	hooked := f.cfg.formatCell != nil && kind != KindText
	if hooked {
		text, err = f.cfg.formatCell(cell)
	} else {
		text, err = cellText(cell, kind, f.cfg.tabWidth)
	}
	if err != nil {
		return processedCell{}, err
	}

	builtinStructured := kind == KindStructured && !hooked
	text = expandTabs(text, f.cfg.tabWidth)
	verbatim := f.cfg.raw && !hooked && (kind == KindText || kind == KindSymbol)
	if !verbatim {
		text = escapeControl(text)
	}

	lines := f.measure(strings.Split(text, "\n"), align == AlignDecimal && !builtinStructured)

	var cellColor string
	if builtinStructured {
		f.blockify(lines)
	} else if f.palette != nil {
		cellColor = f.palette.Code(kind.role())
	}
	if header && f.palette != nil {
		cellColor += f.palette.Header
	}

	for _, ln := range lines {
		f.tracker.observe(col, ln.prefix, ln.suffix)
	}
	return processedCell{align: align, lines: lines, color: cellColor}, nil
}

func (f *formatter) measure(raw []string, decimal bool) []processedLine {
	lines := make([]processedLine, len(raw))
	for i, s := range raw {
		ln := processedLine{text: s}
		if decimal {
			if dot := strings.IndexByte(s, '.'); dot >= 0 {
				ln.prefix = f.width(s[:dot])
				ln.suffix = f.width(s[dot:])
				lines[i] = ln
				continue
			}
		}
		ln.prefix = f.width(s)
		lines[i] = ln
	}
	return lines
}

func (f *formatter) width(s string) int {
	if f.cfg.raw {
		s = ansi.Strip(s)
	}
	return stringWidth(s, f.cfg.width)
}

// blockify pads every line of a serialized value to the widest line so the
// block aligns as a unit, then highlights its tokens.
func (f *formatter) blockify(lines []processedLine) {
	widest := 0
	for _, ln := range lines {
		widest = max(widest, ln.width())
	}
	for i, ln := range lines {
		text := ln.text
		if f.palette != nil {
			text = f.palette.highlight(text)
		}
		lines[i] = processedLine{
			text:   text + strings.Repeat(" ", widest-ln.width()),
			prefix: widest,
		}
	}
}
