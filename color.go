package termtable

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// ColorMode controls whether cells are colorized.
type ColorMode int

const (
	ColorAuto ColorMode = iota // consult the color probe
	ColorAlways
	ColorNever
)

var colorModeNames = map[ColorMode]string{
	ColorAuto:   "auto",
	ColorAlways: "always",
	ColorNever:  "never",
}

// String returns the mode name.
func (m ColorMode) String() string {
	if s, ok := colorModeNames[m]; ok {
		return s
	}
	return "ColorMode(" + strconv.Itoa(int(m)) + ")"
}

// ParseColorMode parses "auto", "always" or "never". "true" and "false" are
// accepted as aliases.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always", "true":
		return ColorAlways, nil
	case "never", "false":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("%w: unknown color mode %q", ErrInvalidConfig, s)
	}
}

// Role is the semantic color class of a cell or of a token inside a
// structured value.
type Role int

const (
	RoleNone Role = iota
	RoleNumber
	RoleBoolean
	RoleString
	RoleNull
	RoleSymbol
	RoleFunction
	RoleDate
)

// Palette maps each role to the escape sequence printed before a colored
// line. Empty entries leave that role uncolored.
type Palette struct {
	Number   string
	Boolean  string
	String   string
	Null     string
	Symbol   string
	Function string
	Date     string
	Header   string // appended to the role color of header cells
}

func sgr(attrs ...color.Attribute) string {
	codes := make([]string, len(attrs))
	for i, a := range attrs {
		codes[i] = strconv.Itoa(int(a))
	}
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

var colorReset = sgr(color.Reset)

var defaultPalette = Palette{
	Number:   sgr(color.FgGreen),
	Boolean:  sgr(color.FgGreen),
	String:   sgr(color.FgMagenta),
	Null:     sgr(color.FgBlue),
	Symbol:   sgr(color.FgRed),
	Function: sgr(color.FgCyan),
	Date:     sgr(color.FgGreen),
	Header:   sgr(color.Bold),
}

// DefaultPalette returns the palette used when colors are enabled without an
// explicit palette.
func DefaultPalette() Palette { return defaultPalette }

// Code returns the escape sequence for role.
func (p Palette) Code(role Role) string {
	switch role {
	case RoleNumber:
		return p.Number
	case RoleBoolean:
		return p.Boolean
	case RoleString:
		return p.String
	case RoleNull:
		return p.Null
	case RoleSymbol:
		return p.Symbol
	case RoleFunction:
		return p.Function
	case RoleDate:
		return p.Date
	default:
		return ""
	}
}

// DetectColor reports whether standard output looks like a color capable
// terminal. It honours NO_COLOR and TERM=dumb. It says nothing about other
// writers; see [WithColorProbe].
func DetectColor() bool {
	return !color.NoColor
}
