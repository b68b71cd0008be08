package termtable

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// WidthFunc reports how many terminal cells a rune occupies: 0, 1 or 2.
type WidthFunc func(r rune) int

type runeRange struct{ lo, hi rune }

// wideRanges lists emoji presentation, CJK, Hangul and fullwidth forms.
// It is a heuristic: terminals and fonts disagree on many of these.
var wideRanges = []runeRange{
	{0x1100, 0x115F}, // Hangul Jamo initial consonants
	{0x231A, 0x231B},
	{0x2329, 0x232A},
	{0x23E9, 0x23EC},
	{0x23F0, 0x23F0},
	{0x23F3, 0x23F3},
	{0x25FD, 0x25FE},
	{0x2614, 0x2615},
	{0x2648, 0x2653},
	{0x267F, 0x267F},
	{0x2693, 0x2693},
	{0x26A1, 0x26A1},
	{0x26AA, 0x26AB},
	{0x26BD, 0x26BE},
	{0x26C4, 0x26C5},
	{0x26CE, 0x26CE},
	{0x26D4, 0x26D4},
	{0x26EA, 0x26EA},
	{0x26F2, 0x26F3},
	{0x26F5, 0x26F5},
	{0x26FA, 0x26FA},
	{0x26FD, 0x26FD},
	{0x2705, 0x2705},
	{0x270A, 0x270B},
	{0x2728, 0x2728},
	{0x274C, 0x274C},
	{0x274E, 0x274E},
	{0x2753, 0x2755},
	{0x2757, 0x2757},
	{0x2795, 0x2797},
	{0x27B0, 0x27B0},
	{0x27BF, 0x27BF},
	{0x2B1B, 0x2B1C},
	{0x2B50, 0x2B50},
	{0x2B55, 0x2B55},
	{0x2E80, 0x303E}, // CJK radicals, punctuation
	{0x3041, 0x33FF}, // kana, CJK compatibility
	{0x3400, 0x4DBF}, // CJK extension A
	{0x4E00, 0x9FFF}, // CJK unified ideographs
	{0xA000, 0xA4CF}, // Yi
	{0xA960, 0xA97F},
	{0xAC00, 0xD7A3}, // Hangul syllables
	{0xF900, 0xFAFF},
	{0xFE10, 0xFE19},
	{0xFE30, 0xFE6F},
	{0xFF00, 0xFF60}, // fullwidth Latin and numbers
	{0xFFE0, 0xFFE6},
	{0x16FE0, 0x16FE4},
	{0x17000, 0x18CFF}, // Tangut
	{0x1B000, 0x1B2FF}, // kana extensions
	{0x1F004, 0x1F004},
	{0x1F0CF, 0x1F0CF},
	{0x1F18E, 0x1F18E},
	{0x1F191, 0x1F19A},
	{0x1F200, 0x1F202},
	{0x1F210, 0x1F23B},
	{0x1F240, 0x1F248},
	{0x1F250, 0x1F251},
	{0x1F260, 0x1F265},
	{0x1F300, 0x1F64F}, // pictographs, emoticons
	{0x1F680, 0x1F6FF}, // transport and map
	{0x1F7E0, 0x1F7EB},
	{0x1F90C, 0x1F9FF},
	{0x1FA70, 0x1FAFF},
	{0x20000, 0x2FFFD},
	{0x30000, 0x3FFFD},
}

// zeroRanges covers code points not caught by the general categories below.
var zeroRanges = []runeRange{
	{0x1160, 0x11FF}, // Hangul Jamo medial vowels and finals
	{0x200B, 0x200F},
	{0x2060, 0x2064},
	{0xFE00, 0xFE0F}, // variation selectors
	{0xFEFF, 0xFEFF},
	{0xE0100, 0xE01EF},
}

func inRanges(table []runeRange, r rune) bool {
	i := sort.Search(len(table), func(i int) bool { return table[i].hi >= r })
	return i < len(table) && table[i].lo <= r
}

// RuneWidth is the default width policy. Control characters, format
// characters, combining marks and other default-ignorable code points are
// zero width; emoji, CJK and fullwidth forms are two cells; everything else
// is one.
func RuneWidth(r rune) int {
	switch {
	case r < 0x20 || r == 0x7F:
		return 0
	case r < 0x7F:
		return 1
	case unicode.In(r, unicode.Cc, unicode.Cf, unicode.Mn, unicode.Me, unicode.Other_Default_Ignorable_Code_Point):
		return 0
	case inRanges(zeroRanges, r):
		return 0
	case inRanges(wideRanges, r):
		return 2
	default:
		return 1
	}
}

// EastAsianRuneWidth is an alternative policy backed by the East Asian Width
// tables of go-runewidth.
func EastAsianRuneWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// StringWidth returns the display width of s under the default policy.
// Invalid UTF-8 bytes count as one cell each.
func StringWidth(s string) int {
	return stringWidth(s, RuneWidth)
}

func stringWidth(s string, fn WidthFunc) int {
	n := 0
	for _, r := range s {
		n += fn(r)
	}
	return n
}

// ExpandTabs replaces each tab with spaces up to the next multiple of
// tabWidth. Columns are counted in output characters since the last newline.
func ExpandTabs(s string, tabWidth int) (string, error) {
	if tabWidth <= 0 {
		return "", fmt.Errorf("%w: tab width must be a positive integer, got %d", ErrInvalidConfig, tabWidth)
	}
	return expandTabs(s, tabWidth), nil
}

func expandTabs(s string, tabWidth int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var sb strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			n := tabWidth - col%tabWidth
			sb.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n':
			sb.WriteRune(r)
			col = 0
		default:
			sb.WriteRune(r)
			col++
		}
	}
	return sb.String()
}
