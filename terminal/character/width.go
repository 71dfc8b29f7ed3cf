package character

import (
	"unicode"

	dw "github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Width classifies a codepoint by the number of columns it occupies:
// -1 for non-printable characters, 0 for zero-width codepoints (combining
// marks and format characters), 1 for narrow and 2 for wide glyphs.
func Width(c rune) int {
	if c < 32 || (c >= 0x7F && c < 0xA0) {
		return -1
	}
	if w := dw.RuneWidth(c); w > 0 {
		return w
	}
	return 0
}

// CanCombine reports whether a zero-width codepoint should merge into the
// preceding character to form a grapheme cluster. Combining marks and the
// "other letter" formatting codepoints qualify; everything else zero-width
// is dropped.
func CanCombine(c rune) bool {
	return unicode.Is(unicode.Mn, c) || unicode.Is(unicode.Lo, c)
}

// StringWidth sums the display widths of a string. Zero-width codepoints
// combine into the prior character and contribute nothing.
func StringWidth(s string) int {
	return uniseg.StringWidth(s)
}
