package decoder

import (
	"io"
	"strings"

	"github.com/hnimtadd/vtcore/terminal/character"
)

// PlainTextDecoder writes the codepoints of each cell, resolving extended
// characters to their full grapheme cluster. Line separators are the
// caller's concern: the screen encodes them as explicit newline cells.
type PlainTextDecoder struct {
	output io.Writer
}

var _ TerminalCharacterDecoder = (*PlainTextDecoder)(nil)

func NewPlainTextDecoder() *PlainTextDecoder {
	return &PlainTextDecoder{}
}

func (d *PlainTextDecoder) Begin(w io.Writer) {
	d.output = w
}

func (d *PlainTextDecoder) End() error {
	d.output = nil
	return nil
}

func (d *PlainTextDecoder) DecodeLine(cells []character.Character, _ character.LineProperty) error {
	_, err := io.WriteString(d.output, DecodeCells(cells))
	return err
}

// DecodeCells renders a run of cells as a plain string. Placeholder cells
// behind wide characters are skipped so decoded text round-trips what was
// written.
func DecodeCells(cells []character.Character) string {
	var sb strings.Builder
	for _, cell := range cells {
		if cell.Rendition&character.ReExtendedChar != 0 {
			if chars, ok := character.Table.LookupExtendedChar(cell.Character); ok {
				for _, c := range chars {
					sb.WriteRune(c)
				}
			}
			continue
		}
		if cell.Character == 0 && !cell.IsRealCharacter {
			continue
		}
		sb.WriteRune(cell.Character)
	}
	return sb.String()
}
