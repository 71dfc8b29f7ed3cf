// Package decoder turns rows of terminal cells back into text: either
// plain UTF-8 or styled XHTML markup.
package decoder

import (
	"io"

	"github.com/hnimtadd/vtcore/terminal/character"
)

// Options alter how cell content is decoded into text.
type Options uint8

const (
	// PreserveLineBreaks emits a newline between non-wrapped lines instead
	// of joining them with a space.
	PreserveLineBreaks Options = 1 << iota
	// TrimLeadingWhitespace removes space characters once at the start of
	// the assembled run.
	TrimLeadingWhitespace
	// TrimTrailingWhitespace removes trailing spaces per line, except on
	// wrapped lines.
	TrimTrailingWhitespace
	// ConvertToHTML routes decoding through the HTML decoder.
	ConvertToHTML
)

func (o Options) Has(flag Options) bool { return o&flag != 0 }

// TerminalCharacterDecoder consumes rows of cells and appends a textual
// representation to an output sink.
type TerminalCharacterDecoder interface {
	// Begin opens the decoding session on the given sink.
	Begin(w io.Writer)

	// DecodeLine appends one row of cells.
	DecodeLine(cells []character.Character, properties character.LineProperty) error

	// End finishes the session, flushing any trailing markup.
	End() error
}
