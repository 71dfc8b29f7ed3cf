package screen

import (
	"strings"

	"github.com/hnimtadd/vtcore/logger"
	"github.com/hnimtadd/vtcore/terminal/character"
	"github.com/hnimtadd/vtcore/terminal/decoder"
	"github.com/hnimtadd/vtcore/terminal/utils"
)

// SelectedText decodes the current selection. Returns the empty string
// when there is no valid selection.
func (s *Screen) SelectedText(options decoder.Options) string {
	if !s.IsSelectionValid() {
		return ""
	}
	return s.Text(s.selTopLeft, s.selBottomRight, options)
}

// Text decodes the absolute index range [startIndex, endIndex] into plain
// text or, with ConvertToHTML, into markup.
func (s *Screen) Text(startIndex, endIndex int, options decoder.Options) string {
	var result strings.Builder

	var dec decoder.TerminalCharacterDecoder
	if options.Has(decoder.ConvertToHTML) {
		dec = decoder.NewHTMLDecoder(s.htmlPalette)
	} else {
		dec = decoder.NewPlainTextDecoder()
	}

	dec.Begin(&result)
	s.writeToStream(dec, startIndex, endIndex, options)
	if err := dec.End(); err != nil {
		logger.DefaultLogger.Warn("screen: decode end", "err", err)
	}

	return result.String()
}

// SetHTMLPalette installs the palette used to resolve colors during HTML
// decoding. A nil palette produces markup without color styles.
func (s *Screen) SetHTMLPalette(palette *character.Palette) {
	s.htmlPalette = palette
}

// WriteLinesToStream decodes whole absolute lines [fromLine, toLine],
// preserving line breaks. Search indexing reads history through this.
func (s *Screen) WriteLinesToStream(dec decoder.TerminalCharacterDecoder, fromLine, toLine int) {
	s.writeToStream(dec, s.loc(0, fromLine), s.loc(s.columns-1, toLine), decoder.PreserveLineBreaks)
}

func (s *Screen) writeToStream(dec decoder.TerminalCharacterDecoder, startIndex, endIndex int, options decoder.Options) {
	top := startIndex / s.columns
	left := startIndex % s.columns

	bottom := endIndex / s.columns
	right := endIndex % s.columns

	if top < 0 || left < 0 || bottom < 0 || right < 0 {
		logger.DefaultLogger.Debug("screen: text out of range",
			"start", startIndex, "end", endIndex)
		return
	}

	// leading whitespace is trimmed once, at the start of the assembled
	// run: the option stays active only until some line contributes text
	opts := options

	for y := top; y <= bottom; y++ {
		start := 0
		if y == top || s.blockSelectionMode {
			start = left
		}

		count := -1
		if y == bottom || s.blockSelectionMode {
			count = right - start + 1
		}

		appendNewLine := y != bottom
		copied := s.copyLineToStream(y, start, count, dec, appendNewLine, opts)
		if copied > 0 {
			opts &^= decoder.TrimLeadingWhitespace
		}

		// if the selection goes beyond the end of the last line then
		// append a newline character; this makes it possible to select a
		// trailing newline after the text on a line
		if y == bottom && copied < count && !options.Has(decoder.TrimTrailingWhitespace) {
			newLineChar := []character.Character{character.NewCharacter('\n')}
			if err := dec.DecodeLine(newLineChar, character.LineDefault); err != nil {
				logger.DefaultLogger.Warn("screen: decode newline", "err", err)
			}
		}
	}
}

// copyLineToStream decodes one absolute line, from history or from the
// grid, applying the whitespace options, and returns the number of cells
// decoded.
func (s *Screen) copyLineToStream(line, start, count int, dec decoder.TerminalCharacterDecoder, appendNewLine bool, options decoder.Options) int {
	lineLength := s.GetLineLength(line)

	bufferSize := lineLength - start
	if count > -1 {
		bufferSize = count
	}
	// one extra slot so this method can append a space or newline to the
	// decoded run
	characterBuffer := make([]character.Character, max(bufferSize, 0)+1)
	currentLineProperties := character.LineDefault

	if line < s.hist.Lines() {
		// retired lines keep the cells they had on screen, trailing spaces
		// included; don't remove trailing spaces from lines that wrap
		if options.Has(decoder.TrimTrailingWhitespace) && !s.hist.IsWrappedLine(line) {
			stored := make([]character.Character, lineLength)
			s.hist.GetCells(line, 0, lineLength, stored)
			for lineLength > 0 && stored[lineLength-1].IsSpace() {
				lineLength--
			}
		}

		// ensure that the start position is before the end of line
		start = utils.Clamp(start, 0, max(lineLength-1, 0))

		if count == -1 {
			count = lineLength - start
		} else {
			count = min(start+count, lineLength) - start
		}

		utils.Assert(start >= 0)
		utils.Assert(count >= 0)
		utils.Assert(start+count <= s.hist.LineLen(line))

		// clamping may have grown count past the initial estimate
		if len(characterBuffer) < count+1 {
			characterBuffer = make([]character.Character, count+1)
		}

		s.hist.GetCells(line, start, count, characterBuffer[:count])

		if s.hist.IsWrappedLine(line) {
			currentLineProperties |= character.LineWrapped
		}
	} else {
		if count == -1 {
			count = lineLength - start
		}

		utils.Assert(count >= 0)

		screenLine := min(line-s.hist.Lines(), s.lines)

		data := s.screenLines[screenLine]
		length := len(data)

		// don't remove trailing spaces from lines that wrap
		if options.Has(decoder.TrimTrailingWhitespace) &&
			s.lineProperties[screenLine]&character.LineWrapped == 0 {
			for length > 0 && data[length-1].IsSpace() {
				length--
			}
		}

		end := min(start+count, length)
		if start < end {
			copy(characterBuffer, data[start:end])
		}

		// count cannot be any greater than length
		count = utils.Clamp(count, 0, max(length-start, 0))

		currentLineProperties |= s.lineProperties[screenLine]
	}

	if appendNewLine {
		if currentLineProperties&character.LineWrapped != 0 {
			// do nothing extra when this line wraps into the next
		} else if options.Has(decoder.PreserveLineBreaks) {
			characterBuffer[count] = character.NewCharacter('\n')
			count++
		} else {
			// treat the line break as a space, joining lines the way 'J'
			// does in vim
			characterBuffer[count] = character.NewCharacter(' ')
			count++
		}
	}

	if options.Has(decoder.TrimLeadingWhitespace) {
		spacesCount := 0
		for spacesCount < count {
			if !characterBuffer[spacesCount].IsSpace() {
				break
			}
			spacesCount++
		}

		if spacesCount >= count {
			return 0
		}

		copy(characterBuffer, characterBuffer[spacesCount:count])
		count -= spacesCount
	}

	// decode the line and write it to the output
	if err := dec.DecodeLine(characterBuffer[:count], currentLineProperties); err != nil {
		logger.DefaultLogger.Warn("screen: decode line", "err", err)
	}

	return count
}
