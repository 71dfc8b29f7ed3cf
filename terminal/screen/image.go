package screen

import (
	"github.com/hnimtadd/vtcore/logger"
	"github.com/hnimtadd/vtcore/terminal/character"
	"github.com/hnimtadd/vtcore/terminal/core"
	"github.com/hnimtadd/vtcore/terminal/utils"
)

// GetImage fills dest with the cells of lines [startLine, endLine] of the
// joined history+screen space: history lines padded to the column count,
// screen lines read through the grid, reverse-video, cursor and selection
// applied on the way out.
func (s *Screen) GetImage(dest []character.Character, size, startLine, endLine int) {
	if startLine < 0 || endLine < startLine || endLine >= s.hist.Lines()+s.lines {
		logger.DefaultLogger.Debug("screen: getImage out of range",
			"start", startLine, "end", endLine)
		return
	}

	mergedLines := endLine - startLine + 1

	utils.Assert(size >= mergedLines*s.columns)

	linesInHistoryBuffer := utils.Clamp(s.hist.Lines()-startLine, 0, mergedLines)
	linesInScreenBuffer := mergedLines - linesInHistoryBuffer

	// copy lines from the history buffer
	if linesInHistoryBuffer > 0 {
		s.copyFromHistory(dest, startLine, linesInHistoryBuffer)
	}

	// copy lines from the screen buffer
	if linesInScreenBuffer > 0 {
		s.copyFromScreen(dest[linesInHistoryBuffer*s.columns:],
			startLine+linesInHistoryBuffer-s.hist.Lines(),
			linesInScreenBuffer)
	}

	// invert the display when in screen mode
	if s.GetMode(core.ModeScreen) {
		for i := range mergedLines * s.columns {
			reverseRendition(&dest[i])
		}
	}

	// mark the character at the current cursor position
	visX := min(s.cuX, s.columns-1)
	cursorIndex := s.loc(visX, s.cuY+s.hist.Lines()-startLine)
	if s.GetMode(core.ModeCursor) && cursorIndex >= 0 && cursorIndex < s.columns*mergedLines {
		dest[cursorIndex].Rendition |= character.ReCursor
	}
}

func (s *Screen) copyFromHistory(dest []character.Character, startLine, count int) {
	utils.Assert(startLine >= 0 && count > 0 && startLine+count <= s.hist.Lines())

	for line := startLine; line < startLine+count; line++ {
		length := min(s.columns, s.hist.LineLen(line))
		destLineOffset := (line - startLine) * s.columns

		s.hist.GetCells(line, 0, length, dest[destLineOffset:destLineOffset+length])

		for column := length; column < s.columns; column++ {
			dest[destLineOffset+column] = character.DefaultChar
		}

		// invert selected text
		if s.selBegin != -1 {
			for column := range s.columns {
				if s.IsSelected(column, line) {
					dest[destLineOffset+column].Rendition |= character.ReSelected
				}
			}
		}
	}
}

func (s *Screen) copyFromScreen(dest []character.Character, startLine, count int) {
	utils.Assert(startLine >= 0 && count > 0 && startLine+count <= s.lines)

	for line := startLine; line < startLine+count; line++ {
		destLineStart := (line - startLine) * s.columns

		srcLine := s.screenLines[line]
		for column := range s.columns {
			cell := character.DefaultChar
			if column < len(srcLine) {
				cell = srcLine[column]
			}

			// invert selected text
			if s.selBegin != -1 && s.IsSelected(column, line+s.hist.Lines()) {
				cell.Rendition |= character.ReSelected
			}
			dest[destLineStart+column] = cell
		}
	}
}

// GetLineProperties returns the per-line properties of lines
// [startLine, endLine] of the joined history+screen space. History lines
// carry only the wrapped flag.
func (s *Screen) GetLineProperties(startLine, endLine int) []character.LineProperty {
	if startLine < 0 || endLine < startLine || endLine >= s.hist.Lines()+s.lines {
		logger.DefaultLogger.Debug("screen: getLineProperties out of range",
			"start", startLine, "end", endLine)
		return nil
	}

	mergedLines := endLine - startLine + 1
	linesInHistory := utils.Clamp(s.hist.Lines()-startLine, 0, mergedLines)
	linesInScreen := mergedLines - linesInHistory

	result := make([]character.LineProperty, mergedLines)
	index := 0

	for line := startLine; line < startLine+linesInHistory; line++ {
		if s.hist.IsWrappedLine(line) {
			result[index] |= character.LineWrapped
		}
		index++
	}

	firstScreenLine := startLine + linesInHistory - s.hist.Lines()
	for line := firstScreenLine; line < firstScreenLine+linesInScreen; line++ {
		result[index] = s.lineProperties[line]
		index++
	}

	return result
}

// FillWithDefaultChar fills dest with the default cell.
func FillWithDefaultChar(dest []character.Character) {
	for i := range dest {
		dest[i] = character.DefaultChar
	}
}

// GetLineLength returns the stored cell count of an absolute line: the
// history's record for retired lines, the full width for screen lines.
func (s *Screen) GetLineLength(line int) int {
	if line < s.hist.Lines() {
		return s.hist.LineLen(line)
	}
	return s.columns
}
