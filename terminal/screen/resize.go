package screen

import (
	"github.com/hnimtadd/vtcore/terminal/character"
	"github.com/hnimtadd/vtcore/terminal/core"
	"github.com/hnimtadd/vtcore/terminal/history"
	"github.com/hnimtadd/vtcore/terminal/utils"
)

// SetReflowLines enables re-breaking wrapped runs when the column count
// changes.
func (s *Screen) SetReflowLines(enable bool) {
	s.enableReflowLines = enable
}

// GetOldTotalLines returns the total line count (screen plus history)
// recorded before the most recent resize.
func (s *Screen) GetOldTotalLines() int {
	return s.oldTotalLines
}

// IsResize reports whether a resize happened since the last call. Reading
// clears the flag.
func (s *Screen) IsResize() bool {
	if s.isResize {
		s.isResize = false
		return true
	}
	return false
}

// getCursorLine returns the row the resize logic should track: the saved
// cursor while the alternate screen is active.
func (s *Screen) getCursorLine() int {
	if s.GetMode(core.ModeAppScreen) {
		return s.savedState.cursorLine
	}
	return s.cuY
}

func (s *Screen) setCursorLine(newLine int) {
	if s.GetMode(core.ModeAppScreen) {
		s.savedState.cursorLine = newLine
	} else {
		s.cuY = newLine
	}
}

// ResizeImage changes the screen geometry. With reflow enabled and a
// changing column count, wrapped runs are joined and re-split at the new
// width, draining through history in either direction so the cursor keeps
// its logical line.
func (s *Screen) ResizeImage(newLines, newColumns int) {
	if newLines == s.lines && newColumns == s.columns {
		return
	}
	s.assertNotNotifying()
	utils.Assert(newLines > 0 && newColumns > 0)

	// adjust the scroll position bookkeeping for the viewport
	s.oldTotalLines = s.lines + s.hist.Lines()
	s.isResize = true

	cursorLine := s.getCursorLine()
	oldCursorLine := cursorLine
	if cursorLine == s.lines-1 || cursorLine > newLines-1 {
		oldCursorLine = newLines - 1
	}

	// check if the history needs to change
	if s.enableReflowLines && newColumns != s.columns &&
		s.hist.Lines() > 0 && s.hist.Type().MaximumLineCount() != 0 {
		// while the last history line wraps into the screen, retire the top
		// screen line into history, so the last logical line is whole
		// inside history before the history reflows
		for s.hist.IsWrappedLine(s.hist.Lines() - 1) {
			s.fastAddHistLine()
			cursorLine--
		}
		if reflower, ok := s.hist.(history.Reflower); ok {
			removedLines := reflower.ReflowLines(newColumns)

			// the capacity limit may have dropped lines during the
			// reflow; hyperlink ranges retire with them
			if removedLines > 0 {
				s.urlExtractor.HistoryLinesRemoved(removedLines)
			}
		}
	}

	if s.enableReflowLines && newColumns != s.columns {
		cursorLineCorrection := 0
		if s.processNameFunc != nil {
			// zsh repaints its command line on resize, so the join scan
			// must extend through the wrapped run above the cursor;
			// other shells leave those lines alone
			if s.processNameFunc() == "zsh" && cursorLine > 0 &&
				s.lineProperties[cursorLine-1]&character.LineWrapped != 0 {
				for cursorLine+cursorLineCorrection > 0 &&
					s.lineProperties[cursorLine+cursorLineCorrection-1]&character.LineWrapped != 0 {
					cursorLineCorrection--
				}
			}
		}

		// analyze the lines from the top through the cursor line and move
		// data to the lines below
		currentPos := 0
		for currentPos <= cursorLine+cursorLineCorrection && currentPos < len(s.screenLines)-1 {
			// join the wrapped line at the current position
			if s.lineProperties[currentPos]&character.LineWrapped != 0 {
				s.screenLines[currentPos] = append(s.screenLines[currentPos], s.screenLines[currentPos+1]...)
				s.screenLines = append(s.screenLines[:currentPos+1], s.screenLines[currentPos+2:]...)
				s.lineProperties = append(s.lineProperties[:currentPos], s.lineProperties[currentPos+1:]...)
				cursorLine--
				continue
			}

			// ignore whitespace at the end of the line
			lineSize := len(s.screenLines[currentPos])
			for lineSize > 0 && s.screenLines[currentPos][lineSize-1].IsSpace() {
				lineSize--
			}

			// if the logical line no longer fits, move the excess to a
			// new line below
			if lineSize > newColumns {
				values := make([]character.Character, len(s.screenLines[currentPos])-newColumns)
				copy(values, s.screenLines[currentPos][newColumns:])
				s.screenLines[currentPos] = s.screenLines[currentPos][:newColumns]

				s.screenLines = append(s.screenLines[:currentPos+1],
					append([][]character.Character{values}, s.screenLines[currentPos+1:]...)...)
				s.lineProperties = append(s.lineProperties[:currentPos+1],
					append([]character.LineProperty{s.lineProperties[currentPos]}, s.lineProperties[currentPos+1:]...)...)
				s.lineProperties[currentPos] |= character.LineWrapped
				cursorLine++
			}
			currentPos++
		}
	}

	// move lines into history until the cursor fits the new height
	for cursorLine > newLines-1 {
		s.fastAddHistLine()
		cursorLine--
	}

	if s.enableReflowLines {
		// the cursor ended above its old logical position: pull lines
		// back from history into the top of the screen
		for cursorLine < oldCursorLine && s.hist.Lines() > 0 {
			histPos := s.hist.Lines() - 1
			histLineLen := s.hist.LineLen(histPos)
			wrapped := character.LineDefault
			if s.hist.IsWrappedLine(histPos) {
				wrapped = character.LineWrapped
			}
			histLine := make([]character.Character, histLineLen)
			s.hist.GetCells(histPos, 0, histLineLen, histLine)

			s.screenLines = append([][]character.Character{histLine}, s.screenLines...)
			s.lineProperties = append([]character.LineProperty{wrapped}, s.lineProperties...)
			s.hist.RemoveLastLine()
			cursorLine++
		}
	}

	// resize the property and line arrays to the new geometry
	newProperties := make([]character.LineProperty, newLines+1)
	copy(newProperties, s.lineProperties)
	for i := len(s.screenLines); i < len(newProperties); i++ {
		newProperties[i] = character.LineDefault
	}
	s.lineProperties = newProperties

	newScreenLines := make([][]character.Character, newLines+1)
	copy(newScreenLines, s.screenLines)
	s.screenLines = newScreenLines

	s.lines = newLines
	s.columns = newColumns
	s.cuX = min(s.cuX, s.columns-1)
	cursorLine = utils.Clamp(cursorLine, 0, s.lines-1)
	s.setCursorLine(cursorLine)

	s.setDefaultMargins()
	s.initTabStops()
	s.ClearSelection()
}
