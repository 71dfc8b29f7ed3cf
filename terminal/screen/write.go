package screen

import (
	"github.com/hnimtadd/vtcore/terminal/character"
	"github.com/hnimtadd/vtcore/terminal/core"
	"github.com/hnimtadd/vtcore/terminal/utils"
)

// loc converts an (x, y) position into an offset within the screen image.
// Several operations, notably moveImage and clearImage, address cell
// ranges through these offsets.
func (s *Screen) loc(x, y int) int {
	return y*s.columns + x
}

// DisplayCharacter writes one codepoint at the cursor with the current
// effective attributes, handling width, combining marks, wrapping and
// insert mode.
func (s *Screen) DisplayCharacter(c rune) {
	s.assertNotNotifying()

	// The VT100 wraps BEFORE putting the character, which has impact on
	// the assumption of valid cursor positions: a pending newline is
	// indicated by a cursor one right of the last column.
	w := character.Width(c)

	if w < 0 {
		// non-printable
		return
	} else if w == 0 {
		s.combineCharacter(c)
		return
	}

	if s.cuX+w > s.getScreenLineColumns(s.cuY) {
		if s.GetMode(core.ModeWrap) {
			s.lineProperties[s.cuY] |= character.LineWrapped
			s.NextLine()
		} else {
			s.cuX = max(s.getScreenLineColumns(s.cuY)-w, 0)
		}
	}

	// ensure the current line has enough cells
	if len(s.screenLines[s.cuY]) < s.cuX+w {
		s.resizeLine(s.cuY, s.cuX+w)
	}

	if s.GetMode(core.ModeInsert) {
		s.InsertChars(w)
	}

	s.lastPos = s.loc(s.cuX, s.cuY)

	// check if the selection is still valid
	s.checkSelection(s.lastPos, s.lastPos)

	line := s.screenLines[s.cuY]
	line[s.cuX] = character.Character{
		Character:       c,
		ForegroundColor: s.effectiveForeground,
		BackgroundColor: s.effectiveBackground,
		Rendition:       s.effectiveRendition,
		IsRealCharacter: true,
	}

	s.lastDrawnChar = c

	newCursorX := s.cuX + w
	for i := 1; i < w; i++ {
		if len(s.screenLines[s.cuY]) < s.cuX+i+1 {
			s.resizeLine(s.cuY, s.cuX+i+1)
		}
		s.screenLines[s.cuY][s.cuX+i] = character.Character{
			Character:       0,
			ForegroundColor: s.effectiveForeground,
			BackgroundColor: s.effectiveBackground,
			Rendition:       s.effectiveRendition,
			IsRealCharacter: false,
		}
	}
	s.cuX = newCursorX

	s.urlExtractor.AppendURLText(c)
}

// combineCharacter merges a zero-width codepoint into the nearest
// preceding real character, growing or creating its extended sequence.
func (s *Screen) combineCharacter(c rune) {
	if !character.CanCombine(c) {
		return
	}

	// find the previous "real character" to combine with
	charToCombineWithX := min(s.cuX, len(s.screenLines[s.cuY]))
	charToCombineWithY := s.cuY
	for {
		if charToCombineWithX > 0 {
			charToCombineWithX--
		} else if charToCombineWithY > 0 {
			// try the previous line
			charToCombineWithY--
			charToCombineWithX = len(s.screenLines[charToCombineWithY]) - 1
		} else {
			// give up
			return
		}

		if charToCombineWithX < 0 {
			return
		}
		if s.screenLines[charToCombineWithY][charToCombineWithX].IsRealCharacter {
			break
		}
	}

	currentChar := &s.screenLines[charToCombineWithY][charToCombineWithX]
	if currentChar.Rendition&character.ReExtendedChar == 0 {
		chars := []rune{currentChar.Character, c}
		currentChar.Rendition |= character.ReExtendedChar
		currentChar.Character = character.Table.CreateExtendedChar(chars, s.usedExtendedChars)
		return
	}

	oldChars, ok := character.Table.LookupExtendedChar(currentChar.Character)
	utils.Assert(ok)
	// sequences are capped; further marks on an already long cluster are
	// dropped rather than grown without bound
	if ok && len(oldChars) < 3 {
		chars := make([]rune, 0, len(oldChars)+1)
		chars = append(chars, oldChars...)
		chars = append(chars, c)
		currentChar.Character = character.Table.CreateExtendedChar(chars, s.usedExtendedChars)
	}
}

// usedExtendedChars walks the live grid and reports every extended
// character key still referenced by a cell. The intern table calls it when
// deciding what to reclaim.
func (s *Screen) usedExtendedChars() map[rune]struct{} {
	used := make(map[rune]struct{})
	for _, line := range s.screenLines {
		for _, cell := range line {
			if cell.Rendition&character.ReExtendedChar != 0 {
				used[cell.Character] = struct{}{}
			}
		}
	}
	return used
}

// EraseChars clears n cells from the cursor rightwards without touching
// the rest of the line (ECH).
func (s *Screen) EraseChars(n int) {
	if n < 1 {
		n = 1 // Default
	}
	n = min(n, maxScreenArgument)
	p := utils.Clamp(s.cuX+n-1, 0, s.columns-1)
	s.clearImage(s.loc(s.cuX, s.cuY), s.loc(p, s.cuY), ' ')
}

// DeleteChars removes n cells at the cursor, shifting the remainder of the
// line left and padding with blanks carrying the current attributes (DCH).
func (s *Screen) DeleteChars(n int) {
	utils.Assert(n >= 0)

	// always delete at least one char
	if n < 1 {
		n = 1
	}

	// if the cursor is beyond the end of the line there is nothing to do
	line := s.screenLines[s.cuY]
	if s.cuX >= len(line) {
		return
	}

	if s.cuX+n > len(line) {
		n = len(line) - s.cuX
	}

	utils.Assert(n >= 0)
	utils.Assert(s.cuX+n <= len(line))

	line = append(line[:s.cuX], line[s.cuX+n:]...)

	// append spaces with the current attributes
	spaceWithCurrentAttrs := character.Character{
		Character:       ' ',
		ForegroundColor: s.effectiveForeground,
		BackgroundColor: s.effectiveBackground,
		Rendition:       s.effectiveRendition,
		IsRealCharacter: false,
	}
	for range n {
		line = append(line, spaceWithCurrentAttrs)
	}
	s.screenLines[s.cuY] = line
}

// InsertChars shifts the remainder of the cursor line right by n blank
// cells (ICH).
func (s *Screen) InsertChars(n int) {
	if n < 1 {
		n = 1 // Default
	}
	n = min(n, maxScreenArgument)

	if len(s.screenLines[s.cuY]) < s.cuX {
		s.resizeLine(s.cuY, s.cuX)
	}

	line := s.screenLines[s.cuY]
	blanks := make([]character.Character, n)
	for i := range blanks {
		blanks[i] = character.NewCharacter(' ')
	}
	line = append(line[:s.cuX], append(blanks, line[s.cuX:]...)...)

	if len(line) > s.columns {
		line = line[:s.columns]
	}
	s.screenLines[s.cuY] = line
}

// RepeatChars writes the last drawn character n more times (REP). From
// ECMA-48: the effect of REP after a control function is undefined, so a
// normal program only uses it right after a visible character and
// lastDrawnChar can be safely used.
func (s *Screen) RepeatChars(n int) {
	if n < 1 {
		n = 1 // Default
	}
	n = min(n, maxScreenArgument)
	for range n {
		s.DisplayCharacter(s.lastDrawnChar)
	}
}

// DeleteLines removes n lines at the cursor, scrolling the region below it
// up (DL).
func (s *Screen) DeleteLines(n int) {
	if n < 1 {
		n = 1 // Default
	}
	s.scrollUpRegion(s.cuY, n)
}

// InsertLines inserts n blank lines at the cursor, scrolling the region
// below it down (IL).
func (s *Screen) InsertLines(n int) {
	if n < 1 {
		n = 1 // Default
	}
	s.scrollDownRegion(s.cuY, n)
}

// ClearToEndOfScreen clears from the cursor to the bottom right (ED 0).
func (s *Screen) ClearToEndOfScreen() {
	s.assertNotNotifying()
	s.clearImage(s.loc(s.cuX, s.cuY), s.loc(s.columns-1, s.lines-1), ' ')
}

// ClearToBeginOfScreen clears from the top left to the cursor (ED 1).
func (s *Screen) ClearToBeginOfScreen() {
	s.assertNotNotifying()
	s.clearImage(s.loc(0, 0), s.loc(s.cuX, s.cuY), ' ')
}

// ClearEntireScreen clears the whole visible image (ED 2).
func (s *Screen) ClearEntireScreen() {
	s.assertNotNotifying()
	s.clearImage(s.loc(0, 0), s.loc(s.columns-1, s.lines-1), ' ')
	s.notifyScreenCleared()
}

// HelpAlign fills the screen with the letter E to aid screen alignment
// (DECALN).
func (s *Screen) HelpAlign() {
	s.clearImage(s.loc(0, 0), s.loc(s.columns-1, s.lines-1), 'E')
}

// ClearToEndOfLine clears from the cursor to the right margin (EL 0).
func (s *Screen) ClearToEndOfLine() {
	s.clearImage(s.loc(s.cuX, s.cuY), s.loc(s.columns-1, s.cuY), ' ')
}

// ClearToBeginOfLine clears from the left margin to the cursor (EL 1).
func (s *Screen) ClearToBeginOfLine() {
	s.clearImage(s.loc(0, s.cuY), s.loc(s.cuX, s.cuY), ' ')
}

// ClearEntireLine clears the cursor line (EL 2).
func (s *Screen) ClearEntireLine() {
	s.clearImage(s.loc(0, s.cuY), s.loc(s.columns-1, s.cuY), ' ')
}

// clearImage clears the offset range [loca, loce] with the given
// character, carrying the current colors.
func (s *Screen) clearImage(loca, loce int, c rune) {
	scrTL := s.loc(0, s.hist.Lines())

	// clear the entire selection if it overlaps the region to be cleared
	if s.selBottomRight >= loca+scrTL && s.selTopLeft <= loce+scrTL {
		s.ClearSelection()
	}

	topLine := loca / s.columns
	bottomLine := loce / s.columns

	clearCh := character.Character{
		Character:       c,
		ForegroundColor: s.currentForeground,
		BackgroundColor: s.currentBackground,
		Rendition:       character.DefaultRendition,
		IsRealCharacter: false,
	}

	// if the character used to clear the area is the same as the default
	// character, the affected lines can simply be shrunk: reads pad on
	// demand
	isDefaultCh := clearCh == character.DefaultChar

	for y := topLine; y <= bottomLine; y++ {
		s.lineProperties[y] = character.LineDefault

		endCol := s.columns - 1
		if y == bottomLine {
			endCol = loce % s.columns
		}
		startCol := 0
		if y == topLine {
			startCol = loca % s.columns
		}

		if isDefaultCh && endCol == s.columns-1 {
			if len(s.screenLines[y]) > startCol {
				s.screenLines[y] = s.screenLines[y][:startCol]
			}
			continue
		}

		if len(s.screenLines[y]) < endCol+1 {
			s.resizeLine(y, endCol+1)
		}
		line := s.screenLines[y]
		for x := startCol; x <= endCol; x++ {
			line[x] = clearCh
		}
	}
}

// moveImage moves the offset range [sourceBegin, sourceEnd] to dest,
// shifting the selection along and clearing it when the move would tear
// it.
func (s *Screen) moveImage(dest, sourceBegin, sourceEnd int) {
	utils.Assert(sourceBegin <= sourceEnd)

	lines := (sourceEnd - sourceBegin) / s.columns

	// The source and destination row ranges overlap, so the whole span is
	// rotated rather than copied row by row. The rows that wrap around
	// into the vacated area are stale and the caller clears them.
	destY := dest / s.columns
	srcY := sourceBegin / s.columns
	if dest < sourceBegin {
		n := srcY - destY
		utils.Rotate(s.screenLines[destY:srcY+lines+1], n)
		utils.Rotate(s.lineProperties[destY:srcY+lines+1], n)
	} else {
		n := destY - srcY
		utils.RotateR(s.screenLines[srcY:destY+lines+1], n)
		utils.RotateR(s.lineProperties[srcY:destY+lines+1], n)
	}

	if s.lastPos != -1 {
		diff := dest - sourceBegin
		s.lastPos += diff
		if s.lastPos < 0 || s.lastPos >= lines*s.columns {
			s.lastPos = -1
		}
	}

	// adjust the selection to follow the scroll
	if s.selBegin != -1 {
		beginIsTL := s.selBegin == s.selTopLeft
		diff := dest - sourceBegin
		scrTL := s.loc(0, s.hist.Lines())
		srca := sourceBegin + scrTL
		srce := sourceEnd + scrTL
		desta := srca + diff
		deste := srce + diff

		if s.selTopLeft >= srca && s.selTopLeft <= srce {
			s.selTopLeft += diff
		} else if s.selTopLeft >= desta && s.selTopLeft <= deste {
			s.selBottomRight = -1 // clear selection below
		}

		if s.selBottomRight >= srca && s.selBottomRight <= srce {
			s.selBottomRight += diff
		} else if s.selBottomRight >= desta && s.selBottomRight <= deste {
			s.selBottomRight = -1 // clear selection below
		}

		if s.selBottomRight < 0 {
			s.ClearSelection()
		} else if s.selTopLeft < 0 {
			s.selTopLeft = 0
		}

		if s.selBegin != -1 {
			if beginIsTL {
				s.selBegin = s.selTopLeft
			} else {
				s.selBegin = s.selBottomRight
			}
		}
	}
}
