package screen

// Selection anchors are absolute cell indices into the joined
// history+screen stream, computed as line*columns+column with the line
// counted from the top of history.

// ClearSelection removes the selection.
func (s *Screen) ClearSelection() {
	s.selBottomRight = -1
	s.selTopLeft = -1
	s.selBegin = -1
}

// HasSelection reports whether a selection exists.
func (s *Screen) HasSelection() bool {
	return s.selBegin != -1
}

// IsSelectionValid reports whether both anchors are inside the coordinate
// space.
func (s *Screen) IsSelectionValid() bool {
	return s.selTopLeft >= 0 && s.selBottomRight >= 0
}

// GetSelectionStart returns the upper-left anchor in absolute coordinates,
// or the cursor position when nothing is selected.
func (s *Screen) GetSelectionStart() (column, line int) {
	if s.selTopLeft != -1 {
		return s.selTopLeft % s.columns, s.selTopLeft / s.columns
	}
	return s.cuX, s.cuY + s.hist.Lines()
}

// GetSelectionEnd returns the lower-right anchor in absolute coordinates,
// or the cursor position when nothing is selected.
func (s *Screen) GetSelectionEnd() (column, line int) {
	if s.selBottomRight != -1 {
		return s.selBottomRight % s.columns, s.selBottomRight / s.columns
	}
	return s.cuX, s.cuY + s.hist.Lines()
}

// SetSelectionStart anchors a new selection at the absolute position.
func (s *Screen) SetSelectionStart(x, y int, blockSelectionMode bool) {
	s.assertNotNotifying()

	s.selBegin = s.loc(x, y)
	// correct for x being one past the right margin
	if x == s.columns {
		s.selBegin--
	}

	s.selBottomRight = s.selBegin
	s.selTopLeft = s.selBegin
	s.blockSelectionMode = blockSelectionMode
}

// SetSelectionEnd extends the selection to the absolute position,
// reordering the anchors as needed.
func (s *Screen) SetSelectionEnd(x, y int) {
	s.assertNotNotifying()

	if s.selBegin == -1 {
		return
	}

	endPos := s.loc(x, y)

	if endPos < s.selBegin {
		s.selTopLeft = endPos
		s.selBottomRight = s.selBegin
	} else {
		// correct for x being one past the right margin
		if x == s.columns {
			endPos--
		}

		s.selTopLeft = s.selBegin
		s.selBottomRight = endPos
	}

	// normalize the selection in column mode
	if s.blockSelectionMode {
		topRow := s.selTopLeft / s.columns
		topColumn := s.selTopLeft % s.columns
		bottomRow := s.selBottomRight / s.columns
		bottomColumn := s.selBottomRight % s.columns

		s.selTopLeft = s.loc(min(topColumn, bottomColumn), topRow)
		s.selBottomRight = s.loc(max(topColumn, bottomColumn), bottomRow)
	}
}

// IsSelected reports whether the absolute position is inside the
// selection. In block mode columns are tested independently of lines.
func (s *Screen) IsSelected(x, y int) bool {
	columnInSelection := true
	if s.blockSelectionMode {
		columnInSelection = x >= s.selTopLeft%s.columns &&
			x <= s.selBottomRight%s.columns
	}

	pos := s.loc(x, y)
	return pos >= s.selTopLeft && pos <= s.selBottomRight && columnInSelection
}

// BlockSelectionMode reports whether the selection is rectangular.
func (s *Screen) BlockSelectionMode() bool {
	return s.blockSelectionMode
}

// checkSelection clears the selection if it overlaps the screen offset
// range [from, to].
func (s *Screen) checkSelection(from, to int) {
	if s.selBegin == -1 {
		return
	}
	scrTL := s.loc(0, s.hist.Lines())
	if s.selBottomRight >= from+scrTL && s.selTopLeft <= to+scrTL {
		s.ClearSelection()
	}
}
