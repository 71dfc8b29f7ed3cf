package screen

import (
	"github.com/hnimtadd/vtcore/terminal/character"
	"github.com/hnimtadd/vtcore/terminal/history"
)

// Index moves the cursor down one line; at the bottom margin it scrolls
// the region up instead (IND).
func (s *Screen) Index() {
	if s.cuY == s.bottomMargin {
		s.ScrollUp(1)
	} else if s.cuY < s.lines-1 {
		s.cuY++
	}
}

// ReverseIndex moves the cursor up one line; at the top margin it scrolls
// the region down instead (RI).
func (s *Screen) ReverseIndex() {
	if s.cuY == s.topMargin {
		s.scrollDownRegion(s.topMargin, 1)
	} else if s.cuY > 0 {
		s.cuY--
	}
}

// ScrollUp scrolls the scroll region up by n lines. When the region starts
// at the top of the screen the displaced line retires into history first.
func (s *Screen) ScrollUp(n int) {
	s.assertNotNotifying()
	if n < 1 {
		n = 1 // Default
	}
	if s.topMargin == 0 {
		s.addHistLine()
	}
	s.scrollUpRegion(s.topMargin, n)
}

// ScrollDown scrolls the scroll region down by n lines.
func (s *Screen) ScrollDown(n int) {
	s.assertNotNotifying()
	if n < 1 {
		n = 1 // Default
	}
	s.scrollDownRegion(s.topMargin, n)
}

func (s *Screen) scrollUpRegion(from, n int) {
	if n <= 0 {
		return
	}
	if from > s.bottomMargin {
		return
	}
	if from+n > s.bottomMargin {
		n = s.bottomMargin + 1 - from
	}

	s.scrolledLines -= n
	s.lastScrolledRegion = Rect{
		X: 0, Y: s.topMargin,
		Width: s.columns, Height: s.bottomMargin - s.topMargin + 1,
	}

	if from+n <= s.bottomMargin {
		s.moveImage(s.loc(0, from), s.loc(0, from+n), s.loc(s.columns-1, s.bottomMargin))
	}
	s.clearImage(s.loc(0, s.bottomMargin-n+1), s.loc(s.columns-1, s.bottomMargin), ' ')
}

func (s *Screen) scrollDownRegion(from, n int) {
	s.scrolledLines += n

	if n <= 0 {
		return
	}
	if from > s.bottomMargin {
		return
	}
	if from+n > s.bottomMargin {
		n = s.bottomMargin - from
	}
	if n <= 0 {
		return
	}
	s.moveImage(s.loc(0, from+n), s.loc(0, from), s.loc(s.columns-1, s.bottomMargin-n))
	s.clearImage(s.loc(0, from), s.loc(s.columns-1, from+n-1), ' ')
}

// addHistLine is the single point where the top screen line enters
// history. It shifts the selection anchors so a selected region survives
// the scroll and reports drop events to the URL extractor.
func (s *Screen) addHistLine() {
	oldHistLines := s.hist.Lines()
	newHistLines := oldHistLines

	if s.HasScroll() {
		s.hist.AddCells(s.screenLines[0])
		s.hist.AddLine(s.lineProperties[0]&character.LineWrapped != 0)

		newHistLines = s.hist.Lines()

		// the history is full, count the dropped line
		if newHistLines == oldHistLines {
			s.droppedLines++

			// a line fell off the far end, hyperlink ranges may need to
			// retire with it
			s.urlExtractor.HistoryLinesRemoved(1)
		}
	}

	beginIsTL := s.selBegin == s.selTopLeft

	// adjust the selection for the new point of reference
	if newHistLines > oldHistLines && s.selBegin != -1 {
		s.selTopLeft += s.columns
		s.selBottomRight += s.columns
	}

	if s.selBegin != -1 {
		// scroll the selection in history up
		topBR := s.loc(0, 1+newHistLines)

		if s.selTopLeft < topBR {
			s.selTopLeft -= s.columns
		}
		if s.selBottomRight < topBR {
			s.selBottomRight -= s.columns
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

// fastAddHistLine retires the top screen line without selection fix-up.
// The resize path uses it while draining lines, selection is cleared there
// anyway.
func (s *Screen) fastAddHistLine() {
	removeLine := s.hist.Lines() == s.hist.Type().MaximumLineCount()
	s.hist.AddCells(s.screenLines[0])
	s.hist.AddLine(s.lineProperties[0]&character.LineWrapped != 0)

	// the history dropped its oldest line to make room, hyperlink ranges
	// may need to retire with it
	if removeLine {
		s.urlExtractor.HistoryLinesRemoved(1)
	}

	s.screenLines = append(s.screenLines[:0], s.screenLines[1:]...)
	s.screenLines = append(s.screenLines, nil)
	s.lineProperties = append(s.lineProperties[:0], s.lineProperties[1:]...)
	s.lineProperties = append(s.lineProperties, character.LineDefault)
}

// HistLines returns the number of lines in history.
func (s *Screen) HistLines() int {
	return s.hist.Lines()
}

// HasScroll reports whether the attached history stores lines at all.
func (s *Screen) HasScroll() bool {
	return s.hist.HasScroll()
}

// GetScroll returns the descriptor of the attached history.
func (s *Screen) GetScroll() history.Type {
	return s.hist.Type()
}

// SetScroll switches the history to a new type, optionally migrating the
// existing contents. The selection does not survive the switch.
func (s *Screen) SetScroll(t history.Type, copyPreviousScroll bool) {
	s.ClearSelection()

	if copyPreviousScroll {
		s.hist = t.Scroll(s.hist)
	} else {
		s.hist = t.Scroll(nil)
	}
}

// ScrolledLines returns the net number of lines scrolled since the last
// reset, negative upwards.
func (s *Screen) ScrolledLines() int { return s.scrolledLines }

// ResetScrolledLines clears the scrolled-lines counter.
func (s *Screen) ResetScrolledLines() { s.scrolledLines = 0 }

// DroppedLines returns how many lines fell off a full history since the
// last reset.
func (s *Screen) DroppedLines() int { return s.droppedLines }

// ResetDroppedLines clears the dropped-lines counter.
func (s *Screen) ResetDroppedLines() { s.droppedLines = 0 }

// LastScrolledRegion returns the screen region affected by the most recent
// scroll, a hint for renderer-side blit optimization.
func (s *Screen) LastScrolledRegion() Rect { return s.lastScrolledRegion }
