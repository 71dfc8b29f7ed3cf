package history

import (
	"github.com/hnimtadd/vtcore/logger"
	"github.com/hnimtadd/vtcore/terminal/character"
)

// CompactType is a bounded in-memory history.
type CompactType struct {
	MaxLines int
}

func (t CompactType) IsEnabled() bool       { return true }
func (t CompactType) MaximumLineCount() int { return t.MaxLines }

func (t CompactType) Scroll(old Scroll) Scroll {
	if compact, ok := old.(*CompactScroll); ok {
		compact.SetMaxLines(t.MaxLines)
		return compact
	}
	fresh := NewCompactScroll(t.MaxLines)
	copyScroll(fresh, old)
	return fresh
}

type compactLine struct {
	cells   []character.Character
	wrapped bool
}

// CompactScroll is a ring of the most recent maxLines lines. Appending at
// capacity drops the oldest line. It is the only store that can reflow.
type CompactScroll struct {
	lines    []compactLine
	maxLines int
	staged   []character.Character
}

var (
	_ Scroll   = (*CompactScroll)(nil)
	_ Reflower = (*CompactScroll)(nil)
)

func NewCompactScroll(maxLines int) *CompactScroll {
	if maxLines < 1 {
		maxLines = 1
	}
	return &CompactScroll{maxLines: maxLines}
}

func (s *CompactScroll) HasScroll() bool { return true }
func (s *CompactScroll) Lines() int      { return len(s.lines) }
func (s *CompactScroll) Type() Type      { return CompactType{MaxLines: s.maxLines} }

func (s *CompactScroll) LineLen(lineno int) int {
	if lineno < 0 || lineno >= len(s.lines) {
		return 0
	}
	return len(s.lines[lineno].cells)
}

func (s *CompactScroll) IsWrappedLine(lineno int) bool {
	if lineno < 0 || lineno >= len(s.lines) {
		return false
	}
	return s.lines[lineno].wrapped
}

func (s *CompactScroll) GetCells(lineno, colno, count int, res []character.Character) {
	for i := range count {
		res[i] = character.DefaultChar
	}
	if lineno < 0 || lineno >= len(s.lines) || colno < 0 || count < 0 {
		logger.DefaultLogger.Debug("history: getCells out of range",
			"line", lineno, "col", colno, "count", count)
		return
	}
	cells := s.lines[lineno].cells
	if colno >= len(cells) {
		return
	}
	copy(res, cells[colno:min(colno+count, len(cells))])
}

func (s *CompactScroll) AddCells(cells []character.Character) {
	s.staged = make([]character.Character, len(cells))
	copy(s.staged, cells)
}

func (s *CompactScroll) AddLine(wrapped bool) {
	s.lines = append(s.lines, compactLine{cells: s.staged, wrapped: wrapped})
	s.staged = nil
	s.enforceMaxLines()
}

// SetMaxLines changes the line budget, dropping oldest lines as needed.
func (s *CompactScroll) SetMaxLines(maxLines int) {
	if maxLines < 1 {
		maxLines = 1
	}
	s.maxLines = maxLines
	s.enforceMaxLines()
}

func (s *CompactScroll) enforceMaxLines() int {
	dropped := len(s.lines) - s.maxLines
	if dropped <= 0 {
		return 0
	}
	s.lines = append(s.lines[:0], s.lines[dropped:]...)
	return dropped
}

// RemoveLastLine hands the most recent line back to the caller's screen.
func (s *CompactScroll) RemoveLastLine() bool {
	if len(s.lines) == 0 {
		return false
	}
	s.lines = s.lines[:len(s.lines)-1]
	return true
}

// ReflowLines joins each run of wrapped lines into its logical line and
// re-splits it at maxColumns, keeping cell attributes and re-deriving the
// wrapped flag chain. Returns how many lines the capacity limit dropped
// while the result was being rebuilt.
func (s *CompactScroll) ReflowLines(maxColumns int) int {
	if maxColumns < 1 || len(s.lines) == 0 {
		return 0
	}

	reflowed := make([]compactLine, 0, len(s.lines))
	logical := make([]character.Character, 0, maxColumns*2)

	flush := func() {
		if len(logical) == 0 {
			reflowed = append(reflowed, compactLine{})
			return
		}
		for start := 0; start < len(logical); start += maxColumns {
			end := min(start+maxColumns, len(logical))
			segment := make([]character.Character, end-start)
			copy(segment, logical[start:end])
			reflowed = append(reflowed, compactLine{
				cells:   segment,
				wrapped: end < len(logical),
			})
		}
		logical = logical[:0]
	}

	for i, line := range s.lines {
		logical = append(logical, line.cells...)
		if !line.wrapped || i == len(s.lines)-1 {
			flush()
		}
	}

	s.lines = reflowed
	return s.enforceMaxLines()
}
