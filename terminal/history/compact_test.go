package history

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hnimtadd/vtcore/terminal/character"
)

func cellsOf(text string) []character.Character {
	cells := make([]character.Character, 0, len(text))
	for _, c := range text {
		cells = append(cells, character.NewCharacter(c))
	}
	return cells
}

func textOf(s Scroll, lineno int) string {
	length := s.LineLen(lineno)
	cells := make([]character.Character, length)
	s.GetCells(lineno, 0, length, cells)
	var sb strings.Builder
	for _, c := range cells {
		sb.WriteRune(c.Character)
	}
	return sb.String()
}

func addLine(s Scroll, text string, wrapped bool) {
	s.AddCells(cellsOf(text))
	s.AddLine(wrapped)
}

func TestCompactAppendAndRead(t *testing.T) {
	s := NewCompactScroll(100)
	assert.True(t, s.HasScroll())
	assert.Equal(t, 0, s.Lines())

	addLine(s, "first", false)
	addLine(s, "second", true)

	assert.Equal(t, 2, s.Lines())
	assert.Equal(t, 5, s.LineLen(0))
	assert.Equal(t, "first", textOf(s, 0))
	assert.Equal(t, "second", textOf(s, 1))
	assert.False(t, s.IsWrappedLine(0))
	assert.True(t, s.IsWrappedLine(1))
}

func TestCompactGetCellsPadding(t *testing.T) {
	s := NewCompactScroll(100)
	addLine(s, "ab", false)

	// reads past the stored length pad with the default cell
	cells := make([]character.Character, 5)
	s.GetCells(0, 0, 5, cells)
	assert.Equal(t, 'a', cells[0].Character)
	assert.Equal(t, 'b', cells[1].Character)
	assert.Equal(t, character.DefaultChar, cells[2])
	assert.Equal(t, character.DefaultChar, cells[4])

	// entirely out of range reads stay defaulted
	s.GetCells(7, 0, 5, cells)
	assert.Equal(t, character.DefaultChar, cells[0])
}

func TestCompactCapacityDropsOldest(t *testing.T) {
	s := NewCompactScroll(3)
	addLine(s, "one", false)
	addLine(s, "two", false)
	addLine(s, "three", false)
	addLine(s, "four", false)

	assert.Equal(t, 3, s.Lines())
	assert.Equal(t, "two", textOf(s, 0))
	assert.Equal(t, "four", textOf(s, 2))
}

func TestCompactRemoveLastLine(t *testing.T) {
	s := NewCompactScroll(10)
	addLine(s, "one", false)
	addLine(s, "two", true)

	assert.True(t, s.RemoveLastLine())
	assert.Equal(t, 1, s.Lines())
	assert.Equal(t, "one", textOf(s, 0))

	assert.True(t, s.RemoveLastLine())
	assert.False(t, s.RemoveLastLine())
}

func TestCompactReflowRoundTrip(t *testing.T) {
	s := NewCompactScroll(100)
	// one logical line of 20 cells split at 10 columns
	addLine(s, "aaaaaaaaaa", true)
	addLine(s, "bbbbbbbbbb", false)
	addLine(s, "short", false)

	removed := s.ReflowLines(5)
	assert.Equal(t, 0, removed)
	assert.Equal(t, 5, s.Lines())
	assert.Equal(t, "aaaaa", textOf(s, 0))
	assert.True(t, s.IsWrappedLine(0))
	assert.True(t, s.IsWrappedLine(2))
	assert.False(t, s.IsWrappedLine(3))
	assert.Equal(t, "short", textOf(s, 4))
	assert.False(t, s.IsWrappedLine(4))

	// back at 10 columns the original split returns
	s.ReflowLines(10)
	assert.Equal(t, 3, s.Lines())
	assert.Equal(t, "aaaaaaaaaa", textOf(s, 0))
	assert.True(t, s.IsWrappedLine(0))
	assert.Equal(t, "bbbbbbbbbb", textOf(s, 1))
	assert.False(t, s.IsWrappedLine(1))
}

func TestCompactReflowReportsRemoved(t *testing.T) {
	s := NewCompactScroll(4)
	addLine(s, "aaaa", true)
	addLine(s, "aaaa", false)
	addLine(s, "bbbb", false)
	addLine(s, "cccc", false)

	// eight cells re-split at 2 columns exceed the four line budget
	removed := s.ReflowLines(2)
	assert.Greater(t, removed, 0)
	assert.Equal(t, 4, s.Lines())
}

func TestCompactSetMaxLines(t *testing.T) {
	s := NewCompactScroll(10)
	for range 10 {
		addLine(s, "line", false)
	}
	s.SetMaxLines(4)
	assert.Equal(t, 4, s.Lines())
}
