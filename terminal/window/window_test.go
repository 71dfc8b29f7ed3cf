package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnimtadd/vtcore/terminal/character"
	"github.com/hnimtadd/vtcore/terminal/decoder"
	"github.com/hnimtadd/vtcore/terminal/history"
	"github.com/hnimtadd/vtcore/terminal/screen"
)

func newTestWindow(t *testing.T, lines, columns, windowLines int) (*screen.Screen, *Window) {
	t.Helper()
	scr := screen.NewScreen(lines, columns)
	scr.SetScroll(history.CompactType{MaxLines: 100}, false)
	w := NewWindow(scr)
	w.SetWindowLines(windowLines)
	return scr, w
}

func write(scr *screen.Screen, text string) {
	for _, c := range text {
		if c == '\n' {
			scr.NextLine()
			continue
		}
		scr.DisplayCharacter(c)
	}
}

func TestWindowImage(t *testing.T) {
	scr, w := newTestWindow(t, 4, 10, 4)
	write(scr, "ab")

	image := w.GetImage()
	require.Len(t, image, 40)
	assert.Equal(t, 'a', image[0].Character)
	assert.Equal(t, 'b', image[1].Character)
	assert.Equal(t, character.DefaultChar.Character, image[2].Character)

	// the buffer is cached until something changes
	again := w.GetImage()
	assert.Equal(t, &image[0], &again[0])

	// a size change reallocates
	w.SetWindowLines(2)
	resized := w.GetImage()
	assert.Len(t, resized, 20)
}

func TestWindowFillsAreaBeyondScreen(t *testing.T) {
	scr, w := newTestWindow(t, 4, 10, 6)
	write(scr, "x")

	image := w.GetImage()
	require.Len(t, image, 60)
	// the two lines past the end of the screen hold default cells
	for i := 40; i < 60; i++ {
		assert.Equal(t, character.DefaultChar, image[i])
	}
}

func TestWindowTracksOutput(t *testing.T) {
	scr, w := newTestWindow(t, 4, 10, 4)

	// eight lines of output, four retire into history
	write(scr, "1\n2\n3\n4\n5\n6\n7\n8")
	scr.NotifyOutputChanged()

	assert.Equal(t, 4, scr.HistLines())
	assert.Equal(t, 4, w.CurrentLine())
	assert.True(t, w.AtEndOfOutput())

	image := w.GetImage()
	assert.Equal(t, '5', image[0].Character)
}

func TestWindowScrollingAnchored(t *testing.T) {
	scr, w := newTestWindow(t, 4, 10, 4)
	write(scr, "1\n2\n3\n4\n5\n6\n7\n8")
	scr.NotifyOutputChanged()

	w.SetTrackOutput(false)
	w.ScrollTo(1)
	assert.Equal(t, 1, w.CurrentLine())
	assert.False(t, w.AtEndOfOutput())

	image := w.GetImage()
	assert.Equal(t, '2', image[0].Character)

	// more output does not move the anchored view
	write(scr, "\n9")
	scr.NotifyOutputChanged()
	assert.Equal(t, 1, w.CurrentLine())
}

func TestWindowAnchorFollowsDroppedLines(t *testing.T) {
	scr := screen.NewScreen(4, 10)
	scr.SetScroll(history.CompactType{MaxLines: 2}, false)
	w := NewWindow(scr)
	w.SetWindowLines(4)
	w.SetTrackOutput(false)

	write(scr, "1\n2\n3\n4\n5\n6")
	scr.NotifyOutputChanged()
	w.ScrollTo(2)
	scr.ResetDroppedLines()

	// two more retirements overflow the two line budget
	write(scr, "\n7\n8")
	scr.NotifyOutputChanged()

	// the anchor backed up by the dropped amount
	assert.Equal(t, 0, w.CurrentLine())
}

func TestWindowScrollBy(t *testing.T) {
	scr, w := newTestWindow(t, 4, 10, 4)
	write(scr, "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n11\n12")
	scr.NotifyOutputChanged()
	require.Equal(t, 8, scr.HistLines())

	w.SetTrackOutput(false)
	w.ScrollTo(0)
	w.ResetScrollCount()

	w.ScrollBy(ScrollLines, 3, false)
	assert.Equal(t, 3, w.CurrentLine())
	assert.Equal(t, 3, w.ScrollCount())

	w.ScrollBy(ScrollPages, 1, true)
	assert.Equal(t, 7, w.CurrentLine())

	w.ScrollBy(ScrollPages, -1, false)
	assert.Equal(t, 5, w.CurrentLine())

	// scrolling clamps into the valid range
	w.ScrollBy(ScrollLines, 100, false)
	assert.Equal(t, 8, w.CurrentLine())
	w.ScrollBy(ScrollLines, -100, false)
	assert.Equal(t, 0, w.CurrentLine())
}

func TestWindowSelectionTranslation(t *testing.T) {
	scr, w := newTestWindow(t, 4, 10, 4)
	write(scr, "1\n2\n3\n4\n5\nsix\n7\n8")
	scr.NotifyOutputChanged()
	require.Equal(t, 4, w.CurrentLine())

	// window line 1 is absolute line 5, the one holding "six"
	w.SetSelectionStart(0, 1, false)
	w.SetSelectionEnd(2, 1)
	assert.Equal(t, "six", w.SelectedText(0))
	assert.True(t, w.IsSelected(1, 1))

	column, line := w.GetSelectionStart()
	assert.Equal(t, 0, column)
	assert.Equal(t, 1, line)

	w.ClearSelection()
	assert.False(t, w.IsSelected(1, 1))
}

func TestWindowSelectionByLineRange(t *testing.T) {
	scr, w := newTestWindow(t, 4, 10, 4)
	write(scr, "one\ntwo\nthree")
	scr.NotifyOutputChanged()

	w.SetSelectionByLineRange(0, 1)
	assert.Equal(t, "one two", w.SelectedText(decoder.TrimTrailingWhitespace))
}

func TestWindowLineProperties(t *testing.T) {
	scr, w := newTestWindow(t, 4, 10, 4)
	for range 12 {
		scr.DisplayCharacter('w')
	}
	scr.NotifyOutputChanged()

	props := w.GetLineProperties()
	require.Len(t, props, 4)
	assert.NotZero(t, props[0]&character.LineWrapped)
	assert.Zero(t, props[1]&character.LineWrapped)
}

func TestWindowScrollRegion(t *testing.T) {
	scr, w := newTestWindow(t, 4, 10, 4)
	write(scr, "1\n2\n3\n4\n5")
	scr.NotifyOutputChanged()

	// at the bottom with a full-height window, the screen's last scrolled
	// region is the blit hint
	region := w.ScrollRegion()
	assert.Equal(t, scr.LastScrolledRegion(), region)

	// anywhere else the whole window repaints
	w.SetTrackOutput(false)
	w.ScrollTo(0)
	region = w.ScrollRegion()
	assert.Equal(t, screen.Rect{X: 0, Y: 0, Width: 10, Height: 4}, region)
}

func TestWindowCallbacks(t *testing.T) {
	scr, w := newTestWindow(t, 4, 10, 4)

	var outputs, scrolls, selections, results int
	w.SetCallbacks(Callbacks{
		OutputChanged:            func() { outputs++ },
		Scrolled:                 func(int) { scrolls++ },
		SelectionChanged:         func() { selections++ },
		CurrentResultLineChanged: func() { results++ },
	})

	scr.NotifyOutputChanged()
	assert.Equal(t, 1, outputs)

	write(scr, "1\n2\n3\n4\n5\n6")
	scr.NotifyOutputChanged()
	w.SetTrackOutput(false)
	w.ScrollTo(0)
	assert.Equal(t, 1, scrolls)

	w.SetSelectionStart(0, 0, false)
	w.SetSelectionEnd(3, 0)
	assert.Equal(t, 2, selections)

	w.SetCurrentResultLine(3)
	assert.Equal(t, 1, results)
	// setting the same line again does not re-notify
	w.SetCurrentResultLine(3)
	assert.Equal(t, 1, results)
}

func TestWindowResultLineClearedOnScreenClear(t *testing.T) {
	scr, w := newTestWindow(t, 4, 10, 4)
	write(scr, "findme")
	w.SetCurrentResultLine(2)

	scr.ClearEntireScreen()
	assert.Equal(t, -1, w.CurrentResultLine())
}

func TestWindowCursorPosition(t *testing.T) {
	scr, w := newTestWindow(t, 4, 10, 4)
	write(scr, "ab")

	x, y := w.CursorPosition()
	assert.Equal(t, 2, x)
	assert.Equal(t, 0, y)
	assert.Equal(t, 10, w.ColumnCount())
	assert.Equal(t, 4, w.LineCount())
}
