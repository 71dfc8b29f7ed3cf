// Package window provides a read-only viewport over the joined
// history+screen line sequence of a screen: a fixed-size cached image for
// the renderer, scroll tracking, and selection in window-local
// coordinates.
package window

import (
	"github.com/hnimtadd/vtcore/terminal/character"
	"github.com/hnimtadd/vtcore/terminal/decoder"
	"github.com/hnimtadd/vtcore/terminal/screen"
	"github.com/hnimtadd/vtcore/terminal/utils"
)

// RelativeScrollMode selects the unit of a relative scroll.
type RelativeScrollMode int

const (
	ScrollLines RelativeScrollMode = iota
	ScrollPages
)

// Callbacks are the notifications a window emits towards its renderer.
// Any of them may be nil.
type Callbacks struct {
	OutputChanged            func()
	Scrolled                 func(line int)
	SelectionChanged         func()
	CurrentResultLineChanged func()
}

// Window views a fixed number of lines of its screen. The screen must
// outlive the window.
type Window struct {
	screen *screen.Screen

	windowBuffer     []character.Character
	bufferNeedsUpdate bool

	windowLines       int
	currentLine       int
	currentResultLine int

	trackOutput bool
	scrollCount int

	callbacks Callbacks

	removeObserver func()
}

// NewWindow creates a one-line window onto the given screen and registers
// it for output notifications.
func NewWindow(scr *screen.Screen) *Window {
	utils.Assert(scr != nil)
	w := &Window{
		screen:            scr,
		bufferNeedsUpdate: true,
		windowLines:       1,
		currentResultLine: -1,
		trackOutput:       true,
	}
	w.removeObserver = scr.AddObserver(w)
	return w
}

// Close detaches the window from its screen.
func (w *Window) Close() {
	if w.removeObserver != nil {
		w.removeObserver()
		w.removeObserver = nil
	}
}

// SetCallbacks registers the renderer's notification callbacks.
func (w *Window) SetCallbacks(callbacks Callbacks) {
	w.callbacks = callbacks
}

// Screen returns the viewed screen.
func (w *Window) Screen() *screen.Screen {
	return w.screen
}

// GetImage returns the window's image buffer, rebuilding it when the
// window is dirty or its size changed. The buffer is owned by the window
// and valid until the next call.
func (w *Window) GetImage() []character.Character {
	// reallocate the internal buffer if the window size has changed
	size := w.WindowLines() * w.WindowColumns()
	if len(w.windowBuffer) != size {
		w.windowBuffer = make([]character.Character, size)
		w.bufferNeedsUpdate = true
	}

	if !w.bufferNeedsUpdate {
		return w.windowBuffer
	}

	w.screen.GetImage(w.windowBuffer, size, w.CurrentLine(), w.endWindowLine())

	// this window may look beyond the end of the screen, in which case
	// there is an unused area to fill with blank characters
	w.fillUnusedArea()

	w.bufferNeedsUpdate = false
	return w.windowBuffer
}

func (w *Window) fillUnusedArea() {
	screenEndLine := w.screen.HistLines() + w.screen.Lines() - 1
	windowEndLine := w.CurrentLine() + w.WindowLines() - 1

	unusedLines := windowEndLine - screenEndLine
	if unusedLines <= 0 {
		return
	}

	charsToFill := unusedLines * w.WindowColumns()
	screen.FillWithDefaultChar(w.windowBuffer[len(w.windowBuffer)-charsToFill:])
}

// endWindowLine returns the absolute index of the last line in this
// window, or the last line of the screen if the window extends past it.
func (w *Window) endWindowLine() int {
	return min(w.CurrentLine()+w.WindowLines()-1, w.LineCount()-1)
}

// GetLineProperties returns the line properties covering the window,
// padded to the window size.
func (w *Window) GetLineProperties() []character.LineProperty {
	result := w.screen.GetLineProperties(w.CurrentLine(), w.endWindowLine())

	if len(result) != w.WindowLines() {
		padded := make([]character.LineProperty, w.WindowLines())
		copy(padded, result)
		result = padded
	}
	return result
}

// SelectedText decodes the current selection of the viewed screen.
func (w *Window) SelectedText(options decoder.Options) string {
	return w.screen.SelectedText(options)
}

// GetSelectionStart returns the selection start in window coordinates.
func (w *Window) GetSelectionStart() (column, line int) {
	column, line = w.screen.GetSelectionStart()
	line -= w.CurrentLine()
	return column, line
}

// GetSelectionEnd returns the selection end in window coordinates.
func (w *Window) GetSelectionEnd() (column, line int) {
	column, line = w.screen.GetSelectionEnd()
	line -= w.CurrentLine()
	return column, line
}

// SetSelectionStart anchors a selection at a window position.
func (w *Window) SetSelectionStart(column, line int, columnMode bool) {
	w.screen.SetSelectionStart(column, line+w.CurrentLine(), columnMode)

	w.bufferNeedsUpdate = true
	w.notifySelectionChanged()
}

// SetSelectionEnd extends the selection to a window position.
func (w *Window) SetSelectionEnd(column, line int) {
	w.screen.SetSelectionEnd(column, line+w.CurrentLine())

	w.bufferNeedsUpdate = true
	w.notifySelectionChanged()
}

// SetSelectionByLineRange selects the lines [start, end] wholesale. The
// lines are absolute history+screen lines, not offset by the window
// position.
func (w *Window) SetSelectionByLineRange(start, end int) {
	w.ClearSelection()

	w.screen.SetSelectionStart(0, start, false)
	w.screen.SetSelectionEnd(w.WindowColumns(), end)

	w.bufferNeedsUpdate = true
	w.notifySelectionChanged()
}

// IsSelected reports whether a window position is selected.
func (w *Window) IsSelected(column, line int) bool {
	return w.screen.IsSelected(column, min(line+w.CurrentLine(), w.endWindowLine()))
}

// ClearSelection removes the selection.
func (w *Window) ClearSelection() {
	w.screen.ClearSelection()

	w.notifySelectionChanged()
}

// SetWindowLines resizes the window; the next GetImage reallocates.
func (w *Window) SetWindowLines(lines int) {
	utils.Assert(lines > 0)
	w.windowLines = lines
}

// WindowLines returns the window height.
func (w *Window) WindowLines() int {
	return w.windowLines
}

// WindowColumns returns the window width, always the screen width.
func (w *Window) WindowColumns() int {
	return w.screen.Columns()
}

// LineCount returns the total number of lines of history+screen.
func (w *Window) LineCount() int {
	return w.screen.HistLines() + w.screen.Lines()
}

// ColumnCount returns the screen width.
func (w *Window) ColumnCount() int {
	return w.screen.Columns()
}

// CursorPosition returns the screen cursor in screen coordinates.
func (w *Window) CursorPosition() (x, y int) {
	return w.screen.CursorX(), w.screen.CursorY()
}

// CurrentLine returns the absolute line at the top of the window, clamped
// into the valid scroll range.
func (w *Window) CurrentLine() int {
	return utils.Clamp(w.currentLine, 0, max(0, w.LineCount()-w.WindowLines()))
}

// CurrentResultLine returns the search highlight anchor, -1 for none.
func (w *Window) CurrentResultLine() int {
	return w.currentResultLine
}

// SetCurrentResultLine moves the search highlight anchor.
func (w *Window) SetCurrentResultLine(line int) {
	if w.currentResultLine == line {
		return
	}
	w.currentResultLine = line
	w.notifyCurrentResultLineChanged()
}

// ScrollBy scrolls relative by lines or pages; a half page when fullPage
// is unset.
func (w *Window) ScrollBy(mode RelativeScrollMode, amount int, fullPage bool) {
	switch mode {
	case ScrollLines:
		w.ScrollTo(w.CurrentLine() + amount)
	case ScrollPages:
		if fullPage {
			w.ScrollTo(w.CurrentLine() + amount*w.WindowLines())
		} else {
			w.ScrollTo(w.CurrentLine() + amount*(w.WindowLines()/2))
		}
	}
}

// AtEndOfOutput reports whether the window shows the bottom of the output.
func (w *Window) AtEndOfOutput() bool {
	return w.CurrentLine() == w.LineCount()-w.WindowLines()
}

// ScrollTo moves the top of the window to an absolute line, clamped into
// the valid range.
func (w *Window) ScrollTo(line int) {
	maxCurrentLineNumber := w.LineCount() - w.WindowLines()
	line = utils.Clamp(line, 0, max(0, maxCurrentLineNumber))

	delta := line - w.currentLine
	w.currentLine = line

	// track the net number of lines scrolled by; reset via
	// ResetScrollCount
	w.scrollCount += delta

	w.bufferNeedsUpdate = true

	w.notifyScrolled(w.currentLine)
}

// SetTrackOutput selects whether the window sticks to the bottom as new
// output arrives.
func (w *Window) SetTrackOutput(trackOutput bool) {
	w.trackOutput = trackOutput
}

// TrackOutput reports whether the window sticks to the bottom.
func (w *Window) TrackOutput() bool {
	return w.trackOutput
}

// ScrollCount returns the net lines scrolled since the last reset,
// positive downward.
func (w *Window) ScrollCount() int {
	return w.scrollCount
}

// ResetScrollCount clears the scroll counter.
func (w *Window) ResetScrollCount() {
	w.scrollCount = 0
}

// ScrollRegion returns the screen region a renderer can scroll-blit: the
// last scrolled region when the window matches the screen and sits at the
// bottom, the whole window otherwise.
func (w *Window) ScrollRegion() screen.Rect {
	equalToScreenSize := w.WindowLines() == w.screen.Lines()

	if w.AtEndOfOutput() && equalToScreenSize {
		return w.screen.LastScrolledRegion()
	}
	return screen.Rect{X: 0, Y: 0, Width: w.WindowColumns(), Height: w.WindowLines()}
}

// OutputChanged implements screen.Observer. When tracking output the
// window moves to the bottom of the screen; otherwise it compensates for
// lines the history may have dropped so the view stays anchored.
func (w *Window) OutputChanged() {
	if w.trackOutput {
		w.scrollCount -= w.screen.ScrolledLines()
		w.currentLine = max(0, w.screen.HistLines()-(w.WindowLines()-w.screen.Lines()))
	} else {
		// the history may have run out of space and dropped its oldest
		// lines; adjust the anchor or the output scrolls under the view
		w.currentLine = max(0, w.currentLine-w.screen.DroppedLines())

		// do not let the window drift past the bottom of the screen
		w.currentLine = min(w.currentLine, w.screen.HistLines())
	}

	w.bufferNeedsUpdate = true

	w.notifyOutputChanged()
}

// ScreenCleared implements screen.Observer. A full-screen clear
// invalidates any search result the window was highlighting.
func (w *Window) ScreenCleared() {
	w.SetCurrentResultLine(-1)
	w.bufferNeedsUpdate = true
}

func (w *Window) notifyOutputChanged() {
	if w.callbacks.OutputChanged != nil {
		w.callbacks.OutputChanged()
	}
}

func (w *Window) notifyScrolled(line int) {
	if w.callbacks.Scrolled != nil {
		w.callbacks.Scrolled(line)
	}
}

func (w *Window) notifySelectionChanged() {
	if w.callbacks.SelectionChanged != nil {
		w.callbacks.SelectionChanged()
	}
}

func (w *Window) notifyCurrentResultLineChanged() {
	if w.callbacks.CurrentResultLineChanged != nil {
		w.callbacks.CurrentResultLineChanged()
	}
}
