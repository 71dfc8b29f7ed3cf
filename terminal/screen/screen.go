// Package screen holds the live character grid of a terminal: cursor,
// margins, modes, rendition state, tab stops and selection, backed by a
// history store that receives lines retired from the top.
package screen

import (
	"github.com/hnimtadd/vtcore/terminal/character"
	"github.com/hnimtadd/vtcore/terminal/core"
	"github.com/hnimtadd/vtcore/terminal/filter"
	"github.com/hnimtadd/vtcore/terminal/history"
	"github.com/hnimtadd/vtcore/terminal/tabstops"
	"github.com/hnimtadd/vtcore/terminal/utils"
)

// maxScreenArgument bounds numeric arguments from the escape sequence
// driver so adversarial input cannot trigger quadratic work.
const maxScreenArgument = 1024 * 1024

// Rect is a rectangle of cells, used for the last-scrolled-region hint.
type Rect struct {
	X, Y, Width, Height int
}

type savedState struct {
	cursorColumn int
	cursorLine   int
	rendition    character.RenditionFlags
	foreground   character.CharacterColor
	background   character.CharacterColor
}

// Screen interprets the semantic operations of a VT-series terminal as
// state mutations on a grid of variable-length lines. All operations are
// synchronous and single-threaded against a given Screen.
type Screen struct {
	lines   int
	columns int

	// the grid rows; sized lines+1, the extra slot simplifies
	// cursor-at-margin arithmetic
	screenLines    [][]character.Character
	lineProperties []character.LineProperty

	hist history.Scroll

	// cursor, 0-based screen coordinates
	cuX int
	cuY int

	currentForeground character.CharacterColor
	currentBackground character.CharacterColor
	currentRendition  character.RenditionFlags

	// derived from the current values whenever they change: reverse swaps
	// fore/back, bold and faint adjust intensity
	effectiveForeground character.CharacterColor
	effectiveBackground character.CharacterColor
	effectiveRendition  character.RenditionFlags

	savedState savedState

	// scroll region, inclusive
	topMargin    int
	bottomMargin int

	tabStops *tabstops.Tabstops

	modes *core.ModeState

	// selection anchors as absolute indices into the joined history+screen
	// stream, -1 when there is no selection
	selBegin           int
	selTopLeft         int
	selBottomRight     int
	blockSelectionMode bool

	scrolledLines      int
	lastScrolledRegion Rect
	droppedLines       int

	// resize bookkeeping for the viewport
	oldTotalLines     int
	isResize          bool
	enableReflowLines bool

	lastPos       int
	lastDrawnChar rune

	urlExtractor *filter.EscapeSequenceURLExtractor

	// palette handed to the HTML decoder; nil produces colorless markup
	htmlPalette *character.Palette

	observers []Observer
	notifying bool

	// processNameFunc reports the foreground process name. Compatibility
	// hook for the reflow heuristic; see resize.go.
	processNameFunc func() string
}

// NewScreen creates a screen of the given size with no scrollback.
func NewScreen(lines, columns int) *Screen {
	utils.Assert(lines > 0 && columns > 0)

	s := &Screen{
		lines:          lines,
		columns:        columns,
		screenLines:    make([][]character.Character, lines+1),
		lineProperties: make([]character.LineProperty, lines+1),
		hist:           history.NoneType{}.Scroll(nil),
		modes:          core.NewModeState(),
		lastPos:        -1,
		urlExtractor:   filter.NewEscapeSequenceURLExtractor(),
	}
	s.urlExtractor.SetGrid(s)

	s.initTabStops()
	s.ClearSelection()
	s.Reset()
	return s
}

// Reset resets modes, margins and rendition according to the logic of the
// DEC RIS sequence, preserving the current line's content.
func (s *Screen) Reset() {
	// clear the screen but keep the current line
	s.scrollUpRegion(0, s.cuY)
	s.cuY = 0

	s.modes.Reset(core.ModeOrigin)
	s.modes.Save(core.ModeOrigin)

	s.modes.Set(core.ModeWrap) // wrap at end of margin
	s.modes.Save(core.ModeWrap)

	s.modes.Reset(core.ModeInsert) // overstroke
	s.modes.Save(core.ModeInsert)

	s.modes.Set(core.ModeCursor)    // cursor visible
	s.modes.Reset(core.ModeScreen)  // screen not inverse
	s.modes.Reset(core.ModeNewLine)

	s.topMargin = 0
	s.bottomMargin = s.lines - 1

	s.SetDefaultRendition()
	s.SaveCursor()
}

// Lines returns the screen height.
func (s *Screen) Lines() int { return s.lines }

// Columns returns the screen width.
func (s *Screen) Columns() int { return s.columns }

// CursorX returns the cursor column, clamped into the visible range even
// while a wrap is pending.
func (s *Screen) CursorX() int { return min(s.cuX, s.columns-1) }

// CursorY returns the cursor row.
func (s *Screen) CursorY() int { return s.cuY }

// URLExtractor exposes the hyperlink extractor fed by the write path.
func (s *Screen) URLExtractor() *filter.EscapeSequenceURLExtractor {
	return s.urlExtractor
}

// SetProcessNameFunc installs the foreground-process-name hook used by the
// reflow compatibility heuristic.
func (s *Screen) SetProcessNameFunc(fn func() string) {
	s.processNameFunc = fn
}

// CursorUp moves the cursor up n rows, stopping at the top margin when the
// cursor started inside the scroll region (CUU).
func (s *Screen) CursorUp(n int) {
	if n < 1 {
		n = 1 // Default
	}
	stop := 0
	if s.cuY >= s.topMargin {
		stop = s.topMargin
	}
	s.cuY = max(stop, s.cuY-n)
}

// CursorDown moves the cursor down n rows, stopping at the bottom margin
// when the cursor started inside the scroll region (CUD).
func (s *Screen) CursorDown(n int) {
	if n < 1 {
		n = 1 // Default
	}
	n = min(n, maxScreenArgument)
	stop := s.bottomMargin
	if s.cuY > s.bottomMargin {
		stop = s.lines - 1
	}
	s.cuY = min(stop, s.cuY+n)
}

// CursorLeft moves the cursor left n columns (CUB).
func (s *Screen) CursorLeft(n int) {
	if n < 1 {
		n = 1 // Default
	}
	s.cuX = max(0, s.cuX-n)
}

// CursorRight moves the cursor right n columns (CUF).
func (s *Screen) CursorRight(n int) {
	if n < 1 {
		n = 1 // Default
	}
	n = min(n, maxScreenArgument)
	s.cuX = min(s.columns-1, s.cuX+n)
}

// CursorNextLine moves the cursor to the start of the line n rows down
// (CNL).
func (s *Screen) CursorNextLine(n int) {
	if n < 1 {
		n = 1 // Default
	}
	n = min(n, maxScreenArgument)
	s.cuX = 0
	s.cuY = min(s.cuY+n, s.lines-1)
}

// CursorPreviousLine moves the cursor to the start of the line n rows up
// (CPL).
func (s *Screen) CursorPreviousLine(n int) {
	if n < 1 {
		n = 1 // Default
	}
	s.cuX = 0
	s.cuY = max(0, s.cuY-n)
}

// SetCursorYX positions the cursor with 1-based arguments (CUP).
func (s *Screen) SetCursorYX(y, x int) {
	s.SetCursorY(y)
	s.SetCursorX(x)
}

// SetCursorX positions the cursor column with a 1-based argument (CHA).
func (s *Screen) SetCursorX(x int) {
	if x < 1 {
		x = 1 // Default
	}
	s.cuX = utils.Clamp(x-1, 0, s.columns-1)
}

// SetCursorY positions the cursor row with a 1-based argument, offset by
// the top margin in origin mode (VPA).
func (s *Screen) SetCursorY(y int) {
	if y < 1 {
		y = 1 // Default
	}
	y = min(y, maxScreenArgument)
	if s.GetMode(core.ModeOrigin) {
		y += s.topMargin
	}
	s.cuY = utils.Clamp(y-1, 0, s.lines-1)
}

// ToStartOfLine performs a carriage return.
func (s *Screen) ToStartOfLine() {
	s.cuX = 0
}

// Backspace moves the cursor one column left, padding the line with default
// cells out to the cursor when it is shorter.
func (s *Screen) Backspace() {
	s.cuX = max(0, s.cuX-1)

	if len(s.screenLines[s.cuY]) < s.cuX+1 {
		s.resizeLine(s.cuY, s.cuX+1)
	}
}

// NewLine performs a line feed; in newline mode it implies a carriage
// return.
func (s *Screen) NewLine() {
	if s.GetMode(core.ModeNewLine) {
		s.ToStartOfLine()
	}
	s.Index()
}

// NextLine moves to the start of the next line, scrolling at the bottom
// margin (NEL).
func (s *Screen) NextLine() {
	s.ToStartOfLine()
	s.Index()
}

// SetMargins sets the scroll region with 1-based inclusive arguments and
// homes the cursor (DECSTBM). A degenerate range is ignored.
func (s *Screen) SetMargins(top, bottom int) {
	if top < 1 {
		top = 1 // Default
	}
	if bottom < 1 {
		bottom = s.lines // Default
	}
	top--
	bottom--
	if !(0 <= top && top < bottom && bottom < s.lines) {
		return // Default error action: ignore
	}
	s.topMargin = top
	s.bottomMargin = bottom
	s.cuX = 0
	s.cuY = 0
	if s.GetMode(core.ModeOrigin) {
		s.cuY = top
	}
}

// TopMargin returns the first row of the scroll region.
func (s *Screen) TopMargin() int { return s.topMargin }

// BottomMargin returns the last row of the scroll region.
func (s *Screen) BottomMargin() int { return s.bottomMargin }

func (s *Screen) setDefaultMargins() {
	s.topMargin = 0
	s.bottomMargin = s.lines - 1
}

// SetMode sets the given mode; origin mode homes the cursor to the top
// margin.
func (s *Screen) SetMode(m core.Mode) {
	s.modes.Set(m)
	if m == core.ModeOrigin {
		s.cuX = 0
		s.cuY = s.topMargin
	}
}

// ResetMode clears the given mode; leaving origin mode homes the cursor to
// the true origin.
func (s *Screen) ResetMode(m core.Mode) {
	s.modes.Reset(m)
	if m == core.ModeOrigin {
		s.cuX = 0
		s.cuY = 0
	}
}

// SaveMode snapshots the given mode.
func (s *Screen) SaveMode(m core.Mode) { s.modes.Save(m) }

// RestoreMode restores the given mode from its snapshot.
func (s *Screen) RestoreMode(m core.Mode) { s.modes.Restore(m) }

// GetMode reads the given mode.
func (s *Screen) GetMode(m core.Mode) bool { return s.modes.Get(m) }

// SaveCursor snapshots cursor position, rendition and colors (DECSC).
func (s *Screen) SaveCursor() {
	s.savedState.cursorColumn = s.cuX
	s.savedState.cursorLine = s.cuY
	s.savedState.rendition = s.currentRendition
	s.savedState.foreground = s.currentForeground
	s.savedState.background = s.currentBackground
}

// RestoreCursor restores the snapshot, clamping the position into the
// current dimensions (DECRC).
func (s *Screen) RestoreCursor() {
	s.cuX = min(s.savedState.cursorColumn, s.columns-1)
	s.cuY = min(s.savedState.cursorLine, s.lines-1)
	s.currentRendition = s.savedState.rendition
	s.currentForeground = s.savedState.foreground
	s.currentBackground = s.savedState.background
	s.updateEffectiveRendition()
}

// Tab advances the cursor to the next tab stop, n times. TAB is a format
// effector and writes no spaces.
func (s *Screen) Tab(n int) {
	if n < 1 {
		n = 1
	}
	for n > 0 && s.cuX < s.columns-1 {
		s.CursorRight(1)
		for s.cuX < s.columns-1 && !s.tabStops.Get(s.cuX) {
			s.CursorRight(1)
		}
		n--
	}
}

// Backtab moves the cursor to the previous tab stop, n times.
func (s *Screen) Backtab(n int) {
	if n < 1 {
		n = 1
	}
	for n > 0 && s.cuX > 0 {
		s.CursorLeft(1)
		for s.cuX > 0 && !s.tabStops.Get(s.cuX) {
			s.CursorLeft(1)
		}
		n--
	}
}

// ClearTabStops removes every tab stop.
func (s *Screen) ClearTabStops() {
	s.tabStops.ClearAll()
}

// ChangeTabStop sets or clears the stop at the cursor column.
func (s *Screen) ChangeTabStop(set bool) {
	if s.cuX >= s.columns {
		return
	}
	if set {
		s.tabStops.Set(s.cuX)
	} else {
		s.tabStops.Unset(s.cuX)
	}
}

func (s *Screen) initTabStops() {
	s.tabStops = tabstops.New(s.columns, tabstops.Interval)
}

// SetRendition ORs attribute bits into the current rendition.
func (s *Screen) SetRendition(rendition character.RenditionFlags) {
	s.currentRendition |= rendition
	s.updateEffectiveRendition()
}

// ResetRendition clears attribute bits from the current rendition.
func (s *Screen) ResetRendition(rendition character.RenditionFlags) {
	s.currentRendition &^= rendition
	s.updateEffectiveRendition()
}

// SetDefaultRendition resets rendition and colors to their defaults.
func (s *Screen) SetDefaultRendition() {
	s.SetForeColor(character.ColorSpaceDefault, character.DefaultForeColor)
	s.SetBackColor(character.ColorSpaceDefault, character.DefaultBackColor)
	s.currentRendition = character.DefaultRendition
	s.updateEffectiveRendition()
}

// SetForeColor sets the foreground from a color space and packed value; an
// invalid color falls back to the default foreground.
func (s *Screen) SetForeColor(space uint8, color int) {
	s.currentForeground = character.NewColor(space, color)

	if s.currentForeground.IsValid() {
		s.updateEffectiveRendition()
	} else {
		s.SetForeColor(character.ColorSpaceDefault, character.DefaultForeColor)
	}
}

// SetBackColor sets the background from a color space and packed value; an
// invalid color falls back to the default background.
func (s *Screen) SetBackColor(space uint8, color int) {
	s.currentBackground = character.NewColor(space, color)

	if s.currentBackground.IsValid() {
		s.updateEffectiveRendition()
	} else {
		s.SetBackColor(character.ColorSpaceDefault, character.DefaultBackColor)
	}
}

func (s *Screen) updateEffectiveRendition() {
	s.effectiveRendition = s.currentRendition
	if s.currentRendition&character.ReReverse != 0 {
		s.effectiveForeground = s.currentBackground
		s.effectiveBackground = s.currentForeground
	} else {
		s.effectiveForeground = s.currentForeground
		s.effectiveBackground = s.currentBackground
	}

	if s.currentRendition&character.ReBold != 0 {
		if s.currentRendition&character.ReFaint == 0 {
			s.effectiveForeground.SetIntensive()
		}
	} else if s.currentRendition&character.ReFaint != 0 {
		s.effectiveForeground.SetFaint()
	}
}

func reverseRendition(p *character.Character) {
	p.ForegroundColor, p.BackgroundColor = p.BackgroundColor, p.ForegroundColor
}

// SetLineProperty toggles a property (double width, double height) on the
// cursor line.
func (s *Screen) SetLineProperty(property character.LineProperty, enable bool) {
	if enable {
		s.lineProperties[s.cuY] |= property
	} else {
		s.lineProperties[s.cuY] &^= property
	}
}

// getScreenLineColumns returns the effective width of a line, halved for
// double-width lines.
func (s *Screen) getScreenLineColumns(line int) int {
	if s.lineProperties[line]&character.LineDoubleWidth != 0 {
		return s.columns / 2
	}
	return s.columns
}

// resizeLine grows or shrinks a line to the given length, padding with the
// default cell.
func (s *Screen) resizeLine(y, length int) {
	line := s.screenLines[y]
	for len(line) < length {
		line = append(line, character.DefaultChar)
	}
	s.screenLines[y] = line[:length]
}
