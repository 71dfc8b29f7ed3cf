package filter

import "strings"

// CursorGrid is the slice of screen state the URL extractor needs to
// translate the cursor into absolute (history + screen) coordinates. It is
// a borrowed view; the screen outlives the extractor.
type CursorGrid interface {
	CursorX() int
	CursorY() int
	HistLines() int
}

// Coord is an absolute position in the joined history+screen line space.
type Coord struct {
	Line   int
	Column int
}

// ExtractedURL is one hyperlink written via an OSC 8 escape, spanning the
// cells its text occupied.
type ExtractedURL struct {
	URL   string
	Text  string
	Begin Coord
	End   Coord
}

// EscapeSequenceURLExtractor accumulates hyperlink ranges as the parser
// feeds it the begin/text/end callbacks of OSC 8 sequences. Ranges are kept
// in absolute coordinates and retired as history lines drop.
type EscapeSequenceURLExtractor struct {
	grid CursorGrid

	urls    []ExtractedURL
	current ExtractedURL
	text    strings.Builder
	reading bool
}

func NewEscapeSequenceURLExtractor() *EscapeSequenceURLExtractor {
	return &EscapeSequenceURLExtractor{}
}

// SetGrid attaches the extractor to its screen. Must be called before any
// escape sequence is delivered.
func (e *EscapeSequenceURLExtractor) SetGrid(grid CursorGrid) {
	e.grid = grid
}

// Reading reports whether a hyperlink is currently open.
func (e *EscapeSequenceURLExtractor) Reading() bool { return e.reading }

// BeginURLInput starts a hyperlink at the current cursor position.
func (e *EscapeSequenceURLExtractor) BeginURLInput(url string) {
	if e.grid == nil {
		return
	}
	e.reading = true
	e.current = ExtractedURL{
		URL:   url,
		Begin: e.cursorCoord(),
	}
	e.text.Reset()
}

// AppendURLText records one character written while a hyperlink is open.
// The screen calls this from its character write path.
func (e *EscapeSequenceURLExtractor) AppendURLText(c rune) {
	if !e.reading {
		return
	}
	e.text.WriteRune(c)
	e.current.End = e.cursorCoord()
}

// AbortURLInput drops the hyperlink currently being read.
func (e *EscapeSequenceURLExtractor) AbortURLInput() {
	e.reading = false
	e.current = ExtractedURL{}
	e.text.Reset()
}

// EndURLInput closes the hyperlink and files its range.
func (e *EscapeSequenceURLExtractor) EndURLInput() {
	if !e.reading {
		return
	}
	e.reading = false
	e.current.Text = e.text.String()
	e.text.Reset()
	e.urls = append(e.urls, e.current)
	e.current = ExtractedURL{}
}

// HistoryLinesRemoved retires ranges that have scrolled out of the joined
// history+screen space.
func (e *EscapeSequenceURLExtractor) HistoryLinesRemoved(lines int) {
	kept := e.urls[:0]
	for _, url := range e.urls {
		url.Begin.Line -= lines
		url.End.Line -= lines
		if url.End.Line < 0 {
			continue
		}
		if url.Begin.Line < 0 {
			url.Begin = Coord{}
		}
		kept = append(kept, url)
	}
	e.urls = kept
}

// URLs returns the hyperlink ranges still inside history+screen.
func (e *EscapeSequenceURLExtractor) URLs() []ExtractedURL {
	return e.urls
}

// Clear drops every stored range.
func (e *EscapeSequenceURLExtractor) Clear() {
	e.urls = nil
}

func (e *EscapeSequenceURLExtractor) cursorCoord() Coord {
	return Coord{
		Line:   e.grid.HistLines() + e.grid.CursorY(),
		Column: e.grid.CursorX(),
	}
}
