package history

import (
	"encoding/binary"

	"github.com/hnimtadd/vtcore/logger"
	"github.com/hnimtadd/vtcore/terminal/character"
)

// FileType is an unlimited history backed by temporary files.
type FileType struct{}

func (FileType) IsEnabled() bool       { return true }
func (FileType) MaximumLineCount() int { return -1 }

func (t FileType) Scroll(old Scroll) Scroll {
	if file, ok := old.(*FileScroll); ok {
		return file
	}
	fresh := NewFileScroll()
	copyScroll(fresh, old)
	return fresh
}

// cellSize is the wire size of one encoded cell: codepoint (4), foreground
// (4), background (4), rendition (2), real-character flag (1).
const cellSize = 15

func encodeCell(c character.Character, buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:], uint32(c.Character))
	fg := c.ForegroundColor.Bytes()
	bg := c.BackgroundColor.Bytes()
	copy(buf[4:], fg[:])
	copy(buf[8:], bg[:])
	binary.LittleEndian.PutUint16(buf[12:], uint16(c.Rendition))
	if c.IsRealCharacter {
		buf[14] = 1
	} else {
		buf[14] = 0
	}
}

func decodeCell(buf []byte) character.Character {
	var fg, bg [4]byte
	copy(fg[:], buf[4:8])
	copy(bg[:], buf[8:12])
	return character.Character{
		Character:       rune(binary.LittleEndian.Uint32(buf[0:])),
		ForegroundColor: character.ColorFromBytes(fg),
		BackgroundColor: character.ColorFromBytes(bg),
		Rendition:       character.RenditionFlags(binary.LittleEndian.Uint16(buf[12:])),
		IsRealCharacter: buf[14] == 1,
	}
}

// FileScroll streams cells into a temporary file, keeping a second stream
// of line-end offsets and a third of per-line wrap flags. Line positions
// are absolute within the cell stream, so the store cannot reflow; it
// never runs out of budget instead.
type FileScroll struct {
	index     *histFile // line-end offsets, one int64 per line
	cells     *histFile // encoded cells
	lineFlags *histFile // one flag byte per line
}

var _ Scroll = (*FileScroll)(nil)

func NewFileScroll() *FileScroll {
	s := &FileScroll{}
	var err error
	if s.index, err = newHistFile(); err != nil {
		logger.DefaultLogger.Error("history: index stream", "err", err)
	}
	if s.cells, err = newHistFile(); err != nil {
		logger.DefaultLogger.Error("history: cell stream", "err", err)
	}
	if s.lineFlags, err = newHistFile(); err != nil {
		logger.DefaultLogger.Error("history: flag stream", "err", err)
	}
	return s
}

// Close releases the backing files. The store is unusable afterwards.
func (s *FileScroll) Close() {
	s.index.close()
	s.cells.close()
	s.lineFlags.close()
}

func (s *FileScroll) HasScroll() bool { return true }
func (s *FileScroll) Type() Type      { return FileType{} }

func (s *FileScroll) Lines() int {
	return int(s.index.len() / 8)
}

// startOfLine returns the byte offset of the given line within the cell
// stream.
func (s *FileScroll) startOfLine(lineno int) int64 {
	if lineno <= 0 {
		return 0
	}
	if lineno > s.Lines() {
		logger.DefaultLogger.Debug("history: line out of range", "line", lineno)
		return 0
	}
	var buf [8]byte
	s.index.get(buf[:], int64(lineno-1)*8)
	return int64(binary.LittleEndian.Uint64(buf[:]))
}

func (s *FileScroll) LineLen(lineno int) int {
	if lineno < 0 || lineno >= s.Lines() {
		return 0
	}
	return int((s.startOfLine(lineno+1) - s.startOfLine(lineno)) / cellSize)
}

func (s *FileScroll) IsWrappedLine(lineno int) bool {
	if lineno < 0 || lineno >= s.Lines() {
		return false
	}
	var buf [1]byte
	s.lineFlags.get(buf[:], int64(lineno))
	return buf[0]&byte(character.LineWrapped) != 0
}

func (s *FileScroll) GetCells(lineno, colno, count int, res []character.Character) {
	for i := range count {
		res[i] = character.DefaultChar
	}
	if lineno < 0 || lineno >= s.Lines() || colno < 0 || count < 0 {
		logger.DefaultLogger.Debug("history: getCells out of range",
			"line", lineno, "col", colno, "count", count)
		return
	}
	length := s.LineLen(lineno)
	if colno >= length {
		return
	}
	stored := min(count, length-colno)
	buf := make([]byte, stored*cellSize)
	s.cells.get(buf, s.startOfLine(lineno)+int64(colno)*cellSize)
	for i := range stored {
		res[i] = decodeCell(buf[i*cellSize:])
	}
}

func (s *FileScroll) AddCells(cells []character.Character) {
	buf := make([]byte, len(cells)*cellSize)
	for i, c := range cells {
		encodeCell(c, buf[i*cellSize:])
	}
	s.cells.add(buf)
}

// RemoveLastLine hands the most recent line back to the caller's screen by
// shortening all three streams.
func (s *FileScroll) RemoveLastLine() bool {
	lines := s.Lines()
	if lines == 0 {
		return false
	}
	lastStart := s.startOfLine(lines - 1)
	s.index.truncate(int64(lines-1) * 8)
	s.cells.truncate(lastStart)
	s.lineFlags.truncate(int64(lines - 1))
	return true
}

func (s *FileScroll) AddLine(wrapped bool) {
	var offset [8]byte
	binary.LittleEndian.PutUint64(offset[:], uint64(s.cells.len()))
	s.index.add(offset[:])

	flag := byte(character.LineDefault)
	if wrapped {
		flag = byte(character.LineWrapped)
	}
	s.lineFlags.add([]byte{flag})
}
