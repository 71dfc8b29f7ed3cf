// Package history stores lines retired from the top of a screen. Three
// store flavors share one interface: no storage at all, a bounded
// in-memory ring that can reflow to a new column count, and an unbounded
// temporary-file store with an mmap fast-read path.
package history

import (
	"github.com/hnimtadd/vtcore/terminal/character"
)

// Scroll is random access to retired lines. Line numbers are 0-based with
// 0 being the oldest stored line.
type Scroll interface {
	// HasScroll reports whether this store keeps anything at all.
	HasScroll() bool

	// Lines returns the number of stored lines.
	Lines() int

	// LineLen returns the cell count of the given line.
	LineLen(lineno int) int

	// GetCells copies count cells starting at colno into res. Cells past
	// the stored line length are padded with the default cell. Out of
	// range arguments are reported and ignored; res is left defaulted.
	GetCells(lineno, colno, count int, res []character.Character)

	// IsWrappedLine reports whether the line continues into the next one.
	IsWrappedLine(lineno int) bool

	// AddCells stages the cells of the next line.
	AddCells(cells []character.Character)

	// AddLine commits the staged cells as one line with its wrapped flag.
	AddLine(wrapped bool)

	// RemoveLastLine removes the most recent line (the screen takes it
	// back during resize). Returns false if there is nothing to remove.
	RemoveLastLine() bool

	// Type returns the descriptor that created this store.
	Type() Type
}

// Reflower is implemented by stores that can re-break their wrapped runs
// at a new column count.
type Reflower interface {
	// ReflowLines re-splits wrapped runs at maxColumns and returns the
	// number of lines dropped by capacity enforcement during the reflow.
	ReflowLines(maxColumns int) int
}

// Type describes a history configuration and constructs stores of its
// flavor.
type Type interface {
	// IsEnabled reports whether stores of this type keep lines.
	IsEnabled() bool

	// MaximumLineCount is the line budget, or -1 for unlimited.
	MaximumLineCount() int

	// Scroll converts an existing store to this type, migrating the old
	// contents where the new type keeps lines. A nil old store builds an
	// empty one.
	Scroll(old Scroll) Scroll
}

// IsUnlimited reports whether the type stores an unbounded number of lines.
func IsUnlimited(t Type) bool {
	return t.MaximumLineCount() == -1
}

// copyScroll replays every line of src into dst, oldest first. When dst is
// bounded it enforces its own budget as lines arrive.
func copyScroll(dst, src Scroll) {
	if src == nil {
		return
	}
	for lineno := range src.Lines() {
		length := src.LineLen(lineno)
		cells := make([]character.Character, length)
		src.GetCells(lineno, 0, length, cells)
		dst.AddCells(cells)
		dst.AddLine(src.IsWrappedLine(lineno))
	}
}
