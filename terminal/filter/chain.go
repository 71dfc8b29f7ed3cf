package filter

import (
	"strings"

	"github.com/hnimtadd/vtcore/terminal/character"
	"github.com/hnimtadd/vtcore/terminal/decoder"
)

// Chain runs a set of filters over one image. SetImage flattens the cell
// grid into the text buffer every filter scans; wrapped lines are joined so
// a URL broken across the right margin still matches in one piece.
type Chain struct {
	filters []Filter

	buffer        string
	linePositions []int
}

func NewChain() *Chain {
	return &Chain{}
}

func (c *Chain) AddFilter(filter Filter) {
	c.filters = append(c.filters, filter)
}

func (c *Chain) RemoveFilter(filter Filter) {
	for i, f := range c.filters {
		if f == filter {
			c.filters = append(c.filters[:i], c.filters[i+1:]...)
			return
		}
	}
}

func (c *Chain) Clear() {
	c.filters = nil
}

// Reset discards the hotspots of every filter.
func (c *Chain) Reset() {
	for _, f := range c.filters {
		f.Reset()
	}
}

// SetImage rebuilds the scan buffer from a window image of the given
// geometry. Line starts are recorded per image row; rows whose line is
// wrapped join the following row with no separator.
func (c *Chain) SetImage(image []character.Character, lines, columns int, lineProperties []character.LineProperty) {
	var sb strings.Builder
	c.linePositions = c.linePositions[:0]

	for y := range lines {
		c.linePositions = append(c.linePositions, sb.Len())

		row := image[y*columns : (y+1)*columns]
		sb.WriteString(decoder.DecodeCells(row))

		wrapped := y < len(lineProperties) && lineProperties[y]&character.LineWrapped != 0
		if !wrapped {
			sb.WriteByte('\n')
		}
	}

	c.buffer = sb.String()
	for _, f := range c.filters {
		f.SetBuffer(c.buffer, c.linePositions)
	}
}

// Process scans the current buffer with every filter.
func (c *Chain) Process() {
	for _, f := range c.filters {
		f.Process()
	}
}

// HotSpots collects every hotspot from every filter.
func (c *Chain) HotSpots() []*HotSpot {
	var spots []*HotSpot
	for _, f := range c.filters {
		spots = append(spots, f.HotSpots()...)
	}
	return spots
}

// HotSpotAt returns the first hotspot covering the given position, or nil.
func (c *Chain) HotSpotAt(line, column int) *HotSpot {
	for _, f := range c.filters {
		if spot := f.HotSpotAt(line, column); spot != nil {
			return spot
		}
	}
	return nil
}
