package filter

import (
	"github.com/hnimtadd/vtcore/terminal/character"
	"github.com/hnimtadd/vtcore/terminal/utils"
)

// Filter scans a text buffer for hotspots. The buffer and the line-start
// offsets are supplied per scan by the chain that owns the filter.
type Filter interface {
	// SetBuffer hands the filter the flat text of the current image plus
	// the byte offset of each image row's start within it (wrapped rows
	// included).
	SetBuffer(buffer string, linePositions []int)

	// Process scans the buffer and populates the hotspot list.
	Process()

	// Reset discards the hotspots of the previous scan.
	Reset()

	// HotSpots returns every hotspot found by the last Process call.
	HotSpots() []*HotSpot

	// HotSpotAt returns the hotspot covering the given position, or nil.
	HotSpotAt(line, column int) *HotSpot
}

// baseFilter carries the buffer bookkeeping shared by all filters.
type baseFilter struct {
	buffer        string
	linePositions []int

	hotspots     map[int][]*HotSpot
	hotspotList  []*HotSpot
}

func (f *baseFilter) SetBuffer(buffer string, linePositions []int) {
	f.buffer = buffer
	f.linePositions = linePositions
}

func (f *baseFilter) Reset() {
	f.hotspots = nil
	f.hotspotList = nil
}

func (f *baseFilter) addHotSpot(spot *HotSpot) {
	f.hotspotList = append(f.hotspotList, spot)

	if f.hotspots == nil {
		f.hotspots = make(map[int][]*HotSpot)
	}
	for line := spot.StartLine; line <= spot.EndLine; line++ {
		f.hotspots[line] = append(f.hotspots[line], spot)
	}
}

func (f *baseFilter) HotSpots() []*HotSpot {
	return f.hotspotList
}

func (f *baseFilter) HotSpotAt(line, column int) *HotSpot {
	for _, spot := range f.hotspots[line] {
		if spot.StartLine == line && spot.StartColumn > column {
			continue
		}
		if spot.EndLine == line && spot.EndColumn < column {
			continue
		}
		return spot
	}
	return nil
}

// getLineColumn translates a byte position within the buffer into a
// (line, column) pair. Columns count display cells, so a wide character in
// the prefix counts double.
func (f *baseFilter) getLineColumn(position int) (line, column int) {
	utils.Assert(f.linePositions != nil)

	for i := range f.linePositions {
		nextLine := len(f.buffer) + 1
		if i < len(f.linePositions)-1 {
			nextLine = f.linePositions[i+1]
		}

		if f.linePositions[i] <= position && position < nextLine {
			return i, character.StringWidth(f.buffer[f.linePositions[i]:position])
		}
	}
	return -1, -1
}
