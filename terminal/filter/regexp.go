package filter

import "regexp"

// RegExpFilter produces one hotspot per match of a compiled pattern.
// Filters with more specific hotspots embed it and override newHotSpot.
type RegExpFilter struct {
	baseFilter

	searchText *regexp.Regexp

	// newHotSpot builds the hotspot for one match. Defaults to a plain
	// marker hotspot.
	newHotSpot func(startLine, startColumn, endLine, endColumn int, capturedTexts []string) *HotSpot
}

var _ Filter = (*RegExpFilter)(nil)

func NewRegExpFilter(pattern *regexp.Regexp) *RegExpFilter {
	f := &RegExpFilter{searchText: pattern}
	f.newHotSpot = func(startLine, startColumn, endLine, endColumn int, capturedTexts []string) *HotSpot {
		return &HotSpot{
			StartLine:     startLine,
			StartColumn:   startColumn,
			EndLine:       endLine,
			EndColumn:     endColumn,
			Type:          HotSpotMarker,
			CapturedTexts: capturedTexts,
		}
	}
	return f
}

// SetRegExp replaces the pattern used by the next Process call.
func (f *RegExpFilter) SetRegExp(pattern *regexp.Regexp) {
	f.searchText = pattern
}

func (f *RegExpFilter) Process() {
	if f.searchText == nil || f.searchText.String() == "" {
		return
	}

	for _, match := range f.searchText.FindAllStringSubmatchIndex(f.buffer, -1) {
		// ignore empty matches, a pattern matching the empty string would
		// otherwise hotspot every position
		if match[0] == match[1] {
			continue
		}

		startLine, startColumn := f.getLineColumn(match[0])
		endLine, endColumn := f.getLineColumn(match[1])

		captured := make([]string, 0, len(match)/2)
		for i := 0; i < len(match); i += 2 {
			if match[i] < 0 {
				captured = append(captured, "")
				continue
			}
			captured = append(captured, f.buffer[match[i]:match[i+1]])
		}

		f.addHotSpot(f.newHotSpot(startLine, startColumn, endLine, endColumn, captured))
	}
}
