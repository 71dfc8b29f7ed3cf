package history

import "github.com/hnimtadd/vtcore/terminal/character"

// NoneType disables scrollback.
type NoneType struct{}

func (NoneType) IsEnabled() bool       { return false }
func (NoneType) MaximumLineCount() int { return 0 }

func (t NoneType) Scroll(_ Scroll) Scroll {
	// Nothing to migrate into a store that keeps nothing.
	return &noneScroll{}
}

type noneScroll struct{}

func (*noneScroll) HasScroll() bool       { return false }
func (*noneScroll) Lines() int            { return 0 }
func (*noneScroll) LineLen(int) int       { return 0 }
func (*noneScroll) IsWrappedLine(int) bool { return false }
func (*noneScroll) Type() Type            { return NoneType{} }

func (*noneScroll) GetCells(_, _, _ int, res []character.Character) {
	for i := range res {
		res[i] = character.DefaultChar
	}
}

func (*noneScroll) AddCells([]character.Character) {}
func (*noneScroll) AddLine(bool)                   {}
func (*noneScroll) RemoveLastLine() bool           { return false }
