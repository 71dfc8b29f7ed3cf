package character

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultChar(t *testing.T) {
	assert.Equal(t, ' ', rune(DefaultChar.Character))
	assert.False(t, DefaultChar.IsRealCharacter)
	assert.Equal(t, DefaultRendition, DefaultChar.Rendition)

	// equality is field-wise
	other := DefaultChar
	assert.Equal(t, DefaultChar, other)
	other.Rendition |= ReBold
	assert.NotEqual(t, DefaultChar, other)
}

func TestCharacterIsSpace(t *testing.T) {
	assert.True(t, NewCharacter(' ').IsSpace())
	assert.True(t, NewCharacter('\t').IsSpace())
	assert.False(t, NewCharacter('x').IsSpace())

	extended := NewCharacter(0x110000)
	extended.Rendition |= ReExtendedChar
	assert.False(t, extended.IsSpace())
}

func TestRightHalfOfDoubleWide(t *testing.T) {
	padding := Character{Character: 0, IsRealCharacter: false}
	assert.True(t, padding.IsRightHalfOfDoubleWide())
	assert.False(t, NewCharacter('x').IsRightHalfOfDoubleWide())
	assert.False(t, DefaultChar.IsRightHalfOfDoubleWide())
}
