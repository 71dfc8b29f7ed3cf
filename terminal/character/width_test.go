package character

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWidth(t *testing.T) {
	// non-printable
	assert.Equal(t, -1, Width(0x07))
	assert.Equal(t, -1, Width(0x1B))
	assert.Equal(t, -1, Width(0x7F))

	// zero width
	assert.Equal(t, 0, Width(0x0301)) // combining acute accent
	assert.Equal(t, 0, Width(0x200B)) // zero width space

	// narrow
	assert.Equal(t, 1, Width('a'))
	assert.Equal(t, 1, Width('~'))

	// wide
	assert.Equal(t, 2, Width('世'))

	// halfwidth katakana stays narrow
	assert.Equal(t, 1, Width('ｱ'))
}

func TestCanCombine(t *testing.T) {
	assert.True(t, CanCombine(0x0301))
	assert.False(t, CanCombine(0x200B))
}

func TestStringWidth(t *testing.T) {
	assert.Equal(t, 5, StringWidth("hello"))
	assert.Equal(t, 4, StringWidth("世界"))
	// the combining mark adds nothing
	assert.Equal(t, 1, StringWidth("é"))
	assert.Equal(t, 0, StringWidth(""))
}
