package character

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// testPalette resolves every slot to a distinct value so tests can tell
// which entry was picked.
func testPalette() *Palette {
	var p Palette
	for i := range p {
		p[i] = ColorEntry{Color: RGB{R: uint8(i), G: uint8(i), B: uint8(i)}}
	}
	return &p
}

func TestNewColorSpaces(t *testing.T) {
	assert.False(t, NewColor(ColorSpaceUndefined, 0).IsValid())
	assert.False(t, NewColor(99, 0).IsValid())

	assert.True(t, NewColor(ColorSpaceDefault, DefaultForeColor).IsValid())
	assert.True(t, NewColor(ColorSpaceSystem, 3).IsValid())
	assert.True(t, NewColor(ColorSpace256, 200).IsValid())
	assert.True(t, NewColor(ColorSpaceRGB, 0xAABBCC).IsValid())
}

func TestColorResolveDefaultAndSystem(t *testing.T) {
	p := testPalette()

	fore, ok := NewColor(ColorSpaceDefault, DefaultForeColor).Color(p)
	assert.True(t, ok)
	assert.Equal(t, p[0].Color, fore)

	back, ok := NewColor(ColorSpaceDefault, DefaultBackColor).Color(p)
	assert.True(t, ok)
	assert.Equal(t, p[1].Color, back)

	red, ok := NewColor(ColorSpaceSystem, 1).Color(p)
	assert.True(t, ok)
	assert.Equal(t, p[1+2].Color, red)

	// the intensive flag moves into the second half of the table
	intensiveRed := NewColor(ColorSpaceSystem, 1)
	intensiveRed.SetIntensive()
	resolved, ok := intensiveRed.Color(p)
	assert.True(t, ok)
	assert.Equal(t, p[1+2+BaseColors].Color, resolved)
}

func TestColorResolve256(t *testing.T) {
	p := testPalette()

	// 0..7 resolve through the palette's normal system entries
	c, ok := NewColor(ColorSpace256, 3).Color(p)
	assert.True(t, ok)
	assert.Equal(t, p[3+2].Color, c)

	// 8..15 through the intensive entries
	c, ok = NewColor(ColorSpace256, 11).Color(p)
	assert.True(t, ok)
	assert.Equal(t, p[3+2+BaseColors].Color, c)

	// 16 is cube origin, black
	c, ok = NewColor(ColorSpace256, 16).Color(p)
	assert.True(t, ok)
	assert.Equal(t, RGB{0, 0, 0}, c)

	// 231 is cube end, white
	c, ok = NewColor(ColorSpace256, 231).Color(p)
	assert.True(t, ok)
	assert.Equal(t, RGB{255, 255, 255}, c)

	// channel values follow {0, 95, 135, 175, 215, 255}
	c, ok = NewColor(ColorSpace256, 16+36).Color(p)
	assert.True(t, ok)
	assert.Equal(t, RGB{95, 0, 0}, c)

	// grayscale ramp from 8 to 238 in steps of 10
	c, ok = NewColor(ColorSpace256, 232).Color(p)
	assert.True(t, ok)
	assert.Equal(t, RGB{8, 8, 8}, c)

	c, ok = NewColor(ColorSpace256, 255).Color(p)
	assert.True(t, ok)
	assert.Equal(t, RGB{238, 238, 238}, c)
}

func TestColorResolveRGB(t *testing.T) {
	c, ok := NewColor(ColorSpaceRGB, 0xAABBCC).Color(nil)
	assert.True(t, ok)
	assert.Equal(t, RGB{0xAA, 0xBB, 0xCC}, c)
	assert.Equal(t, "#aabbcc", c.Hex())
}

func TestColorBytesRoundTrip(t *testing.T) {
	colors := []CharacterColor{
		{},
		NewColor(ColorSpaceDefault, DefaultBackColor),
		NewColor(ColorSpaceSystem, 5|8),
		NewColor(ColorSpace256, 123),
		NewColor(ColorSpaceRGB, 0x010203),
	}
	for _, c := range colors {
		assert.Equal(t, c, ColorFromBytes(c.Bytes()))
	}
}
