package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotate(t *testing.T) {
	items := []int{0, 1, 2, 3}
	RotateOnce(items)
	assert.Equal(t, []int{1, 2, 3, 0}, items)

	items = []int{0, 1, 2, 3}
	Rotate(items, 2)
	assert.Equal(t, []int{2, 3, 0, 1}, items)
}

func TestRotateR(t *testing.T) {
	items := []int{0, 1, 2, 3}
	RotateOnceR(items)
	assert.Equal(t, []int{3, 0, 1, 2}, items)

	items = []int{0, 1, 2, 3}
	RotateR(items, 2)
	assert.Equal(t, []int{2, 3, 0, 1}, items)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 3, Clamp(3, 0, 5))
	assert.Equal(t, 0, Clamp(-2, 0, 5))
	assert.Equal(t, 5, Clamp(9, 0, 5))
}

func TestAssert(t *testing.T) {
	assert.NotPanics(t, func() { Assert(true) })
	assert.PanicsWithValue(t, "boom", func() { Assert(false, "boom") })
	assert.Panics(t, func() { Assert(false) })
}
