package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModeState(t *testing.T) {
	s := NewModeState()

	assert.False(t, s.Get(ModeWrap))
	s.Set(ModeWrap)
	assert.True(t, s.Get(ModeWrap))

	s.Save(ModeWrap)
	s.Reset(ModeWrap)
	assert.False(t, s.Get(ModeWrap))
	assert.True(t, s.Saved(ModeWrap))

	s.Restore(ModeWrap)
	assert.True(t, s.Get(ModeWrap))
}

func TestModeNames(t *testing.T) {
	assert.Equal(t, "origin", ModeOrigin.String())
	assert.Equal(t, "unknown", Mode(99).String())
}
