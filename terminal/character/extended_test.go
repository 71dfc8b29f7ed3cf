package character

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtendedCharInternAndLookup(t *testing.T) {
	key := Table.CreateExtendedChar([]rune{'e', 0x0301}, nil)
	assert.GreaterOrEqual(t, key, rune(0x110000))

	chars, ok := Table.LookupExtendedChar(key)
	assert.True(t, ok)
	assert.Equal(t, []rune{'e', 0x0301}, chars)

	// interning the same sequence yields the same key
	again := Table.CreateExtendedChar([]rune{'e', 0x0301}, nil)
	assert.Equal(t, key, again)

	// a different sequence yields a different key
	other := Table.CreateExtendedChar([]rune{'o', 0x0301}, nil)
	assert.NotEqual(t, key, other)
}

func TestExtendedCharLookupUnknown(t *testing.T) {
	_, ok := Table.LookupExtendedChar(0x7FFFFFFF)
	assert.False(t, ok)
}

func TestExtendedCharReclaim(t *testing.T) {
	table := &ExtendedCharTable{
		byKey:  make(map[rune][]rune),
		byHash: make(map[uint64]rune),
		next:   0x110000,
	}

	kept := table.CreateExtendedChar([]rune{'a', 0x0301}, nil)
	for i := range rune(reclaimThreshold + 1) {
		table.CreateExtendedChar([]rune{'b' + i, 0x0301}, nil)
	}
	assert.Greater(t, table.Len(), reclaimThreshold)

	// the next insert runs the sweep; only the used key survives
	used := func() map[rune]struct{} {
		return map[rune]struct{}{kept: {}}
	}
	table.CreateExtendedChar([]rune{'z', 0x0308}, used)
	assert.Equal(t, 2, table.Len())

	chars, ok := table.LookupExtendedChar(kept)
	assert.True(t, ok)
	assert.Equal(t, []rune{'a', 0x0301}, chars)
}
