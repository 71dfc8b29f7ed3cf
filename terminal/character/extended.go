package character

import (
	"fmt"
	"sync"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/hnimtadd/vtcore/terminal/utils"
)

// Grapheme clusters wider than a single codepoint do not fit in a cell, so
// the sequence is interned process-wide and the cell stores an opaque key
// with ReExtendedChar set. Keys live outside the unicode range so they can
// never collide with a plain codepoint.
const extendedKeyBase rune = 0x110000

// reclaimThreshold is the table size past which Create sweeps entries whose
// keys no longer appear in any live cell.
const reclaimThreshold = 1024

// ExtendedCharTable interns codepoint sequences. A single table is shared
// by every screen in the process; all access goes through one lock.
type ExtendedCharTable struct {
	mu sync.Mutex

	byKey  map[rune][]rune
	byHash map[uint64]rune
	next   rune
}

// Table is the process-wide extended character table.
var Table = &ExtendedCharTable{
	byKey:  make(map[rune][]rune),
	byHash: make(map[uint64]rune),
	next:   extendedKeyBase,
}

// UsedKeysFunc returns the set of extended keys referenced by live cells.
// The screen builds it on demand by walking its image; it is only invoked
// when the table decides to reclaim.
type UsedKeysFunc func() map[rune]struct{}

// CreateExtendedChar interns the given sequence and returns its key. Keys
// are stable for as long as any live cell refers to them; unreferenced
// entries are reclaimed lazily once the table grows past a threshold.
func (t *ExtendedCharTable) CreateExtendedChar(chars []rune, usedKeys UsedKeysFunc) rune {
	utils.Assert(len(chars) > 0)

	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.byKey) > reclaimThreshold && usedKeys != nil {
		t.reclaim(usedKeys())
	}

	hash := hashSequence(chars)
	for {
		key, ok := t.byHash[hash]
		if !ok {
			break
		}
		if equalSequence(t.byKey[key], chars) {
			return key
		}
		// collision, probe the next slot
		hash++
	}

	key := t.next
	t.next++
	stored := make([]rune, len(chars))
	copy(stored, chars)
	t.byKey[key] = stored
	t.byHash[hash] = key
	return key
}

// LookupExtendedChar resolves a key back to its codepoint sequence.
func (t *ExtendedCharTable) LookupExtendedChar(key rune) ([]rune, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	chars, ok := t.byKey[key]
	return chars, ok
}

// Len reports the number of interned sequences.
func (t *ExtendedCharTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.byKey)
}

// reclaim drops every entry whose key is not in the used set. Called with
// the lock held.
func (t *ExtendedCharTable) reclaim(used map[rune]struct{}) {
	for hash, key := range t.byHash {
		if _, ok := used[key]; ok {
			continue
		}
		delete(t.byHash, hash)
		delete(t.byKey, key)
	}
}

func hashSequence(chars []rune) uint64 {
	hash, err := hashstructure.Hash(chars, hashstructure.FormatV2, nil)
	utils.Assert(err == nil, fmt.Sprintf("failed to hash codepoint sequence: %v", err))
	return hash
}

func equalSequence(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
