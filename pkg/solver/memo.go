package solver

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/troethe/connections/pkg/game"
)

// memoTable caches search verdicts across a Solver's lifetime. Keys
// canonicalize the move history by sorting, so transpositions of the same
// move set share one entry. Safe for concurrent use.
type memoTable struct {
	mu      sync.RWMutex
	entries map[string]bool
}

func newMemoTable() *memoTable {
	return &memoTable{entries: make(map[string]bool)}
}

func (t *memoTable) get(st State, budget int) (win, ok bool) {
	key := memoKey(st, budget)
	t.mu.RLock()
	defer t.mu.RUnlock()
	win, ok = t.entries[key]
	return win, ok
}

func (t *memoTable) put(st State, budget int, win bool) {
	key := memoKey(st, budget)
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[key] = win
}

// memoKey encodes the configuration, the sorted move multiset, and the
// remaining budget. Everything the search derives from a state depends on the
// set of moves rather than their order, so sorting makes transposed histories
// hit the same entry.
func memoKey(st State, budget int) string {
	moves := st.Moves()
	slices.SortFunc(moves, func(a, b game.Move) int {
		if c := cmp.Compare(a.Selection.Bits(), b.Selection.Bits()); c != 0 {
			return c
		}
		return cmp.Compare(a.Result, b.Result)
	})
	var b strings.Builder
	fmt.Fprintf(&b, "%d/%d#%d", st.Params().SlotCount(), st.Params().GroupSize(), budget)
	for _, m := range moves {
		fmt.Fprintf(&b, "|%x:%d", m.Selection.Bits(), m.Result)
	}
	return b.String()
}
