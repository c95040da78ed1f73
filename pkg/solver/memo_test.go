package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/troethe/connections/pkg/game"
)

func TestMemoKeyCanonicalizesMoveOrder(t *testing.T) {
	st := newTestState(t, 8, 4)
	first := game.Move{Selection: set(t, 0, 1, 2, 3), Result: game.Far}
	second := game.Move{Selection: set(t, 2, 3, 4, 5), Result: game.Near}

	a := st.WithMove(first).WithMove(second)
	b := st.WithMove(second).WithMove(first)
	assert.Equal(t, memoKey(a, 2), memoKey(b, 2))
	assert.NotEqual(t, memoKey(a, 2), memoKey(a, 1), "budget must be part of the key")
}

func TestMemoKeySeparatesResults(t *testing.T) {
	st := newTestState(t, 8, 4)
	sel := set(t, 0, 1, 2, 3)
	near := st.WithMove(game.Move{Selection: sel, Result: game.Near})
	far := st.WithMove(game.Move{Selection: sel, Result: game.Far})
	assert.NotEqual(t, memoKey(near, 1), memoKey(far, 1))
}

func TestMemoKeySeparatesConfigurations(t *testing.T) {
	quads := newTestState(t, 8, 4)
	pairs := newTestState(t, 8, 2)
	assert.NotEqual(t, memoKey(quads, 0), memoKey(pairs, 0))
}

func TestMemoTableRoundTrip(t *testing.T) {
	table := newMemoTable()
	st := newTestState(t, 6, 3)

	_, ok := table.get(st, 1)
	assert.False(t, ok)

	table.put(st, 1, true)
	win, ok := table.get(st, 1)
	assert.True(t, ok)
	assert.True(t, win)

	table.put(st, 0, false)
	win, ok = table.get(st, 0)
	assert.True(t, ok)
	assert.False(t, win)
}
