package solver

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/troethe/connections/pkg/game"
)

func collectSelections(st State) []game.SlotSet {
	var out []game.SlotSet
	for sel := range st.PossibleSelections() {
		out = append(out, sel)
	}
	return out
}

func selectionSlots(sels []game.SlotSet) [][]game.Slot {
	out := make([][]game.Slot, len(sels))
	for i, s := range sels {
		out[i] = s.Slots()
	}
	return out
}

func TestPossibleSelectionsFreshGame(t *testing.T) {
	// Before any feedback every slot is interchangeable, so a single
	// representative selection stands in for all of them.
	st := newTestState(t, 8, 4)
	got := selectionSlots(collectSelections(st))
	want := [][]game.Slot{{0, 1, 2, 3}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("selections mismatch (-want +got):\n%s", diff)
	}
}

func TestPossibleSelectionsAfterMove(t *testing.T) {
	st := newTestState(t, 8, 4).
		WithMove(game.Move{Selection: set(t, 0, 1, 2, 3), Result: game.Far})
	got := selectionSlots(collectSelections(st))
	want := [][]game.Slot{
		{4, 5, 6, 7},
		{0, 4, 5, 6},
		{0, 1, 4, 5},
		{0, 1, 2, 4},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("selections mismatch (-want +got):\n%s", diff)
	}
}

func TestPossibleSelectionsCompositionCount(t *testing.T) {
	st := newTestState(t, 6, 3).
		WithMove(game.Move{Selection: set(t, 0, 1), Result: game.Far}).
		WithMove(game.Move{Selection: set(t, 2, 3), Result: game.Far})
	// Three classes of two slots each; compositions of 3 into parts of at
	// most 2 across three classes: (0,1,2),(0,2,1),(1,0,2),(1,1,1),(1,2,0),
	// (2,0,1),(2,1,0) give seven candidates.
	assert.Len(t, collectSelections(st), 7)
}

func TestPossibleSelectionsExcludePlayed(t *testing.T) {
	sel := set(t, 0, 1, 2, 3)
	st := newTestState(t, 8, 4).
		WithMove(game.Move{Selection: sel, Result: game.Near})
	for _, got := range collectSelections(st) {
		assert.NotEqual(t, sel, got, "replayed a past selection")
	}
}
