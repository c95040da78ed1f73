// Package solver decides whether a player holds a guaranteed winning
// strategy for a connections-style puzzle: some sequence of selections that
// identifies every hidden group no matter which still-consistent key the
// puzzle turns out to hold, within a fixed budget of non-exact results.
package solver

import (
	"iter"
	"slices"

	"github.com/troethe/connections/pkg/game"
)

// State is the player's belief state: the game configuration plus the
// ordered history of moves played so far. States are immutable values;
// WithMove returns a new State and never aliases the receiver's history.
type State struct {
	params game.Params
	moves  []game.Move
}

// NewState returns the empty-history belief state for a configuration.
func NewState(params game.Params) State {
	return State{params: params}
}

// Params returns the game configuration.
func (s State) Params() game.Params {
	return s.params
}

// Moves returns a copy of the move history.
func (s State) Moves() []game.Move {
	return slices.Clone(s.moves)
}

// WithMove returns the state reached by playing one more move.
func (s State) WithMove(m game.Move) State {
	moves := make([]game.Move, len(s.moves)+1)
	copy(moves, s.moves)
	moves[len(s.moves)] = m
	return State{params: s.params, moves: moves}
}

// ExactCount returns how many moves in the history scored Exact.
func (s State) ExactCount() int {
	n := 0
	for _, m := range s.moves {
		if m.Result == game.Exact {
			n++
		}
	}
	return n
}

// Won reports whether every group of the hidden key has been identified.
func (s State) Won() bool {
	return s.ExactCount() == s.params.Groups()
}

// Classes returns the coarsest partition of the universe into sets of slots
// that have appeared together in every selection played so far. Slots in the
// same class are interchangeable: the feedback rule is symmetric in slot
// identity, so no consistent hidden key can tell swapped class members apart,
// and one representative per class covers all further reasoning.
func (s State) Classes() []game.SlotSet {
	classes := []game.SlotSet{s.params.Universe()}
	for _, m := range s.moves {
		next := make([]game.SlotSet, 0, len(classes)+1)
		for _, c := range classes {
			in, out := c.Split(m.Selection)
			if in.Count() > 0 {
				next = append(next, in)
			}
			if out.Count() > 0 {
				next = append(next, out)
			}
		}
		classes = next
	}
	return classes
}

// PossiblePartitions enumerates the hidden keys still consistent with every
// move in the history. This is the adversary's remaining freedom: any
// partition it produces is a key the player cannot yet rule out.
func (s State) PossiblePartitions() iter.Seq[game.Partition] {
	return func(yield func(game.Partition) bool) {
		for p := range s.params.Partitions() {
			if s.consistent(p) && !yield(p) {
				return
			}
		}
	}
}

func (s State) consistent(p game.Partition) bool {
	for _, m := range s.moves {
		if p.Score(m.Selection) != m.Result {
			return false
		}
	}
	return true
}

// PossibleResults returns, in ascending order, every feedback value that at
// least one still-consistent hidden key would produce for the selection.
func (s State) PossibleResults(sel game.SlotSet) []game.Feedback {
	var seen [3]bool
	found := 0
	for p := range s.PossiblePartitions() {
		r := p.Score(sel)
		if !seen[r] {
			seen[r] = true
			found++
			if found == len(seen) {
				break
			}
		}
	}
	results := make([]game.Feedback, 0, found)
	for r := game.Far; r <= game.Exact; r++ {
		if seen[r] {
			results = append(results, r)
		}
	}
	return results
}
