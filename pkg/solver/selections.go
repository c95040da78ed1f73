package solver

import (
	"iter"

	"github.com/troethe/connections/pkg/game"
)

// PossibleSelections lazily enumerates the candidate selections for the next
// move: every way to assemble a group-sized selection by taking some count
// from each equivalence class, skipping selections already in the history.
// Within a class the lowest-numbered slots stand in as representatives, since
// class members are interchangeable. Per-class counts are enumerated in
// ascending order, so the sequence is deterministic.
func (s State) PossibleSelections() iter.Seq[game.SlotSet] {
	classes := s.Classes()
	played := make(map[game.SlotSet]bool, len(s.moves))
	for _, m := range s.moves {
		played[m.Selection] = true
	}
	size := s.params.GroupSize()
	return func(yield func(game.SlotSet) bool) {
		var build func(idx, need int, acc game.SlotSet) bool
		build = func(idx, need int, acc game.SlotSet) bool {
			if idx == len(classes) {
				if need != 0 || played[acc] {
					return true
				}
				return yield(acc)
			}
			limit := min(need, classes[idx].Count())
			for take := 0; take <= limit; take++ {
				next := acc
				next.AddAll(classes[idx].Take(take))
				if !build(idx+1, need-take, next) {
					return false
				}
			}
			return true
		}
		build(0, size, game.SlotSet{})
	}
}
