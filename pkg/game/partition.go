package game

import (
	"iter"
	"slices"
	"strings"
)

// Partition is one candidate hidden key: disjoint groups jointly covering the
// slot universe. Group order carries no meaning, but enumeration makes it
// deterministic: each group is led by the smallest slot absent from every
// earlier group.
type Partition struct {
	Groups []SlotSet
}

// Score returns the feedback a selection would receive if p were the hidden
// key. The result depends on the maximum per-group overlap, never a sum:
// Exact when some group is fully covered, Near when some group is covered
// except for a single member, Far otherwise.
func (p Partition) Score(sel SlotSet) Feedback {
	best := Far
	for _, g := range p.Groups {
		switch o := g.Overlap(sel); {
		case o == g.Count():
			return Exact
		case o == g.Count()-1:
			best = Near
		}
	}
	return best
}

// String returns a string representation of the partition.
func (p Partition) String() string {
	parts := make([]string, len(p.Groups))
	for i, g := range p.Groups {
		parts[i] = g.String()
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// Enumerate lazily produces every partition of the universe into unlabeled
// groups of the given sizes. Partitions that differ only by permuting
// equal-size groups are produced exactly once. A size list that cannot tile
// the universe (a size larger than what remains, or sizes not summing to the
// universe) produces an empty sequence; an empty size list over an empty
// universe produces the single empty partition.
func Enumerate(universe SlotSet, sizes []int) iter.Seq[Partition] {
	return func(yield func(Partition) bool) {
		sorted := slices.Clone(sizes)
		slices.Sort(sorted)
		groups := make([]SlotSet, 0, len(sorted))
		enumeratePartitions(universe, sorted, groups, yield)
	}
}

// Partitions enumerates every candidate hidden key for the configuration.
func (p Params) Partitions() iter.Seq[Partition] {
	sizes := make([]int, p.Groups())
	for i := range sizes {
		sizes[i] = p.groupSize
	}
	return Enumerate(p.Universe(), sizes)
}

// enumeratePartitions pins the smallest remaining slot, completes its group
// with every distinct remaining size, and recurses on what is left. Reports
// whether iteration should continue.
func enumeratePartitions(remaining SlotSet, sizes []int, groups []SlotSet, yield func(Partition) bool) bool {
	if len(sizes) == 0 {
		if remaining.Count() == 0 {
			return yield(Partition{Groups: slices.Clone(groups)})
		}
		return true
	}
	if remaining.Count() == 0 {
		return true
	}
	rep := remaining.Min()
	rest := remaining
	rest.Subtract(singleton(rep))
	others := rest.Slots()
	for i, size := range sizes {
		if i > 0 && sizes[i-1] == size {
			// Equal-size groups are unordered; pinning the representative
			// into a second group of the same size would emit permuted
			// duplicates.
			continue
		}
		restSizes := slices.Concat(sizes[:i], sizes[i+1:])
		cont := combinations(others, size-1, singleton(rep), func(group SlotSet) bool {
			next := remaining
			next.Subtract(group)
			return enumeratePartitions(next, restSizes, append(groups, group), yield)
		})
		if !cont {
			return false
		}
	}
	return true
}

// combinations invokes cb once per way to extend acc with k of the given
// slots, choosing in ascending order. Reports whether iteration should
// continue.
func combinations(items []Slot, k int, acc SlotSet, cb func(SlotSet) bool) bool {
	if k == 0 {
		return cb(acc)
	}
	if k < 0 || len(items) < k {
		return true
	}
	for i := 0; i+k <= len(items); i++ {
		next := acc
		next.AddAll(singleton(items[i]))
		if !combinations(items[i+1:], k-1, next, cb) {
			return false
		}
	}
	return true
}
