package game

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration reports parameters that cannot describe a solvable
// puzzle.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Params is the immutable configuration of one puzzle: slots 0..SlotCount-1,
// partitioned by the hidden key into groups of GroupSize slots each. Params
// must be built with NewParams; the zero value is not usable.
type Params struct {
	slotCount int
	groupSize int
}

// NewParams validates and builds a configuration. The slot count must be a
// positive multiple of a positive group size, and fit within MaxSlots.
func NewParams(slotCount, groupSize int) (Params, error) {
	if slotCount <= 0 {
		return Params{}, fmt.Errorf("%w: slot count %d must be positive", ErrInvalidConfiguration, slotCount)
	}
	if slotCount > MaxSlots {
		return Params{}, fmt.Errorf("%w: slot count %d exceeds the maximum of %d", ErrInvalidConfiguration, slotCount, MaxSlots)
	}
	if groupSize <= 0 {
		return Params{}, fmt.Errorf("%w: group size %d must be positive", ErrInvalidConfiguration, groupSize)
	}
	if slotCount%groupSize != 0 {
		return Params{}, fmt.Errorf("%w: slot count %d is not a multiple of group size %d", ErrInvalidConfiguration, slotCount, groupSize)
	}
	return Params{slotCount: slotCount, groupSize: groupSize}, nil
}

// SlotCount returns the number of slots in the puzzle.
func (p Params) SlotCount() int {
	return p.slotCount
}

// GroupSize returns the number of slots in each hidden group.
func (p Params) GroupSize() int {
	return p.groupSize
}

// Groups returns the number of groups in the hidden key.
func (p Params) Groups() int {
	return p.slotCount / p.groupSize
}

// Universe returns the set of all slots in the puzzle.
func (p Params) Universe() SlotSet {
	if p.slotCount == MaxSlots {
		return SlotSet{bits: ^uint64(0), count: MaxSlots}
	}
	return SlotSet{bits: 1<<uint(p.slotCount) - 1, count: p.slotCount}
}
