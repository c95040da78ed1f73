package game

import (
	"fmt"
	"math/bits"
	"strings"
)

// Slot identifies one position in the puzzle. Slots carry no behavior beyond
// equality and ordering; iteration is always in ascending order.
type Slot int

// MaxSlots is the largest universe a SlotSet can hold.
const MaxSlots = 64

// SlotSet efficiently represents a set of slots using bit manipulation.
// It supports slots from 0 to 63, which fits perfectly in a uint64.
// The zero value is the empty set. SlotSet is a plain value type: copies are
// independent and == compares set contents.
type SlotSet struct {
	bits  uint64
	count int
}

// NewSlotSet creates a set containing the given slots.
func NewSlotSet(slots ...Slot) (SlotSet, error) {
	var s SlotSet
	for _, sl := range slots {
		if err := s.Add(sl); err != nil {
			return SlotSet{}, err
		}
	}
	return s, nil
}

func singleton(sl Slot) SlotSet {
	return SlotSet{bits: 1 << uint(sl), count: 1}
}

// Add adds a slot to the set.
func (s *SlotSet) Add(sl Slot) error {
	if sl < 0 || sl >= MaxSlots {
		return fmt.Errorf("slot %d is out of range", sl)
	}
	if s.bits&(1<<uint(sl)) == 0 {
		s.bits |= 1 << uint(sl)
		s.count = bits.OnesCount64(s.bits)
	}
	return nil
}

// AddAll adds all slots from another set to this set.
func (s *SlotSet) AddAll(other SlotSet) {
	oldBits := s.bits
	s.bits |= other.bits
	if s.bits != oldBits {
		s.count = bits.OnesCount64(s.bits)
	}
}

// Subtract removes all slots of another set from this set.
func (s *SlotSet) Subtract(other SlotSet) {
	oldBits := s.bits
	s.bits &^= other.bits
	if s.bits != oldBits {
		s.count = bits.OnesCount64(s.bits)
	}
}

// Contains checks if a slot is in the set.
func (s SlotSet) Contains(sl Slot) bool {
	if sl < 0 || sl >= MaxSlots {
		return false
	}
	return s.bits&(1<<uint(sl)) != 0
}

// Count returns the number of slots in the set.
func (s SlotSet) Count() int {
	return s.count
}

// Overlap returns the number of slots the two sets have in common.
func (s SlotSet) Overlap(other SlotSet) int {
	return bits.OnesCount64(s.bits & other.bits)
}

// Min returns the smallest slot in the set. It panics on an empty set.
func (s SlotSet) Min() Slot {
	if s.count == 0 {
		panic("Min on an empty slot set")
	}
	return Slot(bits.TrailingZeros64(s.bits))
}

// Take returns the n smallest slots of the set as a new set. Taking more
// slots than the set holds returns the whole set.
func (s SlotSet) Take(n int) SlotSet {
	if n <= 0 {
		return SlotSet{}
	}
	if n >= s.count {
		return s
	}
	var taken uint64
	rest := s.bits
	for i := 0; i < n; i++ {
		low := rest & -rest
		taken |= low
		rest &^= low
	}
	return SlotSet{bits: taken, count: n}
}

// Split partitions the set by another set, returning the members inside
// other and the members outside it.
func (s SlotSet) Split(other SlotSet) (in, out SlotSet) {
	in.bits = s.bits & other.bits
	in.count = bits.OnesCount64(in.bits)
	out.bits = s.bits &^ other.bits
	out.count = s.count - in.count
	return in, out
}

// Slots returns the members of the set in ascending order.
func (s SlotSet) Slots() []Slot {
	out := make([]Slot, 0, s.count)
	b := s.bits
	for b != 0 {
		out = append(out, Slot(bits.TrailingZeros64(b)))
		b &= b - 1
	}
	return out
}

// Bits returns the raw bitmask; bit i is set iff slot i is a member.
func (s SlotSet) Bits() uint64 {
	return s.bits
}

// String returns a string representation of the set.
func (s SlotSet) String() string {
	if s.count == 0 {
		return "[]"
	}
	parts := make([]string, 0, s.count)
	for _, sl := range s.Slots() {
		parts = append(parts, fmt.Sprintf("%d", sl))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
