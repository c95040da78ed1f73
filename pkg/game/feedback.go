package game

import "fmt"

// Feedback is the three-way result of scoring a selection against a
// partition. The values order Far < Near < Exact.
type Feedback uint8

const (
	// Far means every group misses at least two of its members.
	Far Feedback = iota
	// Near means the selection covers all but one member of some group, and
	// no group completely.
	Near
	// Exact means the selection covers some group completely.
	Exact
)

// String returns the display tag of the feedback value.
func (f Feedback) String() string {
	switch f {
	case Far:
		return "FAR"
	case Near:
		return "NEAR"
	case Exact:
		return "EXACT"
	}
	return fmt.Sprintf("Feedback(%d)", uint8(f))
}

// Move records one played selection and the feedback it received.
type Move struct {
	Selection SlotSet
	Result    Feedback
}
