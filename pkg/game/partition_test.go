package game

import (
	"fmt"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func universeOf(t *testing.T, n int) SlotSet {
	t.Helper()
	var u SlotSet
	for i := 0; i < n; i++ {
		require.NoError(t, u.Add(Slot(i)))
	}
	return u
}

func collectPartitions(universe SlotSet, sizes []int) []Partition {
	var out []Partition
	for p := range Enumerate(universe, sizes) {
		out = append(out, p)
	}
	return out
}

// canonicalKey identifies a partition independently of group order.
func canonicalKey(p Partition) string {
	masks := make([]uint64, len(p.Groups))
	for i, g := range p.Groups {
		masks[i] = g.Bits()
	}
	slices.Sort(masks)
	return fmt.Sprint(masks)
}

func TestEnumerateCounts(t *testing.T) {
	cases := []struct {
		name  string
		n     int
		sizes []int
		want  int
	}{
		{"one group of four", 4, []int{4}, 1},
		{"two groups of four", 8, []int{4, 4}, 35},
		{"two groups of three", 6, []int{3, 3}, 10},
		{"three groups of three", 9, []int{3, 3, 3}, 280},
		{"two pairs", 4, []int{2, 2}, 3},
		{"mixed sizes", 5, []int{2, 3}, 10},
		{"oversized group", 3, []int{4}, 0},
		{"sizes fall short", 4, []int{2}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Len(t, collectPartitions(universeOf(t, tc.n), tc.sizes), tc.want)
		})
	}
}

func TestEnumerateEmptyUniverse(t *testing.T) {
	got := collectPartitions(SlotSet{}, nil)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Groups)
}

func TestEnumerateCoversAndDisjoint(t *testing.T) {
	universe := universeOf(t, 6)
	for p := range Enumerate(universe, []int{3, 3}) {
		var union SlotSet
		for _, g := range p.Groups {
			assert.Equal(t, 0, union.Overlap(g), "groups overlap in %v", p)
			union.AddAll(g)
		}
		assert.Equal(t, universe, union, "partition %v does not cover the universe", p)
	}
}

func TestEnumerateNoDuplicates(t *testing.T) {
	seen := make(map[string]bool)
	for p := range Enumerate(universeOf(t, 8), []int{4, 4}) {
		key := canonicalKey(p)
		assert.False(t, seen[key], "duplicate partition %v", p)
		seen[key] = true
	}
	assert.Len(t, seen, 35)
}

func TestEnumerateDeterministicOrder(t *testing.T) {
	var first Partition
	for p := range Enumerate(universeOf(t, 8), []int{4, 4}) {
		first = p
		break
	}
	got := make([][]Slot, len(first.Groups))
	for i, g := range first.Groups {
		got[i] = g.Slots()
	}
	want := [][]Slot{{0, 1, 2, 3}, {4, 5, 6, 7}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("first partition mismatch (-want +got):\n%s", diff)
	}
}

func TestEnumerateStopsEarly(t *testing.T) {
	count := 0
	for range Enumerate(universeOf(t, 8), []int{4, 4}) {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestScore(t *testing.T) {
	p := Partition{Groups: []SlotSet{mustSet(t, 0, 1, 2, 3), mustSet(t, 4, 5, 6, 7)}}
	cases := []struct {
		name string
		sel  SlotSet
		want Feedback
	}{
		{"first group exact", mustSet(t, 0, 1, 2, 3), Exact},
		{"second group exact", mustSet(t, 4, 5, 6, 7), Exact},
		{"one member off", mustSet(t, 0, 1, 2, 4), Near},
		{"one off the second group", mustSet(t, 3, 5, 6, 7), Near},
		{"split two and two", mustSet(t, 0, 1, 4, 5), Far},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, p.Score(tc.sel))
		})
	}
}

// Two single-member overlaps must not be summed into a spurious Exact for
// pair groups.
func TestScoreUsesMaxOverlapNotSum(t *testing.T) {
	p := Partition{Groups: []SlotSet{mustSet(t, 0, 1), mustSet(t, 2, 3), mustSet(t, 4, 5)}}
	assert.Equal(t, Near, p.Score(mustSet(t, 0, 2)))
	assert.Equal(t, Exact, p.Score(mustSet(t, 4, 5)))
}

func TestScoreGroupAlwaysExact(t *testing.T) {
	for p := range Enumerate(universeOf(t, 6), []int{3, 3}) {
		for _, g := range p.Groups {
			assert.Equal(t, Exact, p.Score(g))
		}
	}
}

func TestPartitionString(t *testing.T) {
	p := Partition{Groups: []SlotSet{mustSet(t, 0, 1), mustSet(t, 2, 3)}}
	assert.Equal(t, "{[0 1] [2 3]}", p.String())
}

func TestParamsPartitions(t *testing.T) {
	p, err := NewParams(8, 4)
	require.NoError(t, err)
	n := 0
	for range p.Partitions() {
		n++
	}
	assert.Equal(t, 35, n)
}
