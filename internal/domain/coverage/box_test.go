package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setOf(size int, atoms ...int) atomSet {
	s := newAtomSet(size)
	for _, a := range atoms {
		s.add(a)
	}

	return s
}

func TestAtomSet_Runs(t *testing.T) {
	s := setOf(130, 0, 1, 2, 5, 64, 65, 129)

	assert.Equal(t, [][2]int{{0, 2}, {5, 5}, {64, 65}, {129, 129}}, s.runs())
	assert.Equal(t, 7, s.count())
	assert.Equal(t, "{0,1,2,5,64,65,129}", s.String())
}

func TestAtomSet_Compare(t *testing.T) {
	assert.Negative(t, setOf(4, 0).compare(setOf(4, 1)))
	assert.Negative(t, setOf(4, 0).compare(setOf(4, 0, 1)))
	assert.Positive(t, setOf(4, 2).compare(setOf(4, 0, 3)))
	assert.Zero(t, setOf(4, 1, 3).compare(setOf(4, 1, 3)))
}

func TestBox_SubtractIsDisjoint(t *testing.T) {
	full := box{fullAtomSet(3), fullAtomSet(3)}
	hole := box{setOf(3, 1), setOf(3, 1)}

	pieces := full.subtract(hole)

	total := 0
	for i, p := range pieces {
		total += p.volume()
		assert.True(t, p.intersect(hole).empty())

		for _, q := range pieces[i+1:] {
			assert.True(t, p.intersect(q).empty())
		}
	}

	assert.Equal(t, 8, total)
}

func TestSolver_Solve(t *testing.T) {
	s := solver{sizes: []int{3, 3}}

	t.Run("fully covered", func(t *testing.T) {
		assert.Empty(t, s.solve([]box{s.full()}))
	})

	t.Run("finds every essential prime", func(t *testing.T) {
		// atoms: 0 below, 1 min, 2 above
		covered := []box{
			{setOf(3, 2), setOf(3, 2)},
			{setOf(3, 1), setOf(3, 2)},
			{setOf(3, 2), setOf(3, 1)},
		}

		got := s.solve(covered)

		require.Len(t, got, 3)
		assert.Equal(t, box{setOf(3, 0), fullAtomSet(3)}, got[0])
		assert.Equal(t, box{fullAtomSet(3), setOf(3, 0)}, got[1])
		assert.Equal(t, box{setOf(3, 1), setOf(3, 1)}, got[2])
	})

	t.Run("merges split regions", func(t *testing.T) {
		covered := []box{
			{setOf(3, 0), setOf(3, 0)},
			{setOf(3, 1, 2), setOf(3, 0)},
		}

		got := s.solve(covered)

		require.Len(t, got, 1)
		assert.Equal(t, box{fullAtomSet(3), setOf(3, 1, 2)}, got[0])
	})
}

func TestSolver_PrimesAreOrderIndependent(t *testing.T) {
	s := solver{sizes: []int{4, 3, 2}}
	covered := []box{
		{setOf(4, 0, 1), setOf(3, 0), fullAtomSet(2)},
		{setOf(4, 2), setOf(3, 1, 2), setOf(2, 1)},
		{fullAtomSet(4), setOf(3, 2), setOf(2, 0)},
	}

	want := s.solve(covered)

	reversed := []box{covered[2], covered[1], covered[0]}
	assert.Equal(t, want, s.solve(reversed))
}
