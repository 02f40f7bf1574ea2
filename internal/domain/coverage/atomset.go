// Package coverage computes which combinations of a member's input domain
// are left uncovered by its declared test cases.
package coverage

import (
	"math/bits"
	"strconv"
	"strings"
)

// atomSet is a set of atom indices of one dimension.
type atomSet struct {
	words []uint64
}

func newAtomSet(size int) atomSet {
	return atomSet{words: make([]uint64, (size+63)/64)}
}

func fullAtomSet(size int) atomSet {
	s := newAtomSet(size)
	for i := range size {
		s.add(i)
	}

	return s
}

func (s atomSet) clone() atomSet {
	return atomSet{words: append([]uint64(nil), s.words...)}
}

func (s atomSet) add(i int) {
	s.words[i/64] |= 1 << (uint(i) % 64)
}

func (s atomSet) has(i int) bool {
	return s.words[i/64]&(1<<(uint(i)%64)) != 0
}

func (s atomSet) union(o atomSet) atomSet {
	r := s.clone()
	for i := range r.words {
		r.words[i] |= o.words[i]
	}

	return r
}

func (s atomSet) intersect(o atomSet) atomSet {
	r := s.clone()
	for i := range r.words {
		r.words[i] &= o.words[i]
	}

	return r
}

func (s atomSet) minus(o atomSet) atomSet {
	r := s.clone()
	for i := range r.words {
		r.words[i] &^= o.words[i]
	}

	return r
}

func (s atomSet) empty() bool {
	for _, w := range s.words {
		if w != 0 {
			return false
		}
	}

	return true
}

func (s atomSet) subsetOf(o atomSet) bool {
	for i := range s.words {
		if s.words[i]&^o.words[i] != 0 {
			return false
		}
	}

	return true
}

func (s atomSet) count() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}

	return n
}

func (s atomSet) indices() []int {
	var out []int

	for wi, w := range s.words {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			out = append(out, wi*64+b)
			w &^= 1 << uint(b)
		}
	}

	return out
}

// compare orders sets by their sorted atom indices.
func (s atomSet) compare(o atomSet) int {
	a, b := s.indices(), o.indices()
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}

			return 1
		}
	}

	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}

	return 0
}

// runs splits the set into maximal runs of consecutive indices.
func (s atomSet) runs() [][2]int {
	var out [][2]int

	for _, i := range s.indices() {
		if n := len(out); n > 0 && out[n-1][1] == i-1 {
			out[n-1][1] = i
			continue
		}

		out = append(out, [2]int{i, i})
	}

	return out
}

func (s atomSet) String() string {
	var sb strings.Builder

	sb.WriteByte('{')

	for i, idx := range s.indices() {
		if i > 0 {
			sb.WriteByte(',')
		}

		sb.WriteString(strconv.Itoa(idx))
	}

	sb.WriteByte('}')

	return sb.String()
}
