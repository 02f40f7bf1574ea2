package coverage

import (
	"math"
	"sort"
)

// box is a product of one atom set per dimension of a joint group.
type box []atomSet

func (b box) clone() box {
	c := make(box, len(b))
	for i, s := range b {
		c[i] = s.clone()
	}

	return c
}

func (b box) empty() bool {
	for _, s := range b {
		if s.empty() {
			return true
		}
	}

	return false
}

func (b box) intersect(o box) box {
	c := make(box, len(b))
	for i := range b {
		c[i] = b[i].intersect(o[i])
	}

	return c
}

func (b box) contains(o box) bool {
	for i := range b {
		if !o[i].subsetOf(b[i]) {
			return false
		}
	}

	return true
}

func (b box) volume() int {
	v := 1
	for _, s := range b {
		n := s.count()
		if n != 0 && v > math.MaxInt/n {
			return math.MaxInt
		}

		v *= n
	}

	return v
}

// subtract returns disjoint boxes covering b minus o.
func (b box) subtract(o box) []box {
	if b.intersect(o).empty() {
		return []box{b}
	}

	var out []box

	prefix := b.clone()

	for k := range b {
		if rest := b[k].minus(o[k]); !rest.empty() {
			piece := prefix.clone()
			piece[k] = rest
			out = append(out, piece)
		}

		prefix[k] = b[k].intersect(o[k])
	}

	return out
}

func subtractAll(pieces []box, o box) []box {
	var out []box
	for _, p := range pieces {
		out = append(out, p.subtract(o)...)
	}

	return out
}

func overlapVolume(pieces []box, o box) int {
	v := 0
	for _, p := range pieces {
		if i := p.intersect(o); !i.empty() {
			v += i.volume()
		}
	}

	return v
}

// solver computes the uncovered part of a joint group of parameters.
type solver struct {
	sizes []int
}

func (s solver) full() box {
	b := make(box, len(s.sizes))
	for i, n := range s.sizes {
		b[i] = fullAtomSet(n)
	}

	return b
}

func (s solver) isFull(b box, k int) bool {
	return b[k].count() == s.sizes[k]
}

func (s solver) constrained(b box) []int {
	var dims []int

	for k := range b {
		if !s.isFull(b, k) {
			dims = append(dims, k)
		}
	}

	return dims
}

// compare orders boxes by how many dimensions they constrain, which ones,
// and then by their atoms.
func (s solver) compare(a, b box) int {
	da, db := s.constrained(a), s.constrained(b)
	if len(da) != len(db) {
		return len(da) - len(db)
	}

	for i := range da {
		if da[i] != db[i] {
			return da[i] - db[i]
		}
	}

	for k := range a {
		if c := a[k].compare(b[k]); c != 0 {
			return c
		}
	}

	return 0
}

func (s solver) sort(boxes []box) {
	sort.SliceStable(boxes, func(i, j int) bool {
		return s.compare(boxes[i], boxes[j]) < 0
	})
}

// solve returns the smallest set of uncovered boxes, each as large as the
// cover allows.
func (s solver) solve(covered []box) []box {
	region := []box{s.full()}
	for _, c := range covered {
		region = subtractAll(region, c)
		if len(region) == 0 {
			return nil
		}
	}

	primes := s.primes(region)
	chosen := s.cover(primes, region)

	return s.reduce(chosen)
}

// primes expands the region into all its maximal boxes by iterated
// consensus: for two boxes and one dimension, the union on that dimension
// crossed with the intersection on the others is still inside the region.
func (s solver) primes(region []box) []box {
	set := s.absorb(region)

	for changed := true; changed; {
		changed = false
		n := len(set)

		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				for k := range s.sizes {
					c, ok := consensus(set[i], set[j], k)
					if !ok || coveredByAny(set, c) {
						continue
					}

					set = append(set, c)
					changed = true
				}
			}
		}

		set = s.absorb(set)
	}

	s.sort(set)

	return set
}

func consensus(a, b box, k int) (box, bool) {
	c := make(box, len(a))

	for d := range a {
		if d == k {
			c[d] = a[d].union(b[d])
			continue
		}

		c[d] = a[d].intersect(b[d])
		if c[d].empty() {
			return nil, false
		}
	}

	return c, true
}

func coveredByAny(set []box, b box) bool {
	for _, o := range set {
		if o.contains(b) {
			return true
		}
	}

	return false
}

// absorb drops boxes contained in another box of the set.
func (s solver) absorb(set []box) []box {
	out := make([]box, 0, len(set))

	for i, b := range set {
		absorbed := false

		for j, o := range set {
			if i == j || !o.contains(b) {
				continue
			}

			if !b.contains(o) || j < i {
				absorbed = true
				break
			}
		}

		if !absorbed {
			out = append(out, b)
		}
	}

	return out
}

// cover keeps the essential primes, then greedily adds the prime covering
// most of what is left.
func (s solver) cover(primes, region []box) []box {
	var chosen []box

	for i, p := range primes {
		rest := []box{p}

		for j, o := range primes {
			if i != j {
				rest = subtractAll(rest, o)
			}
		}

		if len(rest) > 0 {
			chosen = append(chosen, p)
		}
	}

	remaining := region
	for _, c := range chosen {
		remaining = subtractAll(remaining, c)
	}

	for len(remaining) > 0 {
		best, bestVolume := -1, 0

		for i, p := range primes {
			if v := overlapVolume(remaining, p); v > bestVolume {
				best, bestVolume = i, v
			}
		}

		if best < 0 {
			break
		}

		chosen = append(chosen, primes[best])
		remaining = subtractAll(remaining, primes[best])
	}

	return chosen
}

// reduce shrinks the constrained dimensions of each box to what simpler
// boxes leave uncovered. Whole dimensions stay whole so a box never gains a
// constrained parameter.
func (s solver) reduce(chosen []box) []box {
	sorted := append([]box(nil), chosen...)
	s.sort(sorted)

	out := make([]box, 0, len(sorted))

	for _, b := range sorted {
		pieces := []box{b}
		for _, prev := range out {
			pieces = subtractAll(pieces, prev)
		}

		if len(pieces) == 0 {
			continue
		}

		r := b.clone()

		for k := range r {
			if s.isFull(b, k) {
				continue
			}

			proj := newAtomSet(s.sizes[k])
			for _, p := range pieces {
				proj = proj.union(p[k])
			}

			r[k] = proj
		}

		out = append(out, r)
	}

	s.sort(out)

	return out
}
