package coverage

import (
	"math/big"
	"sort"
	"strings"

	m "github.com/mouse-blink/casecov/internal/model"
)

// span is one declared interval on an ordered parameter.
type span struct {
	lo, hi                   resolvedBound
	loInclusive, hiInclusive bool
}

// position orders points on an axis. Unknown bounds sit at an offset next
// to the resolved value they are anchored to.
type position struct {
	value  *big.Rat
	offset int
}

func (p position) cmp(o position) int {
	if c := p.value.Cmp(o.value); c != 0 {
		return c
	}

	switch {
	case p.offset < o.offset:
		return -1
	case p.offset > o.offset:
		return 1
	}

	return 0
}

type axisPoint struct {
	pos     position
	text    string
	named   bool
	unknown bool
}

func (p axisPoint) display() string {
	if p.unknown {
		return unknownMarker
	}

	return p.text
}

func (p axisPoint) literal() bool {
	return !p.named && !p.unknown && p.pos.offset == 0
}

type axisAtom struct {
	point int
	open  bool
}

// anchors maps unknown bound text to its inferred position.
type anchors map[string]position

// orderedAxis splits an ordered domain into point atoms and open-interval
// atoms between consecutive split points. Runs of consecutive atoms are the
// canonical chunks of the domain.
type orderedAxis struct {
	typeName string
	integer  bool
	points   []axisPoint
	atoms    []axisAtom
	// pointAtom[k] is the atom of point k; openAtom[k] the atom between
	// point k and k+1, or -1 when that interval holds no value.
	pointAtom []int
	openAtom  []int
	anchors   anchors
}

// computeAnchors places every unknown bound right after the largest resolved
// lower bound it closes, or else right before the smallest resolved upper
// bound it opens. Bounds sharing an anchor are ordered by text.
func computeAnchors(res resolver, spans []span) anchors {
	after := map[string]*big.Rat{}
	before := map[string]*big.Rat{}

	for _, sp := range spans {
		if sp.hi.unknown() && !sp.lo.unknown() {
			lo := res.clamp(sp.lo).value
			if cur, ok := after[sp.hi.text]; !ok || lo.Cmp(cur) > 0 {
				after[sp.hi.text] = lo
			}
		}

		if sp.lo.unknown() && !sp.hi.unknown() {
			hi := res.clamp(sp.hi).value
			if cur, ok := before[sp.lo.text]; !ok || hi.Cmp(cur) < 0 {
				before[sp.lo.text] = hi
			}
		}
	}

	type slot struct {
		value *big.Rat
		after bool
	}

	slots := map[string]slot{}

	for text, v := range after {
		if v.Cmp(res.max) == 0 {
			slots[text] = slot{value: v}
			continue
		}

		slots[text] = slot{value: v, after: true}
	}

	for text, v := range before {
		if _, ok := slots[text]; ok {
			continue
		}

		if v.Cmp(res.min) == 0 {
			slots[text] = slot{value: v, after: true}
			continue
		}

		slots[text] = slot{value: v}
	}

	groups := map[string][]string{}

	for text, s := range slots {
		key := s.value.RatString()
		if s.after {
			key += "+"
		} else {
			key += "-"
		}

		groups[key] = append(groups[key], text)
	}

	result := anchors{}

	for _, texts := range groups {
		sort.Strings(texts)

		s := slots[texts[0]]
		for i, text := range texts {
			offset := i + 1
			if !s.after {
				offset = i - len(texts)
			}

			result[text] = position{value: s.value, offset: offset}
		}
	}

	return result
}

// unanchored returns the first unknown bound of sp that has no anchor.
func (a anchors) unanchored(sp span) (resolvedBound, bool) {
	for _, b := range []resolvedBound{sp.lo, sp.hi} {
		if !b.unknown() {
			continue
		}

		if _, ok := a[b.text]; !ok {
			return b, true
		}
	}

	return resolvedBound{}, false
}

// inverted returns the lower bound of a span whose two unknown bounds are
// anchored in the wrong order. Both bounds must be anchored.
func (a anchors) inverted(sp span) (resolvedBound, bool) {
	if !sp.lo.unknown() || !sp.hi.unknown() {
		return resolvedBound{}, false
	}

	if a[sp.lo.text].cmp(a[sp.hi.text]) <= 0 {
		return resolvedBound{}, false
	}

	return sp.lo, true
}

func newOrderedAxis(res resolver, spans []span, anc anchors) *orderedAxis {
	ax := &orderedAxis{
		typeName: res.domain.TypeName,
		integer:  res.domain.Ordered == m.OrderedInteger,
		anchors:  anc,
	}

	candidates := []axisPoint{ax.pointOf(res.minBound()), ax.pointOf(res.maxBound())}

	for _, sp := range spans {
		sp = normalizeSpan(res, sp)
		candidates = append(candidates, ax.pointOf(sp.lo), ax.pointOf(sp.hi))
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if c := candidates[i].pos.cmp(candidates[j].pos); c != 0 {
			return c < 0
		}

		return preferPoint(candidates[i], candidates[j])
	})

	for _, c := range candidates {
		if n := len(ax.points); n > 0 && ax.points[n-1].pos.cmp(c.pos) == 0 {
			continue
		}

		if c.pos.cmp(ax.pointOf(res.minBound()).pos) < 0 || c.pos.cmp(ax.pointOf(res.maxBound()).pos) > 0 {
			continue
		}

		ax.points = append(ax.points, c)
	}

	ax.pointAtom = make([]int, len(ax.points))
	ax.openAtom = make([]int, len(ax.points))

	for k := range ax.points {
		ax.pointAtom[k] = len(ax.atoms)
		ax.atoms = append(ax.atoms, axisAtom{point: k})
		ax.openAtom[k] = -1

		if k+1 < len(ax.points) && ax.holdsValues(k) {
			ax.openAtom[k] = len(ax.atoms)
			ax.atoms = append(ax.atoms, axisAtom{point: k, open: true})
		}
	}

	return ax
}

// preferPoint picks the text used for a point written several ways: named
// members (domain ends included) first, then the shortest literal.
func preferPoint(a, b axisPoint) bool {
	if a.named != b.named {
		return a.named
	}

	if len(a.text) != len(b.text) {
		return len(a.text) < len(b.text)
	}

	return a.text < b.text
}

// normalizeSpan clamps resolved bounds into the domain. A bound moved onto
// a domain end becomes inclusive.
func normalizeSpan(res resolver, sp span) span {
	if !sp.lo.unknown() {
		if c := res.clamp(sp.lo); c.value != sp.lo.value {
			sp.lo, sp.loInclusive = c, true
		}
	}

	if !sp.hi.unknown() {
		if c := res.clamp(sp.hi); c.value != sp.hi.value {
			sp.hi, sp.hiInclusive = c, true
		}
	}

	return sp
}

func (ax *orderedAxis) pointOf(b resolvedBound) axisPoint {
	if b.unknown() {
		return axisPoint{pos: ax.anchors[b.text], text: b.text, unknown: true}
	}

	return axisPoint{pos: position{value: b.value}, text: b.text, named: b.named}
}

// holdsValues reports whether the open interval after point k is non-empty.
func (ax *orderedAxis) holdsValues(k int) bool {
	lo, hi := ax.points[k].pos, ax.points[k+1].pos
	if !ax.integer || lo.offset != 0 || hi.offset != 0 {
		return true
	}

	gap := new(big.Rat).Sub(hi.value, lo.value)

	return gap.Cmp(big.NewRat(1, 1)) > 0
}

func (ax *orderedAxis) size() int {
	return len(ax.atoms)
}

func (ax *orderedAxis) indexOf(p axisPoint) int {
	return sort.Search(len(ax.points), func(i int) bool {
		return ax.points[i].pos.cmp(p.pos) >= 0
	})
}

// cover returns the atoms covered by a span. Spans entirely outside the
// domain cover nothing.
func (ax *orderedAxis) cover(res resolver, sp span) atomSet {
	s := newAtomSet(ax.size())

	if outside(res, sp) {
		return s
	}

	sp = normalizeSpan(res, sp)
	lo, hi := ax.indexOf(ax.pointOf(sp.lo)), ax.indexOf(ax.pointOf(sp.hi))

	if lo >= len(ax.points) || hi >= len(ax.points) || lo > hi {
		return s
	}

	if lo == hi {
		if sp.loInclusive && sp.hiInclusive {
			s.add(ax.pointAtom[lo])
		}

		return s
	}

	if sp.loInclusive {
		s.add(ax.pointAtom[lo])
	}

	for k := lo; k < hi; k++ {
		if ax.openAtom[k] >= 0 {
			s.add(ax.openAtom[k])
		}

		if k+1 < hi {
			s.add(ax.pointAtom[k+1])
		}
	}

	if sp.hiInclusive {
		s.add(ax.pointAtom[hi])
	}

	return s
}

func outside(res resolver, sp span) bool {
	if !sp.lo.unknown() && sp.lo.value.Cmp(res.max) > 0 {
		return true
	}

	return !sp.hi.unknown() && sp.hi.value.Cmp(res.min) < 0
}

// orderedChunk is a run of atoms expressed as an interval between points.
type orderedChunk struct {
	lo, hi                   int
	loInclusive, hiInclusive bool
}

func (ax *orderedAxis) chunkOf(run [2]int) orderedChunk {
	first, last := ax.atoms[run[0]], ax.atoms[run[1]]
	c := orderedChunk{lo: first.point, loInclusive: !first.open, hi: last.point, hiInclusive: !last.open}

	if last.open {
		c.hi = last.point + 1
	}

	return c
}

func (ax *orderedAxis) chunks(s atomSet) []atomSet {
	var out []atomSet

	for _, run := range s.runs() {
		c := newAtomSet(ax.size())
		for i := run[0]; i <= run[1]; i++ {
			c.add(i)
		}

		out = append(out, c)
	}

	return out
}

func (ax *orderedAxis) render(s atomSet) string {
	runs := s.runs()
	calls := make([]string, 0, len(runs))

	for _, run := range runs {
		calls = append(calls, ax.renderChunk(ax.chunkOf(run)))
	}

	return qualify(ax.typeName, strings.Join(calls, "."))
}

func (ax *orderedAxis) whole() string {
	return ax.render(fullAtomSet(ax.size()))
}

// renderChunk writes a chunk with the smallest author-facing call.
func (ax *orderedAxis) renderChunk(c orderedChunk) string {
	lo, hi := ax.points[c.lo], ax.points[c.hi]

	if c.lo == c.hi {
		return call("Value", lo.display())
	}

	if v, ok := ax.singleValue(c); ok {
		return call("Value", v)
	}

	last := len(ax.points) - 1
	touchesMin := c.lo == 0 && c.loInclusive
	touchesMax := c.hi == last && c.hiInclusive

	switch {
	case touchesMin && touchesMax:
		return call("Range", lo.display(), hi.display())
	case touchesMin && c.hiInclusive:
		return call("BelowOrEqual", hi.display())
	case touchesMin:
		return call("Below", hi.display())
	case touchesMax && c.loInclusive:
		return call("AboveOrEqual", lo.display())
	case touchesMax:
		return call("Above", lo.display())
	}

	loText, loInclusive := lo.display(), c.loInclusive
	hiText, hiInclusive := hi.display(), c.hiInclusive

	if ax.integer && !loInclusive && lo.literal() {
		loText, loInclusive = formatInteger(new(big.Rat).Add(lo.pos.value, big.NewRat(1, 1))), true
	}

	if ax.integer && !hiInclusive && hi.literal() {
		hiText, hiInclusive = formatInteger(new(big.Rat).Sub(hi.pos.value, big.NewRat(1, 1))), true
	}

	if loInclusive && hiInclusive {
		return call("Range", loText, hiText)
	}

	return call("Range", loText, boolText(loInclusive), hiText, boolText(hiInclusive))
}

// singleValue detects integer chunks holding exactly one value.
func (ax *orderedAxis) singleValue(c orderedChunk) (string, bool) {
	lo, hi := ax.points[c.lo], ax.points[c.hi]
	if !ax.integer || lo.unknown || hi.unknown || lo.pos.offset != 0 || hi.pos.offset != 0 {
		return "", false
	}

	first := new(big.Rat).Set(lo.pos.value)
	if !c.loInclusive {
		first.Add(first, big.NewRat(1, 1))
	}

	last := new(big.Rat).Set(hi.pos.value)
	if !c.hiInclusive {
		last.Sub(last, big.NewRat(1, 1))
	}

	if first.Cmp(last) != 0 {
		return "", false
	}

	switch {
	case c.loInclusive:
		return lo.text, true
	case c.hiInclusive:
		return hi.text, true
	}

	return formatInteger(first), true
}
