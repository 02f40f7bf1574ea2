package coverage

import (
	"fmt"
	"sort"
	"strings"

	m "github.com/mouse-blink/casecov/internal/model"
)

// caseState tracks one declared case through an analysis.
type caseState struct {
	c      m.Case
	leaves []boundLeaf
	err    *caseError
}

// analysis holds everything derived from one member's case list.
type analysis struct {
	member    m.Member
	params    []m.Parameter
	resolvers []*resolver
	poisoned  []bool
	cases     []*caseState
	dims      []dimension
}

// Analyze computes the coverage report of one member from every case
// declared for it. The result does not depend on the order of cases.
func Analyze(member m.Member, cases []m.Case) m.MemberReport {
	a := newAnalysis(member, cases)
	a.bind()
	a.anchor()
	a.buildDimensions()

	return a.report()
}

func newAnalysis(member m.Member, cases []m.Case) *analysis {
	params := member.Parameters
	if len(params) == 0 {
		params = []m.Parameter{m.ImplicitParameter()}
	}

	a := &analysis{
		member:    member,
		params:    params,
		resolvers: make([]*resolver, len(params)),
		poisoned:  make([]bool, len(params)),
		dims:      make([]dimension, len(params)),
	}

	for i, p := range params {
		if p.Domain.Kind != m.DomainOrdered {
			continue
		}

		if res, err := newResolver(p.Domain); err == nil {
			a.resolvers[i] = &res
		}
	}

	for _, c := range cases {
		a.cases = append(a.cases, &caseState{c: c})
	}

	return a
}

// bind attaches every leaf to its parameter. The first failing leaf
// excludes its case.
func (a *analysis) bind() {
	for _, cs := range a.cases {
		for _, leaf := range cs.c.Expr.Leaves() {
			idx, err := bindLeaf(a.member, a.params, leaf)
			if err != nil {
				cs.err = err
				break
			}

			bl, err := normalizeLeaf(a.params[idx], a.resolvers[idx], leaf)
			if err != nil {
				cs.err = err
				if err.poisons {
					a.poisoned[idx] = true
				}

				break
			}

			bl.param = idx
			cs.leaves = append(cs.leaves, bl)
		}
	}
}

func (a *analysis) active() []*caseState {
	var out []*caseState

	for _, cs := range a.cases {
		if cs.err == nil {
			out = append(out, cs)
		}
	}

	return out
}

func (a *analysis) spans(param int) []span {
	var out []span

	for _, cs := range a.active() {
		for _, bl := range cs.leaves {
			if bl.param == param {
				out = append(out, bl.spans...)
			}
		}
	}

	return out
}

// anchor excludes cases with symbolic bounds that cannot be placed, or that
// are placed in the wrong order. Removing
// a case can remove the anchor of another, so this runs to a fixpoint.
func (a *analysis) anchor() {
	for changed := true; changed; {
		changed = false

		for i, res := range a.resolvers {
			if res == nil {
				continue
			}

			anc := computeAnchors(*res, a.spans(i))

			for _, cs := range a.active() {
				if err := unanchoredLeaf(cs.leaves, i, anc); err != nil {
					cs.err = err
					changed = true
				}
			}
		}
	}
}

func unanchoredLeaf(leaves []boundLeaf, param int, anc anchors) *caseError {
	for _, bl := range leaves {
		if bl.param != param {
			continue
		}

		for _, sp := range bl.spans {
			if b, ok := anc.unanchored(sp); ok {
				return notAConstant(b)
			}

			if b, ok := anc.inverted(sp); ok {
				return notAConstant(b)
			}
		}
	}

	return nil
}

func notAConstant(b resolvedBound) *caseError {
	switch b.code {
	case m.CodeNotADateCreation:
		return failf(b.code, "%q is not a DateTime creation with constant arguments", b.text)
	case m.CodeNotAConstantPropertyField:
		return failf(b.code, "%q is not a constant, readonly field or property", b.text)
	default:
		return failf(m.CodeNotAConstant, "%q is not a constant", b.text)
	}
}

func (a *analysis) buildDimensions() {
	active := a.active()

	for i, p := range a.params {
		switch p.Domain.Kind {
		case m.DomainOrdered:
			res := a.resolvers[i]
			if res == nil {
				continue
			}

			spans := a.spans(i)
			a.dims[i] = newOrderedAxis(*res, spans, computeAnchors(*res, spans))
		default:
			var observed []string

			for _, cs := range active {
				for _, bl := range cs.leaves {
					if bl.param == i {
						observed = append(observed, bl.names...)
					}
				}
			}

			declared := p.Domain.Values
			if p.Domain.Kind == m.DomainOpaque {
				declared = p.Domain.Family
			}

			a.dims[i] = newSetDimension(p.Domain.TypeName, p.Domain.Kind == m.DomainOpaque, declared, observed)
		}
	}
}

func (a *analysis) leafCovers() map[*m.Leaf]leafCover {
	covers := map[*m.Leaf]leafCover{}

	for _, cs := range a.active() {
		for _, bl := range cs.leaves {
			dim := a.dims[bl.param]
			set := newAtomSet(dim.size())

			switch d := dim.(type) {
			case *orderedAxis:
				for _, sp := range bl.spans {
					set = set.union(d.cover(*a.resolvers[bl.param], sp))
				}
			case *setDimension:
				set = d.cover(bl.names)
			}

			covers[bl.leaf] = leafCover{param: bl.param, set: set}
		}
	}

	return covers
}

// constraints evaluates every active case and drops the alternatives that
// touch a parameter whose coverage is no longer trusted.
func (a *analysis) constraints() []constraint {
	ev := evaluator{params: len(a.params), leaves: a.leafCovers()}

	var out []constraint

	for _, cs := range a.active() {
		for _, c := range ev.eval(cs.c.Expr) {
			if !a.touchesPoisoned(c) {
				out = append(out, c)
			}
		}
	}

	return out
}

func (a *analysis) touchesPoisoned(c constraint) bool {
	for _, p := range c.params() {
		if a.poisoned[p] {
			return true
		}
	}

	return false
}

func (a *analysis) missing() []string {
	constraints := a.constraints()
	groups := newGroups(len(a.params))
	mentioned := make([]bool, len(a.params))

	for _, c := range constraints {
		ps := c.params()
		if len(ps) == 0 {
			continue
		}

		for _, p := range ps {
			mentioned[p] = true
		}

		for _, p := range ps[1:] {
			groups.union(ps[0], p)
		}
	}

	r := renderer{names: parameterNames(a.params), dims: a.dims, qualified: len(a.params) > 1}

	var terms []string

	for p := range a.params {
		if !mentioned[p] || a.poisoned[p] || groups.size(p) > 1 {
			continue
		}

		dim := a.dims[p]
		uncovered := fullAtomSet(dim.size())

		for _, c := range constraints {
			if c[p].words != nil {
				uncovered = uncovered.minus(c[p])
			}
		}

		for _, chunk := range dim.chunks(uncovered) {
			terms = append(terms, r.term(p, dim.render(chunk)))
		}
	}

	for p := range a.params {
		if a.poisoned[p] && a.dims[p] != nil {
			terms = append(terms, r.term(p, a.dims[p].whole()))
		}
	}

	var joint []missingBox

	for _, members := range groups.sets() {
		if len(members) > 1 {
			joint = append(joint, a.solveGroup(members, constraints)...)
		}
	}

	sort.SliceStable(joint, func(i, j int) bool {
		return compareMissing(joint[i], joint[j]) < 0
	})

	for _, b := range joint {
		terms = append(terms, r.box(b))
	}

	return terms
}

// solveGroup computes the uncovered boxes of parameters that are
// constrained together by at least one case.
func (a *analysis) solveGroup(members []int, constraints []constraint) []missingBox {
	s := solver{sizes: make([]int, len(members))}
	for k, p := range members {
		s.sizes[k] = a.dims[p].size()
	}

	var covered []box

	for _, c := range constraints {
		ps := c.params()
		if len(ps) == 0 || !contains(members, ps[0]) {
			continue
		}

		b := s.full()
		for k, p := range members {
			if c[p].words != nil {
				b[k] = c[p]
			}
		}

		covered = append(covered, b)
	}

	var out []missingBox

	for _, b := range s.solve(covered) {
		mb := missingBox{}

		for _, k := range s.constrained(b) {
			mb.params = append(mb.params, members[k])
			mb.sets = append(mb.sets, b[k])
		}

		if len(mb.params) > 0 {
			out = append(out, mb)
		}
	}

	return out
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}

	return false
}

func (a *analysis) report() m.MemberReport {
	rep := m.MemberReport{Member: a.member.Signature, Cases: len(a.cases)}

	if terms := a.missing(); len(terms) > 0 {
		rep.Diagnostics = append(rep.Diagnostics, m.Diagnostic{
			Code:      m.CodeMissingCases,
			Severity:  m.SevWarning,
			Member:    a.member.Signature,
			Message:   joinTerms(terms),
			Missing:   terms,
			Locations: a.activeLocations(),
		})
	}

	var errs []m.Diagnostic

	for _, cs := range a.cases {
		if cs.err == nil {
			continue
		}

		d := m.Diagnostic{
			Code:     cs.err.code,
			Severity: m.SevError,
			Member:   a.member.Signature,
			Message:  cs.err.message,
		}

		if len(cs.c.Locations) > 0 {
			d.Locations = []m.Location{cs.c.Location()}
		}

		errs = append(errs, d)
	}

	errs = append(errs, a.unconstrained()...)

	sort.SliceStable(errs, func(i, j int) bool {
		li, lj := firstLocation(errs[i]), firstLocation(errs[j])
		if li != lj {
			return li.Less(lj)
		}

		if errs[i].Code != errs[j].Code {
			return errs[i].Code < errs[j].Code
		}

		return errs[i].Message < errs[j].Message
	})

	rep.Diagnostics = append(rep.Diagnostics, errs...)
	rep.ErrorCases = a.errorCases()

	return rep
}

// unconstrained reports every parameter of a member with several
// parameters that no valid case constrains.
func (a *analysis) unconstrained() []m.Diagnostic {
	active := a.active()
	if len(a.params) < 2 || len(active) == 0 {
		return nil
	}

	said := make([]bool, len(a.params))

	for _, cs := range active {
		for _, bl := range cs.leaves {
			said[bl.param] = true
		}
	}

	var locs []m.Location
	if all := a.activeLocations(); len(all) > 0 {
		locs = all[:1]
	}

	var out []m.Diagnostic

	for i, p := range a.params {
		if said[i] || a.poisoned[i] {
			continue
		}

		out = append(out, m.Diagnostic{
			Code:      m.CodeMissingParameterCase,
			Severity:  m.SevError,
			Member:    a.member.Signature,
			Message:   fmt.Sprintf("no case of %s covers parameter %s", a.member.Signature, displayName(p)),
			Locations: locs,
		})
	}

	return out
}

func firstLocation(d m.Diagnostic) m.Location {
	if len(d.Locations) == 0 {
		return m.Location{}
	}

	return d.Locations[0]
}

func (a *analysis) activeLocations() []m.Location {
	seen := map[m.Location]bool{}

	var locs []m.Location

	for _, cs := range a.active() {
		for _, l := range cs.c.Locations {
			if !seen[l] {
				seen[l] = true
				locs = append(locs, l)
			}
		}
	}

	sort.Slice(locs, func(i, j int) bool { return locs[i].Less(locs[j]) })

	return locs
}

func (a *analysis) errorCases() []string {
	seen := map[string]bool{}

	var out []string

	for _, cs := range a.active() {
		for _, bl := range cs.leaves {
			text := strings.TrimSpace(bl.leaf.Text)
			if bl.leaf.ErrorCase && !seen[text] {
				seen[text] = true
				out = append(out, text)
			}
		}
	}

	sort.Strings(out)

	return out
}

// groups is a union-find over parameter indices.
type groups struct {
	parent []int
	count  []int
}

func newGroups(n int) *groups {
	g := &groups{parent: make([]int, n), count: make([]int, n)}
	for i := range g.parent {
		g.parent[i] = i
		g.count[i] = 1
	}

	return g
}

func (g *groups) find(i int) int {
	for g.parent[i] != i {
		g.parent[i] = g.parent[g.parent[i]]
		i = g.parent[i]
	}

	return i
}

func (g *groups) union(i, j int) {
	ri, rj := g.find(i), g.find(j)
	if ri == rj {
		return
	}

	if rj < ri {
		ri, rj = rj, ri
	}

	g.parent[rj] = ri
	g.count[ri] += g.count[rj]
}

func (g *groups) size(i int) int {
	return g.count[g.find(i)]
}

// sets returns every group as sorted parameter indices, ordered by their
// first parameter.
func (g *groups) sets() [][]int {
	byRoot := map[int][]int{}

	var roots []int

	for i := range g.parent {
		r := g.find(i)
		if _, ok := byRoot[r]; !ok {
			roots = append(roots, r)
		}

		byRoot[r] = append(byRoot[r], i)
	}

	out := make([][]int, 0, len(roots))
	for _, r := range roots {
		out = append(out, byRoot[r])
	}

	return out
}
