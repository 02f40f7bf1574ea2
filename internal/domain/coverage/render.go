package coverage

import (
	"strings"
)

// dimension is the canonical partition of one parameter.
type dimension interface {
	size() int
	// chunks splits a set into the units reported one by one for an
	// independent parameter.
	chunks(s atomSet) []atomSet
	// render writes a set as chained criteria, type prefix included.
	render(s atomSet) string
	// whole renders the entire domain as one chunk.
	whole() string
}

func qualify(typeName, criterion string) string {
	if typeName == "" {
		return criterion
	}

	return typeName + "." + criterion
}

func call(name string, args ...string) string {
	return name + "(" + strings.Join(args, ", ") + ")"
}

func boolText(b bool) string {
	if b {
		return "true"
	}

	return "false"
}

// missingBox is one uncovered region: the constrained parameters in
// declaration order with their uncovered partitions.
type missingBox struct {
	params []int
	sets   []atomSet
}

func compareMissing(a, b missingBox) int {
	if len(a.params) != len(b.params) {
		return len(a.params) - len(b.params)
	}

	for i := range a.params {
		if a.params[i] != b.params[i] {
			return a.params[i] - b.params[i]
		}
	}

	for i := range a.sets {
		if c := a.sets[i].compare(b.sets[i]); c != 0 {
			return c
		}
	}

	return 0
}

// renderer turns uncovered regions into diagnostic terms.
type renderer struct {
	names     []string
	dims      []dimension
	qualified bool
}

func (r renderer) term(param int, text string) string {
	if !r.qualified {
		return text
	}

	return r.names[param] + ":" + text
}

func (r renderer) box(b missingBox) string {
	parts := make([]string, 0, len(b.params))

	for i, p := range b.params {
		parts = append(parts, r.term(p, r.dims[p].render(b.sets[i])))
	}

	return strings.Join(parts, " & ")
}

// joinTerms builds the MissingCases message.
func joinTerms(terms []string) string {
	return strings.Join(terms, " and ")
}
