package coverage

import (
	"sort"
	"strings"
)

// setDimension is the universe of a discrete or opaque parameter: declared
// members first, then members only seen in criteria, sorted.
type setDimension struct {
	typeName string
	opaque   bool
	names    []string
	index    map[string]int
}

func newSetDimension(typeName string, opaque bool, declared, observed []string) *setDimension {
	d := &setDimension{typeName: typeName, opaque: opaque, index: map[string]int{}}

	for _, name := range declared {
		d.addName(name)
	}

	extra := make([]string, 0, len(observed))

	for _, name := range observed {
		if _, ok := d.index[name]; !ok {
			extra = append(extra, name)
		}
	}

	sort.Strings(extra)

	for _, name := range extra {
		d.addName(name)
	}

	return d
}

func (d *setDimension) addName(name string) {
	if _, ok := d.index[name]; ok {
		return
	}

	d.index[name] = len(d.names)
	d.names = append(d.names, name)
}

func (d *setDimension) size() int {
	return len(d.names)
}

func (d *setDimension) cover(names []string) atomSet {
	s := newAtomSet(d.size())

	for _, name := range names {
		if i, ok := d.index[name]; ok {
			s.add(i)
		}
	}

	return s
}

func (d *setDimension) chunks(s atomSet) []atomSet {
	idx := s.indices()
	out := make([]atomSet, 0, len(idx))

	for _, i := range idx {
		c := newAtomSet(d.size())
		c.add(i)
		out = append(out, c)
	}

	return out
}

func (d *setDimension) render(s atomSet) string {
	idx := s.indices()
	names := make([]string, 0, len(idx))

	for _, i := range idx {
		names = append(names, d.names[i])
	}

	if !d.opaque {
		if len(names) == 1 {
			return qualify(d.typeName, call("Value", names[0]))
		}

		return qualify(d.typeName, call("Values", names...))
	}

	if len(names) == 1 {
		return qualify(d.typeName, names[0])
	}

	for i, name := range names {
		names[i] = qualify(d.typeName, name)
	}

	return "(" + strings.Join(names, " | ") + ")"
}

func (d *setDimension) whole() string {
	return d.render(fullAtomSet(d.size()))
}
