package model

// Bound is one end of a declared range.
type Bound struct {
	// Text is the bound as the author wrote it. Empty means the domain end.
	Text string
	// Value is the resolved literal of a named constant, readonly field or
	// property, when the extractor could resolve it.
	Value string
}

// CriterionKind tags the variant held by a Criterion.
type CriterionKind int

// Criterion variants.
const (
	CriterionValue CriterionKind = iota
	CriterionRange
	CriterionValues
	CriterionAtomic
)

func (k CriterionKind) String() string {
	switch k {
	case CriterionValue:
		return "Value"
	case CriterionRange:
		return "Range"
	case CriterionValues:
		return "Values"
	case CriterionAtomic:
		return "Atomic"
	}

	return "Unknown"
}

// Criterion is a single declared constraint on one parameter.
type Criterion struct {
	Kind CriterionKind

	Lo, Hi                   Bound
	LoInclusive, HiInclusive bool

	// Values holds the point of Value and the members of Values.
	Values []Bound

	// Name is the predicate of an Atomic criterion.
	Name string
}

// ValueOf builds a Value criterion.
func ValueOf(v string) Criterion {
	return Criterion{Kind: CriterionValue, Values: []Bound{{Text: v}}}
}

// RangeOf builds a Range criterion.
func RangeOf(lo string, loInclusive bool, hi string, hiInclusive bool) Criterion {
	return Criterion{
		Kind:        CriterionRange,
		Lo:          Bound{Text: lo},
		Hi:          Bound{Text: hi},
		LoInclusive: loInclusive,
		HiInclusive: hiInclusive,
	}
}

// ValuesOf builds a Values criterion.
func ValuesOf(vs ...string) Criterion {
	bounds := make([]Bound, 0, len(vs))
	for _, v := range vs {
		bounds = append(bounds, Bound{Text: v})
	}

	return Criterion{Kind: CriterionValues, Values: bounds}
}

// AtomicOf builds an Atomic criterion.
func AtomicOf(name string) Criterion {
	return Criterion{Kind: CriterionAtomic, Name: name}
}
