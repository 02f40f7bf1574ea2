package coverage

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/casecov/internal/model"
)

func TestOrderedAxis_MissingChunksComplementDeclared(t *testing.T) {
	tests := []struct {
		name     string
		typeName string
		criteria []m.Criterion
	}{
		{"int nothing declared", "int", nil},
		{"int interior gap", "int", []m.Criterion{below("0"), above("10")}},
		{
			"int half open ranges and points",
			"int",
			[]m.Criterion{m.RangeOf("0", true, "10", false), m.ValueOf("10"), m.ValueOf("12")},
		},
		{
			"int exclusive ends",
			"int",
			[]m.Criterion{
				m.RangeOf("int.MinValue", false, "-5", true),
				m.RangeOf("-3", false, "4", false),
				m.ValuesOf("4", "5"),
			},
		},
		{"int clamped literal", "int", []m.Criterion{m.RangeOf("-99999999999", true, "0", true)}},
		{"int overlapping ranges", "int", []m.Criterion{m.RangeOf("-7", true, "3", true), m.RangeOf("1", false, "9", true)}},
		{"double point gap", "double", []m.Criterion{below("0"), above("0")}},
		{
			"double touching ranges",
			"double",
			[]m.Criterion{m.RangeOf("-1.5", true, "2.25", false), aboveOrEqual("2.25"), belowOrEqual("-10")},
		},
		{"double open after a point", "double", []m.Criterion{m.ValueOf("0"), m.RangeOf("0", false, "1", true)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			p := builtin(t, "value", tt.typeName)
			res, err := newResolver(p.Domain)
			require.NoError(t, err)

			var spans []span

			for _, c := range tt.criteria {
				sp, cerr := orderedSpans(p, &res, c)
				require.Nil(t, cerr)

				spans = append(spans, sp...)
			}

			// Act
			ax := newOrderedAxis(res, spans, computeAnchors(res, spans))

			declared := newAtomSet(ax.size())
			for _, sp := range spans {
				declared = declared.union(ax.cover(res, sp))
			}

			full := fullAtomSet(ax.size())
			chunks := ax.chunks(full.minus(declared))

			// Assert
			missing := newAtomSet(ax.size())

			for _, c := range chunks {
				assert.True(t, missing.intersect(c).empty(), "chunks overlap")

				missing = missing.union(c)
			}

			assert.Equal(t, full, declared.union(missing))
			assert.True(t, declared.intersect(missing).empty())

			for _, v := range sampleValues(ax, res) {
				inDeclared := false

				for _, sp := range spans {
					if spanContains(sp, v) {
						inDeclared = true
						break
					}
				}

				inMissing := 0

				for _, c := range chunks {
					if chunkContains(ax, ax.chunkOf(c.runs()[0]), v) {
						inMissing++
					}
				}

				assert.LessOrEqual(t, inMissing, 1, "value %s is in several missing chunks", v.RatString())
				assert.NotEqual(t, inDeclared, inMissing == 1, "value %s", v.RatString())
			}
		})
	}
}

// sampleValues returns every axis point, its integer neighbours and the
// midpoints between consecutive points, restricted to the domain.
func sampleValues(ax *orderedAxis, res resolver) []*big.Rat {
	one := big.NewRat(1, 1)

	var out []*big.Rat

	add := func(v *big.Rat) {
		if v.Cmp(res.min) >= 0 && v.Cmp(res.max) <= 0 {
			out = append(out, v)
		}
	}

	for k, pt := range ax.points {
		v := pt.pos.value
		add(v)
		add(new(big.Rat).Sub(v, one))
		add(new(big.Rat).Add(v, one))

		if k+1 < len(ax.points) {
			mid := new(big.Rat).Add(v, ax.points[k+1].pos.value)
			mid.Quo(mid, big.NewRat(2, 1))

			if !ax.integer || mid.IsInt() {
				add(mid)
			}
		}
	}

	return out
}

func spanContains(sp span, v *big.Rat) bool {
	return within(sp.lo.value, v, sp.loInclusive) && within(v, sp.hi.value, sp.hiInclusive)
}

func chunkContains(ax *orderedAxis, c orderedChunk, v *big.Rat) bool {
	lo, hi := ax.points[c.lo].pos.value, ax.points[c.hi].pos.value

	return within(lo, v, c.loInclusive) && within(v, hi, c.hiInclusive)
}

func within(a, b *big.Rat, inclusive bool) bool {
	c := a.Cmp(b)

	return c < 0 || (c == 0 && inclusive)
}

func TestAnchors_Inverted(t *testing.T) {
	lo := resolvedBound{text: "B"}
	hi := resolvedBound{text: "A"}
	anc := anchors{
		"A": {value: big.NewRat(0, 1), offset: 1},
		"B": {value: big.NewRat(10, 1), offset: -1},
	}

	b, ok := anc.inverted(span{lo: lo, hi: hi})
	require.True(t, ok)
	assert.Equal(t, "B", b.text)

	_, ok = anc.inverted(span{lo: hi, hi: lo})
	assert.False(t, ok)

	_, ok = anc.inverted(span{lo: lo, hi: resolvedBound{text: "5", value: big.NewRat(5, 1)}})
	assert.False(t, ok)
}
