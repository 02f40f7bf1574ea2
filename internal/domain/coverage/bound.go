package coverage

import (
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"

	m "github.com/mouse-blink/casecov/internal/model"
)

// unknownMarker replaces bounds whose value could not be resolved.
const unknownMarker = "?"

// ticksPerSecond is the DateTime resolution.
const ticksPerSecond = 10_000_000

// unixSecondsAtYearOne is the Unix time of 0001-01-01T00:00:00Z.
const unixSecondsAtYearOne = -62135596800

var (
	dateCreationRe = regexp.MustCompile(`^new\s+(?:System\.)?DateTime\s*\((.*)\)$`)
	memberAccessRe = regexp.MustCompile(`^[A-Za-z_]\w*(\.[A-Za-z_]\w*)+$`)
)

type boundEnd int

const (
	lowerEnd boundEnd = iota
	upperEnd
	pointEnd
)

// resolvedBound is a bound whose position on the axis is known, or a
// symbolic bound whose position must be inferred from its neighbours.
type resolvedBound struct {
	text  string
	value *big.Rat
	// named bounds render by name and are never shifted by one unit.
	named bool
	// code classifies an unknown bound that cannot be placed.
	code m.Code
}

func (b resolvedBound) unknown() bool {
	return b.value == nil
}

// resolver turns author bound text into axis values for one domain.
type resolver struct {
	domain   m.Domain
	min, max *big.Rat
}

func newResolver(d m.Domain) (resolver, error) {
	r := resolver{domain: d}

	minV, ok := r.literal(d.MinValue)
	if !ok {
		return r, fmt.Errorf("domain %s: unresolvable minimum %q", d.TypeName, d.MinValue)
	}

	maxV, ok := r.literal(d.MaxValue)
	if !ok {
		return r, fmt.Errorf("domain %s: unresolvable maximum %q", d.TypeName, d.MaxValue)
	}

	if minV.Cmp(maxV) > 0 {
		return r, fmt.Errorf("domain %s: minimum above maximum", d.TypeName)
	}

	r.min, r.max = minV, maxV

	return r, nil
}

func (r resolver) minBound() resolvedBound {
	return resolvedBound{text: r.minText(), value: r.min, named: true}
}

func (r resolver) maxBound() resolvedBound {
	return resolvedBound{text: r.maxText(), value: r.max, named: true}
}

func (r resolver) minText() string {
	if r.domain.MinText != "" {
		return r.domain.MinText
	}

	return r.domain.MinValue
}

func (r resolver) maxText() string {
	if r.domain.MaxText != "" {
		return r.domain.MaxText
	}

	return r.domain.MaxValue
}

func (r resolver) resolve(b m.Bound, end boundEnd) resolvedBound {
	text := strings.TrimSpace(b.Text)

	switch {
	case text == "" && end == lowerEnd:
		return r.minBound()
	case text == "" && end == upperEnd:
		return r.maxBound()
	case text != "" && text == r.domain.MinText:
		return r.minBound()
	case text != "" && text == r.domain.MaxText:
		return r.maxBound()
	}

	if b.Value != "" {
		if v, ok := r.literal(b.Value); ok {
			return resolvedBound{text: text, value: v, named: true}
		}
	}

	if v, ok := r.literal(text); ok {
		return resolvedBound{text: text, value: v}
	}

	return resolvedBound{text: text, code: r.failureCode(text)}
}

func (r resolver) failureCode(text string) m.Code {
	switch {
	case r.domain.Ordered == m.OrderedDateTime:
		return m.CodeNotADateCreation
	case memberAccessRe.MatchString(text):
		return m.CodeNotAConstantPropertyField
	default:
		return m.CodeNotAConstant
	}
}

func (r resolver) literal(text string) (*big.Rat, bool) {
	switch r.domain.Ordered {
	case m.OrderedDateTime:
		return parseDateCreation(text)
	case m.OrderedInteger:
		v, ok := parseNumber(text)
		if !ok || !v.IsInt() {
			return nil, false
		}

		return v, true
	default:
		return parseNumber(text)
	}
}

// clamp keeps a resolved bound inside the domain.
func (r resolver) clamp(b resolvedBound) resolvedBound {
	if b.unknown() {
		return b
	}

	if b.value.Cmp(r.min) < 0 {
		return r.minBound()
	}

	if b.value.Cmp(r.max) > 0 {
		return r.maxBound()
	}

	return b
}

// parseNumber accepts C-family numeric literals: sign, digit separators,
// hexadecimal and type suffixes.
func parseNumber(text string) (*big.Rat, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(text), "_", "")
	if s == "" || strings.Contains(s, "/") {
		return nil, false
	}

	neg := false

	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	lower := strings.ToLower(s)

	if strings.HasPrefix(lower, "0x") {
		digits := strings.TrimRight(lower[2:], "ul")

		n, ok := new(big.Int).SetString(digits, 16)
		if !ok {
			return nil, false
		}

		if neg {
			n.Neg(n)
		}

		return new(big.Rat).SetInt(n), true
	}

	lower = strings.TrimRight(lower, "ulfdm")
	if lower == "" || !isDigit(lower[0]) && lower[0] != '.' {
		return nil, false
	}

	v, ok := new(big.Rat).SetString(lower)
	if !ok {
		return nil, false
	}

	if neg {
		v.Neg(v)
	}

	return v, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// parseDateCreation resolves `new DateTime(y, m, d[, h, mi, s])` with
// constant integer arguments to ticks since 0001-01-01.
func parseDateCreation(text string) (*big.Rat, bool) {
	match := dateCreationRe.FindStringSubmatch(strings.TrimSpace(text))
	if match == nil {
		return nil, false
	}

	parts := strings.Split(match[1], ",")
	if len(parts) != 3 && len(parts) != 6 {
		return nil, false
	}

	fields := make([]int, 6)

	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, false
		}

		fields[i] = n
	}

	t := time.Date(fields[0], time.Month(fields[1]), fields[2], fields[3], fields[4], fields[5], 0, time.UTC)
	if t.Year() != fields[0] || int(t.Month()) != fields[1] || t.Day() != fields[2] ||
		t.Hour() != fields[3] || t.Minute() != fields[4] || t.Second() != fields[5] {
		return nil, false
	}

	ticks := new(big.Int).SetInt64(t.Unix() - unixSecondsAtYearOne)
	ticks.Mul(ticks, big.NewInt(ticksPerSecond))

	return new(big.Rat).SetInt(ticks), true
}

// formatInteger renders a computed integer value.
func formatInteger(v *big.Rat) string {
	return v.Num().String()
}
