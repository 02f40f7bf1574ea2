package coverage

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	m "github.com/mouse-blink/casecov/internal/model"
)

var parameterPathRe = regexp.MustCompile(`^[A-Za-z_]\w*(\.[A-Za-z_]\w*)*$`)

// caseError is a structural failure that excludes one case from coverage.
type caseError struct {
	code    m.Code
	message string
	// poisons marks the parameter whose coverage can no longer be trusted.
	poisons bool
}

func (e *caseError) Error() string {
	return string(e.code) + ": " + e.message
}

func failf(code m.Code, format string, args ...any) *caseError {
	return &caseError{code: code, message: fmt.Sprintf(format, args...)}
}

// boundLeaf is a leaf attached to its parameter with its criteria
// normalized for the parameter's domain.
type boundLeaf struct {
	leaf  *m.Leaf
	param int
	spans []span
	names []string
}

// bindLeaf resolves which parameter a leaf constrains.
func bindLeaf(member m.Member, params []m.Parameter, leaf *m.Leaf) (int, *caseError) {
	path := strings.TrimSpace(leaf.Path)

	var idx int

	switch {
	case path == "" && len(params) == 1:
		idx = 0
	case path == "":
		return 0, failf(m.CodeMissingParameterCase,
			"%q does not name a parameter of %s; expected one of %s",
			leaf.Text, member.Signature, strings.Join(parameterNames(params), ", "))
	case !parameterPathRe.MatchString(path):
		return 0, failf(m.CodeWrongParameterPath,
			"%q is not a parameter or a parameter path", path)
	default:
		idx = -1

		for i, p := range params {
			if p.Name == path {
				idx = i
				break
			}
		}

		if idx < 0 {
			return 0, failf(m.CodeWrongParameterName,
				"%q is not a parameter of %s", path, member.Signature)
		}
	}

	p := params[idx]
	if leaf.TypeName != "" && p.Domain.TypeName != "" && leaf.TypeName != p.Domain.TypeName {
		return 0, failf(m.CodeWrongParameterType,
			"%s does not match parameter %s of type %s", leaf.TypeName, displayName(p), p.Domain.TypeName)
	}

	return idx, nil
}

func parameterNames(params []m.Parameter) []string {
	names := make([]string, 0, len(params))
	for _, p := range params {
		names = append(names, p.Name)
	}

	return names
}

func displayName(p m.Parameter) string {
	if p.Name == "" {
		return "<implicit>"
	}

	return p.Name
}

// normalizeLeaf checks that every criterion of the leaf belongs to the
// parameter's domain and resolves ordered bounds.
func normalizeLeaf(p m.Parameter, res *resolver, leaf *m.Leaf) (boundLeaf, *caseError) {
	bl := boundLeaf{leaf: leaf}

	if p.Domain.Kind == m.DomainOrdered && res == nil {
		return bl, failf(m.CodeNotAConstant, "the domain of parameter %s has no resolvable bounds", displayName(p))
	}

	for _, c := range leaf.Criteria {
		switch p.Domain.Kind {
		case m.DomainOrdered:
			spans, err := orderedSpans(p, res, c)
			if err != nil {
				return bl, err
			}

			bl.spans = append(bl.spans, spans...)
		case m.DomainDiscrete:
			names, err := discreteNames(p, c)
			if err != nil {
				return bl, err
			}

			bl.names = append(bl.names, names...)
		case m.DomainOpaque:
			if c.Kind != m.CriterionAtomic {
				return bl, wrongKind(p, c)
			}

			bl.names = append(bl.names, memberName(p.Domain.TypeName, c.Name))
		}
	}

	return bl, nil
}

// discreteNames lists the members a criterion names. A declared
// enumeration is closed, so other names are rejected.
func discreteNames(p m.Parameter, c m.Criterion) ([]string, *caseError) {
	var names []string

	switch c.Kind {
	case m.CriterionValue, m.CriterionValues:
		for _, v := range c.Values {
			names = append(names, memberName(p.Domain.TypeName, v.Text))
		}
	case m.CriterionAtomic:
		names = append(names, memberName(p.Domain.TypeName, c.Name))
	default:
		return nil, wrongKind(p, c)
	}

	if len(p.Domain.Values) == 0 {
		return names, nil
	}

	for _, name := range names {
		if !slices.Contains(p.Domain.Values, name) {
			return nil, failf(m.CodeWrongParameterType,
				"%s is not a member of %s, the type of parameter %s", name, p.Domain.TypeName, displayName(p))
		}
	}

	return names, nil
}

// memberName strips the type qualifier from `Color.Red`.
func memberName(typeName, text string) string {
	text = strings.TrimSpace(text)
	if typeName != "" {
		return strings.TrimPrefix(text, typeName+".")
	}

	return text
}

func wrongKind(p m.Parameter, c m.Criterion) *caseError {
	return failf(m.CodeWrongParameterType,
		"%s criterion does not apply to parameter %s of %s domain", c.Kind, displayName(p), p.Domain.Kind)
}

func orderedSpans(p m.Parameter, res *resolver, c m.Criterion) ([]span, *caseError) {
	switch c.Kind {
	case m.CriterionValue, m.CriterionValues:
		spans := make([]span, 0, len(c.Values))

		for _, v := range c.Values {
			b := res.resolve(v, pointEnd)
			sp := span{lo: b, hi: b, loInclusive: true, hiInclusive: true}

			if outside(*res, sp) {
				return nil, outsideDomain(p, b.text)
			}

			spans = append(spans, sp)
		}

		return spans, nil
	case m.CriterionRange:
		lo, hi := res.resolve(c.Lo, lowerEnd), res.resolve(c.Hi, upperEnd)
		if !lo.unknown() && !hi.unknown() && lo.value.Cmp(hi.value) > 0 {
			err := failf(m.CodeMinShouldBeLessThanMax, "min %s should be less than max %s", lo.text, hi.text)
			err.poisons = true

			return nil, err
		}

		sp := span{lo: lo, hi: hi, loInclusive: c.LoInclusive, hiInclusive: c.HiInclusive}
		if outside(*res, sp) {
			return nil, outsideDomain(p, "Range("+lo.text+", "+hi.text+")")
		}

		return []span{sp}, nil
	default:
		return nil, wrongKind(p, c)
	}
}

func outsideDomain(p m.Parameter, text string) *caseError {
	return failf(m.CodeWrongParameterType,
		"%s lies outside the %s domain of parameter %s", text, p.Domain.TypeName, displayName(p))
}

// constraint is one conjunction of a case: a partition per constrained
// parameter, nil for parameters left free.
type constraint []atomSet

func (c constraint) params() []int {
	var ps []int

	for i, s := range c {
		if s.words != nil {
			ps = append(ps, i)
		}
	}

	return ps
}

// evaluator converts case expressions to disjunctive normal form.
type evaluator struct {
	params int
	leaves map[*m.Leaf]leafCover
}

type leafCover struct {
	param int
	set   atomSet
}

func (e evaluator) eval(expr m.Expr) []constraint {
	switch expr.Op {
	case m.OpLeaf:
		if expr.Leaf == nil {
			return nil
		}

		lc, ok := e.leaves[expr.Leaf]
		if !ok || lc.set.empty() {
			return nil
		}

		c := make(constraint, e.params)
		c[lc.param] = lc.set

		return []constraint{c}
	case m.OpOr:
		var out []constraint
		for _, op := range expr.Operands {
			out = append(out, e.eval(op)...)
		}

		return out
	case m.OpAnd:
		if len(expr.Operands) == 0 {
			return nil
		}

		acc := []constraint{make(constraint, e.params)}

		for _, op := range expr.Operands {
			acc = conjoin(acc, e.eval(op))
			if len(acc) == 0 {
				return nil
			}
		}

		return acc
	}

	return nil
}

// conjoin distributes AND over the alternatives of both sides, dropping
// conjunctions that leave a parameter with no value.
func conjoin(left, right []constraint) []constraint {
	var out []constraint

	for _, l := range left {
	next:
		for _, r := range right {
			c := make(constraint, len(l))

			for i := range l {
				switch {
				case l[i].words == nil:
					c[i] = r[i]
				case r[i].words == nil:
					c[i] = l[i]
				default:
					c[i] = l[i].intersect(r[i])
					if c[i].empty() {
						continue next
					}
				}
			}

			out = append(out, c)
		}
	}

	return out
}
