package adapter

import (
	"errors"
	"fmt"
	"strings"

	m "github.com/mouse-blink/casecov/internal/model"
)

// ErrCaseSyntax reports a `when` expression that cannot be parsed.
var ErrCaseSyntax = errors.New("case syntax error")

const errorCaseCall = "ErrorCase()"

// caseParser reads the case expression language:
//
//	expr   = term { ("|" | "||") term }
//	term   = factor { ("&" | "&&") factor }
//	factor = "(" expr ")" | leaf
//	leaf   = [ path ":" ] [ Type "." ] ( call { "." call } | Atom ) [ ".ErrorCase()" ]
type caseParser struct {
	src       string
	pos       int
	constants map[string]string
}

func parseCaseExpr(src string, constants map[string]string) (m.Expr, error) {
	p := &caseParser{src: src, constants: constants}

	expr, err := p.parseOr()
	if err != nil {
		return m.Expr{}, err
	}

	p.skipSpace()

	if p.pos < len(p.src) {
		return m.Expr{}, p.errorf("unexpected %q", p.src[p.pos:])
	}

	return expr, nil
}

func (p *caseParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrCaseSyntax, p.pos, fmt.Sprintf(format, args...))
}

func (p *caseParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\n' || p.src[p.pos] == '\r') {
		p.pos++
	}
}

// operator consumes op, or its doubled form, when it comes next.
func (p *caseParser) operator(op byte) bool {
	p.skipSpace()

	if p.pos >= len(p.src) || p.src[p.pos] != op {
		return false
	}

	p.pos++
	if p.pos < len(p.src) && p.src[p.pos] == op {
		p.pos++
	}

	return true
}

func (p *caseParser) parseOr() (m.Expr, error) {
	first, err := p.parseAnd()
	if err != nil {
		return m.Expr{}, err
	}

	operands := []m.Expr{first}

	for p.operator('|') {
		next, err := p.parseAnd()
		if err != nil {
			return m.Expr{}, err
		}

		operands = append(operands, next)
	}

	if len(operands) == 1 {
		return first, nil
	}

	return m.Or(operands...), nil
}

func (p *caseParser) parseAnd() (m.Expr, error) {
	first, err := p.parseFactor()
	if err != nil {
		return m.Expr{}, err
	}

	operands := []m.Expr{first}

	for p.operator('&') {
		next, err := p.parseFactor()
		if err != nil {
			return m.Expr{}, err
		}

		operands = append(operands, next)
	}

	if len(operands) == 1 {
		return first, nil
	}

	return m.And(operands...), nil
}

func (p *caseParser) parseFactor() (m.Expr, error) {
	p.skipSpace()

	if p.pos >= len(p.src) {
		return m.Expr{}, p.errorf("expected a criterion")
	}

	if p.src[p.pos] == '(' {
		p.pos++

		expr, err := p.parseOr()
		if err != nil {
			return m.Expr{}, err
		}

		p.skipSpace()

		if p.pos >= len(p.src) || p.src[p.pos] != ')' {
			return m.Expr{}, p.errorf("missing closing parenthesis")
		}

		p.pos++

		return expr, nil
	}

	start := p.pos
	text := p.scanLeaf()

	leaf, err := parseLeaf(text, p.constants)
	if err != nil {
		p.pos = start
		return m.Expr{}, p.errorf("%v", err)
	}

	return m.LeafExpr(leaf), nil
}

// scanLeaf consumes text up to the next operator or closing parenthesis
// outside of call arguments.
func (p *caseParser) scanLeaf() string {
	start, depth := p.pos, 0

	for ; p.pos < len(p.src); p.pos++ {
		switch c := p.src[p.pos]; {
		case c == '"':
			p.pos = skipString(p.src, p.pos)
		case c == '(':
			depth++
		case c == ')' && depth == 0:
			return strings.TrimSpace(p.src[start:p.pos])
		case c == ')':
			depth--
		case (c == '&' || c == '|') && depth == 0:
			return strings.TrimSpace(p.src[start:p.pos])
		}
	}

	return strings.TrimSpace(p.src[start:])
}

func skipString(s string, i int) int {
	for i++; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}

	return len(s) - 1
}

// splitTopLevel splits s on sep outside parentheses and string literals.
func splitTopLevel(s string, sep byte) []string {
	var parts []string

	depth, start := 0, 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			i = skipString(s, i)
		case '(':
			depth++
		case ')':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}

	return append(parts, s[start:])
}

func parseLeaf(text string, constants map[string]string) (m.Leaf, error) {
	leaf := m.Leaf{Text: text}

	if text == "" {
		return leaf, errors.New("expected a criterion")
	}

	body := text
	if parts := splitTopLevel(text, ':'); len(parts) == 2 {
		leaf.Path = strings.TrimSpace(parts[0])
		body = strings.TrimSpace(parts[1])
	} else if len(parts) > 2 {
		return leaf, fmt.Errorf("%q binds more than one parameter", text)
	}

	segments := splitTopLevel(body, '.')
	for i := range segments {
		segments[i] = strings.TrimSpace(segments[i])
	}

	if n := len(segments); n > 1 && segments[n-1] == errorCaseCall {
		leaf.ErrorCase = true
		segments = segments[:n-1]
	}

	firstCall := len(segments)

	for i, seg := range segments {
		if strings.Contains(seg, "(") {
			firstCall = i
			break
		}
	}

	if firstCall == len(segments) {
		n := len(segments)
		if segments[n-1] == "" {
			return leaf, fmt.Errorf("%q has an empty criterion", text)
		}

		leaf.TypeName = strings.Join(segments[:n-1], ".")
		leaf.Criteria = []m.Criterion{m.AtomicOf(segments[n-1])}

		return leaf, nil
	}

	leaf.TypeName = strings.Join(segments[:firstCall], ".")

	for _, seg := range segments[firstCall:] {
		c, err := parseCall(seg, constants)
		if err != nil {
			return leaf, err
		}

		leaf.Criteria = append(leaf.Criteria, c)
	}

	return leaf, nil
}

func parseCall(seg string, constants map[string]string) (m.Criterion, error) {
	open := strings.IndexByte(seg, '(')
	if open <= 0 || !strings.HasSuffix(seg, ")") {
		return m.Criterion{}, fmt.Errorf("%q is not a criterion call", seg)
	}

	name := strings.TrimSpace(seg[:open])
	inner := strings.TrimSpace(seg[open+1 : len(seg)-1])

	var args []string

	if inner != "" {
		for _, a := range splitTopLevel(inner, ',') {
			args = append(args, strings.TrimSpace(a))
		}
	}

	bound := func(text string) m.Bound {
		return m.Bound{Text: text, Value: constants[text]}
	}

	expect := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("criterion %s expects %d argument(s), got %d", name, n, len(args))
		}

		return nil
	}

	switch name {
	case "Value":
		if err := expect(1); err != nil {
			return m.Criterion{}, err
		}

		return m.Criterion{Kind: m.CriterionValue, Values: []m.Bound{bound(args[0])}}, nil
	case "Values":
		if len(args) == 0 {
			return m.Criterion{}, errors.New("criterion Values expects at least one argument")
		}

		c := m.Criterion{Kind: m.CriterionValues}
		for _, a := range args {
			c.Values = append(c.Values, bound(a))
		}

		return c, nil
	case "Range":
		return parseRange(args, bound)
	case "Above", "AboveOrEqual":
		if err := expect(1); err != nil {
			return m.Criterion{}, err
		}

		return m.Criterion{Kind: m.CriterionRange, Lo: bound(args[0]), LoInclusive: name == "AboveOrEqual", HiInclusive: true}, nil
	case "Below", "BelowOrEqual":
		if err := expect(1); err != nil {
			return m.Criterion{}, err
		}

		return m.Criterion{Kind: m.CriterionRange, Hi: bound(args[0]), LoInclusive: true, HiInclusive: name == "BelowOrEqual"}, nil
	}

	return m.Criterion{}, fmt.Errorf("unknown criterion %s", name)
}

func parseRange(args []string, bound func(string) m.Bound) (m.Criterion, error) {
	switch len(args) {
	case 2:
		return m.Criterion{
			Kind: m.CriterionRange, Lo: bound(args[0]), Hi: bound(args[1]),
			LoInclusive: true, HiInclusive: true,
		}, nil
	case 4:
		loInclusive, err := parseFlag(args[1])
		if err != nil {
			return m.Criterion{}, err
		}

		hiInclusive, err := parseFlag(args[3])
		if err != nil {
			return m.Criterion{}, err
		}

		return m.Criterion{
			Kind: m.CriterionRange, Lo: bound(args[0]), Hi: bound(args[2]),
			LoInclusive: loInclusive, HiInclusive: hiInclusive,
		}, nil
	}

	return m.Criterion{}, fmt.Errorf("criterion Range expects 2 or 4 arguments, got %d", len(args))
}

func parseFlag(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}

	return false, fmt.Errorf("%q is not true or false", s)
}
