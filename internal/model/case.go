package model

// ExprOp is the operator of a case expression node.
type ExprOp int

// Expression operators.
const (
	OpLeaf ExprOp = iota
	OpAnd
	OpOr
)

// Leaf binds chained criteria to one parameter.
type Leaf struct {
	// Path is the raw parameter binding text; empty when the case does not
	// name a parameter.
	Path string
	// TypeName is the optional type qualifier written by the author.
	TypeName string
	// Criteria are OR'ed together into one partition of the parameter.
	Criteria []Criterion
	// ErrorCase marks inputs that are expected to make the act fail.
	ErrorCase bool
	// Text is the leaf as written, used in messages.
	Text string
}

// Expr is a boolean tree over leaves. Parentheses only shape the tree.
type Expr struct {
	Op       ExprOp
	Leaf     *Leaf
	Operands []Expr
}

// LeafExpr wraps a leaf.
func LeafExpr(leaf Leaf) Expr {
	return Expr{Op: OpLeaf, Leaf: &leaf}
}

// And conjoins operands.
func And(operands ...Expr) Expr {
	return Expr{Op: OpAnd, Operands: operands}
}

// Or disjoins operands.
func Or(operands ...Expr) Expr {
	return Expr{Op: OpOr, Operands: operands}
}

// Leaves returns every leaf of the tree in source order.
func (e Expr) Leaves() []*Leaf {
	if e.Op == OpLeaf {
		if e.Leaf == nil {
			return nil
		}

		return []*Leaf{e.Leaf}
	}

	var leaves []*Leaf
	for _, op := range e.Operands {
		leaves = append(leaves, op.Leaves()...)
	}

	return leaves
}

// Case is one declared test case for a member.
type Case struct {
	Member    string
	Name      string
	Expr      Expr
	Locations []Location
}

// Location returns the primary location of the case.
func (c Case) Location() Location {
	if len(c.Locations) == 0 {
		return Location{}
	}

	return c.Locations[0]
}

// CaseSet is what a case extractor produces for a set of inputs.
type CaseSet struct {
	Members []Member
	Cases   []Case
}
