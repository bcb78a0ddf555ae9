// Package query defines a small store-independent filter expression language.
//
// Expressions are built from request parameters and translated by each document
// store into its native form. A nil Expr matches every document.
package query

// Expr is a filter expression node.
type Expr interface {
	isExpr()
}

// AndExpr matches when every operand matches.
type AndExpr struct {
	Operands []Expr
}

// OrExpr matches when at least one operand matches.
type OrExpr struct {
	Operands []Expr
}

// EqExpr matches documents whose Field equals Value.
type EqExpr struct {
	Field string
	Value any
}

// ContainsExpr matches documents whose list Field has Value as an element.
type ContainsExpr struct {
	Field string
	Value any
}

// MatchExpr matches documents whose string Field contains Substring,
// ignoring case. Substring is literal text, not a pattern.
type MatchExpr struct {
	Field     string
	Substring string
}

func (AndExpr) isExpr()      {}
func (OrExpr) isExpr()       {}
func (EqExpr) isExpr()       {}
func (ContainsExpr) isExpr() {}
func (MatchExpr) isExpr()    {}

// And combines operands with logical AND. Nil operands are dropped; zero
// remaining operands yield nil and a single one is returned unwrapped.
func And(operands ...Expr) Expr {
	return combine(operands, func(ops []Expr) Expr { return AndExpr{Operands: ops} })
}

// Or combines operands with logical OR, with the same simplification as And.
func Or(operands ...Expr) Expr {
	return combine(operands, func(ops []Expr) Expr { return OrExpr{Operands: ops} })
}

func Eq(field string, value any) Expr {
	return EqExpr{Field: field, Value: value}
}

func Contains(field string, value any) Expr {
	return ContainsExpr{Field: field, Value: value}
}

func Match(field, substring string) Expr {
	return MatchExpr{Field: field, Substring: substring}
}

// MatchAny matches when substring appears in any of fields.
func MatchAny(substring string, fields ...string) Expr {
	ops := make([]Expr, 0, len(fields))
	for _, f := range fields {
		ops = append(ops, Match(f, substring))
	}
	return OrExpr{Operands: ops}
}

func combine(operands []Expr, wrap func([]Expr) Expr) Expr {
	ops := make([]Expr, 0, len(operands))
	for _, op := range operands {
		if op != nil {
			ops = append(ops, op)
		}
	}
	switch len(ops) {
	case 0:
		return nil
	case 1:
		return ops[0]
	default:
		return wrap(ops)
	}
}
