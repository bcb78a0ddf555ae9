package query

import (
	"fmt"
	"reflect"
	"strings"
)

// Matches evaluates expr against a decoded document. Missing fields never
// match a leaf node.
func Matches(expr Expr, doc map[string]any) bool {
	switch e := expr.(type) {
	case nil:
		return true
	case AndExpr:
		for _, op := range e.Operands {
			if !Matches(op, doc) {
				return false
			}
		}
		return true
	case OrExpr:
		for _, op := range e.Operands {
			if Matches(op, doc) {
				return true
			}
		}
		return false
	case EqExpr:
		v, ok := doc[e.Field]
		return ok && equal(v, e.Value)
	case ContainsExpr:
		v, ok := doc[e.Field]
		if !ok {
			return false
		}
		list, ok := v.([]any)
		if !ok {
			// A scalar field behaves like a one-element list.
			return equal(v, e.Value)
		}
		for _, item := range list {
			if equal(item, e.Value) {
				return true
			}
		}
		return false
	case MatchExpr:
		s, ok := doc[e.Field].(string)
		return ok && strings.Contains(strings.ToLower(s), strings.ToLower(e.Substring))
	default:
		panic(fmt.Sprintf("query: unknown expression %T", expr))
	}
}

func equal(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
