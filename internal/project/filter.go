package project

import "github.com/kazz187/portfolio/pkg/query"

// FilterParams are the optional list parameters. Empty strings are absent.
type FilterParams struct {
	Q        string
	Tech     string
	Category string
}

var textFields = []string{"title", "description"}

// NewFilter builds the list filter: q matches title or description ignoring
// case, tech must be one of the technologies, category must be equal.
func NewFilter(p FilterParams) query.Expr {
	var text, tech, category query.Expr
	if p.Q != "" {
		text = query.MatchAny(p.Q, textFields...)
	}
	if p.Tech != "" {
		tech = query.Contains("technologies", p.Tech)
	}
	if p.Category != "" {
		category = query.Eq("category", p.Category)
	}
	return query.And(text, tech, category)
}
