package teammember

import "github.com/kazz187/portfolio/pkg/query"

// FilterParams are the optional list parameters. Empty strings are absent.
type FilterParams struct {
	Q     string
	Skill string
}

var textFields = []string{"name", "bio", "role"}

// NewFilter builds the list filter: q matches name, bio or role ignoring
// case, skill must be one of the skills.
func NewFilter(p FilterParams) query.Expr {
	var text, skill query.Expr
	if p.Q != "" {
		text = query.MatchAny(p.Q, textFields...)
	}
	if p.Skill != "" {
		skill = query.Contains("skills", p.Skill)
	}
	return query.And(text, skill)
}
