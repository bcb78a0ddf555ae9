package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	doc := map[string]any{
		"title":        "API Atlas",
		"description":  "A developer Dashboard for exploring public APIs.",
		"category":     "Tool",
		"technologies": []any{"FastAPI", "MongoDB", "Vite"},
	}

	tests := []struct {
		name string
		expr Expr
		want bool
	}{
		{name: "nil matches all", expr: nil, want: true},
		{name: "eq hit", expr: Eq("category", "Tool"), want: true},
		{name: "eq is exact", expr: Eq("category", "Too"), want: false},
		{name: "eq missing field", expr: Eq("timeline", "2023"), want: false},
		{name: "contains hit", expr: Contains("technologies", "Vite"), want: true},
		{name: "contains is not substring", expr: Contains("technologies", "Fast"), want: false},
		{name: "contains on scalar", expr: Contains("category", "Tool"), want: true},
		{name: "match ignores case", expr: Match("description", "dashboard"), want: true},
		{name: "match miss", expr: Match("title", "nova"), want: false},
		{name: "match non-string", expr: Match("technologies", "Vite"), want: false},
		{name: "match treats pattern literally", expr: Match("title", "A.I"), want: false},
		{
			name: "or",
			expr: MatchAny("atlas", "title", "description"),
			want: true,
		},
		{
			name: "and both",
			expr: And(MatchAny("dashboard", "title", "description"), Eq("category", "Tool")),
			want: true,
		},
		{
			name: "and one fails",
			expr: And(MatchAny("dashboard", "title", "description"), Eq("category", "Web")),
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.expr, doc))
		})
	}
}

func TestAndOrSimplify(t *testing.T) {
	assert.Nil(t, And())
	assert.Nil(t, And(nil, nil))
	assert.Nil(t, Or(nil))

	eq := Eq("category", "Web")
	assert.Equal(t, eq, And(nil, eq))
	assert.Equal(t, eq, Or(eq, nil))

	got := And(eq, Contains("skills", "Go"))
	and, ok := got.(AndExpr)
	assert.True(t, ok)
	assert.Len(t, and.Operands, 2)
}
