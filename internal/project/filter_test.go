package project

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kazz187/portfolio/pkg/query"
)

func TestNewFilter(t *testing.T) {
	text := query.OrExpr{Operands: []query.Expr{
		query.Match("title", "nova"),
		query.Match("description", "nova"),
	}}

	tests := []struct {
		name   string
		params FilterParams
		want   query.Expr
	}{
		{"none", FilterParams{}, nil},
		{"q", FilterParams{Q: "nova"}, text},
		{"tech", FilterParams{Tech: "React"}, query.Contains("technologies", "React")},
		{"category", FilterParams{Category: "Web"}, query.Eq("category", "Web")},
		{
			"all",
			FilterParams{Q: "nova", Tech: "React", Category: "Web"},
			query.AndExpr{Operands: []query.Expr{
				text,
				query.Contains("technologies", "React"),
				query.Eq("category", "Web"),
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewFilter(tt.params))
		})
	}
}
