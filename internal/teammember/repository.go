package teammember

import (
	"context"

	"github.com/kazz187/portfolio/pkg/query"
)

type Repository interface {
	Create(ctx context.Context, m *TeamMember) error
	Get(ctx context.Context, slug string) (*TeamMember, error)
	List(ctx context.Context, filter query.Expr) ([]*TeamMember, error)
	Count(ctx context.Context) (int64, error)
	// SetProjects replaces the project slugs of the member with the given slug.
	SetProjects(ctx context.Context, slug string, projects []string) error
	EnsureIndexes(ctx context.Context) error
}
