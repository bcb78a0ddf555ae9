package project

import (
	"context"

	"github.com/kazz187/portfolio/pkg/query"
)

type Repository interface {
	Create(ctx context.Context, p *Project) error
	Get(ctx context.Context, slug string) (*Project, error)
	List(ctx context.Context, filter query.Expr) ([]*Project, error)
	Count(ctx context.Context) (int64, error)
	EnsureIndexes(ctx context.Context) error
}
