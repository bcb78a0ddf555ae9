package repositoryimpl

import (
	"context"

	"github.com/kazz187/portfolio/internal/project"
	"github.com/kazz187/portfolio/pkg/cerr"
	"github.com/kazz187/portfolio/pkg/docstore"
	"github.com/kazz187/portfolio/pkg/query"
)

const collectionName = "project"

type DocstoreRepository struct {
	store *docstore.Handle
}

func NewDocstoreRepository(store *docstore.Handle) *DocstoreRepository {
	return &DocstoreRepository{store: store}
}

func (r *DocstoreRepository) Create(ctx context.Context, p *project.Project) error {
	coll, err := r.store.Collection(collectionName)
	if err != nil {
		return cerr.WrapStoreWriteError("project", err)
	}
	if err := coll.InsertOne(ctx, p); err != nil {
		return cerr.WrapStoreWriteError("project", err)
	}
	return nil
}

func (r *DocstoreRepository) Get(ctx context.Context, slug string) (*project.Project, error) {
	coll, err := r.store.Collection(collectionName)
	if err != nil {
		return nil, cerr.WrapStoreReadError("Project", err)
	}
	var p project.Project
	if err := coll.FindOne(ctx, query.Eq("slug", slug), &p); err != nil {
		return nil, cerr.WrapStoreReadError("Project", err)
	}
	p.Normalize()
	return &p, nil
}

func (r *DocstoreRepository) List(ctx context.Context, filter query.Expr) ([]*project.Project, error) {
	coll, err := r.store.Collection(collectionName)
	if err != nil {
		return nil, cerr.WrapStoreReadError("projects", err)
	}
	var projects []*project.Project
	if err := coll.Find(ctx, filter, &projects); err != nil {
		return nil, cerr.WrapStoreReadError("projects", err)
	}
	if projects == nil {
		projects = []*project.Project{}
	}
	for _, p := range projects {
		p.Normalize()
	}
	return projects, nil
}

func (r *DocstoreRepository) Count(ctx context.Context) (int64, error) {
	coll, err := r.store.Collection(collectionName)
	if err != nil {
		return 0, cerr.WrapStoreReadError("projects", err)
	}
	n, err := coll.Count(ctx, nil)
	if err != nil {
		return 0, cerr.WrapStoreReadError("projects", err)
	}
	return n, nil
}

// EnsureIndexes creates the unique slug index. It is safe to call repeatedly.
func (r *DocstoreRepository) EnsureIndexes(ctx context.Context) error {
	coll, err := r.store.Collection(collectionName)
	if err != nil {
		return cerr.WrapStoreWriteError("project index", err)
	}
	if err := coll.CreateIndex(ctx, "slug", true); err != nil {
		return cerr.WrapStoreWriteError("project index", err)
	}
	return nil
}
