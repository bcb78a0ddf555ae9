package repositoryimpl

import (
	"context"

	"github.com/kazz187/portfolio/internal/teammember"
	"github.com/kazz187/portfolio/pkg/cerr"
	"github.com/kazz187/portfolio/pkg/docstore"
	"github.com/kazz187/portfolio/pkg/query"
)

const collectionName = "teammember"

type DocstoreRepository struct {
	store *docstore.Handle
}

func NewDocstoreRepository(store *docstore.Handle) *DocstoreRepository {
	return &DocstoreRepository{store: store}
}

func (r *DocstoreRepository) collection() (docstore.Collection, error) {
	return r.store.Collection(collectionName)
}

func (r *DocstoreRepository) Create(ctx context.Context, m *teammember.TeamMember) error {
	coll, err := r.collection()
	if err != nil {
		return cerr.WrapStoreWriteError("team member", err)
	}
	if err := coll.InsertOne(ctx, m); err != nil {
		return cerr.WrapStoreWriteError("team member", err)
	}
	return nil
}

func (r *DocstoreRepository) Get(ctx context.Context, slug string) (*teammember.TeamMember, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, cerr.WrapStoreReadError("Team member", err)
	}
	var m teammember.TeamMember
	if err := coll.FindOne(ctx, query.Eq("slug", slug), &m); err != nil {
		return nil, cerr.WrapStoreReadError("Team member", err)
	}
	m.Normalize()
	return &m, nil
}

func (r *DocstoreRepository) List(ctx context.Context, filter query.Expr) ([]*teammember.TeamMember, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, cerr.WrapStoreReadError("team members", err)
	}
	var members []*teammember.TeamMember
	if err := coll.Find(ctx, filter, &members); err != nil {
		return nil, cerr.WrapStoreReadError("team members", err)
	}
	if members == nil {
		members = []*teammember.TeamMember{}
	}
	for _, m := range members {
		m.Normalize()
	}
	return members, nil
}

func (r *DocstoreRepository) Count(ctx context.Context) (int64, error) {
	coll, err := r.collection()
	if err != nil {
		return 0, cerr.WrapStoreReadError("team members", err)
	}
	n, err := coll.Count(ctx, nil)
	if err != nil {
		return 0, cerr.WrapStoreReadError("team members", err)
	}
	return n, nil
}

func (r *DocstoreRepository) SetProjects(ctx context.Context, slug string, projects []string) error {
	coll, err := r.collection()
	if err != nil {
		return cerr.WrapStoreWriteError("team member", err)
	}
	if projects == nil {
		projects = []string{}
	}
	if err := coll.UpdateOne(ctx, query.Eq("slug", slug), map[string]any{"projects": projects}); err != nil {
		return cerr.WrapStoreWriteError("team member", err)
	}
	return nil
}

func (r *DocstoreRepository) EnsureIndexes(ctx context.Context) error {
	coll, err := r.collection()
	if err != nil {
		return cerr.WrapStoreWriteError("team member index", err)
	}
	if err := coll.CreateIndex(ctx, "slug", true); err != nil {
		return cerr.WrapStoreWriteError("team member index", err)
	}
	return nil
}
