package repositoryimpl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/portfolio/internal/teammember"
	"github.com/kazz187/portfolio/pkg/cerr"
	"github.com/kazz187/portfolio/pkg/docstore"
	"github.com/kazz187/portfolio/pkg/storage"
)

func newRepository(t *testing.T) *DocstoreRepository {
	t.Helper()
	st, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewDocstoreRepository(docstore.NewHandle(docstore.NewFileDatabase(st, "portfolio")))
}

func TestDocstoreRepository_CreateGet(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)
	require.NoError(t, repo.EnsureIndexes(ctx))

	require.NoError(t, repo.Create(ctx, &teammember.TeamMember{Name: "Jamie Lee", Slug: "jamie-lee", Role: "Designer", Bio: "bio"}))

	got, err := repo.Get(ctx, "jamie-lee")
	require.NoError(t, err)
	assert.Equal(t, "Jamie Lee", got.Name)
	assert.Equal(t, []string{}, got.Skills)
	assert.Equal(t, map[string]*string{}, got.Socials)
	assert.Nil(t, got.Email)

	err = repo.Create(ctx, &teammember.TeamMember{Name: "Other", Slug: "jamie-lee"})
	assert.True(t, cerr.IsCode(err, cerr.AlreadyExists))

	_, err = repo.Get(ctx, "nobody")
	require.Error(t, err)
	assert.True(t, cerr.IsCode(err, cerr.NotFound))
	assert.Equal(t, "Team member not found", err.(*cerr.Error).Msg)
}

func TestDocstoreRepository_SetProjects(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)
	require.NoError(t, repo.Create(ctx, &teammember.TeamMember{Name: "A", Slug: "a"}))
	require.NoError(t, repo.Create(ctx, &teammember.TeamMember{Name: "B", Slug: "b"}))

	require.NoError(t, repo.SetProjects(ctx, "a", []string{"p1", "p2"}))
	require.NoError(t, repo.SetProjects(ctx, "b", nil))
	require.NoError(t, repo.SetProjects(ctx, "missing", []string{"p1"}))

	a, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, a.Projects)
	assert.Equal(t, "A", a.Name)

	b, err := repo.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{}, b.Projects)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestDocstoreRepository_Unavailable(t *testing.T) {
	ctx := context.Background()
	repo := NewDocstoreRepository(docstore.NewHandle(nil))

	_, err := repo.List(ctx, nil)
	require.Error(t, err)
	assert.Equal(t, cerr.StoreUnavailableMessage, err.(*cerr.Error).Msg)

	_, err = repo.Get(ctx, "a")
	assert.True(t, cerr.IsCode(err, cerr.Internal))

	err = repo.SetProjects(ctx, "a", nil)
	assert.True(t, cerr.IsCode(err, cerr.Internal))
}
