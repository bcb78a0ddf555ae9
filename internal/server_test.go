package internal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/grpchealth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/portfolio/internal/config"
	"github.com/kazz187/portfolio/internal/diagnostic"
	"github.com/kazz187/portfolio/internal/project"
	projectrepo "github.com/kazz187/portfolio/internal/project/repositoryimpl"
	"github.com/kazz187/portfolio/internal/seed"
	"github.com/kazz187/portfolio/internal/teammember"
	teammemberrepo "github.com/kazz187/portfolio/internal/teammember/repositoryimpl"
	"github.com/kazz187/portfolio/pkg/cerr"
	"github.com/kazz187/portfolio/pkg/docstore"
	"github.com/kazz187/portfolio/pkg/storage"
)

type testServer struct {
	handler  http.Handler
	projects *projectrepo.DocstoreRepository
}

func newTestServer(t *testing.T, store *docstore.Handle) *testServer {
	t.Helper()
	env := &config.Env{}
	projects := projectrepo.NewDocstoreRepository(store)
	members := teammemberrepo.NewDocstoreRepository(store)
	srv := NewServer(
		env,
		store,
		diagnostic.NewServer(store, env),
		project.NewServer(projects),
		teammember.NewServer(members),
		seed.NewServer(seed.NewSeeder(store, projects, members)),
	)
	return &testServer{handler: srv.Handler(), projects: projects}
}

func newFileStore(t *testing.T) *docstore.Handle {
	t.Helper()
	st, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return docstore.NewHandle(docstore.NewFileDatabase(st, "portfolio"))
}

func (s *testServer) do(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func slugs(items []map[string]any) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it["slug"].(string))
	}
	return out
}

func TestServer_Root(t *testing.T) {
	s := newTestServer(t, docstore.NewHandle(nil))

	rec := s.do(t, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"message": diagnostic.RootMessage}, decodeBody[map[string]string](t, rec))
}

func TestServer_StoreUnavailable(t *testing.T) {
	s := newTestServer(t, docstore.NewHandle(nil))

	for _, tc := range []struct{ method, target string }{
		{http.MethodPost, "/api/seed"},
		{http.MethodGet, "/api/projects"},
		{http.MethodGet, "/api/projects?q=nova"},
		{http.MethodGet, "/api/projects/nova-portfolio"},
		{http.MethodGet, "/api/team"},
		{http.MethodGet, "/api/team/alex-johnson"},
	} {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			rec := s.do(t, tc.method, tc.target)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			body := decodeBody[map[string]string](t, rec)
			assert.Equal(t, cerr.StoreUnavailableMessage, body["detail"])
		})
	}

	rec := s.do(t, http.MethodGet, "/test")
	require.Equal(t, http.StatusOK, rec.Code)
	report := decodeBody[diagnostic.Report](t, rec)
	assert.Equal(t, diagnostic.DatabaseNotAvailable, report.Database)
	assert.Equal(t, diagnostic.StatusNotConnected, report.ConnectionStatus)
}

func TestServer_SeedAndQuery(t *testing.T) {
	s := newTestServer(t, newFileStore(t))

	rec := s.do(t, http.MethodPost, "/api/seed")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, seed.Result{Status: seed.StatusOK, Message: seed.MessageSeeded}, decodeBody[seed.Result](t, rec))

	rec = s.do(t, http.MethodPost, "/api/seed")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, seed.MessageAlreadyPresent, decodeBody[seed.Result](t, rec).Message)

	projectTests := []struct {
		query string
		want  []string
	}{
		{"", []string{"nova-portfolio", "api-atlas"}},
		{"?category=Web", []string{"nova-portfolio"}},
		{"?category=web", []string{}},
		{"?category=We", []string{}},
		{"?q=dashboard", []string{"api-atlas"}},
		{"?q=DASHBOARD", []string{"api-atlas"}},
		{"?q=nova", []string{"nova-portfolio"}},
		{"?q=.*", []string{}},
		{"?tech=Vite", []string{"api-atlas"}},
		{"?tech=vite", []string{}},
		{"?q=portfolio&category=Tool", []string{}},
		{"?q=&tech=&category=", []string{"nova-portfolio", "api-atlas"}},
	}
	for _, tc := range projectTests {
		t.Run("projects"+tc.query, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, "/api/projects"+tc.query)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.want, slugs(decodeBody[[]map[string]any](t, rec)))
		})
	}

	teamTests := []struct {
		query string
		want  []string
	}{
		{"", []string{"alex-johnson", "jamie-lee", "sam-patel"}},
		{"?skill=Figma", []string{"jamie-lee"}},
		{"?skill=Fig", []string{}},
		{"?skill=FastAPI", []string{"alex-johnson", "sam-patel"}},
		{"?q=backend", []string{"sam-patel"}},
		{"?q=designer", []string{"jamie-lee"}},
		{"?q=developer&skill=Python", []string{"sam-patel"}},
	}
	for _, tc := range teamTests {
		t.Run("team"+tc.query, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, "/api/team"+tc.query)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.want, slugs(decodeBody[[]map[string]any](t, rec)))
		})
	}

	rec = s.do(t, http.MethodGet, "/api/team/alex-johnson")
	require.Equal(t, http.StatusOK, rec.Code)
	alex := decodeBody[map[string]any](t, rec)
	assert.Equal(t, []any{"nova-portfolio", "api-atlas"}, alex["projects"])
	assert.NotContains(t, alex, "_id")

	rec = s.do(t, http.MethodGet, "/api/projects/api-atlas")
	require.Equal(t, http.StatusOK, rec.Code)
	atlas := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "API Atlas", atlas["title"])
	assert.Equal(t, []any{"alex-johnson", "sam-patel"}, atlas["team_members"])

	rec = s.do(t, http.MethodGet, "/test")
	require.Equal(t, http.StatusOK, rec.Code)
	report := decodeBody[diagnostic.Report](t, rec)
	assert.Equal(t, diagnostic.DatabaseWorking, report.Database)
	assert.ElementsMatch(t, []string{"project", "teammember"}, report.Collections)
}

func TestServer_NotFound(t *testing.T) {
	s := newTestServer(t, newFileStore(t))

	rec := s.do(t, http.MethodGet, "/api/projects/does-not-exist")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, map[string]string{"code": "NotFound", "detail": "Project not found"}, decodeBody[map[string]string](t, rec))

	rec = s.do(t, http.MethodGet, "/api/team/does-not-exist")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Team member not found", decodeBody[map[string]string](t, rec)["detail"])

	rec = s.do(t, http.MethodGet, "/api/unknown")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", decodeBody[map[string]string](t, rec)["detail"])
}

func TestServer_UnavailableStoreUnknownRoute(t *testing.T) {
	s := newTestServer(t, docstore.NewHandle(nil))

	rec := s.do(t, http.MethodGet, "/api/unknown")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_OptionalFieldsRenderAsNull(t *testing.T) {
	store := newFileStore(t)
	s := newTestServer(t, store)
	require.NoError(t, s.projects.Create(context.Background(), &project.Project{
		Title:       "Bare",
		Slug:        "bare",
		Description: "no extras",
	}))

	rec := s.do(t, http.MethodGet, "/api/projects/bare")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, want := range []string{`"demo_url":null`, `"repo_url":null`, `"timeline":null`, `"category":null`, `"technologies":[]`, `"images":[]`, `"team_members":[]`} {
		assert.Contains(t, body, want)
	}
}

func TestServer_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t, newFileStore(t))

	rec := s.do(t, http.MethodDelete, "/api/projects/nova-portfolio")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t, docstore.NewHandle(nil))

	rec := s.do(t, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_CORS(t *testing.T) {
	s := newTestServer(t, newFileStore(t))
	const origin = "https://portfolio.example.com"

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Origin", origin)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, []string{origin, "*"}, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodOptions, "/api/seed", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type, X-Custom")
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, []string{origin, "*"}, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, strings.ToLower(rec.Header().Get("Access-Control-Allow-Headers")), "x-custom")
}

func TestStoreChecker(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		store   *docstore.Handle
		service string
		want    grpchealth.Status
	}{
		{"server while unavailable", docstore.NewHandle(nil), "", grpchealth.StatusServing},
		{"store unavailable", docstore.NewHandle(nil), StoreServiceName, grpchealth.StatusNotServing},
		{"store available", newFileStore(t), StoreServiceName, grpchealth.StatusServing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newStoreChecker(tt.store).Check(ctx, &grpchealth.CheckRequest{Service: tt.service})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Status)
		})
	}

	_, err := newStoreChecker(docstore.NewHandle(nil)).Check(ctx, &grpchealth.CheckRequest{Service: "other"})
	assert.True(t, cerr.IsCode(err, cerr.NotFound))
}
