package project

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kazz187/portfolio/pkg/cerr"
	"github.com/kazz187/portfolio/pkg/clog"
)

type Server struct {
	repo Repository
}

func NewServer(repo Repository) *Server {
	return &Server{repo: repo}
}

// Routes mounts the project endpoints on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.ListProjects)
	r.Get("/{slug}", s.GetProject)
}

// ListProjects handles GET /api/projects?q=&tech=&category=
func (s *Server) ListProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := FilterParams{
		Q:        r.URL.Query().Get("q"),
		Tech:     r.URL.Query().Get("tech"),
		Category: r.URL.Query().Get("category"),
	}
	projects, err := s.repo.List(ctx, NewFilter(params))
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	clog.AddAttribute(ctx, "result_count", len(projects))
	cerr.SetJSONResponse(ctx, projects)
}

// GetProject handles GET /api/projects/{slug}
func (s *Server) GetProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, err := s.repo.Get(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponse(ctx, p)
}
