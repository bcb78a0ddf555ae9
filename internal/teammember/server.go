package teammember

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

func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.ListTeamMembers)
	r.Get("/{slug}", s.GetTeamMember)
}

// ListTeamMembers handles GET /api/team?q=&skill=
func (s *Server) ListTeamMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := FilterParams{
		Q:     r.URL.Query().Get("q"),
		Skill: r.URL.Query().Get("skill"),
	}
	members, err := s.repo.List(ctx, NewFilter(params))
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	clog.AddAttribute(ctx, "result_count", len(members))
	cerr.SetJSONResponse(ctx, members)
}

// GetTeamMember handles GET /api/team/{slug}
func (s *Server) GetTeamMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	m, err := s.repo.Get(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponse(ctx, m)
}
