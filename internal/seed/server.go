package seed

import (
	"net/http"

	"github.com/kazz187/portfolio/pkg/cerr"
	"github.com/kazz187/portfolio/pkg/panicerr"
)

type Server struct {
	seeder *Seeder
}

func NewServer(seeder *Seeder) *Server {
	return &Server{seeder: seeder}
}

// Seed handles POST /api/seed
func (s *Server) Seed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res, err := panicerr.Call(ctx, s.seeder.Seed)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponse(ctx, res)
}
