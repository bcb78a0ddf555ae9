package internal

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"connectrpc.com/connect"
	"connectrpc.com/grpchealth"
	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kazz187/portfolio/internal/config"
	"github.com/kazz187/portfolio/internal/diagnostic"
	"github.com/kazz187/portfolio/internal/project"
	"github.com/kazz187/portfolio/internal/seed"
	"github.com/kazz187/portfolio/internal/teammember"
	"github.com/kazz187/portfolio/pkg/cerr"
	"github.com/kazz187/portfolio/pkg/clog"
	"github.com/kazz187/portfolio/pkg/docstore"
)

type Server struct {
	server           *http.Server
	env              *config.Env
	store            *docstore.Handle
	diagnosticServer *diagnostic.Server
	projectServer    *project.Server
	teamMemberServer *teammember.Server
	seedServer       *seed.Server
}

func NewServer(
	env *config.Env,
	store *docstore.Handle,
	diagnosticServer *diagnostic.Server,
	projectServer *project.Server,
	teamMemberServer *teammember.Server,
	seedServer *seed.Server,
) *Server {
	return &Server{
		env:              env,
		store:            store,
		diagnosticServer: diagnosticServer,
		projectServer:    projectServer,
		teamMemberServer: teamMemberServer,
		seedServer:       seedServer,
	}
}

// Handler returns the complete HTTP handler: the JSON API, the liveness
// endpoint and the gRPC health service, behind CORS and h2c.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(
		clog.SlogChiMiddleware(clog.WithChiFilter(clog.DefaultChiHealthCheckFilter)),
		cerr.NewJSONResponseChiMiddleware(),
	)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		cerr.SetNewJSONError(r.Context(), cerr.NotFound, "Not Found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write([]byte(`{"code":"MethodNotAllowed","detail":"Method Not Allowed"}` + "\n"))
	})

	r.Get("/", s.diagnosticServer.Root)
	r.Get("/test", s.diagnosticServer.Test)
	r.Group(func(r chi.Router) {
		r.Use(s.requireStore)
		r.Post("/api/seed", s.seedServer.Seed)
		r.Route("/api/projects", s.projectServer.Routes)
		r.Route("/api/team", s.teamMemberServer.Routes)
	})

	mux := http.NewServeMux()
	mux.Handle("/health", &HealthChecker{})
	mux.Handle(grpchealth.NewHandler(newStoreChecker(s.store), connect.WithInterceptors(s.interceptors()...)))
	mux.Handle("/", r)

	return h2c.NewHandler(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(mux), &http2.Server{})
}

// ListenAndServe starts the HTTP server. ctx becomes the base context of every
// request, so cancelling it also cancels in-flight store calls.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := net.JoinHostPort(s.env.HTTPHost, s.env.HTTPPort)
	slog.Info("starting server", "addr", addr, "store_available", s.store.Available())

	s.server = &http.Server{
		Addr:        addr,
		Handler:     s.Handler(),
		BaseContext: func(_ net.Listener) context.Context { return ctx },
	}
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) interceptors() []connect.Interceptor {
	return []connect.Interceptor{
		clog.NewSlogConnectInterceptor(clog.WithConnectFilter(clog.DefaultConnectHealthCheckUnaryFilter)),
		cerr.NewConvertConnectErrorInterceptor(),
	}
}

// requireStore fails data requests up front while no database is attached.
// Availability is read on every request.
func (s *Server) requireStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.store.Available() {
			cerr.SetJSONError(r.Context(), cerr.ErrStoreUnavailable())
			return
		}
		next.ServeHTTP(w, r)
	})
}
