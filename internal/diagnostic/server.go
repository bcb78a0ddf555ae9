// Package diagnostic serves the banner and the store self-check endpoints.
package diagnostic

import (
	"context"
	"net/http"

	"github.com/kazz187/portfolio/internal/config"
	"github.com/kazz187/portfolio/pkg/cerr"
	"github.com/kazz187/portfolio/pkg/docstore"
)

const (
	RootMessage = "Portfolio API running"

	BackendRunning = "✅ Running"

	DatabaseNotAvailable = "❌ Not Available"
	DatabaseAvailable    = "✅ Available"
	DatabaseWorking      = "✅ Connected & Working"

	StatusConnected    = "Connected"
	StatusNotConnected = "Not Connected"

	EnvSet    = "✅ Set"
	EnvNotSet = "❌ Not Set"

	maxCollections  = 10
	maxErrorMessage = 50
)

type RootResponse struct {
	Message string `json:"message"`
}

type Report struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

type Server struct {
	store *docstore.Handle
	env   *config.Env
}

func NewServer(store *docstore.Handle, env *config.Env) *Server {
	return &Server{store: store, env: env}
}

// Root handles GET /
func (s *Server) Root(w http.ResponseWriter, r *http.Request) {
	cerr.SetJSONResponse(r.Context(), &RootResponse{Message: RootMessage})
}

// Test handles GET /test. It always succeeds; store failures are reported
// in the body.
func (s *Server) Test(w http.ResponseWriter, r *http.Request) {
	cerr.SetJSONResponse(r.Context(), s.Check(r.Context()))
}

// Check reports whether the store is attached and answering, which connection
// variables are configured and the first collection names.
func (s *Server) Check(ctx context.Context) *Report {
	report := &Report{
		Backend:          BackendRunning,
		Database:         DatabaseNotAvailable,
		ConnectionStatus: StatusNotConnected,
		Collections:      []string{},
		DatabaseURL:      setOrNot(s.env.DatabaseURLSet()),
		DatabaseName:     setOrNot(s.env.DatabaseNameSet),
	}

	db, err := s.store.Database()
	if err != nil {
		return report
	}
	report.Database = DatabaseAvailable
	report.ConnectionStatus = StatusConnected

	names, err := db.ListCollectionNames(ctx)
	if err != nil {
		report.Database = "⚠️  Connected but Error: " + truncate(err.Error(), maxErrorMessage)
		return report
	}
	if len(names) > maxCollections {
		names = names[:maxCollections]
	}
	report.Collections = append(report.Collections, names...)
	report.Database = DatabaseWorking
	return report
}

func setOrNot(set bool) string {
	if set {
		return EnvSet
	}
	return EnvNotSet
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
