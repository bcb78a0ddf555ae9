package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"

	server "github.com/kazz187/portfolio/internal"
	"github.com/kazz187/portfolio/internal/config"
	"github.com/kazz187/portfolio/internal/diagnostic"
	"github.com/kazz187/portfolio/internal/project"
	projectrepo "github.com/kazz187/portfolio/internal/project/repositoryimpl"
	"github.com/kazz187/portfolio/internal/seed"
	"github.com/kazz187/portfolio/internal/teammember"
	teammemberrepo "github.com/kazz187/portfolio/internal/teammember/repositoryimpl"
	"github.com/kazz187/portfolio/pkg/clog"
	"github.com/kazz187/portfolio/pkg/docstore"
	"github.com/kazz187/portfolio/pkg/storage"
)

var (
	app = kingpin.New("portfolio-server", "REST API for portfolio projects and team members")

	serveCmd = app.Command("serve", "Start the HTTP server").Default()
	seedCmd  = app.Command("seed", "Insert the sample data into an empty store and exit")
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	env, err := config.LoadEnv()
	if err != nil {
		slog.Error("failed to load env", "error", err)
		os.Exit(1)
	}

	level := env.SlogLevel()
	var handler slog.Handler
	if env.Env == "local" {
		handler = clog.NewHTTPTextHandler(os.Stderr, clog.WithLevel(level))
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(clog.NewAttributesHandler(handler)))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	store, err := openStore(ctx, env)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()

	projectRepo := projectrepo.NewDocstoreRepository(store)
	teamMemberRepo := teammemberrepo.NewDocstoreRepository(store)
	seeder := seed.NewSeeder(store, projectRepo, teamMemberRepo)

	switch command {
	case seedCmd.FullCommand():
		res, err := seeder.Seed(ctx)
		if err != nil {
			slog.Error("failed to seed", "error", err)
			os.Exit(1)
		}
		fmt.Println(res.Message)
	case serveCmd.FullCommand():
		srv := server.NewServer(
			env,
			store,
			diagnostic.NewServer(store, env),
			project.NewServer(projectRepo),
			teammember.NewServer(teamMemberRepo),
			seed.NewServer(seeder),
		)
		serve(ctx, cancel, srv)
	}
}

func serve(ctx context.Context, cancel context.CancelFunc, srv *server.Server) {
	go func() {
		if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// openStore attaches the configured database. A missing or unreachable Mongo
// leaves the handle unavailable and the server running; misconfigured blob
// storage is fatal.
func openStore(ctx context.Context, env *config.Env) (*docstore.Handle, error) {
	dbEnv := config.DatabaseEnvFromEnv(env)
	storageEnv := config.StorageEnvFromEnv(env)

	switch dbEnv.StoreType {
	case config.StoreTypeLocal:
		s, err := storage.NewLocalStorage(storageEnv.BaseDir)
		if err != nil {
			return nil, fmt.Errorf("failed to create local storage: %w", err)
		}
		slog.Info("using file store", "base_dir", storageEnv.BaseDir, "database", dbEnv.Name)
		return docstore.NewHandle(docstore.NewFileDatabase(s, dbEnv.Name)), nil
	case config.StoreTypeS3:
		s, err := storage.NewS3Storage(ctx, storageEnv.S3Bucket, storageEnv.S3Prefix, storageEnv.S3Region)
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 storage: %w", err)
		}
		slog.Info("using file store on S3", "bucket", storageEnv.S3Bucket, "prefix", storageEnv.S3Prefix, "database", dbEnv.Name)
		return docstore.NewHandle(docstore.NewFileDatabase(s, dbEnv.Name)), nil
	}

	if !dbEnv.DatabaseURLSet() {
		slog.Warn("DATABASE_URL is not set, running without a database")
		return docstore.NewHandle(nil), nil
	}
	connectCtx, cancel := context.WithTimeout(ctx, dbEnv.ConnectTimeout)
	defer cancel()
	db, err := docstore.ConnectMongo(connectCtx, dbEnv.URL, dbEnv.Name)
	if err != nil {
		slog.Warn("failed to connect to database, running without it", "error", err)
		return docstore.NewHandle(nil), nil
	}
	slog.Info("connected to database", "database", db.Name())
	return docstore.NewHandle(db), nil
}
