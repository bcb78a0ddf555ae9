// Package docstore is the gateway to the document database.
//
// Two implementations exist: MongoDatabase talks to MongoDB, FileDatabase keeps
// YAML documents in a storage.Storage. Callers hold a Handle, which carries
// whether a database is attached at all.
package docstore

import (
	"context"
	"errors"

	"github.com/kazz187/portfolio/pkg/query"
)

var (
	// ErrUnavailable is returned when no database is attached to the handle.
	ErrUnavailable = errors.New("database not available")
	// ErrNotFound is returned by FindOne when no document matches.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateKey is returned when a write violates a unique index.
	ErrDuplicateKey = errors.New("duplicate key")
)

// Database is a named set of collections.
type Database interface {
	Name() string
	Collection(name string) Collection
	ListCollectionNames(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Collection is a set of documents. Decoding targets follow the conventions of
// the underlying codec: Find takes a pointer to a slice, FindOne a pointer to
// a struct. A nil filter matches every document.
type Collection interface {
	Find(ctx context.Context, filter query.Expr, out any) error
	FindOne(ctx context.Context, filter query.Expr, out any) error
	Count(ctx context.Context, filter query.Expr) (int64, error)
	InsertOne(ctx context.Context, doc any) error
	// UpdateOne sets the given fields on the first matching document.
	// No match is not an error.
	UpdateOne(ctx context.Context, filter query.Expr, set map[string]any) error
	CreateIndex(ctx context.Context, field string, unique bool) error
}

// Handle is the process-wide store handle. It is built once at startup and
// may carry no database when the store was not configured or not reachable.
type Handle struct {
	db Database
}

// NewHandle wraps db. A nil db yields an unavailable handle.
func NewHandle(db Database) *Handle {
	return &Handle{db: db}
}

func (h *Handle) Available() bool {
	return h != nil && h.db != nil
}

func (h *Handle) Database() (Database, error) {
	if !h.Available() {
		return nil, ErrUnavailable
	}
	return h.db, nil
}

func (h *Handle) Collection(name string) (Collection, error) {
	db, err := h.Database()
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

func (h *Handle) Close(ctx context.Context) error {
	if !h.Available() {
		return nil
	}
	return h.db.Close(ctx)
}
