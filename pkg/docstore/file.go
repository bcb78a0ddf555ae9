package docstore

import (
	"context"
	"errors"
	"fmt"
	"path"
	"reflect"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"

	"github.com/kazz187/portfolio/pkg/query"
	"github.com/kazz187/portfolio/pkg/storage"
)

const (
	idField    = "_id"
	metaPrefix = "_meta"
)

// FileDatabase implements Database with one YAML file per document.
//
// Layout under the storage root:
//
//	<db>/<collection>/<ulid>.yaml   documents, in insertion order
//	<db>/_meta/<collection>.yaml    index definitions
//
// Filters are evaluated in memory, so every read loads the whole collection.
type FileDatabase struct {
	name    string
	storage storage.Storage
	// mu serializes writers so unique index checks see a stable collection.
	mu sync.Mutex
}

func NewFileDatabase(s storage.Storage, name string) *FileDatabase {
	return &FileDatabase{name: name, storage: s}
}

func (d *FileDatabase) Name() string {
	return d.name
}

func (d *FileDatabase) Collection(name string) Collection {
	return &fileCollection{db: d, name: name}
}

func (d *FileDatabase) ListCollectionNames(ctx context.Context) ([]string, error) {
	paths, err := d.storage.List(ctx, path.Join(d.name, metaPrefix))
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, strings.TrimSuffix(path.Base(p), ".yaml"))
	}
	return names, nil
}

func (d *FileDatabase) Ping(ctx context.Context) error {
	_, err := d.storage.List(ctx, d.name)
	return err
}

func (d *FileDatabase) Close(context.Context) error {
	return nil
}

type collectionMeta struct {
	Indexes []indexMeta `yaml:"indexes"`
}

type indexMeta struct {
	Field  string `yaml:"field"`
	Unique bool   `yaml:"unique"`
}

type fileDoc struct {
	path   string
	fields map[string]any
}

type fileCollection struct {
	db   *FileDatabase
	name string
}

func (c *fileCollection) docPrefix() string {
	return path.Join(c.db.name, c.name)
}

func (c *fileCollection) metaPath() string {
	return path.Join(c.db.name, metaPrefix, c.name+".yaml")
}

func (c *fileCollection) load(ctx context.Context) ([]fileDoc, error) {
	paths, err := c.db.storage.List(ctx, c.docPrefix())
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c.name, err)
	}
	docs := make([]fileDoc, 0, len(paths))
	for _, p := range paths {
		data, err := c.db.storage.Read(ctx, p)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		var fields map[string]any
		if err := yaml.Unmarshal(data, &fields); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", p, err)
		}
		docs = append(docs, fileDoc{path: p, fields: fields})
	}
	return docs, nil
}

func (c *fileCollection) loadMeta(ctx context.Context) (*collectionMeta, bool, error) {
	data, err := c.db.storage.Read(ctx, c.metaPath())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &collectionMeta{}, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s indexes: %w", c.name, err)
	}
	var meta collectionMeta
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal %s indexes: %w", c.name, err)
	}
	return &meta, true, nil
}

func (c *fileCollection) saveMeta(ctx context.Context, meta *collectionMeta) error {
	data, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal %s indexes: %w", c.name, err)
	}
	if err := c.db.storage.Write(ctx, c.metaPath(), data); err != nil {
		return fmt.Errorf("failed to write %s indexes: %w", c.name, err)
	}
	return nil
}

func (c *fileCollection) match(ctx context.Context, filter query.Expr) ([]fileDoc, error) {
	docs, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	matched := docs[:0]
	for _, d := range docs {
		if query.Matches(filter, d.fields) {
			matched = append(matched, d)
		}
	}
	return matched, nil
}

func (c *fileCollection) Find(ctx context.Context, filter query.Expr, out any) error {
	matched, err := c.match(ctx, filter)
	if err != nil {
		return err
	}
	fields := make([]map[string]any, 0, len(matched))
	for _, d := range matched {
		fields = append(fields, d.fields)
	}
	return decode(fields, out)
}

func (c *fileCollection) FindOne(ctx context.Context, filter query.Expr, out any) error {
	matched, err := c.match(ctx, filter)
	if err != nil {
		return err
	}
	if len(matched) == 0 {
		return fmt.Errorf("%s: %w", c.name, ErrNotFound)
	}
	return decode(matched[0].fields, out)
}

func (c *fileCollection) Count(ctx context.Context, filter query.Expr) (int64, error) {
	matched, err := c.match(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(matched)), nil
}

func (c *fileCollection) InsertOne(ctx context.Context, doc any) error {
	fields, err := toFields(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s document: %w", c.name, err)
	}
	id, ok := fields[idField].(string)
	if !ok || id == "" {
		id = ulid.Make().String()
		fields[idField] = id
	}

	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	meta, exists, err := c.loadMeta(ctx)
	if err != nil {
		return err
	}
	docs, err := c.load(ctx)
	if err != nil {
		return err
	}
	if err := checkUnique(meta, docs, fields, ""); err != nil {
		return fmt.Errorf("%s: %w", c.name, err)
	}
	if !exists {
		if err := c.saveMeta(ctx, meta); err != nil {
			return err
		}
	}
	return c.write(ctx, path.Join(c.docPrefix(), id+".yaml"), fields)
}

func (c *fileCollection) UpdateOne(ctx context.Context, filter query.Expr, set map[string]any) error {
	patch, err := toFields(set)
	if err != nil {
		return fmt.Errorf("failed to encode %s update: %w", c.name, err)
	}

	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	docs, err := c.load(ctx)
	if err != nil {
		return err
	}
	for _, d := range docs {
		if !query.Matches(filter, d.fields) {
			continue
		}
		for k, v := range patch {
			d.fields[k] = v
		}
		meta, _, err := c.loadMeta(ctx)
		if err != nil {
			return err
		}
		if err := checkUnique(meta, docs, d.fields, d.path); err != nil {
			return fmt.Errorf("%s: %w", c.name, err)
		}
		return c.write(ctx, d.path, d.fields)
	}
	return nil
}

func (c *fileCollection) CreateIndex(ctx context.Context, field string, unique bool) error {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	meta, _, err := c.loadMeta(ctx)
	if err != nil {
		return err
	}
	for _, idx := range meta.Indexes {
		if idx.Field == field {
			return nil
		}
	}
	meta.Indexes = append(meta.Indexes, indexMeta{Field: field, Unique: unique})
	if unique {
		docs, err := c.load(ctx)
		if err != nil {
			return err
		}
		seen := make([]any, 0, len(docs))
		for _, d := range docs {
			v, ok := d.fields[field]
			if !ok {
				continue
			}
			for _, s := range seen {
				if reflect.DeepEqual(s, v) {
					return fmt.Errorf("%s.%s: %w", c.name, field, ErrDuplicateKey)
				}
			}
			seen = append(seen, v)
		}
	}
	return c.saveMeta(ctx, meta)
}

func (c *fileCollection) write(ctx context.Context, p string, fields map[string]any) error {
	data, err := yaml.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to marshal %s document: %w", c.name, err)
	}
	if err := c.db.storage.Write(ctx, p, data); err != nil {
		return fmt.Errorf("failed to write %s document: %w", c.name, err)
	}
	return nil
}

// checkUnique rejects fields when a unique indexed value is already held by
// another document. selfPath excludes the document being updated.
func checkUnique(meta *collectionMeta, docs []fileDoc, fields map[string]any, selfPath string) error {
	for _, idx := range meta.Indexes {
		if !idx.Unique {
			continue
		}
		v, ok := fields[idx.Field]
		if !ok {
			continue
		}
		for _, d := range docs {
			if d.path == selfPath {
				continue
			}
			if other, ok := d.fields[idx.Field]; ok && reflect.DeepEqual(other, v) {
				return fmt.Errorf("%s %v: %w", idx.Field, v, ErrDuplicateKey)
			}
		}
	}
	return nil
}

// toFields normalizes v through YAML so documents hold the same value types
// whether they were just written or read back from storage.
func toFields(v any) (map[string]any, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func decode(v any, out any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal documents: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode documents: %w", err)
	}
	return nil
}
