package docstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/kazz187/portfolio/pkg/query"
)

// MongoDatabase implements Database on a MongoDB database.
type MongoDatabase struct {
	client *mongo.Client
	db     *mongo.Database
}

// ConnectMongo connects to uri and pings the primary. The client is
// disconnected again when the ping fails.
func ConnectMongo(ctx context.Context, uri, name string) (*MongoDatabase, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return &MongoDatabase{client: client, db: client.Database(name)}, nil
}

func (d *MongoDatabase) Name() string {
	return d.db.Name()
}

func (d *MongoDatabase) Collection(name string) Collection {
	return &mongoCollection{coll: d.db.Collection(name)}
}

func (d *MongoDatabase) ListCollectionNames(ctx context.Context) ([]string, error) {
	names, err := d.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return names, nil
}

func (d *MongoDatabase) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

func (d *MongoDatabase) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

type mongoCollection struct {
	coll *mongo.Collection
}

func (c *mongoCollection) Find(ctx context.Context, filter query.Expr, out any) error {
	cur, err := c.coll.Find(ctx, toBSON(filter))
	if err != nil {
		return fmt.Errorf("failed to find in %s: %w", c.coll.Name(), err)
	}
	if err := cur.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", c.coll.Name(), err)
	}
	return nil
}

func (c *mongoCollection) FindOne(ctx context.Context, filter query.Expr, out any) error {
	err := c.coll.FindOne(ctx, toBSON(filter)).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s: %w", c.coll.Name(), ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to find one in %s: %w", c.coll.Name(), err)
	}
	return nil
}

func (c *mongoCollection) Count(ctx context.Context, filter query.Expr) (int64, error) {
	n, err := c.coll.CountDocuments(ctx, toBSON(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", c.coll.Name(), err)
	}
	return n, nil
}

func (c *mongoCollection) InsertOne(ctx context.Context, doc any) error {
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w: %w", c.coll.Name(), ErrDuplicateKey, err)
		}
		return fmt.Errorf("failed to insert into %s: %w", c.coll.Name(), err)
	}
	return nil
}

func (c *mongoCollection) UpdateOne(ctx context.Context, filter query.Expr, set map[string]any) error {
	_, err := c.coll.UpdateOne(ctx, toBSON(filter), bson.M{"$set": bson.M(set)})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w: %w", c.coll.Name(), ErrDuplicateKey, err)
		}
		return fmt.Errorf("failed to update %s: %w", c.coll.Name(), err)
	}
	return nil
}

func (c *mongoCollection) CreateIndex(ctx context.Context, field string, unique bool) error {
	_, err := c.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(unique),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s.%s: %w: %w", c.coll.Name(), field, ErrDuplicateKey, err)
		}
		return fmt.Errorf("failed to create index on %s.%s: %w", c.coll.Name(), field, err)
	}
	return nil
}

// toBSON translates a filter expression into a MongoDB query document.
func toBSON(expr query.Expr) bson.M {
	switch e := expr.(type) {
	case nil:
		return bson.M{}
	case query.AndExpr:
		return bson.M{"$and": toBSONList(e.Operands)}
	case query.OrExpr:
		return bson.M{"$or": toBSONList(e.Operands)}
	case query.EqExpr:
		return bson.M{e.Field: e.Value}
	case query.ContainsExpr:
		return bson.M{e.Field: bson.M{"$in": bson.A{e.Value}}}
	case query.MatchExpr:
		return bson.M{e.Field: primitive.Regex{Pattern: regexp.QuoteMeta(e.Substring), Options: "i"}}
	default:
		panic(fmt.Sprintf("docstore: unknown expression %T", expr))
	}
}

func toBSONList(exprs []query.Expr) bson.A {
	list := make(bson.A, 0, len(exprs))
	for _, e := range exprs {
		list = append(list, toBSON(e))
	}
	return list
}
