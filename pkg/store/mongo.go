package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	errs "github.com/matzehuels/dashgrid/pkg/errors"
)

// Mongo defaults.
const (
	DefaultMongoDatabase   = "dashgrid"
	DefaultMongoCollection = "layouts"
)

// MongoConfig configures a MongoStore.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// MongoStore keeps one document per layout with the layout ID as _id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		cfg.URI = "mongodb://localhost:27017"
	}
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "ping mongodb")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (l *Layout, err error) {
	defer func(start time.Time) { observe(ctx, BackendMongo, "get", start, err) }(time.Now())

	l = new(Layout)
	err = s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "mongo find %q", id)
	}
	return l, nil
}

func (s *MongoStore) Put(ctx context.Context, l *Layout) (err error) {
	defer func(start time.Time) { observe(ctx, BackendMongo, "put", start, err) }(time.Now())

	if err := errs.ValidateID(l.ID); err != nil {
		return err
	}
	stamp(l)
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": l.ID}, l, options.Replace().SetUpsert(true))
	if err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "mongo upsert %q", l.ID)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) (err error) {
	defer func(start time.Time) { observe(ctx, BackendMongo, "delete", start, err) }(time.Now())

	if _, err = s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "mongo delete %q", id)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) (ids []string, err error) {
	defer func(start time.Time) { observe(ctx, BackendMongo, "list", start, err) }(time.Now())

	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "mongo list")
	}
	defer cur.Close(ctx)

	var docs []struct {
		ID string `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "mongo list")
	}
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return sortIDs(ids), nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
