package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOptions configures a [MongoStore].
type MongoOptions struct {
	URI      string
	Database string

	// Collection defaults to "workspaces".
	Collection string
}

// MongoStore keeps workspaces in a MongoDB collection. A TTL index on
// expires_at lets the server drop expired documents on its own; Get and
// List filter them out until it does.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type mongoWorkspace struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	CreatedAt time.Time `bson:"created_at"`
	ExpiresAt time.Time `bson:"expires_at"`
	Data      []byte    `bson:"data,omitempty"`
}

// NewMongoStore connects to MongoDB and ensures the TTL index exists.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if opts.Collection == "" {
		opts.Collection = "workspaces"
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(opts.Database).Collection(opts.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("create ttl index: %w", err)
	}
	return &MongoStore{client: client, coll: coll}, nil
}

func live() bson.M {
	return bson.M{"expires_at": bson.M{"$gt": time.Now()}}
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Workspace, error) {
	filter := live()
	filter["_id"] = id

	var doc mongoWorkspace
	err := s.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find workspace: %w", err)
	}
	return decode(doc.Data)
}

func (s *MongoStore) Set(ctx context.Context, ws *Workspace) error {
	data, err := encode(ws)
	if err != nil {
		return err
	}
	doc := mongoWorkspace{
		ID:        ws.ID,
		Name:      ws.Name,
		CreatedAt: ws.CreatedAt,
		ExpiresAt: ws.ExpiresAt,
		Data:      data,
	}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": ws.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save workspace: %w", err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete workspace: %w", err)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]Summary, error) {
	opts := options.Find().
		SetProjection(bson.M{"data": 0}).
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, live(), opts)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	var docs []mongoWorkspace
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode workspaces: %w", err)
	}
	out := make([]Summary, len(docs))
	for i, d := range docs {
		out[i] = Summary{ID: d.ID, Name: d.Name, CreatedAt: d.CreatedAt, ExpiresAt: d.ExpiresAt}
	}
	return out, nil
}

func (s *MongoStore) Cleanup(ctx context.Context) error {
	_, err := s.coll.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": time.Now()}})
	if err != nil {
		return fmt.Errorf("cleanup workspaces: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
