// Package mongo implements vm.VectorCapability on top of MongoDB Atlas
// Vector Search, mirroring the direct *mongo.Collection wrapping the
// teacher uses for its own registry store (registry/store/mongo) rather
// than the generated-client indirection its feature packages use —
// vector search has no comparable generated client anywhere in the pack,
// so this package talks to the driver directly.
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/tjs-lang/tjs/vm"
)

// Store is a MongoDB-backed vm.VectorCapability. Each collection name a
// procedure passes to `vector.search`/`vector.upsert` selects a Mongo
// collection within Database; IndexName names the Atlas Vector Search
// index to query (spec's vectorSearch/vectorEmbed atoms are collection-
// scoped, not index-scoped, so one Store may need one IndexName per
// collection in a real deployment — callers needing that should run one
// Store per collection).
type Store struct {
	db        *mongo.Database
	indexName string
	path      string
}

// Options configures a Store.
type Options struct {
	// Database is the connected Mongo database. Required.
	Database *mongo.Database
	// IndexName is the Atlas Search index backing $vectorSearch. Required.
	IndexName string
	// EmbeddingPath is the document field holding the embedding array.
	// Defaults to "embedding".
	EmbeddingPath string
}

// New returns a Store backed by opts.
func New(opts Options) (*Store, error) {
	if opts.Database == nil {
		return nil, fmt.Errorf("mongo vector store: Database is required")
	}
	if opts.IndexName == "" {
		return nil, fmt.Errorf("mongo vector store: IndexName is required")
	}
	path := opts.EmbeddingPath
	if path == "" {
		path = "embedding"
	}
	return &Store{db: opts.Database, indexName: opts.IndexName, path: path}, nil
}

// Upsert implements vm.VectorCapability, writing embedding under the
// configured EmbeddingPath so Search finds it.
func (s *Store) Upsert(ctx context.Context, collection string, id string, embedding []float64, metadata map[string]any) error {
	doc := bson.D{{Key: "_id", Value: id}, {Key: s.path, Value: embedding}}
	if len(metadata) > 0 {
		doc = append(doc, bson.E{Key: "metadata", Value: metadata})
	}
	_, err := s.db.Collection(collection).ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo vector upsert %q/%q: %w", collection, id, err)
	}
	return nil
}

// Search implements vm.VectorCapability via an Atlas $vectorSearch
// aggregation stage, scored and limited by k.
func (s *Store) Search(ctx context.Context, collection string, embedding []float64, k int) ([]vm.VectorMatch, error) {
	pipeline := bson.A{
		bson.D{{Key: "$vectorSearch", Value: bson.D{
			{Key: "index", Value: s.indexName},
			{Key: "path", Value: s.path},
			{Key: "queryVector", Value: embedding},
			{Key: "numCandidates", Value: k * 10},
			{Key: "limit", Value: k},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "metadata", Value: 1},
			{Key: "score", Value: bson.D{{Key: "$meta", Value: "vectorSearchScore"}}},
		}}},
	}

	cursor, err := s.db.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("mongo vector search %q: %w", collection, err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var docs []struct {
		ID       string         `bson:"_id"`
		Metadata map[string]any `bson:"metadata"`
		Score    float64        `bson:"score"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo vector search %q decode: %w", collection, err)
	}

	out := make([]vm.VectorMatch, len(docs))
	for i, d := range docs {
		out[i] = vm.VectorMatch{ID: d.ID, Score: d.Score, Metadata: d.Metadata}
	}
	return out, nil
}
