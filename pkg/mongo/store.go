package mongo

import (
	"context"
	"errors"
	"maps"
	"slices"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection is the subset of *mongo.Collection used by Store.
type Collection interface {
	Find(ctx context.Context, filter any, opts ...options.Lister[options.FindOptions]) (*mongo.Cursor, error)
	BulkWrite(ctx context.Context, models []mongo.WriteModel, opts ...options.Lister[options.BulkWriteOptions]) (*mongo.BulkWriteResult, error)
}

// Store keeps one document per variable: {_id: key, value: value}.
type Store struct {
	coll Collection
}

type variable struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

// NewStore returns a store over coll.
func NewStore(coll Collection) *Store {
	return &Store{coll: coll}
}

// Snapshot reads every document of the collection.
func (s *Store) Snapshot(ctx context.Context) (map[string]string, error) {
	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Join(ErrSnapshotFailed, err)
	}

	var vars []variable
	if err := cur.All(ctx, &vars); err != nil {
		return nil, errors.Join(ErrSnapshotFailed, err)
	}

	m := make(map[string]string, len(vars))
	for _, v := range vars {
		m[v.Key] = v.Value
	}
	return m, nil
}

// Apply upserts entries with one unordered bulk write. A failure may leave
// some entries written.
func (s *Store) Apply(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(entries))
	for _, k := range slices.Sorted(maps.Keys(entries)) {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.D{{Key: "_id", Value: k}}).
			SetUpdate(bson.D{{Key: "$set", Value: bson.D{{Key: "value", Value: entries[k]}}}}).
			SetUpsert(true))
	}

	if _, err := s.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
		return errors.Join(ErrApplyFailed, err)
	}
	return nil
}
