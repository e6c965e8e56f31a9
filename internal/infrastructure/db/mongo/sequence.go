package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/steriltrack/equipment-system/internal/core/ports"
)

const collectionCounters = "counters"

// Sequence implements the id allocator on a counters collection, one document
// per counter kind. FindOneAndUpdate with $inc keeps increments atomic across
// instances, so values are never skipped or duplicated.
type Sequence struct {
	col *mongo.Collection
}

func NewSequence(db *mongo.Database) *Sequence {
	return &Sequence{col: db.Collection(collectionCounters)}
}

type counterDoc struct {
	Value int64 `bson:"value"`
}

func (s *Sequence) Next(ctx context.Context, kind ports.CounterKind) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc counterDoc
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": string(kind)},
		bson.M{"$inc": bson.M{"value": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("sequence next %s: %w", kind, err)
	}
	return doc.Value, nil
}

func (s *Sequence) Peek(ctx context.Context, kind ports.CounterKind) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc counterDoc
	err := s.col.FindOne(ctx, bson.M{"_id": string(kind)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 1, nil
		}
		return 0, fmt.Errorf("sequence peek %s: %w", kind, err)
	}
	return doc.Value + 1, nil
}
