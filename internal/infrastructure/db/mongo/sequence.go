package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const countersCollection = "counters"

// sequences hands out monotonically increasing numeric IDs, one sequence per
// collection name, using an atomic FindOneAndUpdate $inc on a counters
// collection. This keeps user and todo identifiers numeric rather than
// ObjectID hex strings.
type sequences struct {
	coll *mongo.Collection
}

func newSequences(db *mongo.Database) *sequences {
	return &sequences{coll: db.Collection(countersCollection)}
}

// next returns the next ID in the named sequence, starting at 1.
func (s *sequences) next(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := s.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next sequence %q: %w", name, err)
	}
	return doc.Seq, nil
}
