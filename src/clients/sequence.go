package clients

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NextSequence returns the next value of a named counter. Counters are
// stored in a dedicated collection and incremented atomically, giving the
// service small numeric ids instead of ObjectIDs.
func (m *MongoDB) NextSequence(ctx context.Context, name string) (int64, error) {
	counters := m.Database.Collection(m.cfg.Collections.Counters)

	filter := bson.M{"_id": name}
	update := bson.M{"$inc": bson.M{"seq": int64(1)}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result struct {
		Seq int64 `bson:"seq"`
	}

	if err := counters.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result); err != nil {
		log.WithError(err).WithField("counter", name).Error("Failed to advance sequence")
		return 0, err
	}

	return result.Seq, nil
}
