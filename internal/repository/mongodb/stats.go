package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/aquatrace/aquatrace/internal/model"
	"github.com/aquatrace/aquatrace/internal/repository"
)

// Stats implements repository.StatsRepository over the single-document
// global_stats collection.
type Stats struct {
	col *mongo.Collection
}

// compile-time check that *Stats implements repository.StatsRepository
var _ repository.StatsRepository = (*Stats)(nil)

// Get returns the current aggregate-stats document, or a zero-valued
// snapshot if none has been written yet (first boot).
func (r *Stats) Get(ctx context.Context) (*model.AggregateStats, error) {
	var s model.AggregateStats
	err := r.col.FindOne(ctx, bson.D{}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &model.AggregateStats{}, nil
		}
		return nil, fmt.Errorf("mongodb: reading stats: %w", err)
	}
	return &s, nil
}

// Replace overwrites the single stats document with a fresh full recompute,
// creating it if absent. The empty filter plus upsert keeps the collection
// at exactly one live document; concurrent replaces race harmlessly since
// each carries a complete snapshot.
func (r *Stats) Replace(ctx context.Context, stats *model.AggregateStats) error {
	_, err := r.col.ReplaceOne(ctx, bson.D{}, stats,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongodb: replacing stats: %w", err)
	}
	return nil
}
