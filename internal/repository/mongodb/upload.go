package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/aquatrace/aquatrace/internal/apperror"
	"github.com/aquatrace/aquatrace/internal/model"
	"github.com/aquatrace/aquatrace/internal/repository"
)

// Uploads implements repository.UploadRepository over the uploads
// collection.
type Uploads struct {
	col *mongo.Collection
}

// compile-time check that *Uploads implements repository.UploadRepository
var _ repository.UploadRepository = (*Uploads)(nil)

// Create inserts a new identification record. Uploads are immutable after
// creation (SetLocation below is the one maintenance-pass exception).
func (r *Uploads) Create(ctx context.Context, upload *model.Upload) error {
	upload.ID = xid.New().String()
	if upload.UploadDate.IsZero() {
		upload.UploadDate = time.Now().UTC()
	}

	if _, err := r.col.InsertOne(ctx, upload); err != nil {
		return fmt.Errorf("mongodb: inserting upload for user %s: %w", upload.UserID, err)
	}
	return nil
}

// SetLocation back-fills geolocation on an existing upload. Used only by the
// retrofit maintenance command, never by request flow.
func (r *Uploads) SetLocation(ctx context.Context, id string, lat, lng float64) error {
	res, err := r.col.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "latitude", Value: lat},
			{Key: "longitude", Value: lng},
		}}},
	)
	if err != nil {
		return fmt.Errorf("mongodb: setting location on upload %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("upload", id)
	}
	return nil
}

// ListByUser returns a user's uploads, newest first.
func (r *Uploads) ListByUser(ctx context.Context, userID string) ([]model.Upload, error) {
	return r.list(ctx, bson.D{{Key: "user_id", Value: userID}})
}

// ListBySpecies returns all uploads of the given species (exact name match,
// as persisted), newest first.
func (r *Uploads) ListBySpecies(ctx context.Context, species string) ([]model.Upload, error) {
	return r.list(ctx, bson.D{{Key: "species_name", Value: species}})
}

// ListAll returns every upload. Used by the retrofit maintenance command.
func (r *Uploads) ListAll(ctx context.Context) ([]model.Upload, error) {
	return r.list(ctx, bson.D{})
}

// Count returns the total number of identification records.
func (r *Uploads) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("mongodb: counting uploads: %w", err)
	}
	return n, nil
}

// DistinctSpecies returns the distinct species names across all uploads.
func (r *Uploads) DistinctSpecies(ctx context.Context) ([]string, error) {
	var species []string
	res := r.col.Distinct(ctx, "species_name",
		bson.D{{Key: "species_name", Value: bson.D{{Key: "$ne", Value: nil}}}})
	if err := res.Decode(&species); err != nil {
		return nil, fmt.Errorf("mongodb: distinct species: %w", err)
	}
	return species, nil
}

func (r *Uploads) list(ctx context.Context, filter bson.D) ([]model.Upload, error) {
	cursor, err := r.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "upload_date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("mongodb: finding uploads: %w", err)
	}

	var uploads []model.Upload
	if err := cursor.All(ctx, &uploads); err != nil {
		return nil, fmt.Errorf("mongodb: decoding uploads: %w", err)
	}
	return uploads, nil
}
