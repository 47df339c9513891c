// Package mongodb implements the repository interfaces against MongoDB.
//
// WHY A DOCUMENT STORE?
// Every record here is looked up whole by a single field (username, email,
// firebase_uid, user_id, species_name) and written whole. There are no joins
// and no multi-row transactions — the one "aggregate" is a single summary
// document replaced wholesale. That access pattern is exactly what a
// document store gives you for free, including the unique and secondary
// indexes declared below.
//
// The driver's *mongo.Client is a connection pool, not a single connection —
// it is created once at startup, shared by every request, and closed during
// graceful shutdown. No per-request transaction scoping is used.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// DB wraps the Mongo client and exposes one repository per collection.
// The entities don't share a method set (each has its own Create and
// Count), so every collection gets its own type — Users, Uploads, Stats —
// instead of piling conflicting methods onto DB. The server owns the DB and
// closes it on shutdown.
type DB struct {
	client *mongo.Client

	Users   *Users
	Uploads *Uploads
	Stats   *Stats
}

// New connects to MongoDB, verifies the connection with a ping, and creates
// the index set. Mirrors the usual open → ping → bootstrap sequence: a bad
// URI or unreachable cluster surfaces here at startup, not on the first
// request.
func New(uri, dbName string) (*DB, error) {
	client, err := mongo.Connect(options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(10 * time.Second).
		SetConnectTimeout(10 * time.Second).
		SetMaxPoolSize(10).
		SetRetryWrites(true))
	if err != nil {
		return nil, fmt.Errorf("mongodb: connecting: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb: pinging cluster: %w", err)
	}

	database := client.Database(dbName)
	db := &DB{
		client:  client,
		Users:   &Users{col: database.Collection("users")},
		Uploads: &Uploads{col: database.Collection("uploads")},
		Stats:   &Stats{col: database.Collection("global_stats")},
	}

	if err := db.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb: creating indexes: %w", err)
	}

	return db, nil
}

// Close disconnects the client pool. Call during graceful shutdown.
func (db *DB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return db.client.Disconnect(ctx)
}

// ensureIndexes declares the persisted layout:
//   - users: unique on username and email (global uniqueness invariants)
//   - uploads: secondary lookups by owner, timestamp, and species name
//
// CreateMany is idempotent — existing identical indexes are a no-op, so this
// is safe to run on every startup.
func (db *DB) ensureIndexes(ctx context.Context) error {
	_, err := db.Users.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "firebase_uid", Value: 1}},
			Options: options.Index().
				SetPartialFilterExpression(bson.D{{Key: "firebase_uid", Value: bson.D{{Key: "$exists", Value: true}}}}),
		},
	})
	if err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	_, err = db.Uploads.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "upload_date", Value: -1}}},
		{Keys: bson.D{{Key: "species_name", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("uploads indexes: %w", err)
	}

	return nil
}
