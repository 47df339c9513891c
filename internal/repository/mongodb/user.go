package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/aquatrace/aquatrace/internal/apperror"
	"github.com/aquatrace/aquatrace/internal/model"
	"github.com/aquatrace/aquatrace/internal/repository"
)

// Users implements repository.UserRepository over the users collection.
type Users struct {
	col *mongo.Collection
}

// compile-time check that *Users implements repository.UserRepository
var _ repository.UserRepository = (*Users)(nil)

// Create inserts a new user, generating the ID and creation timestamp.
//
// Uniqueness on username and email is ultimately enforced by the unique
// indexes — a duplicate insert comes back as apperror.Conflict and leaves
// the store unchanged. The service layer also pre-checks, but the index is
// what closes the race between two concurrent registrations.
func (r *Users) Create(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()
	user.CreatedAt = time.Now().UTC()

	if _, err := r.col.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.Conflict("user", "username or email")
		}
		return fmt.Errorf("mongodb: inserting user %q: %w", user.Username, err)
	}
	return nil
}

// Update rewrites the mutable profile fields of an existing user.
// firebase_uid is written only when set — the partial unique index on that
// field must never see empty strings from plain profile updates.
func (r *Users) Update(ctx context.Context, user *model.User) error {
	set := bson.D{
		{Key: "username", Value: user.Username},
		{Key: "email", Value: user.Email},
		{Key: "bio", Value: user.Bio},
	}
	if user.FirebaseUID != "" {
		set = append(set, bson.E{Key: "firebase_uid", Value: user.FirebaseUID})
	}

	res, err := r.col.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: user.ID}},
		bson.D{{Key: "$set", Value: set}},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.Conflict("user", "username or email")
		}
		return fmt.Errorf("mongodb: updating user %s: %w", user.ID, err)
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("user", user.ID)
	}
	return nil
}

// GetByID retrieves a user by internal ID.
// Returns apperror.ErrNotFound if no user exists with that ID.
func (r *Users) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}}, id)
}

// GetByUsername retrieves a user by exact username.
func (r *Users) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, bson.D{{Key: "username", Value: username}}, username)
}

// GetByEmail retrieves a user by exact email.
func (r *Users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}}, email)
}

// GetByFirebaseUID retrieves a user by their Firebase account ID.
func (r *Users) GetByFirebaseUID(ctx context.Context, uid string) (*model.User, error) {
	return r.findOne(ctx, bson.D{{Key: "firebase_uid", Value: uid}}, uid)
}

// Count returns the total number of registered users.
func (r *Users) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("mongodb: counting users: %w", err)
	}
	return n, nil
}

// findOne is the shared by-field lookup. The key parameter is only used in
// the not-found message.
func (r *Users) findOne(ctx context.Context, filter bson.D, key string) (*model.User, error) {
	var u model.User
	err := r.col.FindOne(ctx, filter).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("user", key)
		}
		return nil, fmt.Errorf("mongodb: finding user %q: %w", key, err)
	}
	return &u, nil
}
