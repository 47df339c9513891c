// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// Three login paths converge on this one record: local username/password,
// Firebase ID tokens, and Google OAuth. A federated account has an empty
// PasswordHash; a local account has an empty FirebaseUID. Username and email
// are globally unique (enforced by unique indexes on the users collection).
//
// WHY PasswordHash string (not *string)?
// The bcrypt hash is opaque text and "" is a perfectly good "no local
// credential" marker — simpler than a nullable pointer, and it never
// serializes to JSON anyway (json:"-").
type User struct {
	ID           string    `json:"id"          bson:"_id"`
	Username     string    `json:"username"    bson:"username"`
	Email        string    `json:"email"       bson:"email"`
	PasswordHash string    `json:"-"           bson:"password_hash,omitempty"`
	FirebaseUID  string    `json:"-"           bson:"firebase_uid,omitempty"` // Firebase's stable user ID
	Bio          string    `json:"bio"         bson:"bio,omitempty"`
	CreatedAt    time.Time `json:"createdAt"   bson:"created_at"`
}
