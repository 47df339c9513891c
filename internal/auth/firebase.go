package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/aquatrace/aquatrace/internal/apperror"
)

// FirebaseUser is the identity extracted from a verified Firebase ID token.
type FirebaseUser struct {
	UID   string // Firebase's user ID — stable per project
	Email string
	Name  string
}

// FirebaseVerifier validates Firebase ID tokens minted by a client-side
// Firebase SDK (web or mobile) against this project's signing keys.
//
// FIREBASE SIGN-IN FLOW:
//  1. The client authenticates with Firebase directly (email link, phone,
//     social provider — whatever the Firebase project allows).
//  2. Firebase hands the client a short-lived ID token (a JWT signed by Google).
//  3. The client POSTs that token to /auth/firebase.
//  4. We verify the signature and expiry via the Admin SDK, extract the
//     identity, and issue our own session cookie.
//
// The Firebase token itself is never stored — it is exchanged once for a
// first-party session.
type FirebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier initializes the Firebase Admin SDK from a service
// account credentials file. credentialsPath may be empty, in which case the
// SDK falls back to Application Default Credentials.
func NewFirebaseVerifier(ctx context.Context, credentialsPath string) (*FirebaseVerifier, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("auth: initializing Firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth: initializing Firebase auth client: %w", err)
	}

	return &FirebaseVerifier{client: client}, nil
}

// Verify checks a Firebase ID token and returns the identity it asserts.
// Expired, revoked, or malformed tokens come back as unauthorized errors —
// the handler maps them to 401 without leaking verification internals.
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*FirebaseUser, error) {
	tok, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		switch {
		case fbauth.IsIDTokenExpired(err):
			return nil, apperror.Unauthorized("Firebase token expired")
		case fbauth.IsIDTokenRevoked(err):
			return nil, apperror.Unauthorized("Firebase token revoked")
		default:
			return nil, apperror.Unauthorized("invalid Firebase token")
		}
	}

	u := &FirebaseUser{UID: tok.UID}
	if email, ok := tok.Claims["email"].(string); ok {
		u.Email = email
	}
	if name, ok := tok.Claims["name"].(string); ok {
		u.Name = name
	}

	if u.UID == "" {
		return nil, apperror.Unauthorized("Firebase token has no subject")
	}

	return u, nil
}
