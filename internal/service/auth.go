// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes MongoDB
//
// Services accept primitives and domain types, never HTTP types, and return
// domain errors (apperror.*), never status codes. The handler translates.
// Services program against the repository interfaces, so tests substitute
// in-memory fakes without touching a database.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strconv"
	"strings"

	"github.com/aquatrace/aquatrace/internal/apperror"
	"github.com/aquatrace/aquatrace/internal/auth"
	"github.com/aquatrace/aquatrace/internal/model"
	"github.com/aquatrace/aquatrace/internal/repository"
)

// Validation constants.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
	MinPasswordLength = 6
	MaxBioLength      = 500
)

// AuthService handles registration, the three sign-in paths, and profile
// management. All sign-in variants converge on the same outcome: a resolved
// user record plus a freshly issued session token.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
// Called from server.go when wiring the dependency graph.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult bundles the user record and the issued JWT so the handler can
// set the session cookie and respond in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// Credential is the tagged union of the three sign-in methods. Each variant
// carries exactly what its flow produces; Login dispatches on the concrete
// type.
type Credential interface {
	credential()
}

// LocalCredential is a username + password pair.
type LocalCredential struct {
	Username string
	Password string
}

// FirebaseCredential is a verified Firebase identity. The handler verifies
// the raw ID token before constructing this.
type FirebaseCredential struct {
	User *auth.FirebaseUser
}

// GoogleCredential is a Google profile obtained from a completed OAuth
// code exchange.
type GoogleCredential struct {
	User *auth.GoogleUser
}

func (LocalCredential) credential()    {}
func (FirebaseCredential) credential() {}
func (GoogleCredential) credential()   {}

// Register creates a new local-credentials account.
//
// Uniqueness is pre-checked on both username and email BEFORE any write, so
// a rejected registration never mutates the store. The unique indexes close
// the remaining race between two concurrent registrations.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))

	if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		return nil, apperror.ValidationFailed("username",
			fmt.Sprintf("username must be between %d and %d characters", MinUsernameLength, MaxUsernameLength))
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperror.ValidationFailed("email", "invalid email address")
	}
	if len(password) < MinPasswordLength {
		return nil, apperror.ValidationFailed("password",
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, apperror.Conflict("user", "username")
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperror.Conflict("user", "email")
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: hashing password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("service/auth: creating user %q: %w", username, err)
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	return s.issue(user)
}

// Login authenticates a Credential and returns the session.
//
// All three variants produce the same AuthResult; federated variants create
// the account on first sign-in.
func (s *AuthService) Login(ctx context.Context, cred Credential) (*AuthResult, error) {
	switch c := cred.(type) {
	case LocalCredential:
		return s.loginLocal(ctx, c)
	case FirebaseCredential:
		return s.loginFirebase(ctx, c)
	case GoogleCredential:
		return s.loginGoogle(ctx, c)
	default:
		return nil, fmt.Errorf("service/auth: unsupported credential type %T", cred)
	}
}

// loginLocal checks a username + password pair. Unknown username and wrong
// password produce the same error — no account enumeration.
func (s *AuthService) loginLocal(ctx context.Context, c LocalCredential) (*AuthResult, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(c.Username))
	if err != nil {
		return nil, apperror.Unauthorized("invalid username or password")
	}
	if user.PasswordHash == "" {
		// Federated-only account — it has no password to check.
		return nil, apperror.Unauthorized("invalid username or password")
	}
	if err := s.passwords.Verify(user.PasswordHash, c.Password); err != nil {
		return nil, apperror.Unauthorized("invalid username or password")
	}

	s.logger.Info("user logged in",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)
	return s.issue(user)
}

// loginFirebase resolves a verified Firebase identity to a user record:
// by Firebase UID first, then by email (linking the UID onto an existing
// account), creating the account if neither matches.
func (s *AuthService) loginFirebase(ctx context.Context, c FirebaseCredential) (*AuthResult, error) {
	if c.User == nil {
		return nil, fmt.Errorf("service/auth: Firebase user must not be nil")
	}

	if user, err := s.users.GetByFirebaseUID(ctx, c.User.UID); err == nil {
		s.logger.Info("user logged in via Firebase", slog.String("userID", user.ID))
		return s.issue(user)
	}

	// Same email already registered locally — link the Firebase UID so the
	// next sign-in resolves directly.
	if c.User.Email != "" {
		if user, err := s.users.GetByEmail(ctx, strings.ToLower(c.User.Email)); err == nil {
			user.FirebaseUID = c.User.UID
			if err := s.users.Update(ctx, user); err != nil {
				return nil, fmt.Errorf("service/auth: linking Firebase UID to user %s: %w", user.ID, err)
			}
			s.logger.Info("linked Firebase identity to existing account",
				slog.String("userID", user.ID))
			return s.issue(user)
		}
	}

	user, err := s.createFederated(ctx, c.User.Name, c.User.Email, c.User.UID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user registered via Firebase", slog.String("userID", user.ID))
	return s.issue(user)
}

// loginGoogle resolves a Google profile by email, creating the account on
// first sign-in.
func (s *AuthService) loginGoogle(ctx context.Context, c GoogleCredential) (*AuthResult, error) {
	if c.User == nil {
		return nil, fmt.Errorf("service/auth: Google user must not be nil")
	}

	if user, err := s.users.GetByEmail(ctx, strings.ToLower(c.User.Email)); err == nil {
		s.logger.Info("user logged in via Google", slog.String("userID", user.ID))
		return s.issue(user)
	}

	user, err := s.createFederated(ctx, c.User.Name, c.User.Email, "")
	if err != nil {
		return nil, err
	}
	s.logger.Info("user registered via Google", slog.String("userID", user.ID))
	return s.issue(user)
}

// createFederated creates an account for a first-time federated sign-in.
// The username is derived from the display name (or the email local part)
// and de-duplicated with an incrementing numeric suffix.
func (s *AuthService) createFederated(ctx context.Context, name, email, firebaseUID string) (*model.User, error) {
	username, err := s.uniqueUsername(ctx, usernameBase(name, email))
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:    username,
		Email:       strings.ToLower(email),
		FirebaseUID: firebaseUID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("service/auth: creating federated user %q: %w", username, err)
	}
	return user, nil
}

// usernameBase derives a username seed: display name with spaces removed,
// falling back to the email local part, falling back to "user".
func usernameBase(name, email string) string {
	base := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", ""))
	if base == "" {
		if at := strings.Index(email, "@"); at > 0 {
			base = strings.ToLower(email[:at])
		}
	}
	if base == "" {
		base = "user"
	}
	if len(base) > MaxUsernameLength {
		base = base[:MaxUsernameLength]
	}
	return base
}

// uniqueUsername appends an incrementing numeric suffix until the candidate
// is free: "ada", "ada1", "ada2", ...
func (s *AuthService) uniqueUsername(ctx context.Context, base string) (string, error) {
	candidate := base
	for i := 1; ; i++ {
		_, err := s.users.GetByUsername(ctx, candidate)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				return candidate, nil
			}
			return "", fmt.Errorf("service/auth: checking username %q: %w", candidate, err)
		}
		candidate = base + strconv.Itoa(i)
	}
}

// GetUserByID returns the user for the given internal ID. Used by /api/me
// after the middleware extracts the userID from the session token.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, fmt.Errorf("service/auth: user ID must not be empty")
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/auth: fetching user %s: %w", id, err)
	}
	return user, nil
}

// ProfileUpdate carries the editable profile fields. Nil pointers mean
// "leave unchanged".
type ProfileUpdate struct {
	Username *string
	Email    *string
	Bio      *string
}

// UpdateProfile applies a partial profile update. Username and email changes
// are pre-checked for uniqueness against other accounts.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: fetching user %s: %w", userID, err)
	}

	if upd.Username != nil {
		username := strings.TrimSpace(*upd.Username)
		if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
			return nil, apperror.ValidationFailed("username",
				fmt.Sprintf("username must be between %d and %d characters", MinUsernameLength, MaxUsernameLength))
		}
		if username != user.Username {
			if other, err := s.users.GetByUsername(ctx, username); err == nil && other.ID != user.ID {
				return nil, apperror.Conflict("user", "username")
			}
			user.Username = username
		}
	}

	if upd.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*upd.Email))
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, apperror.ValidationFailed("email", "invalid email address")
		}
		if email != user.Email {
			if other, err := s.users.GetByEmail(ctx, email); err == nil && other.ID != user.ID {
				return nil, apperror.Conflict("user", "email")
			}
			user.Email = email
		}
	}

	if upd.Bio != nil {
		if len(*upd.Bio) > MaxBioLength {
			return nil, apperror.ValidationFailed("bio",
				fmt.Sprintf("bio must be %d characters or fewer", MaxBioLength))
		}
		user.Bio = strings.TrimSpace(*upd.Bio)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("service/auth: updating user %s: %w", userID, err)
	}

	s.logger.Info("profile updated", slog.String("userID", user.ID))
	return user, nil
}

// issue generates the session token for a resolved user.
func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}
	return &AuthResult{User: user, Token: token}, nil
}
