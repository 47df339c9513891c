package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/aquatrace/aquatrace/internal/apperror"
	"github.com/aquatrace/aquatrace/internal/auth"
	"github.com/aquatrace/aquatrace/internal/model"
)

// =========================================================================
// FAKES AND HELPERS
// =========================================================================

// fakeUserRepo is an in-memory implementation of repository.UserRepository.
// A fake (not a mock framework) keeps tests dependency-free and easy to
// read — you can see exactly what it does.
type fakeUserRepo struct {
	users  map[string]*model.User // keyed by internal ID
	nextID int
	// set to a non-nil error to simulate a database failure
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User), nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return apperror.Conflict("user", "username or email")
		}
	}
	user.ID = "user-" + strconv.Itoa(f.nextID)
	f.nextID++
	user.CreatedAt = time.Now().UTC()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return apperror.NotFound("user", user.ID)
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, apperror.NotFound("user", id)
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("user", username)
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (f *fakeUserRepo) GetByFirebaseUID(_ context.Context, uid string) (*model.User, error) {
	for _, u := range f.users {
		if u.FirebaseUID == uid {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("user", uid)
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

// newTestAuthService returns an AuthService wired with fake dependencies.
func newTestAuthService(t *testing.T, repo *fakeUserRepo) *AuthService {
	t.Helper()

	ts, err := auth.NewTokenService("test-secret-at-least-16-chars!!")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	// Cost 4 is bcrypt minimum — makes tests fast
	ps := auth.NewPasswordServiceForTest(4)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewAuthService(repo, ts, ps, logger)
}

// =========================================================================
// Register TESTS
// =========================================================================

func TestRegister_Success(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo)

	result, err := svc.Register(context.Background(), "diver", "diver@example.com", "secret99")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if result.User.ID == "" {
		t.Error("Register() user has no ID")
	}
	if result.Token == "" {
		t.Error("Register() returned empty token")
	}
	if result.User.Username != "diver" {
		t.Errorf("Username = %q, want %q", result.User.Username, "diver")
	}
}

func TestRegister_DuplicateUsernameFailsWithoutMutation(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo)

	if _, err := svc.Register(context.Background(), "diver", "first@example.com", "secret99"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, err := svc.Register(context.Background(), "diver", "second@example.com", "secret99")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("Register() error = %v, want conflict", err)
	}
	if len(repo.users) != 1 {
		t.Errorf("store has %d users after rejected registration, want 1", len(repo.users))
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo)

	svc.Register(context.Background(), "one", "same@example.com", "secret99")

	_, err := svc.Register(context.Background(), "two", "same@example.com", "secret99")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("Register() error = %v, want conflict", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo())

	cases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"short username", "ab", "a@example.com", "secret99"},
		{"bad email", "diver", "not-an-email", "secret99"},
		{"short password", "diver", "a@example.com", "abc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.username, tc.email, tc.password)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("Register() error = %v, want validation error", err)
			}
		})
	}
}

// =========================================================================
// Login TESTS — local credentials
// =========================================================================

func TestLogin_Local(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo)

	svc.Register(context.Background(), "diver", "diver@example.com", "secret99")

	result, err := svc.Login(context.Background(), LocalCredential{Username: "diver", Password: "secret99"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.Token == "" {
		t.Error("Login() returned empty token")
	}
}

func TestLogin_LocalWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo)

	svc.Register(context.Background(), "diver", "diver@example.com", "secret99")

	_, err := svc.Login(context.Background(), LocalCredential{Username: "diver", Password: "wrong"})
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Fatalf("Login() error = %v, want unauthorized", err)
	}
}

func TestLogin_LocalUnknownUser(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo())

	_, err := svc.Login(context.Background(), LocalCredential{Username: "ghost", Password: "x"})
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Fatalf("Login() error = %v, want unauthorized", err)
	}
}

func TestLogin_LocalFederatedOnlyAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo)

	// Account created via Google — no password hash to verify against.
	svc.Login(context.Background(), GoogleCredential{User: &auth.GoogleUser{
		ID: "g-1", Email: "fed@example.com", Name: "Fed User",
	}})

	_, err := svc.Login(context.Background(), LocalCredential{Username: "feduser", Password: "anything"})
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Fatalf("Login() error = %v, want unauthorized", err)
	}
}

// =========================================================================
// Login TESTS — federated
// =========================================================================

func TestLogin_FirebaseFirstSignInCreatesAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo)

	result, err := svc.Login(context.Background(), FirebaseCredential{User: &auth.FirebaseUser{
		UID: "fb-uid-1", Email: "new@example.com", Name: "New Diver",
	}})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.User.Username != "newdiver" {
		t.Errorf("Username = %q, want %q (derived from display name)", result.User.Username, "newdiver")
	}
	if result.User.FirebaseUID != "fb-uid-1" {
		t.Errorf("FirebaseUID = %q, want %q", result.User.FirebaseUID, "fb-uid-1")
	}
	if len(repo.users) != 1 {
		t.Errorf("store has %d users, want 1", len(repo.users))
	}
}

func TestLogin_FirebaseSecondSignInResolvesSameAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo)

	first, _ := svc.Login(context.Background(), FirebaseCredential{User: &auth.FirebaseUser{
		UID: "fb-uid-1", Email: "new@example.com", Name: "New Diver",
	}})
	second, err := svc.Login(context.Background(), FirebaseCredential{User: &auth.FirebaseUser{
		UID: "fb-uid-1", Email: "new@example.com", Name: "New Diver",
	}})
	if err != nil {
		t.Fatalf("second Login() error = %v", err)
	}
	if first.User.ID != second.User.ID {
		t.Errorf("second sign-in resolved user %s, want %s", second.User.ID, first.User.ID)
	}
	if len(repo.users) != 1 {
		t.Errorf("store has %d users, want 1", len(repo.users))
	}
}

func TestLogin_FirebaseLinksExistingEmailAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo)

	local, _ := svc.Register(context.Background(), "diver", "diver@example.com", "secret99")

	result, err := svc.Login(context.Background(), FirebaseCredential{User: &auth.FirebaseUser{
		UID: "fb-uid-9", Email: "diver@example.com", Name: "Diver",
	}})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.User.ID != local.User.ID {
		t.Errorf("Firebase sign-in created user %s, want link to existing %s", result.User.ID, local.User.ID)
	}
	if stored := repo.users[local.User.ID]; stored.FirebaseUID != "fb-uid-9" {
		t.Errorf("stored FirebaseUID = %q, want %q", stored.FirebaseUID, "fb-uid-9")
	}
}

func TestLogin_GoogleUsernameCollisionGetsSuffix(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo)

	svc.Register(context.Background(), "ada", "ada@example.com", "secret99")

	result, err := svc.Login(context.Background(), GoogleCredential{User: &auth.GoogleUser{
		ID: "g-2", Email: "ada@other.com", Name: "Ada",
	}})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.User.Username != "ada1" {
		t.Errorf("Username = %q, want %q (numeric suffix on collision)", result.User.Username, "ada1")
	}
}

// =========================================================================
// UpdateProfile TESTS
// =========================================================================

func strPtr(s string) *string { return &s }

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo)

	reg, _ := svc.Register(context.Background(), "diver", "diver@example.com", "secret99")

	user, err := svc.UpdateProfile(context.Background(), reg.User.ID, ProfileUpdate{
		Bio: strPtr("Reef surveys since 2019."),
	})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if user.Bio != "Reef surveys since 2019." {
		t.Errorf("Bio = %q, want updated value", user.Bio)
	}
	if user.Username != "diver" {
		t.Errorf("Username = %q, want unchanged", user.Username)
	}
}

func TestUpdateProfile_UsernameConflict(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo)

	svc.Register(context.Background(), "taken", "taken@example.com", "secret99")
	reg, _ := svc.Register(context.Background(), "diver", "diver@example.com", "secret99")

	_, err := svc.UpdateProfile(context.Background(), reg.User.ID, ProfileUpdate{
		Username: strPtr("taken"),
	})
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("UpdateProfile() error = %v, want conflict", err)
	}
}
