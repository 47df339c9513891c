package service

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/aquatrace/aquatrace/internal/identify"
	"github.com/aquatrace/aquatrace/internal/model"
	"github.com/aquatrace/aquatrace/internal/storage"
)

// =========================================================================
// FAKES AND HELPERS
// =========================================================================

type fakeUploadRepo struct {
	uploads []model.Upload
	nextID  int
}

func (f *fakeUploadRepo) Create(_ context.Context, u *model.Upload) error {
	f.nextID++
	u.ID = "upload-" + strconv.Itoa(f.nextID)
	u.UploadDate = time.Now().UTC()
	f.uploads = append(f.uploads, *u)
	return nil
}

func (f *fakeUploadRepo) SetLocation(_ context.Context, id string, lat, lng float64) error {
	for i := range f.uploads {
		if f.uploads[i].ID == id {
			f.uploads[i].Latitude = &lat
			f.uploads[i].Longitude = &lng
			return nil
		}
	}
	return nil
}

func (f *fakeUploadRepo) ListByUser(_ context.Context, userID string) ([]model.Upload, error) {
	var out []model.Upload
	for _, u := range f.uploads {
		if u.UserID == userID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUploadRepo) ListBySpecies(_ context.Context, species string) ([]model.Upload, error) {
	var out []model.Upload
	for _, u := range f.uploads {
		if u.SpeciesName == species {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUploadRepo) ListAll(_ context.Context) ([]model.Upload, error) {
	return append([]model.Upload(nil), f.uploads...), nil
}

func (f *fakeUploadRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.uploads)), nil
}

func (f *fakeUploadRepo) DistinctSpecies(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, u := range f.uploads {
		if !seen[u.SpeciesName] {
			seen[u.SpeciesName] = true
			out = append(out, u.SpeciesName)
		}
	}
	return out, nil
}

type fakeStatsRepo struct {
	stats model.AggregateStats
}

func (f *fakeStatsRepo) Get(_ context.Context) (*model.AggregateStats, error) {
	copied := f.stats
	return &copied, nil
}

func (f *fakeStatsRepo) Replace(_ context.Context, s *model.AggregateStats) error {
	f.stats = *s
	return nil
}

// fakeIdentifier returns a fixed result (or the nil sentinel).
type fakeIdentifier struct {
	result *identify.Result
	called bool
}

func (f *fakeIdentifier) Identify(_ context.Context, _ string) *identify.Result {
	f.called = true
	return f.result
}

type uploadFixture struct {
	svc      *UploadService
	uploads  *fakeUploadRepo
	users    *fakeUserRepo
	stats    *fakeStatsRepo
	identify *fakeIdentifier
}

func newUploadFixture(t *testing.T, result *identify.Result) *uploadFixture {
	t.Helper()

	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	f := &uploadFixture{
		uploads:  &fakeUploadRepo{},
		users:    newFakeUserRepo(),
		stats:    &fakeStatsRepo{},
		identify: &fakeIdentifier{result: result},
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	f.svc = NewUploadService(f.uploads, f.users, f.stats, store, f.identify, logger)
	return f
}

func sharkResult() *identify.Result {
	return &identify.Result{
		Name:            "Sharks",
		ScientificName:  "Selachimorpha",
		Confidence:      92.0,
		DetectionMethod: identify.MethodLocalModel,
	}
}

// =========================================================================
// Predict TESTS
// =========================================================================

func TestPredict_PersistsUploadAndRefreshesStats(t *testing.T) {
	f := newUploadFixture(t, sharkResult())
	f.users.Create(context.Background(), &model.User{Username: "diver", Email: "d@example.com"})

	lat, lng := -18.2871, 147.6992
	result, err := f.svc.Predict(context.Background(), "user-1", "shark.jpg", strings.NewReader("img"), &lat, &lng)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if result == nil {
		t.Fatal("Predict() = nil result, want identification")
	}

	if len(f.uploads.uploads) != 1 {
		t.Fatalf("store has %d uploads, want 1", len(f.uploads.uploads))
	}
	u := f.uploads.uploads[0]
	if u.SpeciesName != "Sharks" || u.Confidence != 92.0 || u.UserID != "user-1" {
		t.Errorf("stored upload = %+v, want Sharks/92/user-1", u)
	}
	if !u.HasLocation() || *u.Latitude != lat {
		t.Errorf("stored upload lost its location: %+v", u)
	}

	if f.stats.stats.TotalIdentifications != 1 {
		t.Errorf("TotalIdentifications = %d, want 1", f.stats.stats.TotalIdentifications)
	}
	if f.stats.stats.TotalSpecies != 1 {
		t.Errorf("TotalSpecies = %d, want 1", f.stats.stats.TotalSpecies)
	}
	if f.stats.stats.TotalUsers != 1 {
		t.Errorf("TotalUsers = %d, want 1", f.stats.stats.TotalUsers)
	}
}

func TestPredict_SentinelPersistsNothing(t *testing.T) {
	f := newUploadFixture(t, nil) // identifier returns the sentinel

	result, err := f.svc.Predict(context.Background(), "user-1", "img.png", strings.NewReader("img"), nil, nil)
	if err != nil {
		t.Fatalf("Predict() error = %v, sentinel must not be an error", err)
	}
	if result != nil {
		t.Fatalf("Predict() = %+v, want nil", result)
	}
	if !f.identify.called {
		t.Error("identifier was never invoked")
	}
	if len(f.uploads.uploads) != 0 {
		t.Errorf("store has %d uploads after sentinel, want 0", len(f.uploads.uploads))
	}
	if f.stats.stats.TotalIdentifications != 0 {
		t.Error("stats were refreshed despite the sentinel")
	}
}

func TestPredict_RejectsUnsupportedExtension(t *testing.T) {
	f := newUploadFixture(t, sharkResult())

	_, err := f.svc.Predict(context.Background(), "user-1", "notes.txt", strings.NewReader("x"), nil, nil)
	if err == nil {
		t.Fatal("Predict() should reject an unsupported file type")
	}
	if f.identify.called {
		t.Error("identifier ran on a rejected file")
	}
}

func TestPredict_UnknownSpeciesIsPersisted(t *testing.T) {
	// "Unknown Marine Species" with confidence 0 is a real result — it is
	// recorded like any other identification.
	f := newUploadFixture(t, &identify.Result{
		Name:            "Unknown Marine Species",
		Confidence:      0,
		DetectionMethod: identify.MethodCloudVision,
	})

	result, err := f.svc.Predict(context.Background(), "user-1", "img.jpg", strings.NewReader("img"), nil, nil)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if result == nil {
		t.Fatal("Predict() = nil, want the unknown-species result")
	}
	if len(f.uploads.uploads) != 1 {
		t.Errorf("store has %d uploads, want 1", len(f.uploads.uploads))
	}
}

// =========================================================================
// READ API TESTS
// =========================================================================

func TestSpeciesLocations_SkipsUploadsWithoutLocation(t *testing.T) {
	f := newUploadFixture(t, nil)

	lat, lng := 12.5, -61.4
	f.uploads.Create(context.Background(), &model.Upload{
		SpeciesName: "Sharks", UserID: "user-1", Latitude: &lat, Longitude: &lng,
	})
	f.uploads.Create(context.Background(), &model.Upload{
		SpeciesName: "Penguin", UserID: "user-1",
	})

	locations, err := f.svc.SpeciesLocations(context.Background(), "")
	if err != nil {
		t.Fatalf("SpeciesLocations() error = %v", err)
	}
	if len(locations) != 1 {
		t.Fatalf("got %d locations, want 1", len(locations))
	}
	if locations[0].Species != "Sharks" || locations[0].Latitude != lat {
		t.Errorf("location = %+v, want the geotagged shark upload", locations[0])
	}
}

func TestSpeciesLocations_FilterBySpecies(t *testing.T) {
	f := newUploadFixture(t, nil)

	lat, lng := 1.0, 2.0
	f.uploads.Create(context.Background(), &model.Upload{
		SpeciesName: "Sharks", UserID: "u", Latitude: &lat, Longitude: &lng,
	})
	f.uploads.Create(context.Background(), &model.Upload{
		SpeciesName: "Seal", UserID: "u", Latitude: &lat, Longitude: &lng,
	})

	locations, err := f.svc.SpeciesLocations(context.Background(), "Seal")
	if err != nil {
		t.Fatalf("SpeciesLocations() error = %v", err)
	}
	if len(locations) != 1 || locations[0].Species != "Seal" {
		t.Errorf("locations = %+v, want only Seal", locations)
	}
}

func TestExport_OnlyOwnUploads(t *testing.T) {
	f := newUploadFixture(t, nil)

	f.uploads.Create(context.Background(), &model.Upload{SpeciesName: "Sharks", UserID: "mine"})
	f.uploads.Create(context.Background(), &model.Upload{SpeciesName: "Seal", UserID: "theirs"})

	records, err := f.svc.Export(context.Background(), "mine")
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(records) != 1 || records[0].SpeciesName != "Sharks" {
		t.Errorf("records = %+v, want only the caller's upload", records)
	}
}

func TestDashboardData(t *testing.T) {
	f := newUploadFixture(t, nil)

	user := &model.User{Username: "diver", Email: "d@example.com"}
	f.users.Create(context.Background(), user)
	f.uploads.Create(context.Background(), &model.Upload{SpeciesName: "Sharks", UserID: user.ID})
	f.svc.RefreshStats(context.Background())

	d, err := f.svc.DashboardData(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("DashboardData() error = %v", err)
	}
	if d.User.Username != "diver" {
		t.Errorf("User.Username = %q, want %q", d.User.Username, "diver")
	}
	if len(d.History) != 1 {
		t.Errorf("History has %d entries, want 1", len(d.History))
	}
	if d.Stats.TotalIdentifications != 1 {
		t.Errorf("Stats.TotalIdentifications = %d, want 1", d.Stats.TotalIdentifications)
	}
}
