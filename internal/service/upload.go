package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aquatrace/aquatrace/internal/identify"
	"github.com/aquatrace/aquatrace/internal/model"
	"github.com/aquatrace/aquatrace/internal/repository"
	"github.com/aquatrace/aquatrace/internal/storage"
)

// Identifier runs the identification pipeline on a stored image.
// *identify.Pipeline is the production implementation; tests substitute a
// fake. A nil result is the "no identification" sentinel, never an error.
type Identifier interface {
	Identify(ctx context.Context, imagePath string) *identify.Result
}

// UploadService orchestrates the predict flow — store the image, run the
// pipeline, persist the outcome — plus the read APIs built on upload history.
type UploadService struct {
	uploads    repository.UploadRepository
	users      repository.UserRepository
	stats      repository.StatsRepository
	store      *storage.FileStore
	identifier Identifier
	logger     *slog.Logger
}

// NewUploadService creates an UploadService with all required dependencies.
func NewUploadService(
	uploads repository.UploadRepository,
	users repository.UserRepository,
	stats repository.StatsRepository,
	store *storage.FileStore,
	identifier Identifier,
	logger *slog.Logger,
) *UploadService {
	return &UploadService{
		uploads:    uploads,
		users:      users,
		stats:      stats,
		store:      store,
		identifier: identifier,
		logger:     logger,
	}
}

// Predict stores an uploaded image, runs identification, and persists the
// result under the uploading user.
//
// A nil result (the pipeline sentinel) is a SUCCESSFUL call with nothing to
// persist — no upload record, no stats change, no error. The handler renders
// it as a null prediction, not a failure.
func (s *UploadService) Predict(ctx context.Context, userID, filename string, r io.Reader, lat, lng *float64) (*identify.Result, error) {
	stored, err := s.store.Save(filename, r)
	if err != nil {
		return nil, fmt.Errorf("service/upload: storing %q: %w", filename, err)
	}

	path, err := s.store.Path(stored)
	if err != nil {
		return nil, fmt.Errorf("service/upload: resolving stored file %q: %w", stored, err)
	}

	result := s.identifier.Identify(ctx, path)
	if result == nil {
		s.logger.Info("identification unavailable, nothing persisted",
			slog.String("userID", userID),
			slog.String("file", stored),
		)
		return nil, nil
	}

	upload := &model.Upload{
		Filename:    stored,
		SpeciesName: result.Name,
		Confidence:  result.Confidence,
		UserID:      userID,
		Latitude:    lat,
		Longitude:   lng,
	}
	if err := s.uploads.Create(ctx, upload); err != nil {
		return nil, fmt.Errorf("service/upload: recording upload for user %s: %w", userID, err)
	}

	s.logger.Info("identification recorded",
		slog.String("userID", userID),
		slog.String("species", result.Name),
		slog.Float64("confidence", result.Confidence),
		slog.String("method", result.DetectionMethod),
	)

	// Stats refresh is best-effort: the identification is already recorded,
	// and the next successful predict recomputes from scratch anyway.
	if err := s.RefreshStats(ctx); err != nil {
		s.logger.Warn("aggregate stats refresh failed",
			slog.String("error", err.Error()))
	}

	return result, nil
}

// RefreshStats recomputes the aggregate-stats document from scratch and
// replaces it. Cheap at this scale, and a full recompute can never drift.
func (s *UploadService) RefreshStats(ctx context.Context) error {
	totalUploads, err := s.uploads.Count(ctx)
	if err != nil {
		return fmt.Errorf("service/upload: counting uploads: %w", err)
	}
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("service/upload: counting users: %w", err)
	}
	speciesNames, err := s.uploads.DistinctSpecies(ctx)
	if err != nil {
		return fmt.Errorf("service/upload: listing distinct species: %w", err)
	}

	return s.stats.Replace(ctx, &model.AggregateStats{
		TotalIdentifications: totalUploads,
		TotalUsers:           totalUsers,
		TotalSpecies:         int64(len(speciesNames)),
		LastUpdated:          time.Now().UTC(),
	})
}

// Stats recomputes the aggregate-stats document and returns it, so reads
// pick up registrations and retrofits that happened since the last predict.
func (s *UploadService) Stats(ctx context.Context) (*model.AggregateStats, error) {
	if err := s.RefreshStats(ctx); err != nil {
		return nil, err
	}
	stats, err := s.stats.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/upload: fetching stats: %w", err)
	}
	return stats, nil
}

// UserHistory returns a user's identification history, newest first.
func (s *UploadService) UserHistory(ctx context.Context, userID string) ([]model.Upload, error) {
	uploads, err := s.uploads.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/upload: listing uploads for user %s: %w", userID, err)
	}
	return uploads, nil
}

// SpeciesLocation is one geotagged identification for the map view.
type SpeciesLocation struct {
	Species   string    `json:"species"`
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
}

// SpeciesLocations returns every geotagged identification, optionally
// filtered to one species. Uploads without a location are skipped.
func (s *UploadService) SpeciesLocations(ctx context.Context, species string) ([]SpeciesLocation, error) {
	var (
		uploads []model.Upload
		err     error
	)
	if species != "" {
		uploads, err = s.uploads.ListBySpecies(ctx, species)
	} else {
		uploads, err = s.uploads.ListAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("service/upload: listing uploads: %w", err)
	}

	locations := make([]SpeciesLocation, 0, len(uploads))
	for _, u := range uploads {
		if !u.HasLocation() {
			continue
		}
		locations = append(locations, SpeciesLocation{
			Species:   u.SpeciesName,
			Latitude:  *u.Latitude,
			Longitude: *u.Longitude,
			Timestamp: u.UploadDate,
		})
	}
	return locations, nil
}

// ExportRecord is one row of a user's history export.
type ExportRecord struct {
	SpeciesName string    `json:"species_name"`
	Confidence  float64   `json:"confidence"`
	Filename    string    `json:"filename"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	UploadDate  time.Time `json:"upload_date"`
}

// Export dumps a user's full identification history for download.
func (s *UploadService) Export(ctx context.Context, userID string) ([]ExportRecord, error) {
	uploads, err := s.uploads.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/upload: exporting uploads for user %s: %w", userID, err)
	}

	records := make([]ExportRecord, 0, len(uploads))
	for _, u := range uploads {
		records = append(records, ExportRecord{
			SpeciesName: u.SpeciesName,
			Confidence:  u.Confidence,
			Filename:    u.Filename,
			Latitude:    u.Latitude,
			Longitude:   u.Longitude,
			UploadDate:  u.UploadDate,
		})
	}
	return records, nil
}

// Dashboard bundles everything the dashboard view needs in one call.
type Dashboard struct {
	User    *model.User           `json:"user"`
	History []model.Upload        `json:"history"`
	Stats   *model.AggregateStats `json:"stats"`
}

// DashboardData assembles the dashboard payload for a user.
func (s *UploadService) DashboardData(ctx context.Context, userID string) (*Dashboard, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/upload: fetching user %s: %w", userID, err)
	}
	history, err := s.UserHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &Dashboard{User: user, History: history, Stats: stats}, nil
}
