// Package repository defines the storage interfaces the service layer
// programs against. The mongodb subpackage is the production implementation;
// tests substitute in-memory mocks.
package repository

import (
	"context"

	"github.com/aquatrace/aquatrace/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByFirebaseUID(ctx context.Context, uid string) (*model.User, error)
	Count(ctx context.Context) (int64, error)
}

type UploadRepository interface {
	Create(ctx context.Context, upload *model.Upload) error
	SetLocation(ctx context.Context, id string, lat, lng float64) error
	ListByUser(ctx context.Context, userID string) ([]model.Upload, error)
	ListBySpecies(ctx context.Context, species string) ([]model.Upload, error)
	ListAll(ctx context.Context) ([]model.Upload, error)
	Count(ctx context.Context) (int64, error)
	DistinctSpecies(ctx context.Context) ([]string, error)
}

type StatsRepository interface {
	Get(ctx context.Context) (*model.AggregateStats, error)
	// Replace overwrites the single stats document, creating it if absent.
	Replace(ctx context.Context, stats *model.AggregateStats) error
}
