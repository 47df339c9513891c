// Package main is a one-shot maintenance command that back-fills locations
// on uploads recorded before geotagging existed. Each upload without a
// location gets a random habitat region for its species; species without
// distribution data are skipped.
//
// Run it directly against the same database the server uses:
//
//	MONGODB_URI=mongodb://localhost:27017 go run ./cmd/retrofit
package main

import (
	"context"
	"log/slog"
	"math/rand"
	"os"

	"github.com/aquatrace/aquatrace/internal/repository/mongodb"
	"github.com/aquatrace/aquatrace/internal/species"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGODB_DB_NAME")
	if dbName == "" {
		dbName = "aquatrace"
	}

	db, err := mongodb.New(mongoURI, dbName)
	if err != nil {
		logger.Error("connecting to MongoDB", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	uploads, err := db.Uploads.ListAll(ctx)
	if err != nil {
		logger.Error("listing uploads", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("scanning uploads", slog.Int("count", len(uploads)))

	var updated, skipped int
	for _, u := range uploads {
		if u.HasLocation() {
			continue
		}

		regions := species.DistributionRegions(u.SpeciesName)
		if len(regions) == 0 {
			logger.Info("no distribution data, skipping",
				slog.String("file", u.Filename),
				slog.String("species", u.SpeciesName),
			)
			skipped++
			continue
		}

		region := regions[rand.Intn(len(regions))]
		if err := db.Uploads.SetLocation(ctx, u.ID, region.Lat, region.Lng); err != nil {
			logger.Error("updating upload",
				slog.String("id", u.ID),
				slog.String("error", err.Error()),
			)
			skipped++
			continue
		}

		logger.Info("location back-filled",
			slog.String("file", u.Filename),
			slog.String("species", u.SpeciesName),
			slog.String("region", region.Name),
		)
		updated++
	}

	logger.Info("retrofit complete",
		slog.Int("updated", updated),
		slog.Int("skipped", skipped),
	)
}
