// Package main is the entry point for the aquatrace server.
//
// main is kept minimal — its job is to:
//  1. Read configuration from environment variables
//  2. Create the logger
//  3. Hand everything to internal/server and start
//
// All actual logic lives in the imported packages.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/aquatrace/aquatrace/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	mongoDBName := os.Getenv("MONGODB_DB_NAME")
	if mongoDBName == "" {
		mongoDBName = "aquatrace"
	}

	// JWT_SECRET must be a long random string. Use:
	//   JWT_SECRET=$(openssl rand -hex 32)
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Error("JWT_SECRET not set — refusing to start without a signing key")
		os.Exit(1)
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "data/uploads"
	}

	googleRedirect := os.Getenv("GOOGLE_REDIRECT_URL")
	if googleRedirect == "" {
		googleRedirect = fmt.Sprintf("http://localhost:%d/auth/google/callback", port)
	}

	cfg := server.Config{
		Port:        port,
		MongoURI:    mongoURI,
		MongoDBName: mongoDBName,
		JWTSecret:   jwtSecret,
		UploadDir:   uploadDir,

		ModelPath:       os.Getenv("MODEL_PATH"),
		OnnxLibraryPath: os.Getenv("ONNXRUNTIME_LIB_PATH"),

		VisionCredentials: os.Getenv("VISION_CREDENTIALS_PATH"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       os.Getenv("GEMINI_MODEL"),

		FirebaseCredentials: os.Getenv("FIREBASE_CREDENTIALS_PATH"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  googleRedirect,
	}

	srv, err := server.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until the server is shut down (Ctrl+C or SIGTERM)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
