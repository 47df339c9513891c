// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the "wiring" layer — the composition root where the whole
// dependency chain is assembled in one place:
//
//	mongodb.DB → repositories → services → handlers → routes
//
// Keeping it out of main.go makes the server testable (a test can build one
// without running main) and keeps main minimal.
package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/aquatrace/aquatrace/internal/auth"
	"github.com/aquatrace/aquatrace/internal/handler"
	"github.com/aquatrace/aquatrace/internal/identify"
	"github.com/aquatrace/aquatrace/internal/middleware"
	"github.com/aquatrace/aquatrace/internal/repository/mongodb"
	"github.com/aquatrace/aquatrace/internal/service"
	"github.com/aquatrace/aquatrace/internal/storage"
)

// Config holds server configuration, loaded from the environment by main.
//
// The identification components are all optional: an empty ModelPath skips
// the local classifier, empty VisionCredentials skips the cloud fallback,
// an empty GeminiAPIKey skips enrichment. The pipeline degrades through
// whatever is configured.
type Config struct {
	Port        int
	MongoURI    string
	MongoDBName string
	JWTSecret   string
	UploadDir   string

	ModelPath       string // ONNX model file; empty disables the local classifier
	OnnxLibraryPath string // onnxruntime shared library; empty uses the default lookup

	VisionCredentials string // service-account JSON; empty disables the vision fallback
	GeminiAPIKey      string // empty disables generative enrichment
	GeminiModel       string // empty uses the default model

	FirebaseCredentials string // service-account JSON; empty disables Firebase sign-in

	GoogleClientID     string // empty disables Google OAuth
	GoogleClientSecret string
	GoogleRedirectURL  string
}

// Server owns the router and every resource that must be released on
// shutdown: the Mongo client, the ONNX session, the Vision client.
type Server struct {
	router  *chi.Mux
	config  Config
	logger  *slog.Logger
	db      *mongodb.DB
	closers []io.Closer
}

// New assembles the full dependency graph.
//
// Optional components that fail to initialize are logged and skipped rather
// than aborting startup — a missing model file must not take down the whole
// service, it just narrows the pipeline.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := mongodb.New(cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		return nil, fmt.Errorf("connecting to MongoDB: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// buildPipeline assembles the identification pipeline from whatever
// components the config enables. Each constructor failure downgrades that
// step to "not configured".
func (s *Server) buildPipeline(ctx context.Context) *identify.Pipeline {
	var classifier identify.Classifier
	if s.config.ModelPath != "" {
		c, err := identify.NewLocalClassifier(s.config.ModelPath, s.config.OnnxLibraryPath, s.logger)
		if err != nil {
			s.logger.Warn("local classifier unavailable",
				slog.String("model", s.config.ModelPath),
				slog.String("error", err.Error()),
			)
		} else {
			classifier = c
			s.closers = append(s.closers, c)
		}
	} else {
		s.logger.Warn("no model path configured, local classification disabled")
	}

	var detector identify.ObjectDetector
	if s.config.VisionCredentials != "" {
		d, err := identify.NewVisionDetector(ctx, s.config.VisionCredentials)
		if err != nil {
			s.logger.Warn("vision fallback unavailable", slog.String("error", err.Error()))
		} else {
			detector = d
			s.closers = append(s.closers, d)
		}
	} else {
		s.logger.Warn("no vision credentials configured, cloud fallback disabled")
	}

	var enricher identify.Enricher
	if s.config.GeminiAPIKey != "" {
		e, err := identify.NewGeminiEnricher(ctx, s.config.GeminiAPIKey, s.config.GeminiModel, s.logger)
		if err != nil {
			s.logger.Warn("generative enrichment unavailable", slog.String("error", err.Error()))
		} else {
			enricher = e
		}
	}

	return identify.NewPipeline(classifier, detector, enricher, s.logger)
}

// setupRoutes configures middleware, wires the dependency chain, and mounts
// every route.
//
// MIDDLEWARE ORDER MATTERS — it executes in the order it's added:
//  1. RequestID — assigns a unique ID to each request (for tracing)
//  2. RealIP — extracts the real client IP from proxy headers
//  3. Recoverer — catches panics and returns 500 instead of crashing
//  4. Logger — logs each request with timing info
func (s *Server) setupRoutes(ctx context.Context) error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	store, err := storage.NewFileStore(s.config.UploadDir)
	if err != nil {
		return fmt.Errorf("creating file store: %w", err)
	}

	var google *auth.GoogleProvider
	if s.config.GoogleClientID != "" && s.config.GoogleClientSecret != "" {
		google = auth.NewGoogleProvider(
			s.config.GoogleClientID,
			s.config.GoogleClientSecret,
			s.config.GoogleRedirectURL,
		)
	} else {
		s.logger.Warn("Google OAuth not configured, /auth/google routes disabled")
	}

	var firebase *auth.FirebaseVerifier
	if s.config.FirebaseCredentials != "" {
		firebase, err = auth.NewFirebaseVerifier(ctx, s.config.FirebaseCredentials)
		if err != nil {
			s.logger.Warn("Firebase verifier unavailable", slog.String("error", err.Error()))
			firebase = nil
		}
	} else {
		s.logger.Warn("Firebase credentials not configured, /auth/firebase disabled")
	}

	pipeline := s.buildPipeline(ctx)

	// Services program against the repository interfaces; the DB exposes
	// one implementation per collection.
	authService := service.NewAuthService(s.db.Users, tokens, passwords, s.logger)
	uploadService := service.NewUploadService(s.db.Uploads, s.db.Users, s.db.Stats, store, pipeline, s.logger)

	authHandler := handler.NewAuthHandler(authService, google, firebase, s.logger)
	predictHandler := handler.NewPredictHandler(uploadService, authService, s.logger)
	apiHandler := handler.NewAPIHandler(uploadService, authService, s.logger)

	requireAuth := auth.RequireAuth(tokens)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	s.router.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/firebase", authHandler.HandleFirebase)
		r.Get("/google/login", authHandler.HandleGoogleLogin)
		r.Get("/google/callback", authHandler.HandleGoogleCallback)
		r.Post("/logout", authHandler.HandleLogout)
	})

	s.router.Route("/api", func(r chi.Router) {
		// Public read APIs
		r.Get("/stats", apiHandler.HandleStats)
		r.Get("/species_locations", apiHandler.HandleSpeciesLocations)
		r.Get("/species/{name}", apiHandler.HandleSpeciesInfo)

		// Authenticated APIs
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/me", authHandler.HandleMe)
			r.Post("/predict", predictHandler.HandlePredictAPI)
			r.Get("/export", apiHandler.HandleExport)
			r.Get("/dashboard", apiHandler.HandleDashboard)
			r.Put("/profile", apiHandler.HandleUpdateProfile)
		})
	})

	// Form-mode predict: same flow as the API, but the browser always lands
	// back on the dashboard.
	s.router.With(requireAuth).Post("/predict", predictHandler.HandlePredictForm)

	// Stored upload serving. The directory only ever contains sanitized
	// names written by the file store.
	uploadsFS := http.FileServer(http.Dir(store.Dir()))
	s.router.Handle("/uploads/*", http.StripPrefix("/uploads/", uploadsFS))

	return nil
}

// Start runs the HTTP server and handles graceful shutdown:
//  1. Stop accepting new connections on SIGINT/SIGTERM
//  2. Wait for in-flight requests to finish (30s timeout)
//  3. Release the pipeline resources and close the Mongo client
func (s *Server) Start() error {
	defer s.close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // identification calls out to cloud APIs
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.MongoDBName),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

// close releases everything the server owns, pipeline components first,
// then the database client.
func (s *Server) close() {
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			s.logger.Warn("closing pipeline component", slog.String("error", err.Error()))
		}
	}
	if err := s.db.Close(); err != nil {
		s.logger.Warn("closing database client", slog.String("error", err.Error()))
	}
}
