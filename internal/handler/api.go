package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aquatrace/aquatrace/internal/apperror"
	"github.com/aquatrace/aquatrace/internal/auth"
	"github.com/aquatrace/aquatrace/internal/service"
	"github.com/aquatrace/aquatrace/internal/species"
)

// APIHandler serves the read-side JSON APIs: aggregate stats, the species
// map, reference details, history export, dashboard, and profile updates.
type APIHandler struct {
	uploads *service.UploadService
	users   *service.AuthService
	logger  *slog.Logger
}

// NewAPIHandler creates an APIHandler.
func NewAPIHandler(uploads *service.UploadService, users *service.AuthService, logger *slog.Logger) *APIHandler {
	return &APIHandler{uploads: uploads, users: users, logger: logger}
}

// HandleStats returns the aggregate-stats document.
//
// HTTP: GET /api/stats
// Auth: none — stats are public
func (h *APIHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.uploads.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// HandleSpeciesLocations returns the geotagged identifications of one
// species for the map view. The species parameter is required.
//
// HTTP: GET /api/species_locations?species=Sharks
// Auth: none
func (h *APIHandler) HandleSpeciesLocations(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("species")
	if name == "" {
		writeError(w, apperror.ValidationFailed("species", "species query parameter is required"))
		return
	}

	locations, err := h.uploads.SpeciesLocations(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, locations)
}

// speciesInfoResponse augments the reference details with the canonical
// form of the scientific name (authorship and year stripped).
type speciesInfoResponse struct {
	species.Details
	CanonicalScientificName string `json:"canonical_scientific_name,omitempty"`
	Known                   bool   `json:"known"`
}

// HandleSpeciesInfo returns reference details for a species name.
// Unknown names get the generic placeholder record with known=false —
// lookup is tolerant of case and separator differences.
//
// HTTP: GET /api/species/{name}
// Auth: none
func (h *APIHandler) HandleSpeciesInfo(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	details := species.Lookup(name)

	resp := speciesInfoResponse{
		Details: details,
		Known:   species.Known(name),
	}
	if canonical, ok := species.CanonicalScientificName(details.ScientificName); ok {
		resp.CanonicalScientificName = canonical
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleExport dumps the caller's identification history as a downloadable
// JSON attachment.
//
// HTTP: GET /api/export
// Auth: required
func (h *APIHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized", Message: "valid authentication required",
		})
		return
	}

	records, err := h.uploads.Export(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="identification_history.json"`)
	writeJSON(w, http.StatusOK, records)
}

// HandleDashboard returns the dashboard payload: profile, history, stats.
//
// HTTP: GET /api/dashboard
// Auth: required
func (h *APIHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized", Message: "valid authentication required",
		})
		return
	}

	dashboard, err := h.uploads.DashboardData(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

// HandleUpdateProfile applies a partial profile update. Absent fields are
// left unchanged.
//
// HTTP: PUT /api/profile
// Body: {"username": "...", "email": "...", "bio": "..."} — all optional
// Auth: required
func (h *APIHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized", Message: "valid authentication required",
		})
		return
	}

	var req struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
		Bio      *string `json:"bio"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "validation_error", Message: "invalid JSON body",
		})
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), userID, service.ProfileUpdate{
		Username: req.Username,
		Email:    req.Email,
		Bio:      req.Bio,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userPayload{
		ID: user.ID, Username: user.Username, Email: user.Email, Bio: user.Bio,
	})
}
