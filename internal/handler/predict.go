package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aquatrace/aquatrace/internal/apperror"
	"github.com/aquatrace/aquatrace/internal/auth"
	"github.com/aquatrace/aquatrace/internal/identify"
	"github.com/aquatrace/aquatrace/internal/service"
)

// maxUploadBytes caps a multipart upload at 16MB.
const maxUploadBytes = 16 << 20

var errNoFile = apperror.ValidationFailed("file", "an image file is required")

// PredictHandler serves the two faces of the predict flow: the JSON API and
// the HTML-form mode that always redirects back to the dashboard.
type PredictHandler struct {
	uploads *service.UploadService
	users   *service.AuthService
	logger  *slog.Logger
}

// NewPredictHandler creates a PredictHandler.
func NewPredictHandler(uploads *service.UploadService, users *service.AuthService, logger *slog.Logger) *PredictHandler {
	return &PredictHandler{uploads: uploads, users: users, logger: logger}
}

// predictResponse is the JSON contract of POST /api/predict.
// Prediction is null when the pipeline produced the "no result" sentinel —
// that is still status "success", never an error.
type predictResponse struct {
	Status     string           `json:"status"`
	Prediction *identify.Result `json:"prediction"`
	User       predictUser      `json:"user"`
}

type predictUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// HandlePredictAPI identifies an uploaded image.
//
// HTTP: POST /api/predict (multipart/form-data)
// Auth: required
// Fields: "file" (the image), optional "latitude"/"longitude"
func (h *PredictHandler) HandlePredictAPI(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized", Message: "valid authentication required",
		})
		return
	}

	result, err := h.runPredict(r, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, predictResponse{
		Status:     "success",
		Prediction: result, // nil serializes as null
		User:       predictUser{ID: user.ID, Username: user.Username},
	})
}

// HandlePredictForm is the HTML-form variant: it runs the same flow but
// always lands the browser back on the dashboard, whatever the outcome —
// success, sentinel, or error.
//
// HTTP: POST /predict (multipart/form-data)
// Auth: required
func (h *PredictHandler) HandlePredictForm(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if _, err := h.runPredict(r, userID); err != nil {
		h.logger.Warn("form predict failed",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// runPredict parses the multipart upload and runs the predict flow.
func (h *PredictHandler) runPredict(r *http.Request, userID string) (*identify.Result, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, errNoFile
	}
	defer file.Close()

	lat := parseCoord(r.FormValue("latitude"))
	lng := parseCoord(r.FormValue("longitude"))
	// A lone coordinate is meaningless — keep the pair or drop both.
	if lat == nil || lng == nil {
		lat, lng = nil, nil
	}

	return h.uploads.Predict(r.Context(), userID, header.Filename, file, lat, lng)
}

// parseCoord parses an optional coordinate form value. Empty or malformed
// values read as absent rather than failing the upload.
func parseCoord(v string) *float64 {
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}
