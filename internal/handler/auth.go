package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/xid"

	"github.com/aquatrace/aquatrace/internal/auth"
	"github.com/aquatrace/aquatrace/internal/service"
)

// sessionCookieAge matches the JWT lifetime — the cookie and the token it
// carries expire together.
var sessionCookieAge = int((24 * time.Hour).Seconds())

// AuthHandler manages the three sign-in flows and session management.
//
// HANDLER RESPONSIBILITIES:
//   - HandleRegister / HandleLogin → local credentials
//   - HandleFirebase               → exchange a Firebase ID token for a session
//   - HandleGoogleLogin/Callback   → the Google OAuth redirect dance
//   - HandleLogout                 → clear the session cookie
//   - HandleMe                     → return the logged-in user's profile
//
// The google and firebase dependencies are nil when those providers aren't
// configured; their routes then answer 503.
type AuthHandler struct {
	svc      *service.AuthService
	google   *auth.GoogleProvider
	firebase *auth.FirebaseVerifier
	logger   *slog.Logger
}

// NewAuthHandler creates an AuthHandler. Pass nil for google or firebase to
// disable those sign-in paths.
func NewAuthHandler(
	svc *service.AuthService,
	google *auth.GoogleProvider,
	firebase *auth.FirebaseVerifier,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		svc:      svc,
		google:   google,
		firebase: firebase,
		logger:   logger,
	}
}

// userPayload is the public view of a user returned by auth endpoints.
type userPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Bio      string `json:"bio,omitempty"`
}

// HandleRegister creates a local-credentials account.
//
// HTTP: POST /auth/register
// Body: {"username": "...", "email": "...", "password": "..."}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "validation_error", Message: "invalid JSON body",
		})
		return
	}

	result, err := h.svc.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setSessionCookie(w, result.Token)
	writeJSON(w, http.StatusCreated, toUserPayload(result))
}

// HandleLogin authenticates local credentials.
//
// HTTP: POST /auth/login
// Body: {"username": "...", "password": "..."}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "validation_error", Message: "invalid JSON body",
		})
		return
	}

	result, err := h.svc.Login(r.Context(), service.LocalCredential{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.setSessionCookie(w, result.Token)
	writeJSON(w, http.StatusOK, toUserPayload(result))
}

// HandleFirebase exchanges a client-side Firebase ID token for a first-party
// session. The Firebase token is verified once and never stored.
//
// HTTP: POST /auth/firebase
// Body: {"id_token": "..."}
func (h *AuthHandler) HandleFirebase(w http.ResponseWriter, r *http.Request) {
	if h.firebase == nil {
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{
			Error: "unavailable", Message: "Firebase sign-in is not configured",
		})
		return
	}

	var req struct {
		IDToken string `json:"id_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IDToken == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "validation_error", Message: "id_token is required",
		})
		return
	}

	fbUser, err := h.firebase.Verify(r.Context(), req.IDToken)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.svc.Login(r.Context(), service.FirebaseCredential{User: fbUser})
	if err != nil {
		writeError(w, err)
		return
	}

	h.setSessionCookie(w, result.Token)
	writeJSON(w, http.StatusOK, toUserPayload(result))
}

// HandleGoogleLogin redirects the browser to Google's consent screen.
//
// HTTP: GET /auth/google/login
//
// CSRF PROTECTION VIA STATE:
// We generate a random state string and store it in a short-lived cookie.
// The callback verifies the returned state matches, proving the flow was
// initiated by this server.
func (h *AuthHandler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if h.google == nil {
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{
			Error: "unavailable", Message: "Google sign-in is not configured",
		})
		return
	}

	state := xid.New().String()

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		MaxAge:   600, // 10 minutes
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.google.AuthURL(state), http.StatusTemporaryRedirect)
}

// HandleGoogleCallback completes the OAuth login flow.
//
// HTTP: GET /auth/google/callback?code=xxx&state=yyy
//
// FLOW:
//  1. Validate the state parameter (CSRF check)
//  2. Exchange the code for a Google user profile
//  3. Resolve or create the account via the auth service
//  4. Issue the session cookie and redirect to the dashboard
func (h *AuthHandler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.google == nil {
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{
			Error: "unavailable", Message: "Google sign-in is not configured",
		})
		return
	}

	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" {
		h.logger.Warn("google callback: missing state cookie")
		http.Error(w, "invalid OAuth state", http.StatusBadRequest)
		return
	}
	if r.URL.Query().Get("state") != stateCookie.Value {
		h.logger.Warn("google callback: state mismatch")
		http.Error(w, "invalid OAuth state", http.StatusBadRequest)
		return
	}

	// The state cookie is single-use
	http.SetCookie(w, &http.Cookie{
		Name:   "oauth_state",
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	// User denied authorization on the consent screen
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.logger.Info("google callback: user denied authorization",
			slog.String("error", errParam))
		http.Redirect(w, r, "/?auth=denied", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing OAuth code", http.StatusBadRequest)
		return
	}

	gUser, err := h.google.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("google callback: exchange failed", slog.String("error", err.Error()))
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}

	result, err := h.svc.Login(r.Context(), service.GoogleCredential{User: gUser})
	if err != nil {
		h.logger.Error("google callback: login failed", slog.String("error", err.Error()))
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, result.Token)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// HandleLogout clears the session cookie.
//
// HTTP: POST /auth/logout
//
// Since sessions are stateless (JWT), "logout" just means deleting the
// client-side cookie. The token remains technically valid until expiry,
// but without the cookie the browser can't send it.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// HandleMe returns the currently authenticated user's profile.
//
// HTTP: GET /api/me
// Auth: required (RequireAuth middleware sets userID in context)
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		// Should never happen on a RequireAuth-protected route, but be safe.
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized", Message: "valid authentication required",
		})
		return
	}

	user, err := h.svc.GetUserByID(r.Context(), userID)
	if err != nil {
		h.logger.Error("HandleMe: user lookup failed", slog.String("userID", userID))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userPayload{
		ID: user.ID, Username: user.Username, Email: user.Email, Bio: user.Bio,
	})
}

// setSessionCookie stores the JWT as an HttpOnly cookie.
// HttpOnly = JavaScript cannot read it (XSS protection).
// SameSite=Lax = sent on top-level navigations but not cross-site POSTs.
// Secure should be true in production (HTTPS only).
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   sessionCookieAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func toUserPayload(result *service.AuthResult) userPayload {
	return userPayload{
		ID:       result.User.ID,
		Username: result.User.Username,
		Email:    result.User.Email,
		Bio:      result.User.Bio,
	}
}
