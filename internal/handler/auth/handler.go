package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	authservice "github.com/realganganadul/gingin-backend/internal/auth"
	"github.com/realganganadul/gingin-backend/pkg/utils"
)

const notConfiguredMessage = "Server is not configured correctly. Please contact the administrator."

// Handler serves the authentication endpoints.
type Handler struct {
	authSvc *authservice.Service
	// cookieMaxAge mirrors the session store TTL, in seconds.
	cookieMaxAge int
}

// New creates the auth handler.
func New(authSvc *authservice.Service, cookieMaxAge int) *Handler {
	return &Handler{authSvc: authSvc, cookieMaxAge: cookieMaxAge}
}

// RegisterRoutes wires the authentication routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.Get("/session", h.handleSession)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !h.authSvc.Configured() {
		log.Println("[auth] login unavailable: admin credentials or session store not configured")
		utils.RespondJSON(w, http.StatusServiceUnavailable, map[string]any{
			"success": false,
			"error":   notConfiguredMessage,
		})
		return
	}

	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Invalid request body.",
		})
		return
	}

	sessionID, err := h.authSvc.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			utils.RespondJSON(w, http.StatusUnauthorized, map[string]any{
				"success": false,
				"error":   "Invalid username or password.",
			})
			return
		}
		// Store failure: fail closed.
		log.Printf("[auth] login failed: %v", err)
		utils.RespondJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "Unable to create a session. Please try again later.",
		})
		return
	}

	h.setSessionCookie(w, sessionID)
	utils.RespondJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleLogout always reports success, even when no session existed.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(authservice.SessionCookieName); err == nil {
		h.authSvc.Logout(r.Context(), cookie.Value)
	}
	h.clearSessionCookie(w)
	utils.RespondJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleSession reports boolean login state only.
func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	if !h.authSvc.Configured() {
		log.Println("[auth] session check unavailable: session store not configured")
		utils.RespondError(w, http.StatusServiceUnavailable, "Server session storage not configured.")
		return
	}

	loggedIn := false
	if cookie, err := r.Cookie(authservice.SessionCookieName); err == nil {
		loggedIn = h.authSvc.IsLoggedIn(r.Context(), cookie.Value)
	}
	utils.RespondJSON(w, http.StatusOK, map[string]bool{"isLoggedIn": loggedIn})
}

// The UI and backend may sit on different origins, so the cookie must be
// cross-site-sendable: SameSite=None requires Secure.
func (h *Handler) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     authservice.SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   h.cookieMaxAge,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     authservice.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}
