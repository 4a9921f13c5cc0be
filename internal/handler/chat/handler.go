package chat

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	authservice "github.com/realganganadul/gingin-backend/internal/auth"
	chatmodel "github.com/realganganadul/gingin-backend/internal/model/chat"
	aiservice "github.com/realganganadul/gingin-backend/internal/service/ai"
	"github.com/realganganadul/gingin-backend/internal/session"
	"github.com/realganganadul/gingin-backend/pkg/utils"
)

// Gateway-level failures collapse to fixed texts; detail stays in the logs.
const (
	invalidRequestMessage = "Invalid request format."
	modelMissingMessage   = "Server is not configured correctly. The model API key is missing."
	invalidKeyMessage     = "The configured model API key is invalid. Please check the server configuration."
	genericErrorMessage   = "Sorry, an error occurred while communicating with the AI. Please try again later."
)

// Gateway runs one chat request through the dispatch cycle.
type Gateway interface {
	Chat(ctx context.Context, role session.Role, history []chatmodel.Turn, message string) (string, error)
}

// Handler serves the chat endpoint.
type Handler struct {
	gateway  Gateway
	sessions session.Store
}

// New creates the chat handler. Either dependency may be nil when its binding
// is missing: a nil session store degrades every request to the customer
// role, a nil gateway degrades the endpoint to a configuration error.
func New(gateway Gateway, sessions session.Store) *Handler {
	return &Handler{gateway: gateway, sessions: sessions}
}

// RegisterRoutes wires the chat route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	if h.gateway == nil {
		log.Println("[chat] request rejected: model not configured")
		utils.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"text": modelMissingMessage})
		return
	}

	var payload struct {
		History []chatmodel.Turn `json:"history"`
		Message *chatmodel.Turn  `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondJSON(w, http.StatusBadRequest, map[string]string{"text": invalidRequestMessage})
		return
	}
	if payload.Message == nil || payload.Message.Text == "" {
		utils.RespondJSON(w, http.StatusBadRequest, map[string]string{"text": invalidRequestMessage})
		return
	}

	role := h.resolveRole(r)

	text, err := h.gateway.Chat(r.Context(), role, payload.History, payload.Message.Text)
	if err != nil {
		log.Printf("[chat] error processing chat: %v", err)
		message := genericErrorMessage
		if aiservice.IsUpstreamAuthError(err) {
			message = invalidKeyMessage
		}
		utils.RespondJSON(w, http.StatusInternalServerError, map[string]string{"text": message})
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"text": text})
}

// resolveRole never blocks the request: absent cookie, missing store, or a
// store failure all degrade to the customer role.
func (h *Handler) resolveRole(r *http.Request) session.Role {
	if h.sessions == nil {
		return session.RoleNone
	}
	cookie, err := r.Cookie(authservice.SessionCookieName)
	if err != nil {
		return session.RoleNone
	}
	return h.sessions.Resolve(r.Context(), cookie.Value)
}
