package history

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/realganganadul/gingin-backend/internal/model/chat"
	historyservice "github.com/realganganadul/gingin-backend/internal/service/history"
	"github.com/realganganadul/gingin-backend/pkg/utils"
)

// Handler serves the transcript persistence endpoints.
type Handler struct {
	historySvc *historyservice.Service
}

// New creates the history handler.
func New(historySvc *historyservice.Service) *Handler {
	return &Handler{historySvc: historySvc}
}

// RegisterRoutes wires the transcript routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/chat_history", h.handleLoad)
	r.Post("/chat_history", h.handleSave)
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "sessionId query parameter is required")
		return
	}

	messages, err := h.historySvc.Load(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if messages == nil {
		messages = []chat.Message{}
	}
	utils.RespondJSON(w, http.StatusOK, messages)
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string         `json:"sessionId"`
		Messages  []chat.Message `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.SessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	if err := h.historySvc.Save(r.Context(), payload.SessionID, payload.Messages); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"success": true})
}
