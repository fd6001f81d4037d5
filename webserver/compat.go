package webserver

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/malonaz/chatd/chats"
)

// handleCreateChat echoes a canonical chat object. No server-side
// persistence happens here: the caller's repository owns the durable write.
func (s *Server) handleCreateChat(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID    string `json:"userId"`
		Title     string `json:"title"`
		Model     string `json:"model"`
		ProjectID string `json:"projectId"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.UserID == "" {
		writeError(w, http.StatusBadRequest, "Missing userId")
		return
	}

	title := body.Title
	if title == "" {
		title = "New Chat"
	}
	model := body.Model
	if model == "" {
		model = s.config.DefaultModel
	}

	now := time.Now().UTC()
	chat := &chats.Chat{
		ID:        uuid.New().String(),
		Title:     title,
		Model:     model,
		UserID:    body.UserID,
		ProjectID: body.ProjectID,
		Public:    true,
		Pinned:    false,
		PinnedAt:  nil,
		CreatedAt: now,
		UpdatedAt: now,
	}
	writeJSON(w, http.StatusOK, map[string]any{"chat": chat})
}

// handleUpdateChatModel acknowledges the model switch. Local-only mode: the
// durable update is handled client-side.
func (s *Server) handleUpdateChatModel(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ChatID string `json:"chatId"`
		Model  string `json:"model"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.ChatID == "" || body.Model == "" {
		writeError(w, http.StatusBadRequest, "Missing chatId or model")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleToggleChatPin acknowledges the pin toggle.
func (s *Server) handleToggleChatPin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ChatID string `json:"chatId"`
		Pinned *bool  `json:"pinned"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.ChatID == "" || body.Pinned == nil {
		writeError(w, http.StatusBadRequest, "Missing chatId or pinned")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
