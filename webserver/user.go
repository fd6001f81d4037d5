package webserver

import (
	"net/http"
	"time"
)

// handleGetUserKeys reports that keys are stored locally. The actual map
// never leaves the local store.
func (s *Server) handleGetUserKeys(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"keys":    map[string]string{},
		"message": "API keys are stored locally",
	})
}

// handleSetUserKey persists a provider key in the local store.
func (s *Server) handleSetUserKey(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Provider string `json:"provider"`
		APIKey   string `json:"apiKey"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.Provider == "" || body.APIKey == "" {
		writeError(w, http.StatusBadRequest, "Provider and API key are required")
		return
	}
	if err := s.userStore.SetAPIKey(body.Provider, body.APIKey); err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "API key saved locally",
	})
}

// handleUserKeyStatus reports whether a server-side key exists for the
// provider. Local-only mode: always false.
func (s *Server) handleUserKeyStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Provider string `json:"provider"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"hasUserKey": false,
		"provider":   body.Provider,
	})
}

// handleProviders returns a provider→bool map of server-side key presence.
// Keys are managed locally, so every provider reports false.
func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	status := map[string]bool{}
	for _, provider := range s.config.Providers {
		status[provider.Name] = false
	}
	writeJSON(w, http.StatusOK, status)
}

// handleRateLimits returns usage defaults derived from configuration; usage
// tracking itself is handled client-side.
func (s *Server) handleRateLimits(w http.ResponseWriter, r *http.Request) {
	dailyLimit := s.config.DailyMessageLimit
	writeJSON(w, http.StatusOK, map[string]any{
		"dailyCount":    0,
		"dailyProCount": 0,
		"dailyLimit":    dailyLimit,
		"remaining":     dailyLimit,
		"remainingPro":  s.config.DailyProModelLimit,
	})
}

// handleCreateGuest echoes a guest user object for API compatibility.
func (s *Server) handleCreateGuest(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID string `json:"userId"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.UserID == "" {
		writeError(w, http.StatusBadRequest, "Missing userId")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user": map[string]any{
			"id":            body.UserID,
			"email":         body.UserID + "@anonymous.example",
			"anonymous":     true,
			"message_count": 0,
			"premium":       false,
			"created_at":    time.Now().UTC(),
		},
	})
}

// handleListProjects returns an empty list; projects are managed
// client-side.
func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, []any{})
}

// handleCreateProject echoes a mock project for compatibility.
func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":         time.Now().UTC().Format("20060102150405"),
		"name":       body.Name,
		"user_id":    "local-user",
		"created_at": time.Now().UTC(),
	})
}
