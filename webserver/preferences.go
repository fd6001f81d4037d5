package webserver

import (
	"net/http"

	"github.com/malonaz/chatd/user"
)

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	preferences, err := s.userStore.GetPreferences()
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preferences)
}

// handlePutPreferences overlays a partial update onto the stored
// preferences and echoes the full record back.
func (s *Server) handlePutPreferences(w http.ResponseWriter, r *http.Request) {
	var update user.Preferences
	if err := decodeJSON(r, &update); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := s.userStore.SetPreferences(update)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
