package webserver

import (
	"encoding/json"
	"net/http"

	"github.com/malonaz/chatd/internal/debug"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		debug.GetLogger().Error("encoding response", "error", err)
	}
}

// writeError writes the JSON {error} body used by every endpoint.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeInternalError logs the cause and returns a generic message.
func writeInternalError(w http.ResponseWriter, err error) {
	debug.GetLogger().Error("internal server error", "error", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

func decodeJSON(r *http.Request, out any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(out)
}
