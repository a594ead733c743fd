package server

import (
	"encoding/json"
	"net/http"
)

const contentTypeJSON = "application/json; charset=utf-8"

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeJSONError writes the generic {"error": ...} body used by the query
// routes.
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeLoginError writes the {"success": false, "message": ...} body used by
// the login route.
func writeLoginError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, map[string]any{"success": false, "message": message})
}
