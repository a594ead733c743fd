package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/LandDroid/Oppacu-Search-by-Customer/internal/database"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginHandler validates the submitted credentials against the database and,
// on success, issues a session token. The database's own login check is the
// only authentication step; no credential is ever stored outside the session.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeLoginError(w, "Username and password required", http.StatusBadRequest)
			return
		}
		if req.Username == "" || req.Password == "" {
			writeLoginError(w, "Username and password required", http.StatusBadRequest)
			return
		}

		creds := database.Credentials{Username: req.Username, Password: req.Password}
		if err := s.validator.Validate(r.Context(), creds); err != nil {
			// The driver's reason stays server-side; the client only learns
			// that the credentials did not work.
			log.Warn().Str("username", req.Username).Err(err).Msg("login failed")
			writeLoginError(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}

		token, err := s.store.Create(req.Username, req.Password)
		if err != nil {
			log.Error().Err(err).Msg("session creation failed")
			writeLoginError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"success": true, "sessionId": token})
	}
}

// LogoutHandler revokes the presented token. It always reports success, even
// for unknown or already-revoked tokens.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token := r.Header.Get("Authorization"); token != "" {
			s.store.Revoke(token)
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}
