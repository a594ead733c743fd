package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	apperrors "github.com/LandDroid/Oppacu-Search-by-Customer/internal/errors"
	"github.com/LandDroid/Oppacu-Search-by-Customer/sessions"
)

// SessionHandler is a handler for a protected route. The validated session is
// an explicit argument rather than a context value: the stored credentials are
// request-scoped state the handler must use for this call only.
type SessionHandler func(w http.ResponseWriter, r *http.Request, session sessions.Session)

// RequireSession gates a protected route. The token is the bare value of the
// Authorization header (no scheme prefix). A missing or expired session ends
// the request with 401; the distinction between the two is logged but never
// exposed to the client. A successful pass-through has already extended the
// session's idle window.
func (s *Server) RequireSession(next SessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" {
			writeJSONError(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		session, err := s.store.Validate(token)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrSessionExpired) {
				log.Debug().Str("path", r.URL.Path).Msg("request with expired session")
			}
			writeJSONError(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next(w, r, session)
	}
}
