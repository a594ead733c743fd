package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/LandDroid/Oppacu-Search-by-Customer/customers"
	"github.com/LandDroid/Oppacu-Search-by-Customer/internal/database"
	apperrors "github.com/LandDroid/Oppacu-Search-by-Customer/internal/errors"
	"github.com/LandDroid/Oppacu-Search-by-Customer/sessions"
)

// CustomersHandler returns the top customers ordered by name, queried with
// the session's own database credentials.
func (s *Server) CustomersHandler() SessionHandler {
	return func(w http.ResponseWriter, r *http.Request, session sessions.Session) {
		rows, err := s.gateway.ListTop(r.Context(), sessionCredentials(session), customers.DefaultListLimit)
		if err != nil {
			log.Error().Err(err).Msg("failed to fetch customers")
			writeJSONError(w, "Failed to load customer data", http.StatusInternalServerError)
			return
		}

		log.Debug().Int("rows", len(rows)).Msg("fetched customers")
		writeJSON(w, http.StatusOK, rows)
	}
}

// CustomerSearchHandler runs an allow-listed substring search across all
// customer rows.
func (s *Server) CustomerSearchHandler() SessionHandler {
	return func(w http.ResponseWriter, r *http.Request, session sessions.Session) {
		column := r.URL.Query().Get("column")
		term := r.URL.Query().Get("term")

		rows, err := s.gateway.Search(r.Context(), sessionCredentials(session), column, term)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrInvalidSearchColumn) {
				writeJSONError(w, "Invalid search column", http.StatusBadRequest)
				return
			}
			log.Error().Str("column", column).Err(err).Msg("customer search failed")
			writeJSONError(w, "Search failed", http.StatusInternalServerError)
			return
		}

		log.Debug().Str("column", column).Int("rows", len(rows)).Msg("search results")
		writeJSON(w, http.StatusOK, rows)
	}
}

// sessionCredentials extracts the database login held by the session, as read
// at validation time. A session revoked mid-request does not retract the
// credentials from an in-flight query.
func sessionCredentials(session sessions.Session) database.Credentials {
	return database.Credentials{Username: session.Username, Password: session.Password}
}
