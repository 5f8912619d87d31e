package handler

import "net/http"

// GetHealth handles GET /healthz.
// The service wraps the store's round-trip probe in an Outcome; a success
// outcome maps to 200, an error outcome to 503. The outcome body is returned
// either way so callers always see status and message.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	outcome := s.persons.Health(r.Context())
	if !outcome.IsSuccess() {
		writeJSON(w, r, http.StatusServiceUnavailable, outcome)
		return
	}
	writeJSON(w, r, http.StatusOK, outcome)
}
