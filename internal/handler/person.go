package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/oskarlindh/people-api/internal/domain"
)

// ListPersons handles GET /persons.
func (s *Server) ListPersons(w http.ResponseWriter, r *http.Request) {
	views, err := s.persons.GetAll(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, views)
}

// CreatePerson handles POST /persons.
// The service returns an Outcome rather than an error: success maps to 201,
// a validation failure to 422, and any persistence failure to 500. The
// outcome body is returned in all three cases.
func (s *Server) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req domain.PersonRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, r, http.StatusUnprocessableEntity, requestBody("request body is required"))
		return
	}

	outcome := s.persons.Create(r.Context(), req)
	if !outcome.IsSuccess() {
		// The outcome carries no error value, only its message; a validation
		// failure is recognizable by the sentinel text the service embeds.
		if strings.Contains(outcome.Message, domain.ErrValidation.Error()) {
			writeJSON(w, r, http.StatusUnprocessableEntity, outcome)
			return
		}
		writeJSON(w, r, http.StatusInternalServerError, outcome)
		return
	}

	writeJSON(w, r, http.StatusCreated, outcome)
}

// GetPerson handles GET /persons/{id}.
func (s *Server) GetPerson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, r, http.StatusUnprocessableEntity, requestBody("id must be an integer"))
		return
	}

	view, err := s.persons.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, r, http.StatusNotFound, notFoundBody("person not found"))
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, view)
}

// DeletePerson handles DELETE /persons/{id}.
// A zero affected count means no such person existed and maps to 404;
// one or more maps to 204.
func (s *Server) DeletePerson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, r, http.StatusUnprocessableEntity, requestBody("id must be an integer"))
		return
	}

	affected, err := s.persons.DeleteByID(r.Context(), id)
	if err != nil {
		internalError(w, r, err)
		return
	}
	if affected == 0 {
		writeJSON(w, r, http.StatusNotFound, notFoundBody("person not found"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
