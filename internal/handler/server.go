// Package handler implements the HTTP boundary of the People API.
// Handlers decode requests, call the service layer, and map service results
// to status codes and JSON bodies. Methods are split into resource-specific
// files (person.go, post.go, health.go) but all share the same Server struct.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/oskarlindh/people-api/internal/domain"
)

// PersonServicer defines the business operations the person handlers depend
// on. Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type PersonServicer interface {
	GetAll(ctx context.Context) ([]domain.PersonView, error)
	GetByID(ctx context.Context, id int64) (domain.PersonView, error)
	Create(ctx context.Context, req domain.PersonRequest) domain.Outcome[domain.PersonView]
	DeleteByID(ctx context.Context, id int64) (int64, error)
	Health(ctx context.Context) domain.Outcome[string]
}

// PostServicer defines the business operations the post and tag handlers
// depend on.
type PostServicer interface {
	CreatePost(ctx context.Context, post domain.Post) (domain.Post, error)
	CreateTag(ctx context.Context, tag domain.Tag) (domain.Tag, error)
	ListPosts(ctx context.Context) ([]domain.Post, error)
	ListTags(ctx context.Context) ([]domain.Tag, error)
	AttachTagToPost(ctx context.Context, postID, tagID int64) (bool, error)
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	persons PersonServicer
	posts   PostServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(persons PersonServicer, posts PostServicer) *Server {
	return &Server{persons: persons, posts: posts}
}

// Routes returns the full route tree of the API.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/persons", func(r chi.Router) {
		r.Get("/", s.ListPersons)
		r.Post("/", s.CreatePerson)
		r.Get("/{id}", s.GetPerson)
		r.Delete("/{id}", s.DeletePerson)
	})

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", s.ListPosts)
		r.Post("/", s.CreatePost)
		r.Put("/{postID}/tags/{tagID}", s.AttachTagToPost)
	})

	r.Route("/tags", func(r chi.Router) {
		r.Get("/", s.ListTags)
		r.Post("/", s.CreateTag)
	})

	return r
}

// writeJSON encodes v as the response body with the given status code.
// Encoding failures are logged, not surfaced — the status line is already gone.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "encode response", "error", err)
	}
}

// decodeJSON decodes the request body into v.
func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// pathID parses the named chi URL parameter as an int64 id.
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
