package handler

import (
	"errors"
	"net/http"

	"github.com/oskarlindh/people-api/internal/domain"
)

// createPostRequest is the wire shape for POST /posts.
type createPostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	PersonID int64  `json:"person_id"`
}

// createTagRequest is the wire shape for POST /tags.
type createTagRequest struct {
	Label string `json:"label"`
}

// ListPosts handles GET /posts.
func (s *Server) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.posts.ListPosts(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, posts)
}

// CreatePost handles POST /posts.
func (s *Server) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, r, http.StatusUnprocessableEntity, requestBody("request body is required"))
		return
	}

	created, err := s.posts.CreatePost(r.Context(), domain.Post{
		Title:    req.Title,
		Content:  req.Content,
		PersonID: req.PersonID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeJSON(w, r, http.StatusUnprocessableEntity, validationBody(err))
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, created)
}

// ListTags handles GET /tags.
func (s *Server) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.posts.ListTags(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, tags)
}

// CreateTag handles POST /tags.
func (s *Server) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req createTagRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, r, http.StatusUnprocessableEntity, requestBody("request body is required"))
		return
	}

	created, err := s.posts.CreateTag(r.Context(), domain.Tag{Label: req.Label})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeJSON(w, r, http.StatusUnprocessableEntity, validationBody(err))
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, created)
}

// AttachTagToPost handles PUT /posts/{postID}/tags/{tagID}.
// The attach is best-effort: when either side is missing the service skips
// the link and the handler still answers 204. Only a real store failure
// surfaces as an error.
func (s *Server) AttachTagToPost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postID")
	if err != nil {
		writeJSON(w, r, http.StatusUnprocessableEntity, requestBody("post id must be an integer"))
		return
	}
	tagID, err := pathID(r, "tagID")
	if err != nil {
		writeJSON(w, r, http.StatusUnprocessableEntity, requestBody("tag id must be an integer"))
		return
	}

	if _, err := s.posts.AttachTagToPost(r.Context(), postID, tagID); err != nil {
		internalError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
