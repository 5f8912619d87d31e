package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oskarlindh/people-api/internal/domain"
	"github.com/oskarlindh/people-api/internal/handler"
)

// mockPostServicer is a test double for handler.PostServicer.
type mockPostServicer struct {
	createPost      func(ctx context.Context, post domain.Post) (domain.Post, error)
	createTag       func(ctx context.Context, tag domain.Tag) (domain.Tag, error)
	listPosts       func(ctx context.Context) ([]domain.Post, error)
	listTags        func(ctx context.Context) ([]domain.Tag, error)
	attachTagToPost func(ctx context.Context, postID, tagID int64) (bool, error)
}

func (m *mockPostServicer) CreatePost(ctx context.Context, post domain.Post) (domain.Post, error) {
	return m.createPost(ctx, post)
}
func (m *mockPostServicer) CreateTag(ctx context.Context, tag domain.Tag) (domain.Tag, error) {
	return m.createTag(ctx, tag)
}
func (m *mockPostServicer) ListPosts(ctx context.Context) ([]domain.Post, error) {
	return m.listPosts(ctx)
}
func (m *mockPostServicer) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return m.listTags(ctx)
}
func (m *mockPostServicer) AttachTagToPost(ctx context.Context, postID, tagID int64) (bool, error) {
	return m.attachTagToPost(ctx, postID, tagID)
}

// compile-time check: mockPostServicer must satisfy handler.PostServicer.
var _ handler.PostServicer = (*mockPostServicer)(nil)

func newPostHandler(svc handler.PostServicer) http.Handler {
	return handler.NewServer(nil, svc).Routes()
}

// ---- GET /posts ------------------------------------------------------------

func TestListPosts_200(t *testing.T) {
	svc := &mockPostServicer{
		listPosts: func(context.Context) ([]domain.Post, error) {
			return []domain.Post{{ID: 1, PersonID: 7, Title: "hello", Tags: []domain.Tag{}}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	rec := httptest.NewRecorder()

	newPostHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var posts []domain.Post
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "hello", posts[0].Title)
}

// ---- POST /posts -----------------------------------------------------------

func TestCreatePost_201(t *testing.T) {
	var got domain.Post
	svc := &mockPostServicer{
		createPost: func(_ context.Context, post domain.Post) (domain.Post, error) {
			got = post
			post.ID = 5
			return post, nil
		},
	}

	body := jsonBody(t, map[string]any{"title": "hello", "content": "world", "person_id": 7})
	req := httptest.NewRequest(http.MethodPost, "/posts", body)
	rec := httptest.NewRecorder()

	newPostHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "hello", got.Title)
	assert.EqualValues(t, 7, got.PersonID)
}

func TestCreatePost_422_ValidationError(t *testing.T) {
	svc := &mockPostServicer{
		createPost: func(context.Context, domain.Post) (domain.Post, error) {
			return domain.Post{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/posts", jsonBody(t, map[string]any{"person_id": 7}))
	rec := httptest.NewRecorder()

	newPostHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "validation_error", body.Error.Code)
	assert.Equal(t, "title is required", body.Error.Message)
}

// ---- POST /tags ------------------------------------------------------------

func TestCreateTag_201(t *testing.T) {
	svc := &mockPostServicer{
		createTag: func(_ context.Context, tag domain.Tag) (domain.Tag, error) {
			tag.ID = 3
			return tag, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/tags", jsonBody(t, map[string]any{"label": "go"}))
	rec := httptest.NewRecorder()

	newPostHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var tag domain.Tag
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tag))
	assert.EqualValues(t, 3, tag.ID)
	assert.Equal(t, "go", tag.Label)
}

// ---- GET /tags -------------------------------------------------------------

func TestListTags_200(t *testing.T) {
	svc := &mockPostServicer{
		listTags: func(context.Context) ([]domain.Tag, error) {
			return []domain.Tag{{ID: 1, Label: "go"}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/tags", nil)
	rec := httptest.NewRecorder()

	newPostHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// ---- PUT /posts/{postID}/tags/{tagID} --------------------------------------

func TestAttachTagToPost_204(t *testing.T) {
	var gotPost, gotTag int64
	svc := &mockPostServicer{
		attachTagToPost: func(_ context.Context, postID, tagID int64) (bool, error) {
			gotPost, gotTag = postID, tagID
			return true, nil
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/posts/5/tags/3", nil)
	rec := httptest.NewRecorder()

	newPostHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.EqualValues(t, 5, gotPost)
	assert.EqualValues(t, 3, gotTag)
}

func TestAttachTagToPost_204_WhenSkipped(t *testing.T) {
	svc := &mockPostServicer{
		attachTagToPost: func(context.Context, int64, int64) (bool, error) {
			return false, nil
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/posts/999/tags/3", nil)
	rec := httptest.NewRecorder()

	newPostHandler(svc).ServeHTTP(rec, req)

	// Best-effort attach: a skipped link is still not an error to the caller.
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAttachTagToPost_500_StoreFailure(t *testing.T) {
	svc := &mockPostServicer{
		attachTagToPost: func(context.Context, int64, int64) (bool, error) {
			return false, errors.New("connection refused")
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/posts/5/tags/3", nil)
	rec := httptest.NewRecorder()

	newPostHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
