package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oskarlindh/people-api/internal/domain"
	"github.com/oskarlindh/people-api/internal/repo"
)

// PostService implements the post and tag use cases.
// It holds both repos because attaching a tag to a post requires looking up
// both sides before touching the join table.
type PostService struct {
	posts repo.PostRepo
	tags  repo.TagRepo
}

// NewPostService constructs a PostService backed by the provided repos.
func NewPostService(posts repo.PostRepo, tags repo.TagRepo) *PostService {
	return &PostService{posts: posts, tags: tags}
}

// CreatePost validates and persists a new post.
// Returns domain.ErrValidation if the title is empty or no author is set.
func (s *PostService) CreatePost(ctx context.Context, post domain.Post) (domain.Post, error) {
	if strings.TrimSpace(post.Title) == "" {
		return domain.Post{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if post.PersonID == 0 {
		return domain.Post{}, fmt.Errorf("%w: person_id is required", domain.ErrValidation)
	}
	result, err := s.posts.Save(ctx, post)
	if err != nil {
		return domain.Post{}, fmt.Errorf("service.PostService.CreatePost: %w", err)
	}
	return result, nil
}

// CreateTag validates and persists a new tag. Tags exist independently of any
// post; linking happens through AttachTagToPost.
func (s *PostService) CreateTag(ctx context.Context, tag domain.Tag) (domain.Tag, error) {
	if strings.TrimSpace(tag.Label) == "" {
		return domain.Tag{}, fmt.Errorf("%w: label is required", domain.ErrValidation)
	}
	result, err := s.tags.Save(ctx, tag)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("service.PostService.CreateTag: %w", err)
	}
	return result, nil
}

// ListPosts returns all posts with their tags.
// Always returns a non-nil slice so callers can safely range over it.
func (s *PostService) ListPosts(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.posts.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.PostService.ListPosts: %w", err)
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	return posts, nil
}

// ListTags returns all tags.
func (s *PostService) ListTags(ctx context.Context) ([]domain.Tag, error) {
	tags, err := s.tags.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.PostService.ListTags: %w", err)
	}
	if tags == nil {
		tags = []domain.Tag{}
	}
	return tags, nil
}

// AttachTagToPost links a tag to a post by id pair. When either side does
// not exist it reports attached=false with a nil error instead of failing.
// With both present it adds exactly one association; repeating the call
// leaves the set unchanged.
func (s *PostService) AttachTagToPost(ctx context.Context, postID, tagID int64) (bool, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("service.PostService.AttachTagToPost: %w", err)
	}

	tag, err := s.tags.FindByID(ctx, tagID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("service.PostService.AttachTagToPost: %w", err)
	}

	post.Tags = append(post.Tags, tag)
	if _, err := s.posts.Save(ctx, post); err != nil {
		return false, fmt.Errorf("service.PostService.AttachTagToPost: %w", err)
	}
	return true, nil
}
