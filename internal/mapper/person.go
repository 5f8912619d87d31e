// Package mapper translates between boundary DTOs and domain entities.
// Translation is pure field copying, with one deliberate exception: building
// a PersonView fans out to a post lookup so the view can embed the person's
// posts without the person entity ever holding them in memory.
package mapper

import (
	"context"
	"fmt"

	"github.com/oskarlindh/people-api/internal/domain"
)

// PostLister is the single repo operation the mapper needs.
// Defined here, in the consumer package, so mapper tests can inject a stub
// without touching the database.
type PostLister interface {
	FindByPersonID(ctx context.Context, personID int64) ([]domain.Post, error)
}

// PersonMapper builds PersonViews from persons and persons from requests.
type PersonMapper struct {
	posts PostLister
}

// NewPersonMapper constructs a PersonMapper that resolves post collections
// through the provided lister.
func NewPersonMapper(posts PostLister) *PersonMapper {
	return &PersonMapper{posts: posts}
}

// ToView projects a person into its read-only view: id and name are copied,
// bio comes from the attached profile (empty when none is attached — a
// missing profile is not an error), and the person's posts are fetched and
// embedded. The two lookups behind one view are not transactionally isolated;
// a concurrent write may land between them.
func (m *PersonMapper) ToView(ctx context.Context, person domain.Person) (domain.PersonView, error) {
	view := domain.PersonView{
		ID:   person.ID,
		Name: person.Name,
	}
	if person.Profile != nil {
		view.Bio = person.Profile.Bio
	}

	posts, err := m.posts.FindByPersonID(ctx, person.ID)
	if err != nil {
		return domain.PersonView{}, fmt.Errorf("mapper.PersonMapper.ToView: %w", err)
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	view.Posts = posts

	return view, nil
}

// ToEntity builds a Person plus a freshly constructed Profile from the flat
// request fields. The result carries no ID — assignment happens in the repo
// at save time.
func (m *PersonMapper) ToEntity(req domain.PersonRequest) domain.Person {
	return domain.Person{
		Name:  req.Name,
		Email: req.Email,
		Profile: &domain.Profile{
			Age:      req.Age,
			ShoeSize: req.ShoeSize,
			Bio:      req.Bio,
		},
	}
}

// ToViewList applies ToView per element, preserving input order.
func (m *PersonMapper) ToViewList(ctx context.Context, persons []domain.Person) ([]domain.PersonView, error) {
	views := make([]domain.PersonView, 0, len(persons))
	for _, p := range persons {
		v, err := m.ToView(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("mapper.PersonMapper.ToViewList: %w", err)
		}
		views = append(views, v)
	}
	return views, nil
}
