// Package service contains the business logic for the People API.
// Services validate inputs, enforce business rules, and orchestrate repo and
// mapper calls. No SQL lives here — services depend on repo interfaces, not
// implementations. The service layer is also the single place that decides
// user-visible success/error framing: persistence failures never escape it
// as raw errors on the Outcome-returning operations.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/oskarlindh/people-api/internal/domain"
	"github.com/oskarlindh/people-api/internal/mapper"
	"github.com/oskarlindh/people-api/internal/repo"
)

// HealthChecker is the store probe the person service wraps for its health
// outcome. Satisfied by *store.Store.
type HealthChecker interface {
	HealthCheck(ctx context.Context) (string, error)
}

// PersonService implements the person use cases: list, fetch, create with
// profile, delete with cascade, and the health probe.
type PersonService struct {
	persons  repo.PersonRepo
	mapper   *mapper.PersonMapper
	health   HealthChecker
	validate *validator.Validate
}

// NewPersonService constructs a PersonService backed by the provided
// dependencies.
func NewPersonService(persons repo.PersonRepo, m *mapper.PersonMapper, health HealthChecker) *PersonService {
	return &PersonService{
		persons:  persons,
		mapper:   m,
		health:   health,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// GetAll returns all persons as views. Always returns a non-nil slice so
// callers can safely range over it.
func (s *PersonService) GetAll(ctx context.Context) ([]domain.PersonView, error) {
	persons, err := s.persons.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.PersonService.GetAll: %w", err)
	}
	views, err := s.mapper.ToViewList(ctx, persons)
	if err != nil {
		return nil, fmt.Errorf("service.PersonService.GetAll: %w", err)
	}
	return views, nil
}

// GetByID returns a single person view by ID.
// Returns domain.ErrNotFound if no person with that ID exists.
func (s *PersonService) GetByID(ctx context.Context, id int64) (domain.PersonView, error) {
	person, err := s.persons.FindByID(ctx, id)
	if err != nil {
		return domain.PersonView{}, fmt.Errorf("service.PersonService.GetByID: %w", err)
	}
	view, err := s.mapper.ToView(ctx, person)
	if err != nil {
		return domain.PersonView{}, fmt.Errorf("service.PersonService.GetByID: %w", err)
	}
	return view, nil
}

// Create validates the request, persists the person together with its new
// profile, and returns the result as an Outcome. All failures — validation
// and persistence alike — are absorbed into an error Outcome; no raw error
// crosses this boundary.
func (s *PersonService) Create(ctx context.Context, req domain.PersonRequest) domain.Outcome[domain.PersonView] {
	if err := s.validate.Struct(req); err != nil {
		return domain.Failure[domain.PersonView](validationMessage(err))
	}

	person := s.mapper.ToEntity(req)

	created, err := s.persons.Save(ctx, person)
	if err != nil {
		return domain.Failure[domain.PersonView](fmt.Sprintf("failed to add person: %v", err))
	}

	view, err := s.mapper.ToView(ctx, created)
	if err != nil {
		return domain.Failure[domain.PersonView](fmt.Sprintf("failed to load created person: %v", err))
	}

	return domain.Success(fmt.Sprintf("new person %q added", created.Name), view)
}

// DeleteByID removes a person and everything it owns, returning the number
// of person rows deleted. Zero means nothing matched; the caller reports
// not-found from that, not from an error.
func (s *PersonService) DeleteByID(ctx context.Context, id int64) (int64, error) {
	affected, err := s.persons.DeleteByID(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("service.PersonService.DeleteByID: %w", err)
	}
	return affected, nil
}

// Health wraps the store probe in an Outcome so the boundary never sees the
// underlying error.
func (s *PersonService) Health(ctx context.Context) domain.Outcome[string] {
	message, err := s.health.HealthCheck(ctx)
	if err != nil {
		return domain.Failure[string](fmt.Sprintf("database error: %v", err))
	}
	return domain.Success(message, "ok")
}

// validationMessage renders the first field failure of a validator error as a
// human-readable message, wrapped in the domain's validation sentinel text.
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Sprintf("%v: %v", domain.ErrValidation, err)
	}

	fe := fieldErrs[0]
	var reason string
	switch fe.Tag() {
	case "required":
		reason = fmt.Sprintf("%s is required", fe.Field())
	case "email":
		reason = fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "gte":
		reason = fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		reason = fmt.Sprintf("%s is invalid", fe.Field())
	}
	return fmt.Sprintf("%v: %s", domain.ErrValidation, reason)
}
