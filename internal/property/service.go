package property

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/propnest/propnest/internal/shared"
)

const (
	// DefaultPageSize is used when the caller does not ask for a page size.
	DefaultPageSize = 10
	// MaxPageSize bounds a single page.
	MaxPageSize = 100
)

// Service exposes property operations on top of a Repository.
type Service struct {
	repo     Repository
	validate *validator.Validate
}

// NewService builds a property service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: validator.New(validator.WithRequiredStructEnabled())}
}

// List returns all properties.
func (s *Service) List(ctx context.Context) ([]Property, error) {
	return s.repo.List(ctx)
}

// ListPaged returns the zero-indexed page of the given size with totals.
func (s *Service) ListPaged(ctx context.Context, page, size int) (Page, error) {
	if page < 0 {
		return Page{}, fmt.Errorf("%w: page must be >= 0", shared.ErrValidation)
	}
	if size < 1 || size > MaxPageSize {
		return Page{}, fmt.Errorf("%w: size must be between 1 and %d", shared.ErrValidation, MaxPageSize)
	}

	items, total, err := s.repo.Page(ctx, page, size)
	if err != nil {
		return Page{}, err
	}
	return Page{
		Content:       items,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    shared.TotalPages(total, size),
	}, nil
}

// Get fetches a property by id.
func (s *Service) Get(ctx context.Context, id int64) (Property, error) {
	return s.repo.Get(ctx, id)
}

// Create validates p and stores it under a newly assigned id. Any id set by
// the caller is ignored.
func (s *Service) Create(ctx context.Context, p Property) (Property, error) {
	p.ID = 0
	if err := s.check(p); err != nil {
		return Property{}, err
	}
	return s.repo.Create(ctx, p)
}

// Update merges the non-nil patch fields into the property with the given id.
func (s *Service) Update(ctx context.Context, id int64, patch Patch) (Property, error) {
	if err := s.check(patch); err != nil {
		return Property{}, err
	}
	return s.repo.Update(ctx, id, patch)
}

// Delete removes the property. Deleting an unknown id succeeds.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Search returns the properties matching every set criterion of f.
func (s *Service) Search(ctx context.Context, f Filter) ([]Property, error) {
	return s.repo.Search(ctx, f)
}

func (s *Service) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", shared.ErrValidation, strings.Join(msgs, ", "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gte":
		return field + " must be >= " + fe.Param()
	case "min":
		return field + " must not be empty"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	default:
		return field + " is invalid"
	}
}
