package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventdesk/internal/domain"
)

type venueService struct {
	venueRepo domain.VenueRepository
	eventRepo domain.EventRepository
}

// NewVenueService creates a VenueService with the given repositories.
func NewVenueService(venueRepo domain.VenueRepository, eventRepo domain.EventRepository) domain.VenueService {
	return &venueService{
		venueRepo: venueRepo,
		eventRepo: eventRepo,
	}
}

func (s *venueService) Create(ctx context.Context, v *domain.Venue) error {
	v.Name = strings.TrimSpace(v.Name)
	if v.Name == "" {
		return fmt.Errorf("%w: venue name is required", domain.ErrInvalidInput)
	}
	taken, err := s.venueRepo.ExistsByName(ctx, v.Name, "")
	if err != nil {
		return fmt.Errorf("check venue name: %w", err)
	}
	if taken {
		return fmt.Errorf("%w: venue %q", domain.ErrDuplicateName, v.Name)
	}
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now
	if err := s.venueRepo.Create(ctx, v); err != nil {
		return fmt.Errorf("create venue: %w", err)
	}
	return nil
}

func (s *venueService) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	v, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}
	return v, nil
}

func (s *venueService) Update(ctx context.Context, v *domain.Venue) error {
	existing, err := s.venueRepo.GetByID(ctx, v.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get venue: %w", err)
	}
	v.Name = strings.TrimSpace(v.Name)
	if v.Name == "" {
		return fmt.Errorf("%w: venue name is required", domain.ErrInvalidInput)
	}
	taken, err := s.venueRepo.ExistsByName(ctx, v.Name, v.ID)
	if err != nil {
		return fmt.Errorf("check venue name: %w", err)
	}
	if taken {
		return fmt.Errorf("%w: venue %q", domain.ErrDuplicateName, v.Name)
	}
	v.CreatedAt = existing.CreatedAt
	v.UpdatedAt = time.Now().UTC()
	if err := s.venueRepo.Update(ctx, v); err != nil {
		return fmt.Errorf("update venue: %w", err)
	}
	return nil
}

// Delete removes a venue unless events still reference it.
func (s *venueService) Delete(ctx context.Context, id string) error {
	if _, err := s.venueRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get venue: %w", err)
	}
	count, err := s.eventRepo.CountByVenueID(ctx, id)
	if err != nil {
		return fmt.Errorf("count venue events: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: venue has associated events", domain.ErrInUse)
	}
	if err := s.venueRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete venue: %w", err)
	}
	return nil
}

func (s *venueService) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Venue, int, error) {
	venues, total, err := s.venueRepo.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list venues: %w", err)
	}
	return venues, total, nil
}

type categoryService struct {
	categoryRepo domain.CategoryRepository
	eventRepo    domain.EventRepository
}

// NewCategoryService creates a CategoryService with the given repositories.
func NewCategoryService(categoryRepo domain.CategoryRepository, eventRepo domain.EventRepository) domain.CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		eventRepo:    eventRepo,
	}
}

func (s *categoryService) Create(ctx context.Context, c *domain.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return fmt.Errorf("%w: category name is required", domain.ErrInvalidInput)
	}
	taken, err := s.categoryRepo.ExistsByName(ctx, c.Name, "")
	if err != nil {
		return fmt.Errorf("check category name: %w", err)
	}
	if taken {
		return fmt.Errorf("%w: category %q", domain.ErrDuplicateName, c.Name)
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := s.categoryRepo.Create(ctx, c); err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (s *categoryService) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	c, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (s *categoryService) Update(ctx context.Context, c *domain.Category) error {
	existing, err := s.categoryRepo.GetByID(ctx, c.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get category: %w", err)
	}
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return fmt.Errorf("%w: category name is required", domain.ErrInvalidInput)
	}
	taken, err := s.categoryRepo.ExistsByName(ctx, c.Name, c.ID)
	if err != nil {
		return fmt.Errorf("check category name: %w", err)
	}
	if taken {
		return fmt.Errorf("%w: category %q", domain.ErrDuplicateName, c.Name)
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	if err := s.categoryRepo.Update(ctx, c); err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes a category unless events still reference it.
func (s *categoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get category: %w", err)
	}
	count, err := s.eventRepo.CountByCategoryID(ctx, id)
	if err != nil {
		return fmt.Errorf("count category events: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: category has associated events", domain.ErrInUse)
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (s *categoryService) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Category, int, error) {
	categories, total, err := s.categoryRepo.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	return categories, total, nil
}
