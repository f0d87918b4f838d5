package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventdesk/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	venueRepo      domain.VenueRepository
	categoryRepo   domain.CategoryRepository
	enrollmentRepo domain.EnrollmentRepository
}

// NewEventService creates an EventService with the given repositories.
func NewEventService(
	eventRepo domain.EventRepository,
	venueRepo domain.VenueRepository,
	categoryRepo domain.CategoryRepository,
	enrollmentRepo domain.EnrollmentRepository,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		venueRepo:      venueRepo,
		categoryRepo:   categoryRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

func (s *eventService) Create(ctx context.Context, event *domain.Event) error {
	if err := s.validate(ctx, event); err != nil {
		return err
	}
	if event.Status == "" {
		event.Status = domain.EventUpcoming
	}
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.EventWithStats, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return s.withStats(ctx, event)
}

func (s *eventService) Update(ctx context.Context, event *domain.Event) error {
	existing, err := s.eventRepo.GetByID(ctx, event.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if err := s.validate(ctx, event); err != nil {
		return err
	}
	if event.Status == "" {
		event.Status = existing.Status
	}
	event.CreatedAt = existing.CreatedAt
	event.UpdatedAt = time.Now().UTC()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// Delete removes an event. Events holding confirmed enrollments cannot be
// deleted; the confirmed count is recomputed from enrollment rows at call time.
func (s *eventService) Delete(ctx context.Context, id string) error {
	if _, err := s.eventRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	confirmed, err := s.enrollmentRepo.CountByEventAndStatus(ctx, id, domain.EnrollmentConfirmed)
	if err != nil {
		return fmt.Errorf("count confirmed enrollments: %w", err)
	}
	if confirmed > 0 {
		return fmt.Errorf("%w: event has confirmed enrollments", domain.ErrInUse)
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) List(ctx context.Context, p domain.PaginationParams) ([]*domain.EventWithStats, int, error) {
	return s.Search(ctx, domain.EventFilter{}, p)
}

func (s *eventService) Search(ctx context.Context, f domain.EventFilter, p domain.PaginationParams) ([]*domain.EventWithStats, int, error) {
	if f.Status != "" && !domain.ValidEventStatus(f.Status) {
		return nil, 0, fmt.Errorf("%w: unknown event status %q", domain.ErrInvalidInput, f.Status)
	}
	events, total, err := s.eventRepo.Search(ctx, f, p)
	if err != nil {
		return nil, 0, fmt.Errorf("search events: %w", err)
	}

	// One count query per event (N+1). Page sizes are small and the counts
	// must come from live enrollment rows, never from a stored counter.
	result := make([]*domain.EventWithStats, 0, len(events))
	for _, event := range events {
		stats, err := s.withStats(ctx, event)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, stats)
	}
	return result, total, nil
}

func (s *eventService) MostPopular(ctx context.Context, limit int) ([]*domain.EventPopularity, error) {
	limit = clampReportLimit(limit)
	result, err := s.eventRepo.MostPopular(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("most popular events: %w", err)
	}
	return result, nil
}

func (s *eventService) withStats(ctx context.Context, event *domain.Event) (*domain.EventWithStats, error) {
	confirmed, err := s.enrollmentRepo.CountByEventAndStatus(ctx, event.ID, domain.EnrollmentConfirmed)
	if err != nil {
		return nil, fmt.Errorf("count confirmed enrollments: %w", err)
	}
	stats := &domain.EventWithStats{
		Event:                event,
		ConfirmedEnrollments: confirmed,
	}
	if !event.HasUnlimitedCapacity() {
		available := *event.MaxCapacity - confirmed
		if available < 0 {
			available = 0
		}
		stats.AvailableSeats = &available
	}
	return stats, nil
}

func (s *eventService) validate(ctx context.Context, event *domain.Event) error {
	event.Name = strings.TrimSpace(event.Name)
	if event.Name == "" {
		return fmt.Errorf("%w: event name is required", domain.ErrInvalidInput)
	}
	if event.StartDate.After(event.EndDate) {
		return fmt.Errorf("%w: start date cannot be after end date", domain.ErrInvalidInput)
	}
	if event.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", domain.ErrInvalidInput)
	}
	if event.MaxCapacity != nil && *event.MaxCapacity < 0 {
		return fmt.Errorf("%w: max capacity cannot be negative", domain.ErrInvalidInput)
	}
	if event.Status != "" && !domain.ValidEventStatus(event.Status) {
		return fmt.Errorf("%w: unknown event status %q", domain.ErrInvalidInput, event.Status)
	}
	if _, err := s.categoryRepo.GetByID(ctx, event.CategoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("category %s: %w", event.CategoryID, domain.ErrNotFound)
		}
		return fmt.Errorf("get category: %w", err)
	}
	if _, err := s.venueRepo.GetByID(ctx, event.VenueID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("venue %s: %w", event.VenueID, domain.ErrNotFound)
		}
		return fmt.Errorf("get venue: %w", err)
	}
	return nil
}
