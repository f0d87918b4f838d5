package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventdesk/internal/domain"
)

// Reporting query limits.
const (
	defaultReportLimit = 10
	maxReportLimit     = 100
)

type enrollmentService struct {
	enrollmentRepo  domain.EnrollmentRepository
	participantRepo domain.ParticipantRepository
	eventRepo       domain.EventRepository
}

// NewEnrollmentService creates an EnrollmentService with the given repositories.
func NewEnrollmentService(
	enrollmentRepo domain.EnrollmentRepository,
	participantRepo domain.ParticipantRepository,
	eventRepo domain.EventRepository,
) domain.EnrollmentService {
	return &enrollmentService{
		enrollmentRepo:  enrollmentRepo,
		participantRepo: participantRepo,
		eventRepo:       eventRepo,
	}
}

// Create admits a participant into an event. Checks run in order, each failure
// short-circuiting: participant exists, event exists, no prior enrollment in
// any status, event open, seats available. The capacity check and the insert
// happen together inside the repository transaction; the pre-checks here only
// produce precise errors without opening a transaction on the failure paths.
func (s *enrollmentService) Create(ctx context.Context, participantID, eventID string) (*domain.EnrollmentDetails, error) {
	participant, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("participant %s: %w", participantID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get participant: %w", err)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("event %s: %w", eventID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	// Any existing enrollment blocks re-admission, cancelled ones included.
	exists, err := s.enrollmentRepo.Exists(ctx, participantID, eventID)
	if err != nil {
		return nil, fmt.Errorf("check existing enrollment: %w", err)
	}
	if exists {
		return nil, domain.ErrAlreadyEnrolled
	}

	if !event.IsOpenForEnrollment() {
		return nil, domain.ErrEventNotOpen
	}

	enrollment, err := s.enrollmentRepo.Admit(ctx, participantID, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) ||
			errors.Is(err, domain.ErrEventNotOpen) ||
			errors.Is(err, domain.ErrEventFull) ||
			errors.Is(err, domain.ErrAlreadyEnrolled) {
			return nil, err
		}
		return nil, fmt.Errorf("admit enrollment: %w", err)
	}

	return &domain.EnrollmentDetails{
		Enrollment:      enrollment,
		ParticipantName: participant.Name,
		EventName:       event.Name,
	}, nil
}

func (s *enrollmentService) GetByID(ctx context.Context, id string) (*domain.EnrollmentDetails, error) {
	details, err := s.enrollmentRepo.GetDetails(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get enrollment: %w", err)
	}
	return details, nil
}

// Confirm moves a pending enrollment to CONFIRMED. The status write is guarded
// by the status the enrollment held when loaded, so two racing confirms cannot
// both succeed.
func (s *enrollmentService) Confirm(ctx context.Context, id string) (*domain.EnrollmentDetails, error) {
	return s.transition(ctx, id, (*domain.Enrollment).Confirm)
}

// Cancel moves a pending or confirmed enrollment to CANCELLED.
func (s *enrollmentService) Cancel(ctx context.Context, id string) (*domain.EnrollmentDetails, error) {
	return s.transition(ctx, id, (*domain.Enrollment).Cancel)
}

func (s *enrollmentService) transition(ctx context.Context, id string, apply func(*domain.Enrollment) error) (*domain.EnrollmentDetails, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get enrollment: %w", err)
	}

	from := enrollment.Status
	if err := apply(enrollment); err != nil {
		return nil, err
	}

	ok, err := s.enrollmentRepo.TransitionStatus(ctx, id, from, enrollment.Status, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("update enrollment status: %w", err)
	}
	if !ok {
		// The row no longer holds the status we loaded: a concurrent request won.
		return nil, fmt.Errorf("%w: enrollment status changed concurrently", domain.ErrInvalidTransition)
	}
	return s.GetByID(ctx, id)
}

// SetStatus is the administrative overwrite. It resolves the enrollment and
// writes the status as-is, with no transition legality check. The delivery
// layer gates this behind the admin role.
func (s *enrollmentService) SetStatus(ctx context.Context, id string, status domain.EnrollmentStatus) (*domain.EnrollmentDetails, error) {
	if !domain.ValidEnrollmentStatus(status) {
		return nil, fmt.Errorf("%w: unknown enrollment status %q", domain.ErrInvalidInput, status)
	}
	if err := s.enrollmentRepo.SetStatus(ctx, id, status, time.Now().UTC()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("set enrollment status: %w", err)
	}
	return s.GetByID(ctx, id)
}

// Delete removes the enrollment unconditionally, confirmed or not.
func (s *enrollmentService) Delete(ctx context.Context, id string) error {
	if err := s.enrollmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete enrollment: %w", err)
	}
	return nil
}

func (s *enrollmentService) Search(ctx context.Context, f domain.EnrollmentFilter, p domain.PaginationParams) ([]*domain.EnrollmentDetails, int, error) {
	if f.Status != "" && !domain.ValidEnrollmentStatus(f.Status) {
		return nil, 0, fmt.Errorf("%w: unknown enrollment status %q", domain.ErrInvalidInput, f.Status)
	}
	details, total, err := s.enrollmentRepo.Search(ctx, f, p)
	if err != nil {
		return nil, 0, fmt.Errorf("search enrollments: %w", err)
	}
	return details, total, nil
}

func (s *enrollmentService) MostActiveParticipants(ctx context.Context, limit int) ([]*domain.ParticipantActivity, error) {
	limit = clampReportLimit(limit)
	result, err := s.enrollmentRepo.MostActiveParticipants(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("most active participants: %w", err)
	}
	return result, nil
}

func clampReportLimit(limit int) int {
	if limit < 1 {
		return defaultReportLimit
	}
	if limit > maxReportLimit {
		return maxReportLimit
	}
	return limit
}
