package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"eventdesk/internal/domain"
)

const minPasswordLength = 8

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type participantService struct {
	participantRepo domain.ParticipantRepository
	enrollmentRepo  domain.EnrollmentRepository
	hasher          domain.PasswordHasher
}

// NewParticipantService creates a ParticipantService with the given
// repositories and password hasher.
func NewParticipantService(
	participantRepo domain.ParticipantRepository,
	enrollmentRepo domain.EnrollmentRepository,
	hasher domain.PasswordHasher,
) domain.ParticipantService {
	return &participantService{
		participantRepo: participantRepo,
		enrollmentRepo:  enrollmentRepo,
		hasher:          hasher,
	}
}

func (s *participantService) Register(ctx context.Context, name, email, phone, password string) (*domain.Participant, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}

	if _, err := s.participantRepo.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	participant := domain.NewParticipant(name, email, strings.TrimSpace(phone), hash, now, now)
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		// The unique email constraint is the backstop for a concurrent signup.
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create participant: %w", err)
	}
	return participant, nil
}

func (s *participantService) GetByID(ctx context.Context, id string) (*domain.ParticipantWithStats, error) {
	participant, err := s.participantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get participant: %w", err)
	}
	total, err := s.enrollmentRepo.CountByParticipant(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count enrollments: %w", err)
	}
	confirmed, err := s.enrollmentRepo.CountByParticipantAndStatus(ctx, id, domain.EnrollmentConfirmed)
	if err != nil {
		return nil, fmt.Errorf("count confirmed enrollments: %w", err)
	}
	return &domain.ParticipantWithStats{
		Participant:          participant,
		TotalEnrollments:     total,
		ConfirmedEnrollments: confirmed,
	}, nil
}

// Update changes a participant's profile. Empty fields keep their current
// values; in particular an empty password keeps the current hash.
func (s *participantService) Update(ctx context.Context, id, name, email, phone, password string) (*domain.Participant, error) {
	participant, err := s.participantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get participant: %w", err)
	}

	if name = strings.TrimSpace(name); name != "" {
		participant.Name = name
	}
	if email = strings.TrimSpace(strings.ToLower(email)); email != "" {
		if !emailRegexp.MatchString(email) {
			return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
		}
		if email != participant.Email {
			if _, err := s.participantRepo.GetByEmail(ctx, email); err == nil {
				return nil, domain.ErrDuplicateEmail
			} else if !errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("check email: %w", err)
			}
		}
		participant.Email = email
	}
	if phone = strings.TrimSpace(phone); phone != "" {
		participant.Phone = phone
	}
	if password != "" {
		if len(password) < minPasswordLength {
			return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
		}
		hash, err := s.hasher.Hash(password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		participant.PasswordHash = hash
	}
	participant.UpdatedAt = time.Now().UTC()

	if err := s.participantRepo.Update(ctx, participant); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("update participant: %w", err)
	}
	return participant, nil
}

// Delete removes a participant unless enrollments still reference them.
func (s *participantService) Delete(ctx context.Context, id string) error {
	if _, err := s.participantRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get participant: %w", err)
	}
	count, err := s.enrollmentRepo.CountByParticipant(ctx, id)
	if err != nil {
		return fmt.Errorf("count enrollments: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: participant has enrollments", domain.ErrInUse)
	}
	if err := s.participantRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	return nil
}

func (s *participantService) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Participant, int, error) {
	participants, total, err := s.participantRepo.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list participants: %w", err)
	}
	return participants, total, nil
}
