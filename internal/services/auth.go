package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventdesk/internal/domain"
)

// ErrInvalidCredentials is returned for a wrong email or password. The message
// is deliberately the same for both cases.
var ErrInvalidCredentials = errors.New("invalid email or password")

type authService struct {
	participantRepo domain.ParticipantRepository
	hasher          domain.PasswordHasher
	tokenIssuer     domain.TokenIssuer
	tokenExpiry     time.Duration
}

// NewAuthService creates an AuthService with the given repository and auth ports.
func NewAuthService(
	participantRepo domain.ParticipantRepository,
	hasher domain.PasswordHasher,
	tokenIssuer domain.TokenIssuer,
	tokenExpiry time.Duration,
) domain.AuthService {
	return &authService{
		participantRepo: participantRepo,
		hasher:          hasher,
		tokenIssuer:     tokenIssuer,
		tokenExpiry:     tokenExpiry,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.Participant, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	participant, err := s.participantRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("get participant: %w", err)
	}
	if err := s.hasher.Compare(participant.PasswordHash, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.tokenIssuer.Issue(participant.ID, participant.Email, participant.Role, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, participant, nil
}
