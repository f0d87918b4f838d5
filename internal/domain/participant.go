package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for participant operations.
var (
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrInUse is returned when deleting a record that other records still
	// reference (participant with enrollments, venue or category with events).
	ErrInUse = errors.New("record is referenced by other records")
)

// Participant roles.
const (
	RoleParticipant = "participant"
	RoleAdmin       = "admin"
)

// Participant represents a person who can enroll in events.
// swagger:model Participant
type Participant struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewParticipant returns a new Participant with the participant role.
// ID is set by the repository on create.
func NewParticipant(name, email, phone, passwordHash string, createdAt, updatedAt time.Time) *Participant {
	return &Participant{
		Name:         name,
		Email:        email,
		Phone:        phone,
		Role:         RoleParticipant,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// ParticipantWithStats is the read projection of a participant with
// enrollment counts computed at query time.
type ParticipantWithStats struct {
	*Participant
	TotalEnrollments     int `json:"total_enrollments"`
	ConfirmedEnrollments int `json:"confirmed_enrollments"`
}

// PasswordHasher hashes and verifies participant passwords.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated participant.
type TokenIssuer interface {
	Issue(participantID, email, role string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated participant ID
// and role.
type TokenVerifier interface {
	Verify(token string) (participantID, role string, err error)
}

// ParticipantRepository defines storage operations for participants.
type ParticipantRepository interface {
	Create(ctx context.Context, p *Participant) error
	GetByID(ctx context.Context, id string) (*Participant, error)
	GetByEmail(ctx context.Context, email string) (*Participant, error)
	Update(ctx context.Context, p *Participant) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, p PaginationParams) ([]*Participant, int, error)
}

// ParticipantService defines participant account operations.
type ParticipantService interface {
	Register(ctx context.Context, name, email, phone, password string) (*Participant, error)
	GetByID(ctx context.Context, id string) (*ParticipantWithStats, error)
	Update(ctx context.Context, id, name, email, phone, password string) (*Participant, error)
	// Delete removes a participant. It fails with ErrInUse while the
	// participant holds enrollments.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, p PaginationParams) ([]*Participant, int, error)
}

// AuthService authenticates participants and issues tokens.
type AuthService interface {
	// Login verifies the credentials and returns a signed token plus the
	// authenticated participant.
	Login(ctx context.Context, email, password string) (string, *Participant, error)
}
