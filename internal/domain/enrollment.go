package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for enrollment admission and lifecycle.
var (
	// ErrAlreadyEnrolled is returned when the participant already holds an
	// enrollment for the event, in any status.
	ErrAlreadyEnrolled = errors.New("participant already enrolled in this event")

	// ErrEventNotOpen is returned when enrolling in a cancelled or concluded event.
	ErrEventNotOpen = errors.New("cannot enroll in a cancelled or concluded event")

	// ErrEventFull is returned when the event has no available seats.
	ErrEventFull = errors.New("event has no available seats")

	// ErrInvalidTransition is returned on an illegal confirm/cancel request.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// EnrollmentStatus is the lifecycle status of an enrollment.
type EnrollmentStatus string

const (
	EnrollmentPending   EnrollmentStatus = "PENDING"
	EnrollmentConfirmed EnrollmentStatus = "CONFIRMED"
	EnrollmentCancelled EnrollmentStatus = "CANCELLED"
)

// ValidEnrollmentStatus reports whether s is one of the known enrollment statuses.
func ValidEnrollmentStatus(s EnrollmentStatus) bool {
	switch s {
	case EnrollmentPending, EnrollmentConfirmed, EnrollmentCancelled:
		return true
	}
	return false
}

// Enrollment links a participant to an event. The (participant, event) pair is
// unique across all enrollments regardless of status.
// swagger:model Enrollment
type Enrollment struct {
	ID            string           `json:"id"`
	ParticipantID string           `json:"participant_id"`
	EventID       string           `json:"event_id"`
	Status        EnrollmentStatus `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// NewEnrollment returns a pending enrollment for the given participant and
// event. ID is set by the repository on create.
func NewEnrollment(participantID, eventID string, createdAt, updatedAt time.Time) *Enrollment {
	return &Enrollment{
		ParticipantID: participantID,
		EventID:       eventID,
		Status:        EnrollmentPending,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}

// Confirm moves the enrollment to CONFIRMED. Legal only from PENDING:
// confirming twice is an error, and a cancelled enrollment stays cancelled.
func (e *Enrollment) Confirm() error {
	switch e.Status {
	case EnrollmentConfirmed:
		return fmt.Errorf("%w: enrollment is already confirmed", ErrInvalidTransition)
	case EnrollmentCancelled:
		return fmt.Errorf("%w: cannot confirm a cancelled enrollment", ErrInvalidTransition)
	}
	e.Status = EnrollmentConfirmed
	return nil
}

// Cancel moves the enrollment to CANCELLED. Legal from PENDING or CONFIRMED;
// cancelling twice is an error.
func (e *Enrollment) Cancel() error {
	if e.Status == EnrollmentCancelled {
		return fmt.Errorf("%w: enrollment is already cancelled", ErrInvalidTransition)
	}
	e.Status = EnrollmentCancelled
	return nil
}

// EnrollmentDetails is the read projection of an enrollment with the
// denormalized participant and event names attached.
// swagger:model EnrollmentDetails
type EnrollmentDetails struct {
	*Enrollment
	ParticipantName string `json:"participant_name"`
	EventName       string `json:"event_name"`
}

// ParticipantActivity is a reporting row: a participant with their confirmed
// enrollment count.
type ParticipantActivity struct {
	ParticipantID        string `json:"participant_id"`
	ParticipantName      string `json:"participant_name"`
	ConfirmedEnrollments int    `json:"confirmed_enrollments"`
}

// EnrollmentFilter holds optional conjunctive filters for enrollment searches.
// Zero values (empty string, nil pointer) match all records.
type EnrollmentFilter struct {
	ParticipantID string
	EventID       string
	Status        EnrollmentStatus
	CreatedFrom   *time.Time
	CreatedUntil  *time.Time
}

// EnrollmentRepository defines storage operations for enrollments.
type EnrollmentRepository interface {
	// Admit performs the capacity-gated insert inside a single transaction:
	// it locks the event row, recounts confirmed enrollments, and inserts the
	// enrollment as PENDING, or CONFIRMED when the event is free. It returns
	// ErrNotFound if the event is gone, ErrEventNotOpen or ErrEventFull when
	// the in-transaction re-checks fail, and ErrAlreadyEnrolled when the
	// unique (participant, event) constraint is violated concurrently.
	Admit(ctx context.Context, participantID, eventID string) (*Enrollment, error)
	GetByID(ctx context.Context, id string) (*Enrollment, error)
	GetDetails(ctx context.Context, id string) (*EnrollmentDetails, error)
	Exists(ctx context.Context, participantID, eventID string) (bool, error)
	// TransitionStatus updates the status only if the row still holds from.
	// It reports whether a row was updated.
	TransitionStatus(ctx context.Context, id string, from, to EnrollmentStatus, updatedAt time.Time) (bool, error)
	// SetStatus overwrites the status without any transition check.
	SetStatus(ctx context.Context, id string, status EnrollmentStatus, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, f EnrollmentFilter, p PaginationParams) ([]*EnrollmentDetails, int, error)
	CountByEventAndStatus(ctx context.Context, eventID string, status EnrollmentStatus) (int, error)
	CountByParticipant(ctx context.Context, participantID string) (int, error)
	CountByParticipantAndStatus(ctx context.Context, participantID string, status EnrollmentStatus) (int, error)
	MostActiveParticipants(ctx context.Context, limit int) ([]*ParticipantActivity, error)
}

// EnrollmentService defines admission, lifecycle, and query operations for
// enrollments.
type EnrollmentService interface {
	// Create admits a participant into an event, enforcing existence,
	// uniqueness, event status, and capacity, in that order. Enrollments in
	// free events come back CONFIRMED; all others PENDING.
	Create(ctx context.Context, participantID, eventID string) (*EnrollmentDetails, error)
	GetByID(ctx context.Context, id string) (*EnrollmentDetails, error)
	Confirm(ctx context.Context, id string) (*EnrollmentDetails, error)
	Cancel(ctx context.Context, id string) (*EnrollmentDetails, error)
	// SetStatus is the administrative overwrite: it writes the given status
	// with no transition legality check. Callers must gate it behind an
	// administrative capability.
	SetStatus(ctx context.Context, id string, status EnrollmentStatus) (*EnrollmentDetails, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, f EnrollmentFilter, p PaginationParams) ([]*EnrollmentDetails, int, error)
	MostActiveParticipants(ctx context.Context, limit int) ([]*ParticipantActivity, error)
}
