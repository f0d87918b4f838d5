package domain

import (
	"context"
	"time"
)

// EventStatus is the lifecycle status of an event.
type EventStatus string

const (
	EventUpcoming  EventStatus = "UPCOMING"
	EventActive    EventStatus = "ACTIVE"
	EventCancelled EventStatus = "CANCELLED"
	EventCompleted EventStatus = "COMPLETED"
)

// ValidEventStatus reports whether s is one of the known event statuses.
func ValidEventStatus(s EventStatus) bool {
	switch s {
	case EventUpcoming, EventActive, EventCancelled, EventCompleted:
		return true
	}
	return false
}

// Event represents a scheduled event that participants can enroll in.
// swagger:model Event
type Event struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	StartTime   *string     `json:"start_time,omitempty"` // "HH:MM", optional
	EndTime     *string     `json:"end_time,omitempty"`   // "HH:MM", optional
	MaxCapacity *int        `json:"max_capacity"`         // nil or 0 means unlimited
	Price       float64     `json:"price"`
	Status      EventStatus `json:"status"`
	VenueID     string      `json:"venue_id"`
	CategoryID  string      `json:"category_id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// HasUnlimitedCapacity reports whether the event has no seat limit.
// A nil or zero max capacity means unlimited.
func (e *Event) HasUnlimitedCapacity() bool {
	return e.MaxCapacity == nil || *e.MaxCapacity == 0
}

// IsFree reports whether the event has no price. Enrollments in free events
// are confirmed at creation time.
func (e *Event) IsFree() bool {
	return e.Price == 0
}

// HasAvailableSeats reports whether the event can take one more confirmed
// enrollment, given the current confirmed count. Only CONFIRMED enrollments
// consume capacity.
func (e *Event) HasAvailableSeats(confirmed int) bool {
	if e.HasUnlimitedCapacity() {
		return true
	}
	return confirmed < *e.MaxCapacity
}

// IsOpenForEnrollment reports whether the event still accepts enrollments.
// Cancelled and completed events do not.
func (e *Event) IsOpenForEnrollment() bool {
	return e.Status != EventCancelled && e.Status != EventCompleted
}

// EventWithStats is the read projection of an event enriched with capacity
// figures computed from enrollment rows at query time.
type EventWithStats struct {
	*Event
	ConfirmedEnrollments int  `json:"confirmed_enrollments"`
	AvailableSeats       *int `json:"available_seats"` // nil when capacity is unlimited
}

// EventPopularity is a reporting row: an event with its confirmed enrollment count.
type EventPopularity struct {
	EventID              string `json:"event_id"`
	EventName            string `json:"event_name"`
	ConfirmedEnrollments int    `json:"confirmed_enrollments"`
}

// EventFilter holds optional conjunctive filters for event searches.
// Zero values (empty string, nil pointer) match all records.
type EventFilter struct {
	CategoryID string
	VenueID    string
	Status     EventStatus
	StartFrom  *time.Time
	EndUntil   *time.Time
	MaxPrice   *float64
}

// EventRepository defines storage operations for events.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, p PaginationParams) ([]*Event, int, error)
	Search(ctx context.Context, f EventFilter, p PaginationParams) ([]*Event, int, error)
	CountByVenueID(ctx context.Context, venueID string) (int, error)
	CountByCategoryID(ctx context.Context, categoryID string) (int, error)
	MostPopular(ctx context.Context, limit int) ([]*EventPopularity, error)
}

// EventService defines catalog operations for events.
type EventService interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*EventWithStats, error)
	Update(ctx context.Context, event *Event) error
	// Delete removes an event. It fails with ErrInUse while the event holds
	// confirmed enrollments.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, p PaginationParams) ([]*EventWithStats, int, error)
	Search(ctx context.Context, f EventFilter, p PaginationParams) ([]*EventWithStats, int, error)
	MostPopular(ctx context.Context, limit int) ([]*EventPopularity, error)
}
