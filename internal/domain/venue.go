package domain

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateName is returned when a venue or category name is already taken
// (case-insensitive).
var ErrDuplicateName = errors.New("name already in use")

// Venue represents a place where events are held.
// swagger:model Venue
type Venue struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Capacity  *int      `json:"capacity,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VenueRepository defines storage operations for venues.
type VenueRepository interface {
	Create(ctx context.Context, v *Venue) error
	GetByID(ctx context.Context, id string) (*Venue, error)
	// ExistsByName reports whether a venue with the name exists,
	// case-insensitively, excluding the record with excludeID (pass "" to
	// check all records).
	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)
	Update(ctx context.Context, v *Venue) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, p PaginationParams) ([]*Venue, int, error)
}

// VenueService defines catalog operations for venues.
type VenueService interface {
	Create(ctx context.Context, v *Venue) error
	GetByID(ctx context.Context, id string) (*Venue, error)
	Update(ctx context.Context, v *Venue) error
	// Delete removes a venue. It fails with ErrInUse while events reference it.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, p PaginationParams) ([]*Venue, int, error)
}
