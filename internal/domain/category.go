package domain

import (
	"context"
	"time"
)

// Category classifies events.
// swagger:model Category
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryRepository defines storage operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	// ExistsByName reports whether a category with the name exists,
	// case-insensitively, excluding the record with excludeID (pass "" to
	// check all records).
	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, p PaginationParams) ([]*Category, int, error)
}

// CategoryService defines catalog operations for categories.
type CategoryService interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	Update(ctx context.Context, c *Category) error
	// Delete removes a category. It fails with ErrInUse while events reference it.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, p PaginationParams) ([]*Category, int, error)
}
