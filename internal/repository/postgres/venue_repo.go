package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventdesk/internal/domain"
)

var venueSortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type venueRepository struct {
	DB *sql.DB
}

func NewVenueRepository(db *sql.DB) domain.VenueRepository {
	return &venueRepository{
		DB: db,
	}
}

func (r *venueRepository) Create(ctx context.Context, v *domain.Venue) error {
	query := `
		INSERT INTO venues (name, address, capacity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, v.Name, v.Address, v.Capacity, v.CreatedAt, v.UpdatedAt).
		Scan(&v.ID)
}

func (r *venueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	query := `
		SELECT id, name, address, capacity, created_at, updated_at
		FROM venues
		WHERE id = $1
	`
	v := &domain.Venue{}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&v.ID, &v.Name, &v.Address, &v.Capacity, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *venueRepository) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	var exists bool
	var err error
	if excludeID == "" {
		err = r.DB.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM venues WHERE LOWER(name) = LOWER($1))`,
			name).Scan(&exists)
	} else {
		err = r.DB.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM venues WHERE LOWER(name) = LOWER($1) AND id <> $2)`,
			name, excludeID).Scan(&exists)
	}
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *venueRepository) Update(ctx context.Context, v *domain.Venue) error {
	query := `
		UPDATE venues
		SET name = $2, address = $3, capacity = $4, updated_at = $5
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, v.ID, v.Name, v.Address, v.Capacity, v.UpdatedAt)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *venueRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *venueRepository) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Venue, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM venues`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count venues: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, address, capacity, created_at, updated_at
		FROM venues
		ORDER BY %s
		LIMIT $1 OFFSET $2
	`, orderBy(venueSortColumns, p, "name ASC"))
	rows, err := r.DB.QueryContext(ctx, query, p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("query venues: %w", err)
	}
	defer rows.Close()

	venues := []*domain.Venue{}
	for rows.Next() {
		v := &domain.Venue{}
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &v.Capacity, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, 0, err
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return venues, total, nil
}
