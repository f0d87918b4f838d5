package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventdesk/internal/domain"
)

var eventSortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"start_date": "start_date",
	"end_date":   "end_date",
	"price":      "price",
	"status":     "status",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (name, description, start_date, end_date, start_time, end_time,
		                    max_capacity, price, status, venue_id, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		event.Name, event.Description, event.StartDate, event.EndDate,
		event.StartTime, event.EndTime, event.MaxCapacity, event.Price,
		event.Status, event.VenueID, event.CategoryID, event.CreatedAt, event.UpdatedAt).
		Scan(&event.ID)
}

const eventColumns = `id, name, description, start_date, end_date, start_time, end_time,
	max_capacity, price, status, venue_id, category_id, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	err := row.Scan(&e.ID, &e.Name, &e.Description, &e.StartDate, &e.EndDate,
		&e.StartTime, &e.EndTime, &e.MaxCapacity, &e.Price, &e.Status,
		&e.VenueID, &e.CategoryID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1`, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	query := `
		UPDATE events
		SET name = $2, description = $3, start_date = $4, end_date = $5,
		    start_time = $6, end_time = $7, max_capacity = $8, price = $9,
		    status = $10, venue_id = $11, category_id = $12, updated_at = $13
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		event.ID, event.Name, event.Description, event.StartDate, event.EndDate,
		event.StartTime, event.EndTime, event.MaxCapacity, event.Price,
		event.Status, event.VenueID, event.CategoryID, event.UpdatedAt)
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

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
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

func (r *eventRepository) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Event, int, error) {
	return r.Search(ctx, domain.EventFilter{}, p)
}

func (r *eventRepository) Search(ctx context.Context, f domain.EventFilter, p domain.PaginationParams) ([]*domain.Event, int, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.CategoryID != "" {
		add("category_id = $%d", f.CategoryID)
	}
	if f.VenueID != "" {
		add("venue_id = $%d", f.VenueID)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.StartFrom != nil {
		add("start_date >= $%d", *f.StartFrom)
	}
	if f.EndUntil != nil {
		add("end_date <= $%d", *f.EndUntil)
	}
	if f.MaxPrice != nil {
		add("price <= $%d", *f.MaxPrice)
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM events %s`, where)
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, eventColumns, where, orderBy(eventSortColumns, p, "start_date ASC"), len(args)+1, len(args)+2)
	args = append(args, p.PageSize, p.Offset())

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []*domain.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) CountByVenueID(ctx context.Context, venueID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE venue_id = $1`, venueID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *eventRepository) CountByCategoryID(ctx context.Context, categoryID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE category_id = $1`, categoryID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *eventRepository) MostPopular(ctx context.Context, limit int) ([]*domain.EventPopularity, error) {
	query := `
		SELECT e.id, e.name, COUNT(i.id) AS confirmed
		FROM events e
		LEFT JOIN enrollments i ON i.event_id = e.id AND i.status = $1
		GROUP BY e.id, e.name
		ORDER BY confirmed DESC, e.name ASC
		LIMIT $2
	`
	rows, err := r.DB.QueryContext(ctx, query, domain.EnrollmentConfirmed, limit)
	if err != nil {
		return nil, fmt.Errorf("query most popular events: %w", err)
	}
	defer rows.Close()

	result := []*domain.EventPopularity{}
	for rows.Next() {
		ep := &domain.EventPopularity{}
		if err := rows.Scan(&ep.EventID, &ep.EventName, &ep.ConfirmedEnrollments); err != nil {
			return nil, err
		}
		result = append(result, ep)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
