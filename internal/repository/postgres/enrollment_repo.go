package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"eventdesk/internal/domain"
)

// uniqueViolation is the Postgres error code raised when the
// (participant_id, event_id) unique constraint is hit.
const uniqueViolation = "23505"

// enrollmentSortColumns maps logical sort fields to SQL columns.
var enrollmentSortColumns = map[string]string{
	"id":               "i.id",
	"status":           "i.status",
	"created_at":       "i.created_at",
	"updated_at":       "i.updated_at",
	"participant_name": "p.name",
	"event_name":       "e.name",
}

type enrollmentRepository struct {
	DB *sql.DB
}

func NewEnrollmentRepository(db *sql.DB) domain.EnrollmentRepository {
	return &enrollmentRepository{
		DB: db,
	}
}

// Admit runs the admission decision and the insert in one transaction.
// The SELECT ... FOR UPDATE on the event row serializes concurrent admissions
// for the same event: without it two transactions can both observe a free
// seat and both commit, overrunning capacity.
func (r *enrollmentRepository) Admit(ctx context.Context, participantID, eventID string) (*domain.Enrollment, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin admission: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var (
		maxCapacity sql.NullInt64
		price       float64
		status      string
	)
	err = tx.QueryRowContext(ctx, `
		SELECT max_capacity, price, status
		FROM events
		WHERE id = $1
		FOR UPDATE
	`, eventID).Scan(&maxCapacity, &price, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lock event row: %w", err)
	}

	// Re-check the status gate under the lock; the service pre-check may be stale.
	if s := domain.EventStatus(status); s == domain.EventCancelled || s == domain.EventCompleted {
		err = domain.ErrEventNotOpen
		return nil, err
	}

	if maxCapacity.Valid && maxCapacity.Int64 > 0 {
		var confirmed int
		err = tx.QueryRowContext(ctx, `
			SELECT COUNT(*)
			FROM enrollments
			WHERE event_id = $1 AND status = $2
		`, eventID, domain.EnrollmentConfirmed).Scan(&confirmed)
		if err != nil {
			return nil, fmt.Errorf("count confirmed enrollments: %w", err)
		}
		if int64(confirmed) >= maxCapacity.Int64 {
			err = domain.ErrEventFull
			return nil, err
		}
	}

	now := time.Now().UTC()
	enrollment := domain.NewEnrollment(participantID, eventID, now, now)
	if price == 0 {
		enrollment.Status = domain.EnrollmentConfirmed
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO enrollments (participant_id, event_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, enrollment.ParticipantID, enrollment.EventID, enrollment.Status, enrollment.CreatedAt, enrollment.UpdatedAt).
		Scan(&enrollment.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			err = domain.ErrAlreadyEnrolled
			return nil, err
		}
		return nil, fmt.Errorf("insert enrollment: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit admission: %w", err)
	}
	return enrollment, nil
}

func (r *enrollmentRepository) GetByID(ctx context.Context, id string) (*domain.Enrollment, error) {
	query := `
		SELECT id, participant_id, event_id, status, created_at, updated_at
		FROM enrollments
		WHERE id = $1
	`
	e := &domain.Enrollment{}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&e.ID, &e.ParticipantID, &e.EventID, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *enrollmentRepository) GetDetails(ctx context.Context, id string) (*domain.EnrollmentDetails, error) {
	query := `
		SELECT i.id, i.participant_id, i.event_id, i.status, i.created_at, i.updated_at,
		       p.name, e.name
		FROM enrollments i
		JOIN participants p ON p.id = i.participant_id
		JOIN events e ON e.id = i.event_id
		WHERE i.id = $1
	`
	d := &domain.EnrollmentDetails{Enrollment: &domain.Enrollment{}}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&d.ID, &d.ParticipantID, &d.EventID, &d.Status, &d.CreatedAt, &d.UpdatedAt,
			&d.ParticipantName, &d.EventName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

func (r *enrollmentRepository) Exists(ctx context.Context, participantID, eventID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM enrollments WHERE participant_id = $1 AND event_id = $2
		)
	`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, participantID, eventID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *enrollmentRepository) TransitionStatus(ctx context.Context, id string, from, to domain.EnrollmentStatus, updatedAt time.Time) (bool, error) {
	query := `
		UPDATE enrollments
		SET status = $2, updated_at = $3
		WHERE id = $1 AND status = $4
	`
	res, err := r.DB.ExecContext(ctx, query, id, to, updatedAt, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *enrollmentRepository) SetStatus(ctx context.Context, id string, status domain.EnrollmentStatus, updatedAt time.Time) error {
	query := `
		UPDATE enrollments
		SET status = $2, updated_at = $3
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, id, status, updatedAt)
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

func (r *enrollmentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
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

func (r *enrollmentRepository) Search(ctx context.Context, f domain.EnrollmentFilter, p domain.PaginationParams) ([]*domain.EnrollmentDetails, int, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.ParticipantID != "" {
		add("i.participant_id = $%d", f.ParticipantID)
	}
	if f.EventID != "" {
		add("i.event_id = $%d", f.EventID)
	}
	if f.Status != "" {
		add("i.status = $%d", f.Status)
	}
	if f.CreatedFrom != nil {
		add("i.created_at >= $%d", *f.CreatedFrom)
	}
	if f.CreatedUntil != nil {
		add("i.created_at <= $%d", *f.CreatedUntil)
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM enrollments i %s`, where)
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count enrollments: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT i.id, i.participant_id, i.event_id, i.status, i.created_at, i.updated_at,
		       p.name, e.name
		FROM enrollments i
		JOIN participants p ON p.id = i.participant_id
		JOIN events e ON e.id = i.event_id
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, where, orderBy(enrollmentSortColumns, p, "i.created_at DESC"), len(args)+1, len(args)+2)
	args = append(args, p.PageSize, p.Offset())

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query enrollments: %w", err)
	}
	defer rows.Close()

	details := []*domain.EnrollmentDetails{}
	for rows.Next() {
		d := &domain.EnrollmentDetails{Enrollment: &domain.Enrollment{}}
		if err := rows.Scan(&d.ID, &d.ParticipantID, &d.EventID, &d.Status, &d.CreatedAt, &d.UpdatedAt,
			&d.ParticipantName, &d.EventName); err != nil {
			return nil, 0, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

func (r *enrollmentRepository) CountByEventAndStatus(ctx context.Context, eventID string, status domain.EnrollmentStatus) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM enrollments WHERE event_id = $1 AND status = $2
	`, eventID, status).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *enrollmentRepository) CountByParticipant(ctx context.Context, participantID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM enrollments WHERE participant_id = $1
	`, participantID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *enrollmentRepository) CountByParticipantAndStatus(ctx context.Context, participantID string, status domain.EnrollmentStatus) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM enrollments WHERE participant_id = $1 AND status = $2
	`, participantID, status).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *enrollmentRepository) MostActiveParticipants(ctx context.Context, limit int) ([]*domain.ParticipantActivity, error) {
	query := `
		SELECT p.id, p.name, COUNT(*) AS confirmed
		FROM enrollments i
		JOIN participants p ON p.id = i.participant_id
		WHERE i.status = $1
		GROUP BY p.id, p.name
		ORDER BY confirmed DESC, p.name ASC
		LIMIT $2
	`
	rows, err := r.DB.QueryContext(ctx, query, domain.EnrollmentConfirmed, limit)
	if err != nil {
		return nil, fmt.Errorf("query most active participants: %w", err)
	}
	defer rows.Close()

	result := []*domain.ParticipantActivity{}
	for rows.Next() {
		a := &domain.ParticipantActivity{}
		if err := rows.Scan(&a.ParticipantID, &a.ParticipantName, &a.ConfirmedEnrollments); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// orderBy resolves the requested sort against a column whitelist, falling back
// to def for unknown fields. The result is safe to interpolate.
func orderBy(columns map[string]string, p domain.PaginationParams, def string) string {
	col, ok := columns[p.SortBy]
	if !ok {
		return def
	}
	dir := "ASC"
	if p.Descending() {
		dir = "DESC"
	}
	return col + " " + dir
}
