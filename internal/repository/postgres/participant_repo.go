package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"eventdesk/internal/domain"
)

var participantSortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"email":      "email",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type participantRepository struct {
	DB *sql.DB
}

func NewParticipantRepository(db *sql.DB) domain.ParticipantRepository {
	return &participantRepository{
		DB: db,
	}
}

func (r *participantRepository) Create(ctx context.Context, p *domain.Participant) error {
	query := `
		INSERT INTO participants (name, email, phone, role, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		p.Name, p.Email, p.Phone, p.Role, p.PasswordHash, p.CreatedAt, p.UpdatedAt).
		Scan(&p.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

const participantColumns = `id, name, email, phone, role, password_hash, created_at, updated_at`

func scanParticipant(row interface{ Scan(...any) error }) (*domain.Participant, error) {
	p := &domain.Participant{}
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Role, &p.PasswordHash, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *participantRepository) GetByID(ctx context.Context, id string) (*domain.Participant, error) {
	query := fmt.Sprintf(`SELECT %s FROM participants WHERE id = $1`, participantColumns)
	p, err := scanParticipant(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *participantRepository) GetByEmail(ctx context.Context, email string) (*domain.Participant, error) {
	query := fmt.Sprintf(`SELECT %s FROM participants WHERE email = $1`, participantColumns)
	p, err := scanParticipant(r.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *participantRepository) Update(ctx context.Context, p *domain.Participant) error {
	query := `
		UPDATE participants
		SET name = $2, email = $3, phone = $4, role = $5, password_hash = $6, updated_at = $7
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		p.ID, p.Name, p.Email, p.Phone, p.Role, p.PasswordHash, p.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return domain.ErrDuplicateEmail
		}
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

func (r *participantRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM participants WHERE id = $1`, id)
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

func (r *participantRepository) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Participant, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM participants`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count participants: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM participants
		ORDER BY %s
		LIMIT $1 OFFSET $2
	`, participantColumns, orderBy(participantSortColumns, p, "name ASC"))
	rows, err := r.DB.QueryContext(ctx, query, p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("query participants: %w", err)
	}
	defer rows.Close()

	participants := []*domain.Participant{}
	for rows.Next() {
		participant, err := scanParticipant(rows)
		if err != nil {
			return nil, 0, err
		}
		participants = append(participants, participant)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return participants, total, nil
}
