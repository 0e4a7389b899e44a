package inquiries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository uses. pgxmock satisfies it
// in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores contact inquiries in the relational database.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository initializes a repository backed by a pgx pool.
func NewPostgresRepository(db DB) *PostgresRepository {
	if db == nil {
		panic("inquiries: pgx pool required")
	}
	return &PostgresRepository{db: db}
}

const inquiryColumns = `id, name, email, phone, subject, message, admin_notes, status, created_at`

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, in *ContactInquiry) (*ContactInquiry, error) {
	id := uuid.New()
	query := `
		INSERT INTO contact_inquiries (id, name, email, phone, subject, message, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		in.Name,
		in.Email,
		in.Phone,
		in.Subject,
		in.Message,
		in.Status,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("inquiries: insert failed: %w", err)
	}

	stored := *in
	stored.ID = id.String()
	stored.CreatedAt = createdAt
	return &stored, nil
}

// GetByID fetches a single inquiry.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*ContactInquiry, error) {
	row := r.db.QueryRow(ctx, `SELECT `+inquiryColumns+` FROM contact_inquiries WHERE id = $1`, id)
	in, err := scanInquiry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("inquiries: select failed: %w", err)
	}
	return in, nil
}

// List fetches all inquiries, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*ContactInquiry, error) {
	rows, err := r.db.Query(ctx, `SELECT `+inquiryColumns+` FROM contact_inquiries ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("inquiries: list failed: %w", err)
	}
	defer rows.Close()

	out := []*ContactInquiry{}
	for rows.Next() {
		in, err := scanInquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("inquiries: scan failed: %w", err)
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// UpdateStatus writes the status field of one row.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	tag, err := r.db.Exec(ctx, `UPDATE contact_inquiries SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("inquiries: update status failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateNotes writes the admin notes field of one row.
func (r *PostgresRepository) UpdateNotes(ctx context.Context, id string, notes *string) error {
	tag, err := r.db.Exec(ctx, `UPDATE contact_inquiries SET admin_notes = $2 WHERE id = $1`, id, notes)
	if err != nil {
		return fmt.Errorf("inquiries: update notes failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanInquiry(row pgx.Row) (*ContactInquiry, error) {
	var in ContactInquiry
	if err := row.Scan(
		&in.ID,
		&in.Name,
		&in.Email,
		&in.Phone,
		&in.Subject,
		&in.Message,
		&in.AdminNotes,
		&in.Status,
		&in.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &in, nil
}
