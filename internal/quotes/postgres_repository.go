package quotes

import (
	"context"
	"errors"
	"fmt"
	"strings"
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

// PostgresRepository stores quote requests in the relational database.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository initializes a repository backed by a pgx pool.
func NewPostgresRepository(db DB) *PostgresRepository {
	if db == nil {
		panic("quotes: pgx pool required")
	}
	return &PostgresRepository{db: db}
}

const quoteColumns = `id, name, email, phone, weight, origin_country, origin_pincode,
	destination_country, destination_pincode, hsn_code, additional_info,
	calculated_rate, admin_override_rate, admin_notes, status, created_at`

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, q *QuoteRequest) (*QuoteRequest, error) {
	id := uuid.New()
	query := `
		INSERT INTO quote_requests (id, name, email, phone, weight, origin_country,
			origin_pincode, destination_country, destination_pincode, hsn_code,
			additional_info, calculated_rate, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		q.Name,
		q.Email,
		q.Phone,
		q.Weight,
		q.OriginCountry,
		q.OriginPincode,
		q.DestinationCountry,
		q.DestinationPincode,
		q.HSNCode,
		q.AdditionalInfo,
		q.CalculatedRate,
		q.Status,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("quotes: insert failed: %w", err)
	}

	stored := *q
	stored.ID = id.String()
	stored.CreatedAt = createdAt
	return &stored, nil
}

// GetByID fetches a single quote request.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*QuoteRequest, error) {
	row := r.db.QueryRow(ctx, `SELECT `+quoteColumns+` FROM quote_requests WHERE id = $1`, id)
	q, err := scanQuote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("quotes: select failed: %w", err)
	}
	return q, nil
}

// List fetches all quote requests, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*QuoteRequest, error) {
	rows, err := r.db.Query(ctx, `SELECT `+quoteColumns+` FROM quote_requests ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("quotes: list failed: %w", err)
	}
	defer rows.Close()

	out := []*QuoteRequest{}
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("quotes: scan failed: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// UpdateStatus writes the status field of one row.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	tag, err := r.db.Exec(ctx, `UPDATE quote_requests SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("quotes: update status failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateAdminFields applies a partial update to the admin-mutable fields of
// one row. Unset fields are left untouched.
func (r *PostgresRepository) UpdateAdminFields(ctx context.Context, id string, fields AdminFields) error {
	set := make([]string, 0, 2)
	args := []any{id}
	if fields.NotesSet {
		args = append(args, fields.Notes)
		set = append(set, fmt.Sprintf("admin_notes = $%d", len(args)))
	}
	if fields.OverrideSet {
		args = append(args, fields.OverrideRate)
		set = append(set, fmt.Sprintf("admin_override_rate = $%d", len(args)))
	}
	if len(set) == 0 {
		return nil
	}

	query := `UPDATE quote_requests SET ` + strings.Join(set, ", ") + ` WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("quotes: update admin fields failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanQuote(row pgx.Row) (*QuoteRequest, error) {
	var q QuoteRequest
	if err := row.Scan(
		&q.ID,
		&q.Name,
		&q.Email,
		&q.Phone,
		&q.Weight,
		&q.OriginCountry,
		&q.OriginPincode,
		&q.DestinationCountry,
		&q.DestinationPincode,
		&q.HSNCode,
		&q.AdditionalInfo,
		&q.CalculatedRate,
		&q.AdminOverrideRate,
		&q.AdminNotes,
		&q.Status,
		&q.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &q, nil
}
