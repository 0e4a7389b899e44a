package quotes

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRepositoryCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)

	now := time.Now().UTC()
	mock.ExpectQuery("INSERT INTO quote_requests").
		WithArgs(
			pgxmock.AnyArg(),
			"Asha Patel",
			"asha@example.com",
			"+911234567890",
			10.0,
			"India",
			"400001",
			"Germany",
			"10115",
			(*string)(nil),
			(*string)(nil),
			5000.0,
			StatusPending,
		).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))

	created, err := repo.Create(context.Background(), &QuoteRequest{
		Name:               "Asha Patel",
		Email:              "asha@example.com",
		Phone:              "+911234567890",
		Weight:             10,
		OriginCountry:      "India",
		OriginPincode:      "400001",
		DestinationCountry: "Germany",
		DestinationPincode: "10115",
		CalculatedRate:     5000,
		Status:             StatusPending,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryGetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)

	mock.ExpectQuery("SELECT (.+) FROM quote_requests WHERE id").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresRepositoryGetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{
		"id", "name", "email", "phone", "weight", "origin_country", "origin_pincode",
		"destination_country", "destination_pincode", "hsn_code", "additional_info",
		"calculated_rate", "admin_override_rate", "admin_notes", "status", "created_at",
	}).AddRow(
		"q-1", "Asha Patel", "asha@example.com", "+911234567890", 10.0, "India", "400001",
		"Germany", "10115", (*string)(nil), (*string)(nil),
		5000.0, (*float64)(nil), (*string)(nil), StatusPending, now,
	)

	mock.ExpectQuery("SELECT (.+) FROM quote_requests WHERE id").
		WithArgs("q-1").
		WillReturnRows(rows)

	q, err := repo.GetByID(context.Background(), "q-1")
	require.NoError(t, err)
	assert.Equal(t, "q-1", q.ID)
	assert.Equal(t, StatusPending, q.Status)
	assert.Nil(t, q.AdminOverrideRate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryUpdateStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)

	mock.ExpectExec("UPDATE quote_requests SET status").
		WithArgs("q-1", StatusApproved).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), "q-1", StatusApproved))

	mock.ExpectExec("UPDATE quote_requests SET status").
		WithArgs("missing", StatusApproved).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.UpdateStatus(context.Background(), "missing", StatusApproved)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryUpdateAdminFields(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)

	notes := "negotiated"
	rate := 3000.0
	mock.ExpectExec("UPDATE quote_requests SET admin_notes = \\$2, admin_override_rate = \\$3").
		WithArgs("q-1", &notes, &rate).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.UpdateAdminFields(context.Background(), "q-1", AdminFields{
		Notes:        &notes,
		NotesSet:     true,
		OverrideRate: &rate,
		OverrideSet:  true,
	})
	require.NoError(t, err)

	// Override-only update touches a single column.
	mock.ExpectExec("UPDATE quote_requests SET admin_override_rate = \\$2").
		WithArgs("q-1", (*float64)(nil)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.UpdateAdminFields(context.Background(), "q-1", AdminFields{OverrideSet: true})
	require.NoError(t, err)

	// Empty update issues no SQL at all.
	require.NoError(t, repo.UpdateAdminFields(context.Background(), "q-1", AdminFields{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}
