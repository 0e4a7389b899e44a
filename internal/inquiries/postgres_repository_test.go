package inquiries

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
	mock.ExpectQuery("INSERT INTO contact_inquiries").
		WithArgs(
			pgxmock.AnyArg(),
			"Ravi Kumar",
			"ravi@example.com",
			"+919812345678",
			"Customs paperwork",
			"Do you handle export clearance for machinery?",
			StatusUnread,
		).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))

	created, err := repo.Create(context.Background(), &ContactInquiry{
		Name:    "Ravi Kumar",
		Email:   "ravi@example.com",
		Phone:   "+919812345678",
		Subject: "Customs paperwork",
		Message: "Do you handle export clearance for machinery?",
		Status:  StatusUnread,
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

	mock.ExpectQuery("SELECT (.+) FROM contact_inquiries WHERE id").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresRepositoryUpdateStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)

	mock.ExpectExec("UPDATE contact_inquiries SET status").
		WithArgs("c-1", StatusRead).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), "c-1", StatusRead))

	mock.ExpectExec("UPDATE contact_inquiries SET status").
		WithArgs("missing", StatusRead).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), "missing", StatusRead), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryUpdateNotes(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)

	notes := "forwarded to ops"
	mock.ExpectExec("UPDATE contact_inquiries SET admin_notes").
		WithArgs("c-1", &notes).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.UpdateNotes(context.Background(), "c-1", &notes))

	mock.ExpectExec("UPDATE contact_inquiries SET admin_notes").
		WithArgs("c-1", (*string)(nil)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.UpdateNotes(context.Background(), "c-1", nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
