package confirmations

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewPostgresRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()
	in := &models.EmailConfirmation{AccountID: "a1", Email: "jo@x.com", KeyHash: "h", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}

	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+email_confirmations.*RETURNING\s+id`).
		WithArgs("a1", "jo@x.com", "h", now, now.Add(time.Hour)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("c1"))

	got, err := repo.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "c1", got.ID)
	assert.Equal(t, "h", got.KeyHash)
	assert.Empty(t, in.ID, "input must not be mutated")
}

func TestCreate_Errors(t *testing.T) {
	t.Run("duplicate hash", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(`INSERT`).WillReturnError(&pgconn.PgError{Code: "23505"})

		_, err := repo.Create(context.Background(), &models.EmailConfirmation{})
		require.ErrorIs(t, err, common.ErrorAlreadyExists)
	})
	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(`INSERT`).WillReturnError(errors.New("boom"))

		_, err := repo.Create(context.Background(), &models.EmailConfirmation{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db error: boom")
	})
}

func TestMarkSent(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	at := time.Now()

	mock.ExpectExec(`UPDATE\s+email_confirmations\s+SET\s+sent_at\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("c1", at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkSent(context.Background(), "c1", at))
}

func TestConsume_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()
	sent := now.Add(-time.Minute)

	mock.ExpectQuery(`(?s)UPDATE\s+email_confirmations\s+SET\s+consumed_at\s*=\s*\$2\s+WHERE\s+key_hash\s*=\s*\$1\s+AND\s+consumed_at\s+IS\s+NULL\s+AND\s+expires_at\s*>\s*\$2`).
		WithArgs("h", now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "email", "created_at", "sent_at", "expires_at"}).
			AddRow("c1", "a1", "jo@x.com", now.Add(-time.Hour), sent, now.Add(time.Hour)))

	got, err := repo.Consume(context.Background(), "h", now)
	require.NoError(t, err)
	assert.Equal(t, "a1", got.AccountID)
	require.NotNil(t, got.ConsumedAt)
	assert.True(t, got.ConsumedAt.Equal(now))
	require.NotNil(t, got.SentAt)
	assert.True(t, got.SentAt.Equal(sent))
}

func TestConsume_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`UPDATE\s+email_confirmations`).WillReturnError(sql.ErrNoRows)

	_, err := repo.Consume(context.Background(), "h", time.Now())
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestConsume_NullSentAt(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`UPDATE\s+email_confirmations`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "email", "created_at", "sent_at", "expires_at"}).
			AddRow("c1", "a1", "jo@x.com", now, nil, now.Add(time.Hour)))

	got, err := repo.Consume(context.Background(), "h", now)
	require.NoError(t, err)
	assert.Nil(t, got.SentAt)
}
