package clients

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
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

func TestUpsert(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)INSERT\s+INTO\s+clients.*ON\s+CONFLICT\s+\(client_id\)\s+DO\s+UPDATE`).
		WithArgs("web", "Web app", "password").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Upsert(context.Background(), models.Client{ClientID: "web", Name: "Web app", GrantType: "password"}))
}

func TestUpsert_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`INSERT\s+INTO\s+clients`).WillReturnError(errors.New("boom"))

	require.Error(t, repo.Upsert(context.Background(), models.Client{ClientID: "web"}))
}

func TestFind(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT\s+client_id,\s*name,\s*grant_type\s+FROM\s+clients\s+WHERE\s+client_id\s*=\s*\$1`).
		WithArgs("web").
		WillReturnRows(sqlmock.NewRows([]string{"client_id", "name", "grant_type"}).AddRow("web", "Web app", "password"))

	got, err := repo.Find(context.Background(), "web")
	require.NoError(t, err)
	assert.Equal(t, &models.Client{ClientID: "web", Name: "Web app", GrantType: "password"}, got)
}

func TestFind_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+clients`).WithArgs("nope").WillReturnError(sql.ErrNoRows)

	_, err := repo.Find(context.Background(), "nope")
	require.ErrorIs(t, err, common.ErrorNotFound)
}
