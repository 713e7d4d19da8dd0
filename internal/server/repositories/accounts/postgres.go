package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/dbx"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
)

const accountColumns = `id, email, username, first_name, last_name, password_hash, is_active, date_joined`

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (*models.Account, error) {
	a := &models.Account{}
	if err := row.Scan(&a.ID, &a.Email, &a.Username, &a.FirstName, &a.LastName, &a.PasswordHash, &a.IsActive, &a.DateJoined); err != nil {
		return nil, err
	}
	return a, nil
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return common.ErrorNotFound
	case dbx.IsUniqueViolation(err):
		return common.ErrorAlreadyExists
	default:
		return fmt.Errorf("db error: %w", err)
	}
}

func (r *PostgresRepository) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	query := `
		INSERT INTO accounts (email, username, first_name, last_name, password_hash, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + accountColumns

	created, err := scanAccount(r.db.QueryRowContext(ctx, query,
		a.Email, a.Email, a.FirstName, a.LastName, a.PasswordHash, a.IsActive))
	if err != nil {
		return nil, mapErr(err)
	}
	return created, nil
}

func (r *PostgresRepository) getBy(ctx context.Context, column, value string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE ` + column + ` = $1`

	a, err := scanAccount(r.db.QueryRowContext(ctx, query, value))
	if err != nil {
		return nil, mapErr(err)
	}
	return a, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	return r.getBy(ctx, "id", id)
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	return r.getBy(ctx, "username", username)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.getBy(ctx, "email", email)
}

func (r *PostgresRepository) EmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM accounts
			WHERE (email = $1 OR username = $1) AND ($2 = '' OR id::text <> $2)
		)`

	var taken bool
	if err := r.db.QueryRowContext(ctx, query, email, excludeID).Scan(&taken); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return taken, nil
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Activate(ctx context.Context, id string) error {
	return r.exec(ctx, `UPDATE accounts SET is_active = TRUE WHERE id = $1`, id)
}

func (r *PostgresRepository) SetPassword(ctx context.Context, id, passwordHash string) error {
	return r.exec(ctx, `UPDATE accounts SET password_hash = $2 WHERE id = $1`, id, passwordHash)
}

func (r *PostgresRepository) Update(ctx context.Context, id string, upd models.AccountUpdate) (*models.Account, error) {
	query := `
		UPDATE accounts SET
			email      = COALESCE($2, email),
			username   = COALESCE($2, username),
			first_name = COALESCE($3, first_name),
			last_name  = COALESCE($4, last_name)
		WHERE id = $1
		RETURNING ` + accountColumns

	a, err := scanAccount(r.db.QueryRowContext(ctx, query, id, upd.Email, upd.FirstName, upd.LastName))
	if err != nil {
		return nil, mapErr(err)
	}
	return a, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY date_joined, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
