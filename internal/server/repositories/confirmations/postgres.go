package confirmations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/dbx"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.EmailConfirmation) (*models.EmailConfirmation, error) {
	query := `
		INSERT INTO email_confirmations (account_id, email, key_hash, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	created := *c
	if err := r.db.QueryRowContext(ctx, query, c.AccountID, c.Email, c.KeyHash, c.CreatedAt, c.ExpiresAt).Scan(&created.ID); err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &created, nil
}

func (r *PostgresRepository) MarkSent(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE email_confirmations SET sent_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, at); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Consume(ctx context.Context, keyHash string, now time.Time) (*models.EmailConfirmation, error) {
	query := `
		UPDATE email_confirmations
		SET consumed_at = $2
		WHERE key_hash = $1 AND consumed_at IS NULL AND expires_at > $2
		RETURNING id, account_id, email, created_at, sent_at, expires_at
	`
	c := &models.EmailConfirmation{KeyHash: keyHash, ConsumedAt: &now}
	var sentAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, keyHash, now).
		Scan(&c.ID, &c.AccountID, &c.Email, &c.CreatedAt, &sentAt, &c.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if sentAt.Valid {
		c.SentAt = &sentAt.Time
	}
	return c, nil
}
