package clients

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

func (r *PostgresRepository) Upsert(ctx context.Context, c models.Client) error {
	query := `
		INSERT INTO clients (client_id, name, grant_type)
		VALUES ($1, $2, $3)
		ON CONFLICT (client_id) DO UPDATE SET name = EXCLUDED.name, grant_type = EXCLUDED.grant_type
	`
	if _, err := r.db.ExecContext(ctx, query, c.ClientID, c.Name, c.GrantType); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Find(ctx context.Context, clientID string) (*models.Client, error) {
	query := `SELECT client_id, name, grant_type FROM clients WHERE client_id = $1`

	c := &models.Client{}
	if err := r.db.QueryRowContext(ctx, query, clientID).Scan(&c.ClientID, &c.Name, &c.GrantType); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}
