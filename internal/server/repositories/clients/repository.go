// Package clients stores the applications allowed to request tokens.
package clients

import (
	"context"

	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
)

type Repository interface {
	// Upsert registers c or refreshes its name and grant type.
	Upsert(ctx context.Context, c models.Client) error

	// Find returns the client or common.ErrorNotFound.
	Find(ctx context.Context, clientID string) (*models.Client, error)
}
