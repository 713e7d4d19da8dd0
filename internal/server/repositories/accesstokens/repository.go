// Package accesstokens persists the records behind issued bearer tokens.
package accesstokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
)

// Repository defines operations for issuing and resolving access tokens.
type Repository interface {
	// Create stores a token record keyed by its jti.
	Create(ctx context.Context, t *models.AccessToken) error

	// Find returns the token record for the jti or common.ErrorNotFound.
	Find(ctx context.Context, id string) (*models.AccessToken, error)

	// DeleteExpired removes tokens whose expiry is not after now and
	// returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
