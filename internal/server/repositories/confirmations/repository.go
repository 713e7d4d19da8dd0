// Package confirmations stores hashed single-use e-mail verification keys.
package confirmations

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
)

// Repository defines the confirmation registry.
type Repository interface {
	// Create stores a new confirmation and fills in its ID.
	Create(ctx context.Context, c *models.EmailConfirmation) (*models.EmailConfirmation, error)

	// MarkSent records when the verification mail was dispatched.
	MarkSent(ctx context.Context, id string, at time.Time) error

	// Consume atomically marks the unconsumed, unexpired confirmation with the
	// given key hash as used and returns it. Unknown, expired or already
	// consumed keys yield common.ErrorNotFound.
	Consume(ctx context.Context, keyHash string, now time.Time) (*models.EmailConfirmation, error)
}
