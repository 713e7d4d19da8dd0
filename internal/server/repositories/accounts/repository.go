// Package accounts declares the credential store: account persistence with
// unique identity and login handle.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
)

// Repository defines account persistence. Lookups return common.ErrorNotFound
// when nothing matches; writes that collide on email or username return
// common.ErrorAlreadyExists.
type Repository interface {
	// Create inserts a new account and fills in ID and DateJoined.
	Create(ctx context.Context, a *models.Account) (*models.Account, error)

	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)

	// EmailTaken reports whether another account (other than excludeID) uses email.
	EmailTaken(ctx context.Context, email, excludeID string) (bool, error)

	Activate(ctx context.Context, id string) error
	SetPassword(ctx context.Context, id, passwordHash string) error

	// Update applies the non-nil fields. A new email is written to both the
	// email and username columns.
	Update(ctx context.Context, id string, upd models.AccountUpdate) (*models.Account, error)

	// List returns every account ordered by date joined.
	List(ctx context.Context) ([]models.Account, error)
}
