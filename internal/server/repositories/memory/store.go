// Package memory provides mutex-guarded in-process implementations of the
// repositories. It backs the server when no database DSN is configured and
// is used by service and transport tests.
package memory

import (
	"sync"

	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
)

// Store holds every table. Repositories returned by its accessors share it.
type Store struct {
	mu sync.RWMutex

	accounts      map[string]*models.Account
	accountOrder  []string
	confirmations map[string]*models.EmailConfirmation // by key hash
	tokens        map[string]*models.AccessToken
	clients       map[string]models.Client
}

func NewStore() *Store {
	return &Store{
		accounts:      map[string]*models.Account{},
		confirmations: map[string]*models.EmailConfirmation{},
		tokens:        map[string]*models.AccessToken{},
		clients:       map[string]models.Client{},
	}
}

func (s *Store) Accounts() *AccountRepository           { return &AccountRepository{s: s} }
func (s *Store) Confirmations() *ConfirmationRepository { return &ConfirmationRepository{s: s} }
func (s *Store) AccessTokens() *AccessTokenRepository   { return &AccessTokenRepository{s: s} }
func (s *Store) Clients() *ClientRepository             { return &ClientRepository{s: s} }
