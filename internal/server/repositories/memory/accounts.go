package memory

import (
	"context"
	"slices"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/google/uuid"
)

type AccountRepository struct {
	s *Store
}

// identityTaken must be called with the lock held.
func (r *AccountRepository) identityTaken(email, excludeID string) bool {
	for id, a := range r.s.accounts {
		if id == excludeID {
			continue
		}
		if a.Email == email || a.Username == email {
			return true
		}
	}
	return false
}

func (r *AccountRepository) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.identityTaken(a.Email, "") {
		return nil, common.ErrorAlreadyExists
	}

	created := *a
	created.ID = uuid.NewString()
	created.Username = a.Email
	created.DateJoined = time.Now().UTC()

	stored := created
	r.s.accounts[created.ID] = &stored
	r.s.accountOrder = append(r.s.accountOrder, created.ID)

	onRollback(ctx, func() {
		delete(r.s.accounts, created.ID)
		r.s.accountOrder = slices.DeleteFunc(r.s.accountOrder, func(id string) bool { return id == created.ID })
	})

	return &created, nil
}

func (r *AccountRepository) find(match func(a *models.Account) bool) (*models.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, a := range r.s.accounts {
		if match(a) {
			c := *a
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	return r.find(func(a *models.Account) bool { return a.ID == id })
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	return r.find(func(a *models.Account) bool { return a.Username == username })
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.find(func(a *models.Account) bool { return a.Email == email })
}

func (r *AccountRepository) EmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.identityTaken(email, excludeID), nil
}

func (r *AccountRepository) mutate(ctx context.Context, id string, fn func(a *models.Account) error) (*models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	prev := *a
	if err := fn(a); err != nil {
		*a = prev
		return nil, err
	}
	onRollback(ctx, func() {
		if cur, ok := r.s.accounts[id]; ok {
			*cur = prev
		}
	})
	c := *a
	return &c, nil
}

func (r *AccountRepository) Activate(ctx context.Context, id string) error {
	_, err := r.mutate(ctx, id, func(a *models.Account) error {
		a.IsActive = true
		return nil
	})
	return err
}

func (r *AccountRepository) SetPassword(ctx context.Context, id, passwordHash string) error {
	_, err := r.mutate(ctx, id, func(a *models.Account) error {
		a.PasswordHash = passwordHash
		return nil
	})
	return err
}

func (r *AccountRepository) Update(ctx context.Context, id string, upd models.AccountUpdate) (*models.Account, error) {
	return r.mutate(ctx, id, func(a *models.Account) error {
		if upd.Email != nil {
			if r.identityTaken(*upd.Email, id) {
				return common.ErrorAlreadyExists
			}
			a.Email = *upd.Email
			a.Username = *upd.Email
		}
		if upd.FirstName != nil {
			a.FirstName = *upd.FirstName
		}
		if upd.LastName != nil {
			a.LastName = *upd.LastName
		}
		return nil
	})
}

func (r *AccountRepository) List(ctx context.Context) ([]models.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]models.Account, 0, len(r.s.accountOrder))
	for _, id := range r.s.accountOrder {
		result = append(result, *r.s.accounts[id])
	}
	return result, nil
}
