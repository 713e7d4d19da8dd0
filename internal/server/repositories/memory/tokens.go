package memory

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
)

type AccessTokenRepository struct {
	s *Store
}

func (r *AccessTokenRepository) Create(ctx context.Context, t *models.AccessToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tokens[t.ID]; ok {
		return common.ErrorAlreadyExists
	}
	stored := *t
	r.s.tokens[t.ID] = &stored
	return nil
}

func (r *AccessTokenRepository) Find(ctx context.Context, id string) (*models.AccessToken, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.tokens[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *t
	return &out, nil
}

func (r *AccessTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for id, t := range r.s.tokens {
		if !t.ExpiresAt.After(now) {
			delete(r.s.tokens, id)
			n++
		}
	}
	return n, nil
}

type ClientRepository struct {
	s *Store
}

func (r *ClientRepository) Upsert(ctx context.Context, c models.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.clients[c.ClientID] = c
	return nil
}

func (r *ClientRepository) Find(ctx context.Context, clientID string) (*models.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.clients[clientID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &c, nil
}
