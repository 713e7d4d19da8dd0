package memory

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/google/uuid"
)

type ConfirmationRepository struct {
	s *Store
}

func (r *ConfirmationRepository) Create(ctx context.Context, c *models.EmailConfirmation) (*models.EmailConfirmation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.confirmations[c.KeyHash]; ok {
		return nil, common.ErrorAlreadyExists
	}

	created := *c
	created.ID = uuid.NewString()
	stored := created
	r.s.confirmations[c.KeyHash] = &stored

	onRollback(ctx, func() { delete(r.s.confirmations, stored.KeyHash) })

	return &created, nil
}

func (r *ConfirmationRepository) MarkSent(ctx context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.confirmations {
		if c.ID == id {
			sent := at
			c.SentAt = &sent
			return nil
		}
	}
	return nil
}

func (r *ConfirmationRepository) Consume(ctx context.Context, keyHash string, now time.Time) (*models.EmailConfirmation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.confirmations[keyHash]
	if !ok || c.ConsumedAt != nil || !c.ExpiresAt.After(now) {
		return nil, common.ErrorNotFound
	}

	consumed := now
	c.ConsumedAt = &consumed
	onRollback(ctx, func() { c.ConsumedAt = nil })

	out := *c
	return &out, nil
}
