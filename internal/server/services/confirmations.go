package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/cryptox"
	"github.com/dmitrijs2005/gophaccounts/internal/dbx"
	"github.com/dmitrijs2005/gophaccounts/internal/logging"
	"github.com/dmitrijs2005/gophaccounts/internal/netx"
	"github.com/dmitrijs2005/gophaccounts/internal/server/mailer"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/repomanager"
)

// keyBytes is the entropy of a verification key before hex encoding.
const keyBytes = 32

// PendingConfirmation is a freshly issued key waiting to be mailed.
type PendingConfirmation struct {
	Confirmation *models.EmailConfirmation
	Key          string
}

// ConfirmationService issues, dispatches and consumes e-mail verification keys.
type ConfirmationService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	sender      mailer.Sender
	log         logging.Logger
	baseURL     string
	validity    time.Duration
	now         func() time.Time
	newKey      func() (string, error)
}

func NewConfirmationService(db dbx.DBTX, m repomanager.RepositoryManager, sender mailer.Sender, log logging.Logger, baseURL string, validity time.Duration) *ConfirmationService {
	return &ConfirmationService{
		db:          db,
		repomanager: m,
		sender:      sender,
		log:         log.With("module", "confirmations"),
		baseURL:     baseURL,
		validity:    validity,
		now:         time.Now,
		newKey:      func() (string, error) { return common.MakeRandHexString(keyBytes) },
	}
}

// Issue creates a confirmation for account using tx.
func (s *ConfirmationService) Issue(ctx context.Context, tx dbx.DBTX, account *models.Account) (*PendingConfirmation, error) {
	key, err := s.newKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}

	now := s.now().UTC()
	c, err := s.repomanager.Confirmations(tx).Create(ctx, &models.EmailConfirmation{
		AccountID: account.ID,
		Email:     account.Email,
		KeyHash:   cryptox.HashToken(key),
		CreatedAt: now,
		ExpiresAt: now.Add(s.validity),
	})
	if err != nil {
		return nil, fmt.Errorf("store confirmation: %w", err)
	}

	return &PendingConfirmation{Confirmation: c, Key: key}, nil
}

// Link builds the confirmation URL for key.
func (s *ConfirmationService) Link(key string) (string, error) {
	return netx.JoinURL(s.baseURL, true, "accounts", "confirm-email", key)
}

// Dispatch mails the key to the account and records the send time.
func (s *ConfirmationService) Dispatch(ctx context.Context, account *models.Account, p *PendingConfirmation) error {
	link, err := s.Link(p.Key)
	if err != nil {
		return err
	}

	msg, err := mailer.VerificationMessage(mailer.VerificationData{
		Email:     account.Email,
		FirstName: account.FirstName,
		Key:       p.Key,
		Link:      link,
		ValidFor:  s.validity.String(),
	})
	if err != nil {
		return err
	}

	if err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}

	if err := s.repomanager.Confirmations(s.db).MarkSent(ctx, p.Confirmation.ID, s.now().UTC()); err != nil {
		s.log.Warn(ctx, "failed to record confirmation send time", "confirmation_id", p.Confirmation.ID, "error", err)
	}
	return nil
}

// Consume marks the key as used. Unknown, expired or reused keys yield
// common.ErrorNotFound.
func (s *ConfirmationService) Consume(ctx context.Context, tx dbx.DBTX, key string) (*models.EmailConfirmation, error) {
	return s.repomanager.Confirmations(tx).Consume(ctx, cryptox.HashToken(key), s.now().UTC())
}
