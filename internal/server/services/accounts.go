// Package services implements the account lifecycle: registration, e-mail
// verification, login, password change, profile and user listing.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/dbx"
	"github.com/dmitrijs2005/gophaccounts/internal/logging"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/repomanager"
)

// PasswordHasher hashes and verifies credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// RegisterInput is the registration payload. Nil means the field was absent.
type RegisterInput struct {
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
}

type LoginInput struct {
	Username  *string
	Password  *string
	GrantType string
	ClientID  string
}

type ChangePasswordInput struct {
	OldPassword *string
	NewPassword *string
}

type ProfileInput struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// UserList is the account list plus the projection the caller may see.
// When Full is false only first names are exposed.
type UserList struct {
	Full     bool
	Accounts []models.Account
}

// AccountService is the account lifecycle controller.
type AccountService struct {
	db            dbx.DBTX
	tx            dbx.Transactor
	repomanager   repomanager.RepositoryManager
	hasher        PasswordHasher
	tokens        *TokenService
	confirmations *ConfirmationService
	log           logging.Logger
}

func NewAccountService(db dbx.DBTX, tx dbx.Transactor, m repomanager.RepositoryManager, hasher PasswordHasher,
	tokens *TokenService, confirmations *ConfirmationService, log logging.Logger) *AccountService {
	return &AccountService{
		db:            db,
		tx:            tx,
		repomanager:   m,
		hasher:        hasher,
		tokens:        tokens,
		confirmations: confirmations,
		log:           log.With("module", "accounts"),
	}
}

// Register creates an inactive account and mails a verification key.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.Account, error) {
	verr := &common.ValidationError{}

	email, emailOK := checkEmail(verr, "email", in.Email)
	checkPassword(verr, "password", in.Password)
	checkName(verr, "first_name", in.FirstName)
	checkName(verr, "last_name", in.LastName)

	if emailOK {
		taken, err := s.repomanager.Accounts(s.db).EmailTaken(ctx, email, "")
		if err != nil {
			return nil, err
		}
		if taken {
			verr.Add("email", common.MsgEmailTaken)
		}
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(*in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var (
		account *models.Account
		pending *PendingConfirmation
	)
	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		account, err = s.repomanager.Accounts(tx).Create(ctx, &models.Account{
			Email:        email,
			Username:     email,
			FirstName:    deref(in.FirstName),
			LastName:     deref(in.LastName),
			PasswordHash: hash,
		})
		if err != nil {
			return err
		}
		pending, err = s.confirmations.Issue(ctx, tx, account)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.NewValidationError("email", common.MsgEmailTaken)
		}
		return nil, err
	}

	s.log.Info(ctx, "account registered", "account_id", account.ID)

	if err := s.confirmations.Dispatch(ctx, account, pending); err != nil {
		s.log.Error(ctx, "verification mail not sent", "account_id", account.ID, "error", err)
	}

	return account, nil
}

// VerifyEmail consumes key and activates its account.
func (s *AccountService) VerifyEmail(ctx context.Context, key *string) (*models.Account, error) {
	verr := &common.ValidationError{}
	if !requireString(verr, "key", key) {
		return nil, verr
	}

	var account *models.Account
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		c, err := s.confirmations.Consume(ctx, tx, *key)
		if err != nil {
			return err
		}
		accounts := s.repomanager.Accounts(tx)
		if err := accounts.Activate(ctx, c.AccountID); err != nil {
			return err
		}
		account, err = accounts.GetByID(ctx, c.AccountID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "e-mail verified", "account_id", account.ID)
	return account, nil
}

// ResendVerification issues a new key for an inactive account. It succeeds
// for any well-formed address so callers cannot probe for accounts.
func (s *AccountService) ResendVerification(ctx context.Context, emailIn *string) error {
	verr := &common.ValidationError{}
	email, ok := checkEmail(verr, "email", emailIn)
	if !ok {
		return verr
	}

	account, err := s.repomanager.Accounts(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return err
	}
	if account.IsActive {
		return nil
	}

	var pending *PendingConfirmation
	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		pending, err = s.confirmations.Issue(ctx, tx, account)
		return err
	})
	if err != nil {
		return err
	}

	if err := s.confirmations.Dispatch(ctx, account, pending); err != nil {
		s.log.Error(ctx, "verification mail not sent", "account_id", account.ID, "error", err)
	}
	return nil
}

// Login checks credentials, then the grant, and mints a token.
func (s *AccountService) Login(ctx context.Context, in LoginInput) (*IssuedToken, error) {
	verr := &common.ValidationError{}
	requireString(verr, "username", in.Username)
	requireString(verr, "password", in.Password)
	if err := verr.Err(); err != nil {
		return nil, err
	}

	account, err := s.repomanager.Accounts(s.db).GetByUsername(ctx, SanitizeEmail(*in.Username))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.hasher.Verify(*in.Password, account.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}
	if !account.IsActive {
		return nil, common.ErrAccountNotActivated
	}

	if in.GrantType != common.PasswordGrantType {
		return nil, common.ErrUnsupportedGrantType
	}
	client, err := s.repomanager.Clients(s.db).Find(ctx, in.ClientID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidClient
		}
		return nil, err
	}
	if client.GrantType != common.PasswordGrantType {
		return nil, common.ErrUnsupportedGrantType
	}

	return s.tokens.Issue(ctx, account.ID, client.ClientID)
}

// ChangePassword replaces the caller's password after re-checking the old one.
func (s *AccountService) ChangePassword(ctx context.Context, authHeader string, in ChangePasswordInput) error {
	verr := &common.ValidationError{}
	checkPassword(verr, "old_password", in.OldPassword)
	checkPassword(verr, "new_password", in.NewPassword)
	if err := verr.Err(); err != nil {
		return err
	}

	account, err := s.tokens.Authenticate(ctx, authHeader)
	if err != nil {
		return err
	}

	ok, err := s.hasher.Verify(*in.OldPassword, account.PasswordHash)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return common.ErrInvalidPassword
	}

	if *in.NewPassword == *in.OldPassword {
		return common.NewValidationError("new_password", common.MsgSamePassword)
	}

	hash, err := s.hasher.Hash(*in.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.repomanager.Accounts(s.db).SetPassword(ctx, account.ID, hash); err != nil {
		return err
	}

	s.log.Info(ctx, "password changed", "account_id", account.ID)
	return nil
}

// GetProfile returns the caller's account.
func (s *AccountService) GetProfile(ctx context.Context, authHeader string) (*models.Account, error) {
	return s.tokens.Authenticate(ctx, authHeader)
}

// UpdateProfile changes the caller's e-mail and names. With partial unset
// the e-mail is required.
func (s *AccountService) UpdateProfile(ctx context.Context, authHeader string, in ProfileInput, partial bool) (*models.Account, error) {
	account, err := s.tokens.Authenticate(ctx, authHeader)
	if err != nil {
		return nil, err
	}

	verr := &common.ValidationError{}
	upd := models.AccountUpdate{FirstName: in.FirstName, LastName: in.LastName}

	if in.Email != nil || !partial {
		if email, ok := checkEmail(verr, "email", in.Email); ok {
			taken, err := s.repomanager.Accounts(s.db).EmailTaken(ctx, email, account.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				verr.Add("email", common.MsgEmailTaken)
			}
			upd.Email = &email
		}
	}
	checkName(verr, "first_name", in.FirstName)
	checkName(verr, "last_name", in.LastName)
	if err := verr.Err(); err != nil {
		return nil, err
	}

	updated, err := s.repomanager.Accounts(s.db).Update(ctx, account.ID, upd)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.NewValidationError("email", common.MsgEmailTaken)
		}
		return nil, err
	}
	return updated, nil
}

// ListUsers returns every account. Callers that are not authenticated and
// active get the reduced projection.
func (s *AccountService) ListUsers(ctx context.Context, authHeader string) (*UserList, error) {
	full := false
	if authHeader != "" {
		_, err := s.tokens.Authenticate(ctx, authHeader)
		switch {
		case err == nil:
			full = true
		case common.IsAuthFailure(err):
		default:
			return nil, err
		}
	}

	accounts, err := s.repomanager.Accounts(s.db).List(ctx)
	if err != nil {
		return nil, err
	}
	return &UserList{Full: full, Accounts: accounts}, nil
}
