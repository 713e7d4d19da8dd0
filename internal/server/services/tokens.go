package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/dbx"
	"github.com/dmitrijs2005/gophaccounts/internal/server/auth"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// IssuedToken is the result of a successful password grant.
type IssuedToken struct {
	AccessToken string // "Bearer <jwt>"
	TokenType   string
	ExpiresIn   int64 // seconds
}

// TokenService mints access tokens and resolves bearer headers back to
// accounts.
type TokenService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	jwtSecret   []byte
	validity    time.Duration
	now         func() time.Time
}

func NewTokenService(db dbx.DBTX, m repomanager.RepositoryManager, secret string, validity time.Duration) *TokenService {
	return &TokenService{
		db:          db,
		repomanager: m,
		jwtSecret:   []byte(secret),
		validity:    validity,
		now:         time.Now,
	}
}

// Issue mints and persists a new token for the account and client.
func (s *TokenService) Issue(ctx context.Context, accountID, clientID string) (*IssuedToken, error) {
	now := s.now().UTC()
	jti := uuid.NewString()

	signed, err := auth.GenerateToken(jti, accountID, clientID, s.jwtSecret, now, s.validity)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	err = s.repomanager.AccessTokens(s.db).Create(ctx, &models.AccessToken{
		ID:        jti,
		AccountID: accountID,
		ClientID:  clientID,
		ExpiresAt: now.Add(s.validity),
		CreatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}

	return &IssuedToken{
		AccessToken: auth.FormatBearer(signed),
		TokenType:   common.BearerTokenType,
		ExpiresIn:   int64(s.validity / time.Second),
	}, nil
}

// Authenticate resolves an Authorization header value to an active account.
//
// Failures, in order: empty header (ErrUnauthorizedAccess), malformed header,
// bad signature, expiry or unknown token (ErrInvalidAccessToken), missing
// account (ErrUserDoesNotExist), inactive account (ErrUserInactive).
func (s *TokenService) Authenticate(ctx context.Context, header string) (*models.Account, error) {
	raw, err := auth.ParseBearer(header)
	if err != nil {
		return nil, err
	}

	claims, err := auth.ParseToken(raw, s.jwtSecret)
	if err != nil {
		return nil, common.ErrInvalidAccessToken
	}

	token, err := s.repomanager.AccessTokens(s.db).Find(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidAccessToken
		}
		return nil, err
	}
	if token.AccountID != claims.AccountID || !token.ExpiresAt.After(s.now()) {
		return nil, common.ErrInvalidAccessToken
	}

	account, err := s.repomanager.Accounts(s.db).GetByID(ctx, token.AccountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserDoesNotExist
		}
		return nil, err
	}
	if !account.IsActive {
		return nil, common.ErrUserInactive
	}

	return account, nil
}

// PurgeExpired deletes expired token records.
func (s *TokenService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.repomanager.AccessTokens(s.db).DeleteExpired(ctx, s.now())
}
