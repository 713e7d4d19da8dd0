package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/cryptox"
	"github.com/dmitrijs2005/gophaccounts/internal/logging"
	"github.com/dmitrijs2005/gophaccounts/internal/server/mailer"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
)

var testHasher = cryptox.Hasher{Params: cryptox.Params{Time: 1, Memory: 8 * 1024, Threads: 1, SaltLen: 16, KeyLen: 32}}

// captureSender records every message; err is returned from Send when set.
type captureSender struct {
	mu   sync.Mutex
	msgs []mailer.Message
	err  error
}

func (c *captureSender) Send(ctx context.Context, msg mailer.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.msgs = append(c.msgs, msg)
	return nil
}

func (c *captureSender) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.msgs)
}

type fixture struct {
	rm       *repomanager.MemoryRepositoryManager
	mail     *captureSender
	tokens   *TokenService
	confirms *ConfirmationService
	svc      *AccountService
	keys     []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		rm:   repomanager.NewMemoryRepositoryManager(),
		mail: &captureSender{},
	}
	log := logging.Discard()

	f.tokens = NewTokenService(nil, f.rm, "test-secret", time.Hour)
	f.confirms = NewConfirmationService(nil, f.rm, f.mail, log, "http://localhost:8000", 72*time.Hour)
	f.confirms.newKey = func() (string, error) {
		k := fmt.Sprintf("key-%d", len(f.keys)+1)
		f.keys = append(f.keys, k)
		return k, nil
	}
	f.svc = NewAccountService(nil, f.rm, f.rm, testHasher, f.tokens, f.confirms, log)

	require.NoError(t, f.rm.Clients(nil).Upsert(context.Background(), models.Client{
		ClientID: "web", Name: "Web", GrantType: common.PasswordGrantType,
	}))
	return f
}

func (f *fixture) lastKey() string {
	return f.keys[len(f.keys)-1]
}

func str(s string) *string { return &s }

func (f *fixture) register(t *testing.T, email, password string) *models.Account {
	t.Helper()
	a, err := f.svc.Register(context.Background(), RegisterInput{
		Email: str(email), Password: str(password), FirstName: str("A"), LastName: str("A"),
	})
	require.NoError(t, err)
	return a
}

func (f *fixture) registerActive(t *testing.T, email, password string) *models.Account {
	t.Helper()
	f.register(t, email, password)
	a, err := f.svc.VerifyEmail(context.Background(), str(f.lastKey()))
	require.NoError(t, err)
	return a
}

func (f *fixture) login(email, password string) (*IssuedToken, error) {
	return f.svc.Login(context.Background(), LoginInput{
		Username: str(email), Password: str(password), GrantType: "password", ClientID: "web",
	})
}

func (f *fixture) bearer(t *testing.T, email, password string) string {
	t.Helper()
	tok, err := f.login(email, password)
	require.NoError(t, err)
	return tok.AccessToken
}

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	var verr *common.ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	return verr.Fields
}
