package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/logging"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/dmitrijs2005/gophaccounts/internal/server/services"
	"github.com/stretchr/testify/assert"
)

// failingAccounts returns err from every call.
type failingAccounts struct{ err error }

func (f failingAccounts) Register(context.Context, services.RegisterInput) (*models.Account, error) {
	return nil, f.err
}
func (f failingAccounts) VerifyEmail(context.Context, *string) (*models.Account, error) {
	return nil, f.err
}
func (f failingAccounts) ResendVerification(context.Context, *string) error { return f.err }
func (f failingAccounts) Login(context.Context, services.LoginInput) (*services.IssuedToken, error) {
	return nil, f.err
}
func (f failingAccounts) ChangePassword(context.Context, string, services.ChangePasswordInput) error {
	return f.err
}
func (f failingAccounts) GetProfile(context.Context, string) (*models.Account, error) {
	return nil, f.err
}
func (f failingAccounts) UpdateProfile(context.Context, string, services.ProfileInput, bool) (*models.Account, error) {
	return nil, f.err
}
func (f failingAccounts) ListUsers(context.Context, string) (*services.UserList, error) {
	return nil, f.err
}

func TestWriteError_Mapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
		want string
	}{
		{common.NewValidationError("email", common.MsgInvalidEmail), 400, `{"email":["Enter a valid email address."]}`},
		{common.ErrUnsupportedGrantType, 400, `{"error":"unsupported_grant_type"}`},
		{common.ErrInvalidClient, 401, `{"error":"invalid_client"}`},
		{fmt.Errorf("auth: %w", common.ErrUserInactive), 401, `{"detail":"User is inactive"}`},
		{common.ErrorNotFound, 404, `{"detail":"Not found."}`},
		{errors.New("db exploded"), 500, `{"detail":"A server error occurred."}`},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			router := NewHTTPServer(":0", logging.Discard(), failingAccounts{err: tc.err}, nil).Router()
			r := serve(router, http.MethodGet, "/profile", "", "")
			assert.Equal(t, tc.code, r.Code)
			assert.JSONEq(t, tc.want, r.Body)
		})
	}
}

func TestCORSConfig(t *testing.T) {
	_, ok := corsConfig(nil)
	assert.False(t, ok)

	c, ok := corsConfig([]string{"*"})
	assert.True(t, ok)
	assert.True(t, c.AllowAllOrigins)
	assert.False(t, c.AllowCredentials)

	c, ok = corsConfig([]string{"https://app.example.com"})
	assert.True(t, ok)
	assert.Equal(t, []string{"https://app.example.com"}, c.AllowOrigins)
	assert.NoError(t, c.Validate())
}
