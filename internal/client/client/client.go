package client

import (
	"context"

	"github.com/dmitrijs2005/gophaccounts/internal/rpc"
)

// Client is the account API contract used by the CLI.
type Client interface {
	Close() error
	Register(ctx context.Context, email string, password []byte, firstName, lastName string) (*rpc.Account, error)
	VerifyEmail(ctx context.Context, key string) (*rpc.Account, error)
	ResendVerification(ctx context.Context, email string) error
	Login(ctx context.Context, userName string, password []byte) error
	Logout()
	LoggedIn() bool
	ChangePassword(ctx context.Context, oldPassword, newPassword []byte) error
	Profile(ctx context.Context) (*rpc.Account, error)
	UpdateProfile(ctx context.Context, req *rpc.UpdateProfileRequest) (*rpc.Account, error)
	ListUsers(ctx context.Context) (*rpc.ListUsersResponse, error)
	Ping(ctx context.Context) error
}

var _ Client = (*GRPCClient)(nil)
