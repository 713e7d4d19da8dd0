package client

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

// accountAPI is satisfied by *rpc.AccountServiceClient.
type accountAPI interface {
	Register(ctx context.Context, in *rpc.RegisterRequest, opts ...grpc.CallOption) (*rpc.Account, error)
	VerifyEmail(ctx context.Context, in *rpc.VerifyEmailRequest, opts ...grpc.CallOption) (*rpc.Account, error)
	ResendVerification(ctx context.Context, in *rpc.ResendVerificationRequest, opts ...grpc.CallOption) (*rpc.StatusResponse, error)
	Login(ctx context.Context, in *rpc.LoginRequest, opts ...grpc.CallOption) (*rpc.LoginResponse, error)
	ChangePassword(ctx context.Context, in *rpc.ChangePasswordRequest, opts ...grpc.CallOption) (*rpc.StatusResponse, error)
	GetProfile(ctx context.Context, in *rpc.GetProfileRequest, opts ...grpc.CallOption) (*rpc.Account, error)
	UpdateProfile(ctx context.Context, in *rpc.UpdateProfileRequest, opts ...grpc.CallOption) (*rpc.Account, error)
	ListUsers(ctx context.Context, in *rpc.ListUsersRequest, opts ...grpc.CallOption) (*rpc.ListUsersResponse, error)
	Ping(ctx context.Context, in *rpc.PingRequest, opts ...grpc.CallOption) (*rpc.PingResponse, error)
}

type GRPCClient struct {
	endpointURL string
	clientID    string
	conn        *grpc.ClientConn
	client      accountAPI

	mu          sync.RWMutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AuthorizationHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) setToken(t string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = t
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if t := s.token(); t != "" {
		ctx = withAccessToken(ctx, t)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewAccountClientService(endpointURL, clientID string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, clientID: clientID}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = rpc.NewAccountServiceClient(conn)
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *GRPCClient) Register(ctx context.Context, email string, password []byte, firstName, lastName string) (*rpc.Account, error) {
	pw := string(password)
	req := &rpc.RegisterRequest{Email: &email, Password: &pw, FirstName: optional(firstName), LastName: optional(lastName)}

	acc, err := s.client.Register(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}
	return acc, nil
}

func (s *GRPCClient) VerifyEmail(ctx context.Context, key string) (*rpc.Account, error) {
	acc, err := s.client.VerifyEmail(ctx, &rpc.VerifyEmailRequest{Key: &key})
	if err != nil {
		return nil, mapError(err)
	}
	return acc, nil
}

func (s *GRPCClient) ResendVerification(ctx context.Context, email string) error {
	_, err := s.client.ResendVerification(ctx, &rpc.ResendVerificationRequest{Email: &email})
	return mapError(err)
}

// Login authenticates with the password grant and keeps the returned token
// for subsequent calls.
func (s *GRPCClient) Login(ctx context.Context, userName string, password []byte) error {
	pw := string(password)
	req := &rpc.LoginRequest{Username: &userName, Password: &pw, GrantType: common.PasswordGrantType, ClientID: s.clientID}

	resp, err := s.client.Login(ctx, req)
	if err != nil {
		return mapError(err)
	}

	s.setToken(resp.AccessToken)
	return nil
}

func (s *GRPCClient) Logout() {
	s.setToken("")
}

func (s *GRPCClient) LoggedIn() bool {
	return s.token() != ""
}

func (s *GRPCClient) ChangePassword(ctx context.Context, oldPassword, newPassword []byte) error {
	if !s.LoggedIn() {
		return ErrNotLoggedIn
	}
	o, n := string(oldPassword), string(newPassword)
	_, err := s.client.ChangePassword(ctx, &rpc.ChangePasswordRequest{OldPassword: &o, NewPassword: &n})
	return mapError(err)
}

func (s *GRPCClient) Profile(ctx context.Context) (*rpc.Account, error) {
	if !s.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	acc, err := s.client.GetProfile(ctx, &rpc.GetProfileRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return acc, nil
}

func (s *GRPCClient) UpdateProfile(ctx context.Context, req *rpc.UpdateProfileRequest) (*rpc.Account, error) {
	if !s.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	acc, err := s.client.UpdateProfile(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}
	return acc, nil
}

func (s *GRPCClient) ListUsers(ctx context.Context) (*rpc.ListUsersResponse, error) {
	resp, err := s.client.ListUsers(ctx, &rpc.ListUsersRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.client.Ping(ctx, &rpc.PingRequest{})
	if err != nil {
		return mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil

}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}
