package grpc

import (
	"context"

	"github.com/dmitrijs2005/gophaccounts/internal/rpc"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/dmitrijs2005/gophaccounts/internal/server/services"
)

func toAccount(a *models.Account) *rpc.Account {
	return &rpc.Account{Email: a.Email, FirstName: a.FirstName, LastName: a.LastName}
}

func (s *GRPCServer) Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.Account, error) {

	acc, err := s.accounts.Register(ctx, services.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return toAccount(acc), nil
}

func (s *GRPCServer) VerifyEmail(ctx context.Context, req *rpc.VerifyEmailRequest) (*rpc.Account, error) {

	acc, err := s.accounts.VerifyEmail(ctx, req.Key)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return toAccount(acc), nil
}

func (s *GRPCServer) ResendVerification(ctx context.Context, req *rpc.ResendVerificationRequest) (*rpc.StatusResponse, error) {

	if err := s.accounts.ResendVerification(ctx, req.Email); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &rpc.StatusResponse{Status: "OK"}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.LoginResponse, error) {

	tok, err := s.accounts.Login(ctx, services.LoginInput{
		Username:  req.Username,
		Password:  req.Password,
		GrantType: req.GrantType,
		ClientID:  req.ClientID,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &rpc.LoginResponse{AccessToken: tok.AccessToken, TokenType: tok.TokenType, ExpiresIn: tok.ExpiresIn}, nil
}

func (s *GRPCServer) ChangePassword(ctx context.Context, req *rpc.ChangePasswordRequest) (*rpc.StatusResponse, error) {

	err := s.accounts.ChangePassword(ctx, authHeader(ctx), services.ChangePasswordInput{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &rpc.StatusResponse{Status: "OK"}, nil
}

func (s *GRPCServer) GetProfile(ctx context.Context, _ *rpc.GetProfileRequest) (*rpc.Account, error) {

	acc, err := s.accounts.GetProfile(ctx, authHeader(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return toAccount(acc), nil
}

func (s *GRPCServer) UpdateProfile(ctx context.Context, req *rpc.UpdateProfileRequest) (*rpc.Account, error) {

	in := services.ProfileInput{Email: req.Email, FirstName: req.FirstName, LastName: req.LastName}
	acc, err := s.accounts.UpdateProfile(ctx, authHeader(ctx), in, req.Partial)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return toAccount(acc), nil
}

func (s *GRPCServer) ListUsers(ctx context.Context, _ *rpc.ListUsersRequest) (*rpc.ListUsersResponse, error) {

	list, err := s.accounts.ListUsers(ctx, authHeader(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := &rpc.ListUsersResponse{Full: list.Full, Users: make([]rpc.UserEntry, 0, len(list.Accounts))}
	for _, a := range list.Accounts {
		e := rpc.UserEntry{FirstName: a.FirstName}
		if list.Full {
			email, last := a.Email, a.LastName
			e.Email, e.LastName = &email, &last
		}
		resp.Users = append(resp.Users, e)
	}

	return resp, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *rpc.PingRequest) (*rpc.PingResponse, error) {

	return &rpc.PingResponse{Status: "OK"}, nil

}
