package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/gophaccounts/internal/logging"
	"github.com/dmitrijs2005/gophaccounts/internal/rpc"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/dmitrijs2005/gophaccounts/internal/server/services"
	"google.golang.org/grpc"
)

// accountService is the subset of services.AccountService used by the transport.
type accountService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.Account, error)
	VerifyEmail(ctx context.Context, key *string) (*models.Account, error)
	ResendVerification(ctx context.Context, email *string) error
	Login(ctx context.Context, in services.LoginInput) (*services.IssuedToken, error)
	ChangePassword(ctx context.Context, authHeader string, in services.ChangePasswordInput) error
	GetProfile(ctx context.Context, authHeader string) (*models.Account, error)
	UpdateProfile(ctx context.Context, authHeader string, in services.ProfileInput, partial bool) (*models.Account, error)
	ListUsers(ctx context.Context, authHeader string) (*services.UserList, error)
}

type GRPCServer struct {
	address  string
	accounts accountService
	logger   logging.Logger
}

var _ rpc.AccountServiceServer = (*GRPCServer)(nil)

func NewGRPCServer(a string, l logging.Logger, accounts accountService) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		accounts: accounts,
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.authorizationInterceptor))

	rpc.RegisterAccountServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
