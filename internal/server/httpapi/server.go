// Package httpapi exposes the account service over HTTP with gin.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/logging"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/dmitrijs2005/gophaccounts/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

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

type HTTPServer struct {
	address     string
	accounts    accountService
	logger      logging.Logger
	corsOrigins []string
}

func NewHTTPServer(a string, l logging.Logger, accounts accountService, corsOrigins []string) *HTTPServer {
	return &HTTPServer{
		address:     a,
		logger:      l.With("module", "http_server"),
		accounts:    accounts,
		corsOrigins: corsOrigins,
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
