// Package server wires storage, mail delivery and the account services and
// runs the HTTP and gRPC transports until shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/cryptox"
	"github.com/dmitrijs2005/gophaccounts/internal/dbx"
	"github.com/dmitrijs2005/gophaccounts/internal/logging"
	"github.com/dmitrijs2005/gophaccounts/internal/server/config"
	"github.com/dmitrijs2005/gophaccounts/internal/server/httpapi"
	"github.com/dmitrijs2005/gophaccounts/internal/server/mailer"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophaccounts/internal/server/services"
	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"

	gs "github.com/dmitrijs2005/gophaccounts/internal/server/grpc"
)

const tokenPurgeInterval = time.Hour

type App struct {
	config   *config.Config
	logger   logging.Logger
	closers  []io.Closer
	accounts *services.AccountService
	tokens   *services.TokenService
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger, logCloser, err := logging.New(logging.Options{Level: c.LogLevel, File: c.LogFile})
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}
	app := &App{config: c, logger: logger, closers: []io.Closer{logCloser}}

	if err := app.init(ctx); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

func (app *App) init(ctx context.Context) error {
	c := app.config

	var (
		db *sql.DB
		rm repomanager.RepositoryManager
		tx dbx.Transactor
	)

	if c.DatabaseDSN != "" {
		conn, err := sql.Open("pgx", c.DatabaseDSN)
		if err != nil {
			return fmt.Errorf("db init error: %w", err)
		}
		app.closers = append(app.closers, conn)

		if err := conn.PingContext(ctx); err != nil {
			return fmt.Errorf("db ping error: %w", err)
		}

		pm := repomanager.NewPostgresRepositoryManager()
		if err := pm.RunMigrations(ctx, conn); err != nil {
			return fmt.Errorf("db migration error: %w", err)
		}
		db, rm, tx = conn, pm, dbx.NewSQLTransactor(conn)
	} else {
		app.logger.Warn(ctx, "No database DSN configured, using in-memory storage")
		mm := repomanager.NewMemoryRepositoryManager()
		rm, tx = mm, mm
	}

	if err := app.seedClients(ctx, rm.Clients(db)); err != nil {
		return err
	}

	sender, err := app.initMailer(ctx)
	if err != nil {
		return err
	}

	app.tokens = services.NewTokenService(db, rm, c.SecretKey, c.AccessTokenValidityDuration)
	confirmations := services.NewConfirmationService(db, rm, sender, app.logger, c.PublicBaseURL, c.VerificationKeyValidityDuration)
	app.accounts = services.NewAccountService(db, tx, rm, cryptox.NewHasher(), app.tokens, confirmations, app.logger)

	return nil
}

type clientUpserter interface {
	Upsert(ctx context.Context, c models.Client) error
}

func (app *App) seedClients(ctx context.Context, repo clientUpserter) error {
	for _, id := range app.config.ClientIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		err := repo.Upsert(ctx, models.Client{ClientID: id, Name: id, GrantType: common.PasswordGrantType})
		if err != nil {
			return fmt.Errorf("client %s seed error: %w", id, err)
		}
	}
	return nil
}

// initMailer combines the configured transports. Without any, mail is only
// logged.
func (app *App) initMailer(ctx context.Context) (mailer.Sender, error) {
	c := app.config
	var senders mailer.Multi

	if c.SMTPConfigFile != "" {
		list, err := mailer.ReadServerList(c.SMTPConfigFile)
		if err != nil {
			return nil, fmt.Errorf("smtp config error: %w", err)
		}
		if list.From == "" {
			list.From = c.MailFrom
		}
		smtp, err := mailer.NewSMTPSender(list, app.logger)
		if err != nil {
			return nil, fmt.Errorf("smtp init error: %w", err)
		}
		app.closers = append(app.closers, closerFunc(func() error { smtp.Close(); return nil }))
		senders = append(senders, smtp)
	}

	if c.MailOutboxDir != "" {
		outbox, err := mailer.NewOutboxSender(c.MailOutboxDir, c.MailFrom)
		if err != nil {
			return nil, fmt.Errorf("mail outbox error: %w", err)
		}
		app.logger.Info(ctx, "Writing outgoing mail to outbox", "dir", outbox.Dir())
		senders = append(senders, outbox)
	}

	if len(senders) == 0 {
		return mailer.NewLogSender(app.logger), nil
	}
	return senders, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.accounts)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if !strings.EqualFold(app.config.LogLevel, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}
	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.accounts, app.config.CORSOrigins)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// purgeExpiredTokens removes expired access tokens every interval.
func (app *App) purgeExpiredTokens(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := app.tokens.PurgeExpired(ctx)
			if err != nil {
				app.logger.Error(ctx, "token purge failed", "error", err)
				continue
			}
			if n > 0 {
				app.logger.Info(ctx, "expired tokens purged", "count", n)
			}
		}
	}
}

// Run blocks until ctx is cancelled, a signal arrives or a transport fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.purgeExpiredTokens(ctx, tokenPurgeInterval)
	}()

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
	app.Close()
}

// Close releases the database, mail pools and log file, in reverse order of
// acquisition.
func (app *App) Close() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i].Close(); err != nil {
			app.logger.Error(context.Background(), "close error", "error", err)
		}
	}
	app.closers = nil
}
