package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/logging"
	"github.com/knadh/smtppool"
)

// pool is the part of *smtppool.Pool used here.
type pool interface {
	Send(e smtppool.Email) error
	Close()
}

// dialPool is a seam for tests.
var dialPool = func(s Server) (pool, error) {
	var auth smtp.Auth
	if s.AuthData.Username != "" || s.AuthData.Password != "" {
		auth = smtp.PlainAuth("", s.AuthData.Username, s.AuthData.Password, s.Host)
	}

	port, err := strconv.Atoi(s.Port)
	if err != nil {
		return nil, fmt.Errorf("invalid port %q: %w", s.Port, err)
	}

	timeout := time.Duration(s.SendTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxConns := s.Connections
	if maxConns <= 0 {
		maxConns = 2
	}

	p, err := smtppool.New(smtppool.Opt{
		Host:            s.Host,
		Port:            port,
		MaxConns:        maxConns,
		IdleTimeout:     timeout,
		PoolWaitTimeout: timeout,
		TLSConfig: &tls.Config{
			InsecureSkipVerify: s.InsecureSkipVerify,
			ServerName:         s.Host,
		},
		Auth: auth,
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// SMTPSender delivers mail through a set of pooled SMTP servers chosen in
// round-robin order. A server whose send fails is redialled once. A server
// that was never connected is dialled on use and the message goes through
// the new pool.
type SMTPSender struct {
	cfg     ServerList
	log     logging.Logger
	mu      sync.Mutex
	pools   []pool
	counter atomic.Uint64
}

// NewSMTPSender dials a pool per configured server. Servers that fail to
// initialise are skipped; at least one must succeed.
func NewSMTPSender(cfg ServerList, log logging.Logger) (*SMTPSender, error) {
	s := &SMTPSender{cfg: cfg, log: log.With("module", "mailer.smtp")}

	for _, srv := range cfg.Servers {
		p, err := dialPool(srv)
		if err != nil {
			s.log.Error(context.Background(), "error setting up connection pool", "server", srv.Address(), "error", err)
		}
		s.pools = append(s.pools, p)
	}

	for _, p := range s.pools {
		if p != nil {
			return s, nil
		}
	}
	return nil, errors.New("no smtp server connection in the pool")
}

func (s *SMTPSender) email(msg Message) smtppool.Email {
	headers := textproto.MIMEHeader{}
	if s.cfg.Sender != "" {
		headers.Set("Sender", s.cfg.Sender)
	}
	if len(s.cfg.ReplyTo) > 0 {
		headers.Set("Reply-To", strings.Join(s.cfg.ReplyTo, ", "))
	}
	return smtppool.Email{
		From:    s.cfg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Text:    []byte(msg.Text),
		HTML:    []byte(msg.HTML),
		Headers: headers,
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	index := int(s.counter.Add(1) % uint64(len(s.pools)))
	srv := s.cfg.Servers[index]

	s.mu.Lock()
	p := s.pools[index]
	s.mu.Unlock()

	if p == nil {
		np, err := s.redial(ctx, index, srv)
		if err != nil {
			return errors.Join(errors.New("pool not connected"), err)
		}
		p = np
	}

	err := p.Send(s.email(msg))
	if err != nil {
		s.log.Error(ctx, "error when trying to send email", "server", srv.Address(), "error", err)
		_, _ = s.redial(ctx, index, srv)
	}
	return err
}

// redial replaces the pool at index with a fresh one.
func (s *SMTPSender) redial(ctx context.Context, index int, srv Server) (pool, error) {
	p, err := dialPool(srv)
	if err != nil {
		s.log.Error(ctx, "cannot reconnect pool", "server", srv.Address(), "error", err)
		return nil, err
	}

	s.mu.Lock()
	old := s.pools[index]
	s.pools[index] = p
	s.mu.Unlock()

	if old != nil {
		old.Close()
	}
	s.log.Warn(ctx, "reconnected to pool", "server", srv.Address())
	return p, nil
}

// Close releases every pool.
func (s *SMTPSender) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.pools {
		if p != nil {
			p.Close()
		}
	}
}
