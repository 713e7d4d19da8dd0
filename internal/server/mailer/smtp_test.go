package mailer

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gophaccounts/internal/logging"
	"github.com/knadh/smtppool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePool struct {
	mu     sync.Mutex
	host   string
	sent   []smtppool.Email
	err    error
	closed bool
}

func (f *fakePool) Send(e smtppool.Email) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, e)
	return nil
}

func (f *fakePool) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

func withDialer(t *testing.T, fn func(s Server) (pool, error)) {
	t.Helper()
	orig := dialPool
	dialPool = fn
	t.Cleanup(func() { dialPool = orig })
}

func twoServers() ServerList {
	return ServerList{
		From:    "Accounts <noreply@example.com>",
		Sender:  "noreply@example.com",
		ReplyTo: []string{"support@example.com"},
		Servers: []Server{{Host: "a", Port: "25"}, {Host: "b", Port: "25"}},
	}
}

func TestSMTPSender_RoundRobinAndHeaders(t *testing.T) {
	pools := map[string]*fakePool{}
	withDialer(t, func(s Server) (pool, error) {
		p := &fakePool{host: s.Host}
		pools[s.Host] = p
		return p, nil
	})

	s, err := NewSMTPSender(twoServers(), logging.Discard())
	require.NoError(t, err)

	ctx := context.Background()
	msg := Message{To: []string{"jo@x.com"}, Subject: "hi", Text: "t", HTML: "<p>h</p>"}
	require.NoError(t, s.Send(ctx, msg))
	require.NoError(t, s.Send(ctx, msg))

	require.Len(t, pools["a"].sent, 1)
	require.Len(t, pools["b"].sent, 1)

	e := pools["a"].sent[0]
	assert.Equal(t, "Accounts <noreply@example.com>", e.From)
	assert.Equal(t, []string{"jo@x.com"}, e.To)
	assert.Equal(t, "hi", e.Subject)
	assert.Equal(t, "noreply@example.com", e.Headers.Get("Sender"))
	assert.Equal(t, "support@example.com", e.Headers.Get("Reply-To"))

	s.Close()
	assert.True(t, pools["a"].closed)
	assert.True(t, pools["b"].closed)
}

func TestSMTPSender_AllPoolsFail(t *testing.T) {
	withDialer(t, func(s Server) (pool, error) { return nil, errors.New("refused") })

	_, err := NewSMTPSender(twoServers(), logging.Discard())
	require.Error(t, err)
}

func TestSMTPSender_SkipsBrokenServerAndRedials(t *testing.T) {
	dials := 0
	withDialer(t, func(s Server) (pool, error) {
		dials++
		if s.Host == "a" {
			return nil, errors.New("refused")
		}
		return &fakePool{host: s.Host}, nil
	})

	s, err := NewSMTPSender(twoServers(), logging.Discard())
	require.NoError(t, err)
	require.Equal(t, 2, dials)

	// counter starts at 1 so the first send goes to "b", the second to "a"
	require.NoError(t, s.Send(context.Background(), Message{To: []string{"x@x.com"}}))
	err = s.Send(context.Background(), Message{To: []string{"x@x.com"}})
	require.Error(t, err)
	assert.Equal(t, 3, dials, "broken server must be redialled")
}

func TestSMTPSender_SendsThroughRedialledPool(t *testing.T) {
	up := false
	var late *fakePool
	withDialer(t, func(s Server) (pool, error) {
		if s.Host == "a" && !up {
			return nil, errors.New("refused")
		}
		p := &fakePool{host: s.Host}
		if s.Host == "a" {
			late = p
		}
		return p, nil
	})

	s, err := NewSMTPSender(twoServers(), logging.Discard())
	require.NoError(t, err)

	up = true
	ctx := context.Background()
	require.NoError(t, s.Send(ctx, Message{To: []string{"x@x.com"}}))
	require.NoError(t, s.Send(ctx, Message{To: []string{"y@x.com"}}))

	require.NotNil(t, late)
	require.Len(t, late.sent, 1)
	assert.Equal(t, []string{"y@x.com"}, late.sent[0].To)
}

func TestSMTPSender_SendErrorReplacesPool(t *testing.T) {
	var created []*fakePool
	withDialer(t, func(s Server) (pool, error) {
		p := &fakePool{host: s.Host}
		if len(created) == 0 {
			p.err = errors.New("421 closing")
		}
		created = append(created, p)
		return p, nil
	})

	cfg := ServerList{Servers: []Server{{Host: "a", Port: "25"}}}
	s, err := NewSMTPSender(cfg, logging.Discard())
	require.NoError(t, err)

	err = s.Send(context.Background(), Message{To: []string{"x@x.com"}})
	require.Error(t, err)
	require.Len(t, created, 2)
	assert.True(t, created[0].closed)

	require.NoError(t, s.Send(context.Background(), Message{To: []string{"x@x.com"}}))
	assert.Len(t, created[1].sent, 1)
}

func TestSMTPSender_CanceledContext(t *testing.T) {
	withDialer(t, func(s Server) (pool, error) { return &fakePool{}, nil })

	s, err := NewSMTPSender(twoServers(), logging.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, s.Send(ctx, Message{}), context.Canceled)
}

func TestDialPool_InvalidPort(t *testing.T) {
	_, err := dialPool(Server{Host: "localhost", Port: "smtp"})
	require.Error(t, err)
}
