package mailer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/gophaccounts/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMulti_SendsToAllAndJoinsErrors(t *testing.T) {
	var got []string
	ok := SenderFunc(func(ctx context.Context, msg Message) error {
		got = append(got, "ok:"+msg.Subject)
		return nil
	})
	bad := SenderFunc(func(ctx context.Context, msg Message) error {
		got = append(got, "bad:"+msg.Subject)
		return errors.New("smtp down")
	})

	err := Multi{bad, ok}.Send(context.Background(), Message{Subject: "s"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")
	assert.Equal(t, []string{"bad:s", "ok:s"}, got)

	require.NoError(t, Multi{ok}.Send(context.Background(), Message{}))
}

func TestLogSender(t *testing.T) {
	require.NoError(t, NewLogSender(logging.Discard()).Send(context.Background(), Message{To: []string{"a@x.com"}}))
}

func TestReadServerList(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "smtp.yml")
	require.NoError(t, os.WriteFile(good, []byte(`
from: "Accounts <noreply@example.com>"
sender: noreply@example.com
replyTo: [support@example.com]
servers:
  - host: smtp.example.com
    port: "587"
    connections: 4
    sendTimeout: 10
    auth:
      user: mailer
      password: secret
`), 0o600))

	sl, err := ReadServerList(good)
	require.NoError(t, err)
	require.Len(t, sl.Servers, 1)
	assert.Equal(t, "smtp.example.com:587", sl.Servers[0].Address())
	assert.Equal(t, "mailer", sl.Servers[0].AuthData.Username)
	assert.Equal(t, 4, sl.Servers[0].Connections)
	assert.Equal(t, []string{"support@example.com"}, sl.ReplyTo)

	unknown := filepath.Join(dir, "unknown.yml")
	require.NoError(t, os.WriteFile(unknown, []byte("servers: []\nbogus: 1\n"), 0o600))
	_, err = ReadServerList(unknown)
	require.Error(t, err, "strict decoding rejects unknown keys")

	empty := filepath.Join(dir, "empty.yml")
	require.NoError(t, os.WriteFile(empty, []byte("from: a@x.com\n"), 0o600))
	_, err = ReadServerList(empty)
	require.Error(t, err)

	_, err = ReadServerList(filepath.Join(dir, "missing.yml"))
	require.Error(t, err)
}

func TestVerificationMessage(t *testing.T) {
	msg, err := VerificationMessage(VerificationData{
		Email:     "jo@x.com",
		FirstName: "Jo",
		Key:       "abc123",
		Link:      "http://localhost:8000/accounts/confirm-email/abc123/",
		ValidFor:  "72h0m0s",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"jo@x.com"}, msg.To)
	assert.Equal(t, verificationSubject, msg.Subject)
	assert.Contains(t, msg.Text, "Hello Jo,")
	assert.Contains(t, msg.Text, "http://localhost:8000/accounts/confirm-email/abc123/")
	assert.Contains(t, msg.Text, "abc123")
	assert.Contains(t, msg.HTML, `href="http://localhost:8000/accounts/confirm-email/abc123/"`)
}
