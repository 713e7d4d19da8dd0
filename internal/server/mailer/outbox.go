package mailer

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/filex"
	"github.com/google/uuid"
	"github.com/jordan-wright/email"
)

// OutboxSender writes every message as an RFC 5322 .eml file into a
// directory instead of delivering it.
type OutboxSender struct {
	dir  string
	from string
	now  func() time.Time
}

// NewOutboxSender creates dir if needed.
func NewOutboxSender(dir, from string) (*OutboxSender, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	return &OutboxSender{dir: abs, from: from, now: time.Now}, nil
}

func (o *OutboxSender) Dir() string { return o.dir }

func (o *OutboxSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e := email.NewEmail()
	e.From = o.from
	e.To = msg.To
	e.Subject = msg.Subject
	e.Text = []byte(msg.Text)
	if msg.HTML != "" {
		e.HTML = []byte(msg.HTML)
	}

	raw, err := e.Bytes()
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}

	name := fmt.Sprintf("%s-%s.eml", o.now().UTC().Format("20060102T150405.000000000"), uuid.NewString())
	return filex.WriteFileAtomic(filepath.Join(o.dir, name), raw, 0o640)
}
