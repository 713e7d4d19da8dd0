package mailer

import (
	"context"

	"github.com/dmitrijs2005/gophaccounts/internal/logging"
)

// LogSender only records that a message would have been sent.
type LogSender struct {
	log logging.Logger
}

func NewLogSender(log logging.Logger) *LogSender {
	return &LogSender{log: log.With("module", "mailer.log")}
}

func (l *LogSender) Send(ctx context.Context, msg Message) error {
	l.log.Info(ctx, "mail not delivered, no transport configured", "to", msg.To, "subject", msg.Subject)
	l.log.Debug(ctx, "mail body", "text", msg.Text)
	return nil
}
