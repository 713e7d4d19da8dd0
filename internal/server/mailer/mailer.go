// Package mailer dispatches account e-mails: SMTP delivery through pooled
// connections, an .eml outbox for development, and a logging fallback.
package mailer

import (
	"context"
	"errors"
)

// Message is a rendered e-mail.
type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers a message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, msg Message) error

func (f SenderFunc) Send(ctx context.Context, msg Message) error { return f(ctx, msg) }

// Multi sends every message through all senders and joins their errors.
type Multi []Sender

func (m Multi) Send(ctx context.Context, msg Message) error {
	var errs []error
	for _, s := range m {
		if err := s.Send(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
