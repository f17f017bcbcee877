// Package email delivers transactional email.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Message is one email. To may hold several recipients; they do not see
// each other.
type Message struct {
	To        []string
	Subject   string
	HTML      string
	FromEmail string
	FromName  string
	Tags      []string
}

//go:generate mockgen -source=email.go -destination=mocks/mocks.go -package=mocks Sender

// Sender delivers a message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Error is returned when the provider refused or failed to deliver.
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("email failed to send: %s: %v", e.Reason, e.Err)
	}
	return "email failed to send: " + e.Reason
}

func (e *Error) Unwrap() error { return e.Err }

// LogSender writes messages to the log instead of delivering them. Used when
// no provider key is configured.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return &Error{Reason: "no recipients"}
	}
	s.logger.InfoContext(ctx, "email not sent, no provider configured",
		"subject", msg.Subject,
		"recipients", len(msg.To),
		"tags", strings.Join(msg.Tags, ","),
	)
	return nil
}
