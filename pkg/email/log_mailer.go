package email

import (
	"context"
	"log/slog"
	"strings"
)

// LogMailer writes messages to the log instead of delivering them. Meant
// for local development.
type LogMailer struct {
	log  *slog.Logger
	from string
}

func NewLogMailer(log *slog.Logger, from string) *LogMailer {
	if log == nil {
		log = slog.Default()
	}
	return &LogMailer{log: log, from: from}
}

func (l *LogMailer) Send(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.log.InfoContext(ctx, "email not sent (log transport)",
		"from", l.from,
		"to", strings.Join(msg.To, ","),
		"reply_to", msg.ReplyTo,
		"subject", msg.Subject,
		"text", msg.TextBody,
	)
	return nil
}

func (l *LogMailer) Provider() string {
	return "log"
}

// Credentials reports both as present; the log transport needs none.
func (l *LogMailer) Credentials() CredentialStatus {
	return CredentialStatus{User: credentialPresent, Pass: credentialPresent}
}
