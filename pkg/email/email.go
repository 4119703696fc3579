package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"trucking-quote-backend/config"
	"trucking-quote-backend/pkg/metrics"
)

const (
	credentialPresent = "present"
	credentialMissing = "missing"
)

// Message is a transport-ready email.
type Message struct {
	To       []string
	ReplyTo  string
	Subject  string
	HTMLBody string
	TextBody string
}

// CredentialStatus reports whether each transport credential was configured,
// never the value itself.
type CredentialStatus struct {
	User string `json:"user"`
	Pass string `json:"pass"`
}

// Mailer delivers messages through one outbound transport. Implementations
// are built once at startup and are safe for concurrent use.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
	// Provider names the transport, e.g. "smtp"
	Provider() string
	Credentials() CredentialStatus
}

// NewMailer builds the transport selected by cfg.MailProvider, instrumented
// with send metrics.
func NewMailer(cfg *config.Config, log *slog.Logger) (Mailer, error) {
	var m Mailer
	switch cfg.MailProvider {
	case config.MailProviderSMTP:
		m = NewSMTPMailer(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.EmailUser,
			Password: cfg.EmailPass,
			From:     cfg.MailFrom,
			FromName: cfg.MailFromName,
		})
	case config.MailProviderResend:
		m = NewResendMailer(cfg.ResendAPIKey, cfg.MailFrom, cfg.MailFromName)
	case config.MailProviderLog:
		m = NewLogMailer(log, cfg.MailFrom)
	default:
		return nil, fmt.Errorf("unsupported mail provider %q", cfg.MailProvider)
	}
	return Instrument(m), nil
}

// Configured reports whether every credential of m is present.
func Configured(m Mailer) bool {
	c := m.Credentials()
	return c.User == credentialPresent && c.Pass == credentialPresent
}

func presence(value string) string {
	if value == "" {
		return credentialMissing
	}
	return credentialPresent
}

type instrumentedMailer struct {
	Mailer
}

// Instrument wraps m so every send is counted and timed per provider.
func Instrument(m Mailer) Mailer {
	if _, ok := m.(*instrumentedMailer); ok {
		return m
	}
	return &instrumentedMailer{Mailer: m}
}

func (m *instrumentedMailer) Send(ctx context.Context, msg *Message) error {
	provider := m.Provider()
	start := time.Now()
	err := m.Mailer.Send(ctx, msg)
	metrics.MailSendDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MailSendFailure.WithLabelValues(provider).Inc()
		return err
	}
	metrics.MailSendSuccess.WithLabelValues(provider).Inc()
	return nil
}
