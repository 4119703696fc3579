package email

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"trucking-quote-backend/config"
	"trucking-quote-backend/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMailer struct {
	provider string
	err      error
	sent     int
}

func (s *stubMailer) Send(ctx context.Context, msg *Message) error {
	s.sent++
	return s.err
}

func (s *stubMailer) Provider() string { return s.provider }

func (s *stubMailer) Credentials() CredentialStatus {
	return CredentialStatus{User: credentialPresent, Pass: credentialPresent}
}

func TestNewMailerSelectsProvider(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{config.MailProviderSMTP, "smtp"},
		{config.MailProviderResend, "resend"},
		{config.MailProviderLog, "log"},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			m, err := NewMailer(&config.Config{MailProvider: tt.provider, SMTPHost: "localhost", SMTPPort: 25}, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Provider())
		})
	}

	_, err := NewMailer(&config.Config{MailProvider: "fax"}, nil)
	assert.Error(t, err)
}

func TestInstrumentCountsOutcomes(t *testing.T) {
	ok := Instrument(&stubMailer{provider: "stub-ok"})
	bad := Instrument(&stubMailer{provider: "stub-bad", err: errors.New("Invalid login")})

	require.NoError(t, ok.Send(context.Background(), &Message{}))
	require.Error(t, bad.Send(context.Background(), &Message{}))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.MailSendSuccess.WithLabelValues("stub-ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.MailSendFailure.WithLabelValues("stub-bad")))
	assert.Same(t, ok, Instrument(ok))
}

func TestLogMailer(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(slog.New(slog.NewJSONHandler(&buf, nil)), "quotes@example.com")

	require.NoError(t, m.Send(context.Background(), &Message{
		To:       []string{"broker@example.com"},
		Subject:  "New Trucking Insurance Quote Request",
		TextBody: "Name: Jane Doe",
	}))
	assert.Contains(t, buf.String(), "Name: Jane Doe")
	assert.True(t, Configured(m))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.Send(ctx, &Message{}), context.Canceled)
}
