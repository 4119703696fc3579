package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"MAIL_PROVIDER", "SMTP_HOST", "SMTP_PORT", "EMAIL_USER", "EMAIL_PASS", "MAIL_FROM", "QUOTE_RECIPIENT", "QUOTE_EXPOSE_DIAGNOSTICS", "QUOTE_VALIDATE_REQUESTS", "MAIL_SEND_TIMEOUT_SECONDS"} {
		unsetEnv(t, key)
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "smtp", cfg.MailProvider)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	assert.Equal(t, 465, cfg.SMTPPort)
	assert.Equal(t, DefaultQuoteRecipient, cfg.QuoteRecipient)
	assert.Equal(t, 20*time.Second, cfg.MailSendTimeout)
	assert.False(t, cfg.ExposeDiagnostics)
	assert.True(t, cfg.ValidateQuoteRequests)
}

func TestLoadConfigSenderFallsBackToLogin(t *testing.T) {
	unsetEnv(t, "MAIL_FROM")
	t.Setenv("MAIL_PROVIDER", "smtp")
	t.Setenv("EMAIL_USER", "broker@gmail.com")
	t.Setenv("EMAIL_PASS", "app-password")
	t.Setenv("MAIL_SEND_TIMEOUT_SECONDS", "5")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "broker@gmail.com", cfg.MailFrom)

	t.Setenv("MAIL_FROM", "quotes@example.com")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "quotes@example.com", cfg.MailFrom)
}

func TestLoadConfigRejectsUnknownProvider(t *testing.T) {
	t.Setenv("MAIL_PROVIDER", "carrier-pigeon")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("MAIL_PROVIDER", "log")
	t.Setenv("MAIL_SEND_TIMEOUT_SECONDS", "0")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestAllowedOrigins(t *testing.T) {
	t.Setenv("MAIL_PROVIDER", "log")
	t.Setenv("MAIL_SEND_TIMEOUT_SECONDS", "20")
	t.Setenv("FRONTEND_URL", "https://raquelmartinezinsurance.com/")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://www.raquelmartinezinsurance.com/ ,,http://localhost:3001")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://raquelmartinezinsurance.com",
		"https://www.raquelmartinezinsurance.com",
		"http://localhost:3001",
	}, cfg.AllowedOrigins())
}

// unsetEnv clears key for the duration of the test
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}
