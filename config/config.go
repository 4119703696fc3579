package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultQuoteRecipient is the brokerage mailbox every quote request is
// delivered to. Override at build time with
// -ldflags "-X trucking-quote-backend/config.DefaultQuoteRecipient=...".
var DefaultQuoteRecipient = "quotes@raquelmartinezinsurance.com"

const (
	MailProviderSMTP   = "smtp"
	MailProviderResend = "resend"
	MailProviderLog    = "log"
)

type Config struct {
	Port      string
	GinMode   string
	LogLevel  string
	LogFormat string
	// CORS
	FrontendURL        string
	CORSAllowedOrigins []string
	// Mail transport
	MailProvider    string
	SMTPHost        string
	SMTPPort        int
	EmailUser       string // SMTP login, also the default sender address
	EmailPass       string
	MailFrom        string
	MailFromName    string
	ResendAPIKey    string
	MailSendTimeout time.Duration
	// Quote notification
	QuoteRecipient        string
	QuoteSubject          string
	ExposeDiagnostics     bool // Echo raw transport errors and credential presence to callers
	ValidateQuoteRequests bool
}

func LoadConfig() (*Config, error) {
	// .env is only expected locally; a missing file is not an error
	_ = godotenv.Load()

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		GinMode:   getEnv("GIN_MODE", "debug"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
		// Strip trailing slash so origin comparison is exact
		FrontendURL:        strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),
		// Mail transport (Gmail over implicit TLS by default)
		MailProvider:    strings.ToLower(getEnv("MAIL_PROVIDER", MailProviderSMTP)),
		SMTPHost:        getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:        getEnvInt("SMTP_PORT", 465),
		EmailUser:       getEnv("EMAIL_USER", ""),
		EmailPass:       getEnv("EMAIL_PASS", ""),
		MailFromName:    getEnv("MAIL_FROM_NAME", "Raquel Martinez Insurance"),
		ResendAPIKey:    getEnv("RESEND_API_KEY", ""),
		MailSendTimeout: time.Duration(getEnvInt("MAIL_SEND_TIMEOUT_SECONDS", 20)) * time.Second,
		// Quote notification
		QuoteRecipient:        getEnv("QUOTE_RECIPIENT", DefaultQuoteRecipient),
		QuoteSubject:          getEnv("QUOTE_SUBJECT", "New Trucking Insurance Quote Request"),
		ExposeDiagnostics:     getEnvBool("QUOTE_EXPOSE_DIAGNOSTICS", false),
		ValidateQuoteRequests: getEnvBool("QUOTE_VALIDATE_REQUESTS", true),
	}
	// Sender defaults to the SMTP login, as Gmail rewrites any other From
	cfg.MailFrom = getEnv("MAIL_FROM", cfg.EmailUser)

	switch cfg.MailProvider {
	case MailProviderSMTP, MailProviderResend, MailProviderLog:
	default:
		return nil, fmt.Errorf("unsupported MAIL_PROVIDER %q", cfg.MailProvider)
	}

	if cfg.MailSendTimeout <= 0 {
		return nil, fmt.Errorf("MAIL_SEND_TIMEOUT_SECONDS must be positive")
	}

	// Credentials are not required to boot; a missing value only fails at send time
	if cfg.MailProvider == MailProviderSMTP && (cfg.EmailUser == "" || cfg.EmailPass == "") {
		log.Println("WARNING: EMAIL_USER or EMAIL_PASS is missing. Quote emails will fail to send.")
	}
	if cfg.MailProvider == MailProviderResend && cfg.ResendAPIKey == "" {
		log.Println("WARNING: RESEND_API_KEY is missing. Quote emails will fail to send.")
	}

	if cfg.ExposeDiagnostics {
		log.Println("WARNING: QUOTE_EXPOSE_DIAGNOSTICS is enabled. Transport errors are returned to clients.")
	}

	return cfg, nil
}

// AllowedOrigins returns the origins permitted by CORS: the frontend URL
// plus any extra origins configured.
func (c *Config) AllowedOrigins() []string {
	origins := make([]string, 0, len(c.CORSAllowedOrigins)+1)
	if c.FrontendURL != "" {
		origins = append(origins, c.FrontendURL)
	}
	return append(origins, c.CORSAllowedOrigins...)
}

func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping blanks and trailing slashes
func getEnvList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimRight(strings.TrimSpace(part), "/")
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
