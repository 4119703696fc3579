package usecase

import (
	"context"
	"strings"
	"time"

	"trucking-quote-backend/internal/domain"
	"trucking-quote-backend/pkg/email"
	"trucking-quote-backend/pkg/logger"
	"trucking-quote-backend/pkg/metrics"
	"trucking-quote-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// QuoteConfig is the fixed part of every quote notification.
type QuoteConfig struct {
	Recipient   string
	Subject     string
	SendTimeout time.Duration
	// Validate enables schema validation; when off, blanks render as placeholders
	Validate bool
}

type quoteUsecase struct {
	mailer   email.Mailer
	validate *validator.Validate
	cfg      QuoteConfig
	now      func() time.Time
}

// NewQuoteUsecase creates a new quote usecase around a mailer built once at startup
func NewQuoteUsecase(mailer email.Mailer, validate *validator.Validate, cfg QuoteConfig) domain.QuoteUsecase {
	return &quoteUsecase{
		mailer:   mailer,
		validate: validate,
		cfg:      cfg,
		now:      time.Now,
	}
}

// SubmitQuote validates the quote request, renders it and hands it to the mailer once
func (uc *quoteUsecase) SubmitQuote(ctx context.Context, req *domain.QuoteRequest) error {
	normalize(req)

	if uc.cfg.Validate {
		if err := uc.validate.Struct(req); err != nil {
			metrics.QuoteRequests.WithLabelValues(metrics.OutcomeInvalid).Inc()
			return &domain.ValidationError{Fields: validation.FormatValidationErrors(err)}
		}
	}

	html, text, err := email.RenderQuoteEmail(email.QuoteEmailData{
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		CoverageType:  string(req.CoverageType),
		CoverageLabel: req.CoverageType.Label(),
		ReceivedAt:    uc.now().UTC().Format(time.RFC1123),
	})
	if err != nil {
		metrics.QuoteRequests.WithLabelValues(metrics.OutcomeFailed).Inc()
		return err
	}

	msg := &email.Message{
		To:       []string{uc.cfg.Recipient},
		Subject:  uc.cfg.Subject,
		HTMLBody: html,
		TextBody: text,
	}
	// Only a validated address is safe to put in a header
	if uc.cfg.Validate {
		msg.ReplyTo = req.Email
	}

	sendCtx := ctx
	if uc.cfg.SendTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, uc.cfg.SendTimeout)
		defer cancel()
	}

	if err := uc.mailer.Send(sendCtx, msg); err != nil {
		metrics.QuoteRequests.WithLabelValues(metrics.OutcomeFailed).Inc()
		creds := uc.mailer.Credentials()
		return &domain.DeliveryError{
			Provider:    uc.mailer.Provider(),
			Credentials: domain.Credentials{User: creds.User, Pass: creds.Pass},
			Err:         err,
		}
	}

	metrics.QuoteRequests.WithLabelValues(metrics.OutcomeSent).Inc()
	logger.Log.InfoContext(ctx, "quote request emailed",
		"provider", uc.mailer.Provider(),
		"coverage", req.CoverageType,
	)
	return nil
}

func normalize(req *domain.QuoteRequest) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.CoverageType = domain.CoverageType(strings.ToLower(strings.TrimSpace(string(req.CoverageType))))
}
