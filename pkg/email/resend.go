package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendMailer sends through the Resend HTTP API.
type ResendMailer struct {
	client   *resend.Client
	from     string
	fromName string
	creds    CredentialStatus
}

func NewResendMailer(apiKey, from, fromName string) *ResendMailer {
	return &ResendMailer{
		client:   resend.NewClient(apiKey),
		from:     from,
		fromName: fromName,
		creds: CredentialStatus{
			User: presence(from),
			Pass: presence(apiKey),
		},
	}
}

func (r *ResendMailer) Send(ctx context.Context, msg *Message) error {
	if r.creds.Pass == credentialMissing {
		return errors.New("RESEND_API_KEY not configured")
	}

	from := r.from
	if r.fromName != "" {
		from = fmt.Sprintf("%s <%s>", r.fromName, r.from)
	}

	params := &resend.SendEmailRequest{
		From:    from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTMLBody,
		Text:    msg.TextBody,
		ReplyTo: msg.ReplyTo,
	}

	if _, err := r.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}

func (r *ResendMailer) Provider() string {
	return "resend"
}

func (r *ResendMailer) Credentials() CredentialStatus {
	return r.creds
}
