package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/gomail.v2"
)

const smtpDialTimeout = 10 * time.Second

// ErrDeliveryUnknown marks a send that was interrupted after the message
// was handed to the server. The server may still deliver it.
var ErrDeliveryUnknown = errors.New("delivery state unknown")

// SMTPConfig holds the outbound SMTP account.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// SMTPMailer sends through the account described by a gomail dialer created
// at startup. Port 465 uses implicit TLS, other ports upgrade with STARTTLS
// when offered.
type SMTPMailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
	creds    CredentialStatus
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:     cfg.From,
		fromName: cfg.FromName,
		creds: CredentialStatus{
			User: presence(cfg.Username),
			Pass: presence(cfg.Password),
		},
	}
}

// Send delivers msg over one connection bounded by ctx. Every read and write
// on the connection fails once ctx ends, so nothing is sent after Send
// returns. An interruption after the message body was handed over is
// reported as ErrDeliveryUnknown.
func (s *SMTPMailer) Send(ctx context.Context, msg *Message) error {
	m := s.buildMessage(msg)

	session, err := s.open(ctx)
	if err != nil {
		return s.wrapErr(ctx, err, false)
	}
	defer session.close()

	if err := gomail.Send(session, m); err != nil {
		return s.wrapErr(ctx, err, session.handedOver)
	}
	// The message is accepted; a failed QUIT does not change that
	_ = session.client.Quit()
	return nil
}

func (s *SMTPMailer) Provider() string {
	return "smtp"
}

func (s *SMTPMailer) Credentials() CredentialStatus {
	return s.creds
}

func (s *SMTPMailer) buildMessage(msg *Message) *gomail.Message {
	m := gomail.NewMessage()
	if s.fromName != "" {
		m.SetAddressHeader("From", s.from, s.fromName)
	} else {
		m.SetHeader("From", s.from)
	}
	m.SetHeader("To", msg.To...)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", msg.Subject)
	if msg.TextBody != "" {
		m.SetBody("text/plain", msg.TextBody)
		m.AddAlternative("text/html", msg.HTMLBody)
	} else {
		m.SetBody("text/html", msg.HTMLBody)
	}
	return m
}

// open dials and greets the server, upgrading to TLS and authenticating the
// way gomail's own dialer does.
func (s *SMTPMailer) open(ctx context.Context) (*smtpSession, error) {
	d := s.dialer
	addr := net.JoinHostPort(d.Host, strconv.Itoa(d.Port))

	dialer := &net.Dialer{Timeout: smtpDialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	// Cancellation unblocks any pending read or write immediately
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	session := &smtpSession{conn: conn, stop: stop}

	tlsConfig := d.TLSConfig
	if tlsConfig == nil {
		tlsConfig = &tls.Config{ServerName: d.Host, MinVersion: tls.VersionTLS12}
	}

	var netConn net.Conn = conn
	if d.SSL {
		netConn = tls.Client(conn, tlsConfig)
	}

	client, err := smtp.NewClient(netConn, d.Host)
	if err != nil {
		session.close()
		return nil, err
	}
	session.client = client

	if d.LocalName != "" {
		if err := client.Hello(d.LocalName); err != nil {
			session.close()
			return nil, err
		}
	}

	if !d.SSL {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(tlsConfig); err != nil {
				session.close()
				return nil, err
			}
		}
	}

	if auth := s.auth(client); auth != nil {
		if err := client.Auth(auth); err != nil {
			session.close()
			return nil, err
		}
	}
	return session, nil
}

func (s *SMTPMailer) auth(client *smtp.Client) smtp.Auth {
	d := s.dialer
	if d.Auth != nil {
		return d.Auth
	}
	if d.Username == "" {
		return nil
	}
	ok, mechanisms := client.Extension("AUTH")
	if !ok {
		return nil
	}
	if strings.Contains(mechanisms, "CRAM-MD5") {
		return smtp.CRAMMD5Auth(d.Username, d.Password)
	}
	return smtp.PlainAuth("", d.Username, d.Password, d.Host)
}

func (s *SMTPMailer) wrapErr(ctx context.Context, err error, handedOver bool) error {
	ctxErr := contextErr(ctx)
	switch {
	case ctxErr == nil:
		return err
	case handedOver:
		return fmt.Errorf("smtp send to %s:%d interrupted after the message was handed over: %w: %w",
			s.dialer.Host, s.dialer.Port, ErrDeliveryUnknown, ctxErr)
	default:
		return fmt.Errorf("smtp send to %s:%d aborted: %w", s.dialer.Host, s.dialer.Port, ctxErr)
	}
}

// contextErr also reports an expired deadline the connection noticed before
// the context's own timer fired.
func contextErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok && !time.Now().Before(deadline) {
		return context.DeadlineExceeded
	}
	return nil
}

// smtpSession is a gomail.Sender over one deadline-bound connection.
type smtpSession struct {
	conn   net.Conn
	client *smtp.Client
	stop   func() bool
	// handedOver is set once the end-of-data marker may have reached the server
	handedOver bool
}

func (s *smtpSession) Send(from string, to []string, msg io.WriterTo) error {
	if err := s.client.Mail(from); err != nil {
		return err
	}
	for _, addr := range to {
		if err := s.client.Rcpt(addr); err != nil {
			return err
		}
	}

	w, err := s.client.Data()
	if err != nil {
		return err
	}
	// Closing w would terminate a partial body; the connection is dropped instead
	if _, err := msg.WriteTo(w); err != nil {
		return err
	}
	s.handedOver = true
	return w.Close()
}

func (s *smtpSession) close() {
	s.stop()
	if s.client != nil {
		_ = s.client.Close()
		return
	}
	_ = s.conn.Close()
}
