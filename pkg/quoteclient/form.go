package quoteclient

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrSubmissionInFlight is returned when Submit is called while an earlier
// submission has not finished. The attempt is dropped, not queued.
var ErrSubmissionInFlight = errors.New("quote submission already in flight")

// Fields is the quote form state.
type Fields struct {
	FullName     string `json:"fullName" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required"`
	CoverageType string `json:"coverageType" validate:"required,oneof=liability physical cargo all"`
}

// Sender delivers one quote request. *Client is the HTTP implementation.
type Sender interface {
	Send(ctx context.Context, fields Fields) (*Result, error)
}

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is the transient message shown after a submission.
type Notification struct {
	Kind NotificationKind
	Text string
}

type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

type Outcome int

const (
	OutcomeSent Outcome = iota
	OutcomeFailed
	OutcomeInvalid
	OutcomeDropped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSent:
		return "sent"
	case OutcomeFailed:
		return "failed"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// Form owns the quote fields and guarantees at most one submission in
// flight at a time. It is safe for concurrent use.
type Form struct {
	mu         sync.Mutex
	fields     Fields
	submitting bool

	sender   Sender
	notifier Notifier
	lang     string
	validate *validator.Validate
}

// NewForm creates an empty form. A nil notifier discards notifications.
func NewForm(sender Sender, notifier Notifier, lang string) *Form {
	if notifier == nil {
		notifier = NotifierFunc(func(Notification) {})
	}
	return &Form{
		sender:   sender,
		notifier: notifier,
		lang:     NormalizeLang(lang),
		validate: validator.New(),
	}
}

// Set replaces every field value.
func (f *Form) Set(fields Fields) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = fields
}

// Update changes individual fields, e.g. as the user types.
func (f *Form) Update(fn func(*Fields)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.fields)
}

func (f *Form) Fields() Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Submit sends the current fields once. On success the fields are cleared
// and a success notification is emitted; edits made while the request was
// in flight are kept instead of cleared. On failure the fields are kept and
// a failure notification is emitted. Invalid or dropped attempts send
// nothing and notify nothing.
func (f *Form) Submit(ctx context.Context) (Outcome, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return OutcomeDropped, ErrSubmissionInFlight
	}
	submitted := f.fields
	fields := trimFields(submitted)
	if err := f.validate.Struct(fields); err != nil {
		f.mu.Unlock()
		return OutcomeInvalid, err
	}
	f.submitting = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	result, err := f.sender.Send(ctx, fields)
	if err == nil && result != nil && !result.Success {
		err = &HTTPError{StatusCode: result.StatusCode, Message: result.Error, ErrorID: result.ErrorID}
	}
	if err == nil && result == nil {
		err = errors.New("empty response")
	}
	if err != nil {
		f.notifier.Notify(Notification{Kind: NotificationError, Text: Translate(f.lang, KeyFailed)})
		return OutcomeFailed, err
	}

	f.mu.Lock()
	if f.fields == submitted {
		f.fields = Fields{}
	}
	f.mu.Unlock()
	f.notifier.Notify(Notification{Kind: NotificationSuccess, Text: Translate(f.lang, KeySent)})
	return OutcomeSent, nil
}

func trimFields(in Fields) Fields {
	return Fields{
		FullName:     strings.TrimSpace(in.FullName),
		Email:        strings.TrimSpace(in.Email),
		Phone:        strings.TrimSpace(in.Phone),
		CoverageType: strings.TrimSpace(in.CoverageType),
	}
}
