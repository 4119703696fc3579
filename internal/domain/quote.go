package domain

import "context"

// CoverageType is the kind of trucking coverage a prospect asks about.
type CoverageType string

const (
	CoverageLiability CoverageType = "liability"
	CoveragePhysical  CoverageType = "physical"
	CoverageCargo     CoverageType = "cargo"
	CoverageAll       CoverageType = "all"
)

// CoverageTypes lists the offered coverages in display order.
var CoverageTypes = []CoverageType{CoverageLiability, CoveragePhysical, CoverageCargo, CoverageAll}

var coverageLabels = map[CoverageType]string{
	CoverageLiability: "Auto Liability",
	CoveragePhysical:  "Physical Damage",
	CoverageCargo:     "Cargo",
	CoverageAll:       "All of the Above",
}

// Label returns the display name, or "" for an unknown coverage.
func (c CoverageType) Label() string {
	return coverageLabels[c]
}

func (c CoverageType) Valid() bool {
	_, ok := coverageLabels[c]
	return ok
}

// QuoteRequest is a quote form submission. It lives for one HTTP exchange.
type QuoteRequest struct {
	FullName     string       `json:"fullName" validate:"required,max=120,valid_name"`
	Email        string       `json:"email" validate:"required,max=254,email"`
	Phone        string       `json:"phone" validate:"required,max=40,no_emoji"`
	CoverageType CoverageType `json:"coverageType" validate:"required,oneof=liability physical cargo all"`
}

// QuoteUsecase defines the quote notification operations
type QuoteUsecase interface {
	// SubmitQuote validates the request and emails it to the brokerage
	SubmitQuote(ctx context.Context, req *QuoteRequest) error
}

// ValidationError carries one message per rejected field.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid quote request"
}

// Credentials reports transport credential presence, never values.
type Credentials struct {
	User string `json:"user"`
	Pass string `json:"pass"`
}

// DeliveryError is a failed hand-off to the mail transport. Its message is
// the transport's own error text.
type DeliveryError struct {
	Provider    string
	Credentials Credentials
	Err         error
}

func (e *DeliveryError) Error() string {
	return e.Err.Error()
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
