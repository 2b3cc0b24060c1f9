package template

import (
	"time"

	"github.com/shopspring/decimal"

	"agreementflow/party"
)

// Defaults applied when the corresponding field is absent from the payload.
const (
	DefaultGuaranteeDays         = 90
	DefaultOwnershipMonths       = 12
	DefaultTerminationNoticeDays = 30
)

// DefaultPlatformFeePercent is the direct-hire platform fee applied when the
// payload does not carry an explicit percentage.
var DefaultPlatformFeePercent = decimal.NewFromInt(10)

// FeeInput carries the fee terms as supplied by the caller. Amount is nil
// when the fee has not been agreed yet.
type FeeInput struct {
	Amount                *decimal.Decimal `json:"amount"`
	RequiresInput         bool             `json:"requires_input"`
	FeeSplit              string           `json:"fee_split"`
	PlatformFeePercentage *decimal.Decimal `json:"platform_fee_percentage"`
	PlatformFeeAmount     *decimal.Decimal `json:"platform_fee_amount"`
}

// GuaranteeInput carries the replacement-guarantee window in days.
type GuaranteeInput struct {
	Days *int `json:"days"`
}

// OwnershipInput carries the candidate-ownership window in months.
type OwnershipInput struct {
	Months *int `json:"months"`
}

// Data is the loosely-structured agreement payload. Which party keys are
// populated depends on the upstream flow that produced it: a professional may
// arrive under "professional" or "agency", a clinic under "clinic" or
// "client". Composers resolve each role through party.Normalize with the
// variant's documented fallback order. Every field is optional.
type Data struct {
	Client       *party.Input `json:"client"`
	Clinic       *party.Input `json:"clinic"`
	Agency       *party.Input `json:"agency"`
	Professional *party.Input `json:"professional"`
	AgencyA      *party.Input `json:"agency_a"`
	AgencyB      *party.Input `json:"agency_b"`

	Fees      *FeeInput       `json:"fees"`
	Guarantee *GuaranteeInput `json:"guarantee"`
	Ownership *OwnershipInput `json:"ownership"`

	StartDate             string `json:"start_date"`
	TerminationNoticeDays *int   `json:"termination_notice_days"`
	AgreementNumber       string `json:"agreement_number"`
}

// Section is one heading+body unit of a composed document.
type Section struct {
	Heading string
	Body    string
}

// SignatureBlock reserves a signing slot for one party label. Signer
// metadata is injected by the external snapshot service at render time.
type SignatureBlock struct {
	Label  string
	SlotID string
}

// Document is the fully composed, ordered agreement model handed to the
// snapshot service. Warnings list every payload field that was defaulted
// during normalization; they never block composition.
type Document struct {
	Title           string
	AgreementNumber string
	Sections        []Section
	SignatureBlocks []SignatureBlock
	Warnings        []string
}

func (d *Data) guaranteeDays() int {
	if d.Guarantee != nil && d.Guarantee.Days != nil {
		return *d.Guarantee.Days
	}
	return DefaultGuaranteeDays
}

func (d *Data) ownershipMonths() int {
	if d.Ownership != nil && d.Ownership.Months != nil {
		return *d.Ownership.Months
	}
	return DefaultOwnershipMonths
}

func (d *Data) terminationNoticeDays() int {
	if d.TerminationNoticeDays != nil {
		return *d.TerminationNoticeDays
	}
	return DefaultTerminationNoticeDays
}

// startDate returns the caller-supplied start date verbatim, or the
// composition date formatted for document text when absent.
func (d *Data) startDate(now func() time.Time) string {
	if d.StartDate != "" {
		return d.StartDate
	}
	return now().Format("January 2, 2006")
}
