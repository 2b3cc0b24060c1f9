package template

import (
	"fmt"

	"github.com/shopspring/decimal"

	"agreementflow/jurisdiction"
	"agreementflow/party"
)

// feeSection renders the placement-fee clause. The branch is three-way, not a
// nullable check: a pending fee (requires_input or nil amount) renders a
// non-committal notice, a zero amount renders the no-fee clause, and a
// positive amount renders the numeric commitment to two decimal places.
func feeSection(fee *FeeInput, payer, payee string) Section {
	if fee == nil || fee.RequiresInput || fee.Amount == nil {
		return Section{
			Heading: "Placement Fee",
			Body: fmt.Sprintf("The placement fee payable by %s to %s is pending final agreement "+
				"between the parties and will be confirmed in writing prior to the commencement of "+
				"services. No fee obligation arises under this Agreement until the fee has been "+
				"confirmed by both parties.", payer, payee),
		}
	}

	if fee.Amount.IsZero() {
		return Section{
			Heading: "Placement Fee",
			Body: fmt.Sprintf("The parties agree that no placement fee applies to this engagement. "+
				"%s shall have no fee obligation to %s in respect of any placement made under this "+
				"Agreement.", payer, payee),
		}
	}

	body := fmt.Sprintf("In consideration of the services provided, %s shall pay %s a placement fee "+
		"of $%s CAD per successful placement. The fee becomes due upon the placed candidate's "+
		"commencement of employment and is payable within thirty (30) days of invoice.",
		payer, payee, fee.Amount.StringFixed(2))
	if fee.FeeSplit != "" {
		body += fmt.Sprintf(" The fee shall be apportioned between the parties on a %s basis.", fee.FeeSplit)
	}
	return Section{Heading: "Placement Fee", Body: body}
}

// platformFeeSection is rendered unconditionally for the direct-hire variant.
// The professional bears no responsibility for this fee.
func platformFeeSection(fee *FeeInput, employer, professional string) Section {
	pct := DefaultPlatformFeePercent
	if fee != nil && fee.PlatformFeePercentage != nil {
		pct = *fee.PlatformFeePercentage
	}

	amountText := "calculated on the agreed placement fee"
	switch {
	case fee != nil && fee.PlatformFeeAmount != nil:
		amountText = fmt.Sprintf("$%s CAD", fee.PlatformFeeAmount.StringFixed(2))
	case fee != nil && fee.Amount != nil && !fee.RequiresInput && !fee.Amount.IsZero():
		computed := fee.Amount.Mul(pct).Div(decimal.NewFromInt(100))
		amountText = fmt.Sprintf("$%s CAD", computed.StringFixed(2))
	}

	return Section{
		Heading: "Platform Fee Disclosure",
		Body: fmt.Sprintf("%s acknowledges that a platform service fee of %s%% (%s) applies to this "+
			"placement and is payable by %s to the platform operator. For clarity, %s bears no "+
			"responsibility whatsoever for the platform fee, and no portion of it may be deducted "+
			"from the Professional's compensation.",
			employer, pct.String(), amountText, employer, professional),
	}
}

// guaranteeSection is always rendered with the numeric guarantee window.
func guaranteeSection(days int, provider, recipient string) Section {
	return Section{
		Heading: "Replacement Guarantee",
		Body: fmt.Sprintf("If a placed candidate's engagement terminates for any reason other than "+
			"redundancy or restructuring within %d days of the start date, %s shall, at no "+
			"additional cost to %s, use commercially reasonable efforts to present a suitable "+
			"replacement candidate or, failing that, refund the placement fee on a pro-rata basis.",
			days, provider, recipient),
	}
}

// ownershipSection covers candidate ownership for the clinic-facing variants.
func ownershipSection(months int, owner, counterparty string) Section {
	return Section{
		Heading: "Candidate Ownership",
		Body: fmt.Sprintf("Any candidate referred by %s remains the referral of %s for a period of "+
			"%d months from the date of first introduction. During this period %s shall not engage, "+
			"employ, or contract the candidate directly or through a third party other than under "+
			"the terms of this Agreement without the prior written consent of %s.",
			owner, owner, months, counterparty, owner),
	}
}

// nonCircumventionSection replaces the ownership clause for the
// agency-partnership variant.
func nonCircumventionSection(months int, partyA, partyB string) Section {
	return Section{
		Heading: "Non-Circumvention",
		Body: fmt.Sprintf("For a period of %d months following the introduction of any candidate or "+
			"client contact hereunder, neither %s nor %s shall circumvent the other by dealing "+
			"directly with the other party's introduced candidates, clients, or affiliated "+
			"organizations in order to avoid the fees contemplated by this Agreement.",
			months, partyA, partyB),
	}
}

func confidentialitySection(partyA, partyB string) Section {
	return Section{
		Heading: "Confidentiality",
		Body: fmt.Sprintf("Each of %s and %s shall hold in strict confidence all candidate records, "+
			"client lists, fee arrangements, and other non-public information disclosed in connection "+
			"with this Agreement, and shall use such information solely for the performance of this "+
			"Agreement. This obligation survives termination for a period of two (2) years.",
			partyA, partyB),
	}
}

func privacySection() Section {
	return Section{
		Heading: "Privacy and Compliance",
		Body: "The parties shall collect, use, and disclose personal information only in accordance " +
			"with the Personal Information Protection and Electronic Documents Act (PIPEDA) and any " +
			"applicable provincial health-information legislation. Candidate personal information may " +
			"be shared between the parties solely for the purpose of evaluating and completing a " +
			"placement, and each party shall maintain safeguards appropriate to the sensitivity of " +
			"the information.",
	}
}

func liabilitySection(partyA, partyB string) Section {
	return Section{
		Heading: "Limitation of Liability",
		Body: fmt.Sprintf("Neither %s nor %s shall be liable to the other for any indirect, "+
			"incidental, or consequential damages arising out of this Agreement. Each party's "+
			"aggregate liability shall not exceed the total fees paid or payable under this "+
			"Agreement in the twelve (12) months preceding the claim.", partyA, partyB),
	}
}

func terminationSection(noticeDays int, startDate string) Section {
	return Section{
		Heading: "Term and Termination",
		Body: fmt.Sprintf("This Agreement takes effect on %s and continues until terminated. Either "+
			"party may terminate this Agreement for convenience on %d days' written notice to the "+
			"other party. Termination does not affect fee obligations accrued, or guarantee and "+
			"ownership periods commenced, prior to the effective date of termination.",
			startDate, noticeDays),
	}
}

func disputeSection() Section {
	return Section{
		Heading: "Dispute Resolution",
		Body: "The parties shall first attempt in good faith to resolve any dispute arising out of " +
			"this Agreement through direct negotiation between senior representatives. Any dispute " +
			"not resolved within thirty (30) days shall be referred to mediation, and failing " +
			"resolution, to binding arbitration administered under the rules of the ADR Institute " +
			"of Canada.",
	}
}

// governingLawSection derives the jurisdiction from the anchoring party's
// province. Each variant anchors on its first party by convention.
func governingLawSection(anchor party.Party) Section {
	name := jurisdiction.Resolve(anchor.Province)
	return Section{
		Heading: "Governing Law",
		Body: fmt.Sprintf("This Agreement is governed by and construed in accordance with the laws "+
			"of the Province of %s and the federal laws of Canada applicable therein, and the "+
			"parties attorn to the exclusive jurisdiction of the courts of %s.", name, name),
	}
}

func entireAgreementSection() Section {
	return Section{
		Heading: "Entire Agreement",
		Body: "This Agreement constitutes the entire agreement between the parties with respect to " +
			"its subject matter and supersedes all prior negotiations, representations, and " +
			"agreements, whether written or oral. No amendment is effective unless in writing and " +
			"signed by both parties.",
	}
}

func acknowledgmentSection(partyA, partyB string) Section {
	return Section{
		Heading: "Acknowledgment",
		Body: fmt.Sprintf("By signing below, %s and %s each acknowledge that they have read and "+
			"understood this Agreement, have had the opportunity to obtain independent legal advice, "+
			"and agree to be bound by its terms. Electronic signatures are accepted as binding "+
			"pursuant to applicable electronic commerce legislation.", partyA, partyB),
	}
}

func partyLine(label string, p party.Party) string {
	line := fmt.Sprintf("%s: %s, of %s", label, p.Name, p.Address)
	if p.LicenseNumber != "" && p.LicenseNumber != "N/A" {
		line += fmt.Sprintf(" (Registration No. %s)", p.LicenseNumber)
	}
	if p.Email != "" && p.Email != "N/A" {
		line += fmt.Sprintf(", contact %s", p.Email)
	}
	return line
}
