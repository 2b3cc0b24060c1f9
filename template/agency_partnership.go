package template

import (
	"fmt"
	"time"

	"agreementflow/party"
)

// AgencyPartnership composes the split-fee referral agreement between two
// recruitment agencies. The referring agency may arrive under "agency_a" or
// "agency", the receiving agency under "agency_b" or "client"; governing law
// anchors on agency A's province.
type AgencyPartnership struct {
	Now func() time.Time
}

func (c *AgencyPartnership) Type() Type { return TypeAgencyPartnership }

func (c *AgencyPartnership) clock() func() time.Time {
	if c.Now != nil {
		return c.Now
	}
	return time.Now
}

func (c *AgencyPartnership) Compose(data *Data) Document {
	if data == nil {
		data = &Data{}
	}

	agencyA, aWarnings := party.Normalize(party.RoleAgency, data.AgencyA, data.Agency)
	agencyB, bWarnings := party.Normalize(party.RoleAgency, data.AgencyB, data.Client)

	const (
		providerLabel = "Provider"
		clientLabel   = "Client"
	)

	recitals := Section{
		Heading: "Recitals",
		Body: fmt.Sprintf("This Agency Partnership Agreement (Agreement No. %s) is entered into "+
			"between the following parties:\n%s\n%s\nThe Provider maintains a roster of qualified "+
			"healthcare professionals and the Client maintains relationships with healthcare "+
			"facilities seeking staff. The parties wish to cooperate on candidate referrals on a "+
			"shared-fee basis as set out below.",
			orUnassigned(data.AgreementNumber),
			partyLine(providerLabel, agencyA),
			partyLine(clientLabel, agencyB)),
	}

	services := Section{
		Heading: "Referral Cooperation",
		Body: "The Provider shall refer screened candidates to the Client for presentation to the " +
			"Client's facility contacts. The Client shall present referred candidates only to " +
			"opportunities disclosed to the Provider, report the outcome of each presentation, and " +
			"promptly disclose any resulting placement. Neither party acquires authority to bind " +
			"the other, and nothing in this Agreement creates a partnership at law, employment, or " +
			"agency relationship between the parties.",
	}

	sections := []Section{
		recitals,
		services,
		feeSection(data.Fees, "the Client", "the Provider"),
		guaranteeSection(data.guaranteeDays(), "the Provider", "the Client"),
		nonCircumventionSection(data.ownershipMonths(), "the Provider", "the Client"),
		confidentialitySection("the Provider", "the Client"),
		privacySection(),
		liabilitySection("the Provider", "the Client"),
		terminationSection(data.terminationNoticeDays(), data.startDate(c.clock())),
		disputeSection(),
		governingLawSection(agencyA),
		entireAgreementSection(),
		acknowledgmentSection("the Provider", "the Client"),
	}

	return Document{
		Title:           "Agency Partnership Agreement",
		AgreementNumber: data.AgreementNumber,
		Sections:        sections,
		SignatureBlocks: []SignatureBlock{
			{Label: providerLabel, SlotID: "agency_signature"},
			{Label: clientLabel, SlotID: "client_signature"},
		},
		Warnings: append(aWarnings, bWarnings...),
	}
}
