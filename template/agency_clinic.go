package template

import (
	"fmt"
	"time"

	"agreementflow/party"
)

// AgencyClinic composes the staffing agreement between a client clinic and a
// recruitment agency. The clinic may arrive under the "clinic" or "client"
// payload key, the agency under "agency" or "agency_a"; governing law anchors
// on the client's province.
type AgencyClinic struct {
	// Now supplies the composition date for the start-date default. Nil means
	// time.Now; tests pin it for reproducible output.
	Now func() time.Time
}

func (c *AgencyClinic) Type() Type { return TypeAgencyClinic }

func (c *AgencyClinic) clock() func() time.Time {
	if c.Now != nil {
		return c.Now
	}
	return time.Now
}

func (c *AgencyClinic) Compose(data *Data) Document {
	if data == nil {
		data = &Data{}
	}

	client, clientWarnings := party.Normalize(party.RoleClient, data.Clinic, data.Client)
	agency, agencyWarnings := party.Normalize(party.RoleAgency, data.Agency, data.AgencyA)

	const (
		clientLabel = "Client"
		agencyLabel = "Service Provider"
	)

	recitals := Section{
		Heading: "Recitals",
		Body: fmt.Sprintf("This Recruitment Services Agreement (Agreement No. %s) is entered into "+
			"between the following parties:\n%s\n%s\nThe Client wishes to engage the Service "+
			"Provider to identify, screen, and refer qualified healthcare professionals for "+
			"placement at the Client's facilities, and the Service Provider agrees to provide such "+
			"services on the terms set out below.",
			orUnassigned(data.AgreementNumber),
			partyLine(clientLabel, client),
			partyLine(agencyLabel, agency)),
	}

	services := Section{
		Heading: "Services",
		Body: "The Service Provider shall source, screen, and present candidates meeting the " +
			"Client's stated requirements, verify professional credentials and licensure with the " +
			"applicable regulatory colleges, and coordinate interviews and placement logistics. " +
			"The Client shall provide accurate role descriptions, respond to candidate referrals " +
			"within a reasonable time, and notify the Service Provider promptly upon hiring any " +
			"referred candidate.",
	}

	sections := []Section{
		recitals,
		services,
		feeSection(data.Fees, "the Client", "the Service Provider"),
		guaranteeSection(data.guaranteeDays(), "the Service Provider", "the Client"),
		ownershipSection(data.ownershipMonths(), "the Service Provider", "the Client"),
		confidentialitySection("the Client", "the Service Provider"),
		privacySection(),
		liabilitySection("the Client", "the Service Provider"),
		terminationSection(data.terminationNoticeDays(), data.startDate(c.clock())),
		disputeSection(),
		governingLawSection(client),
		entireAgreementSection(),
		acknowledgmentSection("the Client", "the Service Provider"),
	}

	return Document{
		Title:           "Recruitment Services Agreement",
		AgreementNumber: data.AgreementNumber,
		Sections:        sections,
		SignatureBlocks: []SignatureBlock{
			{Label: agencyLabel, SlotID: "agency_signature"},
			{Label: clientLabel, SlotID: "client_signature"},
		},
		Warnings: append(clientWarnings, agencyWarnings...),
	}
}

func orUnassigned(number string) string {
	if number == "" {
		return "UNASSIGNED"
	}
	return number
}
