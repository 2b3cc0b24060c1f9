package template

import (
	"fmt"
	"time"

	"agreementflow/party"
)

// DirectHire composes the agreement between an employer clinic and an
// independent healthcare professional hired without an intermediary agency.
// The employer may arrive under "clinic" or "client", the professional under
// "professional" or "agency"; governing law anchors on the employer's
// province. The platform-fee disclosure is always rendered.
type DirectHire struct {
	Now func() time.Time
}

func (c *DirectHire) Type() Type { return TypeDirectHire }

func (c *DirectHire) clock() func() time.Time {
	if c.Now != nil {
		return c.Now
	}
	return time.Now
}

func (c *DirectHire) Compose(data *Data) Document {
	if data == nil {
		data = &Data{}
	}

	employer, employerWarnings := party.Normalize(party.RoleClient, data.Clinic, data.Client)
	professional, professionalWarnings := party.Normalize(party.RoleProfessional, data.Professional, data.Agency)

	const (
		employerLabel     = "Employer"
		professionalLabel = "Professional"
	)

	recitals := Section{
		Heading: "Recitals",
		Body: fmt.Sprintf("This Direct Hire Agreement (Agreement No. %s) is entered into between "+
			"the following parties:\n%s\n%s\nThe Employer wishes to engage the Professional "+
			"directly for the provision of healthcare services at the Employer's facilities, and "+
			"the Professional agrees to the engagement on the terms set out below.",
			orUnassigned(data.AgreementNumber),
			partyLine(employerLabel, employer),
			partyLine(professionalLabel, professional)),
	}

	engagement := Section{
		Heading: "Engagement",
		Body: "The Professional shall provide the agreed healthcare services at the Employer's " +
			"facilities, maintain good standing with the applicable regulatory college, and carry " +
			"the professional liability coverage required for the role. The Employer shall provide " +
			"a safe working environment, the facilities and support reasonably required for the " +
			"services, and compensation as separately agreed between the parties.",
	}

	sections := []Section{
		recitals,
		engagement,
		feeSection(data.Fees, "the Employer", "the platform operator"),
		platformFeeSection(data.Fees, "the Employer", "the Professional"),
		guaranteeSection(data.guaranteeDays(), "the platform operator", "the Employer"),
		ownershipSection(data.ownershipMonths(), "the platform operator", "the Employer"),
		confidentialitySection("the Employer", "the Professional"),
		privacySection(),
		liabilitySection("the Employer", "the Professional"),
		terminationSection(data.terminationNoticeDays(), data.startDate(c.clock())),
		disputeSection(),
		governingLawSection(employer),
		entireAgreementSection(),
		acknowledgmentSection("the Employer", "the Professional"),
	}

	return Document{
		Title:           "Direct Hire Agreement",
		AgreementNumber: data.AgreementNumber,
		Sections:        sections,
		SignatureBlocks: []SignatureBlock{
			{Label: professionalLabel, SlotID: "agency_signature"},
			{Label: employerLabel, SlotID: "client_signature"},
		},
		Warnings: append(employerWarnings, professionalWarnings...),
	}
}
