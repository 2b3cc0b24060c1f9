package template

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"agreementflow/party"
)

func fixedClock() time.Time {
	return time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func sectionByHeading(t *testing.T, doc Document, heading string) Section {
	t.Helper()
	for _, s := range doc.Sections {
		if s.Heading == heading {
			return s
		}
	}
	t.Fatalf("document has no %q section; headings: %v", heading, headings(doc))
	return Section{}
}

func headings(doc Document) []string {
	out := make([]string, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		out = append(out, s.Heading)
	}
	return out
}

func TestAgencyClinicScenario(t *testing.T) {
	composer := &AgencyClinic{Now: fixedClock}
	doc := composer.Compose(&Data{
		Client: &party.Input{
			Name:     "Pacific Family Clinic",
			Address:  "400 Granville St, Vancouver",
			Email:    "admin@pacificfamily.ca",
			Province: "BC",
		},
		Agency: &party.Input{
			Name:    "Coastal Health Staffing",
			Address: "88 Homer St, Vancouver",
		},
		Fees:            &FeeInput{Amount: decimalPtr("2500")},
		Guarantee:       &GuaranteeInput{Days: intPtr(90)},
		Ownership:       &OwnershipInput{Months: intPtr(12)},
		AgreementNumber: "AGR-20260315-000042",
	})

	law := sectionByHeading(t, doc, "Governing Law")
	if !strings.Contains(law.Body, "British Columbia") {
		t.Errorf("expected governing law from client province, got %q", law.Body)
	}
	guarantee := sectionByHeading(t, doc, "Replacement Guarantee")
	if !strings.Contains(guarantee.Body, "90 days") {
		t.Errorf("expected 90 day guarantee, got %q", guarantee.Body)
	}
	ownership := sectionByHeading(t, doc, "Candidate Ownership")
	if !strings.Contains(ownership.Body, "12 months") {
		t.Errorf("expected 12 month ownership, got %q", ownership.Body)
	}
	fee := sectionByHeading(t, doc, "Placement Fee")
	if !strings.Contains(fee.Body, "$2500.00 CAD") {
		t.Errorf("expected numeric fee clause, got %q", fee.Body)
	}

	wantBlocks := []SignatureBlock{
		{Label: "Service Provider", SlotID: "agency_signature"},
		{Label: "Client", SlotID: "client_signature"},
	}
	if !reflect.DeepEqual(doc.SignatureBlocks, wantBlocks) {
		t.Errorf("signature blocks = %+v, want %+v", doc.SignatureBlocks, wantBlocks)
	}
}

func TestComposeIsDeterministic(t *testing.T) {
	data := &Data{
		Clinic:       &party.Input{Name: "Lakeside Clinic", Province: "MB"},
		Professional: &party.Input{Name: "Dr. Jonas Berg"},
		Fees:         &FeeInput{Amount: decimalPtr("1800.75")},
	}
	composer := &DirectHire{Now: fixedClock}

	first := composer.Compose(data)
	second := composer.Compose(data)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical data must compose to identical documents")
	}
}

func TestComposeNeverLeavesEmptySlots(t *testing.T) {
	for _, composer := range []Composer{
		&AgencyClinic{Now: fixedClock},
		&AgencyPartnership{Now: fixedClock},
		&DirectHire{Now: fixedClock},
	} {
		doc := composer.Compose(nil)
		if len(doc.Sections) == 0 {
			t.Fatalf("%s: empty payload must still compose", composer.Type())
		}
		for _, s := range doc.Sections {
			if s.Heading == "" || s.Body == "" {
				t.Errorf("%s: empty template slot in section %+v", composer.Type(), s)
			}
		}
		if len(doc.Warnings) == 0 {
			t.Errorf("%s: fully defaulted payload should carry data-quality warnings", composer.Type())
		}
		if len(doc.SignatureBlocks) != 2 {
			t.Errorf("%s: expected two signature blocks, got %d", composer.Type(), len(doc.SignatureBlocks))
		}
	}
}

func TestAgencyPartnershipAnchorsOnAgencyA(t *testing.T) {
	composer := &AgencyPartnership{Now: fixedClock}
	doc := composer.Compose(&Data{
		AgencyA: &party.Input{Name: "Prairie Recruiters", Province: "SK"},
		AgencyB: &party.Input{Name: "Atlantic Staffing", Province: "NS"},
	})

	law := sectionByHeading(t, doc, "Governing Law")
	if !strings.Contains(law.Body, "Saskatchewan") {
		t.Errorf("partnership governing law must anchor on agency A, got %q", law.Body)
	}
	if _, ok := find(doc, "Non-Circumvention"); !ok {
		t.Errorf("partnership variant must carry non-circumvention, headings: %v", headings(doc))
	}
	if _, ok := find(doc, "Candidate Ownership"); ok {
		t.Errorf("partnership variant must not carry candidate ownership")
	}
}

func TestDirectHireAlwaysDisclosesPlatformFee(t *testing.T) {
	composer := &DirectHire{Now: fixedClock}

	// Even a payload with no fee data at all renders the disclosure.
	doc := composer.Compose(&Data{Clinic: &party.Input{Name: "Harbour Clinic", Province: "NL"}})
	disclosure := sectionByHeading(t, doc, "Platform Fee Disclosure")
	if !strings.Contains(disclosure.Body, "10%") {
		t.Errorf("expected default platform fee percentage, got %q", disclosure.Body)
	}
	law := sectionByHeading(t, doc, "Governing Law")
	if !strings.Contains(law.Body, "Newfoundland and Labrador") {
		t.Errorf("direct hire governing law must anchor on employer, got %q", law.Body)
	}
}

func TestProfessionalFallsBackToAgencyKey(t *testing.T) {
	composer := &DirectHire{Now: fixedClock}
	doc := composer.Compose(&Data{
		Clinic: &party.Input{Name: "Harbour Clinic"},
		Agency: &party.Input{Name: "Dr. Mireille Caron"},
	})

	recitals := sectionByHeading(t, doc, "Recitals")
	if !strings.Contains(recitals.Body, "Dr. Mireille Caron") {
		t.Errorf("professional supplied under agency key must be picked up, got %q", recitals.Body)
	}
}

func TestStartDateDefaultsToCompositionDate(t *testing.T) {
	composer := &AgencyClinic{Now: fixedClock}
	doc := composer.Compose(&Data{Client: &party.Input{Name: "Clinic"}})

	term := sectionByHeading(t, doc, "Term and Termination")
	if !strings.Contains(term.Body, "March 15, 2026") {
		t.Errorf("expected composition date as start date, got %q", term.Body)
	}
	if !strings.Contains(term.Body, "30 days' written notice") {
		t.Errorf("expected default termination notice, got %q", term.Body)
	}
}

func find(doc Document, heading string) (Section, bool) {
	for _, s := range doc.Sections {
		if s.Heading == heading {
			return s, true
		}
	}
	return Section{}, false
}
