package directory

import (
	"time"

	"agreementflow/party"
)

// Kind distinguishes the organization records agreements draw parties from.
type Kind string

const (
	KindClinic       Kind = "clinic"
	KindAgency       Kind = "agency"
	KindProfessional Kind = "professional"
)

// Profile is one stored organization or professional in the directory.
// Profiles are the upstream source for agreement party inputs; fields may be
// blank for incomplete records, normalization fills the gaps downstream.
type Profile struct {
	ID            string
	Kind          Kind
	Name          string
	Address       string
	Email         string
	Province      string
	LicenseNumber string
	CreatedAt     time.Time
}

// PartyInput converts the profile into the candidate shape the template
// composers consume.
func (p Profile) PartyInput() *party.Input {
	return &party.Input{
		Name:          p.Name,
		Address:       p.Address,
		Email:         p.Email,
		Province:      p.Province,
		LicenseNumber: p.LicenseNumber,
	}
}
