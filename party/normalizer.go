package party

import "fmt"

// Placeholder values substituted for absent party data. Documents must always
// render, so missing fields are masked with readable defaults instead of
// failing; the warning list lets the calling layer decide whether to block
// finalization on incomplete data.
const (
	defaultClientName       = "The Clinic"
	defaultAgencyName       = "The Agency"
	defaultProfessionalName = "Healthcare Professional"
	placeholderValue        = "N/A"
)

func defaultName(role Role) string {
	switch role {
	case RoleClient:
		return defaultClientName
	case RoleAgency:
		return defaultAgencyName
	case RoleProfessional:
		return defaultProfessionalName
	default:
		return placeholderValue
	}
}

// Normalize resolves a party from one or more candidate input shapes. The
// same conceptual party can arrive under different keys depending on which
// upstream flow produced the payload, so callers pass candidates in fallback
// order: the first candidate with a non-empty name wins; if none has a name,
// the first non-nil candidate is used; if all are nil every field defaults.
//
// Normalize is total: it never fails, it only substitutes placeholders. Each
// substituted field is reported in the returned warning list.
func Normalize(role Role, candidates ...*Input) (Party, []string) {
	var src *Input
	for _, c := range candidates {
		if c != nil && c.Name != "" {
			src = c
			break
		}
	}
	if src == nil {
		for _, c := range candidates {
			if c != nil {
				src = c
				break
			}
		}
	}
	if src == nil {
		src = &Input{}
	}

	var warnings []string
	warn := func(field string) {
		warnings = append(warnings, fmt.Sprintf("%s: missing %s, placeholder substituted", role, field))
	}

	p := Party{Role: role}

	p.Name = src.Name
	if p.Name == "" {
		p.Name = defaultName(role)
		warn("name")
	}
	p.Address = src.Address
	if p.Address == "" {
		p.Address = placeholderValue
		warn("address")
	}
	p.Email = src.Email
	if p.Email == "" {
		p.Email = placeholderValue
		warn("email")
	}
	p.LicenseNumber = src.LicenseNumber
	if p.LicenseNumber == "" {
		p.LicenseNumber = placeholderValue
	}
	// Province stays empty when absent; the jurisdiction resolver applies its
	// own Ontario fallback and the gap is still worth surfacing upstream.
	p.Province = src.Province
	if p.Province == "" {
		warn("province")
	}

	return p, warnings
}
