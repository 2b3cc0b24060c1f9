package party

// Role tags a normalized party with its function in the agreement.
type Role string

const (
	RoleClient       Role = "client"
	RoleAgency       Role = "agency"
	RoleProfessional Role = "professional"
)

// Party is the canonical representation of an agreement participant. Every
// field is guaranteed non-empty after normalization so composed documents
// never contain blank template slots.
type Party struct {
	Role          Role
	Name          string
	Address       string
	Email         string
	Province      string
	LicenseNumber string
}

// Input is the loosely-structured party shape accepted from callers. Any
// field may be absent; normalization substitutes placeholders.
type Input struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	Email         string `json:"email"`
	Province      string `json:"province"`
	LicenseNumber string `json:"license_number"`
}
