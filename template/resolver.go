package template

import "fmt"

// Type discriminates the three recognized agreement variants.
type Type string

const (
	TypeAgencyClinic      Type = "agency_clinic"
	TypeAgencyPartnership Type = "agency_agency"
	TypeDirectHire        Type = "professional_clinic"
)

// Composer produces the ordered document model for one agreement variant.
// Composition is pure: identical data always yields an identical Document.
type Composer interface {
	Type() Type
	Compose(data *Data) Document
}

// UnknownTypeError is returned for any unrecognized agreement type. Rendering
// the wrong legal template is unacceptable, so this is the one hard error in
// the subsystem: the offending value is carried verbatim and must be surfaced
// to the operator, never silently defaulted.
type UnknownTypeError struct {
	Value string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("template: unknown agreement type %q", e.Value)
}

// Resolve maps an agreement_type discriminator to its composer variant.
func Resolve(agreementType string) (Composer, error) {
	switch Type(agreementType) {
	case TypeAgencyClinic:
		return &AgencyClinic{}, nil
	case TypeAgencyPartnership:
		return &AgencyPartnership{}, nil
	case TypeDirectHire:
		return &DirectHire{}, nil
	default:
		return nil, &UnknownTypeError{Value: agreementType}
	}
}

// Compose resolves the variant and composes the document in one call.
func Compose(agreementType string, data *Data) (Document, error) {
	composer, err := Resolve(agreementType)
	if err != nil {
		return Document{}, err
	}
	return composer.Compose(data), nil
}
