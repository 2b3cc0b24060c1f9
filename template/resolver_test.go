package template

import (
	"errors"
	"testing"
)

func TestResolveRecognizedTypes(t *testing.T) {
	cases := []struct {
		value string
		want  Type
	}{
		{"agency_clinic", TypeAgencyClinic},
		{"agency_agency", TypeAgencyPartnership},
		{"professional_clinic", TypeDirectHire},
	}
	for _, tc := range cases {
		composer, err := Resolve(tc.value)
		if err != nil {
			t.Fatalf("Resolve(%q) returned error: %v", tc.value, err)
		}
		if composer.Type() != tc.want {
			t.Errorf("Resolve(%q).Type() = %q, want %q", tc.value, composer.Type(), tc.want)
		}
	}
}

func TestResolveUnknownTypeIsHardError(t *testing.T) {
	for _, value := range []string{"bogus_type", "", "AGENCY_CLINIC", "direct_hire"} {
		composer, err := Resolve(value)
		if composer != nil {
			t.Fatalf("Resolve(%q) must never return a composer", value)
		}
		var unknown *UnknownTypeError
		if !errors.As(err, &unknown) {
			t.Fatalf("Resolve(%q) expected *UnknownTypeError, got %T", value, err)
		}
		if unknown.Value != value {
			t.Errorf("error must carry the offending value verbatim: got %q, want %q", unknown.Value, value)
		}
	}
}

func TestComposeRejectsUnknownType(t *testing.T) {
	_, err := Compose("bogus_type", &Data{})
	var unknown *UnknownTypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected *UnknownTypeError, got %v", err)
	}
}
