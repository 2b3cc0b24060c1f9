package jurisdiction

import "testing"

func TestResolveKnownCodes(t *testing.T) {
	cases := map[string]string{
		"ON": "Ontario",
		"QC": "Quebec",
		"BC": "British Columbia",
		"AB": "Alberta",
		"NL": "Newfoundland and Labrador",
		"PE": "Prince Edward Island",
		"NU": "Nunavut",
	}
	for code, want := range cases {
		if got := Resolve(code); got != want {
			t.Errorf("Resolve(%q) = %q, want %q", code, got, want)
		}
	}
}

func TestResolveNormalizesInput(t *testing.T) {
	if got := Resolve(" bc "); got != "British Columbia" {
		t.Errorf("expected lowercase padded code to resolve, got %q", got)
	}
}

func TestResolveFallsBackToOntario(t *testing.T) {
	for _, code := range []string{"", "XX", "ONT", "zz", "99"} {
		if got := Resolve(code); got != DefaultJurisdiction {
			t.Errorf("Resolve(%q) = %q, want default %q", code, got, DefaultJurisdiction)
		}
	}
}
