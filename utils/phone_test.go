package utils

import "testing"

func TestFormatPhone(t *testing.T) {
	cases := map[string]string{
		"11":           "(11",
		"11987":        "(11) 987",
		"11987654321":  "(11) 98765-4321",
		"1134567890":   "(11) 34567-890",
		"119876543210": "(11) 98765-4321",
	}
	for in, want := range cases {
		if got := FormatPhone(in); got != want {
			t.Fatalf("FormatPhone(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatThenStripRoundTrip(t *testing.T) {
	inputs := []string{"1134567890", "11987654321", "2140028922", "85999990000", "0000000000"}
	for _, in := range inputs {
		if !ValidPhone(in) {
			t.Fatalf("%q should be valid", in)
		}
		if got := DigitsOnly(FormatPhone(in)); got != in {
			t.Fatalf("round trip of %q gave %q", in, got)
		}
	}
}

func TestValidPhone(t *testing.T) {
	for _, in := range []string{"", "119876543", "119876543210", "(11) 98765-4321"} {
		if ValidPhone(in) {
			t.Fatalf("%q should be invalid", in)
		}
	}
	if got := DigitsOnly(" (11) 98765-4321 "); got != "11987654321" {
		t.Fatalf("unexpected digits %q", got)
	}
}
