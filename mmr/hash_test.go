package mmr

import "testing"

func TestParseHashRoundTrip(t *testing.T) {
	in := "0x0000000000000000000000000000000000000000000000000000000000000001"
	h, err := ParseHash(in)
	if err != nil {
		t.Fatalf("ParseHash: %v", err)
	}
	if h.String() != in {
		t.Fatalf("String() = %q, want %q", h.String(), in)
	}
}

func TestParseHashRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"0x01",
		"00000000000000000000000000000000000000000000000000000000000001",
		"0x0000000000000000000000000000000000000000000000000000000000000G",
		"0X0000000000000000000000000000000000000000000000000000000000001",
		"0x00000000000000000000000000000000000000000000000000000000000ABC",
	}
	for _, c := range cases {
		if _, err := ParseHash(c); err != ErrMalformedHash {
			t.Fatalf("ParseHash(%q) err = %v, want ErrMalformedHash", c, err)
		}
	}
}

func TestHashValuesCanonicalForm(t *testing.T) {
	h := HashValues(leafValue(1), leafValue(2))
	s := h.String()
	if len(s) != 66 || s[0] != '0' || s[1] != 'x' {
		t.Fatalf("HashValues().String() = %q, not canonical 0x+64hex", s)
	}
	for _, c := range s[2:] {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			t.Fatalf("HashValues().String() = %q contains non-lowercase-hex byte %q", s, c)
		}
	}
}

func TestHashValuesEmptyAndSingle(t *testing.T) {
	empty := HashValues()
	if empty.IsZero() {
		t.Fatalf("HashValues() with no inputs should not be the zero hash (it is sha256 of empty bytes)")
	}
	single := HashValues(leafValue(7))
	single2 := HashValues(leafValue(7))
	if single != single2 {
		t.Fatalf("HashValues single-input not deterministic")
	}
}
