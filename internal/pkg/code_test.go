package pkg

import "testing"

func TestRandDigits(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := RandDigits(6)
		if err != nil {
			t.Fatalf("RandDigits: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("len(%q) = %d; want 6", code, len(code))
		}
		for _, c := range code {
			if c < '0' || c > '9' {
				t.Fatalf("code %q contains a non-digit", code)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Error("50 draws produced a single code; generator looks broken")
	}
}
