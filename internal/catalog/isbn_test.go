package catalog

import "testing"

func TestValidISBN(t *testing.T) {
	valid := []string{
		"0-306-40615-2",
		"0306406152",
		"978-0-306-40615-7",
		"9780306406157",
		"0-8044-2957-X",
	}
	for _, s := range valid {
		if !ValidISBN(s) {
			t.Errorf("ValidISBN(%q) = false, want true", s)
		}
	}

	invalid := []string{
		"",
		"abc",
		"0-306-40615-3",      // bad ISBN-10 checksum
		"978-0-306-40615-8",  // bad ISBN-13 checksum
		"97803064061",        // wrong length
		"978030640615X",      // X not allowed in ISBN-13
		"X-306-40615-2",      // X only allowed as final ISBN-10 digit
	}
	for _, s := range invalid {
		if ValidISBN(s) {
			t.Errorf("ValidISBN(%q) = true, want false", s)
		}
	}
}
