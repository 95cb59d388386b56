package catalog

import "strings"

// ValidISBN reports whether s is a well-formed ISBN-10 or ISBN-13, checksum
// included. Hyphens and spaces are ignored.
func ValidISBN(s string) bool {
	cleaned := strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return -1
		}
		return r
	}, s)
	switch len(cleaned) {
	case 10:
		return validISBN10(cleaned)
	case 13:
		return validISBN13(cleaned)
	}
	return false
}

func validISBN10(s string) bool {
	sum := 0
	for i, r := range s {
		var v int
		switch {
		case r >= '0' && r <= '9':
			v = int(r - '0')
		case (r == 'X' || r == 'x') && i == 9:
			v = 10
		default:
			return false
		}
		sum += v * (10 - i)
	}
	return sum%11 == 0
}

func validISBN13(s string) bool {
	sum := 0
	for i, r := range s {
		if r < '0' || r > '9' {
			return false
		}
		v := int(r - '0')
		if i%2 == 1 {
			v *= 3
		}
		sum += v
	}
	return sum%10 == 0
}
