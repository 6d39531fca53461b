package utils

import "strings"

// DigitsOnly strips everything but ASCII digits.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidPhone reports whether the digits form a 10 or 11 digit Brazilian number
// (area code plus 8 or 9 digit subscriber).
func ValidPhone(digits string) bool {
	return len(digits) >= 10 && len(digits) <= 11 && DigitsOnly(digits) == digits
}

// FormatPhone applies the display mask "(XX) XXXXX-XXXX". Input beyond 11
// digits is cut off.
func FormatPhone(phone string) string {
	n := DigitsOnly(phone)
	switch {
	case len(n) <= 2:
		return "(" + n
	case len(n) <= 7:
		return "(" + n[:2] + ") " + n[2:]
	case len(n) <= 11:
		return "(" + n[:2] + ") " + n[2:7] + "-" + n[7:]
	default:
		return "(" + n[:2] + ") " + n[2:7] + "-" + n[7:11]
	}
}
