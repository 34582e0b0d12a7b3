package datastores

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// PhoneLength is the number of digits of a normalized phone: area code and number.
const PhoneLength = 11

// NormalizePhone decomposes raw with [norm.NFD] and keeps only the ASCII digits,
// dropping separators, parentheses, spaces and combining marks.
func NormalizePhone(raw string) string {
	return strings.Map(func(r rune) rune {
		if r < '0' || r > '9' {
			return -1
		}
		return r
	}, norm.NFD.String(raw))
}

func normalizeValidPhone(raw string) (string, error) {
	phone := NormalizePhone(raw)
	if len(phone) != PhoneLength {
		return "", ErrInvalidPhone
	}
	return phone, nil
}
