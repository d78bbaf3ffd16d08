package email

import (
	"strings"
	"unicode"
)

// DeriveNameFromEmail guesses a first/last name pair from an email address.
// Used by the visit intake flow to pre-fill visitor names when a kiosk
// registration arrives with only an email. The guess is display-only; the
// watchlist engine always matches on whatever fields were actually recorded.
func DeriveNameFromEmail(email string) (string, string) {
	localPart := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		localPart = email[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})

	if len(parts) == 0 {
		return "Visitor", "Visitor"
	}

	first := capitalize(parts[0])
	last := "Visitor"
	if len(parts) > 1 {
		last = capitalize(parts[len(parts)-1])
	}

	return first, last
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
