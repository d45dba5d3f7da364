package services

import "strings"

// NormalizePhone canonicalizes a phone number to international digit form
// for the given country code: non-digits are stripped, a local leading zero
// is swapped for the country code, and a bare national number gets the
// country code prefixed. "+62 812-3456-7890", "081234567890" and
// "6281234567890" all normalize to "6281234567890".
func NormalizePhone(raw, countryCode string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}

	if strings.HasPrefix(digits, "0") {
		return countryCode + digits[1:]
	}
	if !strings.HasPrefix(digits, countryCode) {
		return countryCode + digits
	}
	return digits
}
