package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxEmailLength is the longest address the site API stores.
const MaxEmailLength = 254

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	// 2-24 chars, alphanumeric at both ends, spaces/underscores/hyphens/dots inside.
	clubUsernamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 _.\-]{0,22}[A-Za-z0-9]$`)
	httpURLPattern      = regexp.MustCompile(`^https?://[^\s/$.?#][^\s]*$`)
	zipPattern          = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

// ValidateEmail validates email format and length
func ValidateEmail(email string) bool {
	email = strings.TrimSpace(email)
	return len(email) <= MaxEmailLength && emailPattern.MatchString(email)
}

// ValidateClubUsername checks the community handle shape.
func ValidateClubUsername(username string) bool {
	return clubUsernamePattern.MatchString(strings.TrimSpace(username))
}

// ValidateHTTPURL accepts only http:// and https:// URLs.
func ValidateHTTPURL(url string) bool {
	return httpURLPattern.MatchString(strings.TrimSpace(url))
}

// ValidateZipCode accepts 12345 and 12345-6789.
func ValidateZipCode(zip string) bool {
	return zipPattern.MatchString(strings.TrimSpace(zip))
}

// IsBlank reports whether s is empty after trimming whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// WithinLength reports whether s has between min and max characters (runes), inclusive.
func WithinLength(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}
