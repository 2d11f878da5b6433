package validate

import (
	"regexp"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	rePhone = regexp.MustCompile(`^[0-9]{10}$`)
	reOTP   = regexp.MustCompile(`^[0-9]{6}$`)
	reHex   = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)
	reTags  = regexp.MustCompile(`<[^>]*>`)
)

// Sanitize strips markup from a free-text field.
func Sanitize(s string) string {
	return strings.TrimSpace(reTags.ReplaceAllString(s, ""))
}

func Email(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Name validates a displayable full name.
func Name(s string) (string, bool) {
	s = Sanitize(s)
	return s, len(s) >= 2 && len(s) <= 100
}

func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePhone.MatchString(s)
}

// Password enforces the length window used at signup; format beyond
// that is the user's business.
func Password(s string) bool {
	return len(s) >= 6 && len(s) <= 100
}

// ObjectID validates a 24-char hex document id before it hits the store.
func ObjectID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reHex.MatchString(s)
}

func OTP(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reOTP.MatchString(s)
}

// Text validates a sanitized free-text field within [min,max].
func Text(s string, min, max int) (string, bool) {
	s = Sanitize(s)
	return s, len(s) >= min && len(s) <= max
}

func Qty(n int) int {
	if n < 1 {
		return 1
	}
	if n > 50 {
		return 50
	}
	return n
}
