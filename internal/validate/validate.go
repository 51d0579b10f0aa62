package validate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	reEmail   = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reKeyword = regexp.MustCompile(`^[\p{L}\p{N} _'\-]{1,50}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Keyword validates a search keyword: trims, enforces allowed characters and max length.
func Keyword(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if r := []rune(s); len(r) > 50 {
		s = strings.TrimSpace(string(r[:50]))
	}
	return s, reKeyword.MatchString(s)
}

// Qty accepts 1..max; max <= 0 means no upper bound.
func Qty(n, max int) bool {
	return n >= 1 && (max <= 0 || n <= max)
}

// ID parses a positive numeric resource identifier (products, users).
func ID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 40 {
		return "", false
	}
	return s, true
}

// Password requires 8-64 bytes mixing lower, upper, digit and symbol.
func Password(s string) bool {
	if len(s) < 8 || len(s) > 64 {
		return false
	}
	symbol := func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) }
	return strings.ContainsFunc(s, unicode.IsLower) &&
		strings.ContainsFunc(s, unicode.IsUpper) &&
		strings.ContainsFunc(s, unicode.IsDigit) &&
		strings.ContainsFunc(s, symbol)
}
