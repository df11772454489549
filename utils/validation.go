package utils

import (
	"regexp"
	"strings"
	"time"
)

var (
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern  = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigits    = regexp.MustCompile(`\D`)
)

// ValidDate accepts a real YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func ValidTime(s string) bool {
	return timePattern.MatchString(strings.TrimSpace(s))
}

func ValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// ValidName needs at least two characters once trimmed.
func ValidName(s string) bool {
	return len([]rune(strings.TrimSpace(s))) >= 2
}

// ValidPhone is lenient: empty is allowed, otherwise 7 to 15 digits.
func ValidPhone(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	n := len(nonDigits.ReplaceAllString(s, ""))
	return n >= 7 && n <= 15
}

// Digits strips everything but 0-9.
func Digits(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}
