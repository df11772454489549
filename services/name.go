package services

import (
	"strings"

	"table-booking/utils"
)

// ParsedName splits a typed name into first and last. Last is lowercased.
type ParsedName struct {
	First string
	Last  string
}

// ParseName treats the final whitespace-separated token as the surname.
// Surnames with spaces ("de la Cruz") therefore only match on their last word.
func ParseName(full string) ParsedName {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return ParsedName{}
	case 1:
		return ParsedName{Last: strings.ToLower(parts[0])}
	}
	return ParsedName{
		First: strings.Join(parts[:len(parts)-1], " "),
		Last:  strings.ToLower(parts[len(parts)-1]),
	}
}

// NormalisePhone keeps the trailing 9 digits so +44 7700 900123 and 07700900123 agree.
func NormalisePhone(phone string) string {
	d := utils.Digits(phone)
	if len(d) >= 9 {
		return d[len(d)-9:]
	}
	return d
}

// sameFold never treats two empty values as a match.
func sameFold(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}

// samePhone compares normalised suffixes; empty never matches.
func samePhone(a, b string) bool {
	na, nb := NormalisePhone(a), NormalisePhone(b)
	return na != "" && na == nb
}
