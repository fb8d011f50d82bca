package utils

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OptionalString normalizes optional text fields at the boundary:
// empty string and whitespace-only both become nil, so downstream code
// has a single "has value" check instead of mixing "" and NULL.
func OptionalString(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Deref returns the value behind an optional string, or "" when absent.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// EnsureScheme prefixes schemeless links with https:// so stored
// registration/contact links are always openable. Empty input stays empty.
func EnsureScheme(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}
	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") ||
		strings.HasPrefix(link, "mailto:") {
		return link
	}
	return "https://" + link
}

// ParseFloatToDecimal converts an optional float into an optional decimal
func ParseFloatToDecimal(number *float64) *decimal.Decimal {
	if number == nil {
		return nil
	}
	d := decimal.NewFromFloat(*number)
	return &d
}

// ParseStringToUUID parses a string id, returning uuid.Nil on bad input
func ParseStringToUUID(s string) uuid.UUID {
	uid, err := uuid.Parse(s)
	if err != nil || s == "" {
		return uuid.Nil
	}
	return uid
}
