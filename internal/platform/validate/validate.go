// Package validate holds the input checks shared by the catalog, lending
// and payment services.
package validate

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	PatronIDLength = 6
	ISBNLength     = 13
	MaxTitleLen    = 200
	MaxAuthorLen   = 100
)

// PatronID accepts exactly 6 ASCII digits.
func PatronID(s string) error {
	if len(s) != PatronIDLength || !isDigits(s) {
		return fmt.Errorf("invalid patron ID, must be exactly %d digits", PatronIDLength)
	}
	return nil
}

// ISBN13 accepts exactly 13 ASCII digits.
func ISBN13(s string) error {
	if len(s) != ISBNLength || !isDigits(s) {
		return fmt.Errorf("ISBN must be exactly %d digits", ISBNLength)
	}
	return nil
}

func Title(s string) error {
	t := strings.TrimSpace(s)
	if t == "" {
		return fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(t) > MaxTitleLen {
		return fmt.Errorf("title must be less than %d characters", MaxTitleLen)
	}
	return nil
}

func Author(s string) error {
	a := strings.TrimSpace(s)
	if a == "" {
		return fmt.Errorf("author is required")
	}
	if utf8.RuneCountInString(a) > MaxAuthorLen {
		return fmt.Errorf("author must be less than %d characters", MaxAuthorLen)
	}
	return nil
}

// dateTimeFormats are tried in order when parsing persisted timestamps.
var dateTimeFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	time.RFC3339,
}

// ParseDateTime parses a stored date-like string. The second return is
// false when no known format matches.
func ParseDateTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateTimeFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DigitsOnly strips everything that is not an ASCII digit. Used to
// normalize ISBN search terms.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
