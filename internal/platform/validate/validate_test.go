package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPatronID(t *testing.T) {
	testCases := []struct {
		id      string
		wantErr bool
	}{
		{"123456", false},
		{"000000", false},
		{"", true},
		{"12345", true},
		{"1234567", true},
		{"12a456", true},
		{"ABCDEF", true},
		{" 12345", true},
	}

	for _, tt := range testCases {
		err := PatronID(tt.id)
		if tt.wantErr {
			assert.Error(t, err, "id=%q", tt.id)
		} else {
			assert.NoError(t, err, "id=%q", tt.id)
		}
	}
}

func TestISBN13(t *testing.T) {
	testCases := []struct {
		isbn    string
		wantErr bool
	}{
		{"9780134685991", false},
		{"0000000000000", false},
		{"", true},
		{"978013468599", true},
		{"97801346859911", true},
		{"978013468599a", true},
		{"978-013468599", true},
	}

	for _, tt := range testCases {
		err := ISBN13(tt.isbn)
		if tt.wantErr {
			assert.Error(t, err, "isbn=%q", tt.isbn)
		} else {
			assert.NoError(t, err, "isbn=%q", tt.isbn)
		}
	}
}

func TestTitleAndAuthor(t *testing.T) {
	assert.NoError(t, Title("The Go Programming Language"))
	assert.Error(t, Title(""))
	assert.Error(t, Title("   "))
	assert.NoError(t, Title(strings.Repeat("a", 200)))
	assert.Error(t, Title(strings.Repeat("a", 201)))

	// limits count runes, not bytes
	assert.NoError(t, Title(strings.Repeat("図", 70)))
	assert.NoError(t, Title(strings.Repeat("図", 200)))
	assert.Error(t, Title(strings.Repeat("図", 201)))

	assert.NoError(t, Author("Alan A. A. Donovan"))
	assert.Error(t, Author(""))
	assert.Error(t, Author("   "))
	assert.NoError(t, Author(strings.Repeat("a", 100)))
	assert.Error(t, Author(strings.Repeat("a", 101)))

	assert.NoError(t, Author(strings.Repeat("著", 40)))
	assert.NoError(t, Author(strings.Repeat("著", 100)))
	assert.Error(t, Author(strings.Repeat("著", 101)))
}

func TestParseDateTime(t *testing.T) {
	testCases := []struct {
		in   string
		ok   bool
		want time.Time
	}{
		{"2026-03-01 10:30:00", true, time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)},
		{"2026-03-01T10:30:00", true, time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)},
		{"2026-03-01", true, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"", false, time.Time{}},
		{"not a date", false, time.Time{}},
		{"03/01/2026", false, time.Time{}},
	}

	for _, tt := range testCases {
		got, ok := ParseDateTime(tt.in)
		assert.Equal(t, tt.ok, ok, "in=%q", tt.in)
		if tt.ok {
			assert.True(t, got.Equal(tt.want), "in=%q got=%v", tt.in, got)
		}
	}
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "9780134685991", DigitsOnly("978-0-13-468599-1"))
	assert.Equal(t, "123456", DigitsOnly(" 12 34 56 "))
	assert.Equal(t, "", DigitsOnly("no digits"))
	assert.Equal(t, "", DigitsOnly(""))
}
