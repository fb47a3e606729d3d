package format

import (
	"testing"
	"time"
)

func TestDate(t *testing.T) {
	day := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		style    DateStyle
		expected string
	}{
		{DateShort, "1/5/24"},
		{DateMedium, "Jan 5, 2024"},
		{DateLong, "January 5, 2024"},
		{DateMonthYear, "Jan 2024"},
		{DateStyle("weird"), "Jan 5, 2024"},
	}

	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			if got := Date(day, tt.style); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}

	t.Run("zero time yields empty string", func(t *testing.T) {
		if got := Date(time.Time{}, DateLong); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})
}

func TestDateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty input", "", ""},
		{"not a date", "not-a-date", ""},
		{"impossible day", "2024-02-31", ""},
		{"plain day", "2024-01-05", "Jan 5, 2024"},
		{"python timestamp", "2024-01-05T13:45:00", "Jan 5, 2024"},
		{"timestamp with fraction", "2024-01-05T13:45:00.123456", "Jan 5, 2024"},
		{"rfc3339", "2024-12-31T23:00:00Z", "Dec 31, 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateString(tt.input, DateMedium); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
