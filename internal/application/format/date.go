package format

import (
	"strings"
	"time"
)

// DateStyle selects one of the fixed display layouts.
type DateStyle string

const (
	DateShort     DateStyle = "short"     // 1/5/24
	DateMedium    DateStyle = "medium"    // Jan 5, 2024
	DateLong      DateStyle = "long"      // January 5, 2024
	DateMonthYear DateStyle = "monthYear" // Jan 2024
)

var dateLayouts = map[DateStyle]string{
	DateShort:     "1/2/06",
	DateMedium:    "Jan 2, 2006",
	DateLong:      "January 2, 2006",
	DateMonthYear: "Jan 2006",
}

// Accepted input layouts, most specific first.
var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Date formats t in the given style. Unknown styles fall back to medium and the
// zero time yields "".
func Date(t time.Time, style DateStyle) string {
	if t.IsZero() {
		return ""
	}
	layout, ok := dateLayouts[style]
	if !ok {
		layout = dateLayouts[DateMedium]
	}
	return t.Format(layout)
}

// DateString parses value and formats it like Date. Unparseable input yields "".
func DateString(value string, style DateStyle) string {
	t, ok := ParseDate(value)
	if !ok {
		return ""
	}
	return Date(t, style)
}

// ParseDate accepts ISO timestamps with or without zone as well as plain days.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
