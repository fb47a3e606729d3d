package format

// DefaultTruncateLength is the display width used for descriptions in lists.
const DefaultTruncateLength = 30

const ellipsis = "..."

// Truncate shortens s to maxLength runes, the last three being "...".
func Truncate(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	cut := maxLength - len(ellipsis)
	if cut < 0 {
		cut = 0
	}
	return string(runes[:cut]) + ellipsis
}
