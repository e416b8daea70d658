package utils

import (
	"fmt"
	"strings"
)

// IsASCIIDigits reports whether s is non-empty and made only of '0'..'9'.
// Other Unicode digits are rejected.
func IsASCIIDigits(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// IndexIgnoreCase returns the byte span in s of the first case-insensitive
// occurrence of substr, or -1, -1. Only ASCII-folding text keeps its offsets
// after lowering, so non-ASCII input reports no match.
func IndexIgnoreCase(s, substr string) (start, end int) {
	if substr == "" || !isASCII(s) || !isASCII(substr) {
		return -1, -1
	}
	i := strings.Index(strings.ToLower(s), strings.ToLower(substr))
	if i < 0 {
		return -1, -1
	}
	return i, i + len(substr)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// FormatWithCommas formats an integer with comma separators
func FormatWithCommas(n int) string {
	if n < 1000 && n > -1000 {
		return fmt.Sprintf("%d", n)
	}
	str := fmt.Sprintf("%d", n)
	sign := ""
	if str[0] == '-' {
		sign, str = "-", str[1:]
	}
	var b strings.Builder
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(char)
	}
	return sign + b.String()
}
