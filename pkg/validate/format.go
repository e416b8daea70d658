/*
Package validate implements the code-side checks for HSN/SAC lookups: lexical
format, exact existence, hierarchy ancestry and prefix suggestions.

Every check returns a plain value. An ill-formed or unknown code is an answer,
not an error, so nothing in this package returns error.
*/
package validate

import (
	"slices"

	"github.com/bastiangx/hsnserve/internal/utils"
)

// Messages reported by Format.
const (
	MsgNotNumeric  = "Code must contain only numeric digits"
	MsgBadLength   = "Code must be 2, 4, 6, or 8 digits long"
	MsgValidFormat = "Valid code format"
)

// ValidLengths are the code lengths of the HSN/SAC hierarchy levels.
var ValidLengths = []int{2, 4, 6, 8}

// FormatResult is the verdict of Format.
type FormatResult struct {
	IsValid bool
	Message string
}

// Format checks the lexical shape of a candidate code.
// It does not consult any table.
func Format(code string) FormatResult {
	if !utils.IsASCIIDigits(code) {
		return FormatResult{IsValid: false, Message: MsgNotNumeric}
	}
	if !slices.Contains(ValidLengths, len(code)) {
		return FormatResult{IsValid: false, Message: MsgBadLength}
	}
	return FormatResult{IsValid: true, Message: MsgValidFormat}
}
