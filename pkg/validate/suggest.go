package validate

import "github.com/bastiangx/hsnserve/pkg/codes"

const (
	// SuggestionPrefixLen is how many leading characters a suggestion must share.
	SuggestionPrefixLen = 2
	// MaxSuggestions caps the suggestion list.
	MaxSuggestions = 5
)

// Suggestions returns up to MaxSuggestions records sharing the first two
// characters of code, in table order. Shorter codes use the whole code.
func Suggestions(code string, table *codes.Table) []codes.Record {
	prefix := code[:min(len(code), SuggestionPrefixLen)]
	return table.WithPrefix(prefix, MaxSuggestions)
}
