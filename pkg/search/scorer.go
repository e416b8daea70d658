package search

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// scorer holds a lowered query and its compiled token matchers.
type scorer struct {
	phrase string
	tokens []token
}

type token struct {
	text string
	word *regexp.Regexp
}

// newScorer prepares query for scoring. The phrase is the lowered query as
// given; surrounding whitespace is kept and has to match too.
func newScorer(query string) scorer {
	lower := strings.ToLower(query)
	s := scorer{phrase: lower}
	for _, field := range strings.Fields(lower) {
		if utf8.RuneCountInString(field) < MinTokenLen {
			continue
		}
		s.tokens = append(s.tokens, token{
			text: field,
			word: regexp.MustCompile(`\b` + regexp.QuoteMeta(field) + `\b`),
		})
	}
	return s
}

func (s scorer) score(description string) int {
	text := strings.ToLower(description)
	score := 0
	if strings.Contains(text, s.phrase) {
		score += PhraseScore
	}
	for _, tok := range s.tokens {
		if !strings.Contains(text, tok.text) {
			continue
		}
		score += TokenScore
		if tok.word.MatchString(text) {
			score += WordBonus
		}
	}
	return score
}
