/*
Package search ranks code table entries against a free-text description query.

The ranking is a small additive heuristic, not an index: every record is
scored on each call and the best MaxResults are returned.

  - +100 when the whole query occurs in the description
  - +10 for each query token of at least MinTokenLen characters found in it
  - +5 more when that token also matches as a whole word

Matching is case-insensitive. Records scoring zero are dropped and ties keep
table order.
*/
package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bastiangx/hsnserve/pkg/codes"
)

const (
	// MinQueryLen is the shortest trimmed query that is searched at all.
	MinQueryLen = 2
	// MinTokenLen is the shortest query token that contributes to a score.
	MinTokenLen = 3
	// MaxResults caps the result set.
	MaxResults = 10
)

// Score weights.
const (
	PhraseScore = 100
	TokenScore  = 10
	WordBonus   = 5
)

type hit struct {
	record codes.Record
	score  int
}

// ByDescription returns up to MaxResults records ranked by relevance of their
// description to query. Queries shorter than MinQueryLen after trimming
// return nil.
func ByDescription(query string, table *codes.Table) []codes.Record {
	if utf8.RuneCountInString(strings.TrimSpace(query)) < MinQueryLen {
		return nil
	}

	s := newScorer(query)
	var hits []hit
	for _, rec := range table.All() {
		if score := s.score(rec.Description); score > 0 {
			hits = append(hits, hit{record: rec, score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})
	if len(hits) > MaxResults {
		hits = hits[:MaxResults]
	}

	results := make([]codes.Record, len(hits))
	for i, h := range hits {
		results[i] = h.record
	}
	return results
}

// Score returns the relevance of description to query.
func Score(query, description string) int {
	return newScorer(query).score(description)
}
