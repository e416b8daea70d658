/*
Package codes holds the in-memory HSN/SAC reference table.

A Table is built once from parsed records and never mutated afterwards, so a
single *Table can be shared by any number of concurrent readers. Exact lookups
go through a map keyed by code, prefix lookups walk a patricia trie whose
items are the table positions of each code.

	table := codes.NewTable(records)
	rec, ok := table.Lookup("995411")
	near := table.WithPrefix("99", 5)

Record order is the source order and is what callers see whenever several
records qualify for the same answer.
*/
package codes

import (
	"iter"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Record is one (code, description) pair from the reference table.
type Record struct {
	Code        string `msgpack:"c" json:"code"`
	Description string `msgpack:"d" json:"description"`
}

// Table is an immutable, ordered set of records.
type Table struct {
	records  []Record
	byCode   map[string]int
	prefixes *patricia.Trie
	dupes    int
}

// Stats summarizes a table's contents.
type Stats struct {
	Records    int
	Duplicates int
	ByLength   map[int]int
}

// NewTable builds a table from records in the given order.
// Records are copied; later changes to the input slice are not observed.
// When a code occurs more than once the first occurrence answers exact lookups.
func NewTable(records []Record) *Table {
	t := &Table{
		records:  make([]Record, len(records)),
		byCode:   make(map[string]int, len(records)),
		prefixes: patricia.NewTrie(),
	}
	copy(t.records, records)

	for i, rec := range t.records {
		if _, seen := t.byCode[rec.Code]; seen {
			t.dupes++
		} else {
			t.byCode[rec.Code] = i
		}
		key := patricia.Prefix(rec.Code)
		if item := t.prefixes.Get(key); item != nil {
			t.prefixes.Set(key, append(item.([]int), i))
			continue
		}
		t.prefixes.Insert(key, []int{i})
	}

	if t.dupes > 0 {
		log.Debugf("Code table built with %d duplicate codes", t.dupes)
	}
	return t
}

// Empty returns a table with no records.
func Empty() *Table {
	return NewTable(nil)
}

// Len returns the number of records, duplicates included.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// All yields every record with its position, in table order.
func (t *Table) All() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		if t == nil {
			return
		}
		for i, rec := range t.records {
			if !yield(i, rec) {
				return
			}
		}
	}
}

// Records returns a copy of the records in table order.
func (t *Table) Records() []Record {
	if t == nil {
		return nil
	}
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// Lookup returns the first record whose code equals code exactly.
func (t *Table) Lookup(code string) (Record, bool) {
	if t == nil {
		return Record{}, false
	}
	i, ok := t.byCode[code]
	if !ok {
		return Record{}, false
	}
	return t.records[i], true
}

// WithPrefix returns up to limit records whose code starts with prefix, in
// table order. A limit <= 0 means no limit.
func (t *Table) WithPrefix(prefix string, limit int) []Record {
	if t.Len() == 0 {
		return nil
	}
	if prefix == "" {
		return t.head(limit)
	}

	var positions []int
	err := t.prefixes.VisitSubtree(patricia.Prefix(prefix), func(_ patricia.Prefix, item patricia.Item) error {
		positions = append(positions, item.([]int)...)
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting code trie subtree: %v", err)
		return nil
	}

	sort.Ints(positions)
	if limit > 0 && len(positions) > limit {
		positions = positions[:limit]
	}

	out := make([]Record, 0, len(positions))
	for _, i := range positions {
		out = append(out, t.records[i])
	}
	return out
}

func (t *Table) head(limit int) []Record {
	n := len(t.records)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Record, n)
	copy(out, t.records[:n])
	return out
}

// Stats reports record counts per code length.
func (t *Table) Stats() Stats {
	s := Stats{ByLength: make(map[int]int)}
	if t == nil {
		return s
	}
	s.Records = len(t.records)
	s.Duplicates = t.dupes
	for _, rec := range t.records {
		s.ByLength[len(rec.Code)]++
	}
	return s
}
