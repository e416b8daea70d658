package validate

import "github.com/bastiangx/hsnserve/pkg/codes"

// ExistsResult is the verdict of Exists. Match is nil when Exists is false.
type ExistsResult struct {
	Exists bool
	Match  *codes.Record
}

// Exists looks code up by exact string equality.
func Exists(code string, table *codes.Table) ExistsResult {
	rec, ok := table.Lookup(code)
	if !ok {
		return ExistsResult{}
	}
	return ExistsResult{Exists: true, Match: &rec}
}
