package validate

import "github.com/bastiangx/hsnserve/pkg/codes"

// Messages reported by Hierarchy.
const (
	MsgHierarchySkipped = "Not an 8-digit code, hierarchy check skipped"
	MsgNoParents        = "No valid parent codes found in hierarchy"
	MsgValidHierarchy   = "Valid hierarchy"
)

// HierarchyLength is the only code length whose ancestry is resolved.
const HierarchyLength = 8

// parentLengths is the order ancestors are reported in, nearest first.
var parentLengths = []int{6, 4, 2}

// HierarchyResult is the verdict of Hierarchy.
// Parents is nil unless at least one ancestor was found.
type HierarchyResult struct {
	IsValid bool
	Message string
	Parents []codes.Record
}

// Hierarchy resolves the 6, 4 and 2 digit ancestors of an 8 digit code.
// Other lengths are skipped and reported valid with no parents.
func Hierarchy(code string, table *codes.Table) HierarchyResult {
	if len(code) != HierarchyLength {
		return HierarchyResult{IsValid: true, Message: MsgHierarchySkipped}
	}

	var parents []codes.Record
	for _, n := range parentLengths {
		if rec, ok := table.Lookup(code[:n]); ok {
			parents = append(parents, rec)
		}
	}

	if len(parents) == 0 {
		return HierarchyResult{IsValid: false, Message: MsgNoParents}
	}
	return HierarchyResult{IsValid: true, Message: MsgValidHierarchy, Parents: parents}
}
