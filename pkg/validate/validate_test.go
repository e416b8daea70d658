package validate

import (
	"strings"
	"testing"

	"github.com/bastiangx/hsnserve/pkg/codes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleTable() *codes.Table {
	return codes.NewTable([]codes.Record{
		{Code: "99", Description: "Services"},
		{Code: "9954", Description: "Construction services"},
		{Code: "995411", Description: "General construction of buildings"},
		{Code: "99541100", Description: "Construction of residential buildings"},
	})
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		valid bool
		msg   string
	}{
		{"two digits", "99", true, MsgValidFormat},
		{"four digits", "9954", true, MsgValidFormat},
		{"six digits", "995411", true, MsgValidFormat},
		{"eight digits", "99541100", true, MsgValidFormat},
		{"empty", "", false, MsgNotNumeric},
		{"letters", "12a4", false, MsgNotNumeric},
		{"odd length letters", "abc", false, MsgNotNumeric},
		{"space", "99 54", false, MsgNotNumeric},
		{"one digit", "9", false, MsgBadLength},
		{"three digits", "995", false, MsgBadLength},
		{"ten digits", "9954110000", false, MsgBadLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.code)
			assert.Equal(t, tt.valid, got.IsValid)
			assert.Equal(t, tt.msg, got.Message)
		})
	}
}

func TestFormat_DigitLengths(t *testing.T) {
	for n := 1; n <= 12; n++ {
		code := strings.Repeat("7", n)
		want := n == 2 || n == 4 || n == 6 || n == 8
		assert.Equal(t, want, Format(code).IsValid, "length %d", n)
	}
}

func TestExists(t *testing.T) {
	table := exampleTable()

	got := Exists("995411", table)
	require.True(t, got.Exists)
	require.NotNil(t, got.Match)
	assert.Equal(t, "General construction of buildings", got.Match.Description)

	got = Exists("9955", table)
	assert.False(t, got.Exists)
	assert.Nil(t, got.Match)

	assert.False(t, Exists("99", codes.Empty()).Exists)
}

func TestHierarchy(t *testing.T) {
	table := exampleTable()

	t.Run("all parents in fixed order", func(t *testing.T) {
		got := Hierarchy("99541100", table)
		assert.True(t, got.IsValid)
		assert.Equal(t, MsgValidHierarchy, got.Message)
		require.Len(t, got.Parents, 3)
		assert.Equal(t, "995411", got.Parents[0].Code)
		assert.Equal(t, "9954", got.Parents[1].Code)
		assert.Equal(t, "99", got.Parents[2].Code)
	})

	t.Run("missing middle parent skipped", func(t *testing.T) {
		table := codes.NewTable([]codes.Record{
			{Code: "99", Description: "Services"},
			{Code: "995411", Description: "General construction"},
		})
		got := Hierarchy("99541100", table)
		assert.True(t, got.IsValid)
		require.Len(t, got.Parents, 2)
		assert.Equal(t, "995411", got.Parents[0].Code)
		assert.Equal(t, "99", got.Parents[1].Code)
	})

	t.Run("no parents", func(t *testing.T) {
		got := Hierarchy("12345678", table)
		assert.False(t, got.IsValid)
		assert.Equal(t, MsgNoParents, got.Message)
		assert.Nil(t, got.Parents)
	})

	t.Run("non eight digit skipped", func(t *testing.T) {
		for _, code := range []string{"99", "9954", "995411", "123"} {
			got := Hierarchy(code, table)
			assert.True(t, got.IsValid)
			assert.Equal(t, MsgHierarchySkipped, got.Message)
			assert.Nil(t, got.Parents)
		}
	})
}

func TestSuggestions(t *testing.T) {
	table := exampleTable()

	got := Suggestions("9999", table)
	require.Len(t, got, 4)
	assert.Equal(t, "99", got[0].Code)
	assert.Equal(t, "99541100", got[3].Code)

	assert.Empty(t, Suggestions("1234", table))

	t.Run("capped at five", func(t *testing.T) {
		recs := make([]codes.Record, 0, 8)
		for _, c := range []string{"01", "0101", "0102", "0103", "0104", "0105", "0106", "02"} {
			recs = append(recs, codes.Record{Code: c, Description: "live animals"})
		}
		got := Suggestions("0199", codes.NewTable(recs))
		require.Len(t, got, MaxSuggestions)
		assert.Equal(t, "01", got[0].Code)
		assert.Equal(t, "0104", got[4].Code)
	})

	t.Run("short code uses whole code as prefix", func(t *testing.T) {
		got := Suggestions("9", table)
		assert.Len(t, got, 4)
	})
}
