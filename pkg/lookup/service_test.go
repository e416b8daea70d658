package lookup

import (
	"testing"

	"github.com/bastiangx/hsnserve/pkg/codes"
	"github.com/bastiangx/hsnserve/pkg/validate"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func exampleTable() *codes.Table {
	return codes.NewTable([]codes.Record{
		{Code: "99", Description: "Services"},
		{Code: "9954", Description: "Construction services"},
		{Code: "995411", Description: "General construction of buildings"},
		{Code: "99541100", Description: "Construction of residential buildings"},
	})
}

func newTestService(t *testing.T, table *codes.Table) *Service {
	t.Helper()
	svc, err := NewService(table)
	require.NoError(t, err)
	return svc
}

func TestNewService(t *testing.T) {
	t.Run("valid table", func(t *testing.T) {
		svc, err := NewService(exampleTable())
		require.NoError(t, err)
		assert.Equal(t, 4, svc.Table().Len())
	})

	t.Run("nil table", func(t *testing.T) {
		_, err := NewService(nil)
		assert.ErrorIs(t, err, ErrNilTable)
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		svc, err := NewService(codes.Empty(), WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, svc.logger)
	})
}

func TestValidate_EightDigitWithParents(t *testing.T) {
	svc := newTestService(t, exampleTable())

	out := svc.Validate("99541100")
	require.IsType(t, Valid{}, out)
	v := out.(Valid)

	assert.True(t, out.IsValid())
	assert.Equal(t, KindValid, out.Kind())
	assert.Equal(t, "99541100", out.Code())
	assert.Equal(t, MsgFound, out.Message())
	assert.Equal(t, "99541100", v.Match.Code)
	require.Len(t, v.Parents, 3)
	assert.Equal(t, []string{"995411", "9954", "99"}, []string{v.Parents[0].Code, v.Parents[1].Code, v.Parents[2].Code})
}

func TestValidate_ShortCodeHasNoParents(t *testing.T) {
	svc := newTestService(t, exampleTable())

	out := svc.Validate("9954")
	require.IsType(t, Valid{}, out)
	assert.Empty(t, out.(Valid).Parents)
}

func TestValidate_ExistingCodeWithoutAncestorsStaysValid(t *testing.T) {
	svc := newTestService(t, codes.NewTable([]codes.Record{
		{Code: "12345678", Description: "Orphan entry"},
	}))

	out := svc.Validate("12345678")
	require.IsType(t, Valid{}, out)
	assert.True(t, out.IsValid())
	assert.Empty(t, out.(Valid).Parents)
}

func TestValidate_NotFound(t *testing.T) {
	svc := newTestService(t, exampleTable())

	t.Run("no suggestions", func(t *testing.T) {
		out := svc.Validate("1234")
		require.IsType(t, NotFound{}, out)
		assert.False(t, out.IsValid())
		assert.Equal(t, MsgNotFound, out.Message())
		assert.Empty(t, out.(NotFound).Suggestions)
	})

	t.Run("suggestions share prefix", func(t *testing.T) {
		out := svc.Validate("99999999")
		require.IsType(t, NotFound{}, out)
		assert.Len(t, out.(NotFound).Suggestions, 4)
	})
}

func TestValidate_FormatInvalid(t *testing.T) {
	svc := newTestService(t, exampleTable())

	tests := []struct {
		code string
		msg  string
	}{
		{"12a4", validate.MsgNotNumeric},
		{"", validate.MsgNotNumeric},
		{"123", validate.MsgBadLength},
	}
	for _, tt := range tests {
		out := svc.Validate(tt.code)
		require.IsType(t, FormatInvalid{}, out)
		assert.False(t, out.IsValid())
		assert.Equal(t, tt.code, out.Code())
		assert.Equal(t, tt.msg, out.Message())
	}
}

func TestHandle_ExactlyOneResult(t *testing.T) {
	svc := newTestService(t, exampleTable())

	code := svc.Handle("9954", true)
	assert.True(t, code.CodeMode)
	assert.NotNil(t, code.Outcome)
	assert.Nil(t, code.Results)

	text := svc.Handle("construction", false)
	assert.False(t, text.CodeMode)
	assert.Nil(t, text.Outcome)
	assert.Len(t, text.Results, 3)

	// A code typed in text mode is just a query.
	text = svc.Handle("9954", false)
	assert.Nil(t, text.Outcome)
	assert.Empty(t, text.Results)
}

func TestHandle_EmptyTable(t *testing.T) {
	svc := newTestService(t, codes.Empty())

	out := svc.Validate("99")
	require.IsType(t, NotFound{}, out)
	assert.Empty(t, out.(NotFound).Suggestions)
	assert.Empty(t, svc.Search("services"))
}

func TestSwap(t *testing.T) {
	svc := newTestService(t, codes.Empty())
	require.IsType(t, NotFound{}, svc.Validate("99"))

	old, err := svc.Swap(exampleTable())
	require.NoError(t, err)
	assert.Equal(t, 0, old.Len())
	assert.IsType(t, Valid{}, svc.Validate("99"))

	_, err = svc.Swap(nil)
	assert.ErrorIs(t, err, ErrNilTable)
	assert.Equal(t, 4, svc.Table().Len())
}
