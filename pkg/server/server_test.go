package server

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/bastiangx/hsnserve/pkg/codes"
	"github.com/bastiangx/hsnserve/pkg/config"
	"github.com/bastiangx/hsnserve/pkg/lookup"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
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

// session runs the server over the encoded messages and returns a decoder
// positioned after the ready status.
func session(t *testing.T, srvOpts []Option, messages ...any) *msgpack.Decoder {
	t.Helper()

	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, m := range messages {
		require.NoError(t, enc.Encode(m))
	}

	svc, err := lookup.NewService(exampleTable())
	require.NoError(t, err)

	var out bytes.Buffer
	opts := append([]Option{WithIO(&in, &out)}, srvOpts...)
	srv := NewServer(svc, config.DefaultConfig(), opts...)
	require.NoError(t, srv.Start())

	dec := msgpack.NewDecoder(&out)
	var ready StatusResponse
	require.NoError(t, dec.Decode(&ready))
	assert.Equal(t, "ready", ready.Status)
	return dec
}

func TestServer_Validate(t *testing.T) {
	dec := session(t, nil,
		Request{ID: "v1", Action: ActionValidate, Query: "99541100"},
		Request{ID: "v2", Action: ActionValidate, Query: "1234"},
		Request{ID: "v3", Action: ActionValidate, Query: "12a4"},
	)

	var valid ValidationResponse
	require.NoError(t, dec.Decode(&valid))
	assert.Equal(t, "v1", valid.ID)
	assert.True(t, valid.Valid)
	assert.Equal(t, string(lookup.KindValid), valid.Kind)
	assert.Equal(t, lookup.MsgFound, valid.Message)
	require.NotNil(t, valid.Match)
	assert.Equal(t, "99541100", valid.Match.Code)
	require.Len(t, valid.Parents, 3)
	assert.Equal(t, "995411", valid.Parents[0].Code)

	var missing ValidationResponse
	require.NoError(t, dec.Decode(&missing))
	assert.Equal(t, "v2", missing.ID)
	assert.False(t, missing.Valid)
	assert.Equal(t, string(lookup.KindNotFound), missing.Kind)
	assert.Equal(t, lookup.MsgNotFound, missing.Message)
	assert.Nil(t, missing.Match)
	assert.Empty(t, missing.Suggestions)

	var malformed ValidationResponse
	require.NoError(t, dec.Decode(&malformed))
	assert.Equal(t, string(lookup.KindFormatInvalid), malformed.Kind)
	assert.Equal(t, "Code must contain only numeric digits", malformed.Message)
}

func TestServer_Search(t *testing.T) {
	dec := session(t, nil,
		Request{ID: "s1", Action: ActionSearch, Query: "construction"},
		Request{ID: "s2", Action: ActionSearch, Query: "x"},
	)

	var resp SearchResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "s1", resp.ID)
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, "9954", resp.Results[0].Code)

	var short SearchResponse
	require.NoError(t, dec.Decode(&short))
	assert.Equal(t, 0, short.Count)
	assert.NotNil(t, short.Results)
}

func TestServer_Errors(t *testing.T) {
	dec := session(t, nil,
		Request{ID: "e1", Action: "explode"},
		Request{ID: "e2", Action: ActionSearch, Query: strings.Repeat("a", 129)},
		map[string]any{"id": 42, "action": []int{1}},
		Request{ID: "e3", Action: ActionReload},
		Request{ID: "ok", Action: ActionInfo},
	)

	var unknown ErrorResponse
	require.NoError(t, dec.Decode(&unknown))
	assert.Equal(t, "e1", unknown.ID)
	assert.Equal(t, 400, unknown.Code)

	var tooLong ErrorResponse
	require.NoError(t, dec.Decode(&tooLong))
	assert.Equal(t, "e2", tooLong.ID)
	assert.Contains(t, tooLong.Error, "128")

	var invalid ErrorResponse
	require.NoError(t, dec.Decode(&invalid))
	assert.Equal(t, "invalid request", invalid.Error)

	var noReload ErrorResponse
	require.NoError(t, dec.Decode(&noReload))
	assert.Equal(t, 501, noReload.Code)

	// The stream survives bad messages.
	var info InfoResponse
	require.NoError(t, dec.Decode(&info))
	assert.Equal(t, "ok", info.ID)
	assert.Equal(t, 4, info.Records)
}

func TestServer_Reload(t *testing.T) {
	calls := 0
	reloader := func() (*codes.Table, error) {
		calls++
		if calls > 1 {
			return nil, errors.New("disk on fire")
		}
		return codes.NewTable([]codes.Record{{Code: "01", Description: "Live animals"}}), nil
	}

	dec := session(t, []Option{WithReloader("codes.csv", reloader)},
		Request{ID: "r1", Action: ActionReload},
		Request{ID: "v1", Action: ActionValidate, Query: "01"},
		Request{ID: "r2", Action: ActionReload},
		Request{ID: "i1", Action: ActionInfo},
	)

	var reloaded InfoResponse
	require.NoError(t, dec.Decode(&reloaded))
	assert.Equal(t, "reloaded", reloaded.Status)
	assert.Equal(t, "codes.csv", reloaded.Source)
	assert.Equal(t, 1, reloaded.Records)
	assert.Equal(t, map[int]int{2: 1}, reloaded.ByLength)

	var v ValidationResponse
	require.NoError(t, dec.Decode(&v))
	assert.True(t, v.Valid)

	var failed ErrorResponse
	require.NoError(t, dec.Decode(&failed))
	assert.Equal(t, 500, failed.Code)

	var info InfoResponse
	require.NoError(t, dec.Decode(&info))
	assert.Equal(t, 1, info.Records, "failed reload keeps the previous table")
}
