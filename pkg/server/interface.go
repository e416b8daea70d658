/*
Package server implements msgpack IPC for HSN/SAC code lookups.

Clients write a stream of msgpack-encoded requests to stdin and read one
msgpack response per request from stdout. The first message on stdout is a
ready status. Requests are handled synchronously, in order.

# Requests

Every request names an action and carries an ID that is echoed back:

	{"id": "r1", "action": "validate", "q": "99541100"}
	{"id": "r2", "action": "search", "q": "construction"}
	{"id": "r3", "action": "info"}
	{"id": "r4", "action": "reload"}

# Responses

Validation answers are flattened from the lookup outcome. kind is one of
format_invalid, not_found or valid; match and parents are set only for valid
codes, suggestions only for not_found:

	{"id": "r1", "valid": true, "kind": "valid", "code": "99541100",
	 "msg": "Valid code found in database",
	 "match": {"c": "99541100", "d": "Construction of residential buildings"},
	 "parents": [{"c": "995411", ...}, {"c": "9954", ...}, {"c": "99", ...}],
	 "t": 12}

Search answers list at most ten records, best first:

	{"id": "r2", "results": [{"c": "9954", "d": "Construction services"}], "n": 1, "t": 80}

t is the handling time in microseconds. Failures are reported as

	{"id": "r9", "e": "query exceeds maximum length of 128 characters", "c": 400}
*/
package server

import "github.com/bastiangx/hsnserve/pkg/codes"

// Actions understood by the server.
const (
	ActionValidate = "validate"
	ActionSearch   = "search"
	ActionInfo     = "info"
	ActionReload   = "reload"
)

// Request is one client message.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action"`
	Query  string `msgpack:"q,omitempty"`
}

// ValidationResponse answers a validate request.
type ValidationResponse struct {
	ID          string         `msgpack:"id"`
	Valid       bool           `msgpack:"valid"`
	Kind        string         `msgpack:"kind"`
	Code        string         `msgpack:"code"`
	Message     string         `msgpack:"msg"`
	Match       *codes.Record  `msgpack:"match,omitempty"`
	Parents     []codes.Record `msgpack:"parents,omitempty"`
	Suggestions []codes.Record `msgpack:"suggestions,omitempty"`
	TimeTaken   int64          `msgpack:"t"`
}

// SearchResponse answers a search request.
type SearchResponse struct {
	ID        string         `msgpack:"id"`
	Results   []codes.Record `msgpack:"results"`
	Count     int            `msgpack:"n"`
	TimeTaken int64          `msgpack:"t"`
}

// InfoResponse describes the loaded table. It also answers reload.
type InfoResponse struct {
	ID         string      `msgpack:"id"`
	Status     string      `msgpack:"status"`
	Source     string      `msgpack:"source,omitempty"`
	Records    int         `msgpack:"records"`
	Duplicates int         `msgpack:"duplicates"`
	ByLength   map[int]int `msgpack:"by_length,omitempty"`
}

// StatusResponse is sent once when the server is ready.
type StatusResponse struct {
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for a failed request
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
