// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the hsnserve code lookup server and CLI.

hsnserve validates HSN/SAC classification codes and searches their
descriptions against a reference table loaded from a CSV file or a compiled
msgpack snapshot. It can run as a MessagePack IPC server for editors and
billing tools, as an interactive prompt, or as one-shot commands.

# Usage

Start the IPC server with the configured table:

	hsnserve

Use a different table and enable debug logging:

	hsnserve serve --data /path/to/SAC_MSTR.csv -d

Validate a code or search descriptions once:

	hsnserve validate 99541100
	hsnserve search construction of buildings

Run the interactive prompt, starting in text mode:

	hsnserve repl --text

Compile a CSV into a snapshot that loads without parsing:

	hsnserve build SAC_MSTR.csv sac.bin

# Configuration

Runtime configuration lives in a TOML file created with defaults on first
run, under the user config dir:

	[data]
	path = "SAC_MSTR.csv"
	watch = false
	debounce_ms = 200

	[server]
	max_query_len = 128
	log_requests = false

	[cli]
	default_mode = "code"
	color = true

With data.watch set, the server reloads the table when the file changes and
keeps the previous table if the new one fails to load.

# IPC Protocol

The server reads msgpack requests from stdin and writes one response per
request to stdout. Logs go to stderr.

	{"id": "r1", "action": "validate", "q": "99541100"}
	{"id": "r2", "action": "search", "q": "construction"}

See package server for the full message set.
*/
package main

import (
	"os"

	"github.com/bastiangx/hsnserve/cmd/hsnserve/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
