package dictionary

import (
	"fmt"
	"io"

	"github.com/bastiangx/hsnserve/pkg/codes"
	"github.com/vmihailenco/msgpack/v5"
)

// SnapshotVersion is the snapshot layout written by WriteSnapshot.
const SnapshotVersion = 1

type snapshot struct {
	Version int            `msgpack:"v"`
	Records []codes.Record `msgpack:"r"`
}

// WriteSnapshot encodes records, in order, as a msgpack snapshot.
func WriteSnapshot(w io.Writer, records []codes.Record) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(snapshot{Version: SnapshotVersion, Records: records}); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot decodes a snapshot written by WriteSnapshot.
func ReadSnapshot(r io.Reader) ([]codes.Record, error) {
	var snap snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: version %d, want %d", ErrBadSnapshot, snap.Version, SnapshotVersion)
	}
	return snap.Records, nil
}
