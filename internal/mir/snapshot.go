package mir

import (
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when the snapshot format changes.
const snapshotSchemaVersion uint16 = 1

// Snapshot is the per-function artifact the host compiler exports for this
// tool: the CFG plus the definitely-initialized sets it already computed.
// InitAfter is indexed like Location: per block, per statement index, with
// the last entry covering the terminator.
type Snapshot struct {
	Schema uint16

	Func Func

	InitBefore map[BlockID][]string
	InitAfter  map[BlockID][][]string
}

// LoadSnapshot decodes a function snapshot written by the host compiler.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}
	var snap Snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%s: failed to decode snapshot: %w", path, err)
	}
	if snap.Schema != snapshotSchemaVersion {
		return nil, fmt.Errorf("%s: snapshot schema %d, want %d", path, snap.Schema, snapshotSchemaVersion)
	}
	return &snap, nil
}

// WriteSnapshot encodes a snapshot to path. Exists for the host compiler
// side of the contract and for tests.
func WriteSnapshot(path string, snap *Snapshot) error {
	snap.Schema = snapshotSchemaVersion
	data, err := msgpack.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", path, err)
	}
	return nil
}
