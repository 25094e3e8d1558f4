package core

import (
	"encoding/json"
	"fmt"

	"opsdesk/internal/infra/persistence/memory"
)

// EncodeSnapshot serialises snapshot as the persisted JSON document.
func EncodeSnapshot(snapshot memory.Snapshot) ([]byte, error) {
	if snapshot.Version == 0 {
		snapshot.Version = memory.SnapshotVersion
	}
	return json.Marshal(snapshot)
}

// DecodeSnapshot parses a persisted document. Documents written by a newer
// schema are rejected; a missing version is read as version 1.
func DecodeSnapshot(payload []byte) (memory.Snapshot, error) {
	var snapshot memory.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return memory.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if snapshot.Version > memory.SnapshotVersion {
		return memory.Snapshot{}, fmt.Errorf("snapshot version %d is newer than supported %d", snapshot.Version, memory.SnapshotVersion)
	}
	return snapshot, nil
}
