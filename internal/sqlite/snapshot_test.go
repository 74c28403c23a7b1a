package sqlite

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docforge/traitdex/pkg/types"
)

func TestWriteSnapshot(t *testing.T) {
	b := newAttachedBackend(t)
	seedTwoCrates(t, b)

	path := filepath.Join(t.TempDir(), "index.jsonl")
	require.NoError(t, b.WriteSnapshot(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var records []snapshotRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec snapshotRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, records, 2)
	assert.Equal(t, "bytes", records[0].Crate, "snapshot lines are in lexical crate order")
	assert.Equal(t, "futures", records[1].Crate)
	assert.Len(t, records[0].Implementors, 2)
	assert.Equal(t, futuresTable().Implementors, records[1].Implementors)
	assert.NotEmpty(t, records[0].RegisteredAt)
}

func TestWriteSnapshotOverwritesAtomically(t *testing.T) {
	b := newAttachedBackend(t)
	require.NoError(t, b.Register(types.CrateTable{Crate: "alpha"}))

	dir := t.TempDir()
	path := filepath.Join(dir, "index.jsonl")
	require.NoError(t, b.WriteSnapshot(path))
	require.NoError(t, b.WriteSnapshot(path), "rename over an existing snapshot succeeds")

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "index.jsonl", entries[0].Name())
}

func TestWriteSnapshotDetached(t *testing.T) {
	b := NewBackend()
	err := b.WriteSnapshot(filepath.Join(t.TempDir(), "index.jsonl"))
	assert.ErrorIs(t, err, types.ErrIndexDetached)
}
