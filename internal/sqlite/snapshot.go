// This file implements JSONL snapshot export with atomic persistence
// (temp file, fsync, rename), one line per registered crate.
package sqlite

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/docforge/traitdex/pkg/types"
)

// snapshotRecord is one line of an index snapshot.
type snapshotRecord struct {
	Crate        string              `json:"crate"`
	RegisteredAt string              `json:"registered_at"`
	Implementors []types.Implementor `json:"implementors"`
}

// WriteSnapshot writes the full index to path as JSONL, one crate per line
// in lexical crate order, implementors in presentation order. The write is
// atomic: a temp file in the destination directory is synced and renamed
// over the target, so readers never observe a partial snapshot.
func (b *Backend) WriteSnapshot(path string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrIndexDetached
	}

	records, err := b.snapshotRecords()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		line, err := json.Marshal(rec)
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("encoding snapshot record: %w", err)
		}
		if _, err := w.Write(append(line, '\n')); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing snapshot record: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing snapshot: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming snapshot into place: %w", err)
	}
	return nil
}

// snapshotRecords reads every crate and its rows. Caller holds the lock.
func (b *Backend) snapshotRecords() ([]snapshotRecord, error) {
	crateRows, err := b.db.Query("SELECT crate_name, registered_at FROM crates ORDER BY crate_name")
	if err != nil {
		return nil, fmt.Errorf("listing crates for snapshot: %w", err)
	}
	defer crateRows.Close()

	var records []snapshotRecord
	for crateRows.Next() {
		var rec snapshotRecord
		if err := crateRows.Scan(&rec.Crate, &rec.RegisteredAt); err != nil {
			return nil, fmt.Errorf("scanning crate row: %w", err)
		}
		records = append(records, rec)
	}
	if err := crateRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating crates for snapshot: %w", err)
	}

	for i := range records {
		rows, err := b.db.Query(
			"SELECT trait_path, type_path, constraints FROM implementors WHERE crate_name = ? ORDER BY ordinal",
			records[i].Crate,
		)
		if err != nil {
			return nil, fmt.Errorf("querying rows for %s: %w", records[i].Crate, err)
		}
		for rows.Next() {
			var traitPath, typePath, constraints string
			if err := rows.Scan(&traitPath, &typePath, &constraints); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scanning implementor row: %w", err)
			}
			im, err := hydrateImplementor(traitPath, typePath, constraints)
			if err != nil {
				rows.Close()
				return nil, err
			}
			records[i].Implementors = append(records[i].Implementors, im)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("iterating rows for %s: %w", records[i].Crate, err)
		}
		rows.Close()
	}
	return records, nil
}
