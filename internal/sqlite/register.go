// This file implements the Register sink operation: transactional,
// last-registered-wins replacement of a crate's implementor rows.
package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/docforge/traitdex/pkg/types"
)

// newUUID generates a UUID v7 string for an implementor row.
func newUUID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Register stores a crate's implementor table. Any previously registered
// rows for the same crate are replaced in the same transaction, so a partial
// replacement is never observable. Row ordinals preserve presentation order.
func (b *Backend) Register(table types.CrateTable) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrIndexDetached
	}
	if err := table.Validate(); err != nil {
		return fmt.Errorf("%w: %s", types.ErrInvalidTable, err)
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning register transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(
		`INSERT INTO crates (crate_name, registered_at) VALUES (?, ?)
		 ON CONFLICT(crate_name) DO UPDATE SET registered_at = excluded.registered_at`,
		table.Crate, now,
	); err != nil {
		return fmt.Errorf("upserting crate %s: %w", table.Crate, err)
	}

	if _, err := tx.Exec("DELETE FROM implementors WHERE crate_name = ?", table.Crate); err != nil {
		return fmt.Errorf("clearing rows for crate %s: %w", table.Crate, err)
	}

	for ordinal, im := range table.Implementors {
		constraints, err := json.Marshal(im.Constraints)
		if err != nil {
			return fmt.Errorf("encoding constraints for %s: %w", im.TypePath, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO implementors
			 (implementor_id, crate_name, ordinal, trait_path, type_path, constraints)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			newUUID(), table.Crate, ordinal, im.TraitPath, im.TypePath, string(constraints),
		); err != nil {
			return fmt.Errorf("inserting implementor %s: %w", im.TypePath, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing register transaction: %w", err)
	}
	return nil
}
