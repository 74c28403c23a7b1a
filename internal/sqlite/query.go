// This file implements the query side of the index: per-crate retrieval,
// crate listing, filtered fetch, and deletion.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/docforge/traitdex/pkg/types"
)

// hydrateImplementor turns one implementors row into an Implementor.
func hydrateImplementor(traitPath, typePath, constraintsJSON string) (types.Implementor, error) {
	im := types.Implementor{TraitPath: traitPath, TypePath: typePath}
	if err := json.Unmarshal([]byte(constraintsJSON), &im.Constraints); err != nil {
		return types.Implementor{}, fmt.Errorf("decoding constraints for %s: %w", typePath, err)
	}
	return im, nil
}

// Get retrieves the registered table for the given crate, rows in ordinal
// (presentation) order. Returns ErrCrateNotFound if the crate is absent.
func (b *Backend) Get(crate string) (types.CrateTable, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.CrateTable{}, types.ErrIndexDetached
	}

	var name string
	err := b.db.QueryRow("SELECT crate_name FROM crates WHERE crate_name = ?", crate).Scan(&name)
	if err == sql.ErrNoRows {
		return types.CrateTable{}, types.ErrCrateNotFound
	}
	if err != nil {
		return types.CrateTable{}, fmt.Errorf("getting crate %s: %w", crate, err)
	}

	rows, err := b.db.Query(
		"SELECT trait_path, type_path, constraints FROM implementors WHERE crate_name = ? ORDER BY ordinal",
		crate,
	)
	if err != nil {
		return types.CrateTable{}, fmt.Errorf("querying implementors for %s: %w", crate, err)
	}
	defer rows.Close()

	table := types.CrateTable{Crate: crate}
	for rows.Next() {
		var traitPath, typePath, constraints string
		if err := rows.Scan(&traitPath, &typePath, &constraints); err != nil {
			return types.CrateTable{}, fmt.Errorf("scanning implementor row: %w", err)
		}
		im, err := hydrateImplementor(traitPath, typePath, constraints)
		if err != nil {
			return types.CrateTable{}, err
		}
		table.Implementors = append(table.Implementors, im)
	}
	if err := rows.Err(); err != nil {
		return types.CrateTable{}, fmt.Errorf("iterating implementors for %s: %w", crate, err)
	}
	return table, nil
}

// Delete removes a crate and its implementor rows.
// Returns ErrCrateNotFound if the crate is absent.
func (b *Backend) Delete(crate string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrIndexDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning delete transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM implementors WHERE crate_name = ?", crate); err != nil {
		return fmt.Errorf("deleting rows for crate %s: %w", crate, err)
	}
	res, err := tx.Exec("DELETE FROM crates WHERE crate_name = ?", crate)
	if err != nil {
		return fmt.Errorf("deleting crate %s: %w", crate, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return types.ErrCrateNotFound
	}
	return tx.Commit()
}

// Crates returns all registered crate names in lexical order.
func (b *Backend) Crates() ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrIndexDetached
	}

	rows, err := b.db.Query("SELECT crate_name FROM crates ORDER BY crate_name")
	if err != nil {
		return nil, fmt.Errorf("listing crates: %w", err)
	}
	defer rows.Close()

	var crates []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning crate row: %w", err)
		}
		crates = append(crates, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating crates: %w", err)
	}
	return crates, nil
}

// Fetch returns implementor rows matching the filter, ordered by crate then
// ordinal. Supported keys: "crate", "trait"; values must be strings. An
// empty filter returns every row.
func (b *Backend) Fetch(filter map[string]any) ([]types.IndexedImplementor, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrIndexDetached
	}

	query := "SELECT crate_name, trait_path, type_path, constraints FROM implementors"
	var (
		clauses []string
		args    []any
	)
	for key, value := range filter {
		s, ok := value.(string)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		switch key {
		case "crate":
			clauses = append(clauses, "crate_name = ?")
		case "trait":
			clauses = append(clauses, "trait_path = ?")
		default:
			return nil, types.ErrInvalidFilter
		}
		args = append(args, s)
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY crate_name, ordinal"

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching implementors: %w", err)
	}
	defer rows.Close()

	var result []types.IndexedImplementor
	for rows.Next() {
		var crate, traitPath, typePath, constraints string
		if err := rows.Scan(&crate, &traitPath, &typePath, &constraints); err != nil {
			return nil, fmt.Errorf("scanning implementor row: %w", err)
		}
		im, err := hydrateImplementor(traitPath, typePath, constraints)
		if err != nil {
			return nil, err
		}
		result = append(result, types.IndexedImplementor{Crate: crate, Implementor: im})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating implementors: %w", err)
	}
	return result, nil
}
