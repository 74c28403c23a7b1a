// Package render produces the page-level views of registered implementor
// data: per-crate sections, flat row listings, and machine-readable JSON.
// See docs/ARCHITECTURE.md § Rendering.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/docforge/traitdex/pkg/types"
)

// Tables writes one section per crate table, implementors in presentation
// order:
//
//	futures (3 implementors)
//	  impl core::marker::Send for futures::done::Done<T, E> where ...
func Tables(w io.Writer, tables []types.CrateTable) error {
	for i, table := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		noun := "implementors"
		if len(table.Implementors) == 1 {
			noun = "implementor"
		}
		if _, err := fmt.Fprintf(w, "%s (%d %s)\n", table.Crate, len(table.Implementors), noun); err != nil {
			return err
		}
		for _, im := range table.Implementors {
			if _, err := fmt.Fprintf(w, "  %s\n", im.Display()); err != nil {
				return err
			}
		}
	}
	return nil
}

// TablesJSON writes the tables as a JSON object keyed by crate name, the
// same shape fragments use on the wire.
func TablesJSON(w io.Writer, tables []types.CrateTable) error {
	payload := make(map[string][]types.Implementor, len(tables))
	for _, table := range tables {
		implementors := table.Implementors
		if implementors == nil {
			implementors = []types.Implementor{}
		}
		payload[table.Crate] = implementors
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

// Rows writes a flat row listing in a two-column table: crate, impl line.
func Rows(w io.Writer, rows []types.IndexedImplementor) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "CRATE\tIMPLEMENTATION"); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", row.Crate, row.Implementor.Display()); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// rowJSON is the machine-readable shape of one indexed implementor.
type rowJSON struct {
	Crate       string   `json:"crate"`
	TraitPath   string   `json:"trait"`
	TypePath    string   `json:"type"`
	Constraints []string `json:"constraints,omitempty"`
}

// RowsJSON writes a flat row listing as a JSON array.
func RowsJSON(w io.Writer, rows []types.IndexedImplementor) error {
	out := make([]rowJSON, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowJSON{
			Crate:       row.Crate,
			TraitPath:   row.Implementor.TraitPath,
			TypePath:    row.Implementor.TypePath,
			Constraints: row.Implementor.Constraints,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
