// Package fragments decodes generated implementor data fragments and loads
// them into a registry. One fragment is a self-contained JSON file produced
// by the documentation generator, mapping a crate name to that crate's
// ordered implementor list.
// See docs/ARCHITECTURE.md § Fragments.
package fragments

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/docforge/traitdex/pkg/types"
)

// ErrFragmentEmpty is returned for a syntactically valid payload that carries
// no crate table.
var ErrFragmentEmpty = errors.New("fragment carries no crate table")

// Parse decodes one fragment payload. The wire shape is a JSON object whose
// keys are crate names and whose values are ordered descriptor arrays:
//
//	{"futures": [{"trait": "core::marker::Send",
//	              "type": "futures::done::Done<T, E>",
//	              "constraints": ["T: Send + 'static", "E: Send + 'static"]}]}
//
// Generator output carries one crate per fragment, but the shape permits
// several; multi-crate payloads are returned in lexical crate order so a
// load is deterministic. Every decoded table is validated before return.
func Parse(data []byte) ([]types.CrateTable, error) {
	var payload map[string][]types.Implementor
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decoding fragment: %w", err)
	}
	if len(payload) == 0 {
		return nil, ErrFragmentEmpty
	}

	crates := make([]string, 0, len(payload))
	for crate := range payload {
		crates = append(crates, crate)
	}
	sort.Strings(crates)

	tables := make([]types.CrateTable, 0, len(crates))
	for _, crate := range crates {
		table := types.CrateTable{Crate: crate, Implementors: payload[crate]}
		if err := table.Validate(); err != nil {
			return nil, fmt.Errorf("fragment crate %q: %w", crate, err)
		}
		tables = append(tables, table)
	}
	return tables, nil
}

// ParseFile reads and parses a fragment file.
func ParseFile(path string) ([]types.CrateTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fragment %s: %w", path, err)
	}
	tables, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing fragment %s: %w", path, err)
	}
	return tables, nil
}
