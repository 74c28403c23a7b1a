// This file implements fragment discovery and loading.
// A malformed fragment is skipped with a log line and never aborts the
// directory load; other fragments' delivery is independent.
package fragments

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/docforge/traitdex/pkg/registry"
)

// fragmentExt is the filename extension the generator gives fragment files.
const fragmentExt = ".json"

// Scan returns the fragment files directly under dir, in lexical name order.
// Subdirectories and non-fragment files are ignored.
func Scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning fragment dir %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fragmentExt) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// Loader submits decoded fragment tables to a registry.
type Loader struct {
	registry *registry.Registry
	log      zerolog.Logger
}

// NewLoader returns a Loader that submits to reg and reports skips on log.
func NewLoader(reg *registry.Registry, log zerolog.Logger) *Loader {
	return &Loader{registry: reg, log: log}
}

// LoadResult summarizes one directory load.
type LoadResult struct {
	Loaded  int // tables submitted and accepted
	Skipped int // fragments dropped: malformed payload or rejected delivery
}

// LoadDir scans dir and submits every decoded crate table to the registry in
// file order. Malformed fragments and failed deliveries are logged and
// counted, never fatal; the returned error covers only an unreadable
// directory.
func (l *Loader) LoadDir(dir string) (LoadResult, error) {
	var res LoadResult

	paths, err := Scan(dir)
	if err != nil {
		return res, err
	}

	for _, path := range paths {
		tables, err := ParseFile(path)
		if err != nil {
			l.log.Warn().Str("fragment", path).Err(err).Msg("skipping malformed fragment")
			res.Skipped++
			continue
		}
		for _, table := range tables {
			if err := l.registry.Submit(table); err != nil {
				l.log.Warn().Str("crate", table.Crate).Err(err).Msg("fragment delivery rejected")
				res.Skipped++
				continue
			}
			l.log.Debug().Str("crate", table.Crate).Int("implementors", len(table.Implementors)).Msg("fragment submitted")
			res.Loaded++
		}
	}
	return res, nil
}
