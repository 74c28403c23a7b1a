package fragments

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docforge/traitdex/pkg/registry"
	"github.com/docforge/traitdex/pkg/types"
)

// collectSink records crates in delivery order.
type collectSink struct {
	order []string
}

func (s *collectSink) Register(table types.CrateTable) error {
	s.order = append(s.order, table.Crate)
	return nil
}

func writeFragment(t *testing.T, dir, name, payload string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(payload), 0o644))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, dir, "futures.json", `{"futures": []}`)
	writeFragment(t, dir, "alpha.json", `{"alpha": []}`)
	writeFragment(t, dir, "notes.txt", "not a fragment")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0o755))

	paths, err := Scan(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "alpha.json"),
		filepath.Join(dir, "futures.json"),
	}, paths)
}

func TestScanMissingDir(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestLoadDirBeforeInitializeQueues(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, dir, "alpha.json", `{"alpha": []}`)
	writeFragment(t, dir, "gamma.json", `{"gamma": []}`)

	reg := registry.New()
	loader := NewLoader(reg, zerolog.Nop())

	res, err := loader.LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, LoadResult{Loaded: 2}, res)
	assert.Equal(t, 2, reg.Pending())

	// The drain delivers in file order.
	sink := &collectSink{}
	require.NoError(t, reg.Initialize(sink))
	assert.Equal(t, []string{"alpha", "gamma"}, sink.order)
}

func TestLoadDirAfterInitializeDeliversDirectly(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, dir, "beta.json", `{"beta": []}`)

	reg := registry.New()
	sink := &collectSink{}
	require.NoError(t, reg.Initialize(sink))

	res, err := NewLoader(reg, zerolog.Nop()).LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, LoadResult{Loaded: 1}, res)
	assert.Equal(t, []string{"beta"}, sink.order)
	assert.Equal(t, 0, reg.Pending())
}

func TestLoadDirSkipsMalformedFragments(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, dir, "alpha.json", `{"alpha": []}`)
	writeFragment(t, dir, "broken.json", `{"broken": [`)
	writeFragment(t, dir, "empty.json", `{}`)
	writeFragment(t, dir, "gamma.json", `{"gamma": []}`)

	reg := registry.New()
	sink := &collectSink{}
	require.NoError(t, reg.Initialize(sink))

	res, err := NewLoader(reg, zerolog.Nop()).LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, LoadResult{Loaded: 2, Skipped: 2}, res)
	assert.Equal(t, []string{"alpha", "gamma"}, sink.order)
}

func TestLoadDirCountsRejectedDeliveries(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, dir, "alpha.json", `{"alpha": []}`)
	writeFragment(t, dir, "beta.json", `{"beta": []}`)

	reg := registry.New()
	require.NoError(t, reg.Initialize(registry.SinkFunc(func(table types.CrateTable) error {
		if table.Crate == "alpha" {
			return assert.AnError
		}
		return nil
	})))

	res, err := NewLoader(reg, zerolog.Nop()).LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, LoadResult{Loaded: 1, Skipped: 1}, res)
}

func TestLoadDirMultiCratePayload(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, dir, "workspace.json", `{"futures": [], "futures-io": []}`)

	reg := registry.New()
	sink := &collectSink{}
	require.NoError(t, reg.Initialize(sink))

	res, err := NewLoader(reg, zerolog.Nop()).LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, LoadResult{Loaded: 2}, res)
	assert.Equal(t, []string{"futures", "futures-io"}, sink.order)
}
