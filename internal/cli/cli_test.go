package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCmd executes the root command with args and returns captured stdout.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// testDirs returns fresh --config-dir and --data-dir arguments.
func testDirs(t *testing.T) []string {
	t.Helper()
	base := t.TempDir()
	return []string{
		"--config-dir", filepath.Join(base, "conf"),
		"--data-dir", filepath.Join(base, "data"),
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := runCmd(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "traitdex v")
	assert.Contains(t, out, "module: github.com/docforge/traitdex")
}

func TestInitCreatesConfigAndIndex(t *testing.T) {
	dirs := testDirs(t)
	out, err := runCmd(t, append([]string{"init"}, dirs...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "traitdex initialized")

	assert.FileExists(t, filepath.Join(dirs[1], "config.yaml"))
	assert.FileExists(t, filepath.Join(dirs[3], "traitdex.db"))
}

func TestLoadAndQueryFlow(t *testing.T) {
	dirs := testDirs(t)

	fragDir := t.TempDir()
	futures := `{"futures": [
		{"trait": "core::marker::Send", "type": "futures::done::Done<T, E>",
		 "constraints": ["T: Send + 'static", "E: Send + 'static"]},
		{"trait": "core::marker::Send", "type": "futures::promise::Promise<T>",
		 "constraints": ["T: Send + 'static"]}
	]}`
	bytesCrate := `{"bytes": [
		{"trait": "core::clone::Clone", "type": "bytes::Bytes"}
	]}`
	require.NoError(t, os.WriteFile(filepath.Join(fragDir, "futures.json"), []byte(futures), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(fragDir, "bytes.json"), []byte(bytesCrate), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(fragDir, "broken.json"), []byte(`{`), 0o644))

	out, err := runCmd(t, append([]string{"load", fragDir}, dirs...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "loaded 2 crate table(s), skipped 1")

	out, err = runCmd(t, append([]string{"crates"}, dirs...)...)
	require.NoError(t, err)
	assert.Equal(t, "bytes\nfutures\n", out)

	out, err = runCmd(t, append([]string{"crates", "--json"}, dirs...)...)
	require.NoError(t, err)
	var crates []string
	require.NoError(t, json.Unmarshal([]byte(out), &crates))
	assert.Equal(t, []string{"bytes", "futures"}, crates)

	out, err = runCmd(t, append([]string{"show", "futures"}, dirs...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "futures (2 implementors)")
	assert.Contains(t, out, "impl core::marker::Send for futures::done::Done<T, E> where T: Send + 'static, E: Send + 'static")

	out, err = runCmd(t, append([]string{"implementors", "--trait", "core::marker::Send"}, dirs...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "futures::done::Done<T, E>")
	assert.Contains(t, out, "futures::promise::Promise<T>")
	assert.NotContains(t, out, "bytes::Bytes")

	snapshot := filepath.Join(t.TempDir(), "index.jsonl")
	out, err = runCmd(t, append([]string{"export", "--output", snapshot}, dirs...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "index exported to")
	assert.FileExists(t, snapshot)
}

func TestLoadIsIdempotentPerCrate(t *testing.T) {
	dirs := testDirs(t)

	fragDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(fragDir, "alpha.json"),
		[]byte(`{"alpha": [{"trait": "core::marker::Send", "type": "alpha::One"}]}`), 0o644))

	_, err := runCmd(t, append([]string{"load", fragDir}, dirs...)...)
	require.NoError(t, err)

	// Re-generating the fragment and reloading replaces, never duplicates.
	require.NoError(t, os.WriteFile(filepath.Join(fragDir, "alpha.json"),
		[]byte(`{"alpha": [{"trait": "core::marker::Send", "type": "alpha::Two"}]}`), 0o644))
	_, err = runCmd(t, append([]string{"load", fragDir}, dirs...)...)
	require.NoError(t, err)

	out, err := runCmd(t, append([]string{"show", "alpha"}, dirs...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "alpha (1 implementor)")
	assert.Contains(t, out, "alpha::Two")
	assert.NotContains(t, out, "alpha::One")
}

func TestShowUnknownCrate(t *testing.T) {
	dirs := testDirs(t)
	_, err := runCmd(t, append([]string{"init"}, dirs...)...)
	require.NoError(t, err)

	_, err = runCmd(t, append([]string{"show", "tokio"}, dirs...)...)
	assert.Error(t, err)
}

func TestLoadMissingFragmentDir(t *testing.T) {
	dirs := testDirs(t)
	_, err := runCmd(t, append([]string{"load", filepath.Join(t.TempDir(), "absent")}, dirs...)...)
	assert.Error(t, err)
}
