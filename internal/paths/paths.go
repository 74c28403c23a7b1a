// Package paths resolves configuration and data directory locations for the
// traitdex CLI.
package paths

import (
	"os"
	"path/filepath"
)

// CWD-relative directory names used when no override is active.
const (
	DefaultConfigDirName = ".traitdex"
	DefaultDataDirName   = ".traitdex-index"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "TRAITDEX_CONFIG_DIR"
	EnvDataDir   = "TRAITDEX_DATA_DIR"
)

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > TRAITDEX_CONFIG_DIR env > $(CWD)/.traitdex.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return cwdJoin(DefaultConfigDirName)
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > config.yaml value > TRAITDEX_DATA_DIR env > $(CWD)/.traitdex-index.
func ResolveDataDir(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	return cwdJoin(DefaultDataDirName)
}

func cwdJoin(name string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, name), nil
}
