// Package cli implements the traitdex command-line interface.
// See docs/ARCHITECTURE.md § CLI.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/docforge/traitdex/internal/paths"
	"github.com/docforge/traitdex/internal/sqlite"
	"github.com/docforge/traitdex/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool
}

var flags rootFlags

// NewRootCmd creates the top-level "traitdex" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "traitdex",
		Short: "An implementor index for generated crate documentation",
		Long: "Traitdex loads the implementor data fragments a documentation\n" +
			"generator emits per crate, registers them into a queryable index,\n" +
			"and renders merged implementor listings.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: .traitdex)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: .traitdex-index)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVar(&flags.verbose, "verbose", false, "enable debug logging")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newLoadCmd())
	root.AddCommand(newCratesCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newImplementorsCmd())
	root.AddCommand(newExportCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitUserError)
	}
}

// newLogger builds the CLI logger. Debug level only under --verbose; the
// default stays at warn so normal output is not interleaved with log lines.
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if flags.verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// openIndex resolves directories, loads config.yaml, and attaches the
// sqlite backend. The caller detaches.
func openIndex() (*sqlite.Backend, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return nil, err
	}
	dataDir, err := paths.ResolveDataDir(flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, fmt.Errorf("resolving data dir: %w", err)
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(types.Config{
		Backend: v.GetString(cfgKeyBackend),
		DataDir: dataDir,
	}); err != nil {
		return nil, fmt.Errorf("attaching index: %w", err)
	}
	return backend, nil
}
