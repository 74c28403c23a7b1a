package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docforge/traitdex/internal/fragments"
	"github.com/docforge/traitdex/pkg/registry"
)

func newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <fragments-dir>",
		Short: "Load generated implementor fragments into the index",
		Long: "Load scans a directory of generated fragment files and registers\n" +
			"each crate's implementor table. Fragments are submitted before the\n" +
			"index sink is installed; the registry buffers them and drains in\n" +
			"file order once the index attaches.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.New()
			loader := fragments.NewLoader(reg, newLogger())

			res, err := loader.LoadDir(args[0])
			if err != nil {
				return err
			}

			idx, err := openIndex()
			if err != nil {
				return err
			}
			defer idx.Detach()

			if err := reg.Initialize(idx); err != nil {
				return fmt.Errorf("registering fragments: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "loaded %d crate table(s), skipped %d\n", res.Loaded, res.Skipped)
			return nil
		},
	}
}
