package cli

import (
	"github.com/spf13/cobra"

	"github.com/docforge/traitdex/internal/render"
	"github.com/docforge/traitdex/pkg/types"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <crate>",
		Short: "Show one crate's implementor table in presentation order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := openIndex()
			if err != nil {
				return err
			}
			defer idx.Detach()

			table, err := idx.Get(args[0])
			if err != nil {
				return err
			}

			tables := []types.CrateTable{table}
			if flags.jsonMode {
				return render.TablesJSON(cmd.OutOrStdout(), tables)
			}
			return render.Tables(cmd.OutOrStdout(), tables)
		},
	}
}
