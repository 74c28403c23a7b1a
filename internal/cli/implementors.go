package cli

import (
	"github.com/spf13/cobra"

	"github.com/docforge/traitdex/internal/render"
)

func newImplementorsCmd() *cobra.Command {
	var (
		crateFilter string
		traitFilter string
	)

	cmd := &cobra.Command{
		Use:   "implementors",
		Short: "List registered implementors, optionally filtered by crate or trait",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := openIndex()
			if err != nil {
				return err
			}
			defer idx.Detach()

			filter := map[string]any{}
			if crateFilter != "" {
				filter["crate"] = crateFilter
			}
			if traitFilter != "" {
				filter["trait"] = traitFilter
			}

			rows, err := idx.Fetch(filter)
			if err != nil {
				return err
			}

			if flags.jsonMode {
				return render.RowsJSON(cmd.OutOrStdout(), rows)
			}
			return render.Rows(cmd.OutOrStdout(), rows)
		},
	}

	cmd.Flags().StringVar(&crateFilter, "crate", "", "only implementors registered under this crate")
	cmd.Flags().StringVar(&traitFilter, "trait", "", "only implementors of this trait path")

	return cmd
}
