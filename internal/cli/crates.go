package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newCratesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "crates",
		Short: "List registered crates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := openIndex()
			if err != nil {
				return err
			}
			defer idx.Detach()

			crates, err := idx.Crates()
			if err != nil {
				return err
			}

			if flags.jsonMode {
				if crates == nil {
					crates = []string{}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(crates)
			}
			for _, crate := range crates {
				fmt.Fprintln(cmd.OutOrStdout(), crate)
			}
			return nil
		},
	}
}
