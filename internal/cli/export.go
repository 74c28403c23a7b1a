package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write an atomic JSONL snapshot of the index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := openIndex()
			if err != nil {
				return err
			}
			defer idx.Detach()

			if err := idx.WriteSnapshot(output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "index exported to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "index.jsonl", "snapshot file path")

	return cmd
}
