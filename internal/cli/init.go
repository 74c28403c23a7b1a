package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize traitdex configuration and index storage",
		Long: "Init creates the configuration directory with a default config.yaml\n" +
			"and an empty index database in the data directory.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := openIndex()
			if err != nil {
				return err
			}
			if err := idx.Detach(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "traitdex initialized")
			return nil
		},
	}
}
