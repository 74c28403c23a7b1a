package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docforge/traitdex/pkg/traitdex"
)

const modulePath = "github.com/docforge/traitdex"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the traitdex version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "traitdex v%s\nmodule: %s\n", traitdex.Version, modulePath)
			return nil
		},
	}
}
