package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/boxsdk/pkg/box"
)

const modulePath = "github.com/mesh-intelligence/boxsdk"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the boxctl version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "boxctl v%s\nmodule: %s\n", box.Version, modulePath)
			return nil
		},
	}
}
