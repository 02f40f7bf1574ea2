package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/casecov/internal/domain"
	m "github.com/mouse-blink/casecov/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View the latest stored coverage run",
		Long:  "View the most recent coverage run from the reports directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.View(cmd.Context(), domain.ViewArgs{Reports: m.Path(reportsOutputDirFlag)})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
