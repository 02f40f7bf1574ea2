package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/casecov/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()
var listExcludeFlags []string

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List declared members and their case counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.List(cmd.Context(), domain.ListArgs{
				Paths:   parsePaths(args),
				Exclude: append(append([]string{}, settings.Exclude...), listExcludeFlags...),
			})
		},
	}
	cmd.Flags().StringArrayVarP(&listExcludeFlags, "exclude", "x", nil, "exclude files matching regex (can be repeated)")

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
