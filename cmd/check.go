package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/casecov/internal/domain"
	m "github.com/mouse-blink/casecov/internal/model"
)

var checkParallelFlag int
var checkFailOnMissingFlag bool
var checkExcludeFlags []string
var checkIgnoreFlags []string

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

const checkLongDescription = `Analyze every member declared in the case files and report the
partitions of its parameters no case covers, together with malformed
case declarations. The run is stored in the reports directory so it
can be displayed again with "casecov view".`

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check test case coverage",
		Long:  checkLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			threads := settings.Parallel
			if cmd.Flags().Changed("parallel") {
				threads = checkParallelFlag
			}

			exclude := append(append([]string{}, settings.Exclude...), checkExcludeFlags...)

			return workflow.Check(cmd.Context(), domain.CheckArgs{
				ListArgs: domain.ListArgs{
					Paths:   parsePaths(args),
					Exclude: exclude,
				},
				Reports:       m.Path(reportsOutputDirFlag),
				Threads:       threads,
				FailOnMissing: checkFailOnMissingFlag || settings.FailOnMissing,
				Ignore:        append(append([]string{}, settings.Ignore...), checkIgnoreFlags...),
			})
		},
	}
	cmd.Flags().IntVarP(&checkParallelFlag, "parallel", "p", 1, "number of members analyzed in parallel")
	cmd.Flags().BoolVar(&checkFailOnMissingFlag, "fail-on-missing", false, "exit with an error when coverage is incomplete")
	cmd.Flags().StringArrayVarP(&checkExcludeFlags, "exclude", "x", nil, "exclude files matching regex (can be repeated)")
	cmd.Flags().StringArrayVar(&checkIgnoreFlags, "ignore", nil, "silence a diagnostic code, or all (can be repeated)")

	return cmd
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
