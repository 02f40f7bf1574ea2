// Package cmd provides the root command and CLI setup for casecov.
package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/casecov/internal/adapter"
	"github.com/mouse-blink/casecov/internal/controller"
	"github.com/mouse-blink/casecov/internal/domain"
	m "github.com/mouse-blink/casecov/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var caseExtractor adapter.CaseExtractor
var reportStore adapter.ReportStore
var analyzer domain.Analyzer
var workflow domain.Workflow
var ui controller.UI

var logLevel = new(slog.LevelVar)
var settings = adapter.DefaultConfig()

func init() {
	logLevel.Set(slog.LevelWarn)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	caseExtractor = adapter.NewYAMLCaseExtractor(fsAdapter)
	reportStore = adapter.NewReportStore()
	analyzer = domain.NewAnalyzer()
	workflow = domain.NewWorkflow(
		caseExtractor,
		reportStore,
		ui,
		analyzer,
		logger,
	)
}

var configFlag string
var reportsOutputDirFlag string
var verboseFlag bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "casecov",
		Short: "Test case coverage checker",
		Long: `Casecov checks whether the test cases declared for a member cover the
whole input space of its parameters, and reports the partitions no case
exercises.

Case files end in .cases.yaml and path patterns follow the Go style:
  - ./...          recursively scan current directory
  - ./tests/...    recursively scan tests directory
  - ./a ./b        scan multiple directories`,
		SilenceUsage:      true,
		PersistentPreRunE: loadSettings,
	}
	cmd.PersistentFlags().StringVarP(&configFlag, "config", "c", adapter.DefaultConfigFile, "configuration file")
	cmd.PersistentFlags().StringVarP(&reportsOutputDirFlag, "reports", "r", "", "directory runs are stored in (default from config)")
	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log progress to stderr")

	return cmd
}

// loadSettings reads the configuration file and fills in every flag the
// user left unset.
func loadSettings(cmd *cobra.Command, _ []string) error {
	cfg, err := adapter.LoadConfig(m.Path(configFlag), cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}

	settings = cfg

	if !cmd.Flags().Changed("reports") {
		reportsOutputDirFlag = cfg.Reports
	}

	if verboseFlag {
		logLevel.Set(slog.LevelDebug)
	}

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)

	stop()

	if errors.Is(err, domain.ErrIncompleteCoverage) {
		os.Exit(2)
	}

	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
