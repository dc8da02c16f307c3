package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/gregohare/finout-top-costs/internal/application/usecase"
	"github.com/gregohare/finout-top-costs/internal/shared/types"
	"github.com/gregohare/finout-top-costs/pkg/version"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd        *cobra.Command
	topCostUseCase *usecase.TopCostUseCase
	version        string
}

// NewCLIApp creates a new CLI application.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:     "finout-top-costs",
		Short:   "Summarize the top cost contributors of a Finout view",
		Version: formattedVersion,
		RunE:    app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "Finout Top Costs version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().String("view-id", "", "Finout view ID to query (required for the finout source)")
	rootCmd.PersistentFlags().String("source", "", "Cost source: finout or aws (default finout)")
	rootCmd.PersistentFlags().String("start-date", "", "Start date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().String("end-date", "", "End date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().Bool("omit-dates", false, "Omit the date filter from the query")
	rootCmd.PersistentFlags().String("group-by", "", "Grouping dimension for the view (default service)")
	rootCmd.PersistentFlags().Int("top-n", 0, "Number of top cost items to return (default 5)")
	rootCmd.PersistentFlags().Bool("include-total", false, "Include the totals block in the summary")
	rootCmd.PersistentFlags().String("push-url", "", "URL to push the summary payload to")
	rootCmd.PersistentFlags().String("account-id", "", "Finout account ID used in the filtered report URL")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "AWS profile to use with the aws source")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Base name for exported report files (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", nil, "Report types to export: csv, json, pdf")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save report files (default: current directory)")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct. Flags the
// user did not pass stay at their zero value so the config file can fill
// them; documented defaults are resolved later in the use case.
func (app *CLIApp) parseArgs() *types.CLIArgs {
	flags := app.rootCmd.Flags()

	configFile, _ := flags.GetString("config-file")
	viewID, _ := flags.GetString("view-id")
	source, _ := flags.GetString("source")
	startDate, _ := flags.GetString("start-date")
	endDate, _ := flags.GetString("end-date")
	omitDates, _ := flags.GetBool("omit-dates")
	groupBy, _ := flags.GetString("group-by")
	includeTotal, _ := flags.GetBool("include-total")
	pushURL, _ := flags.GetString("push-url")
	accountID, _ := flags.GetString("account-id")
	profile, _ := flags.GetString("profile")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")

	var topNPtr *int
	if flags.Changed("top-n") {
		topN, _ := flags.GetInt("top-n")
		topNPtr = &topN
	}

	return &types.CLIArgs{
		ConfigFile:   configFile,
		Source:       source,
		ViewID:       viewID,
		StartDate:    startDate,
		EndDate:      endDate,
		OmitDates:    omitDates,
		GroupBy:      groupBy,
		TopN:         topNPtr,
		IncludeTotal: includeTotal,
		PushURL:      pushURL,
		AccountID:    accountID,
		Profile:      profile,
		ReportName:   reportName,
		ReportType:   reportType,
		Dir:          dir,
	}
}

// runCommand is the main entry point for the CLI command.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	displayWelcomeBanner(app.version)

	go version.CheckLatestVersion(app.version)

	cliArgs := app.parseArgs()

	ctx := context.Background()
	return app.topCostUseCase.Run(ctx, cliArgs)
}

// SetTopCostUseCase sets the use case for the CLI app.
func (app *CLIApp) SetTopCostUseCase(useCase *usecase.TopCostUseCase) {
	app.topCostUseCase = useCase
}
