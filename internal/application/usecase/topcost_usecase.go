package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gregohare/finout-top-costs/internal/domain/entity"
	"github.com/gregohare/finout-top-costs/internal/domain/repository"
	"github.com/gregohare/finout-top-costs/internal/domain/summary"
	"github.com/gregohare/finout-top-costs/internal/shared/types"
)

const (
	SourceFinout = "finout"
	SourceAWS    = "aws"

	dateLayout = "2006-01-02"

	defaultTopN        = 5
	defaultGroupBy     = "service"
	defaultExtractedBy = "finout-top-costs"
)

// SourceFactory builds the cost source selected on the command line.
type SourceFactory func(source string, creds types.Credentials, profile string) (repository.CostSourceRepository, error)

// TopCostUseCase runs the single-pass pipeline: fetch, summarize, render,
// export, push.
type TopCostUseCase struct {
	newSource  SourceFactory
	pushRepo   repository.PushRepository
	exportRepo repository.ExportRepository
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface
}

// NewTopCostUseCase creates a new top-cost use case.
func NewTopCostUseCase(
	newSource SourceFactory,
	pushRepo repository.PushRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *TopCostUseCase {
	return &TopCostUseCase{
		newSource:  newSource,
		pushRepo:   pushRepo,
		exportRepo: exportRepo,
		configRepo: configRepo,
		console:    console,
	}
}

// Run executes the pipeline for one invocation. Any error is terminal: there
// is only one row set to process, so there is no partial-success mode.
func (uc *TopCostUseCase) Run(ctx context.Context, args *types.CLIArgs) error {
	if args.ConfigFile != "" {
		config, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return err
		}
		mergeConfig(args, config)
	}
	applyDefaults(args)

	dates, err := uc.validateArgs(args)
	if err != nil {
		return err
	}

	creds := uc.configRepo.LoadCredentials()
	if args.Source == SourceFinout && !creds.Complete() {
		return types.ErrMissingCredentials
	}

	source, err := uc.newSource(args.Source, creds, args.Profile)
	if err != nil {
		return err
	}

	status := uc.console.Status(fmt.Sprintf("Querying %s for view costs...", source.Name()))
	costs, err := source.QueryViewCosts(ctx, entity.CostQuery{
		ViewID:  args.ViewID,
		GroupBy: args.GroupBy,
		Dates:   dates,
	})
	status.Stop()
	if err != nil {
		return err
	}

	if costs.SkippedItems > 0 {
		uc.console.LogWarning("Skipped %d unparsable items from the cost source", costs.SkippedItems)
	}

	result, err := summary.Summarize(costs, *args.TopN, args.IncludeTotal)
	if err != nil {
		return err
	}
	if args.IncludeTotal && !result.HasTotalRow {
		uc.console.LogWarning("%v; the full view total will be omitted", types.ErrMissingTotalRow)
	}
	if len(result.TopCosts) == 0 {
		uc.console.LogWarning("View returned no cost rows")
	}

	payload := uc.buildPayload(result, args, source.Name(), creds)

	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding summary payload: %w", err)
	}
	uc.console.Println(string(encoded))

	uc.console.DisplayTopCosts(topCostLines(result), source.Name())

	uc.printReportLink(args, creds, result, dates)

	if args.ReportName != "" {
		if err := uc.exportReports(payload, args); err != nil {
			return err
		}
	}

	if args.PushURL != "" {
		if err := uc.push(ctx, payload, args.PushURL); err != nil {
			return err
		}
	}

	return nil
}

// validateArgs applies the argument contract and parses the date range.
// A nil range means the date filter is omitted from the query.
func (uc *TopCostUseCase) validateArgs(args *types.CLIArgs) (*entity.DateRange, error) {
	if *args.TopN < 1 {
		return nil, fmt.Errorf("%w (got %d)", types.ErrInvalidTopN, *args.TopN)
	}

	switch args.Source {
	case SourceFinout:
		if args.ViewID == "" {
			return nil, types.ErrMissingViewID
		}
	case SourceAWS:
	default:
		return nil, fmt.Errorf("%w: %q (expected %q or %q)", types.ErrUnknownSource, args.Source, SourceFinout, SourceAWS)
	}

	for _, reportType := range args.ReportType {
		switch reportType {
		case "csv", "json", "pdf":
		default:
			return nil, fmt.Errorf("invalid report type %q (expected csv, json or pdf)", reportType)
		}
	}

	if args.OmitDates {
		if args.StartDate != "" || args.EndDate != "" {
			return nil, types.ErrConflictingDateFlags
		}
		return nil, nil
	}

	if args.StartDate == "" || args.EndDate == "" {
		return nil, types.ErrMissingDateRange
	}

	start, err := time.ParseInLocation(dateLayout, args.StartDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid --start-date %q: expected YYYY-MM-DD", args.StartDate)
	}
	end, err := time.ParseInLocation(dateLayout, args.EndDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid --end-date %q: expected YYYY-MM-DD", args.EndDate)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("--end-date %s is before --start-date %s", args.EndDate, args.StartDate)
	}

	return &entity.DateRange{Start: start, End: end}, nil
}

// mergeConfig fills args the user left unset from the config file. Flags the
// user actually passed always win; the CLI layer leaves unchanged flags at
// their zero value so the two are distinguishable here.
func mergeConfig(args *types.CLIArgs, config *types.Config) {
	if args.ViewID == "" {
		args.ViewID = config.ViewID
	}
	if args.Source == "" {
		args.Source = config.Source
	}
	if args.GroupBy == "" {
		args.GroupBy = config.GroupBy
	}
	if args.TopN == nil && config.TopN != 0 {
		topN := config.TopN
		args.TopN = &topN
	}
	if !args.IncludeTotal {
		args.IncludeTotal = config.IncludeTotal
	}
	if args.PushURL == "" {
		args.PushURL = config.PushURL
	}
	if args.AccountID == "" {
		args.AccountID = config.AccountID
	}
	if args.Profile == "" {
		args.Profile = config.Profile
	}
	if args.ReportName == "" {
		args.ReportName = config.ReportName
	}
	if len(args.ReportType) == 0 {
		args.ReportType = config.ReportType
	}
	if args.Dir == "" {
		args.Dir = config.Dir
	}
}

// applyDefaults resolves the documented flag defaults after the config file
// has had its chance.
func applyDefaults(args *types.CLIArgs) {
	if args.Source == "" {
		args.Source = SourceFinout
	}
	if args.GroupBy == "" {
		args.GroupBy = defaultGroupBy
	}
	if args.TopN == nil {
		topN := defaultTopN
		args.TopN = &topN
	}
}

// buildPayload assembles the output document in the shape downstream
// consumers expect.
func (uc *TopCostUseCase) buildPayload(result entity.Summary, args *types.CLIArgs, sourceName string, creds types.Credentials) entity.PushPayload {
	reportDate := args.EndDate
	if reportDate == "" {
		reportDate = "N/A"
	}

	extractedBy := creds.ExtractedBy
	if extractedBy == "" {
		extractedBy = defaultExtractedBy
	}

	return entity.PushPayload{
		Action:     "push_top_costs",
		ReportDate: reportDate,
		Source:     sourceName,
		TopCosts:   result.TopCosts,
		Total:      result.Totals,
		Metadata: entity.Metadata{
			Currency:    "USD",
			ExtractedBy: extractedBy,
			ReportType:  "cli_summary",
		},
	}
}

func topCostLines(result entity.Summary) []types.TopCostLine {
	lines := make([]types.TopCostLine, 0, len(result.TopCosts))
	for _, row := range result.TopCosts {
		lines = append(lines, types.TopCostLine{
			Label:   row.Service,
			Amount:  row.AmountUSD,
			Percent: row.PercentageOfTotal,
		})
	}
	return lines
}

// printReportLink renders the filtered deep link into the Finout UI. Without
// an account ID there is nothing to link to, so the step is skipped with a
// notice. The AWS source has no Finout view to link into.
func (uc *TopCostUseCase) printReportLink(args *types.CLIArgs, creds types.Credentials, result entity.Summary, dates *entity.DateRange) {
	if args.Source != SourceFinout {
		return
	}

	accountID := args.AccountID
	if accountID == "" {
		accountID = creds.AccountID
	}
	if accountID == "" {
		uc.console.LogInfo("No account ID configured; skipping filtered report URL")
		return
	}

	link, err := summary.BuildReportLink(accountID, args.ViewID, args.GroupBy, result.TopRows, dates)
	if err != nil {
		uc.console.LogWarning("Could not build report URL: %v", err)
		return
	}

	uc.console.LogInfo("Filtered report URL:")
	uc.console.Println(link)
}

// exportReports writes one file per requested report type.
func (uc *TopCostUseCase) exportReports(payload entity.PushPayload, args *types.CLIArgs) error {
	reportTypes := args.ReportType
	if len(reportTypes) == 0 {
		reportTypes = []string{"json"}
	}

	for _, reportType := range reportTypes {
		var (
			path string
			err  error
		)
		switch reportType {
		case "csv":
			path, err = uc.exportRepo.ExportToCSV(payload, args.ReportName, args.Dir)
		case "json":
			path, err = uc.exportRepo.ExportToJSON(payload, args.ReportName, args.Dir)
		case "pdf":
			path, err = uc.exportRepo.ExportToPDF(payload, args.ReportName, args.Dir)
		}
		if err != nil {
			return fmt.Errorf("error exporting %s report: %w", strings.ToUpper(reportType), err)
		}
		uc.console.LogSuccess("Exported %s report to %s", strings.ToUpper(reportType), path)
	}

	return nil
}

// push forwards the payload, skipping the call entirely when there is
// nothing to report.
func (uc *TopCostUseCase) push(ctx context.Context, payload entity.PushPayload, url string) error {
	if len(payload.TopCosts) == 0 {
		uc.console.LogWarning("No costs to push; skipping API call")
		return nil
	}

	status := uc.console.Status("Pushing summary...")
	code, body, err := uc.pushRepo.Push(ctx, payload, url)
	status.Stop()
	if err != nil {
		return err
	}

	uc.console.LogSuccess("Push status: %d", code)
	if body != "" {
		uc.console.LogInfo("Push response: %s", body)
	}
	return nil
}
