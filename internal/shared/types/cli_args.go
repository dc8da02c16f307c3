package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile   string
	Source       string
	ViewID       string
	StartDate    string
	EndDate      string
	OmitDates    bool
	GroupBy      string
	TopN         *int
	IncludeTotal bool
	PushURL      string
	AccountID    string
	Profile      string
	ReportName   string
	ReportType   []string
	Dir          string
}
