package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Source       string   `json:"source" yaml:"source" toml:"source"`
	ViewID       string   `json:"view_id" yaml:"view_id" toml:"view_id"`
	GroupBy      string   `json:"group_by" yaml:"group_by" toml:"group_by"`
	TopN         int      `json:"top_n" yaml:"top_n" toml:"top_n"`
	IncludeTotal bool     `json:"include_total" yaml:"include_total" toml:"include_total"`
	PushURL      string   `json:"push_url" yaml:"push_url" toml:"push_url"`
	AccountID    string   `json:"account_id" yaml:"account_id" toml:"account_id"`
	Profile      string   `json:"profile" yaml:"profile" toml:"profile"`
	ReportName   string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType   []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir          string   `json:"dir" yaml:"dir" toml:"dir"`
}

// Credentials holds the Finout API credentials and related identity values,
// loaded from the environment or a .env file.
type Credentials struct {
	ClientID    string
	SecretKey   string
	AccountID   string
	ExtractedBy string
}

// Complete reports whether both API credentials are present.
func (c Credentials) Complete() bool {
	return c.ClientID != "" && c.SecretKey != ""
}
