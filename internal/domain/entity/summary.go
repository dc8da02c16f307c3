package entity

// TopCost is one presentation entry of the summary: amount rounded to two
// decimals, percentage of the full view total rounded to one.
type TopCost struct {
	Service           string  `json:"service"`
	AmountUSD         float64 `json:"amount_usd"`
	PercentageOfTotal float64 `json:"percentage_of_total"`
}

// TotalEntry is one line of the totals block.
type TotalEntry struct {
	Service   string  `json:"service"`
	AmountUSD float64 `json:"amount_usd"`
}

// TotalsBlock carries the top-N sum and, when the source reported a sentinel
// total row, the full view total. Full stays nil otherwise.
type TotalsBlock struct {
	TopN TotalEntry  `json:"top_n"`
	Full *TotalEntry `json:"full,omitempty"`
}

// Summary is the result of summarizing one view query.
type Summary struct {
	TopCosts []TopCost    `json:"top_costs"`
	Totals   *TotalsBlock `json:"total,omitempty"`

	// Raw top rows at full precision, in ranked order. Presentation rounding
	// never touches these; the report link and exports are built from them.
	TopRows []CostRow `json:"-"`

	FullTotal   float64 `json:"-"`
	HasTotalRow bool    `json:"-"`
}

// Metadata describes the summary payload for downstream consumers.
type Metadata struct {
	Currency    string `json:"currency"`
	ExtractedBy string `json:"extracted_by"`
	ReportType  string `json:"report_type"`
}

// PushPayload is the JSON document printed to stdout and POSTed to the
// optional push endpoint.
type PushPayload struct {
	Action     string       `json:"action"`
	ReportDate string       `json:"report_date"`
	Source     string       `json:"source"`
	TopCosts   []TopCost    `json:"top_costs"`
	Total      *TotalsBlock `json:"total,omitempty"`
	Metadata   Metadata     `json:"metadata"`
}
