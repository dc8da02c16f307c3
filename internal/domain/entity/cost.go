package entity

// TotalRowLabel is the label Finout gives the row that carries the full view
// sum. Detection is by exact, case-sensitive match.
const TotalRowLabel = "Total"

// CostRow represents one line item of a cost view: a grouping-key value and
// the amount attributed to it. Amounts may be zero or negative (credits) and
// are kept at full precision.
type CostRow struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// IsTotal reports whether the row is the sentinel carrying the full view sum.
func (r CostRow) IsTotal() bool {
	return r.Label == TotalRowLabel
}

// ViewCosts is the result of a cost-source query: the non-total rows in the
// order the source returned them, plus the sentinel total when present.
type ViewCosts struct {
	Rows         []CostRow `json:"rows"`
	FullTotal    float64   `json:"full_total"`
	HasTotalRow  bool      `json:"has_total_row"`
	SkippedItems int       `json:"skipped_items,omitempty"`
}
