// Package summary holds the core top-N extraction and totals computation over
// cost view rows. Everything here is pure: callers own fetching and output.
package summary

import (
	"fmt"
	"math"
	"sort"

	"github.com/gregohare/finout-top-costs/internal/domain/entity"
	"github.com/gregohare/finout-top-costs/internal/shared/types"
)

// ExtractTopN returns the n largest non-total rows, descending by amount.
// The sort is stable: rows with equal amounts keep their input order. The
// sentinel "Total" row is never a candidate. When fewer than n rows exist,
// all of them are returned. The input slice is not modified.
func ExtractTopN(rows []entity.CostRow, n int) ([]entity.CostRow, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w (got %d)", types.ErrInvalidTopN, n)
	}

	candidates := make([]entity.CostRow, 0, len(rows))
	for _, row := range rows {
		if row.IsTotal() {
			continue
		}
		candidates = append(candidates, row)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Amount > candidates[j].Amount
	})

	if n > len(candidates) {
		n = len(candidates)
	}
	return candidates[:n], nil
}

// ComputeTotals builds the totals block for a summary. The top-N amount is
// the plain sum of the ranked rows. The full view total is only included when
// the source actually reported a sentinel row; the caller decides how loudly
// to handle its absence.
func ComputeTotals(topCosts []entity.CostRow, fullTotal float64, hasTotalRow bool, n int) entity.TotalsBlock {
	var topSum float64
	for _, row := range topCosts {
		topSum += row.Amount
	}

	block := entity.TotalsBlock{
		TopN: entity.TotalEntry{
			Service:   fmt.Sprintf("Total (top %d)", n),
			AmountUSD: round2(topSum),
		},
	}

	if hasTotalRow {
		block.Full = &entity.TotalEntry{
			Service:   "Total (view)",
			AmountUSD: round2(fullTotal),
		}
	}

	return block
}

// Summarize ranks the rows of a view query and produces the summary with
// per-row percentages of the full view total. When the source reported no
// sentinel total row, the sum of all non-total rows stands in as the
// percentage base and the full-view totals entry is omitted.
func Summarize(costs entity.ViewCosts, n int, includeTotal bool) (entity.Summary, error) {
	top, err := ExtractTopN(costs.Rows, n)
	if err != nil {
		return entity.Summary{}, err
	}

	base := costs.FullTotal
	if !costs.HasTotalRow {
		base = 0
		for _, row := range costs.Rows {
			if !row.IsTotal() {
				base += row.Amount
			}
		}
	}

	topCosts := make([]entity.TopCost, 0, len(top))
	for _, row := range top {
		topCosts = append(topCosts, entity.TopCost{
			Service:           row.Label,
			AmountUSD:         round2(row.Amount),
			PercentageOfTotal: percentage(row.Amount, base),
		})
	}

	result := entity.Summary{
		TopCosts:    topCosts,
		TopRows:     top,
		FullTotal:   base,
		HasTotalRow: costs.HasTotalRow,
	}

	if includeTotal {
		block := ComputeTotals(top, costs.FullTotal, costs.HasTotalRow, n)
		result.Totals = &block
	}

	return result, nil
}

// percentage returns amount as a share of base, one decimal place, 0 when the
// base is zero.
func percentage(amount, base float64) float64 {
	if base == 0 {
		return 0
	}
	return round1(amount / base * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
