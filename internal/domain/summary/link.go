package summary

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/gregohare/finout-top-costs/internal/domain/entity"
)

const reportBaseURL = "https://app.finout.io/app/total-cost"

// reportFilter is the filter object Finout's UI reads from the filters query
// parameter: a label-equality filter per top row, OR'd via the oneOf operator.
type reportFilter struct {
	Key      string   `json:"key"`
	Type     string   `json:"type"`
	Operator string   `json:"operator"`
	Value    []string `json:"value"`
}

// filterKeyForGroupBy maps the CLI group-by dimension to the column key the
// Finout UI filters on. The service dimension is named parent_cloud_service
// there; other dimensions pass through unchanged.
func filterKeyForGroupBy(groupBy string) string {
	if groupBy == "service" || groupBy == "" {
		return "parent_cloud_service"
	}
	return groupBy
}

// BuildReportLink produces a deep link into the Finout cost view, scoped to
// exactly the labels present in topCosts on the group-by dimension. When
// dates is nil no date parameters are emitted at all.
func BuildReportLink(accountID, viewID, groupBy string, topCosts []entity.CostRow, dates *entity.DateRange) (string, error) {
	labels := make([]string, 0, len(topCosts))
	for _, row := range topCosts {
		labels = append(labels, row.Label)
	}

	filter := reportFilter{
		Key:      filterKeyForGroupBy(groupBy),
		Type:     "col",
		Operator: "oneOf",
		Value:    labels,
	}

	encoded, err := json.Marshal(filter)
	if err != nil {
		return "", fmt.Errorf("error encoding report filter: %w", err)
	}

	params := url.Values{}
	params.Set("accountId", accountID)
	if viewID != "" {
		params.Set("viewId", viewID)
	}
	params.Set("filters", string(encoded))
	if dates != nil {
		params.Set("unixTimeMillSecondsStart", fmt.Sprintf("%d", dates.StartMillis()))
		params.Set("unixTimeMillSecondsEnd", fmt.Sprintf("%d", dates.EndMillis()))
	}

	return reportBaseURL + "?" + params.Encode(), nil
}
