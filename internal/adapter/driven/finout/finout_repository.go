package finout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gregohare/finout-top-costs/internal/domain/entity"
	"github.com/gregohare/finout-top-costs/internal/domain/repository"
	"github.com/gregohare/finout-top-costs/internal/shared/types"
)

const defaultBaseURL = "https://app.finout.io"

// FinoutRepositoryImpl implements CostSourceRepository against the Finout
// query-by-view endpoint.
type FinoutRepositoryImpl struct {
	client  *http.Client
	baseURL string
	creds   types.Credentials
}

// NewFinoutRepository creates a new Finout cost source with the given
// credentials.
func NewFinoutRepository(creds types.Credentials) repository.CostSourceRepository {
	return &FinoutRepositoryImpl{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultBaseURL,
		creds:   creds,
	}
}

// Name identifies the source in the output payload.
func (r *FinoutRepositoryImpl) Name() string {
	return "Finout"
}

// queryPayload is the request body for query-by-view. GroupBy is a list on
// the wire even though the CLI only ever sends one dimension.
type queryPayload struct {
	ViewID  string        `json:"viewId"`
	GroupBy []string      `json:"groupBy,omitempty"`
	Date    *queryDateArg `json:"date,omitempty"`
}

type queryDateArg struct {
	UnixTimeMillSecondsStart int64 `json:"unixTimeMillSecondsStart"`
	UnixTimeMillSecondsEnd   int64 `json:"unixTimeMillSecondsEnd"`
}

// QueryViewCosts POSTs the view query and aggregates the response into cost
// rows, one per label, amounts summed across the daily entries. The "Total"
// row becomes the view's full total.
func (r *FinoutRepositoryImpl) QueryViewCosts(ctx context.Context, query entity.CostQuery) (entity.ViewCosts, error) {
	payload := queryPayload{ViewID: query.ViewID}
	if query.GroupBy != "" {
		payload.GroupBy = []string{query.GroupBy}
	}
	if query.Dates != nil {
		payload.Date = &queryDateArg{
			UnixTimeMillSecondsStart: query.Dates.StartMillis(),
			UnixTimeMillSecondsEnd:   query.Dates.EndMillis(),
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return entity.ViewCosts{}, fmt.Errorf("error encoding query payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/v1/cost/query-by-view", bytes.NewReader(body))
	if err != nil {
		return entity.ViewCosts{}, fmt.Errorf("error building request: %w", err)
	}
	req.Header.Set("x-finout-client-id", r.creds.ClientID)
	req.Header.Set("x-finout-secret-key", r.creds.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return entity.ViewCosts{}, fmt.Errorf("error querying Finout API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return entity.ViewCosts{}, fmt.Errorf("error reading Finout response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return entity.ViewCosts{}, fmt.Errorf("Finout API error: %d - %s", resp.StatusCode, string(respBody))
	}

	items, err := decodeItems(respBody)
	if err != nil {
		return entity.ViewCosts{}, err
	}

	return aggregateItems(items), nil
}

// viewItem is one entry of the query-by-view response: a label and its daily
// cost series.
type viewItem struct {
	Name string `json:"name"`
	Data []struct {
		Cost costValue `json:"cost"`
	} `json:"data"`
}

// costValue tolerates costs serialized as numbers or as quoted numbers.
type costValue float64

func (c *costValue) UnmarshalJSON(data []byte) error {
	if len(data) > 1 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*c = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*c = costValue(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = costValue(v)
	return nil
}

// decodeItems unwraps the response envelope. The API wraps the item list in
// "results" or "data" depending on the endpoint version, or returns the bare
// list; individual items are sometimes double-encoded as JSON strings.
func decodeItems(body []byte) ([]json.RawMessage, error) {
	var envelope struct {
		Results []json.RawMessage `json:"results"`
		Data    []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Results != nil {
			return envelope.Results, nil
		}
		if envelope.Data != nil {
			return envelope.Data, nil
		}
	}

	var bare []json.RawMessage
	if err := json.Unmarshal(body, &bare); err != nil {
		return nil, fmt.Errorf("Finout response was not valid JSON: %w", err)
	}
	return bare, nil
}

// aggregateItems sums each item's daily costs and folds items with the same
// label together, preserving first-seen order. Items that cannot be decoded
// are counted and skipped rather than failing the whole query.
func aggregateItems(items []json.RawMessage) entity.ViewCosts {
	var costs entity.ViewCosts
	index := make(map[string]int)

	for _, raw := range items {
		item, ok := decodeItem(raw)
		if !ok {
			costs.SkippedItems++
			continue
		}

		var amount float64
		for _, day := range item.Data {
			amount += float64(day.Cost)
		}

		if item.Name == entity.TotalRowLabel {
			costs.FullTotal += amount
			if costs.HasTotalRow {
				continue
			}
			costs.HasTotalRow = true
			costs.Rows = append(costs.Rows, entity.CostRow{Label: entity.TotalRowLabel})
			continue
		}

		if i, seen := index[item.Name]; seen {
			costs.Rows[i].Amount += amount
			continue
		}
		index[item.Name] = len(costs.Rows)
		costs.Rows = append(costs.Rows, entity.CostRow{Label: item.Name, Amount: amount})
	}

	// Patch the sentinel row with the final total so Rows stays a faithful
	// image of the view.
	if costs.HasTotalRow {
		for i := range costs.Rows {
			if costs.Rows[i].IsTotal() {
				costs.Rows[i].Amount = costs.FullTotal
				break
			}
		}
	}

	return costs
}

// decodeItem handles both plain objects and JSON-string-encoded objects.
func decodeItem(raw json.RawMessage) (viewItem, bool) {
	data := []byte(raw)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return viewItem{}, false
		}
		data = []byte(s)
	}

	var item viewItem
	if err := json.Unmarshal(data, &item); err != nil {
		return viewItem{}, false
	}
	if item.Name == "" {
		item.Name = "Unknown"
	}
	return item, true
}
