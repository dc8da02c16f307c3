package finout

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gregohare/finout-top-costs/internal/domain/entity"
	"github.com/gregohare/finout-top-costs/internal/shared/types"
)

func testRepository(t *testing.T, handler http.HandlerFunc) *FinoutRepositoryImpl {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &FinoutRepositoryImpl{
		client:  server.Client(),
		baseURL: server.URL,
		creds:   types.Credentials{ClientID: "client-1", SecretKey: "secret-1"},
	}
}

func TestQueryViewCosts(t *testing.T) {
	t.Run("sends credentials and query payload", func(t *testing.T) {
		var gotPath, gotClientID, gotSecret string
		var gotBody map[string]interface{}

		repo := testRepository(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotClientID = r.Header.Get("x-finout-client-id")
			gotSecret = r.Header.Get("x-finout-secret-key")
			body, _ := io.ReadAll(r.Body)
			json.Unmarshal(body, &gotBody)
			w.Write([]byte(`{"results": []}`))
		})

		dates := &entity.DateRange{
			Start: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
		}
		_, err := repo.QueryViewCosts(context.Background(), entity.CostQuery{
			ViewID:  "view-1",
			GroupBy: "service",
			Dates:   dates,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if gotPath != "/v1/cost/query-by-view" {
			t.Errorf("path = %q", gotPath)
		}
		if gotClientID != "client-1" || gotSecret != "secret-1" {
			t.Errorf("credentials not sent: %q / %q", gotClientID, gotSecret)
		}
		if gotBody["viewId"] != "view-1" {
			t.Errorf("viewId = %v", gotBody["viewId"])
		}
		groupBy, ok := gotBody["groupBy"].([]interface{})
		if !ok || len(groupBy) != 1 || groupBy[0] != "service" {
			t.Errorf("groupBy = %v", gotBody["groupBy"])
		}
		date, ok := gotBody["date"].(map[string]interface{})
		if !ok {
			t.Fatalf("date = %v", gotBody["date"])
		}
		if date["unixTimeMillSecondsStart"].(float64) != 1785542400000 {
			t.Errorf("start millis = %v", date["unixTimeMillSecondsStart"])
		}
	})

	t.Run("omits date and groupBy when unset", func(t *testing.T) {
		var gotBody map[string]json.RawMessage

		repo := testRepository(t, func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			json.Unmarshal(body, &gotBody)
			w.Write([]byte(`[]`))
		})

		_, err := repo.QueryViewCosts(context.Background(), entity.CostQuery{ViewID: "view-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, present := gotBody["date"]; present {
			t.Error("date should be omitted entirely")
		}
		if _, present := gotBody["groupBy"]; present {
			t.Error("groupBy should be omitted entirely")
		}
	})

	t.Run("aggregates daily costs per label", func(t *testing.T) {
		repo := testRepository(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results": [
				{"name": "AmazonEC2", "data": [{"cost": 100.4}, {"cost": 2.0}]},
				{"name": "AmazonRDS", "data": [{"cost": 50.0}]},
				{"name": "Total", "data": [{"cost": 812.5}]}
			]}`))
		})

		costs, err := repo.QueryViewCosts(context.Background(), entity.CostQuery{ViewID: "view-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !costs.HasTotalRow || costs.FullTotal != 812.5 {
			t.Errorf("total = %v (present=%v), want 812.5", costs.FullTotal, costs.HasTotalRow)
		}
		if len(costs.Rows) != 3 {
			t.Fatalf("rows = %d, want 3", len(costs.Rows))
		}
		if costs.Rows[0].Label != "AmazonEC2" || costs.Rows[0].Amount != 102.4 {
			t.Errorf("row 0 = %+v", costs.Rows[0])
		}
	})

	t.Run("folds duplicate labels together", func(t *testing.T) {
		repo := testRepository(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results": [
				{"name": "AmazonEC2", "data": [{"cost": 10}]},
				{"name": "AmazonS3", "data": [{"cost": 5}]},
				{"name": "AmazonEC2", "data": [{"cost": 15}]}
			]}`))
		})

		costs, err := repo.QueryViewCosts(context.Background(), entity.CostQuery{ViewID: "view-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(costs.Rows) != 2 {
			t.Fatalf("rows = %d, want 2", len(costs.Rows))
		}
		if costs.Rows[0].Label != "AmazonEC2" || costs.Rows[0].Amount != 25 {
			t.Errorf("row 0 = %+v", costs.Rows[0])
		}
	})

	t.Run("accepts the data envelope and string items", func(t *testing.T) {
		repo := testRepository(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data": [
				"{\"name\": \"AmazonEC2\", \"data\": [{\"cost\": \"12.5\"}]}",
				"not json at all",
				{"name": "AmazonS3", "data": [{"cost": 1}]}
			]}`))
		})

		costs, err := repo.QueryViewCosts(context.Background(), entity.CostQuery{ViewID: "view-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if costs.SkippedItems != 1 {
			t.Errorf("skipped = %d, want 1", costs.SkippedItems)
		}
		if len(costs.Rows) != 2 || costs.Rows[0].Amount != 12.5 {
			t.Errorf("rows = %+v", costs.Rows)
		}
	})

	t.Run("non-200 is a terminal error with the body", func(t *testing.T) {
		repo := testRepository(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"message": "bad credentials"}`))
		})

		_, err := repo.QueryViewCosts(context.Background(), entity.CostQuery{ViewID: "view-1"})
		if err == nil {
			t.Fatal("expected an error")
		}
		if !strings.Contains(err.Error(), "403") || !strings.Contains(err.Error(), "bad credentials") {
			t.Errorf("error lacks status or body: %v", err)
		}
	})

	t.Run("invalid response body is an error", func(t *testing.T) {
		repo := testRepository(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`this is not json`))
		})

		_, err := repo.QueryViewCosts(context.Background(), entity.CostQuery{ViewID: "view-1"})
		if err == nil {
			t.Fatal("expected an error")
		}
	})
}
