package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/gregohare/finout-top-costs/internal/domain/entity"
)

func samplePayload() entity.PushPayload {
	return entity.PushPayload{
		Action:     "push_top_costs",
		ReportDate: "2026-08-28",
		Source:     "Finout",
		TopCosts: []entity.TopCost{
			{Service: "AmazonEC2", AmountUSD: 102.4, PercentageOfTotal: 12.6},
			{Service: "AmazonRDS", AmountUSD: 50.0, PercentageOfTotal: 6.2},
		},
		Total: &entity.TotalsBlock{
			TopN: entity.TotalEntry{Service: "Total (top 2)", AmountUSD: 152.4},
			Full: &entity.TotalEntry{Service: "Total (view)", AmountUSD: 812.5},
		},
		Metadata: entity.Metadata{Currency: "USD", ExtractedBy: "tester", ReportType: "cli_summary"},
	}
}

func TestExportToCSV(t *testing.T) {
	repo := &ExportRepositoryImpl{}
	dir := t.TempDir()

	path, err := repo.ExportToCSV(samplePayload(), "report", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening export: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("reading CSV: %v", err)
	}

	// header + two rows + two totals lines
	if len(records) != 5 {
		t.Fatalf("records = %d, want 5", len(records))
	}
	if records[1][0] != "AmazonEC2" || records[1][1] != "102.40" {
		t.Errorf("row 1 = %v", records[1])
	}
	if records[4][0] != "Total (view)" {
		t.Errorf("last row = %v", records[4])
	}
}

func TestExportToJSON(t *testing.T) {
	repo := &ExportRepositoryImpl{}
	dir := t.TempDir()

	path, err := repo.ExportToJSON(samplePayload(), "report", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(path, ".json") {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}

	var decoded entity.PushPayload
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("export does not decode: %v", err)
	}
	if decoded.Action != "push_top_costs" || len(decoded.TopCosts) != 2 {
		t.Errorf("decoded = %+v", decoded)
	}
	if decoded.Total == nil || decoded.Total.Full == nil || decoded.Total.Full.AmountUSD != 812.5 {
		t.Errorf("totals = %+v", decoded.Total)
	}
}

func TestExportToPDF(t *testing.T) {
	repo := &ExportRepositoryImpl{}
	dir := t.TempDir()

	path, err := repo.ExportToPDF(samplePayload(), "report", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat export: %v", err)
	}
	if info.Size() == 0 {
		t.Error("PDF export is empty")
	}
}
