package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/gregohare/finout-top-costs/internal/domain/entity"
	"github.com/gregohare/finout-top-costs/internal/domain/repository"
)

// ExportRepositoryImpl implements the ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository creates a new ExportRepository implementation.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

func (r *ExportRepositoryImpl) ExportToCSV(payload entity.PushPayload, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{"Service", "Amount (USD)", "% of Total"}
	writer.Write(headers)

	for _, row := range payload.TopCosts {
		writer.Write([]string{
			row.Service,
			fmt.Sprintf("%.2f", row.AmountUSD),
			fmt.Sprintf("%.1f", row.PercentageOfTotal),
		})
	}

	if payload.Total != nil {
		writer.Write([]string{payload.Total.TopN.Service, fmt.Sprintf("%.2f", payload.Total.TopN.AmountUSD), ""})
		if payload.Total.Full != nil {
			writer.Write([]string{payload.Total.Full.Service, fmt.Sprintf("%.2f", payload.Total.Full.AmountUSD), ""})
		}
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToJSON(payload entity.PushPayload, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToPDF(payload entity.PushPayload, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.CellFormat(0, 12, tr(fmt.Sprintf("Top Cost Report - %s", payload.Source)), "", 1, "C", true, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Report date: %s", payload.ReportDate)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Extracted by: %s", payload.Metadata.ExtractedBy)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	colWidths := []float64{100, 45, 45}
	headers := []string{"Service", "Amount (USD)", "% of Total"}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	for i, header := range headers {
		pdf.CellFormat(colWidths[i], 8, tr(header), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
	for _, row := range payload.TopCosts {
		pdf.CellFormat(colWidths[0], 7, tr(row.Service), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 7, fmt.Sprintf("$%.2f", row.AmountUSD), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[2], 7, fmt.Sprintf("%.1f%%", row.PercentageOfTotal), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	if payload.Total != nil {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(colWidths[0], 7, tr(payload.Total.TopN.Service), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 7, fmt.Sprintf("$%.2f", payload.Total.TopN.AmountUSD), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[2], 7, "", "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
		if payload.Total.Full != nil {
			pdf.CellFormat(colWidths[0], 7, tr(payload.Total.Full.Service), "1", 0, "L", false, 0, "")
			pdf.CellFormat(colWidths[1], 7, fmt.Sprintf("$%.2f", payload.Total.Full.AmountUSD), "1", 0, "R", false, 0, "")
			pdf.CellFormat(colWidths[2], 7, "", "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}
