package repository

import (
	"github.com/gregohare/finout-top-costs/internal/domain/entity"
)

type ExportRepository interface {
	ExportToCSV(payload entity.PushPayload, filename string, outputDir string) (string, error)
	ExportToJSON(payload entity.PushPayload, filename string, outputDir string) (string, error)
	ExportToPDF(payload entity.PushPayload, filename string, outputDir string) (string, error)
}
