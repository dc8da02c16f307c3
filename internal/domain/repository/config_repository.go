package repository

import (
	"github.com/gregohare/finout-top-costs/internal/shared/types"
)

// ConfigRepository defines the interface for loading configuration files and
// API credentials.
type ConfigRepository interface {
	LoadConfigFile(filePath string) (*types.Config, error)
	LoadCredentials() types.Credentials
}
