package main

import (
	"fmt"
	"os"

	"github.com/gregohare/finout-top-costs/internal/adapter/driven/aws"
	"github.com/gregohare/finout-top-costs/internal/adapter/driven/config"
	"github.com/gregohare/finout-top-costs/internal/adapter/driven/export"
	"github.com/gregohare/finout-top-costs/internal/adapter/driven/finout"
	"github.com/gregohare/finout-top-costs/internal/adapter/driven/push"
	"github.com/gregohare/finout-top-costs/internal/adapter/driving/cli"
	"github.com/gregohare/finout-top-costs/internal/application/usecase"
	"github.com/gregohare/finout-top-costs/internal/domain/repository"
	"github.com/gregohare/finout-top-costs/internal/shared/types"
	"github.com/gregohare/finout-top-costs/pkg/console"
	"github.com/gregohare/finout-top-costs/pkg/version"
)

func newCostSource(source string, creds types.Credentials, profile string) (repository.CostSourceRepository, error) {
	switch source {
	case usecase.SourceFinout:
		return finout.NewFinoutRepository(creds), nil
	case usecase.SourceAWS:
		return aws.NewAWSRepository(profile), nil
	}
	return nil, fmt.Errorf("%w: %q", types.ErrUnknownSource, source)
}

func main() {
	app := cli.NewCLIApp(version.Version)

	pushRepo := push.NewPushRepository()
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	topCostUseCase := usecase.NewTopCostUseCase(
		newCostSource,
		pushRepo,
		exportRepo,
		configRepo,
		consoleImpl,
	)

	app.SetTopCostUseCase(topCostUseCase)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
