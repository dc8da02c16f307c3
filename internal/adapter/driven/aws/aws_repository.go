package aws

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"

	"github.com/gregohare/finout-top-costs/internal/domain/entity"
	"github.com/gregohare/finout-top-costs/internal/domain/repository"
)

// CostExplorerAPI is the slice of the Cost Explorer client this adapter uses.
type CostExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
}

// AWSRepositoryImpl implements CostSourceRepository over AWS Cost Explorer,
// so the same summary pipeline can run against accounts that are not in
// Finout. Rows are the per-group unblended costs; a "Total" sentinel row is
// synthesized from their sum since Cost Explorer has no such row.
type AWSRepositoryImpl struct {
	api     CostExplorerAPI
	profile string
	now     func() time.Time
}

// NewAWSRepository creates a Cost Explorer cost source for the given AWS
// profile. The client is created lazily on the first query.
func NewAWSRepository(profile string) repository.CostSourceRepository {
	return &AWSRepositoryImpl{profile: profile, now: time.Now}
}

// Name identifies the source in the output payload.
func (r *AWSRepositoryImpl) Name() string {
	return "AWS Cost Explorer"
}

// groupDefinitionFor maps the CLI group-by dimension onto a Cost Explorer
// grouping. Finout's vendor dimension has no Cost Explorer counterpart.
func groupDefinitionFor(groupBy string) (ceTypes.GroupDefinition, error) {
	var key string
	switch groupBy {
	case "", "service":
		key = "SERVICE"
	case "region":
		key = "REGION"
	case "account":
		key = "LINKED_ACCOUNT"
	default:
		return ceTypes.GroupDefinition{}, fmt.Errorf("group-by %q is not supported by the aws source", groupBy)
	}
	return ceTypes.GroupDefinition{
		Type: ceTypes.GroupDefinitionTypeDimension,
		Key:  aws.String(key),
	}, nil
}

func (r *AWSRepositoryImpl) getClient(ctx context.Context) (CostExplorerAPI, error) {
	if r.api != nil {
		return r.api, nil
	}

	opts := []func(*config.LoadOptions) error{
		// Cost Explorer only exists in us-east-1.
		config.WithRegion("us-east-1"),
	}
	if r.profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(r.profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for profile %s: %w", r.profile, err)
	}

	r.api = costexplorer.NewFromConfig(cfg)
	return r.api, nil
}

// QueryViewCosts fetches unblended costs grouped by the requested dimension
// for the query's date range (the current month when dates are omitted) and
// reshapes them into view rows. The view ID is ignored: Cost Explorer has no
// saved views.
func (r *AWSRepositoryImpl) QueryViewCosts(ctx context.Context, query entity.CostQuery) (entity.ViewCosts, error) {
	client, err := r.getClient(ctx)
	if err != nil {
		return entity.ViewCosts{}, err
	}

	group, err := groupDefinitionFor(query.GroupBy)
	if err != nil {
		return entity.ViewCosts{}, err
	}

	start, end := r.queryPeriod(query.Dates)

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(start.Format("2006-01-02")),
			End:   aws.String(end.Format("2006-01-02")),
		},
		Granularity: ceTypes.GranularityMonthly,
		Metrics:     []string{"UnblendedCost"},
		GroupBy:     []ceTypes.GroupDefinition{group},
	}

	var costs entity.ViewCosts
	index := make(map[string]int)

	for {
		output, err := client.GetCostAndUsage(ctx, input)
		if err != nil {
			return entity.ViewCosts{}, fmt.Errorf("error getting cost data: %w", err)
		}

		for _, result := range output.ResultsByTime {
			for _, g := range result.Groups {
				if len(g.Keys) == 0 {
					continue
				}
				label := g.Keys[0]

				metric, ok := g.Metrics["UnblendedCost"]
				if !ok || metric.Amount == nil {
					continue
				}
				amount, err := strconv.ParseFloat(*metric.Amount, 64)
				if err != nil {
					costs.SkippedItems++
					continue
				}

				if i, seen := index[label]; seen {
					costs.Rows[i].Amount += amount
					continue
				}
				index[label] = len(costs.Rows)
				costs.Rows = append(costs.Rows, entity.CostRow{Label: label, Amount: amount})
			}
		}

		if output.NextPageToken == nil {
			break
		}
		input.NextPageToken = output.NextPageToken
	}

	for _, row := range costs.Rows {
		costs.FullTotal += row.Amount
	}
	costs.HasTotalRow = true
	costs.Rows = append(costs.Rows, entity.CostRow{Label: entity.TotalRowLabel, Amount: costs.FullTotal})

	return costs, nil
}

// queryPeriod returns the closed-open interval Cost Explorer expects. With no
// explicit range we cover the current month to date. The end date from the
// CLI is inclusive, so one day is added for the API.
func (r *AWSRepositoryImpl) queryPeriod(dates *entity.DateRange) (time.Time, time.Time) {
	if dates != nil {
		return dates.Start, dates.End.AddDate(0, 0, 1)
	}

	now := r.now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return start, end
}
