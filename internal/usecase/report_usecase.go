package usecase

import (
	"context"
	"sort"

	"github.com/iho/txengine/internal/domain"
	"github.com/iho/txengine/internal/infrastructure/config"
	"github.com/iho/txengine/internal/infrastructure/metrics"
)

// ReportUseCase projects client snapshots into report rows.
type ReportUseCase struct {
	accountRepo AccountRepository
	order       string
	metrics     *metrics.Metrics
}

// NewReportUseCase creates a report builder. order is config.ReportOrderArrival
// (first-reference order) or config.ReportOrderClient (ascending client id).
func NewReportUseCase(accountRepo AccountRepository, order string, metrics *metrics.Metrics) *ReportUseCase {
	return &ReportUseCase{
		accountRepo: accountRepo,
		order:       order,
		metrics:     metrics,
	}
}

// Build returns one report row per known client.
func (uc *ReportUseCase) Build(ctx context.Context) ([]domain.AccountReport, error) {
	accounts, err := uc.accountRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if uc.order == config.ReportOrderClient {
		sort.SliceStable(accounts, func(i, j int) bool {
			return accounts[i].Client < accounts[j].Client
		})
	}

	reports := make([]domain.AccountReport, 0, len(accounts))
	for _, account := range accounts {
		reports = append(reports, domain.NewAccountReport(account))
	}

	if uc.metrics != nil {
		uc.metrics.AccountsKnown.Set(float64(len(reports)))
	}

	return reports, nil
}
