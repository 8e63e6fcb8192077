package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/txengine/internal/domain"
	"github.com/iho/txengine/internal/infrastructure/config"
	"github.com/iho/txengine/internal/infrastructure/metrics"
	"github.com/iho/txengine/internal/usecase"
	"github.com/iho/txengine/internal/usecase/mocks"
)

func TestReportUseCase_Build(t *testing.T) {
	tests := []struct {
		name  string
		order string
		want  []domain.ClientID
	}{
		{name: "arrival order", order: config.ReportOrderArrival, want: []domain.ClientID{3, 1}},
		{name: "client order", order: config.ReportOrderClient, want: []domain.ClientID{1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			h := newHarness(usecase.AccountPolicy{FreezeLocked: true})

			require.NoError(t, h.uc.Apply(ctx, deposit(3, 1, "2")))
			require.NoError(t, h.uc.Apply(ctx, deposit(1, 2, "1.5")))
			require.Error(t, h.uc.Apply(ctx, dispute(2, 99)))

			m := metrics.New(prometheus.NewRegistry())
			reports, err := usecase.NewReportUseCase(h.accounts, tt.order, m).Build(ctx)
			require.NoError(t, err)

			var clients []domain.ClientID
			for _, r := range reports {
				clients = append(clients, r.Client)
			}
			assert.Equal(t, tt.want, clients)
			assert.Equal(t, float64(2), testutil.ToFloat64(m.AccountsKnown))
		})
	}
}

func TestReportUseCase_FormatsBalances(t *testing.T) {
	ctx := context.Background()
	h := newHarness(usecase.AccountPolicy{FreezeLocked: true})

	require.NoError(t, h.uc.Apply(ctx, deposit(1, 1, "10")))
	require.NoError(t, h.uc.Apply(ctx, withdrawal(1, 2, "7.25")))

	reports, err := usecase.NewReportUseCase(h.accounts, config.ReportOrderArrival, nil).Build(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	assert.Equal(t, []string{"1", "2.7500", "0.0000", "2.7500", "false"}, reports[0].Record())
}

func TestReportUseCase_ListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	listErr := errors.New("list failed")
	accountRepo := mocks.NewMockAccountRepository(ctrl)
	accountRepo.EXPECT().List(gomock.Any()).Return(nil, listErr)

	_, err := usecase.NewReportUseCase(accountRepo, config.ReportOrderArrival, nil).Build(context.Background())
	assert.ErrorIs(t, err, listErr)
}
