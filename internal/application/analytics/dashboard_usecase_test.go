package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/goldfolio-api/internal/application/access"
	"github.com/jhoicas/goldfolio-api/internal/application/analytics"
	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
	"github.com/jhoicas/goldfolio-api/internal/domain/repository"
	"github.com/jhoicas/goldfolio-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, now time.Time) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	clients := memory.NewClientRepository(store)
	receipts := memory.NewDepositReceiptRepository(store)

	for i, c := range []struct {
		branch string
		status entity.ClientStatus
	}{
		{"b1", entity.ClientPending},
		{"b1", entity.ClientPending},
		{"b1", entity.ClientCompleted},
		{"b2", entity.ClientContacted},
	} {
		require.NoError(t, clients.Create(ctx, &entity.Client{
			ID:        "c" + string(rune('0'+i)),
			FirstName: "Ana",
			LastName:  "Pérez",
			Mobile:    "11",
			BranchID:  c.branch,
			Status:    c.status,
			CreatedAt: now,
		}))
	}

	lastMonth := now.AddDate(0, -1, 0)
	for i, r := range []struct {
		branch   string
		currency entity.Currency
		amount   string
		at       time.Time
	}{
		{"b1", entity.CurrencyARS, "1000.50", now},
		{"b1", entity.CurrencyARS, "500.25", lastMonth},
		{"b1", entity.CurrencyUSD, "100", now},
		{"b2", entity.CurrencyUSD, "300", now},
	} {
		require.NoError(t, receipts.Create(ctx, &entity.DepositReceipt{
			ID:                   "r" + string(rune('0'+i)),
			ClientName:           "Ana Pérez",
			Bank:                 "Banco Nación",
			OperationNumber:      "op" + string(rune('0'+i)),
			DepositAmount:        decimal.RequireFromString(r.amount),
			DepositCurrency:      r.currency,
			CounterpartyCurrency: entity.CurrencyUSD,
			BranchID:             r.branch,
			CreatedAt:            r.at,
		}))
	}
	return store
}

func newUseCase(store *memory.Store, now time.Time) *analytics.DashboardUseCase {
	uc := analytics.NewDashboardUseCase(memory.NewAnalyticsRepository(store))
	analytics.SetNow(uc, func() time.Time { return now })
	return uc
}

func TestGetSummary_MasterSeesAll(t *testing.T) {
	now := time.Date(2026, time.October, 14, 10, 0, 0, 0, time.UTC)
	uc := newUseCase(seed(t, now), now)

	out, err := uc.GetSummary(context.Background(), access.Principal{UserID: "m", Role: entity.RoleMaster})
	require.NoError(t, err)

	assert.Equal(t, "Octubre 2026", out.DateLabel)
	assert.Equal(t, 4, out.TotalClients)
	assert.Equal(t, map[string]int{"PENDING": 2, "CONTACTED": 1, "COMPLETED": 1, "CANCELLED": 0}, out.ClientsByStatus)

	require.Len(t, out.ReceiptsByCurrency, 2)
	assert.Equal(t, "ARS", out.ReceiptsByCurrency[0].Currency)
	assert.Equal(t, 2, out.ReceiptsByCurrency[0].Count)
	assert.True(t, decimal.RequireFromString("1500.75").Equal(out.ReceiptsByCurrency[0].Total))
	assert.Equal(t, "USD", out.ReceiptsByCurrency[1].Currency)
	assert.True(t, decimal.NewFromInt(400).Equal(out.ReceiptsByCurrency[1].Total))

	require.Len(t, out.MonthReceiptsByCurrency, 2)
	assert.Equal(t, 1, out.MonthReceiptsByCurrency[0].Count)
	assert.True(t, decimal.RequireFromString("1000.50").Equal(out.MonthReceiptsByCurrency[0].Total))
}

func TestGetSummary_BranchScoped(t *testing.T) {
	now := time.Date(2026, time.October, 14, 10, 0, 0, 0, time.UTC)
	uc := newUseCase(seed(t, now), now)

	out, err := uc.GetSummary(context.Background(), access.Principal{UserID: "u", Role: entity.RoleUser, BranchID: "b2"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.TotalClients)
	assert.Equal(t, 1, out.ClientsByStatus["CONTACTED"])
	assert.Equal(t, 0, out.ClientsByStatus["PENDING"])
	require.Len(t, out.ReceiptsByCurrency, 1)
	assert.Equal(t, "USD", out.ReceiptsByCurrency[0].Currency)
}

func TestGetSummary_NoBranchIsEmpty(t *testing.T) {
	now := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	uc := newUseCase(seed(t, now), now)

	out, err := uc.GetSummary(context.Background(), access.Principal{UserID: "u", Role: entity.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, "Febrero 2026", out.DateLabel)
	assert.Zero(t, out.TotalClients)
	assert.Len(t, out.ClientsByStatus, 4)
	assert.Empty(t, out.ReceiptsByCurrency)
	assert.NotNil(t, out.MonthReceiptsByCurrency)
}

func TestGetSummary_MesEnUTCConRelojLocal(t *testing.T) {
	seededAt := time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)
	// 1 de noviembre 01:00 en UTC+5 sigue siendo 31 de octubre en UTC
	local := time.Date(2026, time.November, 1, 1, 0, 0, 0, time.FixedZone("UTC+5", 5*3600))
	uc := newUseCase(seed(t, seededAt), local)

	out, err := uc.GetSummary(context.Background(), access.Principal{UserID: "m", Role: entity.RoleMaster})
	require.NoError(t, err)
	assert.Equal(t, "Octubre 2026", out.DateLabel)
	require.Len(t, out.MonthReceiptsByCurrency, 2)
	assert.Equal(t, "ARS", out.MonthReceiptsByCurrency[0].Currency)
	assert.True(t, decimal.RequireFromString("1000.50").Equal(out.MonthReceiptsByCurrency[0].Total))
	assert.True(t, decimal.NewFromInt(400).Equal(out.MonthReceiptsByCurrency[1].Total))
}

// failingMonth falla solo la consulta acotada por fecha.
type failingMonth struct {
	repository.AnalyticsRepository
	err error
}

func (f failingMonth) SumReceiptsByCurrency(ctx context.Context, branchID string, since time.Time) ([]repository.CurrencyTotal, error) {
	if !since.IsZero() {
		return nil, f.err
	}
	return f.AnalyticsRepository.SumReceiptsByCurrency(ctx, branchID, since)
}

func TestGetSummary_PropagaErrorDelStore(t *testing.T) {
	now := time.Date(2026, time.October, 14, 10, 0, 0, 0, time.UTC)
	down := errors.New("store caído")
	repo := failingMonth{AnalyticsRepository: memory.NewAnalyticsRepository(seed(t, now)), err: down}
	uc := analytics.NewDashboardUseCase(repo)
	analytics.SetNow(uc, func() time.Time { return now })

	out, err := uc.GetSummary(context.Background(), access.Principal{UserID: "m", Role: entity.RoleMaster})
	require.ErrorIs(t, err, down)
	assert.Contains(t, err.Error(), "boletas del mes")
	assert.Nil(t, out)
}
