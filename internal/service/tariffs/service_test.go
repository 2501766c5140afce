package tariffs

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/tariffs/models"
	"github.com/m04kA/SMC-ParkingService/internal/testutil"
	"github.com/m04kA/SMC-ParkingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

var admin = domain.Principal{UserID: 42, Email: "admin@example.com", IsStaff: true}

func newService() (*Service, *memstore.Store) {
	store := memstore.New()
	store.SetNow(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	return NewService(store.TariffRepo(), store.TxManager(), testutil.Logger()), store
}

func TestCreate(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.Create(context.Background(), &models.CreateTariffRequest{
		Name:     "Дневной",
		Price:    decimal.RequireFromString("100.50"),
		Duration: "daily",
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.True(t, resp.IsActive)
	assert.Equal(t, 24*60, resp.DurationMinutes)
	assert.Equal(t, "100.50", resp.Price.StringFixed(2))

	custom, err := svc.Create(context.Background(), &models.CreateTariffRequest{
		Name:            "Полтора часа",
		Price:           decimal.NewFromInt(80),
		Duration:        "custom",
		DurationMinutes: ptr.Ptr(90),
		IsActive:        ptr.Ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, 90, custom.DurationMinutes)
	assert.False(t, custom.IsActive)
}

func TestCreate_Errors(t *testing.T) {
	svc, store := newService()
	store.AddTariff(domain.Tariff{Name: "Дневной", Duration: domain.DurationDaily, IsActive: true})

	tests := []struct {
		name    string
		req     models.CreateTariffRequest
		wantErr error
	}{
		{"negative price", models.CreateTariffRequest{Name: "Ночной", Price: decimal.NewFromInt(-1), Duration: "daily"}, ErrInvalidInput},
		{"unknown duration", models.CreateTariffRequest{Name: "Ночной", Duration: "weekly"}, ErrInvalidInput},
		{"custom without minutes", models.CreateTariffRequest{Name: "Ночной", Duration: "custom"}, ErrInvalidInput},
		{"empty name", models.CreateTariffRequest{Duration: "daily"}, ErrInvalidInput},
		{"duplicate name", models.CreateTariffRequest{Name: "Дневной", Duration: "monthly"}, ErrTariffNameTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := svc.Create(context.Background(), &req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdate_PriceChangeRecordsHistory(t *testing.T) {
	svc, store := newService()
	tariff := store.AddTariff(domain.Tariff{Name: "Дневной", Price: decimal.NewFromInt(100), Duration: domain.DurationDaily, IsActive: true})

	resp, err := svc.Update(context.Background(), admin, tariff.ID, &models.UpdateTariffRequest{
		Price: ptr.Ptr(decimal.NewFromInt(150)),
	})
	require.NoError(t, err)
	assert.Equal(t, "150.00", resp.Price.StringFixed(2))

	history := store.PriceHistory()
	require.Len(t, history, 1)
	assert.Equal(t, tariff.ID, history[0].TariffID)
	assert.Equal(t, "100.00", history[0].OldPrice.StringFixed(2))
	assert.Equal(t, "150.00", history[0].NewPrice.StringFixed(2))
	assert.Equal(t, admin.UserID, history[0].ChangedBy)

	stored, _ := store.Tariff(tariff.ID)
	assert.Equal(t, "150.00", stored.Price.StringFixed(2))
}

func TestUpdate_WithoutPriceChangeKeepsHistoryEmpty(t *testing.T) {
	svc, store := newService()
	tariff := store.AddTariff(domain.Tariff{Name: "Дневной", Price: decimal.NewFromInt(100), Duration: domain.DurationDaily, IsActive: true})

	resp, err := svc.Update(context.Background(), admin, tariff.ID, &models.UpdateTariffRequest{
		Name:     ptr.Ptr("Сутки"),
		Price:    ptr.Ptr(decimal.RequireFromString("100.00")),
		IsActive: ptr.Ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "Сутки", resp.Name)
	assert.False(t, resp.IsActive)
	assert.Empty(t, store.PriceHistory())
}

func TestUpdate_Errors(t *testing.T) {
	svc, store := newService()
	first := store.AddTariff(domain.Tariff{Name: "Дневной", Price: decimal.NewFromInt(100), Duration: domain.DurationDaily, IsActive: true})
	store.AddTariff(domain.Tariff{Name: "Месячный", Price: decimal.NewFromInt(2000), Duration: domain.DurationMonthly, IsActive: true})

	_, err := svc.Update(context.Background(), admin, 404, &models.UpdateTariffRequest{IsActive: ptr.Ptr(false)})
	assert.ErrorIs(t, err, ErrTariffNotFound)

	_, err = svc.Update(context.Background(), admin, first.ID, &models.UpdateTariffRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(context.Background(), admin, first.ID, &models.UpdateTariffRequest{Price: ptr.Ptr(decimal.NewFromInt(-5))})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// A rejected rename rolls back the price change made in the same request
	_, err = svc.Update(context.Background(), admin, first.ID, &models.UpdateTariffRequest{
		Name:  ptr.Ptr("Месячный"),
		Price: ptr.Ptr(decimal.NewFromInt(120)),
	})
	assert.ErrorIs(t, err, ErrTariffNameTaken)
	assert.Empty(t, store.PriceHistory())

	stored, _ := store.Tariff(first.ID)
	assert.Equal(t, "100.00", stored.Price.StringFixed(2))
}

func TestList(t *testing.T) {
	svc, store := newService()
	store.AddTariff(domain.Tariff{Name: "Дневной", Duration: domain.DurationDaily, IsActive: true})
	store.AddTariff(domain.Tariff{Name: "Архив", Duration: domain.DurationMonthly})

	active, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Дневной", active[0].Name)

	all, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestHistory_Filter(t *testing.T) {
	svc, store := newService()
	daily := store.AddTariff(domain.Tariff{Name: "Дневной", Price: decimal.NewFromInt(100), Duration: domain.DurationDaily, IsActive: true})
	monthly := store.AddTariff(domain.Tariff{Name: "Месячный", Price: decimal.NewFromInt(2000), Duration: domain.DurationMonthly, IsActive: true})

	_, err := svc.Update(context.Background(), admin, daily.ID, &models.UpdateTariffRequest{Price: ptr.Ptr(decimal.NewFromInt(110))})
	require.NoError(t, err)
	_, err = svc.Update(context.Background(), admin, daily.ID, &models.UpdateTariffRequest{Price: ptr.Ptr(decimal.NewFromInt(120))})
	require.NoError(t, err)
	_, err = svc.Update(context.Background(), admin, monthly.ID, &models.UpdateTariffRequest{Price: ptr.Ptr(decimal.NewFromInt(2100))})
	require.NoError(t, err)

	all, err := svc.History(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	dailyHistory, err := svc.History(context.Background(), &daily.ID)
	require.NoError(t, err)
	require.Len(t, dailyHistory, 2)
	// Newest first
	assert.Equal(t, "120.00", dailyHistory[0].NewPrice.StringFixed(2))
	assert.Equal(t, "110.00", dailyHistory[1].NewPrice.StringFixed(2))
	assert.Equal(t, "110.00", dailyHistory[0].OldPrice.StringFixed(2))
}
