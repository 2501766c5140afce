package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// CreateTariffRequest запрос на создание тарифа
type CreateTariffRequest struct {
	Name            string          `json:"name" validate:"required,max=50"`
	Price           decimal.Decimal `json:"price"`
	Duration        string          `json:"duration" validate:"required,oneof=daily monthly custom"`
	DurationMinutes *int            `json:"durationMinutes,omitempty" validate:"omitempty,gt=0"`
	IsActive        *bool           `json:"isActive,omitempty"`
}

// UpdateTariffRequest запрос на изменение тарифа; nil-поля не меняются
type UpdateTariffRequest struct {
	Name     *string          `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	IsActive *bool            `json:"isActive,omitempty"`
}

// TariffResponse данные тарифа
type TariffResponse struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Duration        string          `json:"duration"`
	DurationMinutes int             `json:"durationMinutes"` // фактическая длительность бронирования
	IsActive        bool            `json:"isActive"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// PriceHistoryResponse запись истории цены
type PriceHistoryResponse struct {
	ID        int64           `json:"id"`
	TariffID  int64           `json:"tariffId"`
	OldPrice  decimal.Decimal `json:"oldPrice"`
	NewPrice  decimal.Decimal `json:"newPrice"`
	ChangedBy int64           `json:"changedBy"`
	ChangedAt time.Time       `json:"changedAt"`
}

// FromDomainTariff конвертирует domain модель в DTO
func FromDomainTariff(t *domain.Tariff) *TariffResponse {
	if t == nil {
		return nil
	}

	return &TariffResponse{
		ID:              t.ID,
		Name:            t.Name,
		Price:           t.Price,
		Duration:        string(t.Duration),
		DurationMinutes: int(t.GetDuration() / time.Minute),
		IsActive:        t.IsActive,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// FromDomainTariffList конвертирует список тарифов в DTO
func FromDomainTariffList(tariffs []*domain.Tariff) []TariffResponse {
	resp := make([]TariffResponse, 0, len(tariffs))
	for _, t := range tariffs {
		if tariffResp := FromDomainTariff(t); tariffResp != nil {
			resp = append(resp, *tariffResp)
		}
	}
	return resp
}

// FromDomainHistoryList конвертирует историю цен в DTO
func FromDomainHistoryList(history []*domain.TariffPriceHistory) []PriceHistoryResponse {
	resp := make([]PriceHistoryResponse, 0, len(history))
	for _, h := range history {
		resp = append(resp, PriceHistoryResponse{
			ID:        h.ID,
			TariffID:  h.TariffID,
			OldPrice:  h.OldPrice,
			NewPrice:  h.NewPrice,
			ChangedBy: h.ChangedBy,
			ChangedAt: h.ChangedAt,
		})
	}
	return resp
}
