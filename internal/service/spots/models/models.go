package models

import (
	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// CreateSpotRequest запрос на создание парковочного места
type CreateSpotRequest struct {
	SpotNumber int64  `json:"spotNumber" validate:"required,gt=0"`
	Status     string `json:"status,omitempty" validate:"omitempty,oneof=available unavailable"`
}

// BulkCreateRequest запрос на массовое создание мест
type BulkCreateRequest struct {
	Spots []CreateSpotRequest `json:"spots"`
}

// UpdateStatusRequest запрос на изменение статуса места администратором
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available unavailable"`
}

// SpotResponse данные парковочного места
type SpotResponse struct {
	SpotNumber int64  `json:"spotNumber"`
	Status     string `json:"status"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

// BulkError ошибка создания одного места в массовой операции
type BulkError struct {
	SpotNumber int64  `json:"spotNumber"`
	Error      string `json:"error"`
}

// BulkCreateResponse результат массового создания мест
type BulkCreateResponse struct {
	Created []SpotResponse `json:"created"`
	Errors  []BulkError    `json:"errors"`
}

// HasErrors сообщает, что часть мест создать не удалось
func (r *BulkCreateResponse) HasErrors() bool {
	return len(r.Errors) > 0
}

// FromDomainSpot конвертирует domain модель в DTO
func FromDomainSpot(s *domain.ParkingSpot) *SpotResponse {
	if s == nil {
		return nil
	}

	resp := &SpotResponse{
		SpotNumber: s.Number,
		Status:     string(s.Status),
	}
	if !s.UpdatedAt.IsZero() {
		resp.UpdatedAt = s.UpdatedAt.UTC().Format(domain.TimeFormat)
	}

	return resp
}

// SpotStatusChanged формирует данные события об изменении статуса места
func SpotStatusChanged(number int64, status domain.SpotStatus) *SpotResponse {
	return &SpotResponse{
		SpotNumber: number,
		Status:     string(status),
	}
}

// FromDomainSpotList конвертирует список мест в DTO
func FromDomainSpotList(spots []*domain.ParkingSpot) []SpotResponse {
	resp := make([]SpotResponse, 0, len(spots))
	for _, s := range spots {
		if spotResp := FromDomainSpot(s); spotResp != nil {
			resp = append(resp, *spotResp)
		}
	}
	return resp
}
