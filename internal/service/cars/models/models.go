package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// RegisterCarRequest запрос на регистрацию автомобиля
type RegisterCarRequest struct {
	LicensePlate string  `json:"licensePlate" validate:"required,max=15"`
	Make         *string `json:"make,omitempty" validate:"omitempty,max=100"`
	Model        *string `json:"model,omitempty" validate:"omitempty,max=100"`
	Color        *string `json:"color,omitempty" validate:"omitempty,max=100"`
}

// CarResponse данные автомобиля
type CarResponse struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	OwnerEmail   string    `json:"ownerEmail,omitempty"`
	LicensePlate string    `json:"licensePlate"`
	Make         *string   `json:"make,omitempty"`
	Model        *string   `json:"model,omitempty"`
	Color        *string   `json:"color,omitempty"`
	IsDeleted    bool      `json:"isDeleted"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// FromDomainCar конвертирует domain модель в DTO
func FromDomainCar(c *domain.CarDetails) *CarResponse {
	if c == nil {
		return nil
	}

	return &CarResponse{
		ID:           c.ID,
		UserID:       c.UserID,
		OwnerEmail:   c.OwnerEmail,
		LicensePlate: c.LicensePlate,
		Make:         c.Make,
		Model:        c.Model,
		Color:        c.Color,
		IsDeleted:    c.IsDeleted,
		RegisteredAt: c.RegisteredAt,
	}
}

// FromDomainCarList конвертирует список автомобилей в DTO
func FromDomainCarList(cars []*domain.CarDetails) []CarResponse {
	resp := make([]CarResponse, 0, len(cars))
	for _, c := range cars {
		if carResp := FromDomainCar(c); carResp != nil {
			resp = append(resp, *carResp)
		}
	}
	return resp
}
