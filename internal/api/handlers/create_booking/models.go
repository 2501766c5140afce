package create_booking

import (
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CarID      int64 `json:"carId"`
	SpotNumber int64 `json:"spotNumber"`
	TariffID   int64 `json:"tariffId"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(principal domain.Principal) *createBooking.Request {
	return &createBooking.Request{
		Principal:  principal,
		CarID:      r.CarID,
		SpotNumber: r.SpotNumber,
		TariffID:   r.TariffID,
	}
}
