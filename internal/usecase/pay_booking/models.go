package pay_booking

import (
	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модель запроса на оплату бронирования
type Request struct {
	Principal domain.Principal
	BookingID int64
}

// Response созданная оплата и обновленное бронирование
type Response struct {
	Payment *domain.Payment
	Booking *domain.BookingDetails
}
