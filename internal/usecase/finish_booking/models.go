package finish_booking

import (
	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модель запроса на завершение или отмену бронирования
type Request struct {
	BookingID int64
	Status    domain.BookingStatus // completed или cancelled
	Principal *domain.Principal    // nil - системный вызов (планировщик)
}

// Response результат перехода
type Response struct {
	Booking *domain.BookingDetails
	Changed bool // false - бронирование уже было в финальном статусе
}
