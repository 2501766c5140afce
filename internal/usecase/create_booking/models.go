package create_booking

import (
	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	Principal  domain.Principal // Пользователь, создающий бронирование
	CarID      int64            // ID автомобиля пользователя
	SpotNumber int64            // Номер парковочного места
	TariffID   int64            // ID тарифа
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.BookingDetails
}
