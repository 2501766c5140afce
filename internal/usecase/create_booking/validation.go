package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Principal.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.CarID <= 0 {
		return fmt.Errorf("%w: carID must be positive", ErrInvalidInput)
	}

	if req.SpotNumber <= 0 {
		return fmt.Errorf("%w: spotNumber must be positive", ErrInvalidInput)
	}

	if req.TariffID <= 0 {
		return fmt.Errorf("%w: tariffID must be positive", ErrInvalidInput)
	}

	return nil
}

// validateTariff проверяет, что по тарифу можно создать бронирование
func validateTariff(tariff *domain.Tariff) error {
	if !tariff.IsActive {
		return fmt.Errorf("%w: tariff id=%d is inactive", ErrTariffNotBookable, tariff.ID)
	}

	if tariff.GetDuration() <= 0 {
		return fmt.Errorf("%w: tariff id=%d has no duration", ErrTariffNotBookable, tariff.ID)
	}

	return nil
}

// bookingWindow вычисляет время начала и окончания бронирования
// Начало - текущее время в UTC с точностью до секунды, окончание вычисляется один раз
func bookingWindow(now time.Time, tariff *domain.Tariff) (time.Time, time.Time) {
	start := now.UTC().Truncate(time.Second)
	return start, start.Add(tariff.GetDuration())
}
