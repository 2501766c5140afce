package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrCarNotFound возвращается, когда автомобиль не найден или удален
	ErrCarNotFound = fmt.Errorf("create_booking: car not found: %w", domain.ErrNotFound)

	// ErrSpotNotFound возвращается, когда парковочное место не найдено
	ErrSpotNotFound = fmt.Errorf("create_booking: parking spot not found: %w", domain.ErrNotFound)

	// ErrTariffNotFound возвращается, когда тариф не найден
	ErrTariffNotFound = fmt.Errorf("create_booking: tariff not found: %w", domain.ErrNotFound)

	// ErrTariffNotBookable возвращается, когда тариф неактивен или имеет нулевую длительность
	ErrTariffNotBookable = fmt.Errorf("create_booking: tariff is not bookable: %w", domain.ErrValidation)

	// ErrNotCarOwner возвращается, когда автомобиль принадлежит другому пользователю
	ErrNotCarOwner = fmt.Errorf("create_booking: car belongs to another user: %w", domain.ErrForbidden)

	// ErrCarAlreadyBooked возвращается, когда у автомобиля уже есть активное бронирование
	ErrCarAlreadyBooked = fmt.Errorf("create_booking: car already has an active booking: %w", domain.ErrConflict)

	// ErrSpotNotAvailable возвращается, когда место занято или недоступно
	ErrSpotNotAvailable = fmt.Errorf("create_booking: parking spot is not available: %w", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_booking: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
