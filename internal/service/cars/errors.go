package cars

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrCarNotFound возвращается, когда автомобиль не найден
	ErrCarNotFound = fmt.Errorf("cars: car not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда автомобиль принадлежит другому пользователю
	ErrAccessDenied = fmt.Errorf("cars: car belongs to another user: %w", domain.ErrForbidden)

	// ErrLicensePlateTaken возвращается, когда госномер уже зарегистрирован
	ErrLicensePlateTaken = fmt.Errorf("cars: license plate already registered: %w", domain.ErrConflict)

	// ErrCarHasActiveBooking возвращается при удалении автомобиля с активным бронированием
	ErrCarHasActiveBooking = fmt.Errorf("cars: car has an active booking: %w", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("cars: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("cars: internal error")
)
