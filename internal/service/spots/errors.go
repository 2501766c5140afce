package spots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrSpotNotFound возвращается, когда место не найдено
	ErrSpotNotFound = fmt.Errorf("spots: parking spot not found: %w", domain.ErrNotFound)

	// ErrSpotAlreadyExists возвращается, когда место с таким номером уже есть
	ErrSpotAlreadyExists = fmt.Errorf("spots: parking spot already exists: %w", domain.ErrConflict)

	// ErrSpotOccupied возвращается, когда место занято активным бронированием
	ErrSpotOccupied = fmt.Errorf("spots: parking spot has an active booking: %w", domain.ErrConflict)

	// ErrSpotHasHistory возвращается при удалении места, по которому были бронирования
	ErrSpotHasHistory = fmt.Errorf("spots: parking spot is referenced by past bookings: %w", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("spots: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("spots: internal error")
)
