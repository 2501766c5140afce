package finish_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("finish_booking: booking not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда пользователь не владелец бронирования и не администратор
	ErrAccessDenied = fmt.Errorf("finish_booking: access denied: %w", domain.ErrForbidden)

	// ErrInvalidStatus возвращается, когда целевой статус не является финальным
	ErrInvalidStatus = fmt.Errorf("finish_booking: target status must be completed or cancelled: %w", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("finish_booking: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("finish_booking: internal error")
)
