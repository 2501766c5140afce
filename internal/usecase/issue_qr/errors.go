package issue_qr

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("issue_qr: booking not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда QR-код запрашивает не владелец бронирования
	ErrAccessDenied = fmt.Errorf("issue_qr: only the booking owner may request a QR code: %w", domain.ErrForbidden)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("issue_qr: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("issue_qr: internal error")
)
