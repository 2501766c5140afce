package pay_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("pay_booking: booking not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому пользователю
	ErrAccessDenied = fmt.Errorf("pay_booking: booking belongs to another user: %w", domain.ErrForbidden)

	// ErrBookingInactive возвращается при оплате завершенного или отмененного бронирования
	ErrBookingInactive = fmt.Errorf("pay_booking: booking is not active: %w", domain.ErrConflict)

	// ErrAlreadyPaid возвращается при повторной оплате
	ErrAlreadyPaid = fmt.Errorf("pay_booking: booking already paid: %w", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("pay_booking: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("pay_booking: internal error")
)
