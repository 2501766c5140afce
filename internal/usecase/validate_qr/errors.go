package validate_qr

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrInvalidFormat возвращается, когда данные QR-кода не соответствуют схеме
	ErrInvalidFormat = fmt.Errorf("validate_qr: malformed QR payload: %w", domain.ErrValidation)

	// ErrBookingNotFound возвращается, когда бронирование из QR-кода не найдено
	ErrBookingNotFound = fmt.Errorf("validate_qr: booking not found: %w", domain.ErrNotFound)

	// ErrBookingInactive возвращается, когда бронирование завершено или отменено
	ErrBookingInactive = fmt.Errorf("validate_qr: booking is not active: %w", domain.ErrConflict)

	// ErrBookingUnpaid возвращается, когда бронирование не оплачено
	ErrBookingUnpaid = fmt.Errorf("validate_qr: booking is not paid: %w", domain.ErrConflict)

	// ErrInvalidSignature возвращается, когда подпись не совпадает
	ErrInvalidSignature = fmt.Errorf("validate_qr: %w", domain.ErrSignatureMismatch)

	// ErrOutsideWindow возвращается, когда текущее время вне интервала бронирования
	ErrOutsideWindow = fmt.Errorf("validate_qr: outside of the booking window: %w", domain.ErrExpired)

	// ErrInternal возвращается при внутренних ошибках, в том числе если не удалось записать журнал
	ErrInternal = errors.New("validate_qr: internal error")
)

// ReasonFor возвращает код причины отказа для ошибки usecase
func ReasonFor(err error) (domain.AccessFailureReason, bool) {
	switch {
	case errors.Is(err, ErrInvalidFormat):
		return domain.ReasonInvalidFormat, true
	case errors.Is(err, ErrBookingNotFound):
		return domain.ReasonBookingNotFound, true
	case errors.Is(err, ErrBookingInactive):
		return domain.ReasonBookingInactive, true
	case errors.Is(err, ErrBookingUnpaid):
		return domain.ReasonBookingUnpaid, true
	case errors.Is(err, ErrInvalidSignature):
		return domain.ReasonInvalidSignature, true
	case errors.Is(err, ErrOutsideWindow):
		return domain.ReasonExpired, true
	default:
		return "", false
	}
}
