package pay_booking

import (
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	return nil
}

// checkPayable проверяет условия оплаты в порядке: владелец, активность, отсутствие оплаты
func checkPayable(details *domain.BookingDetails, principal domain.Principal) error {
	if details.OwnerID != principal.UserID {
		return ErrAccessDenied
	}

	if !details.IsActive() {
		return fmt.Errorf("%w: status is %s", ErrBookingInactive, details.Status)
	}

	if details.IsPaid() {
		return ErrAlreadyPaid
	}

	return nil
}
