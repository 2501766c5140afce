package finish_booking

import (
	"fmt"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if !req.Status.IsTerminal() {
		return fmt.Errorf("%w: got %q", ErrInvalidStatus, req.Status)
	}

	return nil
}
