package pay_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
	payBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/pay_booking"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgUnauthorized     = "требуется авторизация"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "бронирование принадлежит другому пользователю"
	msgInactive         = "бронирование уже завершено или отменено"
	msgAlreadyPaid      = "бронирование уже оплачено"
)

type Handler struct {
	useCase PayBookingUseCase
	logger  Logger
}

func NewHandler(useCase PayBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/pay
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/pay - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &payBooking.Request{
		Principal: principal,
		BookingID: bookingID,
	})
	if err != nil {
		switch {
		case errors.Is(err, payBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/pay - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payBooking.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/pay - Access denied: booking_id=%d, user_id=%d", bookingID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, payBooking.ErrBookingInactive):
			h.logger.Warn("POST /bookings/{id}/pay - Booking inactive: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgInactive)

		case errors.Is(err, payBooking.ErrAlreadyPaid):
			h.logger.Warn("POST /bookings/{id}/pay - Already paid: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgAlreadyPaid)

		default:
			h.logger.Error("POST /bookings/{id}/pay - Failed to pay booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/pay - Booking paid: booking_id=%d, payment_id=%d, amount=%s",
		bookingID, result.Payment.ID, result.Payment.Amount.String())
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainBooking(result.Booking))
}
