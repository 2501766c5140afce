package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется авторизация"
	msgInvalidInput       = "необходимо указать автомобиль, место и тариф"
	msgCarNotFound        = "автомобиль не найден"
	msgSpotNotFound       = "парковочное место не найдено"
	msgTariffNotFound     = "тариф не найден"
	msgTariffNotBookable  = "тариф недоступен для бронирования"
	msgNotCarOwner        = "автомобиль принадлежит другому пользователю"
	msgCarAlreadyBooked   = "у автомобиля уже есть активное бронирование"
	msgSpotNotAvailable   = "парковочное место недоступно"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(principal))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, %v", principal.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrCarNotFound):
			h.logger.Warn("POST /bookings - Car not found: user_id=%d, car_id=%d", principal.UserID, req.CarID)
			handlers.RespondNotFound(w, msgCarNotFound)

		case errors.Is(err, createBooking.ErrSpotNotFound):
			h.logger.Warn("POST /bookings - Spot not found: spot_number=%d", req.SpotNumber)
			handlers.RespondNotFound(w, msgSpotNotFound)

		case errors.Is(err, createBooking.ErrTariffNotFound):
			h.logger.Warn("POST /bookings - Tariff not found: tariff_id=%d", req.TariffID)
			handlers.RespondNotFound(w, msgTariffNotFound)

		case errors.Is(err, createBooking.ErrTariffNotBookable):
			h.logger.Warn("POST /bookings - Tariff not bookable: tariff_id=%d", req.TariffID)
			handlers.RespondBadRequest(w, msgTariffNotBookable)

		case errors.Is(err, createBooking.ErrNotCarOwner):
			h.logger.Warn("POST /bookings - Not car owner: user_id=%d, car_id=%d", principal.UserID, req.CarID)
			handlers.RespondForbidden(w, msgNotCarOwner)

		case errors.Is(err, createBooking.ErrCarAlreadyBooked):
			h.logger.Warn("POST /bookings - Car already booked: car_id=%d", req.CarID)
			handlers.RespondConflict(w, msgCarAlreadyBooked)

		case errors.Is(err, createBooking.ErrSpotNotAvailable):
			h.logger.Warn("POST /bookings - Spot not available: spot_number=%d", req.SpotNumber)
			handlers.RespondConflict(w, msgSpotNotAvailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, error=%v", principal.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, spot_number=%d",
		result.Booking.ID, principal.UserID, result.Booking.SpotNumber)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainBooking(result.Booking))
}
