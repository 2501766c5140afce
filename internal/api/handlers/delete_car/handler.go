package delete_car

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/cars"
)

const (
	msgInvalidCarID     = "некорректный ID автомобиля"
	msgUnauthorized     = "требуется авторизация"
	msgNotFound         = "автомобиль не найден"
	msgForbidden        = "автомобиль принадлежит другому пользователю"
	msgHasActiveBooking = "у автомобиля есть активное бронирование"
)

type Handler struct {
	service CarService
	logger  Logger
}

func NewHandler(service CarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/cars/{carId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	carID, err := handlers.PathInt64(r, "carId")
	if err != nil {
		h.logger.Warn("DELETE /cars/{id} - Invalid car ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCarID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	if err := h.service.Delete(r.Context(), principal, carID); err != nil {
		switch {
		case errors.Is(err, cars.ErrCarNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cars.ErrAccessDenied):
			h.logger.Warn("DELETE /cars/{id} - Access denied: car_id=%d, user_id=%d", carID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, cars.ErrCarHasActiveBooking):
			h.logger.Warn("DELETE /cars/{id} - Car has active booking: car_id=%d", carID)
			handlers.RespondConflict(w, msgHasActiveBooking)

		default:
			h.logger.Error("DELETE /cars/{id} - Failed to delete car: car_id=%d, error=%v", carID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /cars/{id} - Car deleted: car_id=%d, user_id=%d", carID, principal.UserID)
	w.WriteHeader(http.StatusNoContent)
}
