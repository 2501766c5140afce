package register_car

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/cars"
	"github.com/m04kA/SMC-ParkingService/internal/service/cars/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется авторизация"
	msgInvalidInput       = "некорректные данные автомобиля"
	msgPlateTaken         = "автомобиль с таким госномером уже зарегистрирован"
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

// Handle POST /api/v1/cars
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.RegisterCarRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /cars - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	car, err := h.service.Register(r.Context(), principal, &req)
	if err != nil {
		switch {
		case errors.Is(err, cars.ErrInvalidInput):
			h.logger.Warn("POST /cars - Invalid input: user_id=%d, %v", principal.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, cars.ErrLicensePlateTaken):
			h.logger.Warn("POST /cars - License plate taken: user_id=%d", principal.UserID)
			handlers.RespondConflict(w, msgPlateTaken)

		default:
			h.logger.Error("POST /cars - Failed to register car: user_id=%d, error=%v", principal.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /cars - Car registered: car_id=%d, user_id=%d", car.ID, principal.UserID)
	handlers.RespondJSON(w, http.StatusCreated, car)
}
